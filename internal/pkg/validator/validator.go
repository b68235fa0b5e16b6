package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/place-resolver/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// В ошибках используем имена полей из json тегов
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate - валидация структуры, ошибки приводятся к errors.ErrInvalidRequest
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.ErrInvalidRequest
	}

	details := make(map[string]interface{}, len(validationErrs))
	for _, fe := range validationErrs {
		details[fe.Field()] = fe.Tag()
	}

	return errors.ErrInvalidRequest.WithDetails(details)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
