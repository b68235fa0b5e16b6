package utils

import (
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/place-resolver/internal/pkg/errors"
)

// SuccessResponse - конверт успешного ответа {"data": ..., "meta": ...}
type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// ErrorResponse - конверт ошибки {"error": {code, message, details}}
type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total  int     `json:"total"`
	Limit  int     `json:"limit,omitempty"`
	TookMS float64 `json:"took_ms,omitempty"`
}

// ListMeta - meta для списка; took считается от start
func ListMeta(total, limit int, start time.Time) *Meta {
	return &Meta{
		Total:  total,
		Limit:  limit,
		TookMS: float64(time.Since(start).Microseconds()) / 1000,
	}
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{Data: data})
}

// SendError отдаёт AppError как есть, ошибки fiber (413, 405 и т.п.) сохраняют свой статус,
// всё остальное превращается в 500 без деталей
func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	var fiberErr *fiber.Error
	if stderrors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse{
			Error: errors.New(errors.HTTPCode(fiberErr.Code), fiberErr.Message, fiberErr.Code),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
