package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/place-resolver/internal/pkg/errors"
	"github.com/place-resolver/internal/pkg/utils"
	"github.com/place-resolver/internal/pkg/validator"
	"github.com/place-resolver/internal/usecase/dto"
	"go.uber.org/zap"
)

// LocationHandler - проверка координат
type LocationHandler struct {
	validator CoordinateValidator
	logger    *zap.Logger
}

// NewLocationHandler - создание нового LocationHandler
func NewLocationHandler(v CoordinateValidator, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		validator: v,
		logger:    logger,
	}
}

// Validate godoc
// @Summary Проверка координаты и привязка к дороге
// @Description Переносит точку на ближайшую проезжую дорогу, если она дальше 20 м от дороги, но в пределах допустимого для категории расстояния. При недоступности источника дорог возвращает исходную точку.
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body dto.ValidateCoordinateRequest true "Координата и категория места"
// @Success 200 {object} utils.SuccessResponse{data=dto.ValidateCoordinateResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/locations/validate [post]
func (h *LocationHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateCoordinateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result := h.validator.ValidateCoordinate(c.Context(), *req.Latitude, *req.Longitude, req.Category)

	return utils.SendSuccess(c, dto.ValidateCoordinateResponse{ValidatedCoordinate: result}, nil)
}
