package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/place-resolver/internal/delivery/http/middleware"
	"github.com/place-resolver/internal/pkg/errors"
	"github.com/place-resolver/internal/pkg/utils"
	"github.com/place-resolver/internal/pkg/validator"
	"github.com/place-resolver/internal/usecase/dto"
	"go.uber.org/zap"
)

// PickupPointHandler - точки посадки у мест
type PickupPointHandler struct {
	service PickupPointService
	logger  *zap.Logger
}

// NewPickupPointHandler - создание нового PickupPointHandler
func NewPickupPointHandler(service PickupPointService, logger *zap.Logger) *PickupPointHandler {
	return &PickupPointHandler{
		service: service,
		logger:  logger,
	}
}

// List godoc
// @Summary Точки посадки у места
// @Description Проверенные точки идут первыми, затем ближайшие к пользователю, затем наиболее используемые
// @Tags Pickup Points
// @Produce json
// @Param id path string true "ID места"
// @Param lat query number false "Широта пользователя"
// @Param lon query number false "Долгота пользователя"
// @Param limit query int false "Максимальное количество точек" default(10)
// @Success 200 {object} utils.SuccessResponse{data=dto.PickupPointsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/places/{id}/pickup-points [get]
func (h *PickupPointHandler) List(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.PickupPointsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if (req.Lat == nil) != (req.Lon == nil) {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.service.GetPickupPoints(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, utils.ListMeta(result.Total, req.Limit, start))
}

// Suggest godoc
// @Summary Предложить точку посадки
// @Description Добавляет непроверенную точку посадки к месту
// @Tags Pickup Points
// @Accept json
// @Produce json
// @Param id path string true "ID места"
// @Param request body dto.SuggestPickupPointRequest true "Точка посадки"
// @Param X-User-ID header string false "Идентификатор пользователя"
// @Success 201 {object} utils.SuccessResponse{data=dto.PickupPointResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/places/{id}/pickup-points [post]
func (h *PickupPointHandler) Suggest(c *fiber.Ctx) error {
	var req dto.SuggestPickupPointRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.service.SuggestPickupPoint(c.Context(), c.Params("id"), middleware.UserID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, result)
}

// Confirm godoc
// @Summary Подтвердить точку посадки
// @Description Учитывает подтверждение пользователя, один раз на пользователя. После трёх подтверждений точка становится проверенной.
// @Tags Pickup Points
// @Produce json
// @Param id path string true "ID точки посадки"
// @Param X-User-ID header string true "Идентификатор пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.ConfirmPickupPointResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/pickup-points/{id}/confirm [post]
func (h *PickupPointHandler) Confirm(c *fiber.Ctx) error {
	result, err := h.service.ConfirmPickupPoint(c.Context(), c.Params("id"), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Select godoc
// @Summary Использовать точку посадки
// @Description Отмечает выбор точки как места посадки или высадки
// @Tags Pickup Points
// @Produce json
// @Param id path string true "ID точки посадки"
// @Success 200 {object} utils.SuccessResponse{data=dto.PickupPointResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/pickup-points/{id}/select [post]
func (h *PickupPointHandler) Select(c *fiber.Ctx) error {
	result, err := h.service.SelectPickupPoint(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
