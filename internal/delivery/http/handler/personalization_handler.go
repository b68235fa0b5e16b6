package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/place-resolver/internal/delivery/http/middleware"
	"github.com/place-resolver/internal/pkg/utils"
	"go.uber.org/zap"
)

// PersonalizationHandler - персональные данные пользователя
type PersonalizationHandler struct {
	inferrer HomeWorkInferrer
	logger   *zap.Logger
}

// NewPersonalizationHandler - создание нового PersonalizationHandler
func NewPersonalizationHandler(inferrer HomeWorkInferrer, logger *zap.Logger) *PersonalizationHandler {
	return &PersonalizationHandler{
		inferrer: inferrer,
		logger:   logger,
	}
}

// InferredPlaces godoc
// @Summary Предполагаемые дом и работа
// @Description Дом - самое посещаемое место вечером и ночью, работа - днём и не ближе 200 м от дома
// @Tags Personalization
// @Produce json
// @Param X-User-ID header string true "Идентификатор пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.InferredPlacesResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/me/inferred-places [get]
func (h *PersonalizationHandler) InferredPlaces(c *fiber.Ctx) error {
	result, err := h.inferrer.InferHomeWork(c.Context(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
