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

// PlaceHandler - поиск, выбор и обратное геокодирование мест
type PlaceHandler struct {
	resolver PlaceResolver
	reverse  ReverseGeocoder
	logger   *zap.Logger
}

// NewPlaceHandler - создание нового PlaceHandler
func NewPlaceHandler(resolver PlaceResolver, reverse ReverseGeocoder, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		resolver: resolver,
		reverse:  reverse,
		logger:   logger,
	}
}

// Search godoc
// @Summary Поиск мест по тексту
// @Description Объединяет локальное хранилище и внешние геокодеры, удаляет дубликаты и ранжирует по тексту, расстоянию, популярности и персональным сигналам
// @Tags Places
// @Produce json
// @Param q query string true "Поисковый запрос (до 200 символов)"
// @Param lat query number false "Широта пользователя"
// @Param lon query number false "Долгота пользователя"
// @Param limit query int false "Максимальное количество результатов" default(10)
// @Param X-User-ID header string false "Идентификатор пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchPlacesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/places/search [get]
func (h *PlaceHandler) Search(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.SearchPlacesRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if (req.Lat == nil) != (req.Lon == nil) {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.resolver.ResolveByText(c.Context(), req, middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, utils.ListMeta(result.Total, req.Limit, start))
}

// Select godoc
// @Summary Выбор места пользователем
// @Description Увеличивает популярность места и пишет событие в историю пользователя. Место провайдера, которого ещё нет локально, передаётся в теле и сохраняется.
// @Tags Places
// @Accept json
// @Produce json
// @Param id path string true "ID места"
// @Param request body dto.SelectPlaceRequest false "Действие и данные места"
// @Param X-User-ID header string false "Идентификатор пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlaceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/places/{id}/select [post]
func (h *PlaceHandler) Select(c *fiber.Ctx) error {
	placeID := c.Params("id")
	if placeID == "" {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.SelectPlaceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.resolver.SelectPlace(c.Context(), placeID, middleware.UserID(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Reverse godoc
// @Summary Обратное геокодирование
// @Description Возвращает место по координате: из кеша, от провайдеров по очереди или точку-заглушку. Никогда не возвращает ошибку для корректного запроса.
// @Tags Places
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlaceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/places/reverse [get]
func (h *PlaceHandler) Reverse(c *fiber.Ctx) error {
	var req dto.ReverseGeocodeRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	place := h.reverse.ResolveByCoordinate(c.Context(), *req.Lat, *req.Lon)

	return utils.SendSuccess(c, dto.PlaceResponse{Place: place}, nil)
}
