package dto

import "github.com/place-resolver/internal/domain"

// SearchPlacesResponse - ответ на поиск мест
type SearchPlacesResponse struct {
	Results []*domain.RankedPlace `json:"results"`
	Total   int                   `json:"total"`
}

// PlaceResponse - одно место
type PlaceResponse struct {
	Place *domain.Place `json:"place"`
}

// ValidateCoordinateResponse - результат проверки координаты
type ValidateCoordinateResponse struct {
	domain.ValidatedCoordinate
}

// PickupPointsResponse - точки посадки у места
type PickupPointsResponse struct {
	PickupPoints []*domain.PickupPoint `json:"pickup_points"`
	Total        int                   `json:"total"`
}

// PickupPointResponse - одна точка посадки
type PickupPointResponse struct {
	PickupPoint *domain.PickupPoint `json:"pickup_point"`
}

// ConfirmPickupPointResponse - результат подтверждения точки
type ConfirmPickupPointResponse struct {
	PickupPoint *domain.PickupPoint `json:"pickup_point"`
	// Counted - false, если пользователь уже подтверждал эту точку
	Counted bool `json:"counted"`
	// JustVerified - точка стала проверенной именно этим подтверждением
	JustVerified bool `json:"just_verified"`
}

// InferredPlace - место, выведенное из истории посещений
type InferredPlace struct {
	PlaceID     *string `json:"place_id,omitempty"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	VisitCount  int     `json:"visit_count"`
	TypicalHour int     `json:"typical_hour"`
}

// InferredPlacesResponse - предполагаемые дом и работа пользователя
type InferredPlacesResponse struct {
	Home *InferredPlace `json:"home"`
	Work *InferredPlace `json:"work"`
}
