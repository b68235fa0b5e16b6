package dto

// SearchPlacesRequest - запрос на поиск мест по тексту
type SearchPlacesRequest struct {
	Query string   `query:"q" json:"q" validate:"required,max=200"`
	Lat   *float64 `query:"lat" json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon   *float64 `query:"lon" json:"lon" validate:"omitempty,min=-180,max=180"`
	Limit int      `query:"limit" json:"limit" validate:"omitempty,min=1,max=50"`
}

// SelectPlaceRequest - пользователь выбрал место из выдачи
type SelectPlaceRequest struct {
	Action string      `json:"action" validate:"omitempty,oneof=select favorite navigate"`
	Place  *PlaceInput `json:"place,omitempty" validate:"omitempty"`
}

// PlaceInput - данные места от провайдера, которого ещё нет в локальном хранилище
type PlaceInput struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Address  string  `json:"address" validate:"max=500"`
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lon      float64 `json:"lon" validate:"min=-180,max=180"`
	Category string  `json:"category" validate:"max=64"`
}

// ReverseGeocodeRequest - запрос на обратное геокодирование
type ReverseGeocodeRequest struct {
	Lat *float64 `query:"lat" json:"lat" validate:"required"`
	Lon *float64 `query:"lon" json:"lon" validate:"required"`
}

// ValidateCoordinateRequest - проверка и привязка координаты к дороге
type ValidateCoordinateRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Category  string   `json:"category" validate:"max=64"`
}

// PickupPointsRequest - запрос точек посадки у места
type PickupPointsRequest struct {
	Lat   *float64 `query:"lat" json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon   *float64 `query:"lon" json:"lon" validate:"omitempty,min=-180,max=180"`
	Limit int      `query:"limit" json:"limit" validate:"omitempty,min=1,max=50"`
}

// SuggestPickupPointRequest - предложение новой точки посадки
type SuggestPickupPointRequest struct {
	Lat        *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon        *float64 `json:"lon" validate:"required,min=-180,max=180"`
	Kind       string   `json:"kind" validate:"required,oneof=entrance gate parking platform terminal"`
	Name       string   `json:"name" validate:"required,max=100"`
	Notes      *string  `json:"notes,omitempty" validate:"omitempty,max=500"`
	Accessible bool     `json:"accessible"`
}
