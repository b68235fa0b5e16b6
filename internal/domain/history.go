package domain

import "time"

// Действия пользователя, которые пишутся в историю
const (
	ActionSearch   = "search"
	ActionSelect   = "select"
	ActionFavorite = "favorite"
	ActionNavigate = "navigate"
)

// Типы сохранённых мест
const (
	SavedPlaceHome     = "home"
	SavedPlaceWork     = "work"
	SavedPlaceFavorite = "favorite"
)

// LocationHistoryEntry - запись журнала взаимодействий пользователя с местами (append-only)
type LocationHistoryEntry struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	PlaceID   *string   `json:"place_id,omitempty" db:"place_id"`
	Lat       float64   `json:"lat" db:"lat"`
	Lon       float64   `json:"lon" db:"lon"`
	Action    string    `json:"action" db:"action"`
	HourOfDay int       `json:"hour_of_day" db:"hour_of_day"`
	DayOfWeek int       `json:"day_of_week" db:"day_of_week"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FrequentLocation - агрегат по часто посещаемым местам пользователя.
// Считается внешней задачей, сервис только читает.
type FrequentLocation struct {
	UserID      string  `json:"user_id" db:"user_id"`
	PlaceID     *string `json:"place_id,omitempty" db:"place_id"`
	Name        string  `json:"name" db:"name"`
	VisitCount  int     `json:"visit_count" db:"visit_count"`
	TypicalHour int     `json:"typical_hour" db:"typical_hour"`
	Lat         float64 `json:"lat" db:"centroid_lat"`
	Lon         float64 `json:"lon" db:"centroid_lon"`
}

// SavedPlace - сохранённое пользователем место (дом, работа, избранное)
type SavedPlace struct {
	UserID  string `json:"user_id" db:"user_id"`
	PlaceID string `json:"place_id" db:"place_id"`
	Kind    string `json:"kind" db:"kind"`
}

// Personalization - срез персональных сигналов пользователя для ранжирования
type Personalization struct {
	SavedPlaceIDs map[string]string
	UseCounts     map[string]int
}

// IsValidAction проверяет тип действия
func IsValidAction(action string) bool {
	switch action {
	case ActionSearch, ActionSelect, ActionFavorite, ActionNavigate:
		return true
	}
	return false
}
