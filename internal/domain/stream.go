package domain

import "time"

// Stream names
const (
	StreamGeocodeCache = "stream:geocode:cache"
)

// GeocodeCacheEvent - задание на запись результата обратного геокодирования в кеш
type GeocodeCacheEvent struct {
	Place      Place     `json:"place"`
	ResolvedAt time.Time `json:"resolved_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
