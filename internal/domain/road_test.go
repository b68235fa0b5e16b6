package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxSnapDistance(t *testing.T) {
	tests := []struct {
		category string
		expected float64
	}{
		{"school", 100},
		{"University", 100},
		{"shopping-centre", 150},
		{"Shopping Centre", 150},
		{"mall", 150},
		{"airport", 200},
		{"railway_station", 50},
		{"hospital", 100},
		{"general", 50},
		{"", 50},
		{"restaurant", 50},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaxSnapDistance(tt.category))
		})
	}
}

func TestPlace_Normalize(t *testing.T) {
	p := &Place{Lat: 57.64911, Lon: 10.40744, Geohash: "stale"}

	p.Normalize()

	assert.Equal(t, "u4pruydqq", p.Geohash)
	assert.True(t, p.Valid())
}
