package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/usecase"
)

func floatPtr(v float64) *float64 { return &v }

func TestWeightsSumToOne(t *testing.T) {
	sum := usecase.WeightText + usecase.WeightProximity + usecase.WeightPopularity + usecase.WeightPersonalization
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestTextScore(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		place    string
		expected float64
	}{
		{"exact", "jollibee", "Jollibee", 1.0},
		{"prefix", "jollibee", "Jollibee Ortigas", 0.8},
		{"substring", "jollibee", "SM Jollibee Branch", 0.6},
		{"word prefix ignoring accents", "cafe", "Le Café Bistro", 0.5},
		{"no match", "jollibee", "McDonald's", 0.3},
		{"empty query", "", "Jollibee", 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, usecase.TextScore(tt.query, tt.place, nil))
		})
	}

	t.Run("similarity used verbatim", func(t *testing.T) {
		assert.Equal(t, 0.42, usecase.TextScore("jollibee", "Jollibee", floatPtr(0.42)))
	})
}

func TestPopularityScore(t *testing.T) {
	r := usecase.NewRanker(usecase.RankingConfig{})

	assert.Equal(t, 0.0, r.PopularityScore(0))
	assert.Equal(t, 0.0, r.PopularityScore(-5))
	assert.InDelta(t, 0.333, r.PopularityScore(9), 0.001)
	assert.InDelta(t, 1.0, r.PopularityScore(999), 1e-9)
	assert.Equal(t, 1.0, r.PopularityScore(1_000_000))
}

func TestProximityScore(t *testing.T) {
	r := usecase.NewRanker(usecase.RankingConfig{ProximityWindowKm: 20})

	assert.Equal(t, 1.0, r.ProximityScore(0))
	assert.InDelta(t, 0.5, r.ProximityScore(10), 1e-9)
	assert.Equal(t, 0.0, r.ProximityScore(20))
	assert.Equal(t, 0.0, r.ProximityScore(35))
}

func TestPersonalizationScore(t *testing.T) {
	signals := &domain.Personalization{
		SavedPlaceIDs: map[string]string{"home-1": domain.SavedPlaceHome},
		UseCounts:     map[string]int{"often": 4, "rare": 3},
	}

	assert.Equal(t, 1.0, usecase.PersonalizationScore("home-1", "u1", signals))
	assert.Equal(t, 0.6, usecase.PersonalizationScore("often", "u1", signals))
	assert.Equal(t, 0.0, usecase.PersonalizationScore("rare", "u1", signals))
	assert.Equal(t, 0.0, usecase.PersonalizationScore("home-1", "", signals))
}

func TestRanker_Rank(t *testing.T) {
	r := usecase.NewRanker(usecase.RankingConfig{})

	t.Run("scores bounded and sorted", func(t *testing.T) {
		places := []*domain.Place{
			{ID: "a", Name: "McDonald's", Lat: 14.70, Lon: 121.10},
			{ID: "b", Name: "Jollibee", Lat: 14.5547, Lon: 121.0244, SearchCount: 999},
			{ID: "c", Name: "Jollibee Ortigas", Lat: 14.5870, Lon: 121.0614, SearchCount: 9},
		}
		qc := usecase.QueryContext{
			Query:        "jollibee",
			UserLocation: &domain.Point{Lat: 14.5547, Lon: 121.0244},
		}

		ranked := r.Rank(places, qc, nil, 0)

		require.Len(t, ranked, 3)
		assert.Equal(t, "b", ranked[0].ID)
		assert.Equal(t, "c", ranked[1].ID)
		assert.Equal(t, "a", ranked[2].ID)
		for _, rp := range ranked {
			assert.GreaterOrEqual(t, rp.Score, 0.0)
			assert.LessOrEqual(t, rp.Score, 1.0)
			require.NotNil(t, rp.DistanceKm)
		}
	})

	t.Run("input places are left untouched", func(t *testing.T) {
		known := 2.5
		places := []*domain.Place{
			{ID: "a", Name: "Jollibee", Lat: 14.5870, Lon: 121.0614},
			{ID: "b", Name: "Jollibee EDSA", Lat: 14.5547, Lon: 121.0244, DistanceKm: &known},
		}
		qc := usecase.QueryContext{
			Query:        "jollibee",
			UserLocation: &domain.Point{Lat: 14.5547, Lon: 121.0244},
		}

		ranked := r.Rank(places, qc, nil, 0)

		require.Len(t, ranked, 2)
		assert.Nil(t, places[0].DistanceKm)
		assert.Same(t, &known, places[1].DistanceKm)
		for _, rp := range ranked {
			require.NotNil(t, rp.DistanceKm)
			if rp.ID == "a" {
				assert.NotSame(t, places[0], rp.Place)
				assert.Greater(t, *rp.DistanceKm, 0.0)
			} else {
				assert.Equal(t, known, *rp.DistanceKm)
			}
		}
	})

	t.Run("ties keep merge order", func(t *testing.T) {
		places := []*domain.Place{
			{ID: "first", Name: "Gate"},
			{ID: "second", Name: "Gate"},
			{ID: "third", Name: "Gate"},
		}

		ranked := r.Rank(places, usecase.QueryContext{Query: "gate"}, nil, 2)

		require.Len(t, ranked, 2)
		assert.Equal(t, "first", ranked[0].ID)
		assert.Equal(t, "second", ranked[1].ID)
		assert.Equal(t, 0.5, ranked[0].ProximityScore)
	})

	t.Run("saved place lifts candidate", func(t *testing.T) {
		places := []*domain.Place{
			{ID: "x", Name: "Office Tower A"},
			{ID: "y", Name: "Office Tower B"},
		}
		signals := &domain.Personalization{SavedPlaceIDs: map[string]string{"y": domain.SavedPlaceWork}}

		ranked := r.Rank(places, usecase.QueryContext{Query: "office", UserID: "u1"}, signals, 0)

		assert.Equal(t, "y", ranked[0].ID)
		assert.InDelta(t, ranked[1].Score+usecase.WeightPersonalization, ranked[0].Score, 1e-9)
	})
}
