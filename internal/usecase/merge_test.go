package usecase_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/usecase"
)

func TestMergeCandidates_CoordinateCollisionKeepsLocal(t *testing.T) {
	local := &domain.Place{ID: "loc-1", Name: "Robinsons Galleria", Lat: 14.6186, Lon: 121.0567, Source: domain.SourceLocal}
	provider := &domain.Place{ID: "google:abc", Name: "Robinsons Galleria Mall", Lat: 14.6186, Lon: 121.0567, Source: domain.SourceGoogle}

	merged := usecase.MergeCandidates(&usecase.CandidateSet{
		Local:     []*domain.Place{local},
		Providers: [][]*domain.Place{{provider}},
	})

	require.Len(t, merged, 1)
	assert.Equal(t, "loc-1", merged[0].ID)
}

func TestMergeCandidates_NameCollisionIgnoresCaseAndAccents(t *testing.T) {
	local := &domain.Place{ID: "loc-1", Name: "Café Adriatico", Lat: 14.5700, Lon: 120.9840}
	provider := &domain.Place{ID: "osm:N1", Name: "  CAFE   adriatico", Lat: 14.6000, Lon: 121.0000}

	merged := usecase.MergeCandidates(&usecase.CandidateSet{
		Local:     []*domain.Place{local},
		Providers: [][]*domain.Place{nil, {provider}},
	})

	require.Len(t, merged, 1)
	assert.Equal(t, "loc-1", merged[0].ID)
}

func TestMergeCandidates_LocalNeverDeduplicated(t *testing.T) {
	a := &domain.Place{ID: "loc-1", Name: "Jollibee", Lat: 14.5, Lon: 121.0}
	b := &domain.Place{ID: "loc-2", Name: "Jollibee", Lat: 14.5, Lon: 121.0}

	merged := usecase.MergeCandidates(&usecase.CandidateSet{Local: []*domain.Place{a, b}})

	assert.Len(t, merged, 2)
}

func TestMergeCandidates_OrderAndProviderClaims(t *testing.T) {
	local := []*domain.Place{{ID: "loc-1", Name: "SM Megamall", Lat: 14.5850, Lon: 121.0567}}
	providerA := []*domain.Place{
		{ID: "google:1", Name: "Greenbelt", Lat: 14.5520, Lon: 121.0210},
		{ID: "google:2", Name: "Glorietta", Lat: 14.5510, Lon: 121.0250},
	}
	providerB := []*domain.Place{
		{ID: "osm:N1", Name: "Greenbelt 1", Lat: 14.5520, Lon: 121.0210},
		{ID: "osm:N2", Name: "glorietta", Lat: 14.5600, Lon: 121.0300},
		{ID: "osm:N3", Name: "Power Plant Mall", Lat: 14.5650, Lon: 121.0360},
	}

	merged := usecase.MergeCandidates(&usecase.CandidateSet{
		Local:     local,
		Providers: [][]*domain.Place{providerA, providerB},
	})

	ids := make([]string, 0, len(merged))
	for _, p := range merged {
		ids = append(ids, p.ID)
	}

	want := []string{"loc-1", "google:1", "google:2", "osm:N3"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("merged ids mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeCandidates_EmptyNameDoesNotClaim(t *testing.T) {
	local := []*domain.Place{{ID: "loc-1", Name: "", Lat: 14.0, Lon: 121.0}}
	provider := []*domain.Place{{ID: "osm:N1", Name: "", Lat: 15.0, Lon: 122.0}}

	merged := usecase.MergeCandidates(&usecase.CandidateSet{
		Local:     local,
		Providers: [][]*domain.Place{provider},
	})

	assert.Len(t, merged, 2)
}
