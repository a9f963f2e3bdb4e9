package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ring = [][][]float64{{{30.0, -1.9}, {30.1, -1.9}, {30.1, -2.0}, {30.0, -1.9}}}

func candidate(lat, lon float64, updated time.Time) *models.FarmRecord {
	return &models.FarmRecord{
		ID:             uuid.New(),
		FarmerName:     "Alice",
		CollectionSite: "Site A",
		Latitude:       lat,
		Longitude:      lon,
		Polygon:        ring,
		UpdatedAt:      updated,
	}
}

func TestIdentityKey(t *testing.T) {
	remote := "r-42"
	empty := ""

	assert.Equal(t, "remote:r-42", service.IdentityKey(&models.FarmRecord{RemoteID: &remote, FarmerName: "Alice"}))
	assert.Equal(t, "farm:alice|site a", service.IdentityKey(&models.FarmRecord{RemoteID: &empty, FarmerName: "Alice", CollectionSite: "Site A"}))
	assert.Equal(t, "farm:alice|site a", service.IdentityKey(&models.FarmRecord{FarmerName: "ALICE", CollectionSite: "site a"}))
}

func TestRankCandidates_Filters(t *testing.T) {
	now := time.Now()
	incoming := &models.FarmRecord{FarmerName: "Alice", CollectionSite: "Site A", Latitude: -1.9, Longitude: 30.1}

	otherName := candidate(-1.9, 30.1, now)
	otherName.FarmerName = "Bob"
	noPolygon := candidate(-1.9, 30.1, now)
	noPolygon.Polygon = [][][]float64{}
	farAway := candidate(-2.5, 29.0, now)
	latOnly := candidate(-1.9, 29.0, now)

	ranked := service.RankCandidates(incoming, []*models.FarmRecord{otherName, noPolygon, farAway, latOnly})

	require.Len(t, ranked, 1)
	assert.Equal(t, latOnly.ID, ranked[0].ID)
}

func TestRankCandidates_Ordering(t *testing.T) {
	now := time.Now()
	incoming := &models.FarmRecord{FarmerName: "Alice", CollectionSite: "Site A", Latitude: -1.9, Longitude: 30.1}

	lonOnlyFresh := candidate(-1.8, 30.1, now)
	bothOld := candidate(-1.9, 30.1, now.Add(-2*time.Hour))
	bothNew := candidate(-1.9, 30.1, now.Add(-time.Hour))

	ranked := service.RankCandidates(incoming, []*models.FarmRecord{lonOnlyFresh, bothOld, bothNew})

	require.Len(t, ranked, 3)
	assert.Equal(t, bothNew.ID, ranked[0].ID)
	assert.Equal(t, bothOld.ID, ranked[1].ID)
	assert.Equal(t, lonOnlyFresh.ID, ranked[2].ID)
}

func TestRankCandidates_ZeroCoordinatesMatchOnName(t *testing.T) {
	incoming := &models.FarmRecord{FarmerName: "Alice", CollectionSite: "Site A"}
	existing := candidate(-1.9, 30.1, time.Now())

	ranked := service.RankCandidates(incoming, []*models.FarmRecord{existing})

	require.Len(t, ranked, 1)
	assert.Equal(t, existing.ID, ranked[0].ID)
}
