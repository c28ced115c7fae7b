package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type MockRepository struct {
	records []TechnicianRecord
	err     error
}

func (m *MockRepository) ListAvailableApproved(ctx context.Context) ([]TechnicianRecord, error) {
	return m.records, m.err
}

// Downtown Austin as the request origin.
var origin = Params{Latitude: 30.2672, Longitude: -97.7431}

func tech(id string, rating float64, lat, lng float64) TechnicianRecord {
	return TechnicianRecord{
		ID:            id,
		FullName:      "Tech " + id,
		AverageRating: rating,
		HasLocation:   true,
		Latitude:      lat,
		Longitude:     lng,
	}
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestFind_SkipsTechniciansWithoutLocation(t *testing.T) {
	noLocation := TechnicianRecord{ID: "t1", AverageRating: 5.0}
	repo := &MockRepository{records: []TechnicianRecord{
		noLocation,
		tech("t2", 4.0, 30.30, -97.74),
	}}

	got, err := NewService(repo).FindAvailableTechnicians(context.Background(), origin)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].ID)
}

func TestFind_ExcludesBeyondRadius(t *testing.T) {
	repo := &MockRepository{records: []TechnicianRecord{
		tech("near", 4.5, 30.30, -97.74),
		// San Antonio, ~70 miles away
		tech("far", 5.0, 29.4241, -98.4936),
	}}

	got, err := NewService(repo).FindAvailableTechnicians(context.Background(), origin)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "near", got[0].ID)

	for _, c := range got {
		assert.LessOrEqual(t, c.DistanceMiles, MaxDistanceMiles)
	}
}

func TestFind_RatingDominatesLargeGap(t *testing.T) {
	repo := &MockRepository{records: []TechnicianRecord{
		// Nearer but much worse rated.
		tech("close-low", 3.5, 30.27, -97.74),
		// Farther but rating gap is > 0.5.
		tech("far-high", 4.8, 30.45, -97.80),
	}}

	got, err := NewService(repo).FindAvailableTechnicians(context.Background(), origin)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "far-high", got[0].ID)
}

func TestFind_DistanceBreaksSmallRatingGap(t *testing.T) {
	repo := &MockRepository{records: []TechnicianRecord{
		tech("far", 4.8, 30.45, -97.80),
		tech("near", 4.5, 30.27, -97.74),
	}}

	got, err := NewService(repo).FindAvailableTechnicians(context.Background(), origin)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "near", got[0].ID)
}

func TestFind_DistanceIsRounded(t *testing.T) {
	repo := &MockRepository{records: []TechnicianRecord{
		tech("t1", 4.0, 30.31, -97.71),
	}}

	got, err := NewService(repo).FindAvailableTechnicians(context.Background(), origin)
	require.NoError(t, err)
	require.Len(t, got, 1)

	rounded := float64(int(got[0].DistanceMiles*10+0.5)) / 10
	assert.Equal(t, rounded, got[0].DistanceMiles)
}

func TestFind_EmptyRepo(t *testing.T) {
	got, err := NewService(&MockRepository{}).FindAvailableTechnicians(context.Background(), origin)
	require.NoError(t, err)
	assert.Empty(t, got)
}
