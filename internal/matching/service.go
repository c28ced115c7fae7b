package matching

import (
	"context"
	"math"
	"sort"

	"github.com/axis-meridian-dev/Luber-development/internal/geo"
)

// Search radius for consumer jobs.
const MaxDistanceMiles = 25.0

// Ratings within this gap are considered equal and distance breaks
// the tie instead.
const ratingTieBreakGap = 0.5

type Service struct {
	repo TechnicianRepository
}

func NewService(repo TechnicianRepository) *Service {
	return &Service{repo: repo}
}

// FindAvailableTechnicians returns available, approved technicians
// within MaxDistanceMiles of the requested location, best match first.
func (s *Service) FindAvailableTechnicians(ctx context.Context, params Params) ([]Candidate, error) {
	records, err := s.repo.ListAvailableApproved(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(records))

	for _, rec := range records {
		if !rec.HasLocation {
			continue
		}

		distance := geo.DistanceMiles(params.Latitude, params.Longitude, rec.Latitude, rec.Longitude)
		if distance > MaxDistanceMiles {
			continue
		}

		candidates = append(candidates, Candidate{
			ID:                 rec.ID,
			FullName:           rec.FullName,
			ProfilePhotoURL:    rec.ProfilePhotoURL,
			AverageRating:      rec.AverageRating,
			TotalJobsCompleted: rec.TotalJobsCompleted,
			DistanceMiles:      geo.RoundToTenth(distance),
		})
	}

	// Rating dominates unless the gap is small, then the nearer
	// technician wins.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if math.Abs(a.AverageRating-b.AverageRating) > ratingTieBreakGap {
			return a.AverageRating > b.AverageRating
		}
		return a.DistanceMiles < b.DistanceMiles
	})

	return candidates, nil
}
