package matching

import "time"

// TechnicianRecord is what the repository returns: an approved
// technician profile joined with the last known location, if any.
type TechnicianRecord struct {
	ID                 string
	FullName           string
	ProfilePhotoURL    string
	AverageRating      float64
	TotalJobsCompleted int
	HasLocation        bool
	Latitude           float64
	Longitude          float64
	LocationUpdatedAt  time.Time
}

// Candidate is a ranked match returned to the caller.
type Candidate struct {
	ID                 string  `json:"id"`
	FullName           string  `json:"full_name"`
	ProfilePhotoURL    string  `json:"profile_photo_url,omitempty"`
	AverageRating      float64 `json:"average_rating"`
	TotalJobsCompleted int     `json:"total_jobs_completed"`
	DistanceMiles      float64 `json:"distance_miles"`
}

// Params locate the requested service.
// ScheduledTime is carried for the booking flow but does not filter
// out technicians with overlapping work.
type Params struct {
	Latitude      float64
	Longitude     float64
	ScheduledTime time.Time
}
