package matching

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Available + approved technicians with last location
// --------------------------------------------------
func (r *PostgresRepository) ListAvailableApproved(ctx context.Context) ([]TechnicianRecord, error) {
	query := `
		SELECT
			tp.id,
			COALESCE(p.full_name, ''),
			COALESCE(p.profile_photo_url, ''),
			tp.average_rating,
			tp.total_jobs_completed,
			tl.latitude IS NOT NULL,
			COALESCE(tl.latitude, 0),
			COALESCE(tl.longitude, 0),
			COALESCE(tl.updated_at, 'epoch'::timestamptz)
		FROM technician_profiles tp
		JOIN profiles p ON p.id = tp.id
		LEFT JOIN LATERAL (
			SELECT latitude, longitude, updated_at
			FROM technician_locations
			WHERE technician_id = tp.id
			ORDER BY updated_at DESC
			LIMIT 1
		) tl ON true
		WHERE tp.is_available = true
		  AND tp.application_status = 'approved'
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []TechnicianRecord

	for rows.Next() {
		var rec TechnicianRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.FullName,
			&rec.ProfilePhotoURL,
			&rec.AverageRating,
			&rec.TotalJobsCompleted,
			&rec.HasLocation,
			&rec.Latitude,
			&rec.Longitude,
			&rec.LocationUpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
