package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/axis-meridian-dev/Luber-development/internal/pricing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrJobNotFound     = errors.New("job not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrJobNotPending   = errors.New("job is no longer pending")
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const jobColumns = `
	id,
	customer_id,
	COALESCE(technician_id::text, ''),
	vehicle_id,
	address_id,
	status,
	oil_type,
	price_cents,
	platform_fee_cents,
	technician_earnings_cents,
	scheduled_time,
	COALESCE(special_instructions, ''),
	COALESCE(stripe_payment_intent_id, ''),
	COALESCE(stripe_transfer_id, ''),
	accepted_at,
	started_at,
	completed_at,
	cancelled_at,
	COALESCE(cancellation_reason, ''),
	created_at,
	updated_at
`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(
		&j.ID,
		&j.CustomerID,
		&j.TechnicianID,
		&j.VehicleID,
		&j.AddressID,
		&j.Status,
		&j.OilType,
		&j.PriceCents,
		&j.PlatformFeeCents,
		&j.TechnicianEarningsCents,
		&j.ScheduledTime,
		&j.SpecialInstructions,
		&j.StripePaymentIntentID,
		&j.StripeTransferID,
		&j.AcceptedAt,
		&j.StartedAt,
		&j.CompletedAt,
		&j.CancelledAt,
		&j.CancellationReason,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}
	return &j, nil
}

// --------------------------------------------------
// Create job
// --------------------------------------------------
func (r *PostgresRepository) CreateJob(ctx context.Context, job *Job) error {
	job.ID = uuid.NewString()
	job.Status = StatusPending

	query := `
		INSERT INTO jobs (
			id,
			customer_id,
			vehicle_id,
			address_id,
			status,
			oil_type,
			price_cents,
			platform_fee_cents,
			technician_earnings_cents,
			scheduled_time,
			special_instructions,
			stripe_payment_intent_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		job.ID,
		job.CustomerID,
		job.VehicleID,
		job.AddressID,
		job.Status,
		job.OilType,
		job.PriceCents,
		job.PlatformFeeCents,
		job.TechnicianEarningsCents,
		job.ScheduledTime,
		job.SpecialInstructions,
		job.StripePaymentIntentID,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetJob(ctx context.Context, id string) (*Job, error) {
	return scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

// --------------------------------------------------
// Accept (conditional on still-pending)
// --------------------------------------------------
func (r *PostgresRepository) AcceptPending(ctx context.Context, jobID, technicianID string, at time.Time) (*Job, error) {
	query := `
		UPDATE jobs
		SET technician_id = $1, status = $2, accepted_at = $3, updated_at = now()
		WHERE id = $4
		  AND status = $5
		RETURNING ` + jobColumns

	job, err := scanJob(r.db.QueryRow(ctx, query, technicianID, StatusAccepted, at, jobID, StatusPending))
	if errors.Is(err, ErrJobNotFound) {
		// Distinguish a missing job from a lost race.
		if _, getErr := r.GetJob(ctx, jobID); getErr == nil {
			return nil, ErrJobNotPending
		}
		return nil, ErrJobNotFound
	}
	return job, err
}

func (r *PostgresRepository) MarkStarted(ctx context.Context, jobID string, at time.Time) error {
	return r.exec(ctx, `
		UPDATE jobs
		SET status = $1, started_at = $2, updated_at = now()
		WHERE id = $3
	`, StatusInProgress, at, jobID)
}

func (r *PostgresRepository) MarkCompleted(ctx context.Context, jobID string, at time.Time) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE jobs
			SET status = $1, completed_at = $2, updated_at = now()
			WHERE id = $3
		`, StatusCompleted, at, jobID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrJobNotFound
		}

		_, err = tx.Exec(ctx, `
			UPDATE technician_profiles
			SET total_jobs_completed = total_jobs_completed + 1, updated_at = now()
			WHERE id = (SELECT technician_id FROM jobs WHERE id = $1)
		`, jobID)
		return err
	})
}

func (r *PostgresRepository) MarkCancelled(ctx context.Context, jobID, reason string, at time.Time) error {
	return r.exec(ctx, `
		UPDATE jobs
		SET status = $1, cancelled_at = $2, cancellation_reason = $3, updated_at = now()
		WHERE id = $4
	`, StatusCancelled, at, reason, jobID)
}

func (r *PostgresRepository) SetTransferID(ctx context.Context, jobID, transferID string) error {
	return r.exec(ctx, `
		UPDATE jobs
		SET stripe_transfer_id = $1, updated_at = now()
		WHERE id = $2
	`, transferID, jobID)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}
	return nil
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------
func (r *PostgresRepository) VehicleTypeForCustomer(ctx context.Context, vehicleID, customerID string) (pricing.VehicleType, error) {
	var vt pricing.VehicleType
	err := r.db.QueryRow(ctx, `
		SELECT vehicle_type
		FROM vehicles
		WHERE id = $1
		  AND user_id = $2
	`, vehicleID, customerID).Scan(&vt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrVehicleNotFound
	}
	return vt, err
}

func (r *PostgresRepository) TechnicianStripeAccount(ctx context.Context, technicianID string) (string, error) {
	var accountID string
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(stripe_account_id, '')
		FROM technician_profiles
		WHERE id = $1
	`, technicianID).Scan(&accountID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return accountID, err
}
