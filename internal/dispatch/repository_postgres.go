package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrBookingNotFound = errors.New("booking not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Booking lookup
// --------------------------------------------------
func (r *PostgresRepository) GetBooking(ctx context.Context, bookingID string) (*Booking, error) {
	query := `
		SELECT
			id,
			customer_id,
			shop_id,
			COALESCE(shop_technician_id::text, ''),
			COALESCE(service_package_id::text, ''),
			status,
			scheduled_date,
			estimated_price_cents,
			created_at,
			updated_at
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	err := r.db.QueryRow(ctx, query, bookingID).Scan(
		&b.ID,
		&b.CustomerID,
		&b.ShopID,
		&b.ShopTechnicianID,
		&b.ServicePackageID,
		&b.Status,
		&b.ScheduledDate,
		&b.EstimatedPriceCents,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &b, nil
}

// --------------------------------------------------
// Assign (single transaction)
// --------------------------------------------------
func (r *PostgresRepository) Assign(ctx context.Context, booking *Booking, assignment *Assignment) error {
	assignment.ID = uuid.NewString()
	assignment.Status = AssignmentAssigned

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE bookings
			SET shop_technician_id = $1, status = $2, updated_at = now()
			WHERE id = $3
		`, assignment.AssignedTo, booking.Status, booking.ID)
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrBookingNotFound
		}

		return insertAssignment(ctx, tx, assignment)
	})
}

// --------------------------------------------------
// Reassign (single transaction)
// --------------------------------------------------
func (r *PostgresRepository) Reassign(ctx context.Context, bookingID, newTechnicianID string, assignment *Assignment) error {
	assignment.ID = uuid.NewString()
	assignment.Status = AssignmentAssigned

	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			UPDATE job_assignments
			SET status = $1
			WHERE booking_id = $2
			  AND status = $3
		`, AssignmentReassigned, bookingID, AssignmentAssigned); err != nil {
			return fmt.Errorf("failed to retire prior assignment: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE bookings
			SET shop_technician_id = $1, updated_at = now()
			WHERE id = $2
		`, newTechnicianID, bookingID)
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrBookingNotFound
		}

		return insertAssignment(ctx, tx, assignment)
	})
}

func insertAssignment(ctx context.Context, tx pgx.Tx, a *Assignment) error {
	var assignedBy any
	if a.AssignedBy != "" {
		assignedBy = a.AssignedBy
	}

	err := tx.QueryRow(ctx, `
		INSERT INTO job_assignments (
			id,
			booking_id,
			shop_id,
			assigned_to,
			assigned_by,
			assignment_type,
			status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`,
		a.ID,
		a.BookingID,
		a.ShopID,
		a.AssignedTo,
		assignedBy,
		a.AssignmentType,
		a.Status,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert assignment: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Auto-assign candidates (least loaded first)
// --------------------------------------------------
func (r *PostgresRepository) ListAvailableByWorkload(ctx context.Context, shopID string) ([]TechnicianOption, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, total_jobs
		FROM shop_technicians
		WHERE shop_id = $1
		  AND is_available = true
		  AND is_active = true
		ORDER BY total_jobs ASC, id ASC
	`, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []TechnicianOption

	for rows.Next() {
		var opt TechnicianOption
		if err := rows.Scan(&opt.ID, &opt.TotalJobs); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}

	return options, rows.Err()
}

// --------------------------------------------------
// Assignment history
// --------------------------------------------------
func (r *PostgresRepository) ListAssignments(ctx context.Context, bookingID string) ([]*Assignment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			id,
			booking_id,
			shop_id,
			assigned_to,
			COALESCE(assigned_by::text, ''),
			assignment_type,
			status,
			created_at
		FROM job_assignments
		WHERE booking_id = $1
		ORDER BY created_at
	`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*Assignment

	for rows.Next() {
		var a Assignment
		if err := rows.Scan(
			&a.ID,
			&a.BookingID,
			&a.ShopID,
			&a.AssignedTo,
			&a.AssignedBy,
			&a.AssignmentType,
			&a.Status,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, &a)
	}

	return assignments, rows.Err()
}
