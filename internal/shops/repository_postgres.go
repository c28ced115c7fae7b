package shops

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrShopNotFound = errors.New("shop not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Shop lookup
// --------------------------------------------------
func (r *PostgresRepository) GetByOwner(ctx context.Context, ownerID string) (*Shop, error) {
	query := `
		SELECT
			id,
			owner_id,
			shop_name,
			business_email,
			subscription_tier,
			subscription_status,
			COALESCE(stripe_customer_id, ''),
			COALESCE(stripe_subscription_id, ''),
			COALESCE(stripe_account_id, ''),
			trial_ends_at,
			total_technicians,
			created_at
		FROM shops
		WHERE owner_id = $1
	`

	var shop Shop
	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.ShopName,
		&shop.BusinessEmail,
		&shop.SubscriptionTier,
		&shop.SubscriptionStatus,
		&shop.StripeCustomerID,
		&shop.StripeSubscriptionID,
		&shop.StripeAccountID,
		&shop.TrialEndsAt,
		&shop.TotalTechnicians,
		&shop.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shop: %w", err)
	}

	return &shop, nil
}

// ShopIDForOwner resolves the shop owned by a user. Satisfies
// core.ShopReader for the packages and dispatch domains.
func (r *PostgresRepository) ShopIDForOwner(ctx context.Context, ownerID string) (string, error) {
	var id string
	err := r.db.QueryRow(ctx, `SELECT id FROM shops WHERE owner_id = $1`, ownerID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrShopNotFound
	}
	return id, err
}

// --------------------------------------------------
// Ownership check (SECURITY)
// --------------------------------------------------
func (r *PostgresRepository) IsOwner(ctx context.Context, shopID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM shops
			WHERE id = $1
			  AND owner_id = $2
		)
	`, shopID, userID).Scan(&exists)

	return exists, err
}

// --------------------------------------------------
// Technician roster
// --------------------------------------------------
func (r *PostgresRepository) CreateTechnician(ctx context.Context, tech *Technician) error {
	tech.ID = uuid.NewString()
	tech.IsActive = true

	query := `
		INSERT INTO shop_technicians (
			id,
			shop_id,
			profile_id,
			license_number,
			is_available,
			is_active
		)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		tech.ID,
		tech.ShopID,
		tech.ProfileID,
		tech.LicenseNumber,
		tech.IsAvailable,
	).Scan(&tech.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create technician: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		UPDATE shops
		SET total_technicians = total_technicians + 1, updated_at = now()
		WHERE id = $1
	`, tech.ShopID)

	return err
}

func (r *PostgresRepository) ListTechnicians(ctx context.Context, shopID string) ([]*Technician, error) {
	query := `
		SELECT
			id,
			shop_id,
			profile_id,
			license_number,
			is_available,
			is_active,
			total_jobs,
			created_at
		FROM shop_technicians
		WHERE shop_id = $1
		  AND is_active = true
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var technicians []*Technician

	for rows.Next() {
		var tech Technician
		if err := rows.Scan(
			&tech.ID,
			&tech.ShopID,
			&tech.ProfileID,
			&tech.LicenseNumber,
			&tech.IsAvailable,
			&tech.IsActive,
			&tech.TotalJobs,
			&tech.CreatedAt,
		); err != nil {
			return nil, err
		}
		technicians = append(technicians, &tech)
	}

	return technicians, rows.Err()
}

func (r *PostgresRepository) CountActiveTechnicians(ctx context.Context, shopID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM shop_technicians
		WHERE shop_id = $1
		  AND is_active = true
	`, shopID).Scan(&count)

	return count, err
}

func (r *PostgresRepository) DeactivateTechnician(ctx context.Context, shopID, technicianID string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE shop_technicians
		SET is_active = false, is_available = false, updated_at = now()
		WHERE id = $1
		  AND shop_id = $2
	`, technicianID, shopID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("technician not found")
	}

	_, err = r.db.Exec(ctx, `
		UPDATE shops
		SET total_technicians = GREATEST(total_technicians - 1, 0), updated_at = now()
		WHERE id = $1
	`, shopID)

	return err
}

func (r *PostgresRepository) SetTechnicianAvailability(ctx context.Context, shopID, technicianID string, available bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE shop_technicians
		SET is_available = $1, updated_at = now()
		WHERE id = $2
		  AND shop_id = $3
		  AND is_active = true
	`, available, technicianID, shopID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("technician not found")
	}
	return nil
}
