package packages

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrPackageNotFound = errors.New("package not found")

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create package
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, pkg *ServicePackage) error {
	pkg.ID = uuid.NewString()
	pkg.IsActive = true

	query := `
		INSERT INTO shop_service_packages (
			id,
			shop_id,
			package_name,
			description,
			price_cents,
			estimated_duration_minutes,
			oil_type,
			includes_filter,
			includes_inspection,
			is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		pkg.ID,
		pkg.ShopID,
		pkg.PackageName,
		pkg.Description,
		pkg.PriceCents,
		pkg.EstimatedDurationMinutes,
		pkg.OilType,
		pkg.IncludesFilter,
		pkg.IncludesInspection,
	).Scan(&pkg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Update package
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, pkg *ServicePackage) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE shop_service_packages
		SET package_name = $1,
		    description = $2,
		    price_cents = $3,
		    estimated_duration_minutes = $4,
		    oil_type = $5,
		    includes_filter = $6,
		    includes_inspection = $7,
		    updated_at = now()
		WHERE id = $8
	`,
		pkg.PackageName,
		pkg.Description,
		pkg.PriceCents,
		pkg.EstimatedDurationMinutes,
		pkg.OilType,
		pkg.IncludesFilter,
		pkg.IncludesInspection,
		pkg.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPackageNotFound
	}
	return nil
}

// --------------------------------------------------
// List packages for a shop
// --------------------------------------------------
func (r *PostgresRepository) ListByShop(ctx context.Context, shopID string) ([]*ServicePackage, error) {
	query := `
		SELECT
			id,
			shop_id,
			package_name,
			COALESCE(description, ''),
			price_cents,
			estimated_duration_minutes,
			COALESCE(oil_type, ''),
			includes_filter,
			includes_inspection,
			is_active,
			created_at
		FROM shop_service_packages
		WHERE shop_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*ServicePackage

	for rows.Next() {
		var pkg ServicePackage
		if err := rows.Scan(
			&pkg.ID,
			&pkg.ShopID,
			&pkg.PackageName,
			&pkg.Description,
			&pkg.PriceCents,
			&pkg.EstimatedDurationMinutes,
			&pkg.OilType,
			&pkg.IncludesFilter,
			&pkg.IncludesInspection,
			&pkg.IsActive,
			&pkg.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &pkg)
	}

	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*ServicePackage, error) {
	query := `
		SELECT
			id,
			shop_id,
			package_name,
			COALESCE(description, ''),
			price_cents,
			estimated_duration_minutes,
			COALESCE(oil_type, ''),
			includes_filter,
			includes_inspection,
			is_active,
			created_at
		FROM shop_service_packages
		WHERE id = $1
	`

	var pkg ServicePackage
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pkg.ID,
		&pkg.ShopID,
		&pkg.PackageName,
		&pkg.Description,
		&pkg.PriceCents,
		&pkg.EstimatedDurationMinutes,
		&pkg.OilType,
		&pkg.IncludesFilter,
		&pkg.IncludesInspection,
		&pkg.IsActive,
		&pkg.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// --------------------------------------------------
// Booking reference check
// --------------------------------------------------
func (r *PostgresRepository) IsReferenced(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE service_package_id = $1
		)
	`, id).Scan(&exists)

	return exists, err
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE shop_service_packages
		SET is_active = $1, updated_at = now()
		WHERE id = $2
	`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPackageNotFound
	}
	return nil
}

func (r *PostgresRepository) HardDelete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM shop_service_packages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPackageNotFound
	}
	return nil
}
