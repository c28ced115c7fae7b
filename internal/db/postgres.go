package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		// -------------------------------
		// PROFILES
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS profiles (
			id UUID PRIMARY KEY,
			role VARCHAR(50) NOT NULL DEFAULT 'customer',
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(50),
			profile_photo_url VARCHAR(500),
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// TECHNICIANS (consumer marketplace)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS technician_profiles (
			id UUID PRIMARY KEY REFERENCES profiles(id),
			average_rating NUMERIC(3,2) NOT NULL DEFAULT 0,
			total_jobs_completed INT NOT NULL DEFAULT 0,
			is_available BOOLEAN NOT NULL DEFAULT false,
			application_status VARCHAR(50) NOT NULL DEFAULT 'pending',
			stripe_account_id VARCHAR(255),
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS technician_locations (
			id UUID PRIMARY KEY,
			technician_id UUID NOT NULL REFERENCES technician_profiles(id),
			latitude DOUBLE PRECISION NOT NULL,
			longitude DOUBLE PRECISION NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// CUSTOMER DATA
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS vehicles (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES profiles(id),
			make VARCHAR(100) NOT NULL,
			model VARCHAR(100) NOT NULL,
			year INT NOT NULL,
			vehicle_type VARCHAR(50) NOT NULL,
			recommended_oil_type VARCHAR(50),
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS addresses (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES profiles(id),
			street_address VARCHAR(255) NOT NULL,
			city VARCHAR(100) NOT NULL,
			state VARCHAR(50) NOT NULL,
			zip_code VARCHAR(20) NOT NULL,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// CONSUMER JOBS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS jobs (
			id UUID PRIMARY KEY,
			customer_id UUID NOT NULL REFERENCES profiles(id),
			technician_id UUID REFERENCES technician_profiles(id),
			vehicle_id UUID NOT NULL REFERENCES vehicles(id),
			address_id UUID NOT NULL REFERENCES addresses(id),
			status VARCHAR(50) NOT NULL DEFAULT 'pending',
			oil_type VARCHAR(50) NOT NULL,
			price_cents BIGINT NOT NULL,
			platform_fee_cents BIGINT NOT NULL,
			technician_earnings_cents BIGINT NOT NULL,
			scheduled_time TIMESTAMPTZ NOT NULL,
			special_instructions TEXT,
			stripe_payment_intent_id VARCHAR(255),
			stripe_transfer_id VARCHAR(255),
			accepted_at TIMESTAMPTZ,
			started_at TIMESTAMPTZ,
			completed_at TIMESTAMPTZ,
			cancelled_at TIMESTAMPTZ,
			cancellation_reason TEXT,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// SHOPS (B2B)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS shops (
			id UUID PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES profiles(id),
			shop_name VARCHAR(255) NOT NULL,
			business_email VARCHAR(255) NOT NULL,
			subscription_tier VARCHAR(50) NOT NULL DEFAULT 'solo',
			subscription_status VARCHAR(50) NOT NULL DEFAULT 'trialing',
			stripe_customer_id VARCHAR(255),
			stripe_subscription_id VARCHAR(255),
			stripe_account_id VARCHAR(255),
			trial_ends_at TIMESTAMPTZ,
			total_technicians INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS shop_technicians (
			id UUID PRIMARY KEY,
			shop_id UUID NOT NULL REFERENCES shops(id),
			profile_id UUID NOT NULL REFERENCES profiles(id),
			license_number VARCHAR(100) NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT true,
			is_active BOOLEAN NOT NULL DEFAULT true,
			total_jobs INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS shop_service_packages (
			id UUID PRIMARY KEY,
			shop_id UUID NOT NULL REFERENCES shops(id),
			package_name VARCHAR(100) NOT NULL,
			description TEXT,
			price_cents BIGINT NOT NULL,
			estimated_duration_minutes INT NOT NULL,
			oil_type VARCHAR(50),
			includes_filter BOOLEAN NOT NULL DEFAULT true,
			includes_inspection BOOLEAN NOT NULL DEFAULT false,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (shop_id, package_name)
		)`,

		// -------------------------------
		// B2B BOOKINGS + DISPATCH
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS bookings (
			id UUID PRIMARY KEY,
			customer_id UUID NOT NULL REFERENCES profiles(id),
			shop_id UUID NOT NULL REFERENCES shops(id),
			shop_technician_id UUID REFERENCES shop_technicians(id),
			service_package_id UUID REFERENCES shop_service_packages(id),
			status VARCHAR(50) NOT NULL DEFAULT 'pending',
			scheduled_date TIMESTAMPTZ NOT NULL,
			service_address VARCHAR(255) NOT NULL DEFAULT '',
			estimated_price_cents BIGINT NOT NULL DEFAULT 0,
			transaction_fee_cents BIGINT,
			shop_payout_cents BIGINT,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS job_assignments (
			id UUID PRIMARY KEY,
			booking_id UUID NOT NULL REFERENCES bookings(id),
			shop_id UUID NOT NULL REFERENCES shops(id),
			assigned_to UUID NOT NULL REFERENCES shop_technicians(id),
			assigned_by UUID REFERENCES profiles(id),
			assignment_type VARCHAR(50) NOT NULL,
			status VARCHAR(50) NOT NULL DEFAULT 'assigned',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,

		// -------------------------------
		// NOTIFICATIONS
		// Written by the job_events queue consumer; the API only
		// publishes to the exchange.
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES profiles(id),
			title VARCHAR(255) NOT NULL,
			body TEXT NOT NULL,
			type VARCHAR(100) NOT NULL,
			data JSONB,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	log.Println("Schema initialized successfully")
	return nil
}
