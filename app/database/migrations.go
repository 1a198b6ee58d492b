package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := createCoreTables(db); err != nil {
		return err
	}
	if err := createPaymentsTable(db); err != nil {
		return err
	}
	if err := ensureReceiptIDUnique(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createCoreTables(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS branches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			code VARCHAR(50) UNIQUE NOT NULL,
			address TEXT,
			email VARCHAR(255),
			phone VARCHAR(20),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(20),
			branch_id UUID REFERENCES branches(id),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) UNIQUE NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS user_roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id),
			role_id UUID NOT NULL REFERENCES roles(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, role_id)
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS students (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id VARCHAR(50) UNIQUE NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			branch_id UUID NOT NULL REFERENCES branches(id),
			parent_email VARCHAR(255),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS fee_types (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) UNIQUE NOT NULL,
			code VARCHAR(50) UNIQUE NOT NULL,
			description TEXT,
			payment_frequency VARCHAR(20) NOT NULL
				CHECK (payment_frequency IN ('once', 'per_term', 'per_year', 'on_demand')),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS fees (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			fee_type_id UUID NOT NULL REFERENCES fee_types(id),
			branch_id UUID NOT NULL REFERENCES branches(id),
			title VARCHAR(255) NOT NULL,
			amount NUMERIC(12,2) NOT NULL,
			balance NUMERIC(12,2) NOT NULL DEFAULT 0,
			currency VARCHAR(10) NOT NULL DEFAULT 'UGX',
			paid BOOLEAN NOT NULL DEFAULT false,
			due_date DATE NOT NULL,
			paid_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to create core tables: %v", err)
		return err
	}
	return nil
}

func createPaymentsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			student_id UUID NOT NULL REFERENCES students(id),
			branch_id UUID NOT NULL REFERENCES branches(id),
			recorded_by UUID NOT NULL REFERENCES users(id),
			amount NUMERIC(12,2) NOT NULL CHECK (amount > 0),
			method VARCHAR(20) NOT NULL
				CHECK (method IN ('cash', 'bank_transfer', 'cheque', 'card', 'online')),
			note TEXT,
			receipt_id UUID NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		);

		CREATE INDEX IF NOT EXISTS idx_payments_student_id ON payments(student_id);
		CREATE INDEX IF NOT EXISTS idx_payments_branch_id ON payments(branch_id);
		CREATE INDEX IF NOT EXISTS idx_payments_created_at ON payments(created_at);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to create payments table: %v", err)
		return err
	}
	return nil
}

// ensureReceiptIDUnique backfills the uniqueness constraint on databases
// created before it existed. The constraint is the hard guarantee behind
// the advisory duplicate-receipt pre-check.
func ensureReceiptIDUnique(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM pg_constraint
				WHERE conname = 'payments_receipt_id_key'
			) THEN
				ALTER TABLE payments ADD CONSTRAINT payments_receipt_id_key UNIQUE (receipt_id);
				RAISE NOTICE 'Added unique constraint on payments.receipt_id';
			END IF;
		END $$;
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to run migration for receipt_id constraint: %v", err)
		return err
	}
	return nil
}
