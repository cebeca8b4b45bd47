package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'unit_kind') THEN
			CREATE TYPE unit_kind AS ENUM ('M2', 'M3', 'TON', 'DAILY', 'TRIP', 'SERVICE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'service_category') THEN
			CREATE TYPE service_category AS ENUM ('PAVING', 'PRIMING', 'WATERPROOFING', 'MOBILIZATION', 'DEMOBILIZATION', 'OTHER');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'segment_status') THEN
			CREATE TYPE segment_status AS ENUM ('PLANNED', 'RELEASED', 'IN_PROGRESS', 'PAVED', 'COMPLETED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'expense_category') THEN
			CREATE TYPE expense_category AS ENUM ('FUEL', 'MATERIALS', 'MAINTENANCE', 'OTHER');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		planned_quantity NUMERIC(18,3) NOT NULL DEFAULT 0,
		status VARCHAR(32) NOT NULL DEFAULT 'PLANNING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS service_definitions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL,
		description TEXT,
		category service_category NOT NULL,
		default_unit unit_kind NOT NULL,
		base_price NUMERIC(18,4),
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	);`,
	`CREATE TABLE IF NOT EXISTS project_service_commitments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		project_id UUID NOT NULL REFERENCES projects(id),
		service_id UUID NOT NULL REFERENCES service_definitions(id),
		service_name VARCHAR(255) NOT NULL,
		unit_kind unit_kind NOT NULL,
		unit_price NUMERIC(18,4) NOT NULL,
		quantity NUMERIC(18,3) NOT NULL,
		line_total NUMERIC(18,2) NOT NULL,
		observations TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMPTZ
	);`,
	`CREATE TABLE IF NOT EXISTS daily_production_reports (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		project_id UUID NOT NULL REFERENCES projects(id),
		report_date DATE NOT NULL,
		executed_amount NUMERIC(18,3) NOT NULL DEFAULT 0,
		tons_applied NUMERIC(18,3) NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS project_segments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		project_id UUID NOT NULL REFERENCES projects(id),
		name VARCHAR(255) NOT NULL,
		status segment_status NOT NULL DEFAULT 'PLANNED',
		executed_amount NUMERIC(18,3) NOT NULL DEFAULT 0
	);`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		project_id UUID NOT NULL REFERENCES projects(id),
		category expense_category NOT NULL,
		description TEXT NOT NULL,
		amount NUMERIC(18,2) NOT NULL,
		expense_date DATE NOT NULL,
		equipment_id UUID,
		fuel_purchase_id UUID,
		supplier VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS fuel_purchases (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		equipment_id UUID NOT NULL,
		project_id UUID REFERENCES projects(id),
		liters NUMERIC(18,3) NOT NULL,
		price_per_liter NUMERIC(18,4) NOT NULL,
		total_amount NUMERIC(18,2) NOT NULL,
		purchase_date DATE NOT NULL,
		gas_station VARCHAR(255) NOT NULL,
		odometer NUMERIC(18,1),
		observations TEXT,
		expense_id UUID REFERENCES expenses(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_commitments_project_id ON project_service_commitments (project_id) WHERE deleted_at IS NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_reports_project_id ON daily_production_reports (project_id);`,
	`CREATE INDEX IF NOT EXISTS idx_segments_project_id ON project_segments (project_id);`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_project_id ON expenses (project_id);`,
	`CREATE INDEX IF NOT EXISTS idx_fuel_purchases_project_id ON fuel_purchases (project_id) WHERE project_id IS NOT NULL;`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_expenses_fuel_purchase_id ON expenses (fuel_purchase_id) WHERE fuel_purchase_id IS NOT NULL;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
