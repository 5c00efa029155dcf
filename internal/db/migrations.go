package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'job_type') THEN
			CREATE TYPE job_type AS ENUM ('FIXED_PRICE', 'TIME_MATERIAL');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'job_status') THEN
			CREATE TYPE job_status AS ENUM ('ACTIVE', 'ON_HOLD', 'COMPLETED');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'change_order_status') THEN
			CREATE TYPE change_order_status AS ENUM ('PENDING', 'APPROVED', 'REJECTED', 'COMPLETED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		job_number VARCHAR(64) NOT NULL,
		name TEXT NOT NULL,
		status job_status NOT NULL DEFAULT 'ACTIVE',
		job_type job_type NOT NULL,
		contract_labor NUMERIC(18,2) NOT NULL DEFAULT 0,
		contract_material NUMERIC(18,2) NOT NULL DEFAULT 0,
		contract_other NUMERIC(18,2) NOT NULL DEFAULT 0,
		budget_labor NUMERIC(18,2) NOT NULL DEFAULT 0,
		budget_material NUMERIC(18,2) NOT NULL DEFAULT 0,
		budget_other NUMERIC(18,2) NOT NULL DEFAULT 0,
		costs_labor NUMERIC(18,2) NOT NULL DEFAULT 0,
		costs_material NUMERIC(18,2) NOT NULL DEFAULT 0,
		costs_other NUMERIC(18,2) NOT NULL DEFAULT 0,
		ctc_labor NUMERIC(18,2) NOT NULL DEFAULT 0,
		ctc_material NUMERIC(18,2) NOT NULL DEFAULT 0,
		ctc_other NUMERIC(18,2) NOT NULL DEFAULT 0,
		invoiced_labor NUMERIC(18,2) NOT NULL DEFAULT 0,
		invoiced_material NUMERIC(18,2) NOT NULL DEFAULT 0,
		invoiced_other NUMERIC(18,2) NOT NULL DEFAULT 0,
		tm_labor_billing_type VARCHAR(16),
		tm_labor_bill_rate NUMERIC(18,4),
		tm_labor_hours NUMERIC(18,2),
		tm_labor_markup NUMERIC(8,4),
		tm_material_markup NUMERIC(8,4),
		tm_other_markup NUMERIC(8,4),
		start_date VARCHAR(32) NOT NULL DEFAULT 'TBD',
		end_date VARCHAR(32) NOT NULL DEFAULT 'TBD',
		target_end_date VARCHAR(32) NOT NULL DEFAULT 'TBD',
		target_profit NUMERIC(18,2),
		target_margin NUMERIC(8,4),
		created_by_org_id UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_jobs_job_number ON jobs (job_number);`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs (status);`,
	`CREATE TABLE IF NOT EXISTS job_mobilizations (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		enabled BOOLEAN NOT NULL DEFAULT TRUE,
		mobilize_date VARCHAR(32) NOT NULL DEFAULT 'TBD',
		demobilize_date VARCHAR(32) NOT NULL DEFAULT 'TBD',
		description TEXT NOT NULL DEFAULT '',
		position INT NOT NULL DEFAULT 0
	);`,
	`CREATE INDEX IF NOT EXISTS idx_job_mobilizations_job_id ON job_mobilizations (job_id);`,
	`CREATE TABLE IF NOT EXISTS change_orders (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		number VARCHAR(64) NOT NULL,
		status change_order_status NOT NULL DEFAULT 'PENDING',
		contract_labor NUMERIC(18,2) NOT NULL DEFAULT 0,
		contract_material NUMERIC(18,2) NOT NULL DEFAULT 0,
		contract_other NUMERIC(18,2) NOT NULL DEFAULT 0,
		costs_labor NUMERIC(18,2) NOT NULL DEFAULT 0,
		costs_material NUMERIC(18,2) NOT NULL DEFAULT 0,
		costs_other NUMERIC(18,2) NOT NULL DEFAULT 0,
		budget_labor NUMERIC(18,2) NOT NULL DEFAULT 0,
		budget_material NUMERIC(18,2) NOT NULL DEFAULT 0,
		budget_other NUMERIC(18,2) NOT NULL DEFAULT 0,
		invoiced_labor NUMERIC(18,2) NOT NULL DEFAULT 0,
		invoiced_material NUMERIC(18,2) NOT NULL DEFAULT 0,
		invoiced_other NUMERIC(18,2) NOT NULL DEFAULT 0,
		ctc_labor NUMERIC(18,2) NOT NULL DEFAULT 0,
		ctc_material NUMERIC(18,2) NOT NULL DEFAULT 0,
		ctc_other NUMERIC(18,2) NOT NULL DEFAULT 0,
		approved_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_change_orders_job_id ON change_orders (job_id);`,
	`CREATE INDEX IF NOT EXISTS idx_change_orders_status ON change_orders (status);`,
	`CREATE TABLE IF NOT EXISTS job_financial_snapshots (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		snapshot_at TIMESTAMPTZ NOT NULL,
		contract_amount NUMERIC(18,2) NOT NULL,
		original_budget NUMERIC(18,2) NOT NULL,
		original_profit NUMERIC(18,2) NOT NULL,
		original_margin NUMERIC(8,4) NOT NULL,
		earned_to_date NUMERIC(18,2) NOT NULL,
		invoiced_to_date NUMERIC(18,2) NOT NULL,
		cost_labor NUMERIC(18,2) NOT NULL,
		cost_material NUMERIC(18,2) NOT NULL,
		cost_other NUMERIC(18,2) NOT NULL,
		forecasted_cost NUMERIC(18,2) NOT NULL,
		forecasted_revenue NUMERIC(18,2) NOT NULL,
		forecasted_profit NUMERIC(18,2) NOT NULL,
		forecasted_margin NUMERIC(8,4) NOT NULL,
		billing_position NUMERIC(18,2) NOT NULL,
		billing_label VARCHAR(32) NOT NULL,
		margin_at_risk BOOLEAN NOT NULL DEFAULT FALSE,
		behind_schedule BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_job_id_snapshot_at ON job_financial_snapshots (job_id, snapshot_at DESC);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
