package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brixworth/wip-service/internal/model"
)

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// InsertSnapshots persists one batch run in a single transaction, so a
// run is either fully recorded or not at all.
func (r *SnapshotRepository) InsertSnapshots(ctx context.Context, snapshots []model.JobFinancialSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, snapshot := range snapshots {
			err := tx.Exec(`
				INSERT INTO job_financial_snapshots (
					job_id,
					snapshot_at,
					contract_amount,
					original_budget,
					original_profit,
					original_margin,
					earned_to_date,
					invoiced_to_date,
					cost_labor,
					cost_material,
					cost_other,
					forecasted_cost,
					forecasted_revenue,
					forecasted_profit,
					forecasted_margin,
					billing_position,
					billing_label,
					margin_at_risk,
					behind_schedule
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				snapshot.JobID,
				snapshot.SnapshotAt,
				snapshot.ContractAmount,
				snapshot.OriginalBudget,
				snapshot.OriginalProfit,
				snapshot.OriginalMargin,
				snapshot.EarnedToDate,
				snapshot.InvoicedToDate,
				snapshot.CostLabor,
				snapshot.CostMaterial,
				snapshot.CostOther,
				snapshot.ForecastedCost,
				snapshot.ForecastedRevenue,
				snapshot.ForecastedProfit,
				snapshot.ForecastedMargin,
				snapshot.BillingPosition,
				snapshot.BillingLabel,
				snapshot.MarginAtRisk,
				snapshot.BehindSchedule,
			).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ListByJob returns a job's snapshot history, newest first.
func (r *SnapshotRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.JobFinancialSnapshot, error) {
	var snapshots []model.JobFinancialSnapshot
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			job_id,
			snapshot_at,
			contract_amount,
			original_budget,
			original_profit,
			original_margin,
			earned_to_date,
			invoiced_to_date,
			cost_labor,
			cost_material,
			cost_other,
			forecasted_cost,
			forecasted_revenue,
			forecasted_profit,
			forecasted_margin,
			billing_position,
			billing_label,
			margin_at_risk,
			behind_schedule,
			created_at
		FROM job_financial_snapshots
		WHERE job_id = ?
		ORDER BY snapshot_at DESC
	`, jobID).Scan(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
