package model

import (
	"time"

	"github.com/google/uuid"
)

// JobFinancialSnapshot is a point-in-time capture of a job's derived
// metrics. Snapshots are never mutated after creation; SnapshotAt is
// shared across every job processed in one batch run.
type JobFinancialSnapshot struct {
	ID                uuid.UUID
	JobID             uuid.UUID
	SnapshotAt        time.Time
	ContractAmount    float64
	OriginalBudget    float64
	OriginalProfit    float64
	OriginalMargin    float64
	EarnedToDate      float64
	InvoicedToDate    float64
	CostLabor         float64
	CostMaterial      float64
	CostOther         float64
	ForecastedCost    float64
	ForecastedRevenue float64
	ForecastedProfit  float64
	ForecastedMargin  float64
	BillingPosition   float64
	BillingLabel      string
	MarginAtRisk      bool
	BehindSchedule    bool
	CreatedAt         time.Time
}
