package calc

import "github.com/brixworth/wip-service/internal/model"

const (
	BillingLabelOverBilled  = "Over Billed"
	BillingLabelUnderBilled = "Under Billed"
)

// BillingPosition is the gap between what has been invoiced and what
// has been earned. Positive means billed ahead of work performed.
type BillingPosition struct {
	Difference   float64 `json:"difference"`
	IsOverBilled bool    `json:"is_over_billed"`
	Label        string  `json:"label"`
}

// CalculateBillingDifference derives the over/under-billed position.
// An exact-zero difference is labeled Under Billed; downstream WIP
// reports rely on that boundary, so the check stays strictly > 0.
func CalculateBillingDifference(job model.Job) BillingPosition {
	difference := Sum(job.Invoiced) - CalculateEarnedRevenue(job).Total
	position := BillingPosition{
		Difference: difference,
		Label:      BillingLabelUnderBilled,
	}
	if difference > 0 {
		position.IsOverBilled = true
		position.Label = BillingLabelOverBilled
	}
	return position
}
