package calc

import "github.com/brixworth/wip-service/internal/model"

// CalculateForecastedProfit projects profit at completion from current
// figures. Fixed-price jobs compare contract against forecasted cost;
// time-and-material jobs compare earned revenue against cost to date.
func CalculateForecastedProfit(job model.Job) float64 {
	switch job.JobType {
	case model.JobTypeTimeMaterial:
		return CalculateEarnedRevenue(job).Total - Sum(job.Costs)
	default:
		return Sum(job.Contract) - (Sum(job.Costs) + Sum(job.CostToComplete))
	}
}

// CalculateForecastedProfitWithCOs projects profit with approved change
// orders folded in.
//
// For time-and-material jobs the change-order contribution is
// approximated as coContract - coCosts on top of the base T&M profit,
// rather than recomputing earned revenue with change-order markups.
// Known simplification; keep it as is.
func CalculateForecastedProfitWithCOs(job model.Job, changeOrders []model.ChangeOrder) float64 {
	totals := JobTotalsWithCOs(job, changeOrders)

	switch job.JobType {
	case model.JobTypeTimeMaterial:
		base := CalculateEarnedRevenue(job).Total - Sum(job.Costs)
		return base + Sum(totals.COContract) - Sum(totals.COCosts)
	default:
		return Sum(totals.Contract) - (Sum(totals.Costs) + Sum(totals.CostToComplete))
	}
}

// CalculatePercentComplete returns cost-to-cost progress as 0-100.
// Authoritative for fixed-price jobs; still computable for T&M jobs but
// only a rough progress proxy there.
func CalculatePercentComplete(job model.Job) float64 {
	costs := Sum(job.Costs)
	forecast := costs + Sum(job.CostToComplete)
	if forecast == 0 {
		return 0
	}
	return costs / forecast * 100
}

// CalculatePercentCompleteWithCOs is CalculatePercentComplete over
// change-order-adjusted totals.
func CalculatePercentCompleteWithCOs(job model.Job, changeOrders []model.ChangeOrder) float64 {
	totals := JobTotalsWithCOs(job, changeOrders)
	costs := Sum(totals.Costs)
	forecast := costs + Sum(totals.CostToComplete)
	if forecast == 0 {
		return 0
	}
	return costs / forecast * 100
}
