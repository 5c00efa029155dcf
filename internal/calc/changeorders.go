package calc

import "github.com/brixworth/wip-service/internal/model"

// sumApproved folds one breakdown field of every approved or completed
// change order, starting from the zero breakdown. All five per-field
// reducers share this predicate; the inclusion rule is not configurable.
func sumApproved(changeOrders []model.ChangeOrder, field func(model.ChangeOrder) model.CostBreakdown) model.CostBreakdown {
	var total model.CostBreakdown
	for _, co := range changeOrders {
		if !co.CountsTowardTotals() {
			continue
		}
		total = Add(total, field(co))
	}
	return total
}

func SumApprovedContract(changeOrders []model.ChangeOrder) model.CostBreakdown {
	return sumApproved(changeOrders, func(co model.ChangeOrder) model.CostBreakdown { return co.Contract })
}

func SumApprovedCosts(changeOrders []model.ChangeOrder) model.CostBreakdown {
	return sumApproved(changeOrders, func(co model.ChangeOrder) model.CostBreakdown { return co.Costs })
}

func SumApprovedBudget(changeOrders []model.ChangeOrder) model.CostBreakdown {
	return sumApproved(changeOrders, func(co model.ChangeOrder) model.CostBreakdown { return co.Budget })
}

func SumApprovedInvoiced(changeOrders []model.ChangeOrder) model.CostBreakdown {
	return sumApproved(changeOrders, func(co model.ChangeOrder) model.CostBreakdown { return co.Invoiced })
}

func SumApprovedCostToComplete(changeOrders []model.ChangeOrder) model.CostBreakdown {
	return sumApproved(changeOrders, func(co model.ChangeOrder) model.CostBreakdown { return co.CostToComplete })
}

// JobTotals is a job's effective breakdowns with approved change orders
// folded in, alongside the change-order-only aggregates.
type JobTotals struct {
	Contract       model.CostBreakdown
	Costs          model.CostBreakdown
	Budget         model.CostBreakdown
	Invoiced       model.CostBreakdown
	CostToComplete model.CostBreakdown

	COContract       model.CostBreakdown
	COCosts          model.CostBreakdown
	COBudget         model.CostBreakdown
	COInvoiced       model.CostBreakdown
	COCostToComplete model.CostBreakdown

	HasApprovedCOs bool
}

// JobTotalsWithCOs adds the job's own breakdowns to the approved
// change-order aggregates. An empty or pending-only change-order list
// yields totals identical to the job's own figures.
func JobTotalsWithCOs(job model.Job, changeOrders []model.ChangeOrder) JobTotals {
	totals := JobTotals{
		COContract:       SumApprovedContract(changeOrders),
		COCosts:          SumApprovedCosts(changeOrders),
		COBudget:         SumApprovedBudget(changeOrders),
		COInvoiced:       SumApprovedInvoiced(changeOrders),
		COCostToComplete: SumApprovedCostToComplete(changeOrders),
	}

	totals.Contract = Add(job.Contract, totals.COContract)
	totals.Costs = Add(job.Costs, totals.COCosts)
	totals.Budget = Add(job.Budget, totals.COBudget)
	totals.Invoiced = Add(job.Invoiced, totals.COInvoiced)
	totals.CostToComplete = Add(job.CostToComplete, totals.COCostToComplete)

	for _, co := range changeOrders {
		if co.CountsTowardTotals() {
			totals.HasApprovedCOs = true
			break
		}
	}
	return totals
}
