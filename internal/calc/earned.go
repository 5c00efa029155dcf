package calc

import "github.com/brixworth/wip-service/internal/model"

// EarnedRevenue is revenue recognized for work performed, broken out by
// cost category. Values are currency amounts, not formatted strings.
type EarnedRevenue struct {
	Labor    float64 `json:"labor"`
	Material float64 `json:"material"`
	Other    float64 `json:"other"`
	Total    float64 `json:"total"`
}

// resolvedTMSettings is TMSettings with every optional field defaulted.
// Defaulting lives here and nowhere else: markups default to 1 (no
// markup), rate and hours default to 0.
type resolvedTMSettings struct {
	laborBillingType model.LaborBillingType
	laborBillRate    float64
	laborHours       float64
	laborMarkup      float64
	materialMarkup   float64
	otherMarkup      float64
}

func resolveTMSettings(settings *model.TMSettings) resolvedTMSettings {
	resolved := resolvedTMSettings{
		laborBillingType: model.LaborBillingMarkup,
		laborMarkup:      1,
		materialMarkup:   1,
		otherMarkup:      1,
	}
	if settings == nil {
		return resolved
	}
	if settings.LaborBillingType != "" {
		resolved.laborBillingType = settings.LaborBillingType
	}
	if settings.LaborBillRate != nil {
		resolved.laborBillRate = *settings.LaborBillRate
	}
	if settings.LaborHours != nil {
		resolved.laborHours = *settings.LaborHours
	}
	if settings.LaborMarkup != nil {
		resolved.laborMarkup = *settings.LaborMarkup
	}
	if settings.MaterialMarkup != nil {
		resolved.materialMarkup = *settings.MaterialMarkup
	}
	if settings.OtherMarkup != nil {
		resolved.otherMarkup = *settings.OtherMarkup
	}
	return resolved
}

// CalculateEarnedRevenue recognizes revenue per job type.
//
// Fixed-price jobs use a per-component percent complete: each of labor,
// material and other earns its own contract share. Collapsing the three
// into one blended percent complete would misstate earned revenue
// whenever the cost mix diverges from the budget mix, since markup
// differs by category.
//
// Time-and-material jobs bill cost plus markup, with an optional fixed
// labor rate.
func CalculateEarnedRevenue(job model.Job) EarnedRevenue {
	switch job.JobType {
	case model.JobTypeTimeMaterial:
		return earnedTimeMaterial(job)
	default:
		return earnedFixedPrice(job)
	}
}

func earnedTimeMaterial(job model.Job) EarnedRevenue {
	settings := resolveTMSettings(job.TMSettings)

	var labor float64
	if settings.laborBillingType == model.LaborBillingFixedRate {
		labor = settings.laborBillRate * settings.laborHours
	} else {
		labor = job.Costs.Labor * settings.laborMarkup
	}

	material := job.Costs.Material * settings.materialMarkup
	other := job.Costs.Other * settings.otherMarkup

	return EarnedRevenue{
		Labor:    labor,
		Material: material,
		Other:    other,
		Total:    labor + material + other,
	}
}

func earnedFixedPrice(job model.Job) EarnedRevenue {
	labor := earnedComponent(job.Contract.Labor, job.Costs.Labor, job.CostToComplete.Labor)
	material := earnedComponent(job.Contract.Material, job.Costs.Material, job.CostToComplete.Material)
	other := earnedComponent(job.Contract.Other, job.Costs.Other, job.CostToComplete.Other)

	return EarnedRevenue{
		Labor:    labor,
		Material: material,
		Other:    other,
		Total:    labor + material + other,
	}
}

// earnedComponent applies the cost-to-cost method to one category. A
// component with zero forecasted cost is 0% complete, not undefined.
func earnedComponent(contract, cost, costToComplete float64) float64 {
	forecast := cost + costToComplete
	if forecast <= 0 {
		return 0
	}
	return contract * (cost / forecast)
}
