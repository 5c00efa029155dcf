package calc

import (
	"math"
	"time"

	"github.com/brixworth/wip-service/internal/model"
)

// CalculateUnderbillingRisk tiers a job by how far invoicing lags
// earned revenue, relative to contract value. Percent complete uses the
// cost-to-cost method against budget, capped at 100%. A zero contract
// value has no defined ratio and returns RiskTierNone.
func CalculateUnderbillingRisk(job model.Job, thresholds Thresholds) model.RiskTier {
	contractValue := Sum(job.Contract)
	if contractValue == 0 {
		return model.RiskTierNone
	}

	budgetTotal := Sum(job.Budget)
	percentComplete := 0.0
	if budgetTotal > 0 {
		percentComplete = Sum(job.Costs) / budgetTotal
		if percentComplete > 1 {
			percentComplete = 1
		}
	}

	earned := contractValue * percentComplete
	billingPosition := Sum(job.Invoiced) - earned
	ratio := billingPosition / contractValue

	switch {
	case ratio < thresholds.UnderbillingHighRatio:
		return model.RiskTierHigh
	case ratio < thresholds.UnderbillingMediumRatio:
		return model.RiskTierMedium
	default:
		return model.RiskTierLow
	}
}

// CalculateScheduleDrift estimates how many whole weeks a job's
// progress lags its calendar. It compares the fraction of contract time
// elapsed at now against cost-to-cost percent complete; gaps under the
// noise ratio report as zero. Jobs without concrete start and end
// dates, or with now outside the contract window, report zero.
func CalculateScheduleDrift(job model.Job, now time.Time, thresholds Thresholds) int {
	start, okStart := parseDate(job.StartDate)
	end, okEnd := parseDate(job.EndDate)
	if !okStart || !okEnd {
		return 0
	}

	duration := end.Sub(start)
	if duration <= 0 {
		return 0
	}
	elapsed := now.Sub(start)
	if elapsed <= 0 || elapsed > duration {
		return 0
	}

	timeFraction := float64(elapsed) / float64(duration)
	costFraction := CalculatePercentComplete(job) / 100

	drift := timeFraction - costFraction
	if drift < thresholds.ScheduleDriftNoiseRatio {
		return 0
	}

	weeks := int(math.Round(drift * duration.Hours() / (7 * 24)))
	if weeks < 0 {
		return 0
	}
	return weeks
}

// CalculateMarginFade measures margin erosion between the original
// target and the current forecast, in percentage points rounded to one
// decimal. The original margin comes from the job's target override
// when present, otherwise from contract minus budget. A zero contract
// value reports no fade.
func CalculateMarginFade(job model.Job, thresholds Thresholds) (fadePoints float64, isFading bool) {
	contractValue := Sum(job.Contract)
	if contractValue == 0 {
		return 0, false
	}

	originalMargin := (contractValue - Sum(job.Budget)) / contractValue
	if job.TargetMargin != nil {
		originalMargin = *job.TargetMargin
	}

	forecastedCost := Sum(job.Costs) + Sum(job.CostToComplete)
	forecastedMargin := (contractValue - forecastedCost) / contractValue

	fadePoints = math.Round((originalMargin-forecastedMargin)*1000) / 10
	return fadePoints, fadePoints > thresholds.MarginFadePoints
}

// AnalyzeJobRisk composes the risk derivations into one result.
func AnalyzeJobRisk(job model.Job, now time.Time, thresholds Thresholds) model.SmartRiskAnalysis {
	fadePoints, isFading := CalculateMarginFade(job, thresholds)
	return model.SmartRiskAnalysis{
		UnderbillingRisk:   CalculateUnderbillingRisk(job, thresholds),
		ScheduleDriftWeeks: CalculateScheduleDrift(job, now, thresholds),
		MarginFadePercent:  fadePoints,
		IsMarginFading:     isFading,
	}
}
