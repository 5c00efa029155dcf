package calc

import (
	"testing"

	"github.com/brixworth/wip-service/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestEarnedRevenueFixedPrice(t *testing.T) {
	job := model.Job{
		JobType:        model.JobTypeFixedPrice,
		Contract:       model.CostBreakdown{Labor: 100000},
		Costs:          model.CostBreakdown{Labor: 50000},
		CostToComplete: model.CostBreakdown{Labor: 50000},
	}

	earned := CalculateEarnedRevenue(job)
	if !almostEqual(earned.Labor, 50000) {
		t.Errorf("earned.Labor = %v, want 50000", earned.Labor)
	}
	if !almostEqual(earned.Total, 50000) {
		t.Errorf("earned.Total = %v, want 50000", earned.Total)
	}
}

func TestEarnedRevenueFixedPriceZeroForecastComponent(t *testing.T) {
	job := model.Job{
		JobType:  model.JobTypeFixedPrice,
		Contract: model.CostBreakdown{Labor: 100000, Material: 40000},
		// Material has no cost and no cost to complete: 0% complete.
		Costs:          model.CostBreakdown{Labor: 25000},
		CostToComplete: model.CostBreakdown{Labor: 75000},
	}

	earned := CalculateEarnedRevenue(job)
	if earned.Material != 0 {
		t.Errorf("zero-forecast component must earn 0, got %v", earned.Material)
	}
	if !almostEqual(earned.Labor, 25000) {
		t.Errorf("earned.Labor = %v, want 25000", earned.Labor)
	}
}

// Per-component earned revenue must not collapse into a single blended
// percent complete: when cost mixes diverge, the two methods disagree.
func TestEarnedRevenueFixedPriceComponentLevelNotBlended(t *testing.T) {
	job := model.Job{
		JobType:  model.JobTypeFixedPrice,
		Contract: model.CostBreakdown{Labor: 200000, Material: 50000},
		// Labor fully complete, material barely started.
		Costs:          model.CostBreakdown{Labor: 100000, Material: 10000},
		CostToComplete: model.CostBreakdown{Labor: 0, Material: 90000},
	}

	earned := CalculateEarnedRevenue(job)

	blendedPct := Sum(job.Costs) / (Sum(job.Costs) + Sum(job.CostToComplete))
	blended := Sum(job.Contract) * blendedPct

	if almostEqual(earned.Total, blended) {
		t.Fatalf("component-level earned (%v) must differ from blended (%v) for divergent mixes", earned.Total, blended)
	}
	// labor: 200000 * 1.0, material: 50000 * 0.1
	if !almostEqual(earned.Total, 205000) {
		t.Errorf("earned.Total = %v, want 205000", earned.Total)
	}
}

func TestEarnedRevenueTimeMaterialFixedRate(t *testing.T) {
	job := model.Job{
		JobType: model.JobTypeTimeMaterial,
		Costs:   model.CostBreakdown{Labor: 99999, Material: 1000, Other: 500},
		TMSettings: &model.TMSettings{
			LaborBillingType: model.LaborBillingFixedRate,
			LaborBillRate:    floatPtr(75),
			LaborHours:       floatPtr(40),
			MaterialMarkup:   floatPtr(1.2),
		},
	}

	earned := CalculateEarnedRevenue(job)
	// Fixed-rate labor ignores costs.Labor entirely.
	if !almostEqual(earned.Labor, 3000) {
		t.Errorf("earned.Labor = %v, want 3000", earned.Labor)
	}
	if !almostEqual(earned.Material, 1200) {
		t.Errorf("earned.Material = %v, want 1200", earned.Material)
	}
	// Other markup absent, defaults to 1.
	if !almostEqual(earned.Other, 500) {
		t.Errorf("earned.Other = %v, want 500", earned.Other)
	}
	if !almostEqual(earned.Total, 4700) {
		t.Errorf("earned.Total = %v, want 4700", earned.Total)
	}
}

func TestEarnedRevenueTimeMaterialMarkup(t *testing.T) {
	job := model.Job{
		JobType: model.JobTypeTimeMaterial,
		Costs:   model.CostBreakdown{Labor: 10000, Material: 5000, Other: 2000},
		TMSettings: &model.TMSettings{
			LaborBillingType: model.LaborBillingMarkup,
			LaborMarkup:      floatPtr(1.5),
			MaterialMarkup:   floatPtr(1.25),
			OtherMarkup:      floatPtr(1.1),
		},
	}

	earned := CalculateEarnedRevenue(job)
	if !almostEqual(earned.Labor, 15000) || !almostEqual(earned.Material, 6250) || !almostEqual(earned.Other, 2200) {
		t.Errorf("unexpected earned components: %+v", earned)
	}
	if !almostEqual(earned.Total, 23450) {
		t.Errorf("earned.Total = %v, want 23450", earned.Total)
	}
}

func TestEarnedRevenueTimeMaterialMissingSettings(t *testing.T) {
	job := model.Job{
		JobType: model.JobTypeTimeMaterial,
		Costs:   model.CostBreakdown{Labor: 8000, Material: 3000, Other: 1000},
	}

	// Nil settings: every markup defaults to 1, cost passes through.
	earned := CalculateEarnedRevenue(job)
	if !almostEqual(earned.Total, 12000) {
		t.Errorf("earned.Total = %v, want 12000", earned.Total)
	}
}

func TestEarnedRevenueTimeMaterialFixedRateMissingRate(t *testing.T) {
	job := model.Job{
		JobType: model.JobTypeTimeMaterial,
		Costs:   model.CostBreakdown{Labor: 8000},
		TMSettings: &model.TMSettings{
			LaborBillingType: model.LaborBillingFixedRate,
		},
	}

	// Rate and hours default to 0, so fixed-rate labor earns nothing.
	earned := CalculateEarnedRevenue(job)
	if earned.Labor != 0 {
		t.Errorf("earned.Labor = %v, want 0", earned.Labor)
	}
}
