package calc

import (
	"testing"
	"time"

	"github.com/brixworth/wip-service/internal/model"
)

func TestCalculateUnderbillingRisk(t *testing.T) {
	thresholds := DefaultThresholds()

	base := model.Job{
		Contract: model.CostBreakdown{Labor: 1000000},
		Budget:   model.CostBreakdown{Labor: 800000},
		Costs:    model.CostBreakdown{Labor: 400000},
	}

	tests := []struct {
		name     string
		invoiced float64
		want     model.RiskTier
	}{
		// pct = 0.5, earned = 500000
		{"high", 380000, model.RiskTierHigh},     // ratio -0.12
		{"medium", 430000, model.RiskTierMedium}, // ratio -0.07
		{"low", 470000, model.RiskTierLow},       // ratio -0.03
		{"over billed is low", 600000, model.RiskTierLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := base
			job.Invoiced = model.CostBreakdown{Labor: tt.invoiced}
			if got := CalculateUnderbillingRisk(job, thresholds); got != tt.want {
				t.Errorf("risk = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateUnderbillingRiskZeroContract(t *testing.T) {
	job := model.Job{Budget: model.CostBreakdown{Labor: 100000}}
	if got := CalculateUnderbillingRisk(job, DefaultThresholds()); got != model.RiskTierNone {
		t.Errorf("zero contract must yield RiskTierNone, got %v", got)
	}
}

func TestCalculateUnderbillingRiskPercentCompleteCapped(t *testing.T) {
	job := model.Job{
		Contract: model.CostBreakdown{Labor: 100000},
		Budget:   model.CostBreakdown{Labor: 50000},
		Costs:    model.CostBreakdown{Labor: 80000}, // 160% of budget, capped at 100%
		Invoiced: model.CostBreakdown{Labor: 100000},
	}
	if got := CalculateUnderbillingRisk(job, DefaultThresholds()); got != model.RiskTierLow {
		t.Errorf("capped percent complete should place fully billed job at Low, got %v", got)
	}
}

func TestCalculateMarginFade(t *testing.T) {
	thresholds := DefaultThresholds()

	job := model.Job{
		Contract:       model.CostBreakdown{Labor: 500000},
		Budget:         model.CostBreakdown{Labor: 400000},
		Costs:          model.CostBreakdown{Labor: 300000},
		CostToComplete: model.CostBreakdown{Labor: 150000},
	}

	// original 20%, forecast 10%
	fade, fading := CalculateMarginFade(job, thresholds)
	if !almostEqual(fade, 10.0) {
		t.Errorf("fade = %v, want 10.0", fade)
	}
	if !fading {
		t.Error("10 points of fade must flag as fading")
	}
}

func TestCalculateMarginFadeBelowThreshold(t *testing.T) {
	job := model.Job{
		Contract:       model.CostBreakdown{Labor: 500000},
		Budget:         model.CostBreakdown{Labor: 400000},
		Costs:          model.CostBreakdown{Labor: 200000},
		CostToComplete: model.CostBreakdown{Labor: 205000},
	}

	// original 20%, forecast 19%: one point of fade
	fade, fading := CalculateMarginFade(job, DefaultThresholds())
	if !almostEqual(fade, 1.0) {
		t.Errorf("fade = %v, want 1.0", fade)
	}
	if fading {
		t.Error("one point of fade must not flag as fading")
	}
}

func TestCalculateMarginFadeZeroContract(t *testing.T) {
	fade, fading := CalculateMarginFade(model.Job{}, DefaultThresholds())
	if fade != 0 || fading {
		t.Errorf("zero contract must report no fade, got %v/%v", fade, fading)
	}
}

func TestCalculateMarginFadeTargetOverride(t *testing.T) {
	job := model.Job{
		Contract:       model.CostBreakdown{Labor: 500000},
		Budget:         model.CostBreakdown{Labor: 400000},
		Costs:          model.CostBreakdown{Labor: 300000},
		CostToComplete: model.CostBreakdown{Labor: 150000},
		TargetMargin:   floatPtr(0.15),
	}

	// override 15%, forecast 10%
	fade, _ := CalculateMarginFade(job, DefaultThresholds())
	if !almostEqual(fade, 5.0) {
		t.Errorf("fade with target override = %v, want 5.0", fade)
	}
}

func TestCalculateScheduleDrift(t *testing.T) {
	thresholds := DefaultThresholds()

	job := model.Job{
		StartDate:      "2024-01-01",
		EndDate:        "2024-12-26", // 360 days
		Costs:          model.CostBreakdown{Labor: 25000},
		CostToComplete: model.CostBreakdown{Labor: 75000}, // 25% complete
	}

	// Halfway through the calendar: drift ratio 0.25, about 13 weeks.
	now := time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC)
	if got := CalculateScheduleDrift(job, now, thresholds); got != 13 {
		t.Errorf("drift = %v weeks, want 13", got)
	}
}

func TestCalculateScheduleDriftNoise(t *testing.T) {
	job := model.Job{
		StartDate:      "2024-01-01",
		EndDate:        "2024-12-26",
		Costs:          model.CostBreakdown{Labor: 45000},
		CostToComplete: model.CostBreakdown{Labor: 55000}, // 45% complete
	}

	// Half elapsed vs 45% complete: 5% gap, under the noise ratio.
	now := time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC)
	if got := CalculateScheduleDrift(job, now, DefaultThresholds()); got != 0 {
		t.Errorf("drift below noise ratio must be 0, got %v", got)
	}
}

func TestCalculateScheduleDriftUnsetDates(t *testing.T) {
	job := model.Job{
		StartDate: model.DateTBD,
		EndDate:   "2024-12-26",
	}
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := CalculateScheduleDrift(job, now, DefaultThresholds()); got != 0 {
		t.Errorf("TBD start date must yield 0 drift, got %v", got)
	}
}

func TestCalculateScheduleDriftOutsideWindow(t *testing.T) {
	job := model.Job{
		StartDate: "2024-01-01",
		EndDate:   "2024-06-30",
	}

	before := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	after := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	if got := CalculateScheduleDrift(job, before, DefaultThresholds()); got != 0 {
		t.Errorf("now before start must yield 0, got %v", got)
	}
	if got := CalculateScheduleDrift(job, after, DefaultThresholds()); got != 0 {
		t.Errorf("now after end must yield 0, got %v", got)
	}
}

func TestAnalyzeJobRisk(t *testing.T) {
	job := model.Job{
		Contract:       model.CostBreakdown{Labor: 1000000},
		Budget:         model.CostBreakdown{Labor: 800000},
		Costs:          model.CostBreakdown{Labor: 400000},
		CostToComplete: model.CostBreakdown{Labor: 500000},
		Invoiced:       model.CostBreakdown{Labor: 380000},
		StartDate:      "2024-01-01",
		EndDate:        "2024-12-26",
	}

	now := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	analysis := AnalyzeJobRisk(job, now, DefaultThresholds())

	if analysis.UnderbillingRisk != model.RiskTierHigh {
		t.Errorf("UnderbillingRisk = %v, want HIGH", analysis.UnderbillingRisk)
	}
	if analysis.ScheduleDriftWeeks <= 0 {
		t.Errorf("expected positive schedule drift, got %v", analysis.ScheduleDriftWeeks)
	}
	// original 20%, forecast 10%
	if !almostEqual(analysis.MarginFadePercent, 10.0) || !analysis.IsMarginFading {
		t.Errorf("unexpected margin fade: %+v", analysis)
	}
}
