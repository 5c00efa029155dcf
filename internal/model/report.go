package model

import "time"

// WipReportRow is one job line on the work-in-progress schedule.
type WipReportRow struct {
	JobNumber        string
	Name             string
	JobType          JobType
	ContractValue    float64
	OriginalBudget   float64
	CostsToDate      float64
	CostToComplete   float64
	PercentComplete  float64
	EarnedRevenue    float64
	InvoicedToDate   float64
	BillingPosition  float64
	BillingLabel     string
	OnTarget         bool // billing position inside the neutral band
	ForecastedProfit float64
	ForecastedMargin float64
	UnderbillingRisk RiskTier
}

// WipReport is the input to the Excel export.
type WipReport struct {
	GeneratedAt time.Time
	Rows        []WipReportRow
}

// JobSummaryDocument is the input to the PDF export for one job.
type JobSummaryDocument struct {
	Job              Job
	EarnedRevenue    float64
	PercentComplete  float64
	BillingPosition  float64
	BillingLabel     string
	ForecastedCost   float64
	ForecastedProfit float64
	ForecastedMargin float64
	Risk             SmartRiskAnalysis
	Warnings         []ScheduleWarning
	GeneratedAt      time.Time
}
