package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brixworth/wip-service/internal/calc"
	"github.com/brixworth/wip-service/internal/model"
)

// JobStore supplies the calculation inputs; implemented by
// repository.JobRepository.
type JobStore interface {
	GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error)
	ListActiveJobs(ctx context.Context) ([]model.Job, error)
	ListChangeOrders(ctx context.Context, jobID uuid.UUID) ([]model.ChangeOrder, error)
}

// SnapshotStore persists and reads snapshot history; implemented by
// repository.SnapshotRepository.
type SnapshotStore interface {
	InsertSnapshots(ctx context.Context, snapshots []model.JobFinancialSnapshot) error
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.JobFinancialSnapshot, error)
}

type ExcelGenerator interface {
	Generate(report model.WipReport) ([]byte, error)
}

type PDFGenerator interface {
	Generate(doc model.JobSummaryDocument) ([]byte, error)
}

type WipService struct {
	jobs       JobStore
	snapshots  SnapshotStore
	excel      ExcelGenerator
	pdf        PDFGenerator
	thresholds calc.Thresholds
	now        func() time.Time
}

func NewWipService(jobs JobStore, snapshots SnapshotStore, excel ExcelGenerator, pdf PDFGenerator, thresholds calc.Thresholds) *WipService {
	return &WipService{
		jobs:       jobs,
		snapshots:  snapshots,
		excel:      excel,
		pdf:        pdf,
		thresholds: thresholds,
		now:        time.Now,
	}
}

// ChangeOrderAdjusted holds the metrics recomputed over CO-adjusted
// totals; present only when the job has approved change orders.
type ChangeOrderAdjusted struct {
	ContractValue    float64 `json:"contract_value"`
	ForecastedProfit float64 `json:"forecasted_profit"`
	PercentComplete  float64 `json:"percent_complete"`
}

type JobFinancials struct {
	JobID            uuid.UUID            `json:"job_id"`
	JobNumber        string               `json:"job_number"`
	Name             string               `json:"name"`
	JobType          model.JobType        `json:"job_type"`
	EarnedRevenue    calc.EarnedRevenue   `json:"earned_revenue"`
	Billing          calc.BillingPosition `json:"billing"`
	PercentComplete  float64              `json:"percent_complete"`
	ForecastedCost   float64              `json:"forecasted_cost"`
	ForecastedProfit float64              `json:"forecasted_profit"`
	ForecastedMargin float64              `json:"forecasted_margin"`
	HasApprovedCOs   bool                 `json:"has_approved_change_orders"`
	WithChangeOrders *ChangeOrderAdjusted `json:"with_change_orders,omitempty"`
}

type JobRisk struct {
	JobID    uuid.UUID               `json:"job_id"`
	Analysis model.SmartRiskAnalysis `json:"analysis"`
	Warnings []model.ScheduleWarning `json:"warnings"`
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *WipService) GetJobFinancials(ctx context.Context, jobID uuid.UUID, principal model.Principal) (*JobFinancials, error) {
	job, changeOrders, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	financials := buildJobFinancials(*job, changeOrders)
	return &financials, nil
}

func (s *WipService) GetJobRisk(ctx context.Context, jobID uuid.UUID, principal model.Principal) (*JobRisk, error) {
	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return &JobRisk{
		JobID:    job.ID,
		Analysis: calc.AnalyzeJobRisk(*job, s.now(), s.thresholds),
		Warnings: calc.ScheduleWarnings(*job, s.thresholds),
	}, nil
}

func (s *WipService) ListSnapshots(ctx context.Context, jobID uuid.UUID, principal model.Principal) ([]model.JobFinancialSnapshot, error) {
	if _, err := s.jobs.GetJob(ctx, jobID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.snapshots.ListByJob(ctx, jobID)
}

// ExportWipReport builds the WIP schedule across all active jobs as an
// Excel workbook.
func (s *WipService) ExportWipReport(ctx context.Context, principal model.Principal) (*ExportResult, error) {
	if !principal.CanExport() {
		return nil, ErrPermissionDenied
	}

	jobs, err := s.jobs.ListActiveJobs(ctx)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now()
	report := model.WipReport{GeneratedAt: generatedAt}
	for _, job := range jobs {
		changeOrders, err := s.jobs.ListChangeOrders(ctx, job.ID)
		if err != nil {
			return nil, err
		}
		report.Rows = append(report.Rows, s.buildWipRow(job, changeOrders))
	}

	content, err := s.excel.Generate(report)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		FileName: fmt.Sprintf("wip-schedule-%s.xlsx", generatedAt.Format("20060102")),
		Content:  content,
	}, nil
}

// ExportJobSummaryPDF renders one job's financial summary.
func (s *WipService) ExportJobSummaryPDF(ctx context.Context, jobID uuid.UUID, principal model.Principal) (*ExportResult, error) {
	if !principal.CanExport() {
		return nil, ErrPermissionDenied
	}

	job, _, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	earned := calc.CalculateEarnedRevenue(*job)
	billing := calc.CalculateBillingDifference(*job)
	forecastedCost := calc.Sum(job.Costs) + calc.Sum(job.CostToComplete)
	forecastedProfit := calc.CalculateForecastedProfit(*job)
	generatedAt := s.now()

	doc := model.JobSummaryDocument{
		Job:              *job,
		EarnedRevenue:    earned.Total,
		PercentComplete:  calc.CalculatePercentComplete(*job),
		BillingPosition:  billing.Difference,
		BillingLabel:     billing.Label,
		ForecastedCost:   forecastedCost,
		ForecastedProfit: forecastedProfit,
		ForecastedMargin: forecastedMargin(calc.Sum(job.Contract), forecastedProfit),
		Risk:             calc.AnalyzeJobRisk(*job, generatedAt, s.thresholds),
		Warnings:         calc.ScheduleWarnings(*job, s.thresholds),
		GeneratedAt:      generatedAt,
	}

	content, err := s.pdf.Generate(doc)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("job-%s-summary.pdf", sanitizeFileName(job.JobNumber))
	return &ExportResult{FileName: fileName, Content: content}, nil
}

func (s *WipService) loadJob(ctx context.Context, jobID uuid.UUID) (*model.Job, []model.ChangeOrder, error) {
	if jobID == uuid.Nil {
		return nil, nil, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if err := validateJob(*job); err != nil {
		return nil, nil, err
	}

	changeOrders, err := s.jobs.ListChangeOrders(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	return job, changeOrders, nil
}

func (s *WipService) buildWipRow(job model.Job, changeOrders []model.ChangeOrder) model.WipReportRow {
	financials := buildJobFinancials(job, changeOrders)
	position := financials.Billing.Difference

	return model.WipReportRow{
		JobNumber:        job.JobNumber,
		Name:             job.Name,
		JobType:          job.JobType,
		ContractValue:    calc.Sum(job.Contract),
		OriginalBudget:   calc.Sum(job.Budget),
		CostsToDate:      calc.Sum(job.Costs),
		CostToComplete:   calc.Sum(job.CostToComplete),
		PercentComplete:  financials.PercentComplete,
		EarnedRevenue:    financials.EarnedRevenue.Total,
		InvoicedToDate:   calc.Sum(job.Invoiced),
		BillingPosition:  position,
		BillingLabel:     financials.Billing.Label,
		OnTarget:         math.Abs(position) < s.thresholds.BillingNeutralBand,
		ForecastedProfit: financials.ForecastedProfit,
		ForecastedMargin: financials.ForecastedMargin,
		UnderbillingRisk: calc.CalculateUnderbillingRisk(job, s.thresholds),
	}
}

func buildJobFinancials(job model.Job, changeOrders []model.ChangeOrder) JobFinancials {
	earned := calc.CalculateEarnedRevenue(job)
	billing := calc.CalculateBillingDifference(job)
	forecastedProfit := calc.CalculateForecastedProfit(job)
	contractValue := calc.Sum(job.Contract)

	financials := JobFinancials{
		JobID:            job.ID,
		JobNumber:        job.JobNumber,
		Name:             job.Name,
		JobType:          job.JobType,
		EarnedRevenue:    earned,
		Billing:          billing,
		PercentComplete:  calc.CalculatePercentComplete(job),
		ForecastedCost:   calc.Sum(job.Costs) + calc.Sum(job.CostToComplete),
		ForecastedProfit: forecastedProfit,
		ForecastedMargin: forecastedMargin(contractValue, forecastedProfit),
	}

	totals := calc.JobTotalsWithCOs(job, changeOrders)
	financials.HasApprovedCOs = totals.HasApprovedCOs
	if totals.HasApprovedCOs {
		adjustedProfit := calc.CalculateForecastedProfitWithCOs(job, changeOrders)
		financials.WithChangeOrders = &ChangeOrderAdjusted{
			ContractValue:    calc.Sum(totals.Contract),
			ForecastedProfit: adjustedProfit,
			PercentComplete:  calc.CalculatePercentCompleteWithCOs(job, changeOrders),
		}
	}
	return financials
}

func forecastedMargin(contractValue, forecastedProfit float64) float64 {
	if contractValue == 0 {
		return 0
	}
	return forecastedProfit / contractValue
}

// validateJob enforces the engine's precondition that every breakdown
// field is a finite number.
func validateJob(job model.Job) error {
	for _, breakdown := range []model.CostBreakdown{
		job.Contract, job.Budget, job.Costs, job.CostToComplete, job.Invoiced,
	} {
		for _, v := range []float64{breakdown.Labor, breakdown.Material, breakdown.Other} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return ErrMalformedJob
			}
		}
	}
	return nil
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
