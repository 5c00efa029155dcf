package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brixworth/wip-service/internal/calc"
	"github.com/brixworth/wip-service/internal/model"
)

// SnapshotService runs the periodic snapshot batch: it computes and
// persists a JobFinancialSnapshot for every active job. A single run
// uses one timestamp for every snapshot it produces.
type SnapshotService struct {
	jobs       JobStore
	snapshots  SnapshotStore
	thresholds calc.Thresholds
	now        func() time.Time
	log        zerolog.Logger
}

func NewSnapshotService(jobs JobStore, snapshots SnapshotStore, thresholds calc.Thresholds, log zerolog.Logger) *SnapshotService {
	return &SnapshotService{
		jobs:       jobs,
		snapshots:  snapshots,
		thresholds: thresholds,
		now:        time.Now,
		log:        log,
	}
}

type SnapshotRunResult struct {
	Count  int      `json:"count"`
	Errors []string `json:"errors"`
}

// Run processes every active job. A failing job is recorded in the
// result's error list and skipped; it never aborts the batch.
func (s *SnapshotService) Run(ctx context.Context) (*SnapshotRunResult, error) {
	jobs, err := s.jobs.ListActiveJobs(ctx)
	if err != nil {
		return nil, err
	}

	snapshotAt := s.now().UTC()
	result := &SnapshotRunResult{Errors: []string{}}
	var batch []model.JobFinancialSnapshot

	for _, job := range jobs {
		snapshot, err := s.buildSnapshot(ctx, job, snapshotAt)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Job %s: %v", job.JobNumber, err))
			s.log.Warn().Str("job_number", job.JobNumber).Err(err).Msg("snapshot skipped")
			continue
		}
		batch = append(batch, *snapshot)
	}

	if err := s.snapshots.InsertSnapshots(ctx, batch); err != nil {
		return nil, err
	}

	result.Count = len(batch)
	s.log.Info().
		Int("count", result.Count).
		Int("failed", len(result.Errors)).
		Time("snapshot_at", snapshotAt).
		Msg("snapshot batch complete")
	return result, nil
}

// buildSnapshot isolates one job's computation. Panics from malformed
// rows are converted to errors so a bad record cannot take down the
// batch.
func (s *SnapshotService) buildSnapshot(ctx context.Context, job model.Job, snapshotAt time.Time) (snapshot *model.JobFinancialSnapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			snapshot = nil
			err = fmt.Errorf("calculation panic: %v", r)
		}
	}()

	if err := validateJob(job); err != nil {
		return nil, err
	}

	changeOrders, err := s.jobs.ListChangeOrders(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	contractValue := calc.Sum(job.Contract)
	budgetValue := calc.Sum(job.Budget)

	originalProfit := contractValue - budgetValue
	if job.TargetProfit != nil {
		originalProfit = *job.TargetProfit
	}
	originalMargin := 0.0
	if contractValue != 0 {
		originalMargin = (contractValue - budgetValue) / contractValue
	}
	if job.TargetMargin != nil {
		originalMargin = *job.TargetMargin
	}

	earned := calc.CalculateEarnedRevenue(job)
	billing := calc.CalculateBillingDifference(job)
	forecastedCost := calc.Sum(job.Costs) + calc.Sum(job.CostToComplete)
	forecastedProfit := calc.CalculateForecastedProfitWithCOs(job, changeOrders)
	forecastedRevenue := forecastedCost + forecastedProfit

	_, marginAtRisk := calc.CalculateMarginFade(job, s.thresholds)

	behindSchedule := false
	for _, warning := range calc.ScheduleWarnings(job, s.thresholds) {
		if warning.Type == model.WarningBehindTarget {
			behindSchedule = true
			break
		}
	}

	return &model.JobFinancialSnapshot{
		JobID:             job.ID,
		SnapshotAt:        snapshotAt,
		ContractAmount:    contractValue,
		OriginalBudget:    budgetValue,
		OriginalProfit:    originalProfit,
		OriginalMargin:    originalMargin,
		EarnedToDate:      earned.Total,
		InvoicedToDate:    calc.Sum(job.Invoiced),
		CostLabor:         job.Costs.Labor,
		CostMaterial:      job.Costs.Material,
		CostOther:         job.Costs.Other,
		ForecastedCost:    forecastedCost,
		ForecastedRevenue: forecastedRevenue,
		ForecastedProfit:  forecastedProfit,
		ForecastedMargin:  forecastedMargin(contractValue, forecastedProfit),
		BillingPosition:   billing.Difference,
		BillingLabel:      billing.Label,
		MarginAtRisk:      marginAtRisk,
		BehindSchedule:    behindSchedule,
	}, nil
}
