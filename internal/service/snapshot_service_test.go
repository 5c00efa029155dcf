package service

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/brixworth/wip-service/internal/calc"
	"github.com/brixworth/wip-service/internal/model"
)

type fakeJobStore struct {
	jobs         []model.Job
	changeOrders map[uuid.UUID][]model.ChangeOrder
}

func (f *fakeJobStore) GetJob(_ context.Context, id uuid.UUID) (*model.Job, error) {
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			job := f.jobs[i]
			return &job, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeJobStore) ListActiveJobs(_ context.Context) ([]model.Job, error) {
	var active []model.Job
	for _, job := range f.jobs {
		if job.Status == model.JobStatusActive {
			active = append(active, job)
		}
	}
	return active, nil
}

func (f *fakeJobStore) ListChangeOrders(_ context.Context, jobID uuid.UUID) ([]model.ChangeOrder, error) {
	return f.changeOrders[jobID], nil
}

type fakeSnapshotStore struct {
	inserted []model.JobFinancialSnapshot
}

func (f *fakeSnapshotStore) InsertSnapshots(_ context.Context, snapshots []model.JobFinancialSnapshot) error {
	f.inserted = append(f.inserted, snapshots...)
	return nil
}

func (f *fakeSnapshotStore) ListByJob(_ context.Context, jobID uuid.UUID) ([]model.JobFinancialSnapshot, error) {
	var out []model.JobFinancialSnapshot
	for _, s := range f.inserted {
		if s.JobID == jobID {
			out = append(out, s)
		}
	}
	return out, nil
}

func activeJob(number string) model.Job {
	return model.Job{
		ID:             uuid.New(),
		JobNumber:      number,
		Name:           "Job " + number,
		Status:         model.JobStatusActive,
		JobType:        model.JobTypeFixedPrice,
		Contract:       model.CostBreakdown{Labor: 500000},
		Budget:         model.CostBreakdown{Labor: 400000},
		Costs:          model.CostBreakdown{Labor: 200000},
		CostToComplete: model.CostBreakdown{Labor: 200000},
		Invoiced:       model.CostBreakdown{Labor: 220000},
		StartDate:      "2024-01-01",
		EndDate:        "2024-12-31",
		TargetEndDate:  "2024-11-30",
	}
}

func TestSnapshotRunIsolatesPerJobFailures(t *testing.T) {
	good1 := activeJob("24-001")
	bad := activeJob("24-002")
	bad.Costs.Labor = math.NaN()
	good2 := activeJob("24-003")

	jobs := &fakeJobStore{jobs: []model.Job{good1, bad, good2}}
	snapshots := &fakeSnapshotStore{}
	svc := NewSnapshotService(jobs, snapshots, calc.DefaultThresholds(), zerolog.Nop())

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Count != 2 {
		t.Errorf("Count = %d, want 2", result.Count)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one entry", result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "Job 24-002:") {
		t.Errorf("error entry %q must name the failing job", result.Errors[0])
	}

	// Job after the failing one must still be processed.
	persisted, _ := snapshots.ListByJob(context.Background(), good2.ID)
	if len(persisted) != 1 {
		t.Errorf("job after the failure was not snapshotted")
	}
}

func TestSnapshotRunSharedTimestamp(t *testing.T) {
	jobs := &fakeJobStore{jobs: []model.Job{activeJob("24-001"), activeJob("24-002")}}
	snapshots := &fakeSnapshotStore{}
	svc := NewSnapshotService(jobs, snapshots, calc.DefaultThresholds(), zerolog.Nop())

	fixed := time.Date(2024, 7, 1, 6, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(snapshots.inserted) != 2 {
		t.Fatalf("inserted %d snapshots, want 2", len(snapshots.inserted))
	}
	for _, snapshot := range snapshots.inserted {
		if !snapshot.SnapshotAt.Equal(fixed) {
			t.Errorf("SnapshotAt = %v, want shared %v", snapshot.SnapshotAt, fixed)
		}
	}
}

func TestSnapshotRunComputesMetrics(t *testing.T) {
	job := activeJob("24-010")
	jobs := &fakeJobStore{
		jobs: []model.Job{job},
		changeOrders: map[uuid.UUID][]model.ChangeOrder{
			job.ID: {
				{
					Status:   model.ChangeOrderStatusApproved,
					Contract: model.CostBreakdown{Labor: 50000},
					Costs:    model.CostBreakdown{Labor: 10000},
				},
			},
		},
	}
	snapshots := &fakeSnapshotStore{}
	svc := NewSnapshotService(jobs, snapshots, calc.DefaultThresholds(), zerolog.Nop())

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	snapshot := snapshots.inserted[0]
	if snapshot.ContractAmount != 500000 {
		t.Errorf("ContractAmount = %v, want 500000", snapshot.ContractAmount)
	}
	// 50% complete on a 500000 contract
	if snapshot.EarnedToDate != 250000 {
		t.Errorf("EarnedToDate = %v, want 250000", snapshot.EarnedToDate)
	}
	// invoiced 220000 - earned 250000
	if snapshot.BillingPosition != -30000 || snapshot.BillingLabel != calc.BillingLabelUnderBilled {
		t.Errorf("billing = %v/%q", snapshot.BillingPosition, snapshot.BillingLabel)
	}
	// CO-adjusted: (500000+50000) - (210000 + 200000) = 140000
	if snapshot.ForecastedProfit != 140000 {
		t.Errorf("ForecastedProfit = %v, want 140000", snapshot.ForecastedProfit)
	}
	if snapshot.BehindSchedule != true {
		t.Error("end date past target end date must set BehindSchedule")
	}
}
