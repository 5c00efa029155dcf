package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brixworth/wip-service/internal/model"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

type jobRow struct {
	ID                 uuid.UUID
	JobNumber          string
	Name               string
	Status             string
	JobType            string
	ContractLabor      float64
	ContractMaterial   float64
	ContractOther      float64
	BudgetLabor        float64
	BudgetMaterial     float64
	BudgetOther        float64
	CostsLabor         float64
	CostsMaterial      float64
	CostsOther         float64
	CtcLabor           float64
	CtcMaterial        float64
	CtcOther           float64
	InvoicedLabor      float64
	InvoicedMaterial   float64
	InvoicedOther      float64
	TmLaborBillingType *string
	TmLaborBillRate    *float64
	TmLaborHours       *float64
	TmLaborMarkup      *float64
	TmMaterialMarkup   *float64
	TmOtherMarkup      *float64
	StartDate          string
	EndDate            string
	TargetEndDate      string
	TargetProfit       *float64
	TargetMargin       *float64
	CreatedByOrgID     uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

const jobColumns = `
	id,
	job_number,
	name,
	status,
	job_type,
	contract_labor, contract_material, contract_other,
	budget_labor, budget_material, budget_other,
	costs_labor, costs_material, costs_other,
	ctc_labor, ctc_material, ctc_other,
	invoiced_labor, invoiced_material, invoiced_other,
	tm_labor_billing_type,
	tm_labor_bill_rate,
	tm_labor_hours,
	tm_labor_markup,
	tm_material_markup,
	tm_other_markup,
	start_date,
	end_date,
	target_end_date,
	target_profit,
	target_margin,
	created_by_org_id,
	created_at,
	updated_at
`

func (row jobRow) toJob() model.Job {
	job := model.Job{
		ID:             row.ID,
		JobNumber:      row.JobNumber,
		Name:           row.Name,
		Status:         model.JobStatus(row.Status),
		JobType:        model.JobType(row.JobType),
		Contract:       model.CostBreakdown{Labor: row.ContractLabor, Material: row.ContractMaterial, Other: row.ContractOther},
		Budget:         model.CostBreakdown{Labor: row.BudgetLabor, Material: row.BudgetMaterial, Other: row.BudgetOther},
		Costs:          model.CostBreakdown{Labor: row.CostsLabor, Material: row.CostsMaterial, Other: row.CostsOther},
		CostToComplete: model.CostBreakdown{Labor: row.CtcLabor, Material: row.CtcMaterial, Other: row.CtcOther},
		Invoiced:       model.CostBreakdown{Labor: row.InvoicedLabor, Material: row.InvoicedMaterial, Other: row.InvoicedOther},
		StartDate:      row.StartDate,
		EndDate:        row.EndDate,
		TargetEndDate:  row.TargetEndDate,
		TargetProfit:   row.TargetProfit,
		TargetMargin:   row.TargetMargin,
		CreatedByOrgID: row.CreatedByOrgID,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	if job.JobType == model.JobTypeTimeMaterial {
		settings := &model.TMSettings{
			LaborBillRate:  row.TmLaborBillRate,
			LaborHours:     row.TmLaborHours,
			LaborMarkup:    row.TmLaborMarkup,
			MaterialMarkup: row.TmMaterialMarkup,
			OtherMarkup:    row.TmOtherMarkup,
		}
		if row.TmLaborBillingType != nil {
			settings.LaborBillingType = model.LaborBillingType(*row.TmLaborBillingType)
		}
		job.TMSettings = settings
	}
	return job
}

func (r *JobRepository) GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var row jobRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+jobColumns+`
		FROM jobs
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	job := row.toJob()

	mobilizations, err := r.listMobilizations(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	job.Mobilizations = mobilizations
	return &job, nil
}

// ListActiveJobs returns every ACTIVE job ordered by job number.
// Mobilizations are not loaded; the snapshot batch does not need them.
func (r *JobRepository) ListActiveJobs(ctx context.Context) ([]model.Job, error) {
	var rows []jobRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE status = 'ACTIVE'
		ORDER BY job_number ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]model.Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, row.toJob())
	}
	return jobs, nil
}

func (r *JobRepository) listMobilizations(ctx context.Context, jobID uuid.UUID) ([]model.Mobilization, error) {
	var mobilizations []model.Mobilization
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			job_id,
			enabled,
			mobilize_date,
			demobilize_date,
			description
		FROM job_mobilizations
		WHERE job_id = ?
		ORDER BY position ASC, id ASC
	`, jobID).Scan(&mobilizations).Error
	if err != nil {
		return nil, err
	}
	return mobilizations, nil
}

func (r *JobRepository) ListChangeOrders(ctx context.Context, jobID uuid.UUID) ([]model.ChangeOrder, error) {
	var rows []struct {
		ID               uuid.UUID
		JobID            uuid.UUID
		Number           string
		Status           string
		ContractLabor    float64
		ContractMaterial float64
		ContractOther    float64
		CostsLabor       float64
		CostsMaterial    float64
		CostsOther       float64
		BudgetLabor      float64
		BudgetMaterial   float64
		BudgetOther      float64
		InvoicedLabor    float64
		InvoicedMaterial float64
		InvoicedOther    float64
		CtcLabor         float64
		CtcMaterial      float64
		CtcOther         float64
		ApprovedAt       *time.Time
		CreatedAt        time.Time
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			job_id,
			number,
			status,
			contract_labor, contract_material, contract_other,
			costs_labor, costs_material, costs_other,
			budget_labor, budget_material, budget_other,
			invoiced_labor, invoiced_material, invoiced_other,
			ctc_labor, ctc_material, ctc_other,
			approved_at,
			created_at
		FROM change_orders
		WHERE job_id = ?
		ORDER BY created_at ASC
	`, jobID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	changeOrders := make([]model.ChangeOrder, 0, len(rows))
	for _, row := range rows {
		changeOrders = append(changeOrders, model.ChangeOrder{
			ID:             row.ID,
			JobID:          row.JobID,
			Number:         row.Number,
			Status:         model.ChangeOrderStatus(row.Status),
			Contract:       model.CostBreakdown{Labor: row.ContractLabor, Material: row.ContractMaterial, Other: row.ContractOther},
			Costs:          model.CostBreakdown{Labor: row.CostsLabor, Material: row.CostsMaterial, Other: row.CostsOther},
			Budget:         model.CostBreakdown{Labor: row.BudgetLabor, Material: row.BudgetMaterial, Other: row.BudgetOther},
			Invoiced:       model.CostBreakdown{Labor: row.InvoicedLabor, Material: row.InvoicedMaterial, Other: row.InvoicedOther},
			CostToComplete: model.CostBreakdown{Labor: row.CtcLabor, Material: row.CtcMaterial, Other: row.CtcOther},
			ApprovedAt:     row.ApprovedAt,
			CreatedAt:      row.CreatedAt,
		})
	}
	return changeOrders, nil
}
