package model

import (
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	JobTypeFixedPrice   JobType = "FIXED_PRICE"
	JobTypeTimeMaterial JobType = "TIME_MATERIAL"
)

type JobStatus string

const (
	JobStatusActive    JobStatus = "ACTIVE"
	JobStatusOnHold    JobStatus = "ON_HOLD"
	JobStatusCompleted JobStatus = "COMPLETED"
)

type LaborBillingType string

const (
	LaborBillingMarkup    LaborBillingType = "MARKUP"
	LaborBillingFixedRate LaborBillingType = "FIXED_RATE"
)

// DateTBD marks a date field that has not been scheduled yet.
// Date-dependent calculations must treat it as absence, never parse it.
const DateTBD = "TBD"

// CostBreakdown is an additive monetary triple. Negative values are
// allowed and represent credits.
type CostBreakdown struct {
	Labor    float64 `json:"labor"`
	Material float64 `json:"material"`
	Other    float64 `json:"other"`
}

// TMSettings holds time-and-material billing parameters. Nil markup or
// rate fields mean "not configured"; defaulting happens in one place in
// the calculation engine, not here.
type TMSettings struct {
	LaborBillingType LaborBillingType
	LaborBillRate    *float64
	LaborHours       *float64
	LaborMarkup      *float64
	MaterialMarkup   *float64
	OtherMarkup      *float64
}

type Mobilization struct {
	ID             uuid.UUID
	JobID          uuid.UUID
	Enabled        bool
	MobilizeDate   string // date string or DateTBD
	DemobilizeDate string // date string or DateTBD
	Description    string
}

type Job struct {
	ID             uuid.UUID
	JobNumber      string
	Name           string
	Status         JobStatus
	JobType        JobType
	Contract       CostBreakdown
	Budget         CostBreakdown
	Costs          CostBreakdown
	CostToComplete CostBreakdown
	Invoiced       CostBreakdown
	TMSettings     *TMSettings // present only for TIME_MATERIAL jobs
	StartDate      string      // date string or DateTBD
	EndDate        string
	TargetEndDate  string
	Mobilizations  []Mobilization
	TargetProfit   *float64 // override for original-target comparisons
	TargetMargin   *float64 // fraction, e.g. 0.20
	CreatedByOrgID uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
