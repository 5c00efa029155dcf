package model

import (
	"time"

	"github.com/google/uuid"
)

type ChangeOrderStatus string

const (
	ChangeOrderStatusPending   ChangeOrderStatus = "PENDING"
	ChangeOrderStatusApproved  ChangeOrderStatus = "APPROVED"
	ChangeOrderStatusRejected  ChangeOrderStatus = "REJECTED"
	ChangeOrderStatusCompleted ChangeOrderStatus = "COMPLETED"
)

// ChangeOrder modifies a job's scope. Only APPROVED and COMPLETED change
// orders contribute to effective job totals.
type ChangeOrder struct {
	ID             uuid.UUID
	JobID          uuid.UUID
	Number         string
	Status         ChangeOrderStatus
	Contract       CostBreakdown
	Costs          CostBreakdown
	Budget         CostBreakdown
	Invoiced       CostBreakdown
	CostToComplete CostBreakdown
	ApprovedAt     *time.Time
	CreatedAt      time.Time
}

// CountsTowardTotals reports whether this change order's breakdowns are
// folded into effective job totals.
func (co ChangeOrder) CountsTowardTotals() bool {
	return co.Status == ChangeOrderStatusApproved || co.Status == ChangeOrderStatusCompleted
}
