// Package calc is the job financial calculation engine. Every function
// here is pure and synchronous: callers pass fully loaded Job and
// ChangeOrder values and get plain results back. Inputs are assumed to
// carry finite numeric fields; the persistence layer guarantees that.
package calc

import "github.com/brixworth/wip-service/internal/model"

// Sum returns labor + material + other.
func Sum(b model.CostBreakdown) float64 {
	return b.Labor + b.Material + b.Other
}

// Add returns the component-wise sum of two breakdowns.
func Add(a, b model.CostBreakdown) model.CostBreakdown {
	return model.CostBreakdown{
		Labor:    a.Labor + b.Labor,
		Material: a.Material + b.Material,
		Other:    a.Other + b.Other,
	}
}
