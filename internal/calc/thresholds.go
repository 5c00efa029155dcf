package calc

// Thresholds are the tunable cutoffs used by the schedule and risk
// analyzers. Callers normally start from DefaultThresholds and override
// from configuration.
type Thresholds struct {
	// UnderbillingHighRatio and UnderbillingMediumRatio are billing
	// position / contract value cutoffs (negative = underbilled).
	UnderbillingHighRatio   float64
	UnderbillingMediumRatio float64

	// DemobilizeCriticalDays is the overrun past contract end at which a
	// demobilization warning escalates to critical.
	DemobilizeCriticalDays int

	// BehindTargetCriticalDays is the days-late cutoff for the
	// behind-target warning to escalate to critical.
	BehindTargetCriticalDays int

	// MarginFadePoints is the margin erosion, in percentage points,
	// above which a job is flagged as fading.
	MarginFadePoints float64

	// ScheduleDriftNoiseRatio is the elapsed-vs-complete gap below which
	// schedule drift is treated as noise and reported as zero.
	ScheduleDriftNoiseRatio float64

	// BillingNeutralBand is the absolute billing position, in currency,
	// under which WIP reports render the job as on target.
	BillingNeutralBand float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		UnderbillingHighRatio:    -0.10,
		UnderbillingMediumRatio:  -0.05,
		DemobilizeCriticalDays:   14,
		BehindTargetCriticalDays: 30,
		MarginFadePoints:         2,
		ScheduleDriftNoiseRatio:  0.10,
		BillingNeutralBand:       100,
	}
}
