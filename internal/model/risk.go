package model

import "github.com/google/uuid"

type WarningType string

const (
	WarningMobilizationPastContract WarningType = "MOBILIZATION_PAST_CONTRACT"
	WarningBehindTarget             WarningType = "BEHIND_TARGET"
	WarningPhaseOverlap             WarningType = "PHASE_OVERLAP"
)

type WarningSeverity string

const (
	SeverityWarning  WarningSeverity = "WARNING"
	SeverityCritical WarningSeverity = "CRITICAL"
)

// ScheduleWarning is recomputed on demand and never persisted.
type ScheduleWarning struct {
	Type     WarningType     `json:"type"`
	PhaseID  *uuid.UUID      `json:"phase_id,omitempty"`
	Message  string          `json:"message"`
	Severity WarningSeverity `json:"severity"`
}

type RiskTier string

const (
	RiskTierNone   RiskTier = "NONE"
	RiskTierLow    RiskTier = "LOW"
	RiskTierMedium RiskTier = "MEDIUM"
	RiskTierHigh   RiskTier = "HIGH"
)

type SmartRiskAnalysis struct {
	UnderbillingRisk   RiskTier `json:"underbilling_risk"`
	ScheduleDriftWeeks int      `json:"schedule_drift_weeks"`
	MarginFadePercent  float64  `json:"margin_fade_percent"`
	IsMarginFading     bool     `json:"is_margin_fading"`
}
