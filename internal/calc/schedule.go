package calc

import (
	"fmt"
	"time"

	"github.com/brixworth/wip-service/internal/model"
)

const dayDuration = 24 * time.Hour

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// parseDate resolves a job date field. DateTBD and empty strings mean
// the date is not set; every date comparison in this package skips
// unset dates rather than guessing.
func parseDate(raw string) (time.Time, bool) {
	if raw == "" || raw == model.DateTBD {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / dayDuration)
}

// ScheduleWarnings derives mobilization, target-date and phase-overlap
// warnings for a job. Results are ephemeral and recomputed on demand.
func ScheduleWarnings(job model.Job, thresholds Thresholds) []model.ScheduleWarning {
	var warnings []model.ScheduleWarning
	warnings = append(warnings, mobilizationWarnings(job, thresholds)...)
	if w, ok := behindTargetWarning(job, thresholds); ok {
		warnings = append(warnings, w)
	}
	warnings = append(warnings, phaseOverlapWarnings(job)...)
	return warnings
}

// mobilizationWarnings flags enabled phases extending past the contract
// end date. Jobs without a concrete end date produce no warnings.
func mobilizationWarnings(job model.Job, thresholds Thresholds) []model.ScheduleWarning {
	contractEnd, ok := parseDate(job.EndDate)
	if !ok {
		return nil
	}

	var warnings []model.ScheduleWarning
	for _, phase := range job.Mobilizations {
		if !phase.Enabled {
			continue
		}

		if demob, ok := parseDate(phase.DemobilizeDate); ok && demob.After(contractEnd) {
			overrun := daysBetween(contractEnd, demob)
			severity := model.SeverityWarning
			if overrun > thresholds.DemobilizeCriticalDays {
				severity = model.SeverityCritical
			}
			warnings = append(warnings, model.ScheduleWarning{
				Type:     model.WarningMobilizationPastContract,
				PhaseID:  &phase.ID,
				Message:  fmt.Sprintf("Phase %q demobilizes %d days after contract end", phase.Description, overrun),
				Severity: severity,
			})
		}

		if mob, ok := parseDate(phase.MobilizeDate); ok && mob.After(contractEnd) {
			warnings = append(warnings, model.ScheduleWarning{
				Type:     model.WarningMobilizationPastContract,
				PhaseID:  &phase.ID,
				Message:  fmt.Sprintf("Phase %q mobilizes after contract end", phase.Description),
				Severity: model.SeverityCritical,
			})
		}
	}
	return warnings
}

func behindTargetWarning(job model.Job, thresholds Thresholds) (model.ScheduleWarning, bool) {
	target, ok := parseDate(job.TargetEndDate)
	if !ok {
		return model.ScheduleWarning{}, false
	}
	end, ok := parseDate(job.EndDate)
	if !ok || !end.After(target) {
		return model.ScheduleWarning{}, false
	}

	daysLate := daysBetween(target, end)
	severity := model.SeverityWarning
	if daysLate > thresholds.BehindTargetCriticalDays {
		severity = model.SeverityCritical
	}
	return model.ScheduleWarning{
		Type:     model.WarningBehindTarget,
		Message:  fmt.Sprintf("Contract end runs %d days past the target end date", daysLate),
		Severity: severity,
	}, true
}

// phaseOverlapWarnings flags enabled phases whose mobilize/demobilize
// windows overlap an earlier phase's window.
func phaseOverlapWarnings(job model.Job) []model.ScheduleWarning {
	type window struct {
		phase      model.Mobilization
		start, end time.Time
	}

	var windows []window
	for _, phase := range job.Mobilizations {
		if !phase.Enabled {
			continue
		}
		start, okStart := parseDate(phase.MobilizeDate)
		end, okEnd := parseDate(phase.DemobilizeDate)
		if !okStart || !okEnd || end.Before(start) {
			continue
		}
		windows = append(windows, window{phase: phase, start: start, end: end})
	}

	var warnings []model.ScheduleWarning
	for i := 1; i < len(windows); i++ {
		for j := 0; j < i; j++ {
			if windows[i].start.After(windows[j].end) || windows[j].start.After(windows[i].end) {
				continue
			}
			phase := windows[i].phase
			warnings = append(warnings, model.ScheduleWarning{
				Type:     model.WarningPhaseOverlap,
				PhaseID:  &phase.ID,
				Message:  fmt.Sprintf("Phase %q overlaps phase %q", phase.Description, windows[j].phase.Description),
				Severity: model.SeverityWarning,
			})
			break
		}
	}
	return warnings
}
