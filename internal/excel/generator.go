package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/brixworth/wip-service/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the WIP schedule: a summary sheet with one row per
// job plus a detail sheet per job.
func (g *Generator) Generate(report model.WipReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "WIP Schedule"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, row := range report.Rows {
		sheetName := buildSheetName(row.JobNumber, row.Name, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeDetail(file, sheetName, report, row); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.WipReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Work-in-Progress Schedule")
	set("A2", "Generated")
	set("B2", formatDateTime(report.GeneratedAt))
	set("A3", "Jobs")
	set("B3", len(report.Rows))

	headers := []string{
		"Job #",
		"Name",
		"Type",
		"Contract",
		"Budget",
		"Costs to Date",
		"Cost to Complete",
		"% Complete",
		"Earned",
		"Billed",
		"Over/Under",
		"Position",
		"Forecast Profit",
		"Forecast Margin",
		"UB Risk",
	}
	tableRow := 5
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, row := range report.Rows {
		r := tableRow + 1 + i
		position := row.BillingLabel
		if row.OnTarget {
			position = "On Target"
		}
		values := []interface{}{
			row.JobNumber,
			row.Name,
			jobTypeLabel(row.JobType),
			formatAmount(row.ContractValue),
			formatAmount(row.OriginalBudget),
			formatAmount(row.CostsToDate),
			formatAmount(row.CostToComplete),
			fmt.Sprintf("%.1f%%", row.PercentComplete),
			formatAmount(row.EarnedRevenue),
			formatAmount(row.InvoicedToDate),
			formatAmount(row.BillingPosition),
			position,
			formatAmount(row.ForecastedProfit),
			fmt.Sprintf("%.1f%%", row.ForecastedMargin*100),
			string(row.UnderbillingRisk),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, r)
			set(cell, value)
		}
	}

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "B", 36)
	_ = file.SetColWidth(sheet, "C", "O", 16)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, report model.WipReport, row model.WipReportRow) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Job")
	set("B1", fmt.Sprintf("%s — %s", row.JobNumber, row.Name))
	set("A2", "Type")
	set("B2", jobTypeLabel(row.JobType))
	set("A3", "Generated")
	set("B3", formatDateTime(report.GeneratedAt))

	lines := []struct {
		label string
		value interface{}
	}{
		{"Contract Value", formatAmount(row.ContractValue)},
		{"Original Budget", formatAmount(row.OriginalBudget)},
		{"Costs to Date", formatAmount(row.CostsToDate)},
		{"Cost to Complete", formatAmount(row.CostToComplete)},
		{"Percent Complete", fmt.Sprintf("%.1f%%", row.PercentComplete)},
		{"Earned Revenue", formatAmount(row.EarnedRevenue)},
		{"Invoiced to Date", formatAmount(row.InvoicedToDate)},
		{"Billing Position", formatAmount(row.BillingPosition)},
		{"Billing Status", row.BillingLabel},
		{"Forecasted Profit", formatAmount(row.ForecastedProfit)},
		{"Forecasted Margin", fmt.Sprintf("%.1f%%", row.ForecastedMargin*100)},
		{"Underbilling Risk", string(row.UnderbillingRisk)},
	}
	for i, line := range lines {
		r := 5 + i
		set(fmt.Sprintf("A%d", r), line.label)
		set(fmt.Sprintf("B%d", r), line.value)
	}

	_ = file.SetColWidth(sheet, "A", "A", 24)
	_ = file.SetColWidth(sheet, "B", "B", 28)
	return nil
}

func jobTypeLabel(jobType model.JobType) string {
	switch jobType {
	case model.JobTypeTimeMaterial:
		return "T&M"
	case model.JobTypeFixedPrice:
		return "Fixed Price"
	default:
		return string(jobType)
	}
}

func buildSheetName(jobNumber, name string, used map[string]struct{}) string {
	base := strings.TrimSpace(jobNumber)
	if base == "" {
		base = strings.TrimSpace(name)
	}
	if base == "" {
		base = "Job"
	}
	base = sanitizeSheetName(base)

	if len(base) > 31 {
		base = base[:31]
	}

	candidate := base
	counter := 2
	for {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		candidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Job"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	value = strings.TrimSpace(value)
	if value == "" {
		return "Job"
	}
	return value
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}
