package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/brixworth/wip-service/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders a one-page financial summary for a job.
func (g *Generator) Generate(doc model.JobSummaryDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, "Job Financial Summary", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Job %s — %s", doc.Job.JobNumber, doc.Job.Name), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", doc.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Contract", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	contractRows := [][2]string{
		{"Job Type", jobTypeLabel(doc.Job.JobType)},
		{"Start Date", dateLabel(doc.Job.StartDate)},
		{"End Date", dateLabel(doc.Job.EndDate)},
		{"Target End Date", dateLabel(doc.Job.TargetEndDate)},
	}
	drawKeyValueTable(pdf, g.fontName, contractRows)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Financials", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	financialRows := [][2]string{
		{"Earned Revenue", formatAmount(doc.EarnedRevenue)},
		{"Percent Complete", fmt.Sprintf("%.1f%%", doc.PercentComplete)},
		{"Billing Position", fmt.Sprintf("%s (%s)", formatAmount(doc.BillingPosition), doc.BillingLabel)},
		{"Forecasted Cost", formatAmount(doc.ForecastedCost)},
		{"Forecasted Profit", formatAmount(doc.ForecastedProfit)},
		{"Forecasted Margin", fmt.Sprintf("%.1f%%", doc.ForecastedMargin*100)},
	}
	drawKeyValueTable(pdf, g.fontName, financialRows)
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Risk", "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 10)

	riskRows := [][2]string{
		{"Underbilling Risk", string(doc.Risk.UnderbillingRisk)},
		{"Schedule Drift", fmt.Sprintf("%d weeks", doc.Risk.ScheduleDriftWeeks)},
		{"Margin Fade", fmt.Sprintf("%.1f pts", doc.Risk.MarginFadePercent)},
	}
	drawKeyValueTable(pdf, g.fontName, riskRows)

	if doc.Risk.IsMarginFading {
		pdf.Ln(2)
		pdf.SetTextColor(200, 0, 0)
		pdf.MultiCell(0, 6, "Margin is fading against the original target.", "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	if len(doc.Warnings) > 0 {
		pdf.Ln(4)
		pdf.SetFont(g.fontName, "B", 12)
		pdf.CellFormat(0, 8, "Schedule Warnings", "", 1, "L", false, 0, "")
		pdf.SetFont(g.fontName, "", 10)
		for _, warning := range doc.Warnings {
			if warning.Severity == model.SeverityCritical {
				pdf.SetTextColor(200, 0, 0)
			}
			pdf.MultiCell(0, 5, fmt.Sprintf("[%s] %s", warning.Severity, warning.Message), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawKeyValueTable(pdf *gofpdf.Fpdf, fontName string, rows [][2]string) {
	for _, row := range rows {
		pdf.SetFont(fontName, "B", 10)
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont(fontName, "", 10)
		pdf.CellFormat(100, 7, row[1], "1", 1, "L", false, 0, "")
	}
}

func jobTypeLabel(jobType model.JobType) string {
	switch jobType {
	case model.JobTypeTimeMaterial:
		return "Time & Material"
	case model.JobTypeFixedPrice:
		return "Fixed Price"
	default:
		return string(jobType)
	}
}

func dateLabel(raw string) string {
	if raw == "" || raw == model.DateTBD {
		return "TBD"
	}
	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed.Format("Jan 2, 2006")
	}
	return raw
}

func formatAmount(value float64) string {
	return fmt.Sprintf("$%.2f", value)
}
