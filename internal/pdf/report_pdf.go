package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"pace/internal/models"
)

// ReportGenerator — рендер сводки в PDF (в память, без файлов на диске)
type ReportGenerator struct {
	fontName string
}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{fontName: "Helvetica"}
}

// RenderSummary builds a one-page progress report from an already
// computed summary. The caller streams the bytes back to the client.
func (g *ReportGenerator) RenderSummary(report *models.StatsReport) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Progress Report", false)
	doc.SetAuthor("PACE", false)
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	// ===== Заголовок
	doc.SetFont(g.fontName, "B", 18)
	doc.CellFormat(0, 10, "PROGRESS REPORT", "", 1, "C", false, 0, "")

	doc.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("Last %d days  /  generated %s",
		report.RangeDays,
		time.Now().Format("02.01.2006"),
	)
	doc.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(doc)

	doc.Ln(3)

	// ===== Задачи
	s := report.Summary
	g.sectionTitle(doc, "Tasks")
	g.kvLine(doc, "Completed", fmt.Sprintf("%d", s.TotalTasksCompleted))
	g.kvLine(doc, "Due in range", fmt.Sprintf("%d", s.TasksDueInRange))
	g.kvLine(doc, "Completion rate", fmt.Sprintf("%.0f%%", s.CompletionRate*100))
	g.kvLine(doc, "Current streak", fmt.Sprintf("%d days", s.CurrentStreak))
	doc.Ln(2)
	g.hr(doc)

	// ===== Самочувствие
	g.sectionTitle(doc, "Wellbeing")
	g.kvLine(doc, "Calm days", fmt.Sprintf("%d", s.CalmDays))
	g.kvLine(doc, "High-severity days", fmt.Sprintf("%d", s.HighSeverityDays))
	g.kvLine(doc, "Avg pain level", fmt.Sprintf("%.1f", s.AvgPainLevel))
	g.kvLine(doc, "Avg fatigue level", fmt.Sprintf("%.1f", s.AvgFatigueLevel))
	doc.Ln(2)
	g.hr(doc)

	// ===== История по дням
	if len(report.History.Tasks) > 0 {
		g.sectionTitle(doc, "Completed per day")
		doc.SetFont(g.fontName, "", 11)
		for _, p := range report.History.Tasks {
			doc.CellFormat(60, 6, p.Date, "", 0, "L", false, 0, "")
			doc.CellFormat(0, 6, fmt.Sprintf("%d", p.Count), "", 1, "L", false, 0, "")
		}
	}

	// ===== Нумерация страниц
	doc.AliasNbPages("")
	doc.SetFooterFunc(func() {
		doc.SetY(-15)
		doc.SetFont(g.fontName, "", 10)
		doc.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", doc.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render summary pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ===== helpers =====

func (g *ReportGenerator) sectionTitle(doc *gofpdf.Fpdf, s string) {
	doc.SetFont(g.fontName, "B", 12)
	doc.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	doc.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(doc *gofpdf.Fpdf, key, val string) {
	doc.SetFont(g.fontName, "B", 11)
	doc.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	doc.SetFont(g.fontName, "", 11)
	doc.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(doc *gofpdf.Fpdf) {
	y := doc.GetY() + 1.5
	doc.SetLineWidth(0.2)
	doc.Line(20, y, 190, y)
	doc.SetY(y + 2)
}
