package excel

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/modamuse/lookpost-services-backend/internal/filters"
	"github.com/modamuse/lookpost-services-backend/internal/models"
)

// Service builds Excel reports over campaign collections
type Service struct{}

// NewService creates a new Excel report service instance
func NewService() *Service {
	return &Service{}
}

// ReportFileName names a campaign report download.
func ReportFileName(t time.Time) string {
	return fmt.Sprintf("campaign-report-%s.xlsx", t.Format("20060102-1504"))
}

// BuildCampaignReport renders a campaign collection into a single-sheet
// summary workbook and returns the serialized file.
func (s *Service) BuildCampaignReport(campaigns []models.Campaign) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Campaigns"
	defaultSheetName := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheetName, sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	f.SetActiveSheet(0)

	columns := []string{
		"id", "title", "status", "locale", "brand_tone",
		"compliance_score", "has_adjustments", "colors", "styles",
		"occasion", "audience", "published_at", "scheduled_at", "created_at",
	}

	// Write headers
	for i, col := range columns {
		cell := fmt.Sprintf("%s1", columnToLetter(i+1))
		f.SetCellValue(sheetName, cell, col)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"D9D9D9"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", columnToLetter(len(columns))+"1", headerStyle)
	}

	// Set column widths
	for i, col := range columns {
		colLetter := columnToLetter(i + 1)
		width := 18.0 // Default width

		switch col {
		case "id":
			width = 38.0
		case "title", "brand_tone":
			width = 30.0
		case "colors", "styles":
			width = 25.0
		case "status", "locale":
			width = 12.0
		case "published_at", "scheduled_at", "created_at":
			width = 20.0
		}

		f.SetColWidth(sheetName, colLetter, colLetter, width)
	}

	publishedStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"C6EFCE"}, // Light green
			Pattern: 1,
		},
	})
	scheduledStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFEB9C"}, // Light yellow
			Pattern: 1,
		},
	})

	// Write campaign rows
	if len(campaigns) > 0 {
		for i := range campaigns {
			c := &campaigns[i]
			rowNum := i + 2 // Start from row 2 (after headers)

			occasion, audience := "", ""
			if c.Input != nil {
				occasion = c.Input.Occasion
				audience = c.Input.Audience
			}

			f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), c.ID)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), c.Title)
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), c.Status)
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", rowNum), c.Locale)
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", rowNum), c.BrandTone)
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", rowNum), c.EffectiveComplianceScore())
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", rowNum), c.HasAdjustments())
			f.SetCellValue(sheetName, fmt.Sprintf("H%d", rowNum), strings.Join(filters.ExtractColors(c), ", "))
			f.SetCellValue(sheetName, fmt.Sprintf("I%d", rowNum), strings.Join(filters.ExtractStyles(c), ", "))
			f.SetCellValue(sheetName, fmt.Sprintf("J%d", rowNum), occasion)
			f.SetCellValue(sheetName, fmt.Sprintf("K%d", rowNum), audience)
			f.SetCellValue(sheetName, fmt.Sprintf("L%d", rowNum), formatTime(c.PublishedAt))
			f.SetCellValue(sheetName, fmt.Sprintf("M%d", rowNum), formatTime(c.ScheduledAt))
			f.SetCellValue(sheetName, fmt.Sprintf("N%d", rowNum), c.CreatedAt.Format(time.RFC3339))

			switch c.Status {
			case models.StatusPublished:
				f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", columnToLetter(len(columns)), rowNum), publishedStyle)
			case models.StatusScheduled:
				f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", columnToLetter(len(columns)), rowNum), scheduledStyle)
			}
		}
	} else {
		f.SetCellValue(sheetName, "A2", "no campaigns found")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf, nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// Helper function to convert column number to Excel column letter
func columnToLetter(col int) string {
	var result string
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
