// Package export writes dataset snapshots and derived charts to an
// Excel workbook.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sohamshirke10/recruiter-bandhu/internal/api"
	"github.com/sohamshirke10/recruiter-bandhu/internal/insights"
)

// Workbook writes the snapshot and its derived charts to outputPath.
// The first sheet holds the raw candidate rows; every chart gets its
// own sheet of label/count pairs.
func Workbook(snap *api.TableSnapshot, charts []insights.Chart, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	candidatesSheet := "Candidates"
	f.SetSheetName("Sheet1", candidatesSheet)

	if err := writeCandidatesSheet(f, candidatesSheet, snap); err != nil {
		return fmt.Errorf("write candidates sheet: %w", err)
	}

	for _, chart := range charts {
		sheet := sheetName(chart.Title)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
		if err := writeChartSheet(f, sheet, chart); err != nil {
			return fmt.Errorf("write sheet %s: %w", sheet, err)
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeCandidatesSheet(f *excelize.File, sheet string, snap *api.TableSnapshot) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for col, name := range snap.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for i, row := range snap.Rows {
		for col, name := range snap.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, row[name]); err != nil {
				return err
			}
		}
	}

	if len(snap.Rows) > 0 {
		f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
	return nil
}

func writeChartSheet(f *excelize.File, sheet string, chart insights.Chart) error {
	if err := f.SetCellValue(sheet, "A1", chart.Title); err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, "B1", string(chart.Kind)); err != nil {
		return err
	}

	for i, p := range chart.Points {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Count); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheet, "A", "A", 25)
}

// sheetName trims a chart title to Excel's 31-character sheet limit.
func sheetName(title string) string {
	if len(title) > 31 {
		return title[:31]
	}
	return title
}
