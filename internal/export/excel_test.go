package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/sohamshirke10/recruiter-bandhu/internal/api"
	"github.com/sohamshirke10/recruiter-bandhu/internal/insights"
)

func TestWorkbookWritesCandidateRows(t *testing.T) {
	snap := &api.TableSnapshot{
		Columns: []string{"name", "score"},
		Rows: []map[string]any{
			{"name": "Asha", "score": float64(91)},
			{"name": "Ravi", "score": float64(78)},
		},
	}
	path := filepath.Join(t.TempDir(), "out.xlsx")

	if err := Workbook(snap, nil, path); err != nil {
		t.Fatalf("Workbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Candidates", "A1")
	if err != nil || got != "name" {
		t.Fatalf("A1 = %q, err %v, want name", got, err)
	}
	got, _ = f.GetCellValue("Candidates", "B3")
	if got != "78" {
		t.Fatalf("B3 = %q, want 78", got)
	}
}

func TestWorkbookWritesChartSheets(t *testing.T) {
	snap := &api.TableSnapshot{Columns: []string{"name"}, Rows: nil}
	charts := []insights.Chart{
		{
			Kind:  insights.Bar,
			Title: "Score Distribution",
			Points: []insights.Point{
				{Label: "90-100", Count: 3},
				{Label: "80-89", Count: 1},
			},
		},
	}
	path := filepath.Join(t.TempDir(), "report.xlsx")

	if err := Workbook(snap, charts, path); err != nil {
		t.Fatalf("Workbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	found := false
	for _, n := range names {
		if n == "Score Distribution" {
			found = true
		}
	}
	if !found {
		t.Fatalf("sheet list %v missing Score Distribution", names)
	}

	got, _ := f.GetCellValue("Score Distribution", "A2")
	if got != "90-100" {
		t.Fatalf("A2 = %q, want 90-100", got)
	}
	got, _ = f.GetCellValue("Score Distribution", "B2")
	if got != "3" {
		t.Fatalf("B2 = %q, want 3", got)
	}
}

func TestWorkbookAppendsExtension(t *testing.T) {
	snap := &api.TableSnapshot{Columns: []string{"name"}}
	base := filepath.Join(t.TempDir(), "plain")

	if err := Workbook(snap, nil, base); err != nil {
		t.Fatalf("Workbook: %v", err)
	}
	if _, err := excelize.OpenFile(base + ".xlsx"); err != nil {
		t.Fatalf("expected %s.xlsx to exist: %v", base, err)
	}
}
