package views

import (
	"strings"
	"testing"

	"github.com/sohamshirke10/recruiter-bandhu/internal/insights"
)

func TestRenderChartsBars(t *testing.T) {
	charts := []insights.Chart{
		{
			Kind:  insights.Bar,
			Title: "Score Distribution",
			Points: []insights.Point{
				{Label: "90-100", Count: 4},
				{Label: "80-89", Count: 2},
				{Label: "0-59", Count: 0},
			},
		},
	}

	out := RenderCharts(charts)

	if !strings.Contains(out, "Score Distribution") {
		t.Errorf("missing chart title in output:\n%s", out)
	}
	if !strings.Contains(out, "90-100") || !strings.Contains(out, "4") {
		t.Errorf("missing bar row in output:\n%s", out)
	}
	// Bars scale with counts: the largest bucket gets the widest bar.
	wide := strings.Count(out, "█")
	if wide == 0 {
		t.Fatalf("no bars rendered:\n%s", out)
	}
}

func TestRenderChartsPiePercentages(t *testing.T) {
	charts := []insights.Chart{
		{
			Kind:  insights.Pie,
			Title: "Education Distribution",
			Points: []insights.Point{
				{Label: "Bachelors", Count: 3},
				{Label: "Masters", Count: 1},
			},
		},
	}

	out := RenderCharts(charts)

	if !strings.Contains(out, "75.0%") {
		t.Errorf("expected 75.0%% share for Bachelors:\n%s", out)
	}
	if !strings.Contains(out, "25.0%") {
		t.Errorf("expected 25.0%% share for Masters:\n%s", out)
	}
}

func TestRenderChartsEmpty(t *testing.T) {
	if out := RenderCharts(nil); out != "" {
		t.Errorf("expected empty output for no charts, got %q", out)
	}
}
