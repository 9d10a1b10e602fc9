package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sohamshirke10/recruiter-bandhu/internal/insights"
	"github.com/sohamshirke10/recruiter-bandhu/internal/tui"
)

// ExitInsightsMsg signals that the user wants to leave the insights view.
type ExitInsightsMsg struct{}

// maxBarWidth caps the widest rendered chart bar.
const maxBarWidth = 40

// InsightsModel is the view model for the dataset dashboard screen.
type InsightsModel struct {
	datasetRef string
	charts     []insights.Chart
	errLine    string
	loading    bool
	viewport   viewport.Model
	width      int
	height     int
}

// NewInsightsModel creates an InsightsModel in the loading state.
func NewInsightsModel(datasetRef string, width, height int) InsightsModel {
	vpHeight := height - 10
	if vpHeight < 5 {
		vpHeight = 5
	}
	vp := viewport.New(width-8, vpHeight)

	return InsightsModel{
		datasetRef: datasetRef,
		loading:    true,
		viewport:   vp,
		width:      width,
		height:     height,
	}
}

// SetCharts replaces the rendered charts.
func (m *InsightsModel) SetCharts(charts []insights.Chart) {
	m.charts = charts
	m.loading = false
	m.errLine = ""
	m.viewport.SetContent(RenderCharts(charts))
	m.viewport.GotoTop()
}

// SetError shows an error instead of charts.
func (m *InsightsModel) SetError(s string) {
	m.loading = false
	m.errLine = s
}

// Update handles messages for the insights view.
func (m InsightsModel) Update(msg tea.Msg) (InsightsModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == tui.KeyEsc {
			return m, func() tea.Msg {
				return ExitInsightsMsg{}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 10
		if vpHeight < 5 {
			vpHeight = 5
		}
		m.viewport.Width = msg.Width - 8
		m.viewport.Height = vpHeight
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the insights view.
func (m InsightsModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render(fmt.Sprintf("Insights: %s", m.datasetRef)))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(tui.DimStyle.Render("Loading dataset..."))
	case m.errLine != "":
		b.WriteString(tui.ErrorStyle.Render(m.errLine))
	case len(m.charts) == 0:
		b.WriteString(tui.DimStyle.Render("No recognizable columns to chart in this dataset."))
	default:
		b.WriteString(m.viewport.View())
	}

	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("j/k: Scroll · Esc: Back"))

	boxed := tui.BoxStyle.
		Width(m.width - 4).
		Render(b.String())

	contentHeight := lipgloss.Height(boxed)
	if m.height > contentHeight {
		padding := (m.height - contentHeight) / 3
		if padding > 0 {
			boxed = strings.Repeat("\n", padding) + boxed
		}
	}

	return boxed
}

// RenderCharts renders derived charts as text. It is shared between
// the TUI dashboard and the insights CLI command.
func RenderCharts(charts []insights.Chart) string {
	var b strings.Builder

	for ci, chart := range charts {
		b.WriteString(tui.TitleStyle.Render(chart.Title))
		b.WriteString("\n")

		switch chart.Kind {
		case insights.Pie:
			renderPie(&b, chart.Points)
		default:
			renderBars(&b, chart.Points)
		}

		if ci < len(charts)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderBars(b *strings.Builder, points []insights.Point) {
	max := 0
	labelWidth := 0
	for _, p := range points {
		if p.Count > max {
			max = p.Count
		}
		if len(p.Label) > labelWidth {
			labelWidth = len(p.Label)
		}
	}

	for _, p := range points {
		width := 0
		if max > 0 {
			width = p.Count * maxBarWidth / max
		}
		if p.Count > 0 && width == 0 {
			width = 1
		}
		fmt.Fprintf(b, "  %s %s %d\n",
			tui.BarLabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, p.Label)),
			tui.BarStyle.Render(strings.Repeat("█", width)),
			p.Count,
		)
	}
}

func renderPie(b *strings.Builder, points []insights.Point) {
	total := 0
	labelWidth := 0
	for _, p := range points {
		total += p.Count
		if len(p.Label) > labelWidth {
			labelWidth = len(p.Label)
		}
	}

	for _, p := range points {
		pct := 0.0
		if total > 0 {
			pct = float64(p.Count) * 100 / float64(total)
		}
		width := int(pct) * maxBarWidth / 100
		if p.Count > 0 && width == 0 {
			width = 1
		}
		fmt.Fprintf(b, "  %s %s %.1f%% (%d)\n",
			tui.BarLabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, p.Label)),
			tui.BarStyle.Render(strings.Repeat("█", width)),
			pct,
			p.Count,
		)
	}
}
