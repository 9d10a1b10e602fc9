// Package insights turns a generic rows+columns dataset snapshot into
// chart descriptors for the dashboard. The backend provides no schema,
// so columns are matched by name and cells are classified by substring
// heuristics. The matching is deliberately lossy: the first matching
// column wins per rule, and the first matching token wins per cell.
package insights

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sohamshirke10/recruiter-bandhu/internal/api"
)

// Kind identifies the chart shape a descriptor renders as.
type Kind string

const (
	Bar  Kind = "bar"
	Pie  Kind = "pie"
	Line Kind = "line"
)

// Point is a single labelled count in a chart series.
type Point struct {
	Label string
	Count int
}

// Chart is a derived chart descriptor. Charts are recomputed from the
// current snapshot on every dashboard load and never persisted.
type Chart struct {
	Kind   Kind
	Title  string
	Points []Point
}

// Derive produces zero or more charts from the snapshot. Each rule is
// applied independently and contributes at most one chart.
func Derive(snap *api.TableSnapshot) []Chart {
	if snap == nil || len(snap.Rows) == 0 {
		return nil
	}

	var charts []Chart
	if c, ok := scoreDistribution(snap); ok {
		charts = append(charts, c)
	}
	if c, ok := skillDistribution(snap); ok {
		charts = append(charts, c)
	}
	if c, ok := experienceDistribution(snap); ok {
		charts = append(charts, c)
	}
	if c, ok := educationDistribution(snap); ok {
		charts = append(charts, c)
	}
	return charts
}

// scoreBuckets are inclusive lower bounds, highest first.
var scoreBuckets = []struct {
	label string
	low   float64
}{
	{"90-100", 90},
	{"80-89", 80},
	{"70-79", 70},
	{"60-69", 60},
	{"0-59", 0},
}

func scoreDistribution(snap *api.TableSnapshot) (Chart, bool) {
	col, ok := findColumn(snap.Columns, "score", "rating", "match")
	if !ok {
		return Chart{}, false
	}

	var values []float64
	total := 0
	for _, row := range snap.Rows {
		s := cellString(row[col])
		if s == "" {
			continue
		}
		total++
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			values = append(values, v)
		}
	}
	// Require a mostly-numeric column; "match" in particular can name
	// a text column.
	if total == 0 || len(values)*2 <= total {
		return Chart{}, false
	}

	counts := make([]int, len(scoreBuckets))
	for _, v := range values {
		for i, b := range scoreBuckets {
			if v >= b.low {
				counts[i]++
				break
			}
		}
	}

	points := make([]Point, len(scoreBuckets))
	for i, b := range scoreBuckets {
		points[i] = Point{Label: b.label, Count: counts[i]}
	}
	return Chart{Kind: Bar, Title: "Score Distribution", Points: points}, true
}

func skillDistribution(snap *api.TableSnapshot) (Chart, bool) {
	col, ok := findColumn(snap.Columns, "skill", "expertise")
	if !ok {
		return Chart{}, false
	}

	counts := make(map[string]int)
	var order []string
	for _, row := range snap.Rows {
		for _, part := range strings.Split(cellString(row[col]), ",") {
			skill := strings.TrimSpace(part)
			if skill == "" {
				continue
			}
			if _, seen := counts[skill]; !seen {
				order = append(order, skill)
			}
			counts[skill]++
		}
	}
	if len(order) == 0 {
		return Chart{}, false
	}

	// Equal counts keep first-encountered order.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 10 {
		order = order[:10]
	}

	points := make([]Point, len(order))
	for i, skill := range order {
		points[i] = Point{Label: skill, Count: counts[skill]}
	}
	return Chart{Kind: Pie, Title: "Top Skills", Points: points}, true
}

// experienceTokens are checked in priority order per cell; a cell
// containing both "5" and "10" lands in whichever bucket checks first.
var experienceTokens = []struct {
	label  string
	tokens []string
}{
	{"10+ years", []string{"10", "ten"}},
	{"5-10 years", []string{"5", "five"}},
	{"3-5 years", []string{"3", "three"}},
	{"1-3 years", []string{"1", "one"}},
}

func experienceDistribution(snap *api.TableSnapshot) (Chart, bool) {
	col, ok := findColumn(snap.Columns, "experience", "years")
	if !ok {
		return Chart{}, false
	}

	counts := make(map[string]int)
	matched := false
	for _, row := range snap.Rows {
		cell := strings.ToLower(cellString(row[col]))
		if strings.TrimSpace(cell) == "" {
			continue
		}
		matched = true
		counts[classifyExperience(cell)]++
	}
	if !matched {
		return Chart{}, false
	}

	labels := []string{"10+ years", "5-10 years", "3-5 years", "1-3 years", "<1 year"}
	points := make([]Point, len(labels))
	for i, label := range labels {
		points[i] = Point{Label: label, Count: counts[label]}
	}
	return Chart{Kind: Bar, Title: "Experience Distribution", Points: points}, true
}

func classifyExperience(cell string) string {
	for _, bucket := range experienceTokens {
		for _, token := range bucket.tokens {
			if strings.Contains(cell, token) {
				return bucket.label
			}
		}
	}
	return "<1 year"
}

var educationTokens = []struct {
	label  string
	tokens []string
}{
	{"PhD", []string{"phd", "doctorate"}},
	{"Masters", []string{"master", "ms", "mba"}},
	{"Bachelors", []string{"bachelor", "bs", "ba"}},
}

func educationDistribution(snap *api.TableSnapshot) (Chart, bool) {
	col, ok := findColumn(snap.Columns, "education", "degree")
	if !ok {
		return Chart{}, false
	}

	counts := make(map[string]int)
	matched := false
	for _, row := range snap.Rows {
		cell := strings.ToLower(cellString(row[col]))
		if strings.TrimSpace(cell) == "" {
			continue
		}
		matched = true
		counts[classifyEducation(cell)]++
	}
	if !matched {
		return Chart{}, false
	}

	var points []Point
	for _, label := range []string{"PhD", "Masters", "Bachelors", "Other"} {
		if counts[label] > 0 {
			points = append(points, Point{Label: label, Count: counts[label]})
		}
	}
	return Chart{Kind: Pie, Title: "Education Distribution", Points: points}, true
}

func classifyEducation(cell string) string {
	for _, bucket := range educationTokens {
		for _, token := range bucket.tokens {
			if strings.Contains(cell, token) {
				return bucket.label
			}
		}
	}
	return "Other"
}

// findColumn returns the first column whose name contains any of the
// given substrings, case-insensitive.
func findColumn(columns []string, substrings ...string) (string, bool) {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, sub := range substrings {
			if strings.Contains(lower, sub) {
				return col, true
			}
		}
	}
	return "", false
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
