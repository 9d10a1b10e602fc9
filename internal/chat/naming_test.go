package chat

import (
	"regexp"
	"testing"
	"time"
)

func TestGenerateTableName(t *testing.T) {
	got := GenerateTableName("Senior Engineer!")
	if !regexp.MustCompile(`^seniorengineer_\d+$`).MatchString(got) {
		t.Errorf("GenerateTableName: got %q", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Senior Engineer!", "seniorengineer"},
		{"Data-Scientist (ML)", "datascientistml"},
		{"  QA 2024  ", "qa2024"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitTableName(t *testing.T) {
	title, createdAt := SplitTableName("seniorengineer_1700000000000")
	if title != "seniorengineer" {
		t.Errorf("title: got %q", title)
	}
	if want := time.UnixMilli(1700000000000); !createdAt.Equal(want) {
		t.Errorf("createdAt: got %v, want %v", createdAt, want)
	}
}

func TestSplitTableNameNonNumericSuffixFallsBackToNow(t *testing.T) {
	before := time.Now()
	title, createdAt := SplitTableName("legacy_table")
	after := time.Now()

	if title != "legacy_table" {
		t.Errorf("title: got %q, want full identifier", title)
	}
	if createdAt.Before(before) || createdAt.After(after) {
		t.Errorf("createdAt: got %v, want roughly now", createdAt)
	}
}

func TestReservedTable(t *testing.T) {
	for _, name := range []string{"candidates", "rejected_candidates", "users"} {
		if !ReservedTable(name) {
			t.Errorf("%s should be reserved", name)
		}
	}
	if ReservedTable("seniorengineer_1700000000000") {
		t.Error("dataset identifiers are not reserved")
	}
}
