package chat

import (
	"strconv"
	"strings"
	"time"
)

// reservedTables are backend system tables that must never surface as
// chat sessions.
var reservedTables = map[string]bool{
	"candidates":          true,
	"rejected_candidates": true,
	"users":               true,
}

// ReservedTable reports whether name is a backend system table.
func ReservedTable(name string) bool {
	return reservedTables[name]
}

// Slugify lowercases s and strips everything outside [a-z0-9].
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GenerateTableName produces a dataset identifier for the given role
// name: the slugified role plus the current unix-millisecond timestamp.
// Collisions are possible but accepted as low-probability.
func GenerateTableName(roleName string) string {
	return Slugify(roleName) + "_" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// SplitTableName derives a display title and creation time from a
// dataset identifier of the form <slug>_<unixMillis>. When the suffix
// is not numeric the whole identifier becomes the title and the
// creation time falls back to now; this is an accepted inexact
// heuristic, not a correctness guarantee.
func SplitTableName(table string) (string, time.Time) {
	idx := strings.LastIndex(table, "_")
	if idx > 0 {
		if ms, err := strconv.ParseInt(table[idx+1:], 10, 64); err == nil {
			return table[:idx], time.UnixMilli(ms)
		}
	}
	return table, time.Now()
}
