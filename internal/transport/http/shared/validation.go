package shared

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"payslip/internal/transport/http/api"
)

type Issue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Issues collects per-field problems with a request before any work starts.
type Issues []Issue

func (is *Issues) Add(field, reason string) {
	*is = append(*is, Issue{Field: field, Reason: reason})
}

// Reject writes a 400 envelope listing every issue, sorted by field, and
// reports whether it did.
func (is Issues) Reject(w http.ResponseWriter, requestID string) bool {
	if len(is) == 0 {
		return false
	}
	fields := make([]Issue, len(is))
	copy(fields, is)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "request validation failed",
		map[string]any{"fields": fields}, requestID)
	return true
}

// Window is an inclusive range of sale dates.
type Window struct {
	From time.Time
	To   time.Time
}

// ParseWindow reads the from and to query parameters. Both are required
// calendar days and from may not come after to.
func ParseWindow(q url.Values) (Window, Issues) {
	var issues Issues
	day := func(field string) time.Time {
		raw := strings.TrimSpace(q.Get(field))
		if raw == "" {
			issues.Add(field, "is required")
			return time.Time{}
		}
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			issues.Add(field, "must be a date in YYYY-MM-DD format")
			return time.Time{}
		}
		return parsed
	}

	w := Window{From: day("from"), To: day("to")}
	if len(issues) == 0 && w.To.Before(w.From) {
		issues.Add("from", "must be on or before to")
	}
	return w, issues
}
