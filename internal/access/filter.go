// Package access decides what a caller may see and change. It is pure:
// every function maps a caller and a request to a filter or a decision.
package access

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leadflow/leadflow-backend/internal/domain"
)

// ListRequest carries the raw, unvalidated lead-list query parameters.
type ListRequest struct {
	Status     string
	Tags       string
	Search     string
	AssignedTo string
	StartDate  string
	EndDate    string
	Page       string
	Limit      string
}

// Paging bounds the page size.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

const dateOnly = "2006-01-02"

// BuildListQuery turns raw parameters into the effective query for caller.
// Malformed values are dropped rather than rejected.
func BuildListQuery(caller domain.Caller, req ListRequest, paging Paging) domain.LeadQuery {
	f := domain.LeadFilter{
		Search: strings.TrimSpace(req.Search),
		Tags:   ParseTags(req.Tags),
	}

	if s := domain.LeadStatus(strings.TrimSpace(req.Status)); s.IsValid() {
		f.Status = &s
	}
	if id, err := uuid.Parse(strings.TrimSpace(req.AssignedTo)); err == nil {
		f.AssignedTo = &id
	}
	f.From, _ = parseBound(req.StartDate, false)
	f.To, _ = parseBound(req.EndDate, true)

	return domain.LeadQuery{
		Filter: ScopeFilter(caller, f),
		Page:   parsePage(req.Page),
		Limit:  parseLimit(req.Limit, paging),
	}
}

// ScopeFilter narrows f to what caller may read. Callers without the
// view-all capability are pinned to their own leads; any requested
// assignee is overridden.
func ScopeFilter(caller domain.Caller, f domain.LeadFilter) domain.LeadFilter {
	if !caller.Role.Can(domain.CapViewAllLeads) {
		id := caller.ID
		f.AssignedTo = &id
	}
	return f
}

// ParseTags splits a comma-separated tag list into a de-duplicated set,
// keeping first-seen order. An empty result means no tag filter.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		tags = append(tags, p)
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// parseBound accepts YYYY-MM-DD or RFC3339. A date-only upper bound is
// extended to the last instant of that day so the whole day is included.
func parseBound(raw string, upper bool) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	t, err := time.Parse(dateOnly, raw)
	if err != nil {
		return nil, false
	}
	if upper {
		t = t.AddDate(0, 0, 1).Add(-time.Microsecond)
	}
	return &t, true
}

func parsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parseLimit(raw string, paging Paging) int {
	def := paging.DefaultLimit
	if def <= 0 {
		def = 10
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		n = def
	}
	if paging.MaxLimit > 0 && n > paging.MaxLimit {
		n = paging.MaxLimit
	}
	return n
}

// Paginate computes the page envelope for a result of total rows.
func Paginate(total, page, limit int) domain.Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return domain.Pagination{Total: total, Page: page, Pages: pages}
}
