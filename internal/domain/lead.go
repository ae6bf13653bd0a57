package domain

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus is the pipeline position of a lead. There is no enforced
// transition graph between statuses.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusContacted LeadStatus = "Contacted"
	LeadStatusQualified LeadStatus = "Qualified"
	LeadStatusLost      LeadStatus = "Lost"
	LeadStatusWon       LeadStatus = "Won"
)

// LeadStatuses lists every status in pipeline order.
var LeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusLost,
	LeadStatusWon,
}

func (s LeadStatus) String() string { return string(s) }

func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusLost, LeadStatusWon:
		return true
	}
	return false
}

// Lead is a sales prospect.
type Lead struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Phone      string
	Source     string
	Status     LeadStatus
	Tags       []string
	Notes      []Note
	AssignedTo *uuid.UUID
	// Assignee is populated on reads when AssignedTo references an existing user.
	Assignee  *UserRef
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAssignedTo reports whether userID is the lead's current assignee.
func (l *Lead) IsAssignedTo(userID uuid.UUID) bool {
	return l.AssignedTo != nil && *l.AssignedTo == userID
}

// Note is a comment owned by a lead. Author is a snapshot of the display
// name at the time of writing.
type Note struct {
	ID        uuid.UUID
	LeadID    uuid.UUID
	Text      string
	Author    string
	CreatedAt time.Time
}

// UserRef is the short user projection embedded in other resources.
type UserRef struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  Role
}

// LeadFilter is the effective read filter after access rules are applied.
// Zero values mean "no restriction" for that dimension.
type LeadFilter struct {
	AssignedTo *uuid.UUID
	Status     *LeadStatus
	Tags       []string
	Search     string
	From       *time.Time
	// To is inclusive.
	To *time.Time
}

// LeadQuery is a filter plus a page window.
type LeadQuery struct {
	Filter LeadFilter
	Page   int
	Limit  int
}

// Offset returns the number of rows to skip.
func (q LeadQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

// Pagination describes the page returned by a list call.
type Pagination struct {
	Total int
	Page  int
	Pages int
}

// LeadPage is one page of leads.
type LeadPage struct {
	Items      []Lead
	Pagination Pagination
}

// StatusCount is one bucket of the status histogram.
type StatusCount struct {
	Status LeadStatus `json:"status"`
	Count  int        `json:"count"`
}

// AgentCount is the number of leads assigned to one user. A nil AgentID
// is the bucket of unassigned leads.
type AgentCount struct {
	AgentID *uuid.UUID `json:"agentId"`
	Name    string     `json:"name"`
	Count   int        `json:"count"`
}

// RecentLead is the compact lead projection shown on the dashboard.
type RecentLead struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Status    LeadStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

// LeadStats is the dashboard aggregate. It is cached as JSON.
type LeadStats struct {
	TotalLeads         int           `json:"totalLeads"`
	StatusDistribution []StatusCount `json:"statusDistribution"`
	AgentPerformance   []AgentCount  `json:"agentPerformance"`
	RecentLeads        []RecentLead  `json:"recentLeads"`
}

// ImportRow is one data row of an uploaded lead spreadsheet. Line is the
// 1-based sheet row, for error reporting.
type ImportRow struct {
	Line   int
	Name   string
	Email  string
	Phone  string
	Source string
}
