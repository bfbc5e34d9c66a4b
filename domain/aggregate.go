package domain

import (
	"sort"
	"time"
)

// Stats holds the global dashboard counters.
type Stats struct {
	Total     int `json:"total"`
	Resolved  int `json:"resolved"`
	Open      int `json:"open"`
	Escalated int `json:"escalated"`
}

// DepartmentBreakdown is the per-category slice of the department chart.
// Pending means "not resolved": the stored model is binary status plus an
// escalation level, not a tri-state.
type DepartmentBreakdown struct {
	Name      string `json:"name"`
	Resolved  int    `json:"resolved"`
	Pending   int    `json:"pending"`
	Escalated int    `json:"escalated"`
}

// StatusSlice is one wedge of the status distribution chart.
type StatusSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// WatchlistEntry is an open complaint ranked by age against its SLA window.
type WatchlistEntry struct {
	ComplaintID        string `json:"complaintID"`
	Subject            string `json:"subject"`
	Category           string `json:"category"`
	District           string `json:"district"`
	AssignedDepartment string `json:"assignedDepartment"`
	DaysOpen           int    `json:"daysOpen"`
	SLADays            int    `json:"slaDays"`
	Breached           bool   `json:"breached"`
	Warning            bool   `json:"warning"`
}

// DashboardSnapshot is the full aggregation consumed by presentation layers.
type DashboardSnapshot struct {
	Stats              Stats                 `json:"stats"`
	ByDepartment       []DepartmentBreakdown `json:"byDepartment"`
	StatusDistribution []StatusSlice         `json:"statusDistribution"`
	Watchlist          []WatchlistEntry      `json:"watchlist"`
	GeneratedAt        time.Time             `json:"generatedAt"`
}

// Aggregate computes dashboard statistics over a snapshot of complaint
// records at an explicit instant. Pure and idempotent: the same records and
// the same now always produce an identical snapshot.
//
// A complaint that is open and escalated counts in both the Open and the
// Escalated slices of the status distribution. The overlap is intentional:
// escalation is an overlay on the binary status, and Resolved+Open always
// equals Total.
func Aggregate(complaints []Complaint, now time.Time) DashboardSnapshot {
	var stats Stats
	stats.Total = len(complaints)

	byDepartment := make(map[string]*DepartmentBreakdown)

	for i := range complaints {
		c := &complaints[i]

		group := c.Category
		if group == "" {
			group = CategoryOther
		}
		breakdown, ok := byDepartment[group]
		if !ok {
			breakdown = &DepartmentBreakdown{Name: group}
			byDepartment[group] = breakdown
		}

		if c.IsResolved() {
			stats.Resolved++
			breakdown.Resolved++
		} else {
			stats.Open++
			breakdown.Pending++
		}
		if c.EscalationLevel > 0 {
			stats.Escalated++
			breakdown.Escalated++
		}
	}

	departments := make([]DepartmentBreakdown, 0, len(byDepartment))
	for _, breakdown := range byDepartment {
		departments = append(departments, *breakdown)
	}
	sort.Slice(departments, func(i, j int) bool {
		return departments[i].Name < departments[j].Name
	})

	return DashboardSnapshot{
		Stats:        stats,
		ByDepartment: departments,
		StatusDistribution: []StatusSlice{
			{Name: "Resolved", Value: stats.Resolved},
			{Name: "Open", Value: stats.Open},
			{Name: "Escalated", Value: stats.Escalated},
		},
		Watchlist:   Watchlist(complaints, DefaultWatchlistLimit, now),
		GeneratedAt: now,
	}
}

// DefaultWatchlistLimit caps the at-risk shortlist shown on the dashboard.
const DefaultWatchlistLimit = 5

// Watchlist ranks open complaints by days open, flagging those near or past
// their SLA window. Ties keep input order; the result never exceeds limit.
func Watchlist(complaints []Complaint, limit int, now time.Time) []WatchlistEntry {
	var entries []WatchlistEntry

	for i := range complaints {
		c := &complaints[i]
		if c.IsResolved() {
			continue
		}

		daysOpen := c.DaysOpen(now)
		slaDays := c.SLADays
		if slaDays == 0 && c.SLADeadline.IsZero() {
			// Record predates SLA assignment; display must not block.
			slaDays = DefaultSLADays
		}

		entries = append(entries, WatchlistEntry{
			ComplaintID:        c.ComplaintID,
			Subject:            c.Subject,
			Category:           c.Category,
			District:           c.District,
			AssignedDepartment: c.AssignedDepartment,
			DaysOpen:           daysOpen,
			SLADays:            slaDays,
			Breached:           daysOpen > slaDays,
			Warning:            daysOpen >= slaDays-2 && daysOpen <= slaDays,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysOpen > entries[j].DaysOpen
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries
}
