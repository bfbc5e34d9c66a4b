package domain

import (
	"fmt"
	"time"

	"github.com/civicledger/grievance-chaincode/config"
	"github.com/civicledger/grievance-chaincode/utils"
	"github.com/civicledger/grievance-chaincode/validation"
)

// ComplaintStatus is the stored lifecycle state. Storage is deliberately
// binary; richer labels shown to citizens are derived in DisplayStatus.
type ComplaintStatus string

const (
	StatusOpen     ComplaintStatus = "OPEN"
	StatusResolved ComplaintStatus = "RESOLVED"
)

// Complaint represents a lodged grievance and its governance fields.
// Submission and routing fields are immutable after creation; only status,
// escalation level and acknowledgements change over the record's life.
type Complaint struct {
	ComplaintID string `json:"complaintID"`

	// Submission fields
	CitizenName string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Category    string `json:"category"`
	District    string `json:"district"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Emergency   bool   `json:"emergency,omitempty"`

	// Routing outputs, set once at creation
	AssignedDepartment string `json:"assignedDepartment"`
	AssignedOffice     string `json:"assignedOffice"`

	// Governance fields
	Status          ComplaintStatus `json:"status"`
	EscalationLevel int             `json:"escalationLevel"`
	SLADays         int             `json:"slaDays"`
	SLADeadline     time.Time       `json:"slaDeadline"`

	Acknowledgements []Acknowledgement `json:"acknowledgements,omitempty"`

	CreatedAt  time.Time  `json:"createdAt"`
	CreatedBy  string     `json:"createdBy,omitempty"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy string     `json:"resolvedBy,omitempty"`
}

// Acknowledgement records the external signal that an authority at the given
// escalation level has taken ownership of the complaint.
type Acknowledgement struct {
	Level   int       `json:"level"`
	ActorID string    `json:"actorID"`
	AckAt   time.Time `json:"ackAt"`
}

// AcknowledgedAt returns the timestamp of the acknowledgement recorded for the
// given level, or nil when none exists.
func (c *Complaint) AcknowledgedAt(level int) *time.Time {
	for i := range c.Acknowledgements {
		if c.Acknowledgements[i].Level == level {
			return &c.Acknowledgements[i].AckAt
		}
	}
	return nil
}

// IsResolved reports whether the complaint has reached its terminal state.
func (c *Complaint) IsResolved() bool {
	return c.Status == StatusResolved
}

// DaysOpen returns the whole days elapsed since creation. A missing createdAt
// yields zero so that a malformed record can never appear breached.
func (c *Complaint) DaysOpen(now time.Time) int {
	return utils.DaysBetween(c.CreatedAt, now)
}

// DisplayStatus maps the stored binary status plus escalation state onto the
// labels shown on the tracking page. Presentation only; never persisted.
func (c *Complaint) DisplayStatus() string {
	switch {
	case c.Status == StatusResolved:
		return "Resolved"
	case c.EscalationLevel > 0:
		return "Escalated"
	case len(c.Acknowledgements) > 0:
		return "In Progress"
	default:
		return "Pending"
	}
}

// TimelineEntry is one step in a complaint's activity timeline.
type TimelineEntry struct {
	HistoryID string    `json:"historyID"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	ActorID   string    `json:"actorID"`
	Detail    string    `json:"detail,omitempty"`
}

// SubmissionRequest carries the intake form fields for a new complaint.
type SubmissionRequest struct {
	CitizenName string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	Category    string `json:"category"`
	District    string `json:"district"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Emergency   bool   `json:"emergency,omitempty"`
	ActorID     string `json:"actorID"`
}

// ValidateSubmission checks intake form fields. Category and district are
// validated strictly against their enumerated sets; routing must never guess.
func ValidateSubmission(req *SubmissionRequest) error {
	if err := validation.ValidateRequired(map[string]string{
		"name":        req.CitizenName,
		"phone":       req.Phone,
		"category":    req.Category,
		"district":    req.District,
		"subject":     req.Subject,
		"description": req.Description,
	}); err != nil {
		return err
	}

	if err := validation.ValidateField("name", req.CitizenName,
		validation.CreateMaxLengthRule(config.MaxNameLength)); err != nil {
		return err
	}
	if err := validation.ValidateField("phone", req.Phone, validation.PhoneRule); err != nil {
		return err
	}
	if req.Email != "" {
		if err := validation.ValidateField("email", req.Email, validation.EmailRule); err != nil {
			return err
		}
	}
	if err := validation.ValidateField("subject", req.Subject,
		validation.CreateMaxLengthRule(config.MaxSubjectLength)); err != nil {
		return err
	}
	if err := validation.ValidateField("description", req.Description,
		validation.CreateMaxLengthRule(config.MaxDescriptionLength)); err != nil {
		return err
	}

	if !IsValidCategory(req.Category) {
		return fmt.Errorf("category: %w: %q", ErrUnknownCategory, req.Category)
	}
	if !IsValidDistrict(req.District) {
		return fmt.Errorf("district: %w: %q", ErrUnknownDistrict, req.District)
	}

	return nil
}
