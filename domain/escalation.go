package domain

import "time"

// Escalation thresholds. All escalation arithmetic is hour-granular; only the
// dashboard watchlist works in whole days.
const (
	// MaxEscalationLevel is terminal: the engine keeps reporting breach
	// duration but never escalates past it.
	MaxEscalationLevel = 3

	// Level1AckWindow is how long after the SLA breach the department head
	// has to acknowledge before the complaint moves to Level 2.
	Level1AckWindow = 24 * time.Hour

	// Level2ResolutionWindow is how long after entering Level 2 a complaint
	// may remain unresolved before reaching the highest authority.
	Level2ResolutionWindow = 72 * time.Hour

	// WarningWindow is the near-breach horizon used by the watchlist.
	WarningWindow = 48 * time.Hour
)

var notifyTargets = map[int]string{
	1: "Department Head",
	2: "District Officer",
	3: "Collector/Commissioner",
}

// NotifyTarget returns the authority notified when a complaint reaches the
// given escalation level.
func NotifyTarget(level int) string {
	return notifyTargets[level]
}

// EscalationStep describes one level of the escalation hierarchy for the
// public rules page.
type EscalationStep struct {
	Level          int    `json:"level"`
	Authority      string `json:"authority"`
	Trigger        string `json:"trigger"`
	Action         string `json:"action"`
	ResponseWindow string `json:"responseWindow"`
}

// EscalationMatrix returns the escalation hierarchy in level order.
func EscalationMatrix() []EscalationStep {
	return []EscalationStep{
		{
			Level:          1,
			Authority:      NotifyTarget(1),
			Trigger:        "SLA deadline breached",
			Action:         "Automatic email notification to Department Head",
			ResponseWindow: "24 hours to acknowledge",
		},
		{
			Level:          2,
			Authority:      NotifyTarget(2),
			Trigger:        "No acknowledgement within 24 hours of SLA breach",
			Action:         "SMS and email to District Officer with complaint details",
			ResponseWindow: "12 hours to acknowledge",
		},
		{
			Level:          3,
			Authority:      NotifyTarget(3),
			Trigger:        "No resolution within 72 hours of Level 2 escalation",
			Action:         "Direct escalation to District Collector/Commissioner",
			ResponseWindow: "Priority handling required",
		},
	}
}

// Transition is the notification-boundary event payload for one escalation
// level step.
type Transition struct {
	ComplaintID  string    `json:"complaintID"`
	FromLevel    int       `json:"fromLevel"`
	ToLevel      int       `json:"toLevel"`
	NotifyTarget string    `json:"notifyTarget"`
	TriggeredAt  time.Time `json:"triggeredAt"`
}

// Evaluation is the outcome of running the escalation rules against one
// complaint at an explicit instant.
type Evaluation struct {
	ComplaintID string       `json:"complaintID"`
	Level       int          `json:"level"`
	Transitions []Transition `json:"transitions,omitempty"`
	BreachedFor string       `json:"breachedFor,omitempty"`
	Warning     bool         `json:"warning"`
	NextTrigger *time.Time   `json:"nextTrigger,omitempty"`
}

// effectiveDeadline guards against records persisted with slaDays <= 0 or a
// missing deadline: such complaints become Level-1 eligible as soon as any
// positive time has elapsed since creation.
func (c *Complaint) effectiveDeadline() time.Time {
	if c.SLADeadline.IsZero() {
		return c.CreatedAt
	}
	return c.SLADeadline
}

// Evaluate derives the escalation level for a complaint at the given instant.
// The result never goes below the stored level, resolution freezes evaluation
// permanently, and a record without a valid createdAt is never escalated.
// Level entry instants are fixed offsets from the SLA deadline, so repeated
// evaluations at any later time produce identical transitions.
func Evaluate(c *Complaint, now time.Time) Evaluation {
	eval := Evaluation{ComplaintID: c.ComplaintID, Level: c.EscalationLevel}

	if c.IsResolved() || c.CreatedAt.IsZero() {
		return eval
	}

	deadline := c.effectiveDeadline()
	age := now.Sub(deadline)

	if age > 0 {
		eval.BreachedFor = age.String()
	}

	derived := deriveLevel(c, deadline, age)
	if derived > eval.Level {
		for level := eval.Level + 1; level <= derived; level++ {
			eval.Transitions = append(eval.Transitions, Transition{
				ComplaintID:  c.ComplaintID,
				FromLevel:    level - 1,
				ToLevel:      level,
				NotifyTarget: NotifyTarget(level),
				TriggeredAt:  levelEntryTime(deadline, level),
			})
		}
		eval.Level = derived
	}

	switch {
	case eval.Level == 0:
		remaining := deadline.Sub(now)
		eval.Warning = remaining >= 0 && remaining <= WarningWindow
		next := deadline
		eval.NextTrigger = &next
	case eval.Level == 1 && !heldByAcknowledgement(c, deadline):
		next := levelEntryTime(deadline, 2)
		eval.NextTrigger = &next
	case eval.Level == 2:
		next := levelEntryTime(deadline, 3)
		eval.NextTrigger = &next
	}

	return eval
}

// deriveLevel applies the rule hierarchy to the breach age.
func deriveLevel(c *Complaint, deadline time.Time, age time.Duration) int {
	if age <= 0 {
		return 0
	}
	if heldByAcknowledgement(c, deadline) {
		return 1
	}
	if age <= Level1AckWindow {
		return 1
	}
	if age <= Level1AckWindow+Level2ResolutionWindow {
		return 2
	}
	return MaxEscalationLevel
}

// heldByAcknowledgement reports whether a department-head acknowledgement
// arrived inside the Level-1 window, which stops the clock at Level 1. A late
// acknowledgement does not undo an already-triggered Level 2.
func heldByAcknowledgement(c *Complaint, deadline time.Time) bool {
	ack := c.AcknowledgedAt(1)
	return ack != nil && !ack.After(deadline.Add(Level1AckWindow))
}

// levelEntryTime returns the instant at which the trigger for the given level
// fires relative to the SLA deadline.
func levelEntryTime(deadline time.Time, level int) time.Time {
	switch level {
	case 1:
		return deadline
	case 2:
		return deadline.Add(Level1AckWindow)
	default:
		return deadline.Add(Level1AckWindow + Level2ResolutionWindow)
	}
}
