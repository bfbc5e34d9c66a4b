package config

// Event names consumed by the notification and dashboard relays
const (
	EventComplaintSubmitted    = "ComplaintSubmitted"
	EventComplaintAcknowledged = "ComplaintAcknowledged"
	EventComplaintResolved     = "ComplaintResolved"
	EventComplaintEscalated    = "ComplaintEscalated"
)
