package config

// Application constants
const (
	// Validation limits
	MaxNameLength        = 200
	MaxSubjectLength     = 200
	MaxDescriptionLength = 2000
)
