package config

// Entity prefixes for consistent key generation
const (
	// Complaint domain prefixes
	ComplaintPrefix = "GRV"
	HistoryPrefix   = "HIST"

	// Ledger key namespaces
	ComplaintKeyPrefix = "COMPLAINT_"

	// Composite key object types
	IndexComplaintByStatus     = "COMPLAINT_BY_STATUS"
	IndexComplaintByDepartment = "COMPLAINT_BY_DEPARTMENT"
	IndexComplaintByDistrict   = "COMPLAINT_BY_DISTRICT"
	IndexHistory               = "HISTORY"
)
