package entity

type Status string

// Audit trail event statuses.
const (
	Pending    Status = "pending"
	Processing Status = "processing"
	Completed  Status = "completed"
	Failed     Status = "failed"
	Error      Status = "error"
	Warning    Status = "warning"
)

// Outbox delivery statuses. Pending, Processing and Failed are shared
// with the audit statuses above.
const (
	Processed Status = "processed"
)
