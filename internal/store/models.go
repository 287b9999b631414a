package store

import "time"

// Status represents the lifecycle of an export job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusExporting Status = "exporting"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// DaemonStopReason is the error message set when jobs are failed during
// daemon shutdown.
const DaemonStopReason = "Daemon stopped"

var allStatuses = []Status{
	StatusPending,
	StatusExporting,
	StatusCompleted,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// ValidStatus reports whether the string names a known job status.
func ValidStatus(value string) bool {
	_, ok := statusSet[Status(value)]
	return ok
}

// Terminal reports whether the status ends the job lifecycle.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is one export run of a project.
type Job struct {
	ID              string
	ProjectID       string
	Status          Status
	ProgressPercent float64
	ProgressMessage string
	OutputPath      string
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HealthSummary aggregates job counts for diagnostics.
type HealthSummary struct {
	Total     int
	Pending   int
	Exporting int
	Completed int
	Failed    int
}
