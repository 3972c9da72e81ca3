package events

import "time"

type JobStatusChangedEvent struct {
	JobID          int64     `json:"job_id"`
	ProcessedJobID int64     `json:"processed_job_id"`
	Status         string    `json:"status"`
	RequestID      string    `json:"request_id,omitempty"`
	ChangedAt      time.Time `json:"changed_at"`
}
