package model

import (
	"encoding/json"
	"time"
)

type ProcessingStatus string

const (
	ProcessingStatusPending   ProcessingStatus = "pending"
	ProcessingStatusCompleted ProcessingStatus = "completed"
	ProcessingStatusFailed    ProcessingStatus = "failed"
)

// ProcessedJob holds the artifacts the AI pipeline produced for a job during one run.
type ProcessedJob struct {
	ID               int64            `gorm:"primaryKey;autoIncrement"`
	JobID            int64            `gorm:"column:job_id;not null;index:idx_processed_jobs_job_id"`
	RunID            string           `gorm:"column:runid;type:TEXT;not null;index:idx_processed_jobs_runid"`
	CoverLetter      *string          `gorm:"column:cover_letter;type:TEXT"`
	JobSummary       *string          `gorm:"column:job_summary;type:TEXT"`
	ProcessingStatus ProcessingStatus `gorm:"column:processing_status;type:VARCHAR(20);default:'pending';index:idx_processed_jobs_status"`
	ErrorMessage     *string          `gorm:"column:error_message;type:TEXT"`
	CreatedAt        time.Time        `gorm:"not null"`
	UpdatedAt        time.Time        `gorm:"not null"`
}

func (ProcessedJob) TableName() string {
	return "processed_jobs"
}

func (p ProcessedJob) String() string {
	val, _ := json.Marshal(p)
	return string(val)
}
