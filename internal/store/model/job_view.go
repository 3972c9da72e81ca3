package model

import "time"

// JobView is a completed processed job joined with its job row.
// ID is the processed job id, JobID the underlying job id.
type JobView struct {
	ID               int64            `gorm:"column:id"`
	JobID            int64            `gorm:"column:job_id"`
	ExternalJobID    string           `gorm:"column:external_job_id"`
	Title            string           `gorm:"column:title"`
	Location         string           `gorm:"column:location"`
	URL              string           `gorm:"column:url"`
	Description      string           `gorm:"column:description"`
	Employer         string           `gorm:"column:employer"`
	EmployerURL      string           `gorm:"column:employer_url"`
	EmploymentType   string           `gorm:"column:employment_type"`
	JobFunction      string           `gorm:"column:job_function"`
	Seniority        string           `gorm:"column:seniority"`
	Industries       string           `gorm:"column:industries"`
	Status           JobStatus        `gorm:"column:status"`
	RunID            string           `gorm:"column:run_id"`
	CoverLetter      *string          `gorm:"column:cover_letter"`
	JobSummary       *string          `gorm:"column:job_summary"`
	ProcessingStatus ProcessingStatus `gorm:"column:processing_status"`
	CreatedAt        time.Time        `gorm:"column:created_at"`
	UpdatedAt        time.Time        `gorm:"column:updated_at"`
	ProcessedAt      time.Time        `gorm:"column:processed_at"`
}

type JobViewList []JobView

type JobViewPage struct {
	Items    JobViewList
	Total    int64
	Page     int
	PageSize int
}
