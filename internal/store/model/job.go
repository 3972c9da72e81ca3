package model

import (
	"encoding/json"
	"time"
)

// Job is a scraped posting. Everything but Status and UpdatedAt is written once by the scraper.
type Job struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	ExternalID     string    `gorm:"column:job_id;type:VARCHAR(255);uniqueIndex:idx_job_id;not null"`
	Source         string    `gorm:"column:spider_source;type:VARCHAR(255)"`
	Title          string    `gorm:"column:job_title;type:TEXT"`
	Location       string    `gorm:"column:job_location;type:TEXT"`
	URL            string    `gorm:"column:job_url;type:TEXT"`
	Description    string    `gorm:"column:job_description;type:TEXT"`
	Employer       string    `gorm:"column:employer;type:VARCHAR(255)"`
	EmployerURL    string    `gorm:"column:employer_url;type:TEXT"`
	EmploymentType string    `gorm:"column:employment_type;type:VARCHAR(100)"`
	JobFunction    string    `gorm:"column:job_function;type:VARCHAR(255)"`
	Seniority      string    `gorm:"column:seniority_level;type:VARCHAR(100)"`
	Industries     string    `gorm:"column:industries;type:TEXT"`
	RunID          *string   `gorm:"column:run_id;type:VARCHAR(255)"`
	Status         JobStatus `gorm:"column:status;type:VARCHAR(50);not null;default:'new'"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (Job) TableName() string {
	return "jobs"
}

func (j Job) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}
