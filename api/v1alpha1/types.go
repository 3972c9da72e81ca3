package v1alpha1

import "time"

// JobView is a completed processed job with its job fields.
type JobView struct {
	Id             int64        `json:"id"`
	JobId          int64        `json:"jobId"`
	ExternalJobId  string       `json:"externalJobId"`
	Title          string       `json:"title"`
	Location       string       `json:"location"`
	Url            string       `json:"url"`
	Description    string       `json:"description"`
	Employer       string       `json:"employer"`
	EmployerUrl    string       `json:"employerUrl"`
	EmploymentType string       `json:"employmentType"`
	JobFunction    string       `json:"jobFunction"`
	Seniority      string       `json:"seniority"`
	Industries     string       `json:"industries"`
	Status         string       `json:"status"`
	RunId          string       `json:"runId"`
	Summary        *JobSummary  `json:"summary,omitempty"`
	CoverLetter    *CoverLetter `json:"coverLetter,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
	ProcessedAt    time.Time    `json:"processedAt"`
}

type JobList struct {
	Items    []JobView `json:"items"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}

// JobSummary is the AI summary of a job. Raw holds the stored text when it is not a json summary.
type JobSummary struct {
	Summary             string          `json:"summary,omitempty"`
	Responsibilities    []string        `json:"responsibilities,omitempty"`
	Requirements        []string        `json:"requirements,omitempty"`
	OpportunityInterest string          `json:"opportunityInterest,omitempty"`
	BackgroundAligns    *AlignmentScore `json:"backgroundAligns,omitempty"`
	Raw                 *string         `json:"raw,omitempty"`
}

type AlignmentScore struct {
	Total      int `json:"total"`
	Skills     int `json:"skills,omitempty"`
	Education  int `json:"education,omitempty"`
	Experience int `json:"experience,omitempty"`
	Location   int `json:"location,omitempty"`
	Industries int `json:"industries,omitempty"`
	Languages  int `json:"languages,omitempty"`
}

// CoverLetter is the generated cover letter. Raw holds the stored text when it is not a json letter.
type CoverLetter struct {
	Subject string  `json:"subject,omitempty"`
	Body    string  `json:"body,omitempty"`
	Closing string  `json:"closing,omitempty"`
	Raw     *string `json:"raw,omitempty"`
}

type StatusUpdate struct {
	Status string `json:"status" validate:"required,job_status"`
}

type StatusUpdateResponse struct {
	JobId          int64  `json:"jobId"`
	ProcessedJobId int64  `json:"processedJobId"`
	Status         string `json:"status"`
}

type JobStatusList []string

type Error struct {
	Message   string  `json:"message"`
	RequestId *string `json:"requestId,omitempty"`
}

type Health struct {
	Status string `json:"status"`
}

type Info struct {
	GitCommit   string `json:"gitCommit"`
	VersionName string `json:"versionName"`
}
