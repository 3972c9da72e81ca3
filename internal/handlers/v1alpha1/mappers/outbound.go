package mappers

import (
	"encoding/json"
	"strings"

	api "github.com/findajob/job-triage/api/v1alpha1"
	"github.com/findajob/job-triage/internal/service"
	"github.com/findajob/job-triage/internal/store/model"
)

func JobViewToApi(v model.JobView) api.JobView {
	return api.JobView{
		Id:             v.ID,
		JobId:          v.JobID,
		ExternalJobId:  v.ExternalJobID,
		Title:          v.Title,
		Location:       v.Location,
		Url:            v.URL,
		Description:    v.Description,
		Employer:       v.Employer,
		EmployerUrl:    v.EmployerURL,
		EmploymentType: v.EmploymentType,
		JobFunction:    v.JobFunction,
		Seniority:      v.Seniority,
		Industries:     v.Industries,
		Status:         string(v.Status),
		RunId:          v.RunID,
		Summary:        SummaryToApi(v.JobSummary),
		CoverLetter:    CoverLetterToApi(v.CoverLetter),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
		ProcessedAt:    v.ProcessedAt,
	}
}

func JobViewPageToApi(page *model.JobViewPage) api.JobList {
	items := make([]api.JobView, 0, len(page.Items))
	for _, v := range page.Items {
		items = append(items, JobViewToApi(v))
	}
	return api.JobList{
		Items:    items,
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
	}
}

func StatusChangeToApi(change *service.StatusChange) api.StatusUpdateResponse {
	return api.StatusUpdateResponse{
		JobId:          change.JobID,
		ProcessedJobId: change.ProcessedJobID,
		Status:         string(change.Status),
	}
}

func JobStatusesToApi(statuses []model.JobStatus) api.JobStatusList {
	list := make(api.JobStatusList, 0, len(statuses))
	for _, s := range statuses {
		list = append(list, string(s))
	}
	return list
}

type storedSummary struct {
	Summary             string          `json:"summary"`
	Responsibilities    []string        `json:"responsibilities"`
	Requirements        []string        `json:"requirements"`
	OpportunityInterest string          `json:"opportunity_interest"`
	BackgroundAligns    json.RawMessage `json:"background_aligns"`
}

type storedCoverLetter struct {
	Subject       string `json:"subject"`
	LetterContent string `json:"letter_content"`
	Body          string `json:"body"`
	LetterClosing string `json:"letter_closing"`
	Closing       string `json:"closing"`
}

// SummaryToApi decodes the stored summary. Text that is not a json object comes back in Raw.
func SummaryToApi(text *string) *api.JobSummary {
	if text == nil || strings.TrimSpace(*text) == "" {
		return nil
	}

	var stored storedSummary
	if err := json.Unmarshal([]byte(*text), &stored); err != nil {
		return &api.JobSummary{Raw: text}
	}

	return &api.JobSummary{
		Summary:             stored.Summary,
		Responsibilities:    stored.Responsibilities,
		Requirements:        stored.Requirements,
		OpportunityInterest: stored.OpportunityInterest,
		BackgroundAligns:    alignmentToApi(stored.BackgroundAligns),
	}
}

// alignmentToApi accepts the detailed score object or a bare total, as number or string.
func alignmentToApi(raw json.RawMessage) *api.AlignmentScore {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var score api.AlignmentScore
	if err := json.Unmarshal(raw, &score); err == nil {
		return &score
	}

	var total json.Number
	if err := json.Unmarshal(raw, &total); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		total = json.Number(strings.TrimSpace(s))
	}
	if n, err := total.Int64(); err == nil {
		return &api.AlignmentScore{Total: int(n)}
	}
	if f, err := total.Float64(); err == nil {
		return &api.AlignmentScore{Total: int(f)}
	}
	return nil
}

// CoverLetterToApi decodes the stored letter. Text that is not a json object comes back in Raw.
func CoverLetterToApi(text *string) *api.CoverLetter {
	if text == nil || strings.TrimSpace(*text) == "" {
		return nil
	}

	var stored storedCoverLetter
	if err := json.Unmarshal([]byte(*text), &stored); err != nil {
		return &api.CoverLetter{Raw: text}
	}

	letter := &api.CoverLetter{
		Subject: stored.Subject,
		Body:    firstNonEmpty(stored.LetterContent, stored.Body),
		Closing: firstNonEmpty(stored.LetterClosing, stored.Closing),
	}
	if *letter == (api.CoverLetter{}) {
		letter.Raw = text
	}
	return letter
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
