package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	api "github.com/findajob/job-triage/api/v1alpha1"
	"github.com/findajob/job-triage/pkg/requestid"
)

const defaultTimeout = 30 * time.Second

// JobsClient is an HTTP client for the job-triage api. It never retries.
type JobsClient struct {
	baseURL    string
	httpClient *http.Client
}

// APIError is a non 2xx answer of the api.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string
}

func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("api returned status %d: %s (request id %s)", e.StatusCode, e.Message, e.RequestID)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

// ListQuery holds the list parameters. Zero values are left out of the request.
type ListQuery struct {
	Status    string `json:"status,omitempty"`
	Seniority string `json:"seniority,omitempty"`
	Employer  string `json:"employer,omitempty"`
	Title     string `json:"title,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
	Order     string `json:"order,omitempty"`
	Page      int    `json:"page,omitempty"`
	PageSize  int    `json:"pageSize,omitempty"`
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("status", q.Status)
	set("seniority", q.Seniority)
	set("employer", q.Employer)
	set("title", q.Title)
	set("sortBy", q.SortBy)
	set("order", q.Order)
	if q.Page != 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize != 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return v
}

func NewJobsClient(baseURL string, timeout time.Duration) *JobsClient {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &JobsClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewFromConfig returns a JobsClient for the server of config.
func NewFromConfig(config *Config, timeout time.Duration) (*JobsClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return NewJobsClient(config.Service.Server, timeout), nil
}

func (c *JobsClient) ListProcessedJobs(ctx context.Context, query ListQuery) (*api.JobList, error) {
	path := "/api/v1/processed-jobs"
	if v := query.values(); len(v) > 0 {
		path += "?" + v.Encode()
	}

	var list api.JobList
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *JobsClient) GetProcessedJob(ctx context.Context, id int64) (*api.JobView, error) {
	var view api.JobView
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/processed-jobs/%d", id), nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *JobsClient) SetStatus(ctx context.Context, processedJobID int64, status string) (*api.StatusUpdateResponse, error) {
	var resp api.StatusUpdateResponse
	path := fmt.Sprintf("/api/v1/processed-jobs/%d/status", processedJobID)
	if err := c.do(ctx, http.MethodPut, path, api.StatusUpdate{Status: status}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *JobsClient) ListJobStatuses(ctx context.Context) (api.JobStatusList, error) {
	var statuses api.JobStatusList
	if err := c.do(ctx, http.MethodGet, "/api/v1/job-statuses", nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (c *JobsClient) HealthCheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *JobsClient) do(ctx context.Context, method, path string, in any, out any) error {
	var reqBody io.Reader
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		reqID = requestid.Generate()
	}
	httpReq.Header.Set(requestid.Header, reqID)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call job-triage api: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, bodyBytes, reqID)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func newAPIError(code int, body []byte, reqID string) *APIError {
	apiErr := &APIError{StatusCode: code, RequestID: reqID}

	var e api.Error
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		apiErr.Message = e.Message
		if e.RequestId != nil {
			apiErr.RequestID = *e.RequestId
		}
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(body))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(code)
	}
	return apiErr
}
