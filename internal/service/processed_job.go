package service

import (
	"context"
	"errors"
	"math"

	"github.com/findajob/job-triage/internal/store"
	"github.com/findajob/job-triage/internal/store/model"
	"github.com/findajob/job-triage/pkg/log"
	"github.com/findajob/job-triage/pkg/metrics"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*pageSize within an int for every valid page size.
	MaxPage = math.MaxInt / MaxPageSize
)

// Filter holds the optional predicates of a query. Empty fields impose no restriction.
type Filter struct {
	Status    string `json:"status,omitempty"`
	Seniority string `json:"seniority,omitempty"`
	Employer  string `json:"employer,omitempty"`
	Title     string `json:"title,omitempty"`
}

// ListParams describes one page of processed jobs. Page and PageSize are required, callers
// use DefaultPage and DefaultPageSize for absent values. Empty SortBy and Order mean created_at desc.
type ListParams struct {
	Filter   Filter
	SortBy   string
	Order    string
	Page     int
	PageSize int
}

type ProcessedJobService struct {
	store  store.Store
	logger *log.StructuredLogger
}

func NewProcessedJobService(store store.Store) *ProcessedJobService {
	return &ProcessedJobService{
		store:  store,
		logger: log.NewDebugLogger("processed_job_service"),
	}
}

func (s *ProcessedJobService) ListProcessedJobs(ctx context.Context, params ListParams) (*model.JobViewPage, error) {
	tracer := s.logger.WithContext(ctx).
		Operation("list_processed_jobs").
		WithParam("filter", params.Filter).
		WithString("sort_by", params.SortBy).
		WithString("order", params.Order).
		WithInt("page", params.Page).
		WithInt("page_size", params.PageSize).
		Build()

	params = withDefaults(params)
	sortBy := store.SortField(params.SortBy)

	filter, err := buildFilter(params.Filter)
	if err != nil {
		metrics.ObserveJobQuery("invalid", "invalid_input", 0)
		return nil, err
	}
	opts, err := buildOptions(params)
	if err != nil {
		metrics.ObserveJobQuery("invalid", "invalid_input", 0)
		return nil, err
	}

	total, err := s.store.ProcessedJob().Count(ctx, filter)
	if err != nil {
		tracer.Error(err).WithString("step", "count").Log()
		metrics.ObserveJobQuery(string(sortBy), "store_unavailable", 0)
		return nil, NewErrStoreUnavailable(err)
	}

	items, err := s.store.ProcessedJob().List(ctx, filter, opts)
	if err != nil {
		tracer.Error(err).WithString("step", "list").Log()
		metrics.ObserveJobQuery(string(sortBy), "store_unavailable", 0)
		return nil, NewErrStoreUnavailable(err)
	}

	metrics.ObserveJobQuery(string(sortBy), "ok", total)
	tracer.Success().WithInt64("total", total).WithInt("items", len(items)).Log()

	return &model.JobViewPage{
		Items:    items,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

func (s *ProcessedJobService) GetProcessedJob(ctx context.Context, id int64) (*model.JobView, error) {
	tracer := s.logger.WithContext(ctx).Operation("get_processed_job").WithInt64("processed_job_id", id).Build()

	view, err := s.store.ProcessedJob().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProcessedJobNotFound(id)
		}
		tracer.Error(err).Log()
		return nil, NewErrStoreUnavailable(err)
	}

	tracer.Success().WithInt64("job_id", view.JobID).Log()
	return view, nil
}

func withDefaults(params ListParams) ListParams {
	if params.SortBy == "" {
		params.SortBy = string(store.SortByCreatedTime)
	}
	if params.Order == "" {
		params.Order = string(store.SortDescending)
	}
	return params
}

func buildFilter(f Filter) (*store.ProcessedJobQueryFilter, error) {
	filter := store.NewProcessedJobQueryFilter()
	if f.Status != "" {
		status, err := model.ParseJobStatus(f.Status)
		if err != nil {
			return nil, NewErrInvalidStatus(f.Status)
		}
		filter = filter.ByStatus(status)
	}
	if f.Seniority != "" {
		filter = filter.BySeniority(f.Seniority)
	}
	if f.Employer != "" {
		filter = filter.ByEmployerLike(f.Employer)
	}
	if f.Title != "" {
		filter = filter.ByTitleLike(f.Title)
	}
	return filter, nil
}

func buildOptions(params ListParams) (*store.ProcessedJobQueryOptions, error) {
	if params.Page < 1 {
		return nil, NewErrInvalidInput("page must be at least 1, got %d", params.Page)
	}
	if params.Page > MaxPage {
		return nil, NewErrInvalidInput("page must be at most %d, got %d", MaxPage, params.Page)
	}
	if params.PageSize < 1 || params.PageSize > MaxPageSize {
		return nil, NewErrInvalidInput("pageSize must be between 1 and %d, got %d", MaxPageSize, params.PageSize)
	}

	field := store.SortField(params.SortBy)
	switch field {
	case store.SortByCreatedTime, store.SortByStatus, store.SortBySeniority, store.SortByTitle, store.SortByEmployer:
	default:
		return nil, NewErrInvalidInput("unknown sortBy %q", params.SortBy)
	}

	direction := store.SortDirection(params.Order)
	if direction != store.SortAscending && direction != store.SortDescending {
		return nil, NewErrInvalidInput("order must be asc or desc, got %q", params.Order)
	}

	return store.NewProcessedJobQueryOptions().
		WithSort(field, direction).
		WithLimit(params.PageSize).
		WithOffset((params.Page - 1) * params.PageSize), nil
}
