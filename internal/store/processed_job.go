package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/findajob/job-triage/internal/store/model"
	"gorm.io/gorm"
)

const jobViewColumns = `processed_jobs.id AS id,
	jobs.id AS job_id,
	jobs.job_id AS external_job_id,
	COALESCE(jobs.job_title, '') AS title,
	COALESCE(jobs.job_location, '') AS location,
	COALESCE(jobs.job_url, '') AS url,
	COALESCE(jobs.job_description, '') AS description,
	COALESCE(jobs.employer, '') AS employer,
	COALESCE(jobs.employer_url, '') AS employer_url,
	COALESCE(jobs.employment_type, '') AS employment_type,
	COALESCE(jobs.job_function, '') AS job_function,
	COALESCE(jobs.seniority_level, '') AS seniority,
	COALESCE(jobs.industries, '') AS industries,
	jobs.status AS status,
	processed_jobs.runid AS run_id,
	processed_jobs.cover_letter AS cover_letter,
	processed_jobs.job_summary AS job_summary,
	processed_jobs.processing_status AS processing_status,
	jobs.created_at AS created_at,
	jobs.updated_at AS updated_at,
	processed_jobs.created_at AS processed_at`

// a job is visible through its newest completed processed job only
const latestCompletedClause = `processed_jobs.id = (SELECT MAX(latest.id) FROM processed_jobs latest
	WHERE latest.job_id = processed_jobs.job_id AND latest.processing_status = ?)`

type ProcessedJob interface {
	List(ctx context.Context, filter *ProcessedJobQueryFilter, opts *ProcessedJobQueryOptions) (model.JobViewList, error)
	Count(ctx context.Context, filter *ProcessedJobQueryFilter) (int64, error)
	Get(ctx context.Context, id int64) (*model.JobView, error)
	GetJobID(ctx context.Context, id int64) (int64, error)
}

type ProcessedJobStore struct {
	db *gorm.DB
}

// Make sure we conform to ProcessedJob interface
var _ ProcessedJob = (*ProcessedJobStore)(nil)

func NewProcessedJobStore(db *gorm.DB) ProcessedJob {
	return &ProcessedJobStore{db: db}
}

func (p *ProcessedJobStore) List(ctx context.Context, filter *ProcessedJobQueryFilter, opts *ProcessedJobQueryOptions) (model.JobViewList, error) {
	tx := p.visible(ctx, filter).Select(jobViewColumns)
	if opts != nil {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	}

	views := model.JobViewList{}
	if err := tx.Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("listing processed jobs: %w", err)
	}
	return views, nil
}

func (p *ProcessedJobStore) Count(ctx context.Context, filter *ProcessedJobQueryFilter) (int64, error) {
	var total int64
	if err := p.visible(ctx, filter).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("counting processed jobs: %w", err)
	}
	return total, nil
}

func (p *ProcessedJobStore) Get(ctx context.Context, id int64) (*model.JobView, error) {
	views, err := p.List(ctx, NewProcessedJobQueryFilter().ByID(id), NewProcessedJobQueryOptions().WithLimit(1))
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, ErrRecordNotFound
	}
	return &views[0], nil
}

// GetJobID resolves a processed job to its job, whatever its processing status.
func (p *ProcessedJobStore) GetJobID(ctx context.Context, id int64) (int64, error) {
	var processed model.ProcessedJob
	result := p.getDB(ctx).WithContext(ctx).Select("id", "job_id").First(&processed, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, ErrRecordNotFound
		}
		return 0, fmt.Errorf("querying processed job: %w", result.Error)
	}
	return processed.JobID, nil
}

func (p *ProcessedJobStore) visible(ctx context.Context, filter *ProcessedJobQueryFilter) *gorm.DB {
	tx := p.getDB(ctx).WithContext(ctx).
		Table("processed_jobs").
		Joins("JOIN jobs ON jobs.id = processed_jobs.job_id").
		Where("processed_jobs.processing_status = ?", string(model.ProcessingStatusCompleted)).
		Where(latestCompletedClause, string(model.ProcessingStatusCompleted))

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	return tx
}

func (p *ProcessedJobStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return p.db
}
