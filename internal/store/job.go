package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/findajob/job-triage/internal/store/model"
	"gorm.io/gorm"
)

type Job interface {
	Get(ctx context.Context, id int64) (*model.Job, error)
	UpdateStatus(ctx context.Context, id int64, status model.JobStatus) error
}

type JobStore struct {
	db *gorm.DB
}

// Make sure we conform to Job interface
var _ Job = (*JobStore)(nil)

func NewJobStore(db *gorm.DB) Job {
	return &JobStore{db: db}
}

func (s *JobStore) Get(ctx context.Context, id int64) (*model.Job, error) {
	var job model.Job
	result := s.getDB(ctx).WithContext(ctx).First(&job, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying job: %w", result.Error)
	}

	return &job, nil
}

// UpdateStatus writes status and a fresh updated_at to a single job row.
func (s *JobStore) UpdateStatus(ctx context.Context, id int64, status model.JobStatus) error {
	result := s.getDB(ctx).WithContext(ctx).Model(&model.Job{}).Where("id = ?", id).Updates(map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return fmt.Errorf("updating job status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (s *JobStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
