package store

import (
	"context"

	"github.com/findajob/job-triage/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Job() Job
	ProcessedJob() ProcessedJob
	InitialMigration(ctx context.Context) error
	Close() error
}

type DataStore struct {
	db           *gorm.DB
	job          Job
	processedJob ProcessedJob
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:           db,
		job:          NewJobStore(db),
		processedJob: NewProcessedJobStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Job() Job {
	return s.job
}

func (s *DataStore) ProcessedJob() ProcessedJob {
	return s.processedJob
}

// InitialMigration creates the schema from the gorm models. Used for sqlite databases,
// postgres is migrated with goose.
func (s *DataStore) InitialMigration(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&model.Job{}, &model.ProcessedJob{})
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
