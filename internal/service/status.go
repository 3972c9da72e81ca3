package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/findajob/job-triage/internal/events"
	"github.com/findajob/job-triage/internal/store"
	"github.com/findajob/job-triage/internal/store/model"
	"github.com/findajob/job-triage/pkg/log"
	"github.com/findajob/job-triage/pkg/metrics"
	"github.com/findajob/job-triage/pkg/requestid"
	"go.uber.org/zap"
)

// EventWriter accepts events for asynchronous delivery.
type EventWriter interface {
	Write(ctx context.Context, kind string, body io.Reader) error
}

type StatusChange struct {
	JobID          int64
	ProcessedJobID int64
	Status         model.JobStatus
}

// StatusService moves jobs between statuses. Any status may follow any other: the operator
// can always override.
type StatusService struct {
	store       store.Store
	eventWriter EventWriter
	logger      *log.StructuredLogger
}

func NewStatusService(store store.Store, eventWriter EventWriter) *StatusService {
	return &StatusService{
		store:       store,
		eventWriter: eventWriter,
		logger:      log.NewDebugLogger("status_service"),
	}
}

// SetStatus writes status to the job behind the processed job. The processed job may be in
// any processing state.
func (s *StatusService) SetStatus(ctx context.Context, processedJobID int64, status string) (*StatusChange, error) {
	tracer := s.logger.WithContext(ctx).
		Operation("set_status").
		WithInt64("processed_job_id", processedJobID).
		WithString("status", status).
		Build()

	newStatus, err := model.ParseJobStatus(status)
	if err != nil {
		return nil, NewErrInvalidStatus(status)
	}

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		tracer.Error(err).Log()
		return nil, NewErrStoreUnavailable(err)
	}
	defer func() {
		_, _ = store.Rollback(ctx)
	}()

	jobID, err := s.store.ProcessedJob().GetJobID(ctx, processedJobID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrProcessedJobNotFound(processedJobID)
		}
		tracer.Error(err).WithString("step", "resolve_job").Log()
		return nil, NewErrStoreUnavailable(err)
	}
	tracer.Step("job_resolved").WithInt64("job_id", jobID).Log()

	if err := s.store.Job().UpdateStatus(ctx, jobID, newStatus); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, NewErrJobNotFound(jobID)
		}
		tracer.Error(err).WithString("step", "update_status").Log()
		return nil, NewErrStoreUnavailable(err)
	}

	if _, err := store.Commit(ctx); err != nil {
		tracer.Error(err).WithString("step", "commit").Log()
		return nil, NewErrStoreUnavailable(err)
	}

	change := &StatusChange{JobID: jobID, ProcessedJobID: processedJobID, Status: newStatus}
	metrics.IncreaseStatusChangesMetric(string(newStatus))
	s.publish(ctx, change)

	tracer.Success().WithInt64("job_id", jobID).Log()
	return change, nil
}

// publish never fails the status change, the write is already committed.
func (s *StatusService) publish(ctx context.Context, change *StatusChange) {
	if s.eventWriter == nil {
		return
	}

	data, err := json.Marshal(events.JobStatusChangedEvent{
		JobID:          change.JobID,
		ProcessedJobID: change.ProcessedJobID,
		Status:         string(change.Status),
		RequestID:      requestid.FromContext(ctx),
		ChangedAt:      time.Now().UTC(),
	})
	if err != nil {
		zap.S().Named("status_service").Errorw("failed to marshal event", "error", err)
		return
	}

	if err := s.eventWriter.Write(ctx, events.JobStatusChangedKind, bytes.NewBuffer(data)); err != nil {
		zap.S().Named("status_service").Errorw("failed to write event", "error", err, "event_kind", events.JobStatusChangedKind)
	}
}
