package triage

import (
	"context"
	"sync"

	api "github.com/findajob/job-triage/api/v1alpha1"
	"github.com/findajob/job-triage/internal/client"
	"go.uber.org/zap"
)

const (
	StatusApplied  = "applied"
	StatusRejected = "user_rejected"

	defaultEventBuffer = 16
)

type State int

const (
	StateLoading State = iota
	StateReady
	StateEmpty
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Client is the part of the api the session needs.
type Client interface {
	ListProcessedJobs(ctx context.Context, query client.ListQuery) (*api.JobList, error)
	SetStatus(ctx context.Context, processedJobID int64, status string) (*api.StatusUpdateResponse, error)
}

// Snapshot is a copy of the session state. Position is the 0-based cursor.
type Snapshot struct {
	State    State
	Item     *api.JobView
	Position int
	Total    int64
	Message  string
}

type Options struct {
	// StrictWrites keeps the cursor on the item when its status write fails.
	StrictWrites bool
	// EventBuffer is the capacity of the events channel. Events are dropped when it is full.
	EventBuffer int
}

// Session walks the processed jobs one at a time. All methods are safe for concurrent use.
// Every navigation takes a new generation and a fetch result is applied only while its
// generation is current, so the last issued navigation wins.
type Session struct {
	client  Client
	store   ViewStore
	options Options
	events  chan Event
	logger  *zap.SugaredLogger

	mu         sync.Mutex
	view       ViewState
	cursor     int
	total      int64
	state      State
	item       *api.JobView
	message    string
	generation uint64
}

// NewSession creates a session over view. store may be nil.
func NewSession(c Client, store ViewStore, view ViewState, opts Options) *Session {
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = defaultEventBuffer
	}
	return &Session{
		client:  c,
		store:   store,
		options: opts,
		events:  make(chan Event, opts.EventBuffer),
		logger:  zap.S().Named("triage"),
		view:    view,
		cursor:  cursorOf(view.Page),
		state:   StateLoading,
	}
}

func (s *Session) Events() <-chan Event {
	return s.events
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) View() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.view
	v.Page = s.cursor + 1
	return v
}

// Start restores the saved view state, if any, and fetches the item under the cursor.
func (s *Session) Start(ctx context.Context) {
	if s.store != nil {
		saved, err := s.store.Load(ctx)
		switch {
		case err != nil:
			s.logger.Warnw("failed to load view state", "error", err)
		case saved != nil:
			s.mu.Lock()
			s.view = *saved
			s.cursor = cursorOf(saved.Page)
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	cursor := s.cursor
	s.mu.Unlock()
	s.navigate(ctx, cursor)
}

// Reload fetches the current position again.
func (s *Session) Reload(ctx context.Context) {
	s.mu.Lock()
	cursor := s.cursor
	s.mu.Unlock()
	s.navigate(ctx, cursor)
}

// Advance moves to the next item when the last known total has one.
func (s *Session) Advance(ctx context.Context) {
	s.mu.Lock()
	next := s.cursor + 1
	ok := int64(next) < s.total
	s.mu.Unlock()
	if ok {
		s.navigate(ctx, next)
	}
}

// Regress moves to the previous item when there is one.
func (s *Session) Regress(ctx context.Context) {
	s.mu.Lock()
	prev := s.cursor - 1
	s.mu.Unlock()
	if prev >= 0 {
		s.navigate(ctx, prev)
	}
}

func (s *Session) MarkApplied(ctx context.Context) {
	s.mark(ctx, StatusApplied)
}

func (s *Session) MarkRejected(ctx context.Context) {
	s.mark(ctx, StatusRejected)
}

// mark writes status to the current item and advances. A failed write is logged and
// published, and only stops the session with StrictWrites.
func (s *Session) mark(ctx context.Context, status string) {
	s.mu.Lock()
	item := s.item
	ready := s.state == StateReady
	s.mu.Unlock()
	if !ready || item == nil {
		return
	}

	if _, err := s.client.SetStatus(ctx, item.Id, status); err != nil {
		s.logger.Warnw("status write failed", "processed_job_id", item.Id, "status", status, "error", err)
		s.publish(Event{Kind: EventStatusWriteFailed, ProcessedJobID: item.Id, Status: status, Err: err, Snapshot: s.Snapshot()})
		if s.options.StrictWrites {
			return
		}
	}

	s.Advance(ctx)
}

func (s *Session) navigate(ctx context.Context, cursor int) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.cursor = cursor
	s.state = StateLoading
	query := s.view.query(cursor)
	s.mu.Unlock()

	list, err := s.client.ListProcessedJobs(ctx, query)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debugw("dropping stale page", "generation", gen, "cursor", cursor)
		return
	}

	if err == nil && len(list.Items) == 0 && list.Total > 0 && int64(cursor) >= list.Total {
		// items vanished under the cursor, clamp to the last one and fetch once more
		cursor = int(list.Total - 1)
		s.cursor = cursor
		query = s.view.query(cursor)
		s.mu.Unlock()

		list, err = s.client.ListProcessedJobs(ctx, query)

		s.mu.Lock()
		if gen != s.generation {
			s.mu.Unlock()
			return
		}
	}

	s.apply(list, err)
	snap := s.snapshot()
	view := s.view
	view.Page = s.cursor + 1
	s.mu.Unlock()

	if err == nil {
		s.save(ctx, view)
	}
	s.publish(Event{Kind: EventStateChanged, Snapshot: snap})
}

// apply must be called with mu held.
func (s *Session) apply(list *api.JobList, err error) {
	if err != nil {
		s.state = StateError
		s.item = nil
		s.message = err.Error()
		return
	}

	s.total = list.Total
	s.message = ""
	if len(list.Items) == 0 {
		s.state = StateEmpty
		s.item = nil
		if s.total == 0 {
			s.cursor = 0
		}
		return
	}

	item := list.Items[0]
	s.state = StateReady
	s.item = &item
}

func (s *Session) save(ctx context.Context, view ViewState) {
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, view); err != nil {
		s.logger.Warnw("failed to save view state", "error", err)
	}
}

func (s *Session) publish(e Event) {
	select {
	case s.events <- e:
	default:
		s.logger.Debugw("event dropped", "kind", e.Kind)
	}
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		State:    s.state,
		Position: s.cursor,
		Total:    s.total,
		Message:  s.message,
	}
	if s.item != nil {
		item := *s.item
		snap.Item = &item
	}
	return snap
}

func cursorOf(page int) int {
	if page < 1 {
		return 0
	}
	return page - 1
}
