package sessionsService

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"varanno/api/models"
	"varanno/api/models/constants"
	sessionState "varanno/api/models/constants/session-state"
	"varanno/api/models/sessions"
	"varanno/api/services/intake"
	"varanno/api/services/pipeline"
	"varanno/api/services/tools"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

type (
	// PipelineRunner is satisfied by *pipeline.Pipeline.
	PipelineRunner interface {
		Run(ctx context.Context, upload *intake.Upload, workDir string, progress pipeline.ProgressFunc) ([]*models.VariantRecord, error)
	}

	SessionService struct {
		SessionMap             map[uuid.UUID]*sessions.Session
		SessionMapMux          sync.RWMutex
		ConcurrentSessionQueue *semaphore.Weighted
		Pipeline               PipelineRunner
		Config                 *models.Config
	}
)

var ErrSessionNotFound = errors.New("session not found")

func NewSessionService(cfg *models.Config, runner PipelineRunner) *SessionService {
	capacity := cfg.Api.MaxConcurrentSessions
	if capacity < 1 {
		capacity = 1
	}

	return &SessionService{
		SessionMap:             map[uuid.UUID]*sessions.Session{},
		SessionMapMux:          sync.RWMutex{},
		ConcurrentSessionQueue: semaphore.NewWeighted(capacity),
		Pipeline:               runner,
		Config:                 cfg,
	}
}

// Create registers a new queued session with its own work directory.
func (ss *SessionService) Create(filename string) (*sessions.Session, error) {
	id := uuid.New()
	workDir := filepath.Join(ss.Config.Api.WorkDirectory, id.String())
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating work directory for session %s", id)
	}

	now := time.Now()
	session := &sessions.Session{
		Id:            id,
		Filename:      filename,
		State:         sessionState.Queued,
		Message:       "waiting for upload",
		CreatedAt:     now,
		UpdatedAt:     now,
		WorkDirectory: workDir,
		Records:       []*models.VariantRecord{},
	}

	ss.SessionMapMux.Lock()
	ss.SessionMap[id] = session
	ss.SessionMapMux.Unlock()

	copied := *session
	return &copied, nil
}

// Get returns a snapshot of the session.
func (ss *SessionService) Get(id uuid.UUID) (sessions.Session, bool) {
	ss.SessionMapMux.RLock()
	defer ss.SessionMapMux.RUnlock()

	session, ok := ss.SessionMap[id]
	if !ok {
		return sessions.Session{}, false
	}
	return *session, true
}

// List returns snapshots of every session, newest first.
func (ss *SessionService) List() []sessions.Session {
	ss.SessionMapMux.RLock()
	all := make([]sessions.Session, 0, len(ss.SessionMap))
	for _, session := range ss.SessionMap {
		all = append(all, *session)
	}
	ss.SessionMapMux.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}

// Delete forgets the session and removes its temporary files.
func (ss *SessionService) Delete(id uuid.UUID) error {
	ss.SessionMapMux.Lock()
	session, ok := ss.SessionMap[id]
	if ok {
		delete(ss.SessionMap, id)
	}
	ss.SessionMapMux.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	return removeWorkDirectory(session.WorkDirectory)
}

// Process saves the upload into the session and runs it through the
// pipeline, blocking until done. At most MaxConcurrentSessions run at once.
func (ss *SessionService) Process(ctx context.Context, id uuid.UUID, upload *intake.Upload) error {
	if _, ok := ss.Get(id); !ok {
		return ErrSessionNotFound
	}

	ss.update(id, func(s *sessions.Session) {
		s.Filename = upload.Filename
		s.Format = upload.Format
		s.Message = "waiting for a free pipeline slot"
	})

	if err := ss.ConcurrentSessionQueue.Acquire(ctx, 1); err != nil {
		ss.Fail(id, errors.Wrap(err, "waiting for a pipeline slot"))
		return err
	}
	defer ss.ConcurrentSessionQueue.Release(1)

	fmt.Printf("[%s] - Session %s processing %s\n", time.Now(), id, upload.Filename)

	session, _ := ss.Get(id)
	records, err := ss.Pipeline.Run(ctx, upload, session.WorkDirectory, func(state constants.SessionState) {
		ss.update(id, func(s *sessions.Session) {
			s.State = state
			s.Message = describe(state)
		})
	})
	if err != nil {
		ss.Fail(id, err)
		return err
	}

	ss.Complete(id, records)
	return nil
}

// Complete stores the annotated records; they are never changed again.
func (ss *SessionService) Complete(id uuid.UUID, records []*models.VariantRecord) {
	if records == nil {
		records = []*models.VariantRecord{}
	}
	ss.update(id, func(s *sessions.Session) {
		s.State = sessionState.Done
		s.Message = fmt.Sprintf("%d variants annotated", len(records))
		s.Records = records
	})
}

// Fail moves the session into the error state, keeping the stderr of a
// failed tool when there is one.
func (ss *SessionService) Fail(id uuid.UUID, cause error) {
	fmt.Printf("[%s] - Session %s failed: %v\n", time.Now(), id, cause)

	ss.update(id, func(s *sessions.Session) {
		s.State = sessionState.Error
		s.Message = cause.Error()

		var toolErr *tools.ToolError
		if errors.As(cause, &toolErr) {
			s.ToolOutput = toolErr.Stderr
		}
	})
}

// Expired lists sessions in a terminal state that were last updated
// before cutoff.
func (ss *SessionService) Expired(cutoff time.Time) []uuid.UUID {
	ss.SessionMapMux.RLock()
	defer ss.SessionMapMux.RUnlock()

	var ids []uuid.UUID
	for id, session := range ss.SessionMap {
		if sessionState.IsTerminal(session.State) && session.UpdatedAt.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (ss *SessionService) update(id uuid.UUID, mutate func(s *sessions.Session)) {
	ss.SessionMapMux.Lock()
	defer ss.SessionMapMux.Unlock()

	if session, ok := ss.SessionMap[id]; ok {
		mutate(session)
		session.UpdatedAt = time.Now()
	}
}

func removeWorkDirectory(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, "removing %s", dir)
	}
	return nil
}

func describe(state constants.SessionState) string {
	switch state {
	case sessionState.Intake:
		return "reading input"
	case sessionState.Aligning:
		return "aligning reads against the reference"
	case sessionState.Calling:
		return "calling variants"
	case sessionState.Annotating:
		return "annotating variants"
	}
	return string(state)
}
