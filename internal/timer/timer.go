package timer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrTimerRunning  = errors.New("a timer is already running")
	ErrNoActiveTimer = errors.New("no active timer")
)

// State is one user's timer. ElapsedSeconds is always recomputed from the
// wall-clock delta, never accumulated, so missed ticks cannot drift it.
type State struct {
	Active      bool      `json:"is_active"`
	SessionID   string    `json:"session_id"`
	StartTime   time.Time `json:"start_time"`
	ProjectID   uint      `json:"project_id"`
	TaskID      *uint     `json:"task_id,omitempty"`
	ProjectName string    `json:"project_name"`
	TaskName    string    `json:"task_name,omitempty"`
	TimeLogID   uint      `json:"time_log_id"`

	ElapsedSeconds int64 `json:"elapsed_seconds"`
}

// Recorder reconciles timer sessions with time-log records.
type Recorder interface {
	StartLog(userID, projectID uint, taskID *uint, start time.Time) (uint, error)
	StopLog(timeLogID uint, end time.Time, durationMin int, description string) error
}

type session struct {
	state  State
	cancel context.CancelFunc
}

// Tracker holds every user's singleton timer. At most one session per user
// may be Running; a second Start is rejected rather than overwriting the
// in-flight session.
type Tracker struct {
	mu       sync.RWMutex
	sessions map[uint]*session
	store    Store
	recorder Recorder
	now      func() time.Time
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewTracker(store Store, recorder Recorder) *Tracker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Tracker{
		sessions: make(map[uint]*session),
		store:    store,
		recorder: recorder,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Recover reloads persisted sessions after a restart and resumes their
// ticks. Corrupt entries were already discarded by the store.
func (t *Tracker) Recover(ctx context.Context) error {
	states, err := t.store.LoadAll(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for userID, state := range states {
		if !state.Active || state.StartTime.IsZero() {
			continue
		}

		t.resumeLocked(userID, state)
		logrus.WithField("user_id", userID).Info("Resumed timer session")
	}

	return nil
}

// Start transitions Idle -> Running. The time-log row is created first;
// local state only changes once that succeeds.
func (t *Tracker) Start(ctx context.Context, userID, projectID uint, taskID *uint, projectName, taskName string) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, running := t.sessions[userID]; running {
		return State{}, ErrTimerRunning
	}

	start := t.now()

	timeLogID, err := t.recorder.StartLog(userID, projectID, taskID, start)
	if err != nil {
		return State{}, err
	}

	state := State{
		Active:      true,
		SessionID:   uuid.NewString(),
		StartTime:   start,
		ProjectID:   projectID,
		TaskID:      taskID,
		ProjectName: projectName,
		TaskName:    taskName,
		TimeLogID:   timeLogID,
	}

	if err := t.store.Save(ctx, userID, state); err != nil {
		logrus.WithError(err).Warn("Failed to persist timer state")
	}

	t.resumeLocked(userID, state)

	sessionsStarted.Inc()

	return t.snapshotLocked(userID), nil
}

// Stop transitions Running -> Idle. Any partial minute counts as a full
// minute, so an immediate stop still records one. On recorder failure the
// timer keeps running.
func (t *Tracker) Stop(ctx context.Context, userID uint, description string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, running := t.sessions[userID]

	if !running || current.state.StartTime.IsZero() {
		return 0, ErrNoActiveTimer
	}

	end := t.now()
	elapsed := end.Sub(current.state.StartTime)

	durationMin := int((elapsed + time.Minute - 1) / time.Minute)
	if durationMin < 1 {
		durationMin = 1
	}

	if err := t.recorder.StopLog(current.state.TimeLogID, end, durationMin, description); err != nil {
		return 0, err
	}

	current.cancel()
	delete(t.sessions, userID)

	if err := t.store.Clear(ctx, userID); err != nil {
		logrus.WithError(err).Warn("Failed to clear persisted timer state")
	}

	sessionsStopped.Inc()
	sessionMinutes.Observe(float64(durationMin))

	return durationMin, nil
}

// Reset force-clears to Idle without touching the time log. Escape hatch,
// not a normal transition.
func (t *Tracker) Reset(ctx context.Context, userID uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if current, running := t.sessions[userID]; running {
		current.cancel()
		delete(t.sessions, userID)
	}

	return t.store.Clear(ctx, userID)
}

// Snapshot returns the user's timer with elapsed time derived at call time.
// Idle users get the pristine zero shape.
func (t *Tracker) Snapshot(userID uint) State {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.snapshotLocked(userID)
}

func (t *Tracker) snapshotLocked(userID uint) State {
	current, running := t.sessions[userID]

	if !running {
		return State{}
	}

	state := current.state
	state.ElapsedSeconds = int64(t.now().Sub(state.StartTime) / time.Second)

	return state
}

// Shutdown stops all ticks. Persisted state is left in place so sessions
// resume on the next start.
func (t *Tracker) Shutdown() {
	t.cancel()

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, current := range t.sessions {
		current.cancel()
	}

	t.sessions = make(map[uint]*session)
}

// resumeLocked registers the session and starts its 1-second tick. The
// tick re-persists the derived elapsed value so a restart mid-session
// loses nothing.
func (t *Tracker) resumeLocked(userID uint, state State) {
	tickCtx, tickCancel := context.WithCancel(t.ctx)

	t.sessions[userID] = &session{
		state:  state,
		cancel: tickCancel,
	}

	go t.runTick(tickCtx, userID)
}

func (t *Tracker) runTick(ctx context.Context, userID uint) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.RLock()
			current, running := t.sessions[userID]
			var state State
			if running {
				state = current.state
				state.ElapsedSeconds = int64(t.now().Sub(state.StartTime) / time.Second)
			}
			t.mu.RUnlock()

			if !running {
				return
			}

			if err := t.store.Save(ctx, userID, state); err != nil && ctx.Err() == nil {
				logrus.WithError(err).Warn("Failed to persist timer tick")
			}
		}
	}
}
