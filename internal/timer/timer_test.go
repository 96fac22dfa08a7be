package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	nextID    uint
	startErr  error
	stopErr   error
	startedAt time.Time
	stopped   []stoppedLog
}

type stoppedLog struct {
	timeLogID   uint
	durationMin int
	description string
}

func (r *fakeRecorder) StartLog(userID, projectID uint, taskID *uint, start time.Time) (uint, error) {
	if r.startErr != nil {
		return 0, r.startErr
	}

	r.nextID++
	r.startedAt = start
	return r.nextID, nil
}

func (r *fakeRecorder) StopLog(timeLogID uint, end time.Time, durationMin int, description string) error {
	if r.stopErr != nil {
		return r.stopErr
	}

	r.stopped = append(r.stopped, stoppedLog{
		timeLogID:   timeLogID,
		durationMin: durationMin,
		description: description,
	})
	return nil
}

func newTestTracker(store Store, recorder Recorder, now *time.Time) *Tracker {
	tracker := NewTracker(store, recorder)
	tracker.now = func() time.Time { return *now }
	return tracker
}

func TestTrackerStartStop(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		elapsed     time.Duration
		wantMinutes int
	}{
		{name: "immediate stop records one minute", elapsed: 2 * time.Second, wantMinutes: 1},
		{name: "exact minute", elapsed: time.Minute, wantMinutes: 1},
		{name: "partial minute rounds up", elapsed: 90 * time.Second, wantMinutes: 2},
		{name: "just over an hour", elapsed: 61 * time.Minute, wantMinutes: 61},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
			recorder := &fakeRecorder{}
			tracker := newTestTracker(NewMemoryStore(), recorder, &now)
			defer tracker.Shutdown()

			state, err := tracker.Start(ctx, 1, 42, nil, "Website Redesign", "")
			require.NoError(t, err)
			assert.True(t, state.Active)
			assert.Equal(t, uint(42), state.ProjectID)
			assert.NotEmpty(t, state.SessionID)

			now = now.Add(tt.elapsed)

			minutes, err := tracker.Stop(ctx, 1, "worked on layout")
			require.NoError(t, err)
			assert.Equal(t, tt.wantMinutes, minutes)

			require.Len(t, recorder.stopped, 1)
			assert.Equal(t, state.TimeLogID, recorder.stopped[0].timeLogID)
			assert.Equal(t, tt.wantMinutes, recorder.stopped[0].durationMin)
			assert.Equal(t, "worked on layout", recorder.stopped[0].description)

			assert.False(t, tracker.Snapshot(1).Active)
		})
	}
}

func TestTrackerRejectsDoubleStart(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	recorder := &fakeRecorder{}
	tracker := newTestTracker(NewMemoryStore(), recorder, &now)
	defer tracker.Shutdown()

	first, err := tracker.Start(ctx, 1, 42, nil, "Website Redesign", "")
	require.NoError(t, err)

	_, err = tracker.Start(ctx, 1, 77, nil, "Other Project", "")
	assert.ErrorIs(t, err, ErrTimerRunning)

	// The original session is untouched.
	snapshot := tracker.Snapshot(1)
	assert.Equal(t, first.SessionID, snapshot.SessionID)
	assert.Equal(t, uint(42), snapshot.ProjectID)

	// A different user is unaffected by user 1's running timer.
	_, err = tracker.Start(ctx, 2, 42, nil, "Website Redesign", "")
	assert.NoError(t, err)
}

func TestTrackerStopWithoutStart(t *testing.T) {
	now := time.Now()
	tracker := newTestTracker(NewMemoryStore(), &fakeRecorder{}, &now)
	defer tracker.Shutdown()

	_, err := tracker.Stop(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrNoActiveTimer)
}

func TestTrackerStartRecorderFailure(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	recorder := &fakeRecorder{startErr: errors.New("db down")}
	store := NewMemoryStore()
	tracker := newTestTracker(store, recorder, &now)
	defer tracker.Shutdown()

	_, err := tracker.Start(ctx, 1, 42, nil, "Website Redesign", "")
	require.Error(t, err)

	assert.False(t, tracker.Snapshot(1).Active)

	_, ok, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTrackerStopRecorderFailureKeepsRunning(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	recorder := &fakeRecorder{}
	tracker := newTestTracker(NewMemoryStore(), recorder, &now)
	defer tracker.Shutdown()

	_, err := tracker.Start(ctx, 1, 42, nil, "Website Redesign", "")
	require.NoError(t, err)

	recorder.stopErr = errors.New("db down")
	now = now.Add(5 * time.Minute)

	_, err = tracker.Stop(ctx, 1, "")
	require.Error(t, err)
	assert.True(t, tracker.Snapshot(1).Active)

	// Once the recorder recovers the stop goes through with the full span.
	recorder.stopErr = nil
	minutes, err := tracker.Stop(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 5, minutes)
}

func TestTrackerElapsedDerivedFromWallClock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	tracker := newTestTracker(NewMemoryStore(), &fakeRecorder{}, &now)
	defer tracker.Shutdown()

	_, err := tracker.Start(ctx, 1, 42, nil, "Website Redesign", "")
	require.NoError(t, err)

	now = now.Add(37 * time.Second)
	assert.Equal(t, int64(37), tracker.Snapshot(1).ElapsedSeconds)

	// A jump forward shows up fully; nothing is accumulated tick by tick.
	now = now.Add(2 * time.Hour)
	assert.Equal(t, int64(37+7200), tracker.Snapshot(1).ElapsedSeconds)
}

func TestTrackerReset(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	recorder := &fakeRecorder{}
	store := NewMemoryStore()
	tracker := newTestTracker(store, recorder, &now)
	defer tracker.Shutdown()

	_, err := tracker.Start(ctx, 1, 42, nil, "Website Redesign", "")
	require.NoError(t, err)

	require.NoError(t, tracker.Reset(ctx, 1))

	assert.False(t, tracker.Snapshot(1).Active)
	assert.Empty(t, recorder.stopped)

	_, ok, err := store.Load(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	// Resetting an idle timer is a no-op, not an error.
	assert.NoError(t, tracker.Reset(ctx, 1))
}

func TestTrackerRecover(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	store := NewMemoryStore()

	require.NoError(t, store.Save(ctx, 1, State{
		Active:      true,
		SessionID:   "restored-session",
		StartTime:   now.Add(-10 * time.Minute),
		ProjectID:   42,
		ProjectName: "Website Redesign",
		TimeLogID:   7,
	}))

	// Inactive and zero-start entries must not resume.
	require.NoError(t, store.Save(ctx, 2, State{Active: false, ProjectID: 9}))
	require.NoError(t, store.Save(ctx, 3, State{Active: true, ProjectID: 9}))

	recorder := &fakeRecorder{}
	tracker := newTestTracker(store, recorder, &now)
	defer tracker.Shutdown()

	require.NoError(t, tracker.Recover(ctx))

	snapshot := tracker.Snapshot(1)
	assert.True(t, snapshot.Active)
	assert.Equal(t, "restored-session", snapshot.SessionID)
	assert.Equal(t, int64(600), snapshot.ElapsedSeconds)

	assert.False(t, tracker.Snapshot(2).Active)
	assert.False(t, tracker.Snapshot(3).Active)

	// The recovered session stops normally against its original time log.
	now = now.Add(30 * time.Second)
	minutes, err := tracker.Stop(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 11, minutes)
	require.Len(t, recorder.stopped, 1)
	assert.Equal(t, uint(7), recorder.stopped[0].timeLogID)
}
