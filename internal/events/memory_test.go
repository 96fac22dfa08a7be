package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBusDeliversInOrder(t *testing.T) {
	bus := NewMemoryBus(8)
	ctx := context.Background()

	first := NewEvent("task_assigned", 1, "New task", "You were assigned a task")
	second := NewEvent("invoice_paid", 1, "Invoice paid", "Invoice INV-1-2026-0001 was paid")

	require.NoError(t, bus.Publish(ctx, first))
	require.NoError(t, bus.Publish(ctx, second))
	require.NoError(t, bus.Close())

	var received []Event

	err := bus.Consume(ctx, func(event Event) error {
		received = append(received, event)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, received, 2)
	assert.Equal(t, first.ID, received[0].ID)
	assert.Equal(t, "task_assigned", received[0].Type)
	assert.Equal(t, second.ID, received[1].ID)
}

func TestMemoryBusConsumeStopsOnCancel(t *testing.T) {
	bus := NewMemoryBus(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bus.Consume(ctx, func(event Event) error {
		t.Fatal("handler should not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewEvent(t *testing.T) {
	before := time.Now()
	event := NewEvent("project_updated", 7, "Project updated", "Status changed to active")

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "project_updated", event.Type)
	assert.Equal(t, uint(7), event.OrgID)
	assert.False(t, event.OccurredAt.Before(before))
}
