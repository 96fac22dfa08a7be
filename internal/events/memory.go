package events

import "context"

// MemoryBus is an in-process Bus used in tests and broker-less development.
type MemoryBus struct {
	events chan Event
}

func NewMemoryBus(buffer int) *MemoryBus {
	return &MemoryBus{
		events: make(chan Event, buffer),
	}
}

func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.events <- event:
		return nil
	}
}

func (b *MemoryBus) Consume(ctx context.Context, handler func(event Event) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-b.events:
			if !ok {
				return nil
			}
			if err := handler(event); err != nil {
				return err
			}
		}
	}
}

func (b *MemoryBus) Close() error {
	close(b.events)
	return nil
}
