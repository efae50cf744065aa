package events

import "sync"

// Buffer collects events until they are flushed. The runtime uses it to hold
// events back until an operation commits.
type Buffer struct {
	mu     sync.Mutex
	events []Event
}

// Emit implements the Emitter interface.
func (b *Buffer) Emit(evt Event) {
	if evt == nil {
		return
	}
	b.mu.Lock()
	b.events = append(b.events, evt)
	b.mu.Unlock()
}

// Events returns a copy of the buffered events in emission order.
func (b *Buffer) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// Types lists the buffered event types in order.
func (b *Buffer) Types() []string {
	evts := b.Events()
	out := make([]string, len(evts))
	for i, evt := range evts {
		out[i] = evt.EventType()
	}
	return out
}

// Reset drops every buffered event.
func (b *Buffer) Reset() {
	b.mu.Lock()
	b.events = nil
	b.mu.Unlock()
}

// FlushTo forwards the buffered events to dst and resets the buffer.
func (b *Buffer) FlushTo(dst Emitter) []Event {
	b.mu.Lock()
	evts := b.events
	b.events = nil
	b.mu.Unlock()
	if dst != nil {
		for _, evt := range evts {
			dst.Emit(evt)
		}
	}
	return evts
}
