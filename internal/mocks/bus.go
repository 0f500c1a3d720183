package mocks

import (
	"sync"

	"github.com/brettbedarf/navcore"
)

// Call is a dispatched command recorded by [RecordingBus].
type Call struct {
	Exec  navcore.Exec
	Layer navcore.Layer
}

// RecordingBus implements navcore.Bus by recording everything it is handed.
// Input sessions are served from channels queued with [RecordingBus.QueueInput].
// Safe for concurrent use.
type RecordingBus struct {
	mu      sync.Mutex
	events  []navcore.Event
	calls   []Call
	opts    []navcore.InputOpt
	streams []chan navcore.InputEvent
}

func NewRecordingBus() *RecordingBus {
	return &RecordingBus{}
}

func (b *RecordingBus) Emit(ev navcore.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
}

func (b *RecordingBus) Call(exec navcore.Exec, layer navcore.Layer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, Call{Exec: exec, Layer: layer})
}

// Input returns the next queued stream, or a closed one when none is queued.
func (b *RecordingBus) Input(opt navcore.InputOpt) <-chan navcore.InputEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.opts = append(b.opts, opt)
	if len(b.streams) == 0 {
		ch := make(chan navcore.InputEvent)
		close(ch)
		return ch
	}
	ch := b.streams[0]
	b.streams = b.streams[1:]
	return ch
}

// QueueInput queues the stream served to the next Input call.
func (b *RecordingBus) QueueInput(ch chan navcore.InputEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.streams = append(b.streams, ch)
}

// Events returns a copy of the emitted events
func (b *RecordingBus) Events() []navcore.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]navcore.Event(nil), b.events...)
}

// Calls returns a copy of the dispatched commands
func (b *RecordingBus) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// InputOpts returns the options of every Input call so far.
func (b *RecordingBus) InputOpts() []navcore.InputOpt {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]navcore.InputOpt(nil), b.opts...)
}

// Reset forgets recorded events and calls.
func (b *RecordingBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
	b.calls = nil
}

var _ navcore.Bus = (*RecordingBus)(nil)
