// Package bus is the in-process event bus connecting the navigation core to the
// rest of the browser. Events are delivered to a single consumer, the dispatch
// loop, in the order they were emitted; observers see every event as well.
package bus

import (
	"sync"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/config"
	"github.com/brettbedarf/navcore/internal/util"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
)

// Observer is called for every emitted event, on the emitting goroutine.
type Observer func(ev navcore.Event)

// Bus implements [navcore.Bus] with an unbounded FIFO so Emit never blocks,
// even when called from the loop that drains it.
type Bus struct {
	in  chan navcore.Event
	out chan navcore.Event

	observers   *xsync.Map[uuid.UUID, Observer]
	inputBuffer int

	done      chan struct{}
	closeOnce sync.Once
}

// New starts a bus. Call [Bus.Close] to release it.
func New(cfg *config.Config) *Bus {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	b := &Bus{
		in:          make(chan navcore.Event),
		out:         make(chan navcore.Event),
		observers:   xsync.NewMap[uuid.UUID, Observer](),
		inputBuffer: cfg.InputBuffer,
		done:        make(chan struct{}),
	}
	go b.pump()
	return b
}

// pump moves events from in to out through a growable queue.
func (b *Bus) pump() {
	defer close(b.out)

	var queue []navcore.Event
	for {
		var (
			next navcore.Event
			out  chan navcore.Event
		)
		if len(queue) > 0 {
			next, out = queue[0], b.out
		}
		select {
		case ev := <-b.in:
			queue = append(queue, ev)
		case out <- next:
			queue[0] = nil
			queue = queue[1:]
		case <-b.done:
			abandon(queue)
			return
		}
	}
}

// abandon ends input sessions whose requests were never delivered.
func abandon(queue []navcore.Event) {
	for _, ev := range queue {
		if req, ok := ev.(navcore.InputRequest); ok {
			close(req.Tx)
		}
	}
}

// Events returns the ordered stream of emitted events. It is closed by [Bus.Close].
func (b *Bus) Events() <-chan navcore.Event {
	return b.out
}

// Emit queues ev. Emitting on a closed bus drops the event.
func (b *Bus) Emit(ev navcore.Event) {
	b.emit(ev)
}

func (b *Bus) emit(ev navcore.Event) bool {
	logger := util.GetLogger("Bus.Emit")
	logger.Trace().Str("event", ev.EventName()).Msg("Emit called")

	b.observers.Range(func(_ uuid.UUID, fn Observer) bool {
		fn(ev)
		return true
	})

	select {
	case b.in <- ev:
		return true
	case <-b.done:
		logger.Debug().Str("event", ev.EventName()).Msg("Dropped event on closed bus")
		return false
	}
}

// Call routes exec to layer through the event stream.
func (b *Bus) Call(exec navcore.Exec, layer navcore.Layer) {
	b.Emit(navcore.Call{Exec: exec, Layer: layer})
}

// Input asks the loop to open a line editor for opt and returns the session stream.
func (b *Bus) Input(opt navcore.InputOpt) <-chan navcore.InputEvent {
	ch := make(chan navcore.InputEvent, b.inputBuffer)
	id := uuid.New()

	logger := util.GetLogger("Bus.Input")
	logger.Debug().Str("session", id.String()).Str("title", opt.Title).Msg("Input session requested")

	if !b.emit(navcore.InputRequest{ID: id, Opt: opt, Tx: ch}) {
		// Nobody will ever own the session
		close(ch)
	}
	return ch
}

// Subscribe registers fn to observe every event and returns its handle.
func (b *Bus) Subscribe(fn Observer) uuid.UUID {
	id := uuid.New()
	b.observers.Store(id, fn)
	return id
}

// Unsubscribe removes the observer registered under id.
func (b *Bus) Unsubscribe(id uuid.UUID) {
	b.observers.Delete(id)
}

// Close stops the bus; pending events are discarded and Events is closed.
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}

var _ navcore.Bus = (*Bus)(nil)
