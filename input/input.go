// Package input implements the single-line editor behind interactive prompts.
//
// Every user edit bumps the editor's ticket. Asynchronous results computed
// against an older buffer, such as completions, carry the ticket they were
// requested with and are discarded on mismatch; see [Input.Complete].
package input

import (
	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/internal/util"
)

// Input is a single-line text buffer with a cursor counted in runes.
//
// An Input is owned by one goroutine, the dispatch loop; it is not safe for
// concurrent use.
type Input struct {
	opt    navcore.InputOpt
	snap   snap
	ticket uint64
	tx     chan<- navcore.InputEvent
	closed bool
}

// snap is the editable state of the buffer.
type snap struct {
	value  []rune
	cursor int // rune offset into value, 0..len(value)
}

// New opens an editor pre-filled with opt.Value, cursor at its end, reporting to tx.
// tx is owned by the editor and closed when the session ends.
func New(opt navcore.InputOpt, tx chan<- navcore.InputEvent) *Input {
	value := []rune(opt.Value)
	return &Input{
		opt:  opt,
		snap: snap{value: value, cursor: len(value)},
		tx:   tx,
	}
}

// Value returns the current buffer
func (in *Input) Value() string {
	return string(in.snap.value)
}

// Cursor returns the cursor position in runes.
func (in *Input) Cursor() int {
	return in.snap.cursor
}

// Ticket returns the current edit generation.
func (in *Input) Ticket() uint64 {
	return in.ticket
}

// Title returns the prompt title.
func (in *Input) Title() string {
	return in.opt.Title
}

// Closed reports whether the session has ended.
func (in *Input) Closed() bool {
	return in.closed
}

// Partition splits the buffer at the cursor.
func (in *Input) Partition() (before, after string) {
	return string(in.snap.value[:in.snap.cursor]), string(in.snap.value[in.snap.cursor:])
}

// Type inserts s at the cursor.
func (in *Input) Type(s string) bool {
	if in.closed || s == "" {
		return false
	}
	ins := []rune(s)
	v := in.snap.value
	value := make([]rune, 0, len(v)+len(ins))
	value = append(value, v[:in.snap.cursor]...)
	value = append(value, ins...)
	value = append(value, v[in.snap.cursor:]...)
	in.snap.value = value
	in.snap.cursor += len(ins)
	in.edited()
	return true
}

// Backspace removes the rune before the cursor.
func (in *Input) Backspace() bool {
	if in.closed || in.snap.cursor == 0 {
		return false
	}
	c := in.snap.cursor
	in.snap.value = append(in.snap.value[:c-1:c-1], in.snap.value[c:]...)
	in.snap.cursor--
	in.edited()
	return true
}

// Delete removes the rune under the cursor.
func (in *Input) Delete() bool {
	if in.closed || in.snap.cursor >= len(in.snap.value) {
		return false
	}
	c := in.snap.cursor
	in.snap.value = append(in.snap.value[:c:c], in.snap.value[c+1:]...)
	in.edited()
	return true
}

// Move shifts the cursor by delta runes, clamped to the buffer. Moving is not an
// edit and leaves the ticket alone.
func (in *Input) Move(delta int) bool {
	if in.closed {
		return false
	}
	cursor := util.Clamp(in.snap.cursor+delta, 0, len(in.snap.value))
	if cursor == in.snap.cursor {
		return false
	}
	in.snap.cursor = cursor
	return true
}

// Trigger asks for the text before the cursor to be completed. It does not
// edit, so the answer carries the current ticket.
func (in *Input) Trigger() bool {
	if in.closed {
		return false
	}
	before, _ := in.Partition()
	in.send(navcore.InputEvent{Kind: navcore.InputComplete, Value: before, Ticket: in.ticket, Apply: true})
	return true
}

// Submit reports the buffer as the completed line and ends the session.
func (in *Input) Submit() bool {
	if in.closed {
		return false
	}
	in.send(navcore.InputEvent{Kind: navcore.InputSubmit, Value: in.Value()})
	in.finish()
	return true
}

// Close dismisses the session.
func (in *Input) Close() bool {
	if in.closed {
		return false
	}
	in.send(navcore.InputEvent{Kind: navcore.InputCancel})
	in.finish()
	return true
}

// edited marks a user edit: a new ticket, then observers are notified.
func (in *Input) edited() {
	in.ticket++
	in.flush()
}

// flush notifies observers of the current buffer.
func (in *Input) flush() {
	if in.opt.Realtime {
		in.send(navcore.InputEvent{Kind: navcore.InputType, Value: in.Value()})
	}
	if in.opt.Completion {
		before, _ := in.Partition()
		in.send(navcore.InputEvent{Kind: navcore.InputComplete, Value: before, Ticket: in.ticket})
	}
}

func (in *Input) send(ev navcore.InputEvent) {
	if in.tx == nil {
		return
	}
	in.tx <- ev
}

func (in *Input) finish() {
	in.closed = true
	if in.tx != nil {
		close(in.tx)
		in.tx = nil
	}
}
