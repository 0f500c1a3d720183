package navcore

// InputOpt configures a line-input session.
type InputOpt struct {
	Title      string
	Value      string // initial buffer; cursor starts at its end
	Realtime   bool   // report every buffer change as InputType
	Completion bool   // report every buffer change as InputComplete
}

// TopInput returns an InputOpt with the given title.
func TopInput(title string) InputOpt {
	return InputOpt{Title: title}
}

// WithValue returns a copy of o pre-filled with value.
func (o InputOpt) WithValue(value string) InputOpt {
	o.Value = value
	return o
}

// WithCompletion returns a copy of o with completion requests enabled.
func (o InputOpt) WithCompletion() InputOpt {
	o.Completion = true
	return o
}

// WithRealtime returns a copy of o reporting each change as it happens.
func (o InputOpt) WithRealtime() InputOpt {
	o.Realtime = true
	return o
}

// InputEventKind distinguishes the payloads of an input session stream
type InputEventKind int

const (
	// InputSubmit carries the completed line in Value; the stream closes after it.
	InputSubmit InputEventKind = iota
	// InputComplete is a completion query: Value holds the text before the
	// cursor and Ticket the editor ticket at query time. Only queries with
	// Apply set may change the buffer; the rest refresh candidates.
	InputComplete
	// InputType carries the current buffer in Value (realtime sessions only).
	InputType
	// InputCancel reports the session was dismissed; the stream closes after it.
	InputCancel
)

func (k InputEventKind) String() string {
	switch k {
	case InputSubmit:
		return "submit"
	case InputComplete:
		return "complete"
	case InputType:
		return "type"
	case InputCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// InputEvent is one item of an input session stream
type InputEvent struct {
	Kind   InputEventKind
	Value  string
	Ticket uint64
	Apply  bool // explicit completion request, as opposed to a flush after an edit
}
