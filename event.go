package navcore

import "github.com/google/uuid"

// Event is a message carried by the bus to the dispatch loop.
type Event interface {
	EventName() string
}

// Refresh asks the loop to resync watchers and listings with the tab.
type Refresh struct{}

// Hover asks the active view to highlight URL.
type Hover struct {
	URL Path
}

// Files delivers a listing update.
type Files struct {
	Op FilesOp
}

// Cd asks the loop to navigate the tab to Target.
type Cd struct {
	Target Path
}

// Call routes Exec to the component registered for Layer.
type Call struct {
	Exec  Exec
	Layer Layer
}

// InputRequest asks the loop to open a line editor for Opt that reports to Tx.
// The loop owns Tx from then on and closes it when the session ends.
type InputRequest struct {
	ID  uuid.UUID
	Opt InputOpt
	Tx  chan<- InputEvent
}

func (Refresh) EventName() string      { return "refresh" }
func (Hover) EventName() string        { return "hover" }
func (Files) EventName() string        { return "files" }
func (Cd) EventName() string           { return "cd" }
func (Call) EventName() string         { return "call" }
func (InputRequest) EventName() string { return "input" }
