// Package navcore contains the domain types and ports shared by the
// navigation and line-input components of the file browser core.
package navcore

import "context"

// Stater resolves a Path to an Entry. Implementations may block on I/O;
// a returned error means the location is gone or inaccessible.
type Stater interface {
	Stat(ctx context.Context, p Path) (*Entry, error)
}

// Lister reads the entries of a directory
type Lister interface {
	ReadDir(ctx context.Context, dir Path) ([]Entry, error)
}

// Emitter publishes fire-and-forget events.
type Emitter interface {
	Emit(ev Event)
}

// Prompter opens a line-input session and returns its result stream.
// The stream is closed when the session ends.
type Prompter interface {
	Input(opt InputOpt) <-chan InputEvent
}

// Dispatcher routes a named command to a layer.
type Dispatcher interface {
	Call(exec Exec, layer Layer)
}

// Bus is the message-passing port the core talks to the rest of the browser through.
type Bus interface {
	Emitter
	Prompter
	Dispatcher
}
