package navcore

import (
	"fmt"
	"strconv"
)

// Layer is the component a command is routed to by the dispatch loop
type Layer int

const (
	LayerManager Layer = iota
	LayerInput
	LayerCompletion
)

func (l Layer) String() string {
	switch l {
	case LayerManager:
		return "manager"
	case LayerInput:
		return "input"
	case LayerCompletion:
		return "completion"
	default:
		return "unknown"
	}
}

// Exec is a named command with positional and key-value arguments.
// Argument values travel as strings; handlers parse what they need.
type Exec struct {
	Name  string
	Args  []string
	Named map[string]string
}

// NewExec creates an Exec for name with positional args.
func NewExec(name string, args ...string) Exec {
	return Exec{Name: name, Args: args, Named: map[string]string{}}
}

// With returns a copy of e with the named argument key set to the string form of value.
func (e Exec) With(key string, value any) Exec {
	named := make(map[string]string, len(e.Named)+1)
	for k, v := range e.Named {
		named[k] = v
	}
	named[key] = fmt.Sprint(value)
	e.Named = named
	return e
}

// Arg returns the positional argument at i or "" if absent.
func (e Exec) Arg(i int) string {
	if i < 0 || i >= len(e.Args) {
		return ""
	}
	return e.Args[i]
}

// Uint returns the named argument key parsed as an unsigned integer, or def when
// it is absent or unparsable.
func (e Exec) Uint(key string, def uint64) uint64 {
	s, ok := e.Named[key]
	if !ok {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}

// Int returns the named argument key parsed as an integer, or def.
func (e Exec) Int(key string, def int) int {
	s, ok := e.Named[key]
	if !ok {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// Bool returns the named argument key parsed as a boolean, or def.
func (e Exec) Bool(key string, def bool) bool {
	s, ok := e.Named[key]
	if !ok {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}
