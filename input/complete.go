package input

import (
	"strings"
	"unicode/utf8"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/internal/util"
)

const separator = "/"

// CompleteOpt is a proposed replacement word and the ticket it was computed for.
type CompleteOpt struct {
	Word   string
	Ticket uint64
}

// CompleteOptFromExec reads the word from the first positional argument and the
// ticket from the named "ticket" argument, defaulting to 0.
func CompleteOptFromExec(e navcore.Exec) CompleteOpt {
	return CompleteOpt{
		Word:   e.Arg(0),
		Ticket: e.Uint("ticket", 0),
	}
}

// Complete replaces the path element being typed before the cursor with
// opt.Word and reports whether the buffer changed.
//
// A completion computed for an older ticket is rejected: the user edited the
// buffer after it was requested. Completing never bumps the ticket, so a second
// result for the same request still applies.
func (in *Input) Complete(opt CompleteOpt) bool {
	logger := util.GetLogger("Input.Complete")

	if in.closed {
		return false
	}
	if in.ticket != opt.Ticket {
		logger.Trace().Uint64("ticket", in.ticket).Uint64("stale", opt.Ticket).Msg("Dropped stale completion")
		return false
	}

	before, after := in.Partition()
	var value string
	if i := strings.LastIndex(before, separator); i >= 0 {
		value = before[:i+len(separator)] + opt.Word + after
	} else {
		value = opt.Word + after
	}

	old := in.Value()
	if value == old {
		return false
	}

	delta := utf8.RuneCountInString(value) - utf8.RuneCountInString(old)
	in.snap.value = []rune(value)
	in.snap.cursor = util.Clamp(in.snap.cursor+delta, 0, len(in.snap.value))
	in.flush()

	logger.Debug().Str("value", value).Int("delta", delta).Msg("Applied completion")
	return true
}
