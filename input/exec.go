package input

import (
	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/internal/util"
)

// Exec runs a named editor command and reports whether it had an effect.
//
//	type <text>           insert text at the cursor
//	backspace | delete    remove a rune before / under the cursor
//	move --step=<n>       move the cursor by n runes
//	complete <word> --ticket=<t>
//	trigger               request completion for the current text
//	submit | close        end the session
func (in *Input) Exec(e navcore.Exec) bool {
	logger := util.GetLogger("Input.Exec")
	logger.Trace().Str("exec", e.Name).Strs("args", e.Args).Msg("Exec called")

	switch e.Name {
	case "type":
		return in.Type(e.Arg(0))
	case "backspace":
		return in.Backspace()
	case "delete":
		return in.Delete()
	case "move":
		return in.Move(e.Int("step", 0))
	case "complete":
		return in.Complete(CompleteOptFromExec(e))
	case "trigger":
		return in.Trigger()
	case "submit":
		return in.Submit()
	case "close":
		return in.Close()
	default:
		logger.Debug().Str("exec", e.Name).Msg("Unknown input command")
		return false
	}
}
