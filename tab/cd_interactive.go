package tab

import (
	"context"
	"strings"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/debounce"
	"github.com/brettbedarf/navcore/internal/util"
)

// CdInteractive prompts for a destination pre-filled with target and returns
// false straight away. The prompt runs on its own goroutine until its input
// stream closes: submitted lines become [navcore.Cd] events and completion
// triggers become completion queries, both sent through the bus.
func (t *Tab) CdInteractive(target navcore.Path) bool {
	opt := navcore.TopInput(t.cdTitle).WithValue(target.String()).WithCompletion()
	bus := t.bus
	window := t.debounceWindow

	go func() {
		logger := util.GetLogger("Tab.CdInteractive")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		rx := debounce.Chan(ctx, bus.Input(opt), window)
		for ev := range rx {
			switch ev.Kind {
			case navcore.InputSubmit:
				p := navcore.NewPath(strings.TrimSpace(ev.Value))
				logger.Debug().Str("target", p.String()).Msg("Submitted")
				bus.Emit(navcore.Cd{Target: p})
			case navcore.InputComplete:
				logger.Trace().Str("before", ev.Value).Uint64("ticket", ev.Ticket).Bool("apply", ev.Apply).Msg("Completion requested")
				bus.Call(
					navcore.NewExec("trigger").
						With("before", ev.Value).
						With("ticket", ev.Ticket).
						With("apply", ev.Apply),
					navcore.LayerCompletion,
				)
			default:
				logger.Debug().Stringer("kind", ev.Kind).Msg("Prompt closed")
				return
			}
		}
	}()

	return false
}
