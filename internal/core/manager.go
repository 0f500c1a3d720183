package core

import (
	"context"
	"path/filepath"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/completion"
	"github.com/brettbedarf/navcore/config"
	"github.com/brettbedarf/navcore/filesystem"
	"github.com/brettbedarf/navcore/input"
	"github.com/brettbedarf/navcore/internal/util"
	"github.com/brettbedarf/navcore/tab"
	"github.com/brettbedarf/navcore/watch"
)

// EventBus is a [navcore.Bus] whose events the Manager drains.
type EventBus interface {
	navcore.Bus
	Events() <-chan navcore.Event
}

// Manager is the command loop. It owns the tab and the active line editor and
// is the only goroutine touching either; everything else reaches them through
// the bus.
type Manager struct {
	cfg      *config.Config
	bus      EventBus
	fs       filesystem.Backend
	tab      *tab.Tab
	input    *input.Input // nil when no prompt is open
	provider *completion.Provider
	watcher  *watch.Watcher // nil when watching is disabled

	// Directories with a listing in flight
	loading map[string]struct{}
}

// NewManager returns a Manager showing cwd. A watcher that cannot be started
// is logged and left out; the manager still works without live updates.
func NewManager(cwd navcore.Path, fs filesystem.Backend, bus EventBus, cfg *config.Config) *Manager {
	logger := util.GetLogger("NewManager")

	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	m := &Manager{
		cfg:      cfg,
		bus:      bus,
		fs:       fs,
		tab:      tab.New(cwd, fs, bus, cfg),
		provider: completion.NewProvider(fs, bus, cfg),
		loading:  make(map[string]struct{}),
	}
	if cfg.Watch {
		w, err := watch.New(fs, bus, m.provider.Invalidate)
		if err != nil {
			logger.Warn().Err(err).Msg("Watching disabled")
		} else {
			m.watcher = w
		}
	}
	return m
}

// Tab returns the managed tab. Only safe to use from the loop goroutine.
func (m *Manager) Tab() *tab.Tab {
	return m.tab
}

// Input returns the open line editor, or nil.
func (m *Manager) Input() *input.Input {
	return m.input
}

// Run loads the initial directory and then handles events until ctx is done or
// the bus is closed.
func (m *Manager) Run(ctx context.Context) error {
	logger := util.GetLogger("Manager.Run")
	logger.Info().Str("cwd", m.tab.Cwd().String()).Msg("Command loop started")

	m.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("Context done")
			return ctx.Err()
		case ev, ok := <-m.bus.Events():
			if !ok {
				logger.Debug().Msg("Bus closed")
				return nil
			}
			m.Handle(ctx, ev)
		}
	}
}

// task runs a function on the loop goroutine.
type task struct {
	fn func(m *Manager)
}

func (task) EventName() string { return "task" }

// Do queues fn to run on the loop goroutine, where it may read and change the
// tab and the prompt freely.
func (m *Manager) Do(fn func(m *Manager)) {
	m.bus.Emit(task{fn: fn})
}

// Handle applies one event. Run calls it for every event off the bus.
func (m *Manager) Handle(ctx context.Context, ev navcore.Event) {
	logger := util.GetLogger("Manager.Handle")
	logger.Trace().Str("event", ev.EventName()).Msg("Handling event")

	switch ev := ev.(type) {
	case navcore.Cd:
		m.tab.Cd(ctx, m.resolve(ev.Target))
	case navcore.Refresh:
		m.refresh(ctx)
	case navcore.Hover:
		m.tab.Hover(ev.URL)
	case navcore.Files:
		if ev.Op.Kind == navcore.OpFull {
			delete(m.loading, ev.Op.Cwd.Key())
		}
		m.tab.ApplyFilesOp(ev.Op)
	case navcore.InputRequest:
		if m.input != nil {
			m.input.Close()
		}
		logger.Debug().Str("session", ev.ID.String()).Str("title", ev.Opt.Title).Msg("Prompt opened")
		m.input = input.New(ev.Opt, ev.Tx)
	case navcore.Call:
		m.call(ctx, ev.Exec, ev.Layer)
	case task:
		ev.fn(m)
	default:
		logger.Debug().Str("event", ev.EventName()).Msg("Unhandled event")
	}
}

func (m *Manager) call(ctx context.Context, e navcore.Exec, layer navcore.Layer) {
	logger := util.GetLogger("Manager.call")

	switch layer {
	case navcore.LayerInput:
		if m.input == nil {
			logger.Debug().Str("exec", e.Name).Msg("No prompt open")
			return
		}
		m.input.Exec(e)
		if m.input.Closed() {
			m.input = nil
		}
	case navcore.LayerCompletion:
		switch e.Name {
		case "trigger":
			m.provider.Trigger(ctx, completion.Query{
				Base:   m.tab.Cwd(),
				Before: e.Named["before"],
				Ticket: e.Uint("ticket", 0),
				Apply:  e.Bool("apply", false),
			})
		default:
			logger.Debug().Str("exec", e.Name).Msg("Unknown completion command")
		}
	case navcore.LayerManager:
		m.manager(ctx, e)
	}
}

func (m *Manager) manager(ctx context.Context, e navcore.Exec) {
	logger := util.GetLogger("Manager.manager")

	switch e.Name {
	case "cd":
		m.tab.Cd(ctx, m.resolve(navcore.NewPath(e.Arg(0))))
	case "cd_interactive":
		target := m.tab.Cwd()
		if s := e.Arg(0); s != "" {
			target = m.resolve(navcore.NewPath(s))
		}
		m.tab.CdInteractive(target)
	case "back":
		m.tab.Back(ctx)
	case "forward":
		m.tab.Forward(ctx)
	case "refresh":
		m.refresh(ctx)
	default:
		logger.Debug().Str("exec", e.Name).Msg("Unknown manager command")
	}
}

// resolve anchors a relative path at the shown directory.
func (m *Manager) resolve(p navcore.Path) navcore.Path {
	if !p.IsRegular() || filepath.IsAbs(p.String()) {
		return p
	}
	return m.tab.Cwd().Join(p.String())
}

// refresh points the watcher at the shown directories and lists the ones that
// have not been loaded yet.
func (m *Manager) refresh(ctx context.Context) {
	logger := util.GetLogger("Manager.refresh")

	shown := []*tab.Folder{m.tab.Current()}
	if parent := m.tab.Parent(); parent != nil {
		shown = append(shown, parent)
	}

	if m.watcher != nil {
		dirs := make([]navcore.Path, len(shown))
		for i, f := range shown {
			dirs[i] = f.Cwd
		}
		if err := m.watcher.Watch(dirs...); err != nil {
			logger.Debug().Err(err).Msg("Some directories are not watched")
		}
	}

	for _, f := range shown {
		if f.Loaded {
			continue
		}
		if _, ok := m.loading[f.Cwd.Key()]; ok {
			continue
		}
		m.loading[f.Cwd.Key()] = struct{}{}
		go m.load(ctx, f.Cwd)
	}
}

// load lists dir and posts the result back to the loop. An unreadable
// directory is posted as empty so it is not retried on every refresh.
func (m *Manager) load(ctx context.Context, dir navcore.Path) {
	logger := util.GetLogger("Manager.load")

	entries, err := m.fs.ReadDir(ctx, dir)
	if err != nil {
		logger.Debug().Err(err).Str("dir", dir.String()).Msg("Listing failed")
		entries = nil
	}
	m.bus.Emit(navcore.Files{Op: navcore.FilesOp{Kind: navcore.OpFull, Cwd: dir, Entries: entries}})
}

// Close ends the open prompt and stops the watcher.
func (m *Manager) Close() error {
	if m.input != nil {
		m.input.Close()
		m.input = nil
	}
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}
