package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/bus"
	"github.com/brettbedarf/navcore/config"
	"github.com/brettbedarf/navcore/filesystem"
	"github.com/brettbedarf/navcore/internal/core"
	"github.com/brettbedarf/navcore/internal/util"
)

const promptTimeout = time.Second

const shellHelp = `commands:
  cd <path>        change directory
  cdi [path]       interactive cd prompt
  back | forward   walk the back-stack
  type <text>      insert text into the prompt
  bs | del         delete before / under the cursor
  left | right     move the prompt cursor
  tab              complete the prompt
  submit | esc     accept / dismiss the prompt
  pwd | ls         show the current directory / its listing
  prompt           show the prompt
  quit`

// shell turns text commands into bus calls. Everything it prints goes through
// the manager loop so output stays ordered with the state it reports.
type shell struct {
	m   *core.Manager
	bus *bus.Bus
	out io.Writer
}

func runShell(ctx context.Context, dir string, cfg *config.Config, in io.Reader, out io.Writer) error {
	logger := util.GetLogger("shell")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	b := bus.New(cfg)
	m := core.NewManager(navcore.NewPath(abs), filesystem.NewDefaultRegistry(), b, cfg)

	errc := make(chan error, 1)
	go func() { errc <- m.Run(ctx) }()

	sh := &shell{m: m, bus: b, out: out}
	lines := scanLines(in)
	logger.Info().Str("dir", abs).Msg("Shell ready")

loop:
	for {
		select {
		case line, ok := <-lines:
			if !ok || !sh.exec(line) {
				break loop
			}
		case <-ctx.Done():
			break loop
		}
	}

	// Let prompt results still inside the debounce window land first
	time.Sleep(2 * cfg.DebounceWindow)
	drained := make(chan struct{})
	m.Do(func(*core.Manager) { close(drained) })
	select {
	case <-drained:
	case <-ctx.Done():
	}

	b.Close()
	err = <-errc
	if cerr := m.Close(); cerr != nil {
		logger.Debug().Err(cerr).Msg("Failed to stop watcher")
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func scanLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// exec runs one command line and reports whether the shell should go on.
func (sh *shell) exec(line string) bool {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg := strings.TrimSpace(rest)

	switch name {
	case "":
	case "cd":
		sh.bus.Call(navcore.NewExec("cd", arg), navcore.LayerManager)
	case "cdi":
		sh.bus.Call(navcore.NewExec("cd_interactive", arg), navcore.LayerManager)
		sh.waitPrompt()
	case "back", "forward":
		sh.bus.Call(navcore.NewExec(name), navcore.LayerManager)
	case "type":
		// Keep inner spacing as typed
		sh.bus.Call(navcore.NewExec("type", rest), navcore.LayerInput)
	case "bs":
		sh.bus.Call(navcore.NewExec("backspace"), navcore.LayerInput)
	case "del":
		sh.bus.Call(navcore.NewExec("delete"), navcore.LayerInput)
	case "left", "right":
		step := 1
		if arg != "" {
			if n, err := strconv.Atoi(arg); err == nil {
				step = n
			}
		}
		if name == "left" {
			step = -step
		}
		sh.bus.Call(navcore.NewExec("move").With("step", step), navcore.LayerInput)
	case "tab":
		sh.bus.Call(navcore.NewExec("trigger"), navcore.LayerInput)
	case "submit":
		sh.bus.Call(navcore.NewExec("submit"), navcore.LayerInput)
	case "esc":
		sh.bus.Call(navcore.NewExec("close"), navcore.LayerInput)
	case "pwd":
		sh.m.Do(func(m *core.Manager) {
			fmt.Fprintln(sh.out, m.Tab().Cwd())
		})
	case "ls":
		sh.m.Do(sh.list)
	case "prompt":
		sh.m.Do(sh.prompt)
	case "help":
		sh.print(shellHelp)
	case "quit", "exit":
		return false
	default:
		sh.print(fmt.Sprintf("unknown command %q", name))
	}
	return true
}

// waitPrompt blocks until the manager has a prompt open, so the next lines
// edit it. The prompt is opened asynchronously by the interactive cd.
func (sh *shell) waitPrompt() {
	logger := util.GetLogger("shell.waitPrompt")

	deadline := time.Now().Add(promptTimeout)
	for time.Now().Before(deadline) {
		open := make(chan bool, 1)
		sh.m.Do(func(m *core.Manager) { open <- m.Input() != nil })
		select {
		case ok := <-open:
			if ok {
				return
			}
		case <-time.After(time.Until(deadline)):
		}
		time.Sleep(5 * time.Millisecond)
	}
	logger.Warn().Msg("Prompt did not open")
}

func (sh *shell) print(s string) {
	sh.m.Do(func(*core.Manager) {
		fmt.Fprintln(sh.out, s)
	})
}

func (sh *shell) list(m *core.Manager) {
	f := m.Tab().Current()
	if !f.Loaded {
		fmt.Fprintln(sh.out, "(loading)")
		return
	}
	for i, e := range f.Files {
		marker := " "
		if i == f.Cursor {
			marker = ">"
		}
		name := e.Name()
		if e.IsDir {
			name += "/"
		}
		fmt.Fprintf(sh.out, "%s %s\n", marker, name)
	}
}

func (sh *shell) prompt(m *core.Manager) {
	in := m.Input()
	if in == nil {
		fmt.Fprintln(sh.out, "(no prompt)")
		return
	}
	before, after := in.Partition()
	fmt.Fprintf(sh.out, "%s %s|%s\n", in.Title(), before, after)
}
