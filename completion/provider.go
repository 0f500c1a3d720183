// Package completion answers completion queries for path prompts. A query
// carries the text before the cursor and the editor's ticket. Queries the user
// asked for are answered with a "complete" command sent back to the input
// layer with the same ticket, which the editor drops if the user has typed
// since. The queries an editor sends after each edit only warm the listings.
package completion

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/brettbedarf/navcore"
	"github.com/brettbedarf/navcore/config"
	"github.com/brettbedarf/navcore/internal/util"
	"github.com/gobwas/glob"
	"github.com/puzpuzpuz/xsync/v4"
)

const globMeta = "*?[{"

// Provider completes path prefixes from directory listings.
type Provider struct {
	lister     navcore.Lister
	bus        navcore.Dispatcher
	cache      *xsync.Map[string, []navcore.Entry]
	showHidden bool
}

// NewProvider returns a Provider listing through lister and answering through bus.
func NewProvider(lister navcore.Lister, bus navcore.Dispatcher, cfg *config.Config) *Provider {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &Provider{
		lister:     lister,
		bus:        bus,
		cache:      xsync.NewMap[string, []navcore.Entry](),
		showHidden: cfg.ShowHidden,
	}
}

// Query is one completion request.
type Query struct {
	// Base anchors relative input. The zero Path leaves it to the process
	// working directory.
	Base   navcore.Path
	Before string
	Ticket uint64
	// Apply is set when the user asked for completion. Other queries never
	// produce an answer.
	Apply bool
}

// Trigger handles q on its own goroutine. An applied query that completes
// dispatches "complete <word> --ticket=<ticket>" to the input layer; any other
// query only lists the directory so the next request is served from cache.
func (p *Provider) Trigger(ctx context.Context, q Query) {
	go func() {
		logger := util.GetLogger("Provider.Trigger")

		if !q.Apply {
			matches, err := p.Candidates(ctx, q.Base, q.Before)
			if err == nil {
				logger.Trace().Str("before", q.Before).Int("candidates", len(matches)).Msg("Candidates refreshed")
			}
			return
		}

		word, ok := p.Resolve(ctx, q.Base, q.Before)
		if !ok {
			logger.Trace().Str("before", q.Before).Uint64("ticket", q.Ticket).Msg("Nothing to complete")
			return
		}
		logger.Debug().Str("before", q.Before).Str("word", word).Uint64("ticket", q.Ticket).Msg("Completed")
		p.bus.Call(navcore.NewExec("complete", word).With("ticket", q.Ticket), navcore.LayerInput)
	}()
}

// Resolve returns the word that should replace the partial name in before.
// A single match completes fully, with a trailing slash for directories.
// Several matches complete to their longest common prefix when that is longer
// than what was typed. Glob patterns only complete on a single match.
// Relative input is read against base.
func (p *Provider) Resolve(ctx context.Context, base navcore.Path, before string) (string, bool) {
	_, partial := split(base, before)
	matches, err := p.Candidates(ctx, base, before)
	if err != nil || len(matches) == 0 {
		return "", false
	}

	if len(matches) == 1 {
		word := matches[0].Name()
		if matches[0].IsDir {
			word += "/"
		}
		return word, true
	}
	if isGlob(partial) {
		return "", false
	}

	names := make([]string, len(matches))
	for i, e := range matches {
		names[i] = e.Name()
	}
	common := commonPrefix(names)
	if len(common) <= len(partial) {
		return "", false
	}
	return common, true
}

// Candidates lists the entries of before's directory whose names match its
// partial name, sorted by name. Relative input is read against base.
func (p *Provider) Candidates(ctx context.Context, base navcore.Path, before string) ([]navcore.Entry, error) {
	logger := util.GetLogger("Provider.Candidates")

	dir, partial := split(base, before)
	entries, err := p.list(ctx, dir)
	if err != nil {
		logger.Debug().Err(err).Str("dir", dir.String()).Msg("Listing failed")
		return nil, err
	}

	match := prefixMatcher(partial)
	if isGlob(partial) {
		g, err := glob.Compile(partial)
		if err != nil {
			logger.Debug().Err(err).Str("pattern", partial).Msg("Invalid pattern, matching literally")
		} else {
			match = g.Match
		}
	}
	hidden := p.showHidden || strings.HasPrefix(partial, ".")

	var out []navcore.Entry
	for _, e := range entries {
		name := e.Name()
		if !hidden && strings.HasPrefix(name, ".") {
			continue
		}
		if match(name) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

// Invalidate drops the cached listing of dir.
func (p *Provider) Invalidate(dir navcore.Path) {
	p.cache.Delete(dir.Key())
}

func (p *Provider) list(ctx context.Context, dir navcore.Path) ([]navcore.Entry, error) {
	if entries, ok := p.cache.Load(dir.Key()); ok {
		return entries, nil
	}
	entries, err := p.lister.ReadDir(ctx, dir)
	if err != nil {
		return nil, err
	}
	p.cache.Store(dir.Key(), entries)
	return entries, nil
}

// split separates before into the directory to list and the partial name.
// A relative directory is joined onto base unless base is zero.
func split(base navcore.Path, before string) (navcore.Path, string) {
	i := strings.LastIndex(before, "/")
	dir := "."
	switch {
	case i == 0:
		dir = "/"
	case i > 0:
		dir = before[:i]
	}
	partial := before[i+1:]

	if filepath.IsAbs(dir) || base.IsZero() {
		return navcore.NewPath(dir), partial
	}
	return base.Join(dir), partial
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, globMeta)
}

func prefixMatcher(prefix string) func(string) bool {
	return func(name string) bool {
		return strings.HasPrefix(name, prefix)
	}
}

// commonPrefix returns the longest rune-aligned prefix shared by all names.
func commonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefix := []rune(names[0])
	for _, name := range names[1:] {
		r := []rune(name)
		n := min(len(prefix), len(r))
		i := 0
		for i < n && prefix[i] == r[i] {
			i++
		}
		prefix = prefix[:i]
	}
	return string(prefix)
}
