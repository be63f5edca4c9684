package motion

import (
	"fmt"
	"os"
	"sync/atomic"
)

var debugEnabled atomic.Bool

// SetDebug turns package-wide trace output on stderr on or off. Hooks log
// their subscriptions; presets log every rewritten easing.
func SetDebug(enabled bool) {
	debugEnabled.Store(enabled)
}

// debugf writes one trace line to stderr when debugging is on.
func debugf(format string, args ...any) {
	if !debugEnabled.Load() {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[motion] "+format+"\n", args...)
}

// debugStats holds per-update counters for a Page.
// Only printed when the page is in debug mode.
type debugStats struct {
	injected        bool
	frames          int
	notified        int
	scrollListeners int
	watchers        int
}

// debugLog prints update stats to stderr.
func (p *Page) debugLog(stats debugStats) {
	if !p.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[motion] scroll: (%.0f,%.0f) | viewport: %.0fx%.0f | document: %.0f | injected: %v\n",
		p.scroll.X, p.scroll.Y, p.width, p.height, p.docHeight, stats.injected)
	_, _ = fmt.Fprintf(os.Stderr,
		"[motion] frames: %d | notified: %d | scroll listeners: %d | watchers: %d\n",
		stats.frames, stats.notified, stats.scrollListeners, stats.watchers)
}

// debugMaxWatchers is the watcher count above which a page warns about
// observers that were probably never closed.
const debugMaxWatchers = 1000

func (p *Page) debugCheckWatchers() {
	if len(p.handlers.watchers) > debugMaxWatchers {
		_, _ = fmt.Fprintf(os.Stderr, "[motion] warning: %d intersection watchers (threshold %d); are observers being closed?\n",
			len(p.handlers.watchers), debugMaxWatchers)
	}
}
