// Package progress shows a "typing" indicator in the terminal while the
// assistant prepares a reply.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Indicator is shown between a question and its answer.
type Indicator interface {
	Start(label string)
	Stop()
}

// NewIndicator returns a TerminalIndicator writing to w, or a PlainIndicator
// if the CI environment variable is set.
func NewIndicator(w io.Writer) Indicator {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &PlainIndicator{w: w}
	}
	return &TerminalIndicator{w: w, tick: 100 * time.Millisecond}
}

// TerminalIndicator animates an indeterminate spinner.
type TerminalIndicator struct {
	w    io.Writer
	tick time.Duration

	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	stop chan struct{}
	done chan struct{}
}

func (t *TerminalIndicator) Start(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bar != nil {
		return
	}

	t.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(t.w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	go func(bar *progressbar.ProgressBar, stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(t.tick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}(t.bar, t.stop, t.done)
}

func (t *TerminalIndicator) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bar == nil {
		return
	}
	close(t.stop)
	<-t.done
	_ = t.bar.Finish()
	t.bar = nil
}

// PlainIndicator prints a single line, suitable for logs.
type PlainIndicator struct {
	w io.Writer
}

func (p *PlainIndicator) Start(label string) {
	fmt.Fprintf(p.w, "%s\n", label)
}

func (p *PlainIndicator) Stop() {}
