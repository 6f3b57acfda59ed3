// Package spinner renders a cosmetic progress marker on a terminal line.
package spinner

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// DefaultInterval is the delay between two frames.
const DefaultInterval = 100 * time.Millisecond

// charSet is the index of the "|/-\" frames in spinner.CharSets.
const charSet = 9

// Spinner draws frames followed by a label until stopped.
type Spinner struct {
	inner *spinner.Spinner

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Start begins drawing on w. Drawing ends when Stop is called or ctx is done.
func Start(ctx context.Context, w io.Writer, label string) *Spinner {
	return StartWithInterval(ctx, w, label, DefaultInterval)
}

// StartWithInterval is Start with a custom frame interval. Frames are only
// drawn when w is a terminal.
func StartWithInterval(ctx context.Context, w io.Writer, label string, interval time.Duration) *Spinner {
	if interval <= 0 {
		interval = DefaultInterval
	}

	options := []spinner.Option{spinner.WithWriter(w)}
	if f, ok := w.(*os.File); ok {
		options = append(options, spinner.WithWriterFile(f))
	}

	inner := spinner.New(spinner.CharSets[charSet], interval, options...)
	inner.Suffix = " " + label

	s := &Spinner{
		inner: inner,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	inner.Start()

	go s.wait(ctx)

	return s
}

// Stop ends the animation, waits until the line is cleared and returns.
// It is safe to call more than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})

	<-s.done
}

// Done is closed once the animation has stopped and the line is clear.
func (s *Spinner) Done() <-chan struct{} {
	return s.done
}

// Active reports whether frames are being drawn.
func (s *Spinner) Active() bool {
	return s.inner.Active()
}

func (s *Spinner) wait(ctx context.Context) {
	defer close(s.done)

	select {
	case <-ctx.Done():
	case <-s.stop:
	}

	s.inner.Stop()
}
