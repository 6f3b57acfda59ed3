package spinner

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestSpinner_StopIsIdempotent stops the animation and allows repeated calls.
func TestSpinner_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	s := StartWithInterval(context.Background(), &out, "Fetching", time.Millisecond)

	s.Stop()
	s.Stop()

	require.False(t, s.Active())

	select {
	case <-s.Done():
	default:
		t.Fatal("done channel must be closed after Stop")
	}

	// Nothing is drawn after Stop returns.
	written := out.Len()

	time.Sleep(5 * time.Millisecond)
	require.Equal(t, written, out.Len())
}

// TestSpinner_ContextCancel stops drawing when the context is done.
func TestSpinner_ContextCancel(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	ctx, cancel := context.WithCancel(context.Background())
	s := Start(ctx, &out, "Waiting")

	cancel()

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after cancellation")
	}

	require.False(t, s.Active())
	s.Stop()
}
