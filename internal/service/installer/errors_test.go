package installer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestUserMessage maps every failure kind to its stderr line.
func TestUserMessage(t *testing.T) {
	t.Parallel()

	downloadErr := &DownloadError{URL: "https://example.com/a", Err: errors.New("boom")}

	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("%w: aarch64", ErrUnsupportedPlatform), "unsupported platform"},
		{fmt.Errorf("%w: %w", ErrVersionLookupFailed, errors.New("eof")), "something went wrong getting the version"},
		{fmt.Errorf("binary: %w", downloadErr), "failed to download https://example.com/a"},
		{fmt.Errorf("%w: chmod", ErrPermission), ""},
		{ErrInterrupted, ""},
		{errors.New("disk full"), "disk full"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, UserMessage(tc.err))
	}
}

// TestExitCode distinguishes success, interruption and failures.
func TestExitCode(t *testing.T) {
	t.Parallel()

	require.Equal(t, ExitOK, ExitCode(nil))
	require.Equal(t, ExitInterrupted, ExitCode(fmt.Errorf("lookup: %w", ErrInterrupted)))
	require.Equal(t, ExitFailure, ExitCode(ErrPermission))
	require.Equal(t, ExitFailure, ExitCode(&DownloadError{URL: "u"}))
}

// TestDownloadErrorIs matches the sentinel and unwraps the cause.
func TestDownloadErrorIs(t *testing.T) {
	t.Parallel()

	cause := errors.New("timeout")
	err := fmt.Errorf("icon: %w", &DownloadError{URL: "u", Err: cause})

	require.ErrorIs(t, err, ErrDownloadFailed)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "failed to download u")
}
