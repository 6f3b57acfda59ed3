package installer

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseDigest decodes sha256 digests and skips unknown algorithms.
func TestParseDigest(t *testing.T) {
	t.Parallel()

	sum := sha256.Sum256([]byte("x"))

	got, err := parseDigest(sha256Digest([]byte("x")))
	require.NoError(t, err)
	require.Equal(t, sum[:], got)

	got, err = parseDigest("sha512:abcd")
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = parseDigest("sha256:zz")
	require.ErrorIs(t, err, errBadDigest)

	_, err = parseDigest("sha256:abcd")
	require.ErrorIs(t, err, errBadDigest)
}

// TestApplyBinary creates a new executable file.
func TestApplyBinary(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "app")
	sum := sha256.Sum256([]byte("payload"))

	require.NoError(t, checkWritable(target))
	require.NoError(t, applyBinary(context.Background(), target, []byte("payload"), sum[:]))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got)
}

// TestApplyBinary_KeepsPreviousOnMismatch leaves an existing binary untouched.
func TestApplyBinary_KeepsPreviousOnMismatch(t *testing.T) {
	t.Parallel()

	target := filepath.Join(t.TempDir(), "app")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	sum := sha256.Sum256([]byte("other"))
	require.Error(t, applyBinary(context.Background(), target, []byte("payload"), sum[:]))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, []byte("old"), got)
}

// TestRunningProcesses ignores the current process and unknown names.
func TestRunningProcesses(t *testing.T) {
	t.Parallel()

	pids, err := runningProcesses("no-such-process-name-here")
	require.NoError(t, err)
	require.Empty(t, pids)

	self, err := os.Executable()
	require.NoError(t, err)

	pids, err = runningProcesses(filepath.Base(self))
	require.NoError(t, err)
	require.NotContains(t, pids, os.Getpid())
}
