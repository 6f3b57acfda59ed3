package installer

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedPlatform is returned when the machine architecture has no prebuilt binary.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrVersionLookupFailed is returned when the latest release tag cannot be determined.
	ErrVersionLookupFailed = errors.New("something went wrong getting the version")
	// ErrDownloadFailed is matched by every *DownloadError.
	ErrDownloadFailed = errors.New("download failed")
	// ErrPermission is returned when the binary cannot be made executable. It is reported silently.
	ErrPermission = errors.New("cannot mark binary executable")
	// ErrInterrupted is returned when the user cancels the run. It is reported silently.
	ErrInterrupted = errors.New("interrupted")
)

// Exit codes returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130
)

// DownloadError names the asset URL that could not be fetched.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("failed to download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDownloadFailed) true for any DownloadError.
func (e *DownloadError) Is(target error) bool {
	return target == ErrDownloadFailed
}

// UserMessage returns the single stderr line for err, or "" when the
// failure is reported silently.
func UserMessage(err error) string {
	var downloadErr *DownloadError

	switch {
	case err == nil,
		errors.Is(err, ErrInterrupted),
		errors.Is(err, ErrPermission):
		return ""
	case errors.Is(err, ErrUnsupportedPlatform):
		return ErrUnsupportedPlatform.Error()
	case errors.Is(err, ErrVersionLookupFailed):
		return ErrVersionLookupFailed.Error()
	case errors.As(err, &downloadErr):
		return "failed to download " + downloadErr.URL
	default:
		return err.Error()
	}
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInterrupted):
		return ExitInterrupted
	default:
		return ExitFailure
	}
}
