package installer

import (
	"bytes"
	"context"
	"crypto"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goupdate "github.com/doitdistributed/go-update"

	"github.com/oshokin/pandora-installer/internal/config"
	"github.com/oshokin/pandora-installer/internal/logger"

	// Ensure SHA256 is available for digest verification.
	_ "crypto/sha256"
)

// sha256Prefix marks digests the installer can verify.
const sha256Prefix = "sha256:"

var errBadDigest = errors.New("malformed asset digest")

// parseDigest decodes a "sha256:<hex>" digest. Other algorithms yield a nil
// checksum and no error, meaning the payload is not verified.
func parseDigest(digest string) ([]byte, error) {
	if !strings.HasPrefix(digest, sha256Prefix) {
		return nil, nil
	}

	sum, err := hex.DecodeString(strings.TrimPrefix(digest, sha256Prefix))
	if err != nil || len(sum) != crypto.SHA256.Size() {
		return nil, fmt.Errorf("%s: %w", digest, errBadDigest)
	}

	return sum, nil
}

// checkWritable reports whether a file can be created next to target.
func checkWritable(target string) error {
	options := &goupdate.Options{
		TargetPath: target,
		TargetMode: config.ExecutablePermissions,
	}

	return options.CheckPermissions()
}

// applyBinary swaps payload into target. A previous binary is replaced
// atomically; the checksum, when given, is verified first.
func applyBinary(ctx context.Context, target string, payload []byte, checksum []byte) error {
	created := false

	if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) {
		// go-update renames the current target aside, so one has to exist.
		placeholder, createErr := os.OpenFile(filepath.Clean(target), os.O_CREATE|os.O_WRONLY, config.ExecutablePermissions)
		if createErr != nil {
			return createErr
		}

		if createErr = placeholder.Close(); createErr != nil {
			return createErr
		}

		created = true
	}

	options := goupdate.Options{
		TargetPath: target,
		TargetMode: config.ExecutablePermissions,
	}

	if checksum != nil {
		logger.Debugf(ctx, "Verifying SHA-256 %x", checksum)

		options.Checksum = checksum
		options.Hash = crypto.SHA256
	}

	if err := goupdate.Apply(bytes.NewReader(payload), options); err != nil {
		if created {
			_ = os.Remove(target)
		}

		return err
	}

	return nil
}
