package release

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTag is returned when a release has no tag.
var ErrEmptyTag = errors.New("release tag is empty")

// Source describes where release assets are published.
type Source struct {
	// DownloadBaseURL is the web root, e.g. https://github.com.
	DownloadBaseURL string
	// Owner is the account publishing the releases.
	Owner string
	// Repository is the repository name.
	Repository string
	// AssetName is the asset prefix, e.g. "PandoraLauncher".
	AssetName string
	// PlatformLabel is the platform segment, e.g. "Linux".
	PlatformLabel string
}

// Release is the latest published version.
type Release struct {
	// Tag is the raw tag name, e.g. "v1.2.3".
	Tag string
	// Digests maps asset file names to their published "sha256:<hex>" digests.
	Digests map[string]string
}

// Validate reports ErrEmptyTag for a release without a tag.
func (r *Release) Validate() error {
	if r == nil || strings.TrimSpace(r.Tag) == "" {
		return ErrEmptyTag
	}

	return nil
}

// NumericVersion returns the tag with one leading "v" stripped.
func (r *Release) NumericVersion() string {
	return strings.TrimPrefix(r.Tag, "v")
}

// AssetFilename returns "<asset>-<platform>-<version>-<arch>".
func (r *Release) AssetFilename(src Source, arch string) string {
	return fmt.Sprintf("%s-%s-%s-%s", src.AssetName, src.PlatformLabel, r.NumericVersion(), arch)
}

// DownloadURL returns the location of the binary for arch.
func (r *Release) DownloadURL(src Source, arch string) string {
	return fmt.Sprintf(
		"%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(src.DownloadBaseURL, "/"),
		src.Owner,
		src.Repository,
		r.Tag,
		r.AssetFilename(src, arch),
	)
}

// Digest returns the published digest of the named asset, if any.
func (r *Release) Digest(assetFilename string) (string, bool) {
	digest, ok := r.Digests[assetFilename]
	if !ok || digest == "" {
		return "", false
	}

	return digest, true
}
