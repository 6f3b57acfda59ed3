package release

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testSource() Source {
	return Source{
		DownloadBaseURL: "https://github.com/",
		Owner:           "Moulberry",
		Repository:      "PandoraLauncher",
		AssetName:       "PandoraLauncher",
		PlatformLabel:   "Linux",
	}
}

// TestValidate rejects nil and blank tags.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, (*Release)(nil).Validate(), ErrEmptyTag)
	require.ErrorIs(t, (&Release{Tag: "  "}).Validate(), ErrEmptyTag)
	require.NoError(t, (&Release{Tag: "v1"}).Validate())
}

// TestNumericVersion strips exactly one leading "v".
func TestNumericVersion(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"v9.9.9":  "9.9.9",
		"9.9.9":   "9.9.9",
		"vv1.0.0": "v1.0.0",
	}
	for tag, want := range cases {
		require.Equal(t, want, (&Release{Tag: tag}).NumericVersion(), tag)
	}
}

// TestDownloadURL embeds the raw tag, the numeric version and the architecture.
func TestDownloadURL(t *testing.T) {
	t.Parallel()

	r := &Release{Tag: "v9.9.9"}

	require.Equal(t,
		"https://github.com/Moulberry/PandoraLauncher/releases/download/v9.9.9/PandoraLauncher-Linux-9.9.9-x86_64",
		r.DownloadURL(testSource(), "x86_64"),
	)
}

// TestDigest ignores missing and empty entries.
func TestDigest(t *testing.T) {
	t.Parallel()

	r := &Release{
		Tag: "v1",
		Digests: map[string]string{
			"a": "sha256:00",
			"b": "",
		},
	}

	got, ok := r.Digest("a")
	require.True(t, ok)
	require.Equal(t, "sha256:00", got)

	_, ok = r.Digest("b")
	require.False(t, ok)

	_, ok = r.Digest("c")
	require.False(t, ok)
}
