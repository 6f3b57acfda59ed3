package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/pandora-installer/internal/config"
	"github.com/oshokin/pandora-installer/internal/platform"
	"github.com/oshokin/pandora-installer/internal/repository/shortcut"
	"github.com/oshokin/pandora-installer/internal/service/installer"
	"github.com/oshokin/pandora-installer/internal/service/registry"
)

// TestInstaller_Run_FromConfigFile serves a release from a mirror configured
// in YAML and checks that the desktop entry points at the files of the run.
//
//nolint:funlen // Integration test requires comprehensive setup and verification.
func TestInstaller_Run_FromConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	home := filepath.Join(dir, "home")

	// Setup HTTP server acting as both release API and asset mirror.
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/launcher/releases/latest", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"v2.0.1","assets":[]}`))
	})
	mux.HandleFunc("/acme/launcher/releases/download/v2.0.1/Launcher-Linux-2.0.1-x86_64",
		func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("binary"))
		},
	)
	mux.HandleFunc("/static/icon.svg", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<svg/>"))
	})

	ts := httptest.NewServer(mux)
	defer ts.Close()

	// Write the configuration file the way a user would.
	settings := map[string]any{
		"owner":             "acme",
		"repository":        "launcher",
		"asset_name":        "Launcher",
		"api_base_url":      ts.URL,
		"download_base_url": ts.URL,
		"icon_url":          ts.URL + "/static/icon.svg",
		"timeout":           "10s",
		"home_dir":          home,
	}

	data, err := yaml.Marshal(settings)
	require.NoError(t, err)

	cfgPath := filepath.Join(dir, "installer.yaml")
	require.NoError(t, os.WriteFile(cfgPath, data, 0o600))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	refreshed := 0

	err = installer.Run(context.Background(), &installer.Options{
		Config:   cfg,
		Detector: platform.Static{Arch: "x86_64"},
		Refresher: registry.Func(func(context.Context, string) error {
			refreshed++
			return nil
		}),
		HTTPClient: ts.Client(),
		Progress:   new(nopWriter),
		Out:        new(nopWriter),
	})
	require.NoError(t, err)
	require.Equal(t, 1, refreshed)

	// Verify the desktop entry references files written in this run.
	entryPath := filepath.Join(home, ".local", "share", "applications", config.DesktopEntryFilename)

	file, err := os.Open(entryPath)
	require.NoError(t, err)

	defer func() {
		_ = file.Close()
	}()

	values, err := shortcut.Parse(file)
	require.NoError(t, err)

	for _, key := range []string{"TryExec", "Exec", "Icon"} {
		_, statErr := os.Stat(values[key])
		require.NoError(t, statErr, key)
	}

	info, err := os.Stat(values["Exec"])
	require.NoError(t, err)
	require.NotZero(t, info.Mode().Perm()&0o100)
	require.Equal(t, filepath.Join(home, ".local", "share", "Launcher", "Launcher"), values["Exec"])
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) {
	return len(p), nil
}
