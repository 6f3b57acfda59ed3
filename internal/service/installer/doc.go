// Package installer downloads and installs the latest launcher release.
//
// Run checks the machine architecture, looks up the latest release tag while
// a progress marker spins, downloads the binary and the icon, marks the
// binary executable, writes the desktop entry and refreshes the desktop
// database. Every failure is terminal and maps to one user-facing line.
package installer
