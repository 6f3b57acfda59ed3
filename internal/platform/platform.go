package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/oshokin/pandora-installer/internal/logger"
)

// SupportedArch is the only architecture a prebuilt binary is published for.
const SupportedArch = "x86_64"

// ErrUnsupported is returned for any architecture other than SupportedArch.
var ErrUnsupported = errors.New("unsupported platform")

// Info is what the installer knows about the host.
type Info struct {
	// Arch is the kernel machine name, e.g. "x86_64" or "aarch64".
	Arch string
	// Distro is the distribution ID, e.g. "ubuntu". Empty when unknown.
	Distro string
	// DistroVersion is the distribution release, e.g. "24.04".
	DistroVersion string
}

// Detector reads host information.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}

// HostDetector implements Detector with gopsutil.
type HostDetector struct {
	platformInformation func(context.Context) (string, string, string, error)
}

// NewDetector creates a gopsutil backed detector.
func NewDetector() *HostDetector {
	return &HostDetector{platformInformation: host.PlatformInformationWithContext}
}

// Detect reads the kernel architecture. Distribution lookup failures are
// not fatal; the fields stay empty and the error is logged at debug level.
func (d *HostDetector) Detect(ctx context.Context) (*Info, error) {
	arch, err := host.KernelArch()
	if err != nil {
		return nil, fmt.Errorf("read kernel architecture: %w", err)
	}

	info := &Info{Arch: strings.TrimSpace(arch)}

	lookup := d.platformInformation
	if lookup == nil {
		lookup = host.PlatformInformationWithContext
	}

	distro, _, distroVersion, err := lookup(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}

		logger.DebugKV(ctx, "Distribution lookup failed", "error", err)

		return info, nil
	}

	info.Distro = strings.ToLower(strings.TrimSpace(distro))
	info.DistroVersion = strings.TrimSpace(distroVersion)

	return info, nil
}

// Normalize maps architecture aliases to the kernel machine name.
func Normalize(arch string) string {
	switch a := strings.ToLower(strings.TrimSpace(arch)); a {
	case "amd64", "x86-64", "x64":
		return SupportedArch
	case "arm64":
		return "aarch64"
	default:
		return a
	}
}

// Check returns the normalized architecture if it is supported.
func Check(info *Info) (string, error) {
	if info == nil {
		return "", ErrUnsupported
	}

	arch := Normalize(info.Arch)
	if arch != SupportedArch {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, info.Arch)
	}

	return arch, nil
}

// Static is a Detector returning fixed information.
type Static Info

// Detect returns a copy of s.
func (s Static) Detect(_ context.Context) (*Info, error) {
	info := Info(s)

	return &info, nil
}
