// Zaparoo Deeplink
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Deeplink.
//
// Zaparoo Deeplink is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Deeplink is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Deeplink.  If not, see <http://www.gnu.org/licenses/>.

// Package android opens deep links on an Android device over adb.
package android

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ZaparooProject/zaparoo-deeplink/pkg/deeplink"
	"github.com/ZaparooProject/zaparoo-deeplink/pkg/helpers/command"
	"github.com/rs/zerolog/log"
)

const (
	DefaultAdbPath = "adb"
	DefaultTimeout = 10 * time.Second

	// MaxURILength caps URIs sent to the device shell.
	MaxURILength = 8192

	actionView       = "android.intent.action.VIEW"
	categoryLauncher = "android.intent.category.LAUNCHER"
	// FLAG_ACTIVITY_NEW_TASK | FLAG_ACTIVITY_CLEAR_TASK
	clearTaskFlags = "0x10008000"
)

var (
	ErrURITooLong  = errors.New("uri too long")
	ErrStartFailed = errors.New("activity not started")
)

var versionCodeRe = regexp.MustCompile(`versionCode=(\d+)`)

// Options configures a Host.
type Options struct {
	// Executor runs adb. Defaults to the real executor.
	Executor command.Executor
	// AdbPath is the adb binary. Defaults to "adb" from PATH.
	AdbPath string
	// Serial selects a device when more than one is attached.
	Serial string
	// Package is the companion app's package id.
	Package string
	// Timeout bounds every adb call.
	Timeout time.Duration
}

// Host reports the companion app's install state on a device and opens URIs
// on it. It implements deeplink.HostEnvironment and deeplink.Activator.
type Host struct {
	exec    command.Executor
	adbPath string
	serial  string
	pkg     string
	timeout time.Duration
}

var (
	_ deeplink.HostEnvironment = (*Host)(nil)
	_ deeplink.Activator       = (*Host)(nil)
)

// NewHost returns a Host with defaults filled in for unset options.
func NewHost(opts Options) *Host {
	h := &Host{
		exec:    opts.Executor,
		adbPath: opts.AdbPath,
		serial:  opts.Serial,
		pkg:     opts.Package,
		timeout: opts.Timeout,
	}
	if h.exec == nil {
		h.exec = &command.RealExecutor{}
	}
	if h.adbPath == "" {
		h.adbPath = DefaultAdbPath
	}
	if h.pkg == "" {
		h.pkg = deeplink.CompanionPackage
	}
	if h.timeout <= 0 {
		h.timeout = DefaultTimeout
	}
	return h
}

func (h *Host) shellArgs(args ...string) []string {
	full := make([]string, 0, len(args)+3)
	if h.serial != "" {
		full = append(full, "-s", h.serial)
	}
	full = append(full, "shell")
	return append(full, args...)
}

func (h *Host) shell(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	full := h.shellArgs(args...)
	log.Debug().Str("adb", h.adbPath).Strs("args", full).Msg("running adb")
	out, err := h.exec.Output(ctx, h.adbPath, full...)
	if err != nil {
		return out, fmt.Errorf("adb shell %s: %w", args[0], err)
	}
	return out, nil
}

// IsCompanionAppInstalled reports whether the package manager knows the
// companion package. adb failures count as not installed.
func (h *Host) IsCompanionAppInstalled(ctx context.Context) bool {
	out, err := h.shell(ctx, "pm", "path", h.pkg)
	if err != nil {
		// pm exits 1 for unknown packages
		log.Debug().Err(err).Str("package", h.pkg).Msg("package not found")
		return false
	}
	return parsePackagePath(out)
}

// InstalledVersion returns the companion package's versionCode, or 0 when it
// cannot be read.
func (h *Host) InstalledVersion(ctx context.Context) int {
	out, err := h.shell(ctx, "dumpsys", "package", h.pkg)
	if err != nil {
		log.Warn().Err(err).Str("package", h.pkg).Msg("failed to read package version")
		return 0
	}
	return parseVersionCode(out)
}

// Resolve reports whether an installed activity handles a VIEW intent for
// the URI.
func (h *Host) Resolve(ctx context.Context, uri string) bool {
	if len(uri) > MaxURILength {
		log.Warn().Int("length", len(uri)).Msg("uri too long to resolve")
		return false
	}
	out, err := h.shell(ctx,
		"cmd", "package", "resolve-activity", "--brief",
		"-a", actionView, "-d", shellQuote(uri),
	)
	if err != nil {
		log.Warn().Err(err).Str("uri", uri).Msg("failed to resolve uri")
		return false
	}
	component, ok := parseResolvedActivity(out)
	if ok {
		log.Debug().Str("uri", uri).Str("component", component).Msg("uri resolved")
	}
	return ok
}

// Launch starts a VIEW intent for the URI in a fresh task.
func (h *Host) Launch(ctx context.Context, uri string) error {
	if len(uri) > MaxURILength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrURITooLong, len(uri), MaxURILength)
	}
	out, err := h.shell(ctx,
		"am", "start", "-a", actionView, "-d", shellQuote(uri), "-f", clearTaskFlags,
	)
	if err != nil {
		return err
	}
	if line, failed := startFailed(out); failed {
		return fmt.Errorf("%w: %s", ErrStartFailed, line)
	}
	return nil
}

// LaunchPackage starts the package's launcher activity.
func (h *Host) LaunchPackage(ctx context.Context, pkg string) error {
	out, err := h.shell(ctx, "monkey", "-p", pkg, "-c", categoryLauncher, "1")
	if err != nil {
		return err
	}
	if line, failed := startFailed(out); failed {
		return fmt.Errorf("%w: %s", ErrStartFailed, line)
	}
	return nil
}
