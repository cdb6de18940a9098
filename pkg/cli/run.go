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

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ZaparooProject/zaparoo-deeplink/pkg/deeplink"
	"github.com/rs/zerolog/log"
)

// Runner holds what the CLI actions need to talk to the device.
type Runner struct {
	Out        io.Writer
	Env        deeplink.HostEnvironment
	Dispatcher *deeplink.Dispatcher

	// Package is the companion package id the host checks and launches.
	Package string
}

func (r *Runner) pkg() string {
	if r.Package == "" {
		return deeplink.CompanionPackage
	}
	return r.Package
}

// Run performs the single action selected by the flags.
func (f *Flags) Run(ctx context.Context, r *Runner) error {
	switch {
	case *f.Open != "":
		return r.open(ctx, *f.Open, *f.URI)
	case *f.Check != "":
		return r.check(ctx, *f.Check)
	case *f.Status:
		return r.status(ctx)
	case *f.Store:
		if !r.Dispatcher.OpenStore(ctx) {
			return fmt.Errorf("%w: store listing", ErrNotOpened)
		}
		_, _ = fmt.Fprintln(r.Out, "opened store listing")
		return nil
	case *f.Launch:
		if !r.Dispatcher.LaunchApp(ctx) {
			return ErrNotStarted
		}
		_, _ = fmt.Fprintln(r.Out, "launched", r.pkg())
		return nil
	default:
		return ErrNoAction
	}
}

func (r *Runner) open(ctx context.Context, name, fragment string) error {
	feature, err := parseFeature(name)
	if err != nil {
		return err
	}

	res := r.Dispatcher.Dispatch(ctx, deeplink.LinkRequest{Feature: feature, Fragment: fragment})
	if !res.OK() {
		log.Info().Stringer("feature", feature).Stringer("outcome", res.Outcome).Msg("deep link not opened")
		return fmt.Errorf("%w: %s", ErrNotOpened, res.Outcome)
	}

	_, _ = fmt.Fprintln(r.Out, "opened", res.URI)
	return nil
}

func (r *Runner) check(ctx context.Context, name string) error {
	features := deeplink.AllFeatures()
	if !strings.EqualFold(strings.TrimSpace(name), "all") {
		feature, err := parseFeature(name)
		if err != nil {
			return err
		}
		features = []deeplink.Feature{feature}
	}

	results, err := CheckAll(ctx, r.Dispatcher.Resolver(), r.Env, features)
	if err != nil {
		return err
	}
	if err := printChecks(r.Out, results); err != nil {
		return err
	}

	if len(results) == 1 && !results[0].Outcome.OK() {
		return fmt.Errorf("%w: %s", ErrUnhandled, results[0].Outcome)
	}
	return nil
}

func (r *Runner) status(ctx context.Context) error {
	installed := r.Env.IsCompanionAppInstalled(ctx)
	_, _ = fmt.Fprintf(r.Out, "package:   %s\n", r.pkg())
	_, _ = fmt.Fprintf(r.Out, "installed: %t\n", installed)
	if installed {
		version := r.Env.InstalledVersion(ctx)
		if version == deeplink.VersionDebug {
			_, _ = fmt.Fprintln(r.Out, "version:   debug build")
		} else {
			_, _ = fmt.Fprintf(r.Out, "version:   %d\n", version)
		}
	}
	_, _ = fmt.Fprintln(r.Out)

	results, err := CheckAll(ctx, r.Dispatcher.Resolver(), r.Env, deeplink.AllFeatures())
	if err != nil {
		return err
	}
	return printChecks(r.Out, results)
}
