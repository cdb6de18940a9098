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

package deeplink

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Activator is the platform primitive that opens URIs in other apps.
type Activator interface {
	// Resolve reports whether some installed app can handle the URI.
	Resolve(ctx context.Context, uri string) bool
	// Launch opens the URI, replacing the target app's task stack so it
	// shows the linked screen directly.
	Launch(ctx context.Context, uri string) error
	// LaunchPackage starts an app by package id at its default launch screen.
	LaunchPackage(ctx context.Context, pkg string) error
}

// Result is the outcome of a single dispatch.
type Result struct {
	ID       string
	URI      string
	Request  LinkRequest
	Outcome  Outcome
	Duration time.Duration
}

// OK reports whether the link was opened.
func (r Result) OK() bool {
	return r.Outcome == OutcomeOpened
}

// Dispatcher validates, gates and opens deep links into the companion app.
type Dispatcher struct {
	env       HostEnvironment
	activator Activator
	resolver  *Resolver
	clock     clockwork.Clock
	pkg       string
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithResolver replaces the default Resolver.
func WithResolver(r *Resolver) DispatcherOption {
	return func(d *Dispatcher) {
		d.resolver = r
	}
}

// WithClock sets the clock used to time dispatches.
func WithClock(c clockwork.Clock) DispatcherOption {
	return func(d *Dispatcher) {
		d.clock = c
	}
}

// WithPackage sets the package id started by LaunchApp.
func WithPackage(pkg string) DispatcherOption {
	return func(d *Dispatcher) {
		d.pkg = pkg
	}
}

// NewDispatcher returns a Dispatcher that checks env and opens links with
// activator.
func NewDispatcher(env HostEnvironment, activator Activator, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		env:       env,
		activator: activator,
		resolver:  NewResolver(),
		clock:     clockwork.NewRealClock(),
		pkg:       CompanionPackage,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolver returns the resolver used for capability checks.
func (d *Dispatcher) Resolver() *Resolver {
	return d.resolver
}

// CanHandle reports whether the companion app can handle the feature.
func (d *Dispatcher) CanHandle(ctx context.Context, feature Feature) bool {
	return d.resolver.CanHandle(ctx, feature, d.env)
}

// Open dispatches a deep link and reports whether it was opened. Pass an
// empty fragment for fixed-path features.
func (d *Dispatcher) Open(ctx context.Context, feature Feature, fragment string) bool {
	return d.Dispatch(ctx, LinkRequest{Feature: feature, Fragment: fragment}).OK()
}

// Dispatch runs a link request through validation, capability check and
// activation. Malformed fragments never reach the capability check or the
// activator.
func (d *Dispatcher) Dispatch(ctx context.Context, req LinkRequest) Result {
	start := d.clock.Now()
	res := Result{
		ID:      uuid.New().String(),
		Request: req,
	}
	res.Outcome, res.URI = d.dispatch(ctx, req)
	res.Duration = d.clock.Since(start)

	log.Debug().
		Str("dispatch_id", res.ID).
		Stringer("feature", req.Feature).
		Str("fragment", req.Fragment).
		Str("uri", res.URI).
		Stringer("outcome", res.Outcome).
		Dur("took", res.Duration).
		Msg("deep link dispatched")

	return res
}

func (d *Dispatcher) dispatch(ctx context.Context, req LinkRequest) (Outcome, string) {
	uri, err := BuildURI(req.Feature, req.Fragment)
	if errors.Is(err, ErrUnknownFeature) {
		log.Debug().Err(err).Msg("rejected deep link")
		return OutcomeUnsupported, ""
	}
	if err != nil {
		log.Debug().Err(err).Msg("rejected deep link")
		return OutcomeInvalidFragment, ""
	}

	if o := d.resolver.Check(ctx, req.Feature, d.env); !o.OK() {
		return o, uri
	}

	return d.activate(ctx, uri), uri
}

// activate resolves and then launches the URI.
func (d *Dispatcher) activate(ctx context.Context, uri string) Outcome {
	if !d.activator.Resolve(ctx, uri) {
		return OutcomeResolutionFailed
	}
	if err := d.activator.Launch(ctx, uri); err != nil {
		log.Warn().Err(err).Str("uri", uri).Msg("failed to launch deep link")
		return OutcomeLaunchFailed
	}
	return OutcomeOpened
}

// OpenStore opens the companion app's store listing, falling back to the
// store website when the store app cannot handle it.
func (d *Dispatcher) OpenStore(ctx context.Context) bool {
	if d.activate(ctx, StoreURI) == OutcomeOpened {
		return true
	}
	log.Info().Msg("store app unavailable, opening store website")
	return d.activate(ctx, StoreWebURL) == OutcomeOpened
}

// LaunchApp opens the companion app to its default launch screen. It does
// nothing when the app is not installed.
func (d *Dispatcher) LaunchApp(ctx context.Context) bool {
	if !d.env.IsCompanionAppInstalled(ctx) {
		return false
	}
	if err := d.activator.LaunchPackage(ctx, d.pkg); err != nil {
		log.Warn().Err(err).Msg("failed to launch companion app")
		return false
	}
	return true
}
