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
	"maps"
)

// VersionDebug is the installed version reported for a companion app that is
// present but has no standard version code, such as a local debug build.
const VersionDebug = 0

// HostEnvironment reports the install state of the companion app. Both values
// can change between calls and are queried every time.
type HostEnvironment interface {
	// IsCompanionAppInstalled reports whether the companion app is present.
	IsCompanionAppInstalled(ctx context.Context) bool
	// InstalledVersion returns the companion app's version code, or 0 when it
	// is not installed or cannot be determined.
	InstalledVersion(ctx context.Context) int
}

// Gate is the capability rule for one feature. The zero value always allows
// the feature once the app is installed.
type Gate struct {
	MinVersion int
}

// Always returns a gate that only requires the app to be installed.
func Always() Gate {
	return Gate{}
}

// MinVersion returns a gate requiring at least version v of the app.
func MinVersion(v int) Gate {
	return Gate{MinVersion: v}
}

// Allows reports whether an installed, non-debug version passes the gate.
func (g Gate) Allows(version int) bool {
	return version >= g.MinVersion
}

// defaultGates records the version codes where the companion app first
// handled each version-gated feature. Features missing from the table are
// available on every installed version.
//
// The fixed-path screens were once gated too (74 and up) and were relaxed to
// always available. ArbitraryURL and OnDemandTitle kept their gates.
var defaultGates = map[Feature]Gate{
	FeatureVideo:         MinVersion(48),
	FeatureCategory:      MinVersion(48),
	FeatureUser:          MinVersion(49),
	FeatureChannel:       MinVersion(74),
	FeatureArbitraryURL:  MinVersion(234),
	FeatureOnDemandTitle: MinVersion(470),
}

// Resolver decides whether the installed companion app supports a feature.
// It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	gates map[Feature]Gate
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithGate overrides the gate for a single feature.
func WithGate(feature Feature, gate Gate) ResolverOption {
	return func(r *Resolver) {
		r.gates[feature] = gate
	}
}

// WithGates overrides the gates for several features at once.
func WithGates(gates map[Feature]Gate) ResolverOption {
	return func(r *Resolver) {
		maps.Copy(r.gates, gates)
	}
}

// DefaultGates returns a copy of the built-in gate table.
func DefaultGates() map[Feature]Gate {
	return maps.Clone(defaultGates)
}

// NewResolver returns a Resolver seeded with DefaultGates.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{gates: DefaultGates()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Gate returns the effective gate for a feature.
func (r *Resolver) Gate(feature Feature) Gate {
	return r.gates[feature]
}

// Check returns OutcomeSupported when the feature can be handled, otherwise
// the reason it cannot.
func (r *Resolver) Check(ctx context.Context, feature Feature, env HostEnvironment) Outcome {
	if !feature.Valid() {
		return OutcomeUnsupported
	}
	if !env.IsCompanionAppInstalled(ctx) {
		return OutcomeAppNotInstalled
	}

	version := env.InstalledVersion(ctx)
	if version == VersionDebug {
		return OutcomeSupported
	}
	if !r.gates[feature].Allows(version) {
		return OutcomeUnsupported
	}
	return OutcomeSupported
}

// CanHandle reports whether the installed companion app can handle a deep
// link to the feature.
func (r *Resolver) CanHandle(ctx context.Context, feature Feature, env HostEnvironment) bool {
	return r.Check(ctx, feature, env).OK()
}
