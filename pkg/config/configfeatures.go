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

package config

import (
	"github.com/ZaparooProject/zaparoo-deeplink/pkg/deeplink"
)

// FeatureGate overrides the built-in capability gate for one feature. Exactly
// one of Always and MinVersion is set. Name is stored as the feature's text
// name.
type FeatureGate struct {
	MinVersion *int             `toml:"min_version,omitempty" validate:"omitempty,gte=0"`
	Name       deeplink.Feature `toml:"name" validate:"required"`
	Always     bool             `toml:"always,omitempty"`
}

// Gate converts the entry into a resolver gate.
func (fg FeatureGate) Gate() deeplink.Gate {
	if fg.Always || fg.MinVersion == nil {
		return deeplink.Always()
	}
	return deeplink.MinVersion(*fg.MinVersion)
}

// FeatureGates returns the configured gate overrides keyed by feature. Later
// entries for the same feature win.
func (c *Instance) FeatureGates() map[deeplink.Feature]deeplink.Gate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	gates := make(map[deeplink.Feature]deeplink.Gate, len(c.vals.Features))
	for _, fg := range c.vals.Features {
		gates[fg.Name] = fg.Gate()
	}
	return gates
}

// SetFeatureGate replaces any override for the feature. A gate with no
// minimum version is stored as always available.
func (c *Instance) SetFeatureGate(feature deeplink.Feature, gate deeplink.Gate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := FeatureGate{Name: feature}
	if gate.MinVersion == 0 {
		entry.Always = true
	} else {
		v := gate.MinVersion
		entry.MinVersion = &v
	}

	kept := make([]FeatureGate, 0, len(c.vals.Features)+1)
	for _, fg := range c.vals.Features {
		if fg.Name == feature {
			continue
		}
		kept = append(kept, fg)
	}
	c.vals.Features = append(kept, entry)
}
