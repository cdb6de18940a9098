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
	"testing"

	"github.com/ZaparooProject/zaparoo-deeplink/pkg/deeplink"
	"github.com/spf13/afero"
	"pgregory.net/rapid"
)

// TestPropertyFeatureGateSurvivesSave verifies any gate set on any feature is
// read back unchanged after a save and reload.
func TestPropertyFeatureGateSurvivesSave(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		feature := rapid.SampledFrom(deeplink.AllFeatures()).Draw(t, "feature")
		version := rapid.IntRange(0, 100000).Draw(t, "version")

		fs := afero.NewMemMapFs()
		cfg, err := NewConfigAt(fs, testCfgPath, BaseDefaults)
		if err != nil {
			t.Fatalf("new config: %v", err)
		}
		cfg.SetFeatureGate(feature, deeplink.MinVersion(version))
		if err := cfg.Save(); err != nil {
			t.Fatalf("save: %v", err)
		}

		reloaded, err := NewConfigAt(fs, testCfgPath, BaseDefaults)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		got, ok := reloaded.FeatureGates()[feature]
		if !ok || got != deeplink.MinVersion(version) {
			t.Fatalf("%s: got %+v, want min version %d", feature, got, version)
		}
	})
}
