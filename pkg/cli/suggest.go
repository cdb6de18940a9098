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
	"fmt"
	"strings"

	"github.com/ZaparooProject/zaparoo-deeplink/pkg/deeplink"
	"github.com/hbollon/go-edlib"
)

// minSuggestSimilarity is the Jaro-Winkler score a feature name must reach
// to be offered as a correction.
const minSuggestSimilarity = 0.8

// SuggestFeature returns the feature whose name is closest to name, if any
// is close enough.
func SuggestFeature(name string) (deeplink.Feature, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	best := deeplink.FeatureUnknown
	var bestScore float32
	for _, f := range deeplink.AllFeatures() {
		score := edlib.JaroWinklerSimilarity(query, f.String())
		if score > bestScore {
			best, bestScore = f, score
		}
	}
	if bestScore < minSuggestSimilarity {
		return deeplink.FeatureUnknown, false
	}
	return best, true
}

// parseFeature is deeplink.ParseFeature with a correction hint on failure.
func parseFeature(name string) (deeplink.Feature, error) {
	f, err := deeplink.ParseFeature(name)
	if err == nil {
		return f, nil
	}
	if hint, ok := SuggestFeature(name); ok {
		return f, fmt.Errorf("%w (did you mean %q?)", err, hint.String())
	}
	return f, err
}
