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

// Package deeplink decides whether the companion app can honor a feature deep
// link and dispatches the matching URI to it.
package deeplink

import (
	"fmt"
	"strings"
)

// Feature identifies a screen or content type in the companion app that can
// be opened directly with a deep link.
type Feature int

const (
	FeatureUnknown Feature = iota
	FeatureVideo
	FeatureUser
	FeatureCategory
	FeatureChannel
	FeatureOnDemandTitle
	FeatureAlbum
	FeatureCategories
	FeatureExplore
	FeatureFeed
	FeatureMe
	FeatureNotifications
	FeatureNotificationSettings
	FeatureOffline
	FeaturePlaylists
	FeaturePurchases
	FeatureUpgrade
	FeatureUpload
	FeatureVideoManager
	FeatureWatchLater
	FeatureArbitraryURL
	FeatureAccount
	FeatureWatch
)

var featureNames = map[Feature]string{
	FeatureVideo:                "video",
	FeatureUser:                 "user",
	FeatureCategory:             "category",
	FeatureChannel:              "channel",
	FeatureOnDemandTitle:        "on-demand",
	FeatureAlbum:                "album",
	FeatureCategories:           "categories",
	FeatureExplore:              "explore",
	FeatureFeed:                 "feed",
	FeatureMe:                   "me",
	FeatureNotifications:        "notifications",
	FeatureNotificationSettings: "notification-settings",
	FeatureOffline:              "offline",
	FeaturePlaylists:            "playlists",
	FeaturePurchases:            "purchases",
	FeatureUpgrade:              "upgrade",
	FeatureUpload:               "upload",
	FeatureVideoManager:         "video-manager",
	FeatureWatchLater:           "watch-later",
	FeatureArbitraryURL:         "url",
	FeatureAccount:              "account",
	FeatureWatch:                "watch",
}

// AllFeatures returns every known feature in declaration order.
func AllFeatures() []Feature {
	all := make([]Feature, 0, len(featureNames))
	for f := FeatureVideo; f <= FeatureWatch; f++ {
		all = append(all, f)
	}
	return all
}

// String returns the feature's stable name, as used by the CLI and config.
func (f Feature) String() string {
	if name, ok := featureNames[f]; ok {
		return name
	}
	return fmt.Sprintf("feature(%d)", int(f))
}

// Valid reports whether f is one of the known features.
func (f Feature) Valid() bool {
	_, ok := featureNames[f]
	return ok
}

// ParseFeature maps a feature name back to its Feature. Matching is case
// insensitive and ignores surrounding whitespace.
func ParseFeature(name string) (Feature, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range featureNames {
		if n == name {
			return f, nil
		}
	}
	return FeatureUnknown, fmt.Errorf("%w: %q", ErrUnknownFeature, name)
}

// MarshalText implements encoding.TextMarshaler.
func (f Feature) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFeature, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Feature) UnmarshalText(text []byte) error {
	parsed, err := ParseFeature(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// LinkRequest is a single deep link request. Fragment is empty when absent.
type LinkRequest struct {
	Fragment string
	Feature  Feature
}
