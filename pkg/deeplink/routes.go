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
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// URI scheme contract of the companion app. These must stay bit-exact.
const (
	CompanionPackage = "com.vimeo.android.videoapp"
	CompanionWebHost = "vimeo.com"
	BaseURI          = "vimeo://app.vimeo.com"
	StoreURI         = "market://details?id=" + CompanionPackage
	StoreWebURL      = "https://play.google.com/store/apps/details?id=" + CompanionPackage
)

// Fragment prefixes expected for parameterized features, as they appear in the
// uri field of API objects.
const (
	VideoURIPrefix    = "/videos/"
	UserURIPrefix     = "/users/"
	CategoryURIPrefix = "/categories/"
	ChannelURIPrefix  = "/channels/"
	OnDemandURIPrefix = "/ondemand/"
	AlbumsURIPostfix  = "/albums"
	AlbumURIPrefix    = "/album"
)

var (
	ErrUnknownFeature     = errors.New("unknown feature")
	ErrInvalidFragment    = errors.New("invalid uri fragment")
	ErrUnexpectedFragment = errors.New("feature does not take a uri fragment")
)

var albumPattern = regexp.MustCompile(`^` + AlbumURIPrefix + `/[0-9]+$`)

// route describes how a feature's deep link is formed. Exactly one of path or
// valid is set.
type route struct {
	valid    func(string) bool
	path     string
	absolute bool
}

func prefixRule(prefix string) func(string) bool {
	return func(fragment string) bool {
		return strings.HasPrefix(fragment, prefix)
	}
}

var routes = map[Feature]route{
	FeatureVideo:         {valid: prefixRule(VideoURIPrefix)},
	FeatureUser:          {valid: prefixRule(UserURIPrefix)},
	FeatureCategory:      {valid: prefixRule(CategoryURIPrefix)},
	FeatureChannel:       {valid: prefixRule(ChannelURIPrefix)},
	FeatureOnDemandTitle: {valid: prefixRule(OnDemandURIPrefix)},
	FeatureAlbum:         {valid: IsValidAlbumURI},
	FeatureArbitraryURL:  {valid: IsCompanionURL, absolute: true},

	FeatureCategories:           {path: "/categories"},
	FeatureExplore:              {path: "/explore"},
	FeatureFeed:                 {path: "/feed"},
	FeatureMe:                   {path: "/me"},
	FeatureNotifications:        {path: "/notifications"},
	FeatureNotificationSettings: {path: "/settings/notifications"},
	FeatureOffline:              {path: "/offline"},
	FeaturePlaylists:            {path: "/playlists"},
	FeaturePurchases:            {path: "/purchases"},
	FeatureUpgrade:              {path: "/upgrade"},
	FeatureUpload:               {path: "/upload"},
	FeatureVideoManager:         {path: "/manage/videos"},
	FeatureWatchLater:           {path: "/watchlater"},
	FeatureAccount:              {path: "/account"},
	FeatureWatch:                {path: "/watch"},
}

// RequiresFragment reports whether the feature needs a URI fragment from the
// caller rather than using a fixed path.
func (f Feature) RequiresFragment() bool {
	r, ok := routes[f]
	return ok && r.valid != nil
}

// FixedPath returns the fixed path of a fragment-less feature.
func (f Feature) FixedPath() (string, bool) {
	r, ok := routes[f]
	if !ok || r.valid != nil {
		return "", false
	}
	return r.path, true
}

// IsValidAlbumURI accepts an owner's album list ("/me/albums",
// "/users/42/albums") or a single album by numeric id ("/album/42").
func IsValidAlbumURI(fragment string) bool {
	if strings.HasSuffix(fragment, AlbumsURIPostfix) {
		owner := strings.TrimSuffix(fragment, AlbumsURIPostfix)
		return strings.HasPrefix(owner, "/") && len(owner) > 1
	}
	return albumPattern.MatchString(fragment)
}

// IsCompanionURL is a heuristic guard that only lets through URLs that mention
// the companion service's web host.
func IsCompanionURL(url string) bool {
	return strings.Contains(strings.ToLower(url), CompanionWebHost)
}

// ValidateFragment checks a request's fragment against its feature's route
// without building the URI.
func ValidateFragment(feature Feature, fragment string) error {
	r, ok := routes[feature]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFeature, feature)
	}
	if r.valid == nil {
		if fragment != "" {
			return fmt.Errorf("%w: %s", ErrUnexpectedFragment, feature)
		}
		return nil
	}
	if fragment == "" || !r.valid(fragment) {
		return fmt.Errorf("%w for %s: %q", ErrInvalidFragment, feature, fragment)
	}
	return nil
}

// BuildURI validates the fragment and returns the fully-qualified URI for the
// feature. It does not consult capabilities.
func BuildURI(feature Feature, fragment string) (string, error) {
	if err := ValidateFragment(feature, fragment); err != nil {
		return "", err
	}
	r := routes[feature]
	switch {
	case r.absolute:
		return fragment, nil
	case r.valid != nil:
		return BaseURI + fragment, nil
	default:
		return BaseURI + r.path, nil
	}
}
