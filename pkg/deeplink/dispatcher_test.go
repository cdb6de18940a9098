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
	"testing"
	"time"

	"github.com/ZaparooProject/zaparoo-deeplink/pkg/testing/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOpenVideoWhenNotInstalled(t *testing.T) {
	t.Parallel()

	env := mocks.NewMockHostEnvironment()
	env.SetupNotInstalled()
	act := mocks.NewMockActivator()

	d := NewDispatcher(env, act)

	assert.False(t, d.Open(context.Background(), FeatureVideo, "/videos/149058362"))
	act.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
	act.AssertNotCalled(t, "Launch", mock.Anything, mock.Anything)
}

func TestOpenVideoOnSupportedVersion(t *testing.T) {
	t.Parallel()

	env := mocks.NewMockHostEnvironment()
	env.SetupInstalled(48)
	act := mocks.NewMockActivator()
	act.SetupOpenAll()

	d := NewDispatcher(env, act)

	assert.True(t, d.CanHandle(context.Background(), FeatureVideo))
	assert.True(t, d.Open(context.Background(), FeatureVideo, "/videos/149058362"))
	assert.Equal(t, []string{"vimeo://app.vimeo.com/videos/149058362"}, act.Launched())
	act.AssertCalled(t, "Resolve", mock.Anything, "vimeo://app.vimeo.com/videos/149058362")
}

func TestOpenCategoryWithoutPrefix(t *testing.T) {
	t.Parallel()

	env := mocks.NewMockHostEnvironment()
	act := mocks.NewMockActivator()

	d := NewDispatcher(env, act)
	res := d.Dispatch(context.Background(), LinkRequest{Feature: FeatureCategory, Fragment: "art"})

	assert.False(t, res.OK())
	assert.Equal(t, OutcomeInvalidFragment, res.Outcome)
	assert.Empty(t, res.URI)
	env.AssertNotCalled(t, "IsCompanionAppInstalled", mock.Anything)
	act.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestDispatchUnknownFeature(t *testing.T) {
	t.Parallel()

	env := mocks.NewMockHostEnvironment()
	act := mocks.NewMockActivator()
	d := NewDispatcher(env, act)

	for _, f := range []Feature{FeatureUnknown, Feature(99)} {
		res := d.Dispatch(context.Background(), LinkRequest{Feature: f, Fragment: "/videos/1"})

		assert.Equal(t, OutcomeUnsupported, res.Outcome, f.String())
		assert.Equal(t, d.Resolver().Check(context.Background(), f, env), res.Outcome, f.String())
		assert.Empty(t, res.URI)
	}
	env.AssertNotCalled(t, "IsCompanionAppInstalled", mock.Anything)
	act.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestDispatchOutcomes(t *testing.T) {
	t.Parallel()

	launchErr := errors.New("activity not started")

	tests := []struct {
		setupAct func(*mocks.MockActivator)
		name     string
		req      LinkRequest
		version  int
		expected Outcome
	}{
		{
			name:     "opened",
			req:      LinkRequest{Feature: FeatureFeed},
			version:  3000,
			setupAct: (*mocks.MockActivator).SetupOpenAll,
			expected: OutcomeOpened,
		},
		{
			name:     "version too old",
			req:      LinkRequest{Feature: FeatureUser, Fragment: "/users/1"},
			version:  48,
			setupAct: func(*mocks.MockActivator) {},
			expected: OutcomeUnsupported,
		},
		{
			name:    "unresolvable uri",
			req:     LinkRequest{Feature: FeatureMe},
			version: 3000,
			setupAct: func(a *mocks.MockActivator) {
				a.On("Resolve", mock.Anything, "vimeo://app.vimeo.com/me").Return(false)
			},
			expected: OutcomeResolutionFailed,
		},
		{
			name:    "launch failed",
			req:     LinkRequest{Feature: FeatureAlbum, Fragment: "/me/albums"},
			version: 3000,
			setupAct: func(a *mocks.MockActivator) {
				a.On("Resolve", mock.Anything, mock.Anything).Return(true)
				a.On("Launch", mock.Anything, "vimeo://app.vimeo.com/me/albums").Return(launchErr)
			},
			expected: OutcomeLaunchFailed,
		},
		{
			name:     "album without owner",
			req:      LinkRequest{Feature: FeatureAlbum, Fragment: "/albums"},
			version:  3000,
			setupAct: func(*mocks.MockActivator) {},
			expected: OutcomeInvalidFragment,
		},
		{
			name:     "arbitrary url opened verbatim",
			req:      LinkRequest{Feature: FeatureArbitraryURL, Fragment: "https://vimeo.com/149058362"},
			version:  234,
			setupAct: (*mocks.MockActivator).SetupOpenAll,
			expected: OutcomeOpened,
		},
		{
			name:     "arbitrary url on old version",
			req:      LinkRequest{Feature: FeatureArbitraryURL, Fragment: "https://vimeo.com/149058362"},
			version:  233,
			setupAct: func(*mocks.MockActivator) {},
			expected: OutcomeUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := mocks.NewMockHostEnvironment()
			env.SetupInstalled(tt.version)
			act := mocks.NewMockActivator()
			tt.setupAct(act)

			res := NewDispatcher(env, act).Dispatch(context.Background(), tt.req)

			assert.Equal(t, tt.expected, res.Outcome)
			assert.Equal(t, tt.expected == OutcomeOpened, res.OK())
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.req, res.Request)
			act.AssertExpectations(t)
		})
	}
}

func TestDispatchMeasuresWithClock(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	env := mocks.NewMockHostEnvironment()
	env.SetupInstalled(3000)
	act := mocks.NewMockActivator()
	act.On("Resolve", mock.Anything, mock.Anything).Return(true)
	act.On("Launch", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { clock.Advance(250 * time.Millisecond) }).
		Return(nil)

	res := NewDispatcher(env, act, WithClock(clock)).
		Dispatch(context.Background(), LinkRequest{Feature: FeatureUpload})

	require.True(t, res.OK())
	assert.Equal(t, 250*time.Millisecond, res.Duration)
	assert.Equal(t, "vimeo://app.vimeo.com/upload", res.URI)
}

func TestDispatchWithCustomResolver(t *testing.T) {
	t.Parallel()

	env := mocks.NewMockHostEnvironment()
	env.SetupInstalled(100)
	act := mocks.NewMockActivator()

	r := NewResolver(WithGate(FeatureUpgrade, MinVersion(2260)))
	d := NewDispatcher(env, act, WithResolver(r))

	assert.Same(t, r, d.Resolver())
	assert.False(t, d.Open(context.Background(), FeatureUpgrade, ""))
	act.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestOpenStore(t *testing.T) {
	t.Parallel()

	t.Run("store app available", func(t *testing.T) {
		t.Parallel()

		act := mocks.NewMockActivator()
		act.On("Resolve", mock.Anything, StoreURI).Return(true)
		act.On("Launch", mock.Anything, StoreURI).Return(nil)

		d := NewDispatcher(mocks.NewMockHostEnvironment(), act)

		assert.True(t, d.OpenStore(context.Background()))
		assert.Equal(t, []string{StoreURI}, act.Launched())
		act.AssertNotCalled(t, "Resolve", mock.Anything, StoreWebURL)
	})

	t.Run("falls back to website", func(t *testing.T) {
		t.Parallel()

		act := mocks.NewMockActivator()
		act.On("Resolve", mock.Anything, StoreURI).Return(false)
		act.On("Resolve", mock.Anything, StoreWebURL).Return(true)
		act.On("Launch", mock.Anything, StoreWebURL).Return(nil)

		d := NewDispatcher(mocks.NewMockHostEnvironment(), act)

		assert.True(t, d.OpenStore(context.Background()))
		act.AssertCalled(t, "Resolve", mock.Anything, StoreURI)
		act.AssertCalled(t, "Resolve", mock.Anything, StoreWebURL)
		assert.Equal(t, []string{StoreWebURL}, act.Launched())
	})

	t.Run("falls back when store launch fails", func(t *testing.T) {
		t.Parallel()

		act := mocks.NewMockActivator()
		act.On("Resolve", mock.Anything, mock.Anything).Return(true)
		act.On("Launch", mock.Anything, StoreURI).Return(errors.New("boom"))
		act.On("Launch", mock.Anything, StoreWebURL).Return(nil)

		d := NewDispatcher(mocks.NewMockHostEnvironment(), act)

		assert.True(t, d.OpenStore(context.Background()))
		assert.Equal(t, []string{StoreWebURL}, act.Launched())
	})

	t.Run("nothing can open the store", func(t *testing.T) {
		t.Parallel()

		act := mocks.NewMockActivator()
		act.On("Resolve", mock.Anything, mock.Anything).Return(false)

		d := NewDispatcher(mocks.NewMockHostEnvironment(), act)

		assert.False(t, d.OpenStore(context.Background()))
		act.AssertNumberOfCalls(t, "Resolve", 2)
	})
}

func TestLaunchApp(t *testing.T) {
	t.Parallel()

	t.Run("not installed", func(t *testing.T) {
		t.Parallel()

		env := mocks.NewMockHostEnvironment()
		env.SetupNotInstalled()
		act := mocks.NewMockActivator()

		assert.False(t, NewDispatcher(env, act).LaunchApp(context.Background()))
		act.AssertNotCalled(t, "LaunchPackage", mock.Anything, mock.Anything)
	})

	t.Run("installed", func(t *testing.T) {
		t.Parallel()

		env := mocks.NewMockHostEnvironment()
		env.SetupInstalled(12)
		act := mocks.NewMockActivator()
		act.On("LaunchPackage", mock.Anything, CompanionPackage).Return(nil)

		assert.True(t, NewDispatcher(env, act).LaunchApp(context.Background()))
		act.AssertExpectations(t)
	})

	t.Run("launch fails", func(t *testing.T) {
		t.Parallel()

		env := mocks.NewMockHostEnvironment()
		env.SetupInstalled(12)
		act := mocks.NewMockActivator()
		act.On("LaunchPackage", mock.Anything, CompanionPackage).Return(errors.New("no launcher activity"))

		assert.False(t, NewDispatcher(env, act).LaunchApp(context.Background()))
	})

	t.Run("custom package", func(t *testing.T) {
		t.Parallel()

		env := mocks.NewMockHostEnvironment()
		env.SetupInstalled(12)
		act := mocks.NewMockActivator()
		act.On("LaunchPackage", mock.Anything, "com.vimeo.android.videoapp.beta").Return(nil)

		d := NewDispatcher(env, act, WithPackage("com.vimeo.android.videoapp.beta"))
		assert.True(t, d.LaunchApp(context.Background()))
		act.AssertExpectations(t)
	})
}
