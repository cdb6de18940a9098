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

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockHostEnvironment is a testify mock for deeplink.HostEnvironment.
type MockHostEnvironment struct {
	mock.Mock
}

// NewMockHostEnvironment creates a new MockHostEnvironment instance.
func NewMockHostEnvironment() *MockHostEnvironment {
	return &MockHostEnvironment{}
}

// IsCompanionAppInstalled reports the configured install state.
func (m *MockHostEnvironment) IsCompanionAppInstalled(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// InstalledVersion returns the configured version code.
func (m *MockHostEnvironment) InstalledVersion(ctx context.Context) int {
	args := m.Called(ctx)
	return args.Int(0)
}

// SetupInstalled configures the mock as an installed app at version.
func (m *MockHostEnvironment) SetupInstalled(version int) {
	m.On("IsCompanionAppInstalled", mock.Anything).Return(true)
	m.On("InstalledVersion", mock.Anything).Return(version)
}

// SetupNotInstalled configures the mock as a device without the app.
func (m *MockHostEnvironment) SetupNotInstalled() {
	m.On("IsCompanionAppInstalled", mock.Anything).Return(false)
	m.On("InstalledVersion", mock.Anything).Return(0)
}

// MockActivator is a testify mock for deeplink.Activator. Launched URIs are
// recorded for verification.
type MockActivator struct {
	mock.Mock
	launched []string
}

// NewMockActivator creates a new MockActivator instance.
func NewMockActivator() *MockActivator {
	return &MockActivator{
		launched: make([]string, 0),
	}
}

// Resolve reports the configured resolvability of uri.
func (m *MockActivator) Resolve(ctx context.Context, uri string) bool {
	args := m.Called(ctx, uri)
	return args.Bool(0)
}

// Launch records uri and returns the configured error.
func (m *MockActivator) Launch(ctx context.Context, uri string) error {
	args := m.Called(ctx, uri)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	err := args.Error(0)
	if err == nil {
		m.launched = append(m.launched, uri)
	}
	return err
}

// LaunchPackage returns the configured error.
func (m *MockActivator) LaunchPackage(ctx context.Context, pkg string) error {
	args := m.Called(ctx, pkg)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return args.Error(0)
}

// Launched returns every URI launched successfully, in order.
func (m *MockActivator) Launched() []string {
	return m.launched
}

// SetupOpenAll configures the mock to resolve and launch any URI.
func (m *MockActivator) SetupOpenAll() {
	m.On("Resolve", mock.Anything, mock.Anything).Return(true)
	m.On("Launch", mock.Anything, mock.Anything).Return(nil)
	m.On("LaunchPackage", mock.Anything, mock.Anything).Return(nil)
}
