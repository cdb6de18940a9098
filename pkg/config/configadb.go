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
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultAdbPath          = "adb"
	DefaultAdbTimeout       = "10s"
	DefaultCompanionPackage = "com.vimeo.android.videoapp"
)

type Adb struct {
	Path    string `toml:"path" validate:"required"`
	Serial  string `toml:"serial,omitempty"`
	Timeout string `toml:"timeout,omitempty" validate:"omitempty,duration"`
}

type Companion struct {
	Package string `toml:"package" validate:"required,android_package"`
}

func (c *Instance) AdbPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Adb.Path
}

func (c *Instance) AdbSerial() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Adb.Serial
}

func (c *Instance) SetAdbSerial(serial string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Adb.Serial = serial
}

// AdbTimeout returns the per-call adb timeout, falling back to the default
// when unset.
func (c *Instance) AdbTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw := c.vals.Adb.Timeout
	if raw == "" {
		raw = DefaultAdbTimeout
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warn().Str("timeout", raw).Msg("invalid adb timeout, using default")
		d, _ = time.ParseDuration(DefaultAdbTimeout)
	}
	return d
}

func (c *Instance) CompanionPackage() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Companion.Package
}
