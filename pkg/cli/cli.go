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
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-deeplink/pkg/config"
	"github.com/ZaparooProject/zaparoo-deeplink/pkg/deeplink"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoAction    = errors.New("no action given")
	ErrNotOpened   = errors.New("deep link not opened")
	ErrUnhandled   = errors.New("feature not supported by the installed app")
	ErrNotStarted  = errors.New("companion app not started")
	ErrInvalidGate = errors.New("invalid gate, want <feature>=<version|always>")
)

type Flags struct {
	Open    *string
	URI     *string
	Check   *string
	Config  *string
	Serial  *string
	Debug   *string
	Store   *bool
	Launch  *bool
	Status  *bool
	Version *bool
	Gates   gateList
}

// gateOverride is one parsed -gate value.
type gateOverride struct {
	gate    deeplink.Gate
	feature deeplink.Feature
}

// gateList collects repeated -gate flags.
type gateList []gateOverride

func (g *gateList) String() string {
	parts := make([]string, 0, len(*g))
	for _, o := range *g {
		parts = append(parts, fmt.Sprintf("%s=%d", o.feature, o.gate.MinVersion))
	}
	return strings.Join(parts, ",")
}

func (g *gateList) Set(value string) error {
	name, rawVersion, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidGate, value)
	}
	feature, err := parseFeature(name)
	if err != nil {
		return err
	}

	rawVersion = strings.TrimSpace(rawVersion)
	if strings.EqualFold(rawVersion, "always") {
		*g = append(*g, gateOverride{feature: feature, gate: deeplink.Always()})
		return nil
	}
	v, err := strconv.Atoi(rawVersion)
	if err != nil || v < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidGate, value)
	}
	*g = append(*g, gateOverride{feature: feature, gate: deeplink.MinVersion(v)})
	return nil
}

// Settings is the part of the config the CLI can change and persist.
type Settings interface {
	SetAdbSerial(serial string)
	SetDebugLogging(enabled bool)
	SetFeatureGate(feature deeplink.Feature, gate deeplink.Gate)
	Save() error
}

// SetupFlags defines all CLI flags on fs.
func SetupFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{
		Open: fs.String(
			"open",
			"",
			"open a feature deep link in the companion app",
		),
		URI: fs.String(
			"uri",
			"",
			"uri fragment for -open, e.g. /videos/149058362",
		),
		Check: fs.String(
			"check",
			"",
			"report whether a feature, or \"all\", can be opened",
		),
		Config: fs.String(
			"config",
			"",
			"path to config file",
		),
		Serial: fs.String(
			"serial",
			"",
			"save the adb device serial to the config",
		),
		Debug: fs.String(
			"debug",
			"",
			"save debug logging on or off (true/false) to the config",
		),
		Store: fs.Bool(
			"store",
			false,
			"open the companion app's store listing",
		),
		Launch: fs.Bool(
			"launch",
			false,
			"launch the companion app to its default screen",
		),
		Status: fs.Bool(
			"status",
			false,
			"print install state, version and every feature's support",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
	fs.Var(
		&f.Gates,
		"gate",
		"save a gate override to the config, e.g. channel=74 or feed=always (repeatable)",
	)
	return f
}

// Pre actions any flags that don't need a device or config. It returns true
// when the program should exit.
func (f *Flags) Pre(out io.Writer) bool {
	if *f.Version {
		_, _ = fmt.Fprintf(out, "Zaparoo Deeplink v%s\n", config.AppVersion)
		return true
	}
	return false
}

// Configure applies the settings flags to cfg and saves it when anything
// changed. It reports whether the config was written.
func (f *Flags) Configure(cfg Settings, out io.Writer) (bool, error) {
	changed := false

	if *f.Serial != "" {
		cfg.SetAdbSerial(*f.Serial)
		changed = true
	}
	if *f.Debug != "" {
		enabled, err := strconv.ParseBool(*f.Debug)
		if err != nil {
			return false, fmt.Errorf("invalid -debug value %q: %w", *f.Debug, err)
		}
		cfg.SetDebugLogging(enabled)
		changed = true
	}
	for _, o := range f.Gates {
		cfg.SetFeatureGate(o.feature, o.gate)
		changed = true
	}

	if !changed {
		return false, nil
	}
	if err := cfg.Save(); err != nil {
		return false, fmt.Errorf("failed to save config: %w", err)
	}
	log.Info().Msg("config updated from flags")
	_, _ = fmt.Fprintln(out, "config saved")
	return true, nil
}

// HasAction reports whether any device action flag was given.
func (f *Flags) HasAction() bool {
	return *f.Open != "" || *f.Check != "" || *f.Status || *f.Store || *f.Launch
}
