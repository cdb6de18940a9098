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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/zaparoo-deeplink/pkg/cli"
	"github.com/ZaparooProject/zaparoo-deeplink/pkg/config"
	"github.com/ZaparooProject/zaparoo-deeplink/pkg/deeplink"
	"github.com/ZaparooProject/zaparoo-deeplink/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-deeplink/pkg/helpers/syncutil"
	"github.com/ZaparooProject/zaparoo-deeplink/pkg/platforms/android"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(flag.CommandLine)
	verbose := flag.Bool(
		"verbose",
		false,
		"also write logs to stderr",
	)
	flag.Parse()

	if flags.Pre(os.Stdout) {
		return nil
	}

	cfg, err := loadConfig(*flags.Config)
	if err != nil {
		return err
	}

	var logWriters []io.Writer
	if *verbose {
		logWriters = []io.Writer{os.Stderr}
	}
	if err := helpers.InitLogging(helpers.LogDir(), cfg.DebugLogging(), logWriters); err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}
	log.Info().Msgf("version: %s", config.AppVersion)
	log.Info().Msgf("config path: %s", cfg.Path())
	if syncutil.DeadlockEnabled {
		log.Warn().Msg("deadlock detection enabled")
	}

	saved, err := flags.Configure(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if saved && !flags.HasAction() {
		return nil
	}

	host := android.NewHost(android.Options{
		AdbPath: cfg.AdbPath(),
		Serial:  cfg.AdbSerial(),
		Package: cfg.CompanionPackage(),
		Timeout: cfg.AdbTimeout(),
	})
	dispatcher := deeplink.NewDispatcher(
		host,
		host,
		deeplink.WithResolver(deeplink.NewResolver(deeplink.WithGates(cfg.FeatureGates()))),
		deeplink.WithPackage(cfg.CompanionPackage()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return flags.Run(ctx, &cli.Runner{
		Out:        os.Stdout,
		Env:        host,
		Dispatcher: dispatcher,
		Package:    cfg.CompanionPackage(),
	})
}

func loadConfig(path string) (*config.Instance, error) {
	fs := afero.NewOsFs()
	if path != "" {
		cfg, err := config.NewConfigAt(fs, path, config.BaseDefaults)
		if err != nil {
			return nil, fmt.Errorf("error loading config %s: %w", path, err)
		}
		return cfg, nil
	}
	cfg, err := config.NewConfig(fs, helpers.ConfigDir(), config.BaseDefaults)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return cfg, nil
}
