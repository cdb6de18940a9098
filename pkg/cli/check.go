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
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ZaparooProject/zaparoo-deeplink/pkg/deeplink"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentChecks bounds parallel capability checks. Each check makes
// adb calls to the same device.
const maxConcurrentChecks = 4

// CheckResult is the capability decision for one feature.
type CheckResult struct {
	Gate    deeplink.Gate
	Feature deeplink.Feature
	Outcome deeplink.Outcome
}

// CheckAll runs capability checks for every feature concurrently and returns
// the results in the order given.
func CheckAll(
	ctx context.Context,
	r *deeplink.Resolver,
	env deeplink.HostEnvironment,
	features []deeplink.Feature,
) ([]CheckResult, error) {
	results := make([]CheckResult, len(features))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChecks)
	for i, f := range features {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("checking %s: %w", f, err)
			}
			results[i] = CheckResult{
				Feature: f,
				Gate:    r.Gate(f),
				Outcome: r.Check(ctx, f, env),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printChecks(out io.Writer, results []CheckResult) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FEATURE\tRESULT\tMIN VERSION")
	for _, res := range results {
		minVersion := "-"
		if res.Gate.MinVersion > 0 {
			minVersion = fmt.Sprint(res.Gate.MinVersion)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", res.Feature, res.Outcome, minVersion)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
