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

// Outcome is the detailed result of a capability check or dispatch. Only
// OutcomeOpened and OutcomeSupported count as success for the boolean entry
// points.
type Outcome int

const (
	OutcomeOpened Outcome = iota
	OutcomeSupported
	OutcomeInvalidFragment
	OutcomeAppNotInstalled
	OutcomeUnsupported
	OutcomeResolutionFailed
	OutcomeLaunchFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOpened:
		return "opened"
	case OutcomeSupported:
		return "supported"
	case OutcomeInvalidFragment:
		return "invalid_fragment"
	case OutcomeAppNotInstalled:
		return "app_not_installed"
	case OutcomeUnsupported:
		return "unsupported"
	case OutcomeResolutionFailed:
		return "resolution_failed"
	case OutcomeLaunchFailed:
		return "launch_failed"
	default:
		return "unknown"
	}
}

// OK reports whether the outcome collapses to true.
func (o Outcome) OK() bool {
	return o == OutcomeOpened || o == OutcomeSupported
}
