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

package android

import (
	"bufio"
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
)

const packagePrefix = "package:"

// parsePackagePath reports whether `pm path` printed an installed APK path.
func parsePackagePath(out []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if strings.HasPrefix(strings.TrimSpace(scanner.Text()), packagePrefix) {
			return true
		}
	}
	return false
}

// parseVersionCode returns the first versionCode from `dumpsys package`
// output, or 0 when there is none. A code too large for an int saturates to
// math.MaxInt so it never reads as the debug sentinel.
func parseVersionCode(out []byte) int {
	m := versionCodeRe.FindSubmatch(out)
	if m == nil {
		return 0
	}
	v, err := strconv.Atoi(string(m[1]))
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	if err != nil {
		return 0
	}
	return v
}

// parseResolvedActivity returns the component printed by
// `cmd package resolve-activity --brief`, the last non-empty line when it
// has the form pkg/activity.
func parseResolvedActivity(out []byte) (string, bool) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" || strings.ContainsAny(last, " \t") {
		return "", false
	}
	pkg, activity, ok := strings.Cut(last, "/")
	if !ok || pkg == "" || activity == "" {
		return "", false
	}
	return last, true
}

// startFailed reports whether `am start` or `monkey` printed a failure. Both
// exit 0 in many of these cases.
func startFailed(out []byte) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "Error") ||
			strings.Contains(line, "Exception") ||
			strings.Contains(line, "monkey aborted") {
			return line, true
		}
	}
	return "", false
}

// shellQuote quotes s for the device shell that adb passes arguments to.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
