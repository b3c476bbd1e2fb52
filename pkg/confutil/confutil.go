/*
 * Copyright © 2025 Anticounterfeit Project contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package confutil resolves pointer-valued configuration fields against
// defaults and minimums, so config structs can distinguish "unset" from
// "explicitly zero".
package confutil

import "time"

func P[T any](v T) *T {
	return &v
}

func Int(iVal *int, def int) int {
	if iVal == nil {
		return def
	}
	return *iVal
}

func IntMin(iVal *int, min int, def int) int {
	v := Int(iVal, def)
	if v < min {
		return min
	}
	return v
}

func UInt32(iVal *uint32, def uint32) uint32 {
	if iVal == nil {
		return def
	}
	return *iVal
}

func StringOrEmpty(sVal *string, def string) string {
	if sVal == nil {
		return def
	}
	return *sVal
}

func StringNotEmpty(sVal *string, def string) string {
	if sVal == nil || *sVal == "" {
		return def
	}
	return *sVal
}

func Bool(bVal *bool, def bool) bool {
	if bVal == nil {
		return def
	}
	return *bVal
}

// DurationMin parses a Go duration string, falling back to the default when
// unset or unparseable, and clamping to the supplied minimum.
func DurationMin(sVal *string, min time.Duration, def string) time.Duration {
	dVal, _ := time.ParseDuration(def)
	if sVal != nil {
		if parsed, err := time.ParseDuration(*sVal); err == nil {
			dVal = parsed
		}
	}
	if dVal < min {
		return min
	}
	return dVal
}
