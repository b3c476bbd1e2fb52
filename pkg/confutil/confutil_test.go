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

package confutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInt(t *testing.T) {
	assert.Equal(t, 100, Int(nil, 100))
	assert.Equal(t, 0, Int(P(0), 100))
	assert.Equal(t, 5, Int(P(5), 100))
}

func TestIntMin(t *testing.T) {
	assert.Equal(t, 100, IntMin(nil, 1, 100))
	assert.Equal(t, 1, IntMin(P(0), 1, 100))
	assert.Equal(t, 50, IntMin(P(50), 1, 100))
}

func TestUInt32(t *testing.T) {
	assert.Equal(t, uint32(7), UInt32(nil, 7))
	assert.Equal(t, uint32(3), UInt32(P(uint32(3)), 7))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "def", StringOrEmpty(nil, "def"))
	assert.Equal(t, "", StringOrEmpty(P(""), "def"))
	assert.Equal(t, "def", StringNotEmpty(nil, "def"))
	assert.Equal(t, "def", StringNotEmpty(P(""), "def"))
	assert.Equal(t, "set", StringNotEmpty(P("set"), "def"))
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(nil, true))
	assert.False(t, Bool(P(false), true))
}

func TestDurationMin(t *testing.T) {
	assert.Equal(t, 30*time.Second, DurationMin(nil, time.Second, "30s"))
	assert.Equal(t, 5*time.Second, DurationMin(P("5s"), time.Second, "30s"))
	assert.Equal(t, time.Second, DurationMin(P("1ms"), time.Second, "30s"))
	// unparseable values fall back to the default
	assert.Equal(t, 30*time.Second, DurationMin(P("soon"), time.Second, "30s"))
	assert.Equal(t, time.Duration(0), DurationMin(P("0s"), 0, "30s"))
}
