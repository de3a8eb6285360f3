/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorToInt(t *testing.T) {
	testCases := []struct {
		input    float64
		expected int
	}{
		{input: -2.00, expected: -2},
		{input: -1.75, expected: -2},
		{input: -1.50, expected: -2},
		{input: -1.25, expected: -2},
		{input: -1.00, expected: -1},
		{input: -0.75, expected: -1},
		{input: -0.50, expected: -1},
		{input: math.Copysign(0, -1), expected: 0},
		{input: +0.00, expected: 0},
		{input: +0.50, expected: 0},
		{input: +0.75, expected: 0},
		{input: +1.00, expected: 1},
		{input: +1.25, expected: 1},
		{input: +1.50, expected: 1},
		{input: +1.75, expected: 1},
		{input: +2.00, expected: 2},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FloorToInt(tc.input), "input %v", tc.input)
		assert.Equal(t, tc.expected, FloorToInt(float32(tc.input)), "float32 input %v", tc.input)
	}

	t.Run("Saturation", func(t *testing.T) {
		assert.Equal(t, math.MaxInt, FloorToInt(math.Inf(1)))
		assert.Equal(t, math.MinInt, FloorToInt(math.Inf(-1)))
		assert.Equal(t, math.MinInt, FloorToInt(math.NaN()))
		assert.Equal(t, math.MaxInt, FloorToInt(1e300))
	})
}

func TestFlooredMod(t *testing.T) {
	assert.Equal(t, 0.25, FlooredMod(2.25, 0.5))
	assert.Equal(t, 0.25, FlooredMod(-0.25, 0.5))
	assert.Equal(t, 0.0, FlooredMod(-1.0, 0.5))
	assert.Equal(t, 0.375, FlooredMod(-1.625, 0.5))
	assert.Equal(t, 0.0, FlooredMod(0.0, 0.5))
}

func TestNearestPhase(t *testing.T) {
	t.Run("Exact Phases", func(t *testing.T) {
		for s := 0; s < 4; s++ {
			assert.Equal(t, s, NearestPhase(float64(s)*0.125, 0, 0.5, 4))
			assert.Equal(t, s, NearestPhase(3.0+float64(s)*0.125, 0, 0.5, 4))
			assert.Equal(t, s, NearestPhase(-3.0+float64(s)*0.125, 0, 0.5, 4))
		}
	})

	t.Run("Nearest", func(t *testing.T) {
		assert.Equal(t, 0, NearestPhase(0.05, 0, 0.5, 4))
		assert.Equal(t, 1, NearestPhase(0.10, 0, 0.5, 4))
		assert.Equal(t, 2, NearestPhase(0.30, 0, 0.5, 4))
		assert.Equal(t, 0, NearestPhase(0.49, 0, 0.5, 4))
	})

	t.Run("Ties Go To The Smaller Phase", func(t *testing.T) {
		assert.Equal(t, 0, NearestPhase(0.0625, 0, 0.5, 4))
		assert.Equal(t, 1, NearestPhase(0.1875, 0, 0.5, 4))
		assert.Equal(t, 2, NearestPhase(0.3125, 0, 0.5, 4))
		// halfway between phase 3 and the next step's phase 0
		assert.Equal(t, 0, NearestPhase(0.4375, 0, 0.5, 4))
	})

	t.Run("Rounding Error", func(t *testing.T) {
		// 0.1 and 0.3 are not representable, so each offset lands a few
		// ULPs away from the phase or midpoint it was computed for.
		lower, period := 0.1, 0.3
		for s := 0; s < 3; s++ {
			x := lower + float64(s)*(period/3) + 7*period
			assert.Equal(t, s, NearestPhase(x-lower, x+lower, period, 3), "phase %d", s)
		}
		mid := lower + 0.5*(period/3) + 7*period
		assert.Equal(t, 0, NearestPhase(mid-lower, mid+lower, period, 3))
		wrap := lower + 2.5*(period/3) + 7*period
		assert.Equal(t, 0, NearestPhase(wrap-lower, wrap+lower, period, 3))
	})

	t.Run("Degenerate", func(t *testing.T) {
		assert.Equal(t, 0, NearestPhase(0.3, 0, 0.5, 1))
		assert.Equal(t, 0, NearestPhase(0.3, 0, math.Inf(1), 4))
		assert.Equal(t, 0, NearestPhase(math.NaN(), 0, 0.5, 4))
		assert.Equal(t, 0, NearestPhase(math.Inf(1), 0, 0.5, 4))
	})
}

func TestSnap(t *testing.T) {
	t.Run("Near Integers", func(t *testing.T) {
		assert.Equal(t, 5.0, Snap(math.Nextafter(5, 0), 5.0))
		assert.Equal(t, 5.0, Snap(math.Nextafter(5, 6), 5.0))
		assert.Equal(t, -3.0, Snap(-3+1e-15, 0.0))
		assert.Equal(t, float32(7), Snap(math.Nextafter32(7, 0), float32(7)))
	})

	t.Run("Scale Widens The Tolerance", func(t *testing.T) {
		assert.Equal(t, 2+1e-13, Snap(2+1e-13, 0.0))
		assert.Equal(t, 2.0, Snap(2+1e-13, 1e5))
	})

	t.Run("Away From Integers", func(t *testing.T) {
		assert.Equal(t, 4.5, Snap(4.5, 4.5))
		assert.Equal(t, 0.999, Snap(0.999, 1.0))
		assert.Equal(t, float32(0.25), Snap(float32(0.25), float32(1)))
	})

	t.Run("Non Finite", func(t *testing.T) {
		assert.True(t, math.IsNaN(Snap(math.NaN(), 1.0)))
		assert.True(t, math.IsInf(Snap(math.Inf(1), 1.0), 1))
	})
}

func TestBoolToInt(t *testing.T) {
	assert.Equal(t, 1, BoolToInt(true))
	assert.Equal(t, 0, BoolToInt(false))
}
