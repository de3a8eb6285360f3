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
	"unsafe"

	"golang.org/x/exp/constraints"
)

// snapULPs is how many units in the last place a computed value may be away
// from an integer and still be taken as that integer.
const snapULPs = 16

// FloorToInt rounds v toward negative infinity and returns it as an int.
// A plain int conversion truncates toward zero, so -1.25 would become -1
// instead of -2. Values beyond the int range saturate, NaN maps to math.MinInt.
func FloorToInt[T constraints.Float](v T) int {
	f := math.Floor(float64(v))
	switch {
	case math.IsNaN(f):
		return math.MinInt
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

// FlooredMod returns v modulo period with the sign of period, i.e. a value in
// [0, period) for a positive period.
func FlooredMod[T constraints.Float](v, period T) T {
	r := T(math.Mod(float64(v), float64(period)))
	if r < 0 {
		r += period
	}
	if r >= period {
		r = 0
	}
	return r
}

// Epsilon returns the distance from 1 to the next larger value of type T.
func Epsilon[T constraints.Float]() float64 {
	var v T
	if unsafe.Sizeof(v) == 4 {
		return 0x1p-23
	}
	return 0x1p-52
}

// Snap returns the integer nearest to v when v is within a few units in the
// last place of it, and v otherwise. The tolerance is measured on the larger of
// |v| and |scale|, where scale is the size, in the units of v, of the operands
// v was computed from. A grid point computed as lower + i*step and mapped back
// with (x - lower)/step lands next to i rather than on it, and Snap puts it
// back.
func Snap[T constraints.Float](v, scale T) T {
	r := math.Round(float64(v))
	tol := snapULPs * Epsilon[T]() * max(1, math.Abs(float64(v)), math.Abs(float64(scale)))
	if math.Abs(float64(v)-r) <= tol {
		return T(r)
	}
	return v
}

// NearestPhase returns which of n phases, evenly spaced by period/n inside
// [0, period), lies closest to offset taken modulo period.
// Ties go to the smaller phase index, also between phase n-1 and the
// wrapped-around phase 0. magnitude is the size of the operands offset was
// computed from; offsets within rounding error of a phase, or of a midpoint
// between two phases, count as on it.
func NearestPhase[T constraints.Float](offset, magnitude, period T, n int) int {
	if n <= 1 || !(period > 0) || math.IsInf(float64(period), 0) ||
		math.IsNaN(float64(offset)) || math.IsInf(float64(offset), 0) {
		return 0
	}
	substep := period / T(n)
	// counted in half substeps, so that midpoints snap like phases do
	halves := Snap(2*FlooredMod(offset, period)/substep, 2*magnitude/substep)
	q := float64(halves) / 2

	lo := int(math.Floor(q))
	if lo >= n {
		return 0
	}
	hi := (lo + 1) % n

	frac := q - float64(lo)
	switch {
	case frac < 0.5:
		return lo
	case frac > 0.5:
		return hi
	default:
		return min(lo, hi)
	}
}

// BoolToInt returns 1 for true and 0 for false.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
