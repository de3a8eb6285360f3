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

// Package sampledfunction precomputes a function of one real variable on a
// regular grid, together with phase-shifted copies of that grid
// ("subsamples"), so that an expensive function can be looked up by step
// index and phase instead of being evaluated again.
//
// A table covers [Lower(), Upper()) with Size() steps of StepSize() each.
// Subsample s holds the function at Lower() + s*SubstepSize() + i*StepSize()
// for every step i. Tables are built once and never change afterwards, so a
// table can be shared by concurrent readers without locking.
package sampledfunction

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"

	"github.com/knoepfel/icarusalg/internal"
)

// SampledFunction is an immutable table of function samples on a regular
// grid and its subsample phases.
type SampledFunction[T constraints.Float] struct {
	lower       T
	upper       T
	stepSize    T
	nSamples    int
	nSubsamples int
	// samples holds nSubsamples rows of nSamples values each, subsample-major.
	samples []T
}

// SampledFunction64 is a table of double precision samples.
type SampledFunction64 = SampledFunction[float64]

// New samples f on nSamples regular steps covering [min, max), for each of
// the subsample phases set by WithSubsamples (one by default).
// f is called exactly nSamples times per phase, phase by phase, in order of
// increasing step.
func New[T constraints.Float](f func(T) T, min, max T, nSamples int, opts ...Option) (*SampledFunction[T], error) {
	if f == nil {
		return nil, ErrNilFunction
	}
	if !isFinite(min) || !isFinite(max) || !(max > min) {
		return nil, fmt.Errorf("%w: [%v, %v)", ErrInvalidRange, min, max)
	}
	if nSamples < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleCount, nSamples)
	}
	o := applyOptions(opts)
	if o.nSubsamples < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSubsampleCount, o.nSubsamples)
	}

	sf := &SampledFunction[T]{
		lower:       min,
		upper:       max,
		stepSize:    (max - min) / T(nSamples),
		nSamples:    nSamples,
		nSubsamples: o.nSubsamples,
		samples:     make([]T, nSamples*o.nSubsamples),
	}
	sf.fill(f, 0)
	return sf, nil
}

// NewUntil samples f from min with steps of stepSize, growing the range until
// stop reports true, and then fills the subsample phases set by
// WithSubsamples for the same number of steps.
//
// The range is decided on the first phase only. Step i, starting at
// x = min + i*stepSize, is kept only if stop(x', f(x')) is false for the
// start x' of the following step; the first step for which stop fires is
// left out together with that lookahead evaluation. The predicate is not
// consulted while the range kept so far, [min, x), is shorter than the extent
// given by WithAtLeast, so a range ended by stop spans at least that extent.
//
// A predicate that never fires makes growth unbounded unless a cap is set
// with WithMaxSamples.
func NewUntil[T constraints.Float](f func(T) T, min, stepSize T, stop func(x, y T) bool, opts ...Option) (*SampledFunction[T], error) {
	if f == nil {
		return nil, ErrNilFunction
	}
	if stop == nil {
		return nil, ErrNilPredicate
	}
	if !isFinite(min) {
		return nil, fmt.Errorf("%w: lower bound %v", ErrInvalidRange, min)
	}
	if !isFinite(stepSize) || !(stepSize > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStepSize, stepSize)
	}
	o := applyOptions(opts)
	if o.nSubsamples < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSubsampleCount, o.nSubsamples)
	}
	if math.IsNaN(o.atLeast) || o.atLeast < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAtLeast, o.atLeast)
	}

	sf := &SampledFunction[T]{
		lower:       min,
		stepSize:    stepSize,
		nSubsamples: o.nSubsamples,
	}

	atLeast := T(o.atLeast)
	var phase0 []T
	pending := f(min)
	for i := 1; ; i++ {
		x := sf.Position(i, 0)
		y := f(x)
		if sf.Position(i-1, 0)-min >= atLeast && stop(x, y) {
			break
		}
		if o.maxSamples > 0 && len(phase0) == o.maxSamples {
			return nil, fmt.Errorf("%w: %d samples", ErrRangeUnbounded, o.maxSamples)
		}
		phase0 = append(phase0, pending)
		pending = y
	}

	sf.nSamples = len(phase0)
	sf.upper = min + T(sf.nSamples)*stepSize
	sf.samples = make([]T, sf.nSamples*sf.nSubsamples)
	copy(sf.samples, phase0)
	sf.fill(f, 1)
	return sf, nil
}

// newFromInternalStates builds a table around already computed samples.
func newFromInternalStates[T constraints.Float](lower, upper, stepSize T, nSamples, nSubsamples int, samples []T) *SampledFunction[T] {
	return &SampledFunction[T]{
		lower:       lower,
		upper:       upper,
		stepSize:    stepSize,
		nSamples:    nSamples,
		nSubsamples: nSubsamples,
		samples:     samples,
	}
}

// fill evaluates f on every grid point of the subsamples from firstSubsample on.
func (sf *SampledFunction[T]) fill(f func(T) T, firstSubsample int) {
	for s := firstSubsample; s < sf.nSubsamples; s++ {
		row := sf.row(s)
		for i := range row {
			row[i] = f(sf.Position(i, s))
		}
	}
}

func (sf *SampledFunction[T]) row(s int) []T {
	start := s * sf.nSamples
	end := start + sf.nSamples
	return sf.samples[start:end:end]
}

// Size returns the number of steps in the sampled range.
func (sf *SampledFunction[T]) Size() int {
	return sf.nSamples
}

// NSubsamples returns the number of subsample phases.
func (sf *SampledFunction[T]) NSubsamples() int {
	return sf.nSubsamples
}

// Lower returns the start of the sampled range.
func (sf *SampledFunction[T]) Lower() T {
	return sf.lower
}

// Upper returns the end of the sampled range, which is not part of it.
func (sf *SampledFunction[T]) Upper() T {
	return sf.upper
}

// RangeSize returns Upper() - Lower().
func (sf *SampledFunction[T]) RangeSize() T {
	return sf.upper - sf.lower
}

// StepSize returns the distance between consecutive samples of one phase.
func (sf *SampledFunction[T]) StepSize() T {
	return sf.stepSize
}

// SubstepSize returns the distance between consecutive subsample phases.
func (sf *SampledFunction[T]) SubstepSize() T {
	return sf.stepSize / T(sf.nSubsamples)
}

// IsValidSubsampleIndex returns whether s names one of the subsample phases.
func (sf *SampledFunction[T]) IsValidSubsampleIndex(s int) bool {
	return s >= 0 && s < sf.nSubsamples
}

// Subsample returns a copy of the Size() samples of phase s.
func (sf *SampledFunction[T]) Subsample(s int) ([]T, error) {
	if !sf.IsValidSubsampleIndex(s) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidSubsampleIndex, s, sf.nSubsamples)
	}
	return slices.Clone(sf.row(s)), nil
}

// Samples returns an iterator over the step indices and values of phase s.
// Unlike Subsample it does not copy the table.
func (sf *SampledFunction[T]) Samples(s int) (iter.Seq2[int, T], error) {
	if !sf.IsValidSubsampleIndex(s) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidSubsampleIndex, s, sf.nSubsamples)
	}
	row := sf.row(s)
	return func(yield func(int, T) bool) {
		for i, v := range row {
			if !yield(i, v) {
				return
			}
		}
	}, nil
}

// All returns an iterator over every phase index and a copy of its samples.
func (sf *SampledFunction[T]) All() iter.Seq2[int, []T] {
	return func(yield func(int, []T) bool) {
		for s := 0; s < sf.nSubsamples; s++ {
			if !yield(s, slices.Clone(sf.row(s))) {
				return
			}
		}
	}
}

// Value returns the sample at step i of phase s, or zero when i is outside
// the sampled range, which IsValidStepIndex tells apart.
// It panics unless IsValidSubsampleIndex(s) holds.
func (sf *SampledFunction[T]) Value(i, s int) T {
	if !sf.IsValidSubsampleIndex(s) {
		panic(fmt.Sprintf("sampledfunction: subsample %d out of range [0, %d)", s, sf.nSubsamples))
	}
	if !sf.IsValidStepIndex(i) {
		return 0
	}
	return sf.samples[s*sf.nSamples+i]
}

// Position returns the point at which step i of phase s is sampled.
// i may be outside the sampled range.
func (sf *SampledFunction[T]) Position(i, s int) T {
	return sf.lower + T(s)*sf.SubstepSize() + T(i)*sf.stepSize
}

// StepIndex returns the index of the step of phase s that contains x, that
// is the last grid point of that phase at or before x.
// The result is out of range for x outside the range covered by phase s.
// A grid point given by Position(i, s) maps back to i.
func (sf *SampledFunction[T]) StepIndex(x T, s int) int {
	return internal.FloorToInt(sf.steps(x, s, 0))
}

// steps returns how many steps x lies past the grid of phase s, plus shift,
// snapped to an integer when it is off by no more than rounding error.
func (sf *SampledFunction[T]) steps(x T, s int, shift T) T {
	phase := T(s) * sf.SubstepSize()
	q := (x-sf.lower-phase)/sf.stepSize + shift
	scale := (abs(x) + abs(sf.lower) + phase) / sf.stepSize
	return internal.Snap(q, scale)
}

// IsValidStepIndex returns whether i is a step within the sampled range.
func (sf *SampledFunction[T]) IsValidStepIndex(i int) bool {
	return i >= 0 && i < sf.nSamples
}

// ClosestSubsampleIndex returns the phase whose grid offset is closest to the
// offset of x within its step. Ties go to the smaller phase index.
func (sf *SampledFunction[T]) ClosestSubsampleIndex(x T) int {
	return internal.NearestPhase(x-sf.lower, abs(x)+abs(sf.lower), sf.stepSize, sf.nSubsamples)
}

// Lookup returns the sample at the grid point closest to x over all phases.
// ok is false when that point is outside the sampled range.
func (sf *SampledFunction[T]) Lookup(x T) (value T, ok bool) {
	s := sf.ClosestSubsampleIndex(x)
	i := internal.FloorToInt(sf.steps(x, s, 0.5))
	if !sf.IsValidStepIndex(i) {
		return 0, false
	}
	return sf.samples[s*sf.nSamples+i], true
}

// Fingerprint returns a 64-bit hash of the bounds, the grid and all samples.
// Tables with equal fingerprints can be taken to hold the same samples.
func (sf *SampledFunction[T]) Fingerprint() uint64 {
	h := xxhash.New()
	buf := make([]byte, 0, 40)
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(sf.lower)))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(sf.upper)))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(sf.stepSize)))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(sf.nSamples))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(sf.nSubsamples))
	h.Write(buf)

	var value [8]byte
	for _, v := range sf.samples {
		binary.LittleEndian.PutUint64(value[:], math.Float64bits(float64(v)))
		h.Write(value[:])
	}
	return h.Sum64()
}

// String returns a human-readable summary of the table.
// If shouldPrintSamples is true, every sample is listed as well.
func (sf *SampledFunction[T]) String(shouldPrintSamples bool) string {
	var sb strings.Builder
	sb.WriteString("### Sampled function summary:\n")
	sb.WriteString(fmt.Sprintf("   Range        : [%v, %v)\n", sf.lower, sf.upper))
	sb.WriteString(fmt.Sprintf("   Range size   : %v\n", sf.RangeSize()))
	sb.WriteString(fmt.Sprintf("   Samples      : %d\n", sf.nSamples))
	sb.WriteString(fmt.Sprintf("   Step size    : %v\n", sf.stepSize))
	sb.WriteString(fmt.Sprintf("   Subsamples   : %d\n", sf.nSubsamples))
	sb.WriteString(fmt.Sprintf("   Substep size : %v\n", sf.SubstepSize()))
	sb.WriteString("### End sampled function summary\n")

	if shouldPrintSamples {
		for s := 0; s < sf.nSubsamples; s++ {
			sb.WriteString(fmt.Sprintf("Subsample %d:\n", s))
			for i, v := range sf.row(s) {
				sb.WriteString(fmt.Sprintf("%d: %v -> %v\n", i, sf.Position(i, s), v))
			}
		}
	}
	return sb.String()
}

func abs[T constraints.Float](v T) T {
	return T(math.Abs(float64(v)))
}

func isFinite[T constraints.Float](v T) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
