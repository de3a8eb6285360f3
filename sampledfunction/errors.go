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

package sampledfunction

import "errors"

var (
	// ErrNilFunction is returned when no function to sample is given.
	ErrNilFunction = errors.New("sampledfunction: function must not be nil")
	// ErrNilPredicate is returned when the open-ended constructor has no stopping predicate.
	ErrNilPredicate = errors.New("sampledfunction: stopping predicate must not be nil")
	// ErrInvalidRange is returned for bounds with max <= min or non-finite bounds.
	ErrInvalidRange = errors.New("sampledfunction: range must be finite with max > min")
	// ErrInvalidSampleCount is returned for a negative number of samples.
	ErrInvalidSampleCount = errors.New("sampledfunction: number of samples must not be negative")
	// ErrInvalidSubsampleCount is returned when fewer than one subsample is requested.
	ErrInvalidSubsampleCount = errors.New("sampledfunction: number of subsamples must be at least 1")
	// ErrInvalidStepSize is returned for a step size that is not finite and positive.
	ErrInvalidStepSize = errors.New("sampledfunction: step size must be finite and positive")
	// ErrInvalidAtLeast is returned for a negative or NaN minimum extent.
	ErrInvalidAtLeast = errors.New("sampledfunction: minimum extent must not be negative")
	// ErrRangeUnbounded is returned when the stopping predicate did not fire
	// within the sample cap set by WithMaxSamples.
	ErrRangeUnbounded = errors.New("sampledfunction: stopping predicate did not fire within the sample cap")
	// ErrInvalidSubsampleIndex is returned when a subsample index is out of range.
	ErrInvalidSubsampleIndex = errors.New("sampledfunction: subsample index out of range")
)

var (
	// ErrFamilyMismatch is returned when an image was written by another family.
	ErrFamilyMismatch = errors.New("sampledfunction: serialized family mismatch")
	// ErrSerialVersionMismatch is returned for an image of an unknown serial version.
	ErrSerialVersionMismatch = errors.New("sampledfunction: serial version mismatch")
	// ErrPreambleMismatch is returned when the preamble length byte is wrong.
	ErrPreambleMismatch = errors.New("sampledfunction: preamble longs mismatch")
	// ErrValueWidthMismatch is returned when decoding float32 samples as float64 or the reverse.
	ErrValueWidthMismatch = errors.New("sampledfunction: serialized value width does not match the requested type")
	// ErrChecksumMismatch is returned when the bounds or samples do not match the stored checksum.
	ErrChecksumMismatch = errors.New("sampledfunction: data checksum mismatch")
	// ErrInsufficientData is returned when the input ends before the image does.
	ErrInsufficientData = errors.New("sampledfunction: insufficient data for deserialization")
	// ErrCorruptHeader is returned for counts, flags or bounds that cannot belong to a table.
	ErrCorruptHeader = errors.New("sampledfunction: inconsistent serialized header")
	// ErrTableTooLarge is returned when a table has more samples than an image can hold.
	ErrTableTooLarge = errors.New("sampledfunction: table too large to serialize")
)
