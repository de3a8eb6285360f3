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

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/knoepfel/icarusalg/internal"
)

// Decoder reads SampledFunction tables from a stream.
type Decoder[T constraints.Float] struct{}

// NewDecoder creates and returns a new instance of Decoder.
func NewDecoder[T constraints.Float]() Decoder[T] {
	return Decoder[T]{}
}

// header is the decoded fixed part of the image.
type header struct {
	PreambleLongs uint8
	SerialVersion uint8
	Family        uint8
	Flags         uint8
	NSubsamples   uint32
	NSamples      uint32
	Checksum      uint32
}

// Decode reads one table from r.
// The payload buffer grows with the bytes actually read, so a header
// announcing more samples than r delivers fails without allocating for them.
func (d *Decoder[T]) Decode(r io.Reader) (*SampledFunction[T], error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, readError(err)
	}
	nValues, err := h.validate(valueWidth[T]())
	if err != nil {
		return nil, err
	}

	var payload bytes.Buffer
	if _, err := io.CopyN(&payload, r, payloadSize[T](nValues)); err != nil {
		return nil, readError(err)
	}
	return decodePayload[T](h, payload.Bytes())
}

// Decode decodes a table from its binary image.
func Decode[T constraints.Float](b []byte) (*SampledFunction[T], error) {
	if len(b) < lowerDouble {
		return nil, ErrInsufficientData
	}
	h := header{
		PreambleLongs: b[preambleLongsByte],
		SerialVersion: b[serialVersionByte],
		Family:        b[familyByte],
		Flags:         b[flagsByte],
		NSubsamples:   binary.LittleEndian.Uint32(b[nSubsamplesInt:]),
		NSamples:      binary.LittleEndian.Uint32(b[nSamplesInt:]),
		Checksum:      binary.LittleEndian.Uint32(b[checksumInt:]),
	}
	nValues, err := h.validate(valueWidth[T]())
	if err != nil {
		return nil, err
	}

	size := payloadSize[T](nValues)
	if int64(len(b)-lowerDouble) < size {
		return nil, ErrInsufficientData
	}
	return decodePayload[T](h, b[lowerDouble:lowerDouble+int(size)])
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (sf *SampledFunction[T]) UnmarshalBinary(data []byte) error {
	decoded, err := Decode[T](data)
	if err != nil {
		return err
	}
	*sf = *decoded
	return nil
}

// validate checks the fixed header and returns the number of stored values.
func (h header) validate(width int) (int, error) {
	if h.Family != uint8(internal.FamilyEnum.SampledFunction.Id) {
		return 0, fmt.Errorf("%w: %d", ErrFamilyMismatch, h.Family)
	}
	if h.SerialVersion != serialVersion {
		return 0, fmt.Errorf("%w: %d", ErrSerialVersionMismatch, h.SerialVersion)
	}
	if h.PreambleLongs != preambleLongs {
		return 0, fmt.Errorf("%w: %d", ErrPreambleMismatch, h.PreambleLongs)
	}
	isFloat32 := h.Flags&(1<<serializationFlagIsFloat32) != 0
	if isFloat32 != (width == 4) {
		return 0, ErrValueWidthMismatch
	}
	isEmpty := h.Flags&(1<<serializationFlagIsEmpty) != 0
	if isEmpty != (h.NSamples == 0) {
		return 0, fmt.Errorf("%w: empty flag with %d samples", ErrCorruptHeader, h.NSamples)
	}
	if h.NSubsamples == 0 {
		return 0, fmt.Errorf("%w: no subsamples", ErrCorruptHeader)
	}
	nValues := uint64(h.NSubsamples) * uint64(h.NSamples)
	if nValues > maxSerializedSamples {
		return 0, fmt.Errorf("%w: %d x %d samples", ErrCorruptHeader, h.NSubsamples, h.NSamples)
	}
	return int(nValues), nil
}

// payloadSize is the number of bytes following the fixed header.
func payloadSize[T constraints.Float](nValues int) int64 {
	return int64(preambleBytes-lowerDouble) + int64(nValues)*int64(valueWidth[T]())
}

func decodePayload[T constraints.Float](h header, payload []byte) (*SampledFunction[T], error) {
	if payloadChecksum(payload) != h.Checksum {
		return nil, ErrChecksumMismatch
	}

	lower := math.Float64frombits(binary.LittleEndian.Uint64(payload[0:]))
	upper := math.Float64frombits(binary.LittleEndian.Uint64(payload[8:]))
	stepSize := math.Float64frombits(binary.LittleEndian.Uint64(payload[16:]))
	if !isFinite(lower) || !isFinite(upper) || upper < lower || !(stepSize > 0) {
		return nil, fmt.Errorf("%w: range [%v, %v) with step %v", ErrCorruptHeader, lower, upper, stepSize)
	}

	data := payload[24:]
	samples := make([]T, int(h.NSubsamples)*int(h.NSamples))
	width := valueWidth[T]()
	for i := range samples {
		if width == 4 {
			samples[i] = T(math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:])))
		} else {
			samples[i] = T(math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:])))
		}
	}

	return newFromInternalStates(T(lower), T(upper), T(stepSize), int(h.NSamples), int(h.NSubsamples), samples), nil
}

func readError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrInsufficientData
	}
	return err
}
