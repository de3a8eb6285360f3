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
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/twmb/murmur3"
	"golang.org/x/exp/constraints"

	"github.com/knoepfel/icarusalg/internal"
)

const (
	preambleLongs uint8 = 5
	serialVersion uint8 = 1
	preambleBytes       = int(preambleLongs) * 8
)

// byte offsets within the preamble
const (
	preambleLongsByte = 0
	serialVersionByte = 1
	familyByte        = 2
	flagsByte         = 3
	nSubsamplesInt    = 4
	nSamplesInt       = 8
	checksumInt       = 12
	lowerDouble       = 16
	upperDouble       = 24
	stepSizeDouble    = 32
)

const (
	serializationFlagIsEmpty uint8 = iota
	serializationFlagIsFloat32
)

// checksumSeed separates the table checksum from other murmur3 users.
const checksumSeed = uint32(9001)

// maxSerializedSamples bounds the table size a decoder accepts.
const maxSerializedSamples = math.MaxInt32

func valueWidth[T constraints.Float]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// SerializedSizeBytes returns the size in bytes of the encoded table.
func (sf *SampledFunction[T]) SerializedSizeBytes() int {
	return preambleBytes + len(sf.samples)*valueWidth[T]()
}

func (sf *SampledFunction[T]) checkEncodable() error {
	if len(sf.samples) > maxSerializedSamples || uint64(sf.nSubsamples) > math.MaxUint32 || uint64(sf.nSamples) > math.MaxUint32 {
		return fmt.Errorf("%w: %d x %d samples", ErrTableTooLarge, sf.nSubsamples, sf.nSamples)
	}
	return nil
}

func (sf *SampledFunction[T]) flags() uint8 {
	var flags uint8
	flags |= uint8(internal.BoolToInt(sf.nSamples == 0)) << serializationFlagIsEmpty
	flags |= uint8(internal.BoolToInt(valueWidth[T]() == 4)) << serializationFlagIsFloat32
	return flags
}

// appendPayload appends the bounds and all samples, the part of the image
// covered by the checksum.
func (sf *SampledFunction[T]) appendPayload(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(sf.lower)))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(sf.upper)))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(sf.stepSize)))
	if valueWidth[T]() == 4 {
		for _, v := range sf.samples {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(float32(v)))
		}
		return buf
	}
	for _, v := range sf.samples {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(float64(v)))
	}
	return buf
}

func payloadChecksum(payload []byte) uint32 {
	return murmur3.SeedSum32(checksumSeed, payload)
}
