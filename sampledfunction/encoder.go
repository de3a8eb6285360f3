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
	"io"

	"golang.org/x/exp/constraints"

	"github.com/knoepfel/icarusalg/internal"
)

// Encoder writes SampledFunction tables to a stream.
type Encoder[T constraints.Float] struct {
	w io.Writer
}

// NewEncoder creates a new encoder writing to w.
func NewEncoder[T constraints.Float](w io.Writer) Encoder[T] {
	return Encoder[T]{w: w}
}

// Encode writes the binary image of sf.
func (enc *Encoder[T]) Encode(sf *SampledFunction[T]) error {
	if err := sf.checkEncodable(); err != nil {
		return err
	}
	payload := sf.appendPayload(make([]byte, 0, sf.SerializedSizeBytes()-lowerDouble))

	if err := binary.Write(enc.w, binary.LittleEndian, preambleLongs); err != nil {
		return err
	}
	if err := binary.Write(enc.w, binary.LittleEndian, serialVersion); err != nil {
		return err
	}
	if err := binary.Write(enc.w, binary.LittleEndian, uint8(internal.FamilyEnum.SampledFunction.Id)); err != nil {
		return err
	}
	if err := binary.Write(enc.w, binary.LittleEndian, sf.flags()); err != nil {
		return err
	}
	if err := binary.Write(enc.w, binary.LittleEndian, uint32(sf.nSubsamples)); err != nil {
		return err
	}
	if err := binary.Write(enc.w, binary.LittleEndian, uint32(sf.nSamples)); err != nil {
		return err
	}
	if err := binary.Write(enc.w, binary.LittleEndian, payloadChecksum(payload)); err != nil {
		return err
	}
	_, err := enc.w.Write(payload)
	return err
}

// Encode returns the binary image of sf.
func Encode[T constraints.Float](sf *SampledFunction[T]) ([]byte, error) {
	if err := sf.checkEncodable(); err != nil {
		return nil, err
	}
	buf := make([]byte, lowerDouble, sf.SerializedSizeBytes())

	buf[preambleLongsByte] = preambleLongs
	buf[serialVersionByte] = serialVersion
	buf[familyByte] = uint8(internal.FamilyEnum.SampledFunction.Id)
	buf[flagsByte] = sf.flags()
	binary.LittleEndian.PutUint32(buf[nSubsamplesInt:], uint32(sf.nSubsamples))
	binary.LittleEndian.PutUint32(buf[nSamplesInt:], uint32(sf.nSamples))

	buf = sf.appendPayload(buf)
	binary.LittleEndian.PutUint32(buf[checksumInt:], payloadChecksum(buf[lowerDouble:]))
	return buf, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (sf *SampledFunction[T]) MarshalBinary() ([]byte, error) {
	return Encode(sf)
}
