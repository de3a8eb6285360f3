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

const (
	// DefaultSubsamples is the number of phases used when WithSubsamples is not given.
	DefaultSubsamples = 1
)

// options holds optional parameters for table construction.
type options struct {
	nSubsamples int
	atLeast     float64
	maxSamples  int
}

// Option is a functional option for configuring a SampledFunction.
type Option func(*options)

// WithSubsamples sets the number of phase-shifted copies of the sampling grid.
// Phase s is offset by s*StepSize()/n from the first one.
func WithSubsamples(n int) Option {
	return func(opts *options) {
		opts.nSubsamples = n
	}
}

// WithAtLeast sets the domain extent, measured from the lower bound, that
// NewUntil covers before the stopping predicate is honored.
// It has no effect on New.
func WithAtLeast(extent float64) Option {
	return func(opts *options) {
		opts.atLeast = extent
	}
}

// WithMaxSamples caps the number of samples NewUntil may accept; growing
// past the cap fails with ErrRangeUnbounded. Zero means no cap.
// It has no effect on New.
func WithMaxSamples(n int) Option {
	return func(opts *options) {
		opts.maxSamples = n
	}
}

func applyOptions(opts []Option) options {
	o := options{
		nSubsamples: DefaultSubsamples,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
