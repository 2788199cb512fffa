// Copyright 2026 Lean Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kernel

import "math"

// OptNormalizerMaxDepth is the registered name of the normalizer
// recursion-depth option.
const OptNormalizerMaxDepth = "kernel.normalizer.max_depth"

// DefaultMaxDepth leaves the recursion depth effectively unbounded.
const DefaultMaxDepth = math.MaxUint32

// An Option configures a Normalizer.
type Option func(*Normalizer)

// WithMaxDepth caps the nesting of normalize calls. Exceeding the cap
// fails the normalization with a DepthError.
func WithMaxDepth(n uint32) Option {
	return func(nm *Normalizer) { nm.maxDepth = n }
}
