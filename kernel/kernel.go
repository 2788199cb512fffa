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

// Package kernel implements the expression model and the normalizer of
// a dependently-typed lambda calculus.
//
// Expressions are immutable hash-consed nodes owned by an Arena, so
// structural equality is pointer equality and the normalizer can gate
// memoization on sharing. The Normalizer reduces through beta steps,
// delta-unfolding of non-opaque definitions, built-in literal
// computation, and equality of literals, using a value stack of
// closures and bound-variable markers so no work happens under a
// lambda until an argument forces it. IsConvertible layers universe
// cumulativity and Pi-telescope descent on top of normalization.
package kernel
