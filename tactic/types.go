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

package tactic

import "github.com/felipebetancur/lean/kernel"

// Transparency controls which definitions whnf and apply may unfold.
type Transparency int8

const (
	TransparencyAll Transparency = iota
	TransparencySemireducible
	TransparencyInstances
	TransparencyReducible
	TransparencyNone
)

var transparencyStrs = [...]string{
	TransparencyAll:           "all",
	TransparencySemireducible: "semireducible",
	TransparencyInstances:     "instances",
	TransparencyReducible:     "reducible",
	TransparencyNone:          "none",
}

func (t Transparency) String() string {
	if int(t) < len(transparencyStrs) {
		return transparencyStrs[t]
	}
	return "unknown"
}

// A TypeContext is the elaborator-side evaluation context a search
// engine works in: weak-head normalization under a transparency mode
// and a synchronized metavariable context.
type TypeContext interface {
	// Whnf reduces e until the outermost constructor is stable.
	Whnf(e kernel.Expr) kernel.Expr

	// SetMCtx synchronizes the context with a proof state's
	// metavariable assignments.
	SetMCtx(m MetaContext)

	// Env returns the ambient environment.
	Env() kernel.Environment

	// Arena returns the arena expressions are built in.
	Arena() *kernel.Arena
}

// A TypeContextFactory builds a TypeContext focused on a state, the
// mk_type_context_for hook.
type TypeContextFactory func(s State, md Transparency) TypeContext

// An ApplyFunc unifies a lemma's conclusion with the main goal of s
// and returns the resulting state, with the lemma's hypotheses as new
// goals. It reports false when the lemma does not match; the caller
// cannot distinguish reasons for failure.
type ApplyFunc func(tc TypeContext, allArgs, useInstances bool, lemma kernel.Expr, s State) (State, bool)

// A LeafTactic discharges a single-goal state at the fringe of a
// search. On failure the input state is left unchanged.
type LeafTactic func(s State) (State, bool)
