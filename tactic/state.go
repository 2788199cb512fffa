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

// Package tactic defines the proof-state model and the interfaces the
// proof-search engines consume from the elaborator: type contexts,
// the apply operator, and leaf tactics.
package tactic

import (
	"github.com/google/uuid"

	"github.com/felipebetancur/lean/kernel"
)

// A Goal is a metavariable declaration: an identity, a display name,
// and the statement to prove.
type Goal struct {
	ID   uuid.UUID
	Name string
	Type kernel.Expr
}

// NewGoal mints a goal with a fresh metavariable identity.
func NewGoal(name string, typ kernel.Expr) Goal {
	return Goal{ID: uuid.New(), Name: name, Type: typ}
}

// A MetaContext records metavariable assignments. It is a persistent
// value: Assign returns an updated copy and never mutates the
// receiver, so saved states stay valid across backtracking.
type MetaContext struct {
	assignments map[uuid.UUID]kernel.Expr
}

// Assign returns m with id bound to e.
func (m MetaContext) Assign(id uuid.UUID, e kernel.Expr) MetaContext {
	next := make(map[uuid.UUID]kernel.Expr, len(m.assignments)+1)
	for k, v := range m.assignments {
		next[k] = v
	}
	next[id] = e
	return MetaContext{assignments: next}
}

// Value returns the assignment for id, if any.
func (m MetaContext) Value(id uuid.UUID) (kernel.Expr, bool) {
	e, ok := m.assignments[id]
	return e, ok
}

// Len returns the number of assignments.
func (m MetaContext) Len() int { return len(m.assignments) }

// Equal reports whether two metavariable contexts carry the same
// assignments. Expressions compare by canonical pointer.
func (m MetaContext) Equal(o MetaContext) bool {
	if len(m.assignments) != len(o.assignments) {
		return false
	}
	for k, v := range m.assignments {
		if w, ok := o.assignments[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// A State is a proof state: an ordered goal list and a metavariable
// context. States are values; tactics return new states and never
// mutate their input, which is what makes backtracking restoration
// exact.
type State struct {
	goals []Goal
	mctx  MetaContext
}

// NewState builds a state over the given goals.
func NewState(mctx MetaContext, goals ...Goal) State {
	return State{goals: goals, mctx: mctx}
}

// Goals returns the goal list. Callers must not mutate it.
func (s State) Goals() []Goal { return s.goals }

// MCtx returns the metavariable context.
func (s State) MCtx() MetaContext { return s.mctx }

// MainGoalDecl returns the head goal, if any.
func (s State) MainGoalDecl() (Goal, bool) {
	if len(s.goals) == 0 {
		return Goal{}, false
	}
	return s.goals[0], true
}

// Equal reports goal-for-goal, assignment-for-assignment equality.
func (s State) Equal(o State) bool {
	if len(s.goals) != len(o.goals) {
		return false
	}
	for i := range s.goals {
		if s.goals[i] != o.goals[i] {
			return false
		}
	}
	return s.mctx.Equal(o.mctx)
}

// SetGoals returns s with its goal list replaced.
func SetGoals(s State, goals []Goal) State {
	s.goals = goals
	return s
}
