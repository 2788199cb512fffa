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

// Package backward implements depth-bounded backward chaining: a goal
// is discharged by repeatedly applying indexed lemmas whose conclusion
// head-matches the goal, with a user-supplied leaf tactic at the
// fringes and LIFO backtracking over lemma alternatives.
package backward

import (
	"log"

	"github.com/felipebetancur/lean/tactic"
)

// OptMaxDepth is the registered name of the choice-stack bound.
const OptMaxDepth = "back_chaining.max_depth"

// DefaultMaxDepth bounds the backtracking choice stack.
const DefaultMaxDepth = 8

const failureMsg = "back_chaining failed, attach a trace logger to Config.Trace to obtain more details"

// Config carries the engine's collaborators and options. NewTypeContext
// and Apply must be set; everything else has a usable zero or default.
type Config struct {
	Transparency tactic.Transparency

	// UseInstances permits apply to insert type-class instances.
	UseInstances bool

	// MaxDepth bounds the size of the choice stack, not the
	// recursion depth. Zero means DefaultMaxDepth.
	MaxDepth uint

	// Leaf is invoked on a focused single-goal state whenever no
	// lemma candidates exist for the goal head. A nil Leaf always
	// fails.
	Leaf tactic.LeafTactic

	// Lemmas is the global backward-lemma table. Per-call extras are
	// appended after it.
	Lemmas *Index

	ExtraLemmas []Lemma

	NewTypeContext tactic.TypeContextFactory

	Apply tactic.ApplyFunc

	// Trace receives one line per lemma trial, backtrack, and
	// depth-cap event. Nil disables tracing.
	Trace *log.Logger
}

// BackwardChaining discharges the main goal of s. On success the
// returned state has that goal removed and the remaining goals intact;
// on failure it returns a *tactic.Error with a fixed message.
func BackwardChaining(s tactic.State, cfg Config) (tactic.State, error) {
	if _, ok := s.MainGoalDecl(); !ok {
		return tactic.State{}, tactic.NewNoGoalsError(s)
	}
	return newEngine(s, cfg).run()
}

// A choice is one backtracking frame: the state before a successful
// apply and the alternatives not yet tried.
type choice struct {
	state  tactic.State
	lemmas []Lemma
}

// phase is the explicit state of the search loop.
type phase uint8

const (
	phaseCheckDone phase = iota
	phaseTryHead
	phaseBacktrack
)

type engine struct {
	initial      tactic.State
	ctx          tactic.TypeContext
	useInstances bool
	maxDepth     uint
	leaf         tactic.LeafTactic
	apply        tactic.ApplyFunc
	lemmas       *Index
	trace        *log.Logger

	state   tactic.State
	choices []choice
}

func newEngine(s tactic.State, cfg Config) *engine {
	maxDepth := cfg.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxDepth
	}
	ctx := cfg.NewTypeContext(s, cfg.Transparency)
	lemmas := cfg.Lemmas
	if lemmas == nil {
		lemmas = NewIndex()
	}
	if len(cfg.ExtraLemmas) > 0 {
		// Per-call extras must not leak into the shared table.
		lemmas = lemmas.clone()
		for _, extra := range cfg.ExtraLemmas {
			lemmas.Insert(ctx, extra)
		}
	}
	return &engine{
		initial:      s,
		ctx:          ctx,
		useInstances: cfg.UseInstances,
		maxDepth:     maxDepth,
		leaf:         cfg.Leaf,
		apply:        cfg.Apply,
		lemmas:       lemmas,
		trace:        cfg.Trace,
		state:        s,
	}
}

func (e *engine) tracef(format string, args ...any) {
	if e.trace != nil {
		e.trace.Printf(format, args...)
	}
}

// run focuses the head goal, searches, and reattaches the trailing
// goals on success.
func (e *engine) run() (tactic.State, error) {
	goals := e.initial.Goals()
	e.state = tactic.SetGoals(e.initial, goals[:1])
	if e.search() {
		return tactic.SetGoals(e.state, goals[1:]), nil
	}
	return tactic.State{}, tactic.NewError(failureMsg, e.initial)
}

// search drives the three-phase loop until the focused goal list is
// empty or every alternative is exhausted.
func (e *engine) search() bool {
	ph := phaseCheckDone
	for {
		switch ph {
		case phaseCheckDone:
			if len(e.state.Goals()) == 0 {
				return true
			}
			if uint(len(e.choices)) >= e.maxDepth {
				e.tracef("[%d] maximum depth reached", len(e.choices))
				if !e.backtrack() {
					return false
				}
				continue
			}
			ph = phaseTryHead

		case phaseTryHead:
			g, _ := e.state.MainGoalDecl()
			target := e.ctx.Whnf(g.Type)
			var candidates []Lemma
			if head, ok := headSymbol(target); ok {
				candidates = e.lemmas.Find(head)
			}
			if len(candidates) == 0 {
				if e.invokeLeafTactic() {
					ph = phaseCheckDone
				} else {
					ph = phaseBacktrack
				}
			} else if e.tryLemmas(candidates) {
				ph = phaseCheckDone
			} else {
				ph = phaseBacktrack
			}

		case phaseBacktrack:
			if !e.backtrack() {
				return false
			}
			ph = phaseCheckDone
		}
	}
}

// tryLemmas applies candidates in order. The first success pushes a
// choice point holding the pre-apply state and the untried
// alternatives, then adopts the new state. A frame is pushed even when
// no alternatives remain, so the choice stack counts successful
// chaining steps and the depth bound caps the chain length.
func (e *engine) tryLemmas(lemmas []Lemma) bool {
	e.ctx.SetMCtx(e.state.MCtx())
	for i, l := range lemmas {
		term := l.Materialize(e.ctx)
		e.tracef("[%d] trying lemma %s", len(e.choices), l)
		newState, ok := e.apply(e.ctx, false, e.useInstances, term, e.state)
		if !ok {
			continue
		}
		e.tracef("[%d] succeeded", len(e.choices))
		e.choices = append(e.choices, choice{state: e.state, lemmas: lemmas[i+1:]})
		e.state = newState
		return true
	}
	return false
}

// backtrack pops choice points until one of them yields a successful
// lemma application.
func (e *engine) backtrack() bool {
	for len(e.choices) > 0 {
		e.tracef("[%d] backtracking", len(e.choices))
		c := e.choices[len(e.choices)-1]
		e.choices = e.choices[:len(e.choices)-1]
		e.state = c.state
		if e.tryLemmas(c.lemmas) {
			return true
		}
	}
	return false
}

// invokeLeafTactic runs the leaf tactic on a state focused on the main
// goal alone. On success the trailing goals replace the leaf result's
// goal list; on failure the state is untouched.
func (e *engine) invokeLeafTactic() bool {
	if e.leaf == nil {
		return false
	}
	goals := e.state.Goals()
	focused := tactic.SetGoals(e.state, goals[:1])
	newState, ok := e.leaf(focused)
	if !ok {
		return false
	}
	e.state = tactic.SetGoals(newState, goals[1:])
	return true
}
