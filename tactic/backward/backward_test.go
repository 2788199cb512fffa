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

package backward

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"

	"github.com/felipebetancur/lean/kernel"
	"github.com/felipebetancur/lean/tactic"
)

// testTC is a minimal elaborator context: whnf through a kernel
// normalizer, metavariable synchronization ignored.
type testTC struct {
	arena *kernel.Arena
	env   kernel.Environment
	norm  *kernel.Normalizer
	md    tactic.Transparency
}

func newTestTC(arena *kernel.Arena, env kernel.Environment, md tactic.Transparency) *testTC {
	return &testTC{arena: arena, env: env, norm: kernel.NewNormalizer(env, arena), md: md}
}

func (c *testTC) Whnf(e kernel.Expr) kernel.Expr {
	out, err := c.norm.Normalize(e, kernel.Context{})
	if err != nil {
		return e
	}
	return out
}

func (c *testTC) SetMCtx(tactic.MetaContext) {}

func (c *testTC) Env() kernel.Environment { return c.env }

func (c *testTC) Arena() *kernel.Arena { return c.arena }

// rule describes how the fake apply treats one lemma: the conclusion
// it closes and the hypotheses it opens.
type rule struct {
	concl    kernel.Expr
	subgoals []kernel.Expr
}

// applier is a table-driven stand-in for the external apply operator.
// It records every state a lemma applied to, keyed by lemma name.
type applier struct {
	rules map[string]rule
	calls int
	seen  map[string][]tactic.State
}

func newApplier(rules map[string]rule) *applier {
	return &applier{rules: rules, seen: map[string][]tactic.State{}}
}

func (ap *applier) apply(tc tactic.TypeContext, allArgs, useInstances bool, lemma kernel.Expr, s tactic.State) (tactic.State, bool) {
	ap.calls++
	c, ok := lemma.(*kernel.Const)
	if !ok {
		return tactic.State{}, false
	}
	r, ok := ap.rules[c.Name]
	if !ok {
		return tactic.State{}, false
	}
	g, ok := s.MainGoalDecl()
	if !ok || tc.Whnf(g.Type) != r.concl {
		return tactic.State{}, false
	}
	ap.seen[c.Name] = append(ap.seen[c.Name], s)

	goals := make([]tactic.Goal, 0, len(r.subgoals)+len(s.Goals())-1)
	for _, sub := range r.subgoals {
		goals = append(goals, tactic.NewGoal("", sub))
	}
	goals = append(goals, s.Goals()[1:]...)
	return tactic.NewState(s.MCtx().Assign(g.ID, lemma), goals...), true
}

// testSetup builds the environment of the S5/S6 scenarios: a predicate
// P over an axiomatic constant, a side condition Q, and the lemmas
// h1 : Q -> P a, h2 : P a, step : P a -> P a.
type testSetup struct {
	arena *kernel.Arena
	env   *kernel.DeclEnv
	tc    *testTC
	pa    kernel.Expr
	q     kernel.Expr
}

func newTestSetup() *testSetup {
	a := kernel.NewArena()
	env := kernel.NewDeclEnv()
	env.AddAxiom("a", a.Type(0))
	env.AddAxiom("P", a.Pi("x", a.Type(0), a.Type(0)))
	env.AddAxiom("Q", a.Type(0))

	pa := a.App(a.Const("P"), a.Const("a"))
	q := a.Const("Q")
	env.AddAxiom("h1", a.Pi("h", q, pa))
	env.AddAxiom("h2", pa)
	env.AddAxiom("step", a.Pi("h", pa, pa))

	s := &testSetup{arena: a, env: env, pa: pa, q: q}
	s.tc = newTestTC(a, env, tactic.TransparencyAll)
	return s
}

func (s *testSetup) factory(st tactic.State, md tactic.Transparency) tactic.TypeContext {
	s.tc.md = md
	return s.tc
}

func TestBackwardChainingSuccess(t *testing.T) {
	s := newTestSetup()
	idx := NewIndex()
	qt.Assert(t, qt.IsTrue(idx.Insert(s.tc, LemmaName("h1"))))
	qt.Assert(t, qt.IsTrue(idx.Insert(s.tc, LemmaName("h2"))))

	ap := newApplier(map[string]rule{
		"h1": {concl: s.pa, subgoals: []kernel.Expr{s.q}},
		"h2": {concl: s.pa},
	})

	initial := tactic.NewState(tactic.MetaContext{}, tactic.NewGoal("g", s.pa))
	final, err := BackwardChaining(initial, Config{
		Lemmas:         idx,
		NewTypeContext: s.factory,
		Apply:          ap.apply,
		Leaf:           func(tactic.State) (tactic.State, bool) { return tactic.State{}, false },
	})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(final.Goals(), 0))

	// h1 was tried first, left subgoal Q, the leaf failed, and the
	// engine backtracked into h2 against the restored state.
	qt.Assert(t, qt.HasLen(ap.seen["h1"], 1))
	qt.Assert(t, qt.HasLen(ap.seen["h2"], 1))
	restored := ap.seen["h2"][0]
	saved := ap.seen["h1"][0]
	qt.Assert(t, qt.IsTrue(restored.Equal(saved)),
		qt.Commentf("restored state diverged: %# v", pretty.Formatter(restored)))
}

func TestBackwardChainingDepthExhaustion(t *testing.T) {
	s := newTestSetup()
	idx := NewIndex()
	qt.Assert(t, qt.IsTrue(idx.Insert(s.tc, LemmaName("step"))))

	ap := newApplier(map[string]rule{
		"step": {concl: s.pa, subgoals: []kernel.Expr{s.pa}},
	})

	initial := tactic.NewState(tactic.MetaContext{}, tactic.NewGoal("g", s.pa))
	_, err := BackwardChaining(initial, Config{
		MaxDepth:       2,
		Lemmas:         idx,
		NewTypeContext: s.factory,
		Apply:          ap.apply,
	})
	qt.Assert(t, qt.IsNotNil(err))
	var terr *tactic.Error
	qt.Assert(t, qt.ErrorAs(err, &terr))
	qt.Assert(t, qt.IsTrue(strings.Contains(terr.Msg, "back_chaining failed")))
	qt.Assert(t, qt.IsTrue(terr.State.Equal(initial)))

	// step applied exactly twice before the cap; the backtrack
	// frames held no alternatives.
	qt.Assert(t, qt.Equals(len(ap.seen["step"]), 2))
}

func TestBackwardChainingNoGoals(t *testing.T) {
	s := newTestSetup()
	ap := newApplier(nil)

	empty := tactic.NewState(tactic.MetaContext{})
	_, err := BackwardChaining(empty, Config{
		Lemmas:         NewIndex(),
		NewTypeContext: s.factory,
		Apply:          ap.apply,
	})
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(ap.calls, 0))
}

func TestBackwardChainingLeafTactic(t *testing.T) {
	s := newTestSetup()
	r := tactic.NewGoal("r", s.q)

	var leafGoals int
	leaf := func(st tactic.State) (tactic.State, bool) {
		leafGoals = len(st.Goals())
		// Solve the focused goal outright.
		return tactic.SetGoals(st, nil), true
	}

	initial := tactic.NewState(tactic.MetaContext{}, tactic.NewGoal("g", s.q), r)
	final, err := BackwardChaining(initial, Config{
		Lemmas:         NewIndex(),
		NewTypeContext: s.factory,
		Apply:          newApplier(nil).apply,
		Leaf:           leaf,
	})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(leafGoals, 1))
	qt.Assert(t, qt.HasLen(final.Goals(), 1))
	qt.Assert(t, qt.Equals(final.Goals()[0], r))
}

func TestBackwardChainingKeepsTrailingGoals(t *testing.T) {
	s := newTestSetup()
	idx := NewIndex()
	qt.Assert(t, qt.IsTrue(idx.Insert(s.tc, LemmaName("h2"))))

	ap := newApplier(map[string]rule{"h2": {concl: s.pa}})
	other := tactic.NewGoal("other", s.q)

	initial := tactic.NewState(tactic.MetaContext{}, tactic.NewGoal("g", s.pa), other)
	final, err := BackwardChaining(initial, Config{
		Lemmas:         idx,
		NewTypeContext: s.factory,
		Apply:          ap.apply,
	})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.CmpEquals(final.Goals(), []tactic.Goal{other}, exprCmp))
}

// exprCmp lets go-cmp compare canonical expression pointers without
// descending into arena internals.
var exprCmp = cmp.Comparer(func(x, y kernel.Expr) bool { return x == y })

func TestBackwardChainingExtraLemmas(t *testing.T) {
	s := newTestSetup()
	idx := NewIndex()

	ap := newApplier(map[string]rule{"h2": {concl: s.pa}})

	initial := tactic.NewState(tactic.MetaContext{}, tactic.NewGoal("g", s.pa))
	final, err := BackwardChaining(initial, Config{
		Transparency:   tactic.TransparencyReducible,
		Lemmas:         idx,
		ExtraLemmas:    []Lemma{LemmaName("h2")},
		NewTypeContext: s.factory,
		Apply:          ap.apply,
	})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(final.Goals(), 0))
	qt.Assert(t, qt.Equals(s.tc.md, tactic.TransparencyReducible))

	// The per-call extra must not leak into the shared index.
	qt.Assert(t, qt.HasLen(idx.Find("P"), 0))
}

func TestBackwardChainingTrace(t *testing.T) {
	s := newTestSetup()
	idx := NewIndex()
	qt.Assert(t, qt.IsTrue(idx.Insert(s.tc, LemmaName("h2"))))

	ap := newApplier(map[string]rule{"h2": {concl: s.pa}})
	var buf bytes.Buffer

	initial := tactic.NewState(tactic.MetaContext{}, tactic.NewGoal("g", s.pa))
	_, err := BackwardChaining(initial, Config{
		Lemmas:         idx,
		NewTypeContext: s.factory,
		Apply:          ap.apply,
		Trace:          log.New(&buf, "", 0),
	})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(strings.Contains(buf.String(), "trying lemma h2")))
}

func TestIndexDeduplicatesAndOrders(t *testing.T) {
	s := newTestSetup()
	idx := NewIndex()

	qt.Assert(t, qt.IsTrue(idx.Insert(s.tc, LemmaName("h1"))))
	qt.Assert(t, qt.IsTrue(idx.Insert(s.tc, LemmaName("h2"))))
	qt.Assert(t, qt.IsFalse(idx.Insert(s.tc, LemmaName("h1"))))

	got := idx.Find("P")
	qt.Assert(t, qt.HasLen(got, 2))
	qt.Assert(t, qt.Equals(got[0].String(), "h1"))
	qt.Assert(t, qt.Equals(got[1].String(), "h2"))

	// A lemma whose conclusion has no constant head is not indexed.
	qt.Assert(t, qt.IsFalse(idx.Insert(s.tc, LemmaExpr(s.arena.Const("c"), s.arena.Type(0)))))
}

func TestLemmaMaterialize(t *testing.T) {
	s := newTestSetup()

	lazy := LemmaName("h2")
	qt.Assert(t, qt.Equals(lazy.Materialize(s.tc), s.arena.Const("h2")))

	term := s.arena.Const("h1")
	qt.Assert(t, qt.Equals(LemmaExpr(term, s.pa).Materialize(s.tc), term))
}
