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
	set "github.com/hashicorp/go-set"

	"github.com/felipebetancur/lean/kernel"
	"github.com/felipebetancur/lean/tactic"
)

// A Lemma is one backward-chaining candidate: either an already
// materialized proof term or a lazy constant name resolved through the
// type context's arena on first trial.
type Lemma struct {
	name string
	expr kernel.Expr
	typ  kernel.Expr
}

// LemmaName returns a lazy lemma referring to the environment object
// called name.
func LemmaName(name string) Lemma { return Lemma{name: name} }

// LemmaExpr returns a materialized lemma with its statement type.
func LemmaExpr(e, typ kernel.Expr) Lemma { return Lemma{expr: e, typ: typ} }

// Materialize returns the lemma's proof term.
func (l Lemma) Materialize(tc tactic.TypeContext) kernel.Expr {
	if l.expr != nil {
		return l.expr
	}
	return tc.Arena().Const(l.name)
}

// statement returns the lemma's declared type, consulting the
// environment for named lemmas.
func (l Lemma) statement(tc tactic.TypeContext) (kernel.Expr, bool) {
	if l.typ != nil {
		return l.typ, true
	}
	obj, ok := tc.Env().GetObject(l.name)
	if !ok {
		return nil, false
	}
	return obj.Type(), true
}

func (l Lemma) String() string {
	if l.name != "" {
		return l.name
	}
	return kernel.ExprString(l.expr)
}

// key identifies a lemma for deduplication within a head bucket.
func (l Lemma) key() string {
	if l.name != "" {
		return "n:" + l.name
	}
	return "e:" + kernel.ExprString(l.expr)
}

// An Index maps head symbols to ordered candidate lists. Candidates
// within a head keep insertion order; duplicates are dropped. The
// zero value is not usable; call NewIndex.
type Index struct {
	buckets map[string][]Lemma
	seen    *set.Set[string]
}

func NewIndex() *Index {
	return &Index{
		buckets: map[string][]Lemma{},
		seen:    set.New[string](0),
	}
}

// Insert adds a lemma under the head symbol of its conclusion,
// computed under tc. Lemmas whose conclusion has no constant head are
// not indexed.
func (x *Index) Insert(tc tactic.TypeContext, l Lemma) bool {
	typ, ok := l.statement(tc)
	if !ok {
		return false
	}
	head, ok := conclusionHead(tc, typ)
	if !ok {
		return false
	}
	if !x.seen.Insert(head + "/" + l.key()) {
		return false
	}
	x.buckets[head] = append(x.buckets[head], l)
	return true
}

// clone returns an independent copy sharing no bucket storage.
func (x *Index) clone() *Index {
	c := &Index{
		buckets: make(map[string][]Lemma, len(x.buckets)),
		seen:    set.New[string](x.seen.Size()),
	}
	for head, ls := range x.buckets {
		c.buckets[head] = append([]Lemma(nil), ls...)
	}
	for _, item := range x.seen.Slice() {
		c.seen.Insert(item)
	}
	return c
}

// Find returns the candidates for a head symbol, in insertion order.
func (x *Index) Find(head string) []Lemma {
	return x.buckets[head]
}

// headSymbol returns the outermost constant name of a whnf'd
// expression.
func headSymbol(e kernel.Expr) (string, bool) {
	for {
		app, ok := e.(*kernel.App)
		if !ok {
			break
		}
		e = app.Fn
	}
	if c, ok := e.(*kernel.Const); ok {
		return c.Name, true
	}
	return "", false
}

// conclusionHead strips the Pi telescope of a lemma statement and
// returns the head symbol of the conclusion.
func conclusionHead(tc tactic.TypeContext, typ kernel.Expr) (string, bool) {
	t := tc.Whnf(typ)
	for {
		pi, ok := t.(*kernel.Pi)
		if !ok {
			break
		}
		t = tc.Whnf(pi.Body)
	}
	return headSymbol(t)
}
