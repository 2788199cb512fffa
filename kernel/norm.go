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

import (
	"fmt"
	"sync/atomic"

	"github.com/felipebetancur/lean/internal/scopedmap"
)

// A Normalizer reduces expressions to normal form: beta-redexes are
// contracted, non-opaque definitions unfolded, built-in computation
// rules applied, and reflexive or literal equalities decided. A
// normalizer is confined to one goroutine; only SetInterrupt may be
// called from another.
type Normalizer struct {
	env   Environment
	arena *Arena

	ctx   Context
	cache *scopedmap.Map[cacheKey, svalue]

	maxDepth uint32
	depth    uint32

	interrupted atomic.Bool
}

// cacheKey identifies a memoized result: a shared node has the same
// value only under the same value stack and binder depth.
type cacheKey struct {
	e Expr
	s *vstack
	k int
}

// NewNormalizer returns a normalizer over env building results in
// arena.
func NewNormalizer(env Environment, arena *Arena, opts ...Option) *Normalizer {
	n := &Normalizer{
		env:      env,
		arena:    arena,
		cache:    scopedmap.New[cacheKey, svalue](),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize reduces e under ctx. The result follows the same de Bruijn
// convention as e.
func (n *Normalizer) Normalize(e Expr, ctx Context) (Expr, error) {
	n.setCtx(ctx)
	k := n.ctx.Size()
	v, err := n.normalize(e, nil, k)
	if err != nil {
		return nil, err
	}
	return n.reify(v, k)
}

// Clear discards the cached context and all memoized results.
func (n *Normalizer) Clear() {
	n.ctx = Context{}
	n.cache.Clear()
}

// SetInterrupt sets or clears the cooperative cancellation flag. A set
// flag makes the next normalization step fail with an InterruptError.
func (n *Normalizer) SetInterrupt(flag bool) {
	n.interrupted.Store(flag)
}

func (n *Normalizer) setCtx(ctx Context) {
	if !ctx.eqp(n.ctx) {
		n.ctx = ctx
		n.cache.Clear()
	}
}

// normalize reduces a to a stack value. s holds the substitutions for
// the innermost binders and k is the number of binders in scope above
// the ambient context.
func (n *Normalizer) normalize(a Expr, s *vstack, k int) (svalue, error) {
	n.depth++
	defer func() { n.depth-- }()
	if n.interrupted.Load() {
		return svalue{}, errInterrupted
	}
	if n.depth > n.maxDepth {
		return svalue{}, errDepthExceeded
	}

	shared := IsShared(a)
	key := cacheKey{e: a, s: s, k: k}
	if shared {
		if v, ok := n.cache.Get(key); ok {
			return v, nil
		}
	}

	var r svalue
	var err error
	switch x := a.(type) {
	case *Var:
		r, err = n.lookup(s, x.Idx, k)

	case *Const:
		obj, ok := n.env.GetObject(x.Name)
		if ok && obj.IsDefinition() && !obj.IsOpaque() {
			// Unfold in a fresh scope with no outer binders.
			r, err = n.normalize(obj.Value(), nil, 0)
		} else {
			r = svalueExpr(a)
		}

	case *Sort, *Lit:
		r = svalueExpr(a)

	case *App:
		r, err = n.normalizeApp(x, s, k)

	case *Eq:
		r, err = n.normalizeEq(x, s, k)

	case *Lambda:
		// No reduction under a lambda until an argument forces it.
		r = svalueClosure(a, s)

	case *Pi:
		var newT, newB Expr
		newT, err = n.normReify(x.Domain, s, k)
		if err == nil {
			n.cache.Scope()
			newB, err = n.normReify(x.Body, extend(s, svalueBVar(k)), k+1)
			n.cache.Pop()
		}
		if err == nil {
			r = svalueExpr(n.arena.Pi(x.Name, newT, newB))
		}

	case *Let:
		var v svalue
		v, err = n.normalize(x.Value, s, k)
		if err == nil {
			n.cache.Scope()
			r, err = n.normalize(x.Body, extend(s, v), k+1)
			n.cache.Pop()
		}

	default:
		err = evalErrorf(fmt.Sprintf("kernel normalizer: unknown expression kind %v", a.Kind()))
	}
	if err != nil {
		return svalue{}, err
	}

	if shared {
		n.cache.Set(key, r)
	}
	return r, nil
}

func (n *Normalizer) normalizeApp(a *App, s *vstack, k int) (svalue, error) {
	f, err := n.normalize(a.Fn, s, k)
	if err != nil {
		return svalue{}, err
	}
	i := 0
	num := len(a.Args)
	for {
		if f.isClosure() {
			// One beta step: bind the next argument in the
			// closure's captured stack.
			lam := f.expr.(*Lambda)
			n.cache.Scope()
			var arg svalue
			arg, err = n.normalize(a.Args[i], s, k)
			if err == nil {
				f, err = n.normalize(lam.Body, extend(f.env, arg), k)
			}
			n.cache.Pop()
			if err != nil {
				return svalue{}, err
			}
			if i == num-1 {
				return f, nil
			}
			i++
			continue
		}

		// The head is stuck: reify it and the remaining arguments.
		newF, err := n.reify(f, k)
		if err != nil {
			return svalue{}, err
		}
		newArgs := make([]Expr, 0, num-i)
		for ; i < num; i++ {
			e, err := n.normReify(a.Args[i], s, k)
			if err != nil {
				return svalue{}, err
			}
			newArgs = append(newArgs, e)
		}
		if lit, ok := newF.(*Lit); ok {
			all := append([]Expr{newF}, newArgs...)
			if m, ok := lit.V.Reduce(n.arena, all); ok {
				return n.normalize(m, s, k)
			}
		}
		return svalueExpr(n.arena.App(newF, newArgs...)), nil
	}
}

func (n *Normalizer) normalizeEq(a *Eq, s *vstack, k int) (svalue, error) {
	lhs, err := n.normReify(a.LHS, s, k)
	if err != nil {
		return svalue{}, err
	}
	rhs, err := n.normReify(a.RHS, s, k)
	if err != nil {
		return svalue{}, err
	}
	switch {
	case lhs == rhs:
		return svalueExpr(n.arena.Bool(true)), nil
	case lhs.Kind() == LitKind && rhs.Kind() == LitKind:
		return svalueExpr(n.arena.Bool(false)), nil
	default:
		return svalueExpr(n.arena.Eq(lhs, rhs)), nil
	}
}

// lookup resolves variable index i against the stack and, beyond it,
// the ambient context. Let-bound context entries are normalized in
// their own context prefix.
func (n *Normalizer) lookup(s *vstack, i, k int) (svalue, error) {
	j := i
	for it := s; it != nil; it = it.tail {
		if j == 0 {
			return it.head, nil
		}
		j--
	}
	entry, entryCtx, ok := n.ctx.LookupExt(j)
	if !ok {
		return svalue{}, evalErrorf(fmt.Sprintf("kernel normalizer: unknown free variable #%d", i))
	}
	if entry.Body != nil {
		restore := n.saveContext()
		defer restore()
		n.ctx = entryCtx
		ek := n.ctx.Size()
		e, err := n.normReify(entry.Body, nil, ek)
		if err != nil {
			return svalue{}, err
		}
		return svalueExpr(e), nil
	}
	return svalueBVar(entryCtx.Size()), nil
}

// saveContext snapshots the ambient context and flushes the cache; the
// returned function restores the context on all exit paths.
func (n *Normalizer) saveContext() func() {
	old := n.ctx
	n.cache.Clear()
	return func() { n.ctx = old }
}

// normReify is normalize followed by reify at the same depth.
func (n *Normalizer) normReify(e Expr, s *vstack, k int) (Expr, error) {
	v, err := n.normalize(e, s, k)
	if err != nil {
		return nil, err
	}
	return n.reify(v, k)
}

// reify converts a stack value back into an expression in a context of
// k binders.
func (n *Normalizer) reify(v svalue, k int) (Expr, error) {
	switch v.kind {
	case svExpr:
		return v.expr, nil
	case svBoundedVar:
		return n.arena.Var(k - v.bvar - 1), nil
	case svClosure:
		return n.reifyClosure(v.expr.(*Lambda), v.env, k)
	}
	panic("kernel: unreachable svalue kind")
}

func (n *Normalizer) reifyClosure(lam *Lambda, s *vstack, k int) (Expr, error) {
	newT, err := n.normReify(lam.Domain, s, k)
	if err != nil {
		return nil, err
	}
	newB, err := n.normReify(lam.Body, extend(s, svalueBVar(k)), k+1)
	if err != nil {
		return nil, err
	}
	return n.arena.Lambda(lam.Name, newT, newB), nil
}

// Normalize is the one-shot form of Normalizer.Normalize.
func Normalize(e Expr, env Environment, arena *Arena, ctx Context) (Expr, error) {
	return NewNormalizer(env, arena).Normalize(e, ctx)
}

// IsConvertible is the one-shot form of Normalizer.IsConvertible.
func IsConvertible(expected, given Expr, env Environment, arena *Arena, ctx Context) (bool, error) {
	return NewNormalizer(env, arena).IsConvertible(expected, given, ctx)
}
