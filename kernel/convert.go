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

// IsConvertible reports whether expected and given are definitionally
// equal up to normalization, universe cumulativity, and descent through
// Pi telescopes with syntactically equal domains. Cumulativity is
// contravariant in the expected position: Type(u) accepts Type(v)
// whenever u >= v, and every Type accepts the boolean type.
//
// Eta-reduction is deliberately absent: together with cumulativity it
// is unsound under the set-theoretic interpretation.
func (n *Normalizer) IsConvertible(expected, given Expr, ctx Context) (bool, error) {
	if n.isConvertibleCore(expected, given) {
		return true, nil
	}
	n.setCtx(ctx)
	k := n.ctx.Size()
	en, err := n.normReify(expected, nil, k)
	if err != nil {
		return false, err
	}
	gn, err := n.normReify(given, nil, k)
	if err != nil {
		return false, err
	}
	return n.isConvertibleCore(en, gn), nil
}

func (n *Normalizer) isConvertibleCore(expected, given Expr) bool {
	if expected == given {
		return true
	}
	e, g := expected, given
	for {
		if es, ok := e.(*Sort); ok {
			if gs, ok := g.(*Sort); ok && n.env.IsGE(es.Level, gs.Level) {
				return true
			}
			// bool lives in every universe.
			if g == n.arena.BoolType() {
				return true
			}
		}
		ep, ok1 := e.(*Pi)
		gp, ok2 := g.(*Pi)
		if ok1 && ok2 && ep.Domain == gp.Domain {
			e = ep.Body
			g = gp.Body
			continue
		}
		return false
	}
}
