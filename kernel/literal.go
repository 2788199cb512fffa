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
	"github.com/cockroachdb/apd/v3"
)

// A Literal is a built-in semantic value. Literals with a computation
// rule reduce saturated applications in which they appear as the head;
// a rule that does not apply reports ok == false and the application
// is kept as-is.
type Literal interface {
	// Name is the display form, unique per literal value.
	Name() string

	Hash() uint64

	Equal(other Literal) bool

	// Reduce applies the literal's computation rule to a reified
	// application. args[0] is the literal's own node, args[1:] the
	// normalized operands.
	Reduce(a *Arena, args []Expr) (Expr, bool)
}

// numCtx is the arithmetic context for built-in numbers. 34 digits
// matches IEEE 754 decimal128.
var numCtx = apd.BaseContext.WithPrecision(34)

// BoolVal is a boolean literal. It has no computation rule.
type BoolVal struct {
	B bool
}

func (v BoolVal) Name() string {
	if v.B {
		return "true"
	}
	return "false"
}

func (v BoolVal) Hash() uint64 {
	if v.B {
		return hashMix(LitKind, 1)
	}
	return hashMix(LitKind, 0)
}

func (v BoolVal) Equal(other Literal) bool {
	w, ok := other.(BoolVal)
	return ok && w.B == v.B
}

func (v BoolVal) Reduce(*Arena, []Expr) (Expr, bool) { return nil, false }

// boolTypeVal is the type of booleans. It is a literal, not a Sort: the
// convertibility rules treat it as an inhabitant of every universe.
type boolTypeVal struct{}

func (boolTypeVal) Name() string { return "bool" }

func (boolTypeVal) Hash() uint64 { return hashString("bool") }

func (boolTypeVal) Equal(other Literal) bool { _, ok := other.(boolTypeVal); return ok }

func (boolTypeVal) Reduce(*Arena, []Expr) (Expr, bool) { return nil, false }

// A NumVal is an arbitrary-precision numeric literal.
type NumVal struct {
	X apd.Decimal
}

func (v *NumVal) Name() string { return v.X.Text('G') }

func (v *NumVal) Hash() uint64 { return hashString(v.X.Text('G')) }

func (v *NumVal) Equal(other Literal) bool {
	w, ok := other.(*NumVal)
	return ok && w.X.Cmp(&v.X) == 0
}

func (v *NumVal) Reduce(*Arena, []Expr) (Expr, bool) { return nil, false }

// A NumOp is a primitive operator over numeric literals. Applications
// are reduced only when every operand is a numeric literal.
type NumOp struct {
	OpName string
	Arity  int
	apply  func(a *Arena, args []*NumVal) (Expr, bool)
}

func (o *NumOp) Name() string { return "#" + o.OpName }

func (o *NumOp) Hash() uint64 { return hashString("#" + o.OpName) }

func (o *NumOp) Equal(other Literal) bool {
	w, ok := other.(*NumOp)
	return ok && w.OpName == o.OpName
}

func (o *NumOp) Reduce(a *Arena, args []Expr) (Expr, bool) {
	if len(args) != o.Arity+1 {
		return nil, false
	}
	nums := make([]*NumVal, 0, o.Arity)
	for _, e := range args[1:] {
		l, ok := e.(*Lit)
		if !ok {
			return nil, false
		}
		n, ok := l.V.(*NumVal)
		if !ok {
			return nil, false
		}
		nums = append(nums, n)
	}
	return o.apply(a, nums)
}

func binOp(name string, f func(d, x, y *apd.Decimal) (apd.Condition, error)) *NumOp {
	return &NumOp{OpName: name, Arity: 2, apply: func(a *Arena, args []*NumVal) (Expr, bool) {
		var d apd.Decimal
		if _, err := f(&d, &args[0].X, &args[1].X); err != nil {
			return nil, false
		}
		return a.Lit(&NumVal{X: d}), true
	}}
}

// Primitive numeric operators.
var (
	OpAdd = binOp("add", func(d, x, y *apd.Decimal) (apd.Condition, error) { return numCtx.Add(d, x, y) })
	OpSub = binOp("sub", func(d, x, y *apd.Decimal) (apd.Condition, error) { return numCtx.Sub(d, x, y) })
	OpMul = binOp("mul", func(d, x, y *apd.Decimal) (apd.Condition, error) { return numCtx.Mul(d, x, y) })

	OpNeg = &NumOp{OpName: "neg", Arity: 1, apply: func(a *Arena, args []*NumVal) (Expr, bool) {
		var d apd.Decimal
		if _, err := numCtx.Neg(&d, &args[0].X); err != nil {
			return nil, false
		}
		return a.Lit(&NumVal{X: d}), true
	}}

	OpLE = &NumOp{OpName: "le", Arity: 2, apply: func(a *Arena, args []*NumVal) (Expr, bool) {
		return a.Bool(args[0].X.Cmp(&args[1].X) <= 0), true
	}}
)

// Bool returns the boolean literal node for b.
func (a *Arena) Bool(b bool) Expr {
	if b {
		if a.boolTrue == nil {
			a.boolTrue = a.Lit(BoolVal{B: true})
		}
		return a.boolTrue
	}
	if a.boolFalse == nil {
		a.boolFalse = a.Lit(BoolVal{B: false})
	}
	return a.boolFalse
}

// BoolType returns the canonical node for the type of booleans.
func (a *Arena) BoolType() Expr {
	if a.boolType == nil {
		a.boolType = a.Lit(boolTypeVal{})
	}
	return a.boolType
}

// Int returns the numeric literal node for n.
func (a *Arena) Int(n int64) Expr {
	var d apd.Decimal
	d.SetInt64(n)
	return a.Lit(&NumVal{X: d})
}

// Num parses s as an arbitrary-precision number.
func (a *Arena) Num(s string) (Expr, error) {
	var v NumVal
	if _, _, err := v.X.SetString(s); err != nil {
		return nil, err
	}
	return a.Lit(&v), nil
}
