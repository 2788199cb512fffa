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

// svalueKind discriminates normalization stack values.
type svalueKind uint8

const (
	svExpr svalueKind = iota
	svClosure
	svBoundedVar
)

// An svalue is a value on the normalization stack: an already
// normalized expression, an un-entered lambda paired with the stack
// captured at construction, or a bound-variable marker carrying the
// binder depth at which it was introduced.
type svalue struct {
	kind svalueKind
	bvar int
	expr Expr
	env  *vstack
}

func svalueExpr(e Expr) svalue { return svalue{kind: svExpr, expr: e} }

func svalueBVar(k int) svalue { return svalue{kind: svBoundedVar, bvar: k} }

func svalueClosure(lam Expr, s *vstack) svalue {
	if lam.Kind() != LambdaKind {
		panic("kernel: closure over non-lambda")
	}
	return svalue{kind: svClosure, expr: lam, env: s}
}

func (v svalue) isClosure() bool { return v.kind == svClosure }

// A vstack is an immutable cons list of stack values holding the
// substitutions for the innermost binders. nil is the empty stack.
type vstack struct {
	head svalue
	tail *vstack
}

func extend(s *vstack, v svalue) *vstack {
	return &vstack{head: v, tail: s}
}
