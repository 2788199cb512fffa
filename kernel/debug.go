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
	"strings"
)

// ExprString renders e in a compact, deterministic prefix form for
// diagnostics and tests. It is not a pretty-printer; binder names are
// shown as written and variables stay as de Bruijn indices.
func ExprString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch x := e.(type) {
	case *Var:
		fmt.Fprintf(b, "#%d", x.Idx)
	case *Const:
		b.WriteString(x.Name)
	case *Sort:
		fmt.Fprintf(b, "Type(%s)", x.Level)
	case *Lit:
		b.WriteString(x.V.Name())
	case *App:
		b.WriteByte('(')
		writeExpr(b, x.Fn)
		for _, a := range x.Args {
			b.WriteByte(' ')
			writeExpr(b, a)
		}
		b.WriteByte(')')
	case *Eq:
		b.WriteString("(= ")
		writeExpr(b, x.LHS)
		b.WriteByte(' ')
		writeExpr(b, x.RHS)
		b.WriteByte(')')
	case *Lambda:
		writeBinder(b, "fun", &x.binder)
	case *Pi:
		writeBinder(b, "Pi", &x.binder)
	case *Let:
		fmt.Fprintf(b, "(let %s := ", x.Name)
		writeExpr(b, x.Value)
		b.WriteString(" in ")
		writeExpr(b, x.Body)
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "<%v>", e.Kind())
	}
}

func writeBinder(b *strings.Builder, tag string, x *binder) {
	fmt.Fprintf(b, "(%s (%s : ", tag, x.Name)
	writeExpr(b, x.Domain)
	b.WriteString(") ")
	writeExpr(b, x.Body)
	b.WriteByte(')')
}
