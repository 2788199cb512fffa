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

// Kind reports the variant of an expression node.
type Kind uint8

const (
	// VarKind is a bound or free variable (de Bruijn index).
	VarKind Kind = iota

	// ConstKind is a reference to an environment object.
	ConstKind

	// SortKind is a universe, Type(l).
	SortKind

	// LitKind is a built-in semantic value with an optional
	// computation rule.
	LitKind

	// AppKind is an n-ary application, n >= 1.
	AppKind

	// EqKind is propositional equality.
	EqKind

	// LambdaKind and PiKind are the two binder forms.
	LambdaKind
	PiKind

	// LetKind is a local definition.
	LetKind
)

var kindStrs = [...]string{
	VarKind:    "var",
	ConstKind:  "const",
	SortKind:   "sort",
	LitKind:    "lit",
	AppKind:    "app",
	EqKind:     "eq",
	LambdaKind: "lambda",
	PiKind:     "pi",
	LetKind:    "let",
}

func (k Kind) String() string {
	if int(k) < len(kindStrs) {
		return kindStrs[k]
	}
	return "unknown"
}
