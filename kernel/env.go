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

// An Environment resolves constant names to declared objects and
// answers the universe partial order. It must be read-only for the
// duration of a normalization session.
type Environment interface {
	// GetObject returns the object declared under name.
	GetObject(name string) (Object, bool)

	// IsGE reports whether universe u is greater than or equal to v.
	IsGE(u, v Level) bool
}

// An Object is a single environment declaration.
type Object interface {
	// IsDefinition reports whether the object carries a defining
	// expression. Theorems are definitions for storage purposes but
	// are opaque to the normalizer.
	IsDefinition() bool

	// IsOpaque reports whether delta-unfolding may not see through
	// this object.
	IsOpaque() bool

	// Type returns the declared type of the object.
	Type() Expr

	// Value returns the defining expression. It panics for
	// non-definitions.
	Value() Expr
}

// ObjKind discriminates environment declarations.
type ObjKind uint8

const (
	DefinitionKind ObjKind = iota
	TheoremKind
	AxiomKind
)

func (k ObjKind) String() string {
	switch k {
	case DefinitionKind:
		return "definition"
	case TheoremKind:
		return "theorem"
	case AxiomKind:
		return "axiom"
	}
	return "unknown"
}

// A Decl is the concrete Object used by DeclEnv.
type Decl struct {
	Name   string
	DKind  ObjKind
	DType  Expr
	DValue Expr
	Opaque bool
}

func (d *Decl) IsDefinition() bool { return d.DKind != AxiomKind }

func (d *Decl) IsOpaque() bool {
	// Theorem proofs are never unfolded.
	return d.Opaque || d.DKind == TheoremKind
}

func (d *Decl) Type() Expr { return d.DType }

func (d *Decl) Value() Expr {
	if d.DValue == nil {
		panic("kernel: value of non-definition " + d.Name)
	}
	return d.DValue
}

// A DeclEnv is a map-backed Environment for embedding clients and
// tests. The zero value is not usable; call NewDeclEnv.
type DeclEnv struct {
	objects map[string]*Decl

	// ge[u][v] records a declared constraint u >= v between named
	// universes.
	ge map[string]map[string]bool
}

func NewDeclEnv() *DeclEnv {
	return &DeclEnv{
		objects: map[string]*Decl{},
		ge:      map[string]map[string]bool{},
	}
}

// AddDefinition declares name : typ := value. Opaque definitions are
// not delta-unfolded by the normalizer.
func (e *DeclEnv) AddDefinition(name string, typ, value Expr, opaque bool) {
	e.objects[name] = &Decl{Name: name, DKind: DefinitionKind, DType: typ, DValue: value, Opaque: opaque}
}

// AddTheorem declares a proved statement. Its proof term is stored but
// treated as opaque.
func (e *DeclEnv) AddTheorem(name string, typ, proof Expr) {
	e.objects[name] = &Decl{Name: name, DKind: TheoremKind, DType: typ, DValue: proof}
}

// AddAxiom declares name : typ with no value.
func (e *DeclEnv) AddAxiom(name string, typ Expr) {
	e.objects[name] = &Decl{Name: name, DKind: AxiomKind, DType: typ}
}

// AddUniverse declares a named universe that dominates the universes
// named by the given levels. Only their names are recorded; the offsets
// of the given levels are ignored.
func (e *DeclEnv) AddUniverse(name string, above ...Level) {
	m := e.ge[name]
	if m == nil {
		m = map[string]bool{}
		e.ge[name] = m
	}
	for _, l := range above {
		m[l.Name] = true
	}
}

func (e *DeclEnv) GetObject(name string) (Object, bool) {
	d, ok := e.objects[name]
	if !ok {
		return nil, false
	}
	return d, true
}

// IsGE implements the universe partial order: numeric levels compare by
// value, same-named levels by offset, and distinct names through the
// declared constraint graph.
func (e *DeclEnv) IsGE(u, v Level) bool {
	if u.Name == v.Name {
		return u.N >= v.N
	}
	return e.reaches(u.Name, v.Name, map[string]bool{}) && u.N >= v.N
}

func (e *DeclEnv) reaches(from, to string, seen map[string]bool) bool {
	if seen[from] {
		return false
	}
	seen[from] = true
	m := e.ge[from]
	if m[to] {
		return true
	}
	for next := range m {
		if e.reaches(next, to, seen) {
			return true
		}
	}
	return false
}
