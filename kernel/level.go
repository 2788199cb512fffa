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
	"strconv"
)

// A Level identifies a universe. A level is either numeric (Name == "")
// or a declared universe variable plus a numeric offset. Numeric levels
// are totally ordered; named levels are ordered by the constraint graph
// the environment carries.
type Level struct {
	Name string
	N    uint32
}

// Lvl returns the numeric level n.
func Lvl(n uint32) Level { return Level{N: n} }

// ULvl returns the level name+n.
func ULvl(name string, n uint32) Level { return Level{Name: name, N: n} }

// IsNumeric reports whether l is a concrete numeric level.
func (l Level) IsNumeric() bool { return l.Name == "" }

func (l Level) String() string {
	if l.IsNumeric() {
		return strconv.FormatUint(uint64(l.N), 10)
	}
	if l.N == 0 {
		return l.Name
	}
	return fmt.Sprintf("%s+%d", l.Name, l.N)
}

func (l Level) hash() uint64 {
	return hashMix(SortKind, hashString(l.Name), uint64(l.N))
}
