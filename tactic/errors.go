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

package tactic

// An Error is a tactic failure. It carries the state the failing
// tactic started from so callers can report or resume.
type Error struct {
	Msg   string
	State State
}

func (e *Error) Error() string { return e.Msg }

// NewError wraps a failure message with the originating state.
func NewError(msg string, s State) *Error {
	return &Error{Msg: msg, State: s}
}

// NewNoGoalsError is the failure for tactics invoked on a state with
// nothing to prove.
func NewNoGoalsError(s State) *Error {
	return &Error{Msg: "tactic failed, there are no goals to be solved", State: s}
}
