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

import "errors"

// ErrorCode indicates the type of a kernel error. The code may
// influence control flow; no other aspect of an error may.
type ErrorCode int8

const (
	// EvalError is a fatal evaluation error, such as a dangling free
	// variable.
	EvalError ErrorCode = iota // eval

	// DepthError means the normalizer exceeded its configured
	// recursion depth. Not retried.
	DepthError // depth

	// InterruptError means the cooperative cancellation flag was
	// observed. The normalizer must be discarded or cleared before
	// reuse.
	InterruptError // interrupt
)

// An Error is a kernel failure.
type Error struct {
	Code ErrorCode
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

var (
	errDepthExceeded = &Error{Code: DepthError, Msg: "kernel normalizer maximum recursion depth exceeded"}
	errInterrupted   = &Error{Code: InterruptError, Msg: "kernel normalizer interrupted"}
)

func evalErrorf(msg string) *Error { return &Error{Code: EvalError, Msg: msg} }

func codeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

// IsDepthExceeded reports whether err is a recursion-depth failure.
func IsDepthExceeded(err error) bool {
	c, ok := codeOf(err)
	return ok && c == DepthError
}

// IsInterrupted reports whether err is a cancellation failure.
func IsInterrupted(err error) bool {
	c, ok := codeOf(err)
	return ok && c == InterruptError
}
