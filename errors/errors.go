// Copyright (c) 2019 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors exports the error types a host compiler can match
// against with errors.As, without pulling in the allocator's internals.
package errors

import "fmt"

// PublicError is implemented by errors that are safe to report to
// users of the host compiler, as opposed to internal diagnostics.
type PublicError interface {
	PublicError() string
}

// InvariantError indicates that an assertion inside the allocator or
// the constant-motion pass failed: a precondition maintained by the
// data model was violated. This is always a bug upstream of this
// package (a malformed program, a broken liveness oracle, or a bug in
// the allocator itself), never a property of the input that a host
// could route around by retrying.
type InvariantError struct {
	text  string
	cause error
}

func NewInvariantError(text string) *InvariantError {
	return &InvariantError{text: text}
}

func WrapInvariantError(cause error, text string) *InvariantError {
	return &InvariantError{text: text, cause: cause}
}

func (e *InvariantError) Error() string { return e.text }
func (e *InvariantError) PublicError() string {
	return "internal register allocator invariant violated"
}
func (e *InvariantError) Unwrap() error { return e.cause }

// NonConvergenceError indicates that the outer spill-restart loop
// exceeded its iteration cap. Unlike InvariantError, this is a
// legitimate, recoverable compile failure: the host may fall back to
// a baseline code path for this procedure.
type NonConvergenceError struct {
	Bank       fmt.Stringer
	Iterations int
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("register allocation for %s bank did not converge after %d iterations", e.Bank, e.Iterations)
}

func (e *NonConvergenceError) PublicError() string {
	return "register allocation did not converge"
}
