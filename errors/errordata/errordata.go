// Copyright (c) 2022 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errordata helps with error serialization across a process
// boundary (e.g. a host that runs this module's entry points out of
// process and reports failures back over a wire protocol).
package errordata

import (
	"errors"

	werrors "gate.computer/regalloc/errors"
)

// Internal details of an error.
type Internal struct {
	Error  string  `json:"error,omitempty"` // Omitted if same as public error.
	Public *Public `json:"public,omitempty"`
}

// Deconstruct an error on best-effort basis.
func Deconstruct(err error) *Internal {
	if pub := deconstructNonConvergence(err); pub != nil {
		return newInternalWithPublic(err, pub)
	}
	if pub := deconstructInvariant(err); pub != nil {
		return newInternalWithPublic(err, pub)
	}
	if pub := deconstructPublic(err); pub != nil { // Must be last.
		return newInternalWithPublic(err, pub)
	}

	return &Internal{
		Error: err.Error(),
	}
}

func newInternalWithPublic(err error, pub *Public) *Internal {
	x := &Internal{
		Public: pub,
	}
	if s := err.Error(); s != pub.Error {
		x.Error = s
	}
	return x
}

// GetPublic representation which is well-formed even if there are no public
// details.
func (x *Internal) GetPublic() *Public {
	if x.Public != nil {
		return x.Public
	}

	return &Public{
		Error: "internal error",
	}
}

// Reconstruct an error.
func (x *Internal) Reconstruct() error {
	if x.Public == nil {
		return errors.New(x.Error)
	}

	s := x.Public.Error
	if x.Error != "" {
		s = x.Error
	}
	return reconstructError(s, x.Public)
}

// Public details of an error.
type Public struct {
	Error          string          `json:"error"`
	Invariant      *Invariant      `json:"invariant,omitempty"`
	NonConvergence *NonConvergence `json:"non_convergence,omitempty"`
}

func deconstructPublic(err error) *Public {
	var e werrors.PublicError
	if !errors.As(err, &e) {
		return nil
	}

	return &Public{
		Error: e.PublicError(),
	}
}

// Reconstruct an error without internal details.
func (x *Public) Reconstruct() error {
	return reconstructError(x.Error, x)
}

// Invariant error details: an assertion inside the allocator failed.
type Invariant struct{}

func deconstructInvariant(err error) *Public {
	var e *werrors.InvariantError
	if !errors.As(err, &e) {
		return nil
	}

	return &Public{
		Error:     e.PublicError(),
		Invariant: &Invariant{},
	}
}

// NonConvergence error details: the outer spill-restart loop hit its cap.
type NonConvergence struct {
	Bank       string `json:"bank"`
	Iterations int    `json:"iterations"`
}

func deconstructNonConvergence(err error) *Public {
	var e *werrors.NonConvergenceError
	if !errors.As(err, &e) {
		return nil
	}

	return &Public{
		Error: e.PublicError(),
		NonConvergence: &NonConvergence{
			Bank:       e.Bank.String(),
			Iterations: e.Iterations,
		},
	}
}

func reconstructError(s string, x *Public) error {
	if x.Invariant != nil {
		return errors.New(s)
	}
	if x.NonConvergence != nil {
		return newPublicError(s, x)
	}
	return newPublicError(s, x)
}

type publicError struct {
	s      string
	public string
}

var _ werrors.PublicError = (*publicError)(nil)

func (e *publicError) Error() string       { return e.s }
func (e *publicError) PublicError() string { return e.public }

func newPublicError(s string, x *Public) error {
	return &publicError{
		s:      s,
		public: x.Error,
	}
}
