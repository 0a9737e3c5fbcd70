// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errorpanic recovers the panics raised through internal/pan at
// the two public entry points in package compile and turns them into
// ordinary errors. A panic that does not carry an error value, or that
// carries a runtime.Error, is a programmer bug rather than a reportable
// compile failure and is re-raised.
package errorpanic

import (
	"runtime"

	"gate.computer/regalloc/errors"
	"golang.org/x/xerrors"
)

func Handle(x interface{}) (err error) {
	if x != nil {
		err, _ = x.(error)
		if err == nil {
			panic(x)
		}

		if _, ok := err.(runtime.Error); ok {
			panic(x)
		}

		var inv *errors.InvariantError
		if xerrors.As(err, &inv) {
			return inv
		}

		var conv *errors.NonConvergenceError
		if xerrors.As(err, &conv) {
			return conv
		}
	}

	return
}
