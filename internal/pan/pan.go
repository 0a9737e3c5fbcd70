// Copyright (c) 2025 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pan is the panic/recover zone used for boundary error handling
// across this module. Every exported entry point recovers a pan.Zone
// panic and turns it into a normal error; panics that are not raised
// through this zone (runtime errors, nil dereferences) propagate as bugs.
package pan

import (
	"import.name/pan"
)

var z = new(pan.Zone)

var Check = z.Check
var Panic = z.Panic
var Wrap = z.Wrap
var Error = z.Error

func Must[T any](x T, err error) T {
	Check(err)
	return x
}
