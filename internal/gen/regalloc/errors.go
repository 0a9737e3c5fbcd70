// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regalloc

import "gate.computer/regalloc/errors"

func invariantError(text string) error {
	return errors.NewInvariantError("regalloc: " + text)
}
