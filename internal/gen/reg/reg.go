// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reg defines the physical register identifier shared by every
// bank's priority list.
package reg

import "fmt"

type R byte

func (r R) String() string {
	return fmt.Sprintf("r%d", r)
}
