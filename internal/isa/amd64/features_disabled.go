// Copyright (c) 2018 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build forceamd64

package amd64

var (
	haveLZCNT  = false
	havePOPCNT = false
	haveTZCNT  = false
)
