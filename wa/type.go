// Copyright (c) 2016 Timo Savola. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wa holds the value types shared by the allocator and the
// constant-motion pass.
package wa

// Bank partitions registers and temporaries into two disjoint classes.
// Interference is computed independently per bank.
type Bank uint8

const (
	GP = Bank(0)
	FP = Bank(1)
)

func (b Bank) String() string {
	switch b {
	case GP:
		return "gp"

	case FP:
		return "fp"

	default:
		return "<invalid bank>"
	}
}

type Size uint8

const (
	Size32 = Size(4)
	Size64 = Size(8)
)

type Type uint8

const (
	Void = Type(0)
	I32  = Type(4 | GP)
	I64  = Type(8 | GP)
	F32  = Type(4 | FP)
	F64  = Type(8 | FP)
)

// Bank of a non-void type.
func (t Type) Bank() Bank {
	return Bank(t & 1)
}

// Size in bytes.
func (t Type) Size() Size {
	return Size(t) & (4 | 8)
}

func (t Type) String() string {
	switch t {
	case Void:
		return "void"

	case I32:
		return "i32"

	case I64:
		return "i64"

	case F32:
		return "f32"

	case F64:
		return "f64"

	default:
		return "<invalid type>"
	}
}
