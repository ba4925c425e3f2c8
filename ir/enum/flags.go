// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enum

import "strings"

// Flags is a set of arithmetic flags attached to a binary operation.
type Flags uint16

// Arithmetic flags.
const (
	// Overflow flags of add, sub, mul and shl.
	FlagNUW Flags = 1 << iota // no unsigned wrap
	FlagNSW                   // no signed wrap

	// Exactness flag of udiv, sdiv, lshr and ashr.
	FlagExact

	// Fast-math flags of the floating-point operators.
	FlagReassoc
	FlagNoNaNs
	FlagNoInfs
	FlagNoSignedZeros
	FlagAllowReciprocal
	FlagAllowContract
	FlagApproxFunc
)

// FlagsFromCode extracts the flag bits relevant to op from the raw
// flag word of the bitcode record. Bits that do not apply to op are
// discarded.
func FlagsFromCode(op BinaryOp, bits uint64) Flags {
	var flags Flags
	switch op {
	case BinaryOpAdd, BinaryOpSub, BinaryOpMul, BinaryOpShl:
		if bits&(1<<0) != 0 {
			flags |= FlagNUW
		}
		if bits&(1<<1) != 0 {
			flags |= FlagNSW
		}
	case BinaryOpUDiv, BinaryOpSDiv, BinaryOpLShr, BinaryOpAShr:
		if bits&(1<<0) != 0 {
			flags |= FlagExact
		}
	case BinaryOpFAdd, BinaryOpFSub, BinaryOpFMul, BinaryOpFDiv, BinaryOpFRem:
		fast := []Flags{
			FlagReassoc,
			FlagNoNaNs,
			FlagNoInfs,
			FlagNoSignedZeros,
			FlagAllowReciprocal,
			FlagAllowContract,
			FlagApproxFunc,
		}
		for i, flag := range fast {
			if bits&(1<<uint(i)) != 0 {
				flags |= flag
			}
		}
	}
	return flags
}

// Has reports whether all bits of flag are set.
func (flags Flags) Has(flag Flags) bool {
	return flags&flag == flag
}

func (flags Flags) String() string {
	var names []string
	add := func(flag Flags, name string) {
		if flags.Has(flag) {
			names = append(names, name)
		}
	}
	add(FlagNUW, "nuw")
	add(FlagNSW, "nsw")
	add(FlagExact, "exact")
	add(FlagReassoc, "reassoc")
	add(FlagNoNaNs, "nnan")
	add(FlagNoInfs, "ninf")
	add(FlagNoSignedZeros, "nsz")
	add(FlagAllowReciprocal, "arcp")
	add(FlagAllowContract, "contract")
	add(FlagApproxFunc, "afn")
	return strings.Join(names, " ")
}
