// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enum

import "github.com/pkg/errors"

// CastOp is a conversion operator.
type CastOp uint8

// Conversion operators, in bitcode opcode order.
const (
	CastOpInvalid CastOp = iota
	CastOpTrunc
	CastOpZExt
	CastOpSExt
	CastOpFPToUI
	CastOpFPToSI
	CastOpUIToFP
	CastOpSIToFP
	CastOpFPTrunc
	CastOpFPExt
	CastOpPtrToInt
	CastOpIntToPtr
	CastOpBitCast
	CastOpAddrSpaceCast
)

// CastOpFromCode decodes a bitcode cast opcode. The decoding never
// consults the operand type.
func CastOpFromCode(code uint64) (CastOp, error) {
	if code > uint64(CastOpAddrSpaceCast-1) {
		return CastOpInvalid, errors.Errorf("invalid cast opcode %d", code)
	}
	return CastOp(code + 1), nil
}

func (op CastOp) String() string {
	switch op {
	case CastOpTrunc:
		return "trunc"
	case CastOpZExt:
		return "zext"
	case CastOpSExt:
		return "sext"
	case CastOpFPToUI:
		return "fptoui"
	case CastOpFPToSI:
		return "fptosi"
	case CastOpUIToFP:
		return "uitofp"
	case CastOpSIToFP:
		return "sitofp"
	case CastOpFPTrunc:
		return "fptrunc"
	case CastOpFPExt:
		return "fpext"
	case CastOpPtrToInt:
		return "ptrtoint"
	case CastOpIntToPtr:
		return "inttoptr"
	case CastOpBitCast:
		return "bitcast"
	case CastOpAddrSpaceCast:
		return "addrspacecast"
	}
	return "<invalid cast operator>"
}
