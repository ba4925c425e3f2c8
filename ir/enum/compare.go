// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package enum

import "github.com/pkg/errors"

// CompareOp is a comparison predicate. Floating-point and integer
// predicates occupy disjoint ranges of a single bitcode opcode space
// (0-15 and 32-41), so one enumeration covers both.
type CompareOp uint8

// Comparison predicates.
const (
	CompareOpInvalid CompareOp = iota

	// Floating-point predicates.
	FCmpFalse // always false
	FCmpOEQ   // ordered and equal
	FCmpOGT   // ordered and greater than
	FCmpOGE   // ordered and greater or equal
	FCmpOLT   // ordered and less than
	FCmpOLE   // ordered and less or equal
	FCmpONE   // ordered and not equal
	FCmpORD   // ordered (no NaNs)
	FCmpUNO   // unordered (either NaN)
	FCmpUEQ   // unordered or equal
	FCmpUGT   // unordered or greater than
	FCmpUGE   // unordered or greater or equal
	FCmpULT   // unordered or less than
	FCmpULE   // unordered or less or equal
	FCmpUNE   // unordered or not equal
	FCmpTrue  // always true

	// Integer predicates.
	ICmpEQ
	ICmpNE
	ICmpUGT
	ICmpUGE
	ICmpULT
	ICmpULE
	ICmpSGT
	ICmpSGE
	ICmpSLT
	ICmpSLE
)

const (
	fcmpCodeMax = 15
	icmpCodeMin = 32
	icmpCodeMax = 41
)

// CompareOpFromCode decodes a bitcode comparison predicate.
func CompareOpFromCode(code uint64) (CompareOp, error) {
	switch {
	case code <= fcmpCodeMax:
		return FCmpFalse + CompareOp(code), nil
	case icmpCodeMin <= code && code <= icmpCodeMax:
		return ICmpEQ + CompareOp(code-icmpCodeMin), nil
	}
	return CompareOpInvalid, errors.Errorf("invalid comparison predicate %d", code)
}

// IsFloat reports whether op is a floating-point predicate.
func (op CompareOp) IsFloat() bool {
	return FCmpFalse <= op && op <= FCmpTrue
}

func (op CompareOp) String() string {
	switch op {
	case FCmpFalse:
		return "false"
	case FCmpOEQ:
		return "oeq"
	case FCmpOGT:
		return "ogt"
	case FCmpOGE:
		return "oge"
	case FCmpOLT:
		return "olt"
	case FCmpOLE:
		return "ole"
	case FCmpONE:
		return "one"
	case FCmpORD:
		return "ord"
	case FCmpUNO:
		return "uno"
	case FCmpUEQ:
		return "ueq"
	case FCmpUGT:
		return "ugt"
	case FCmpUGE:
		return "uge"
	case FCmpULT:
		return "ult"
	case FCmpULE:
		return "ule"
	case FCmpUNE:
		return "une"
	case FCmpTrue:
		return "true"
	case ICmpEQ:
		return "eq"
	case ICmpNE:
		return "ne"
	case ICmpUGT:
		return "ugt"
	case ICmpUGE:
		return "uge"
	case ICmpULT:
		return "ult"
	case ICmpULE:
		return "ule"
	case ICmpSGT:
		return "sgt"
	case ICmpSGE:
		return "sge"
	case ICmpSLT:
		return "slt"
	case ICmpSLE:
		return "sle"
	}
	return "<invalid comparison predicate>"
}
