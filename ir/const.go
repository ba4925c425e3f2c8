// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// This file defines the constant variants. Constants are symbols like
// any other; the expression variants additionally hold operand slots
// that participate in forward-reference resolution.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/llir/llvm/ir/types"

	"github.com/declang/bcfunc/ir/enum"
)

// aConstant is the mixin for constants.
type aConstant struct {
	typ  types.Type
	name string
}

func newConstant(typ types.Type) aConstant {
	return aConstant{typ: typ, name: UnknownName}
}

func (c *aConstant) Name() string { return c.name }
func (c *aConstant) setName(name string) { c.name = name }
func (c *aConstant) Type() types.Type { return c.typ }
func (c *aConstant) Replace(old, new Symbol) {}
func (c *aConstant) constant() {}

// Int is an integer constant. V holds the decoded two's-complement
// value.
type Int struct {
	aConstant
	V int64
}

func (c *Int) String() string { return strconv.FormatInt(c.V, 10) }

// Float is a floating-point constant. Bits holds the raw bit pattern
// as encoded in the stream; interpretation depends on the type's
// floating kind.
type Float struct {
	aConstant
	Bits uint64
}

func (c *Float) String() string { return fmt.Sprintf("0x%X", c.Bits) }

// Null is the null value of a pointer or aggregate type.
type Null struct {
	aConstant
}

func (c *Null) String() string { return "zeroinitializer" }

// Undef is an undefined value.
type Undef struct {
	aConstant
}

func (c *Undef) String() string { return "undef" }

// CharArray is a string constant. CString marks the C form, which is
// implicitly null-terminated in the stream encoding; Data never
// includes the terminator.
type CharArray struct {
	aConstant
	Data    []byte
	CString bool
}

func (c *CharArray) String() string { return fmt.Sprintf("c%q", string(c.Data)) }

// DataArray is an aggregate built from a packed data record: a
// homogeneous array or vector of scalar element bit patterns.
type DataArray struct {
	aConstant
	Elems []uint64
}

func (c *DataArray) String() string {
	elems := make([]string, len(c.Elems))
	for i, e := range c.Elems {
		elems[i] = strconv.FormatUint(e, 10)
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// Aggregate is an array, struct or vector built from previously
// defined constants. An element may transiently be a ForwardRef; it
// is patched when the referenced slot fills.
type Aggregate struct {
	aConstant
	Elems []Constant
}

func (c *Aggregate) Replace(old, new Symbol) {
	for i, elem := range c.Elems {
		if elem == old {
			c.Elems[i] = new.(Constant)
		}
	}
}

func (c *Aggregate) String() string {
	elems := make([]string, len(c.Elems))
	for i, e := range c.Elems {
		elems[i] = relName(e)
	}
	return "{" + strings.Join(elems, ", ") + "}"
}

// ExprBinOp is a constant binary expression.
type ExprBinOp struct {
	aConstant
	Op    enum.BinaryOp
	Flags enum.Flags
	X, Y  Symbol
}

func (c *ExprBinOp) Replace(old, new Symbol) {
	replaceAll([]*Symbol{&c.X, &c.Y}, old, new)
}

func (c *ExprBinOp) String() string {
	return fmt.Sprintf("%s (%s, %s)", c.Op, relName(c.X), relName(c.Y))
}

// ExprCast is a constant conversion expression. The operator is
// decoded without consulting the operand type; consumers must not
// assume integer/floating differentiation through this path.
type ExprCast struct {
	aConstant
	Op   enum.CastOp
	From Symbol
}

func (c *ExprCast) Replace(old, new Symbol) {
	replaceAll([]*Symbol{&c.From}, old, new)
}

func (c *ExprCast) String() string {
	return fmt.Sprintf("%s (%s)", c.Op, relName(c.From))
}

// ExprCmp is a constant comparison expression.
type ExprCmp struct {
	aConstant
	Pred enum.CompareOp
	X, Y Symbol
}

func (c *ExprCmp) Replace(old, new Symbol) {
	replaceAll([]*Symbol{&c.X, &c.Y}, old, new)
}

func (c *ExprCmp) String() string {
	kind := "icmp"
	if c.Pred.IsFloat() {
		kind = "fcmp"
	}
	return fmt.Sprintf("%s %s (%s, %s)", kind, c.Pred, relName(c.X), relName(c.Y))
}

// ExprGetElementPtr is a constant address computation expression.
type ExprGetElementPtr struct {
	aConstant
	InBounds bool
	Base     Symbol
	Indices  []Symbol
}

func (c *ExprGetElementPtr) Replace(old, new Symbol) {
	rands := []*Symbol{&c.Base}
	for i := range c.Indices {
		rands = append(rands, &c.Indices[i])
	}
	replaceAll(rands, old, new)
}

func (c *ExprGetElementPtr) String() string {
	var sb strings.Builder
	sb.WriteString("getelementptr ")
	if c.InBounds {
		sb.WriteString("inbounds ")
	}
	sb.WriteString("(" + relName(c.Base))
	for _, index := range c.Indices {
		sb.WriteString(", " + relName(index))
	}
	sb.WriteString(")")
	return sb.String()
}

// BlockAddress is the address of a basic block of a function. Func is
// the function symbol; Block the addressed block. Both are non-owning
// handles.
type BlockAddress struct {
	aConstant
	Func  Symbol
	Block *BasicBlock
}

func (c *BlockAddress) Replace(old, new Symbol) {
	replaceAll([]*Symbol{&c.Func}, old, new)
}

func (c *BlockAddress) String() string {
	return fmt.Sprintf("blockaddress(%s, %s)", relName(c.Func), relName(c.Block))
}
