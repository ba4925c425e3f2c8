// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import (
	"fmt"

	"github.com/llir/llvm/ir/types"
)

// BasicBlock is a straight-line sequence of instructions ending in a
// control-flow instruction. A block is also a symbol: branch, switch,
// indirect-branch and phi operands and block-address constants refer
// to it by handle.
//
// Block 0 of a function is the entry block and is named by the empty
// string; other blocks left anonymous receive numeric names on
// ExitFunction.
type BasicBlock struct {
	// Index is the block's position in Function.Blocks.
	Index int32
	// Instrs is the block's instructions, in insertion order.
	Instrs []Instruction

	parent *Function
	name   string
}

// Parent returns the function that contains the block.
func (b *BasicBlock) Parent() *Function { return b.parent }

func (b *BasicBlock) Name() string { return b.name }
func (b *BasicBlock) setName(name string) { b.name = name }

// Type returns the label type; blocks are targetable symbols.
func (b *BasicBlock) Type() types.Type { return types.Label }

// Replace is a no-op; a block holds no rewritable symbol operands.
// Its instructions are patched individually.
func (b *BasicBlock) Replace(old, new Symbol) {}

// Accept visits the block's instructions in insertion order.
func (b *BasicBlock) Accept(v InstructionVisitor) {
	for _, instr := range b.Instrs {
		instr.Accept(v)
	}
}

func (b *BasicBlock) String() string {
	if b.name == UnknownName {
		return fmt.Sprintf("block#%d", b.Index)
	}
	if b.name == "" {
		return "entry"
	}
	return b.name
}

// emit appends instr to the block and records the containing block on
// the instruction.
func (b *BasicBlock) emit(instr Instruction) {
	instr.(interface{ setBlock(*BasicBlock) }).setBlock(b)
	b.Instrs = append(b.Instrs, instr)
}
