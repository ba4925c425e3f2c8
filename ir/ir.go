// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ir models LLVM bitcode function bodies in memory.
//
// A Function is assembled by a bitcode decoder through the builder
// protocol: parameters are declared, basic blocks are allocated up
// front, then each block is filled with instructions in stream order.
// Operands are referenced by 32-bit indices into the function's
// symbol table; an index may refer to a symbol that is only defined
// later in the stream, in which case the table hands out a
// placeholder that is patched into every holder when the slot fills.
// ExitFunction freezes the function, assigning numeric names to the
// blocks and value-producing instructions that were never named.
//
// Consumers traverse a finished function through the visitor surface
// (FunctionVisitor, InstructionVisitor) or the exported fields.
package ir

import "github.com/llir/llvm/ir/types"

// UnknownName is the name of a symbol that has not been assigned a
// name. It is distinct from the empty string, which is a valid name
// (the entry basic block carries it).
const UnknownName = "\x00unknown"

// Holder is anything that holds Symbol operands and can have them
// rewritten during forward-reference resolution.
type Holder interface {
	// Replace rewrites every operand slot that holds old so that it
	// holds new. Holders without rewritable operands implement it as
	// a no-op.
	Replace(old, new Symbol)
}

// Symbol is any operand-eligible entity of a function body: a
// constant, a function parameter, a basic block, a value-producing
// instruction or a function definition.
type Symbol interface {
	Holder

	// Name returns the symbol's name, or UnknownName if the symbol
	// has not been named.
	Name() string

	// Type returns the symbol's type. A placeholder's type may be
	// nil until the reference resolves.
	Type() types.Type
}

// Instruction is a member of a basic block's instruction list.
type Instruction interface {
	Holder

	// Parent returns the block that contains the instruction.
	Parent() *BasicBlock

	// Accept calls the visitor method corresponding to the
	// instruction's concrete type.
	Accept(v InstructionVisitor)

	// Operands appends to rands the addresses of the instruction's
	// rewritable symbol operands and returns the resulting slice.
	// Block targets are not included; they are resolved eagerly and
	// never subject to replacement.
	Operands(rands []*Symbol) []*Symbol
}

// Value is a Symbol defined by a value-producing instruction. Value
// instructions occupy a slot in the function's symbol table and
// receive a numeric name on ExitFunction if left anonymous.
type Value interface {
	Symbol
	Instruction
}

// Constant is a Symbol whose value is known at assembly time.
// ForwardRef satisfies Constant so that aggregate construction can
// hold a placeholder until it resolves.
type Constant interface {
	Symbol
	constant()
}

// setNamable is implemented by every symbol whose name can be set
// after creation.
type setNamable interface {
	setName(name string)
}

// register is the mixin for value-producing instructions: a type, the
// containing block, and a name assigned on ExitFunction if the
// bitcode symbol table did not supply one.
type register struct {
	block *BasicBlock
	typ   types.Type
	name  string
}

func newRegister(typ types.Type) register {
	return register{typ: typ, name: UnknownName}
}

func (r *register) Name() string { return r.name }
func (r *register) setName(name string) { r.name = name }
func (r *register) Type() types.Type { return r.typ }
func (r *register) Parent() *BasicBlock { return r.block }
func (r *register) setBlock(b *BasicBlock) { r.block = b }

// anInstruction is the mixin for instructions that do not produce a
// value. They appear in a block but never in the symbol table.
type anInstruction struct {
	block *BasicBlock
}

func (i *anInstruction) Parent() *BasicBlock { return i.block }
func (i *anInstruction) setBlock(b *BasicBlock) { i.block = b }

// replaceAll rewrites every operand slot in rands that holds old.
func replaceAll(rands []*Symbol, old, new Symbol) {
	for _, rand := range rands {
		if *rand == old {
			*rand = new
		}
	}
}

// isFloat reports whether t is a floating-point type or a vector of
// floating-point elements.
func isFloat(t types.Type) bool {
	if v, ok := t.(*types.VectorType); ok {
		t = v.ElemType
	}
	_, ok := t.(*types.FloatType)
	return ok
}

// isVoid reports whether t is the void type.
func isVoid(t types.Type) bool {
	_, ok := t.(*types.VoidType)
	return ok
}
