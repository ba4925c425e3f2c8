// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// This file implements the instruction and constant-expression
// operations of the builder protocol. The two modes share operand
// shapes but differ in placement: instructions go to the active block
// (value producers to the symbol table as well), constants to the
// symbol table only.
//
// A value producer is appended to the symbol table before any of its
// operands are resolved, so its index is stable by the time a lookup
// could hand out a placeholder. This is what lets a phi refer forward
// to a value that in turn refers back to the phi.

import (
	"github.com/llir/llvm/ir/types"
	"github.com/pkg/errors"

	"github.com/declang/bcfunc/ir/enum"
)

// defineValue places a value-producing instruction: symbol table
// first, then the active block.
func (f *Function) defineValue(v Value) error {
	b, err := f.currentBlock()
	if err != nil {
		return err
	}
	f.symbols.Append(v)
	b.emit(v)
	return nil
}

// emitVoid places an instruction that produces no value.
func (f *Function) emitVoid(instr Instruction) error {
	b, err := f.currentBlock()
	if err != nil {
		return err
	}
	b.emit(instr)
	return nil
}

// ---- Instructions ----

// CreateBinaryOperation appends a binary arithmetic or logic
// instruction. The operator decodes against the floating-point table
// when typ is floating (scalar or vector element); flags keeps only
// the bits relevant to the decoded operator.
func (f *Function) CreateBinaryOperation(typ types.Type, opcode, flags uint64, lhs, rhs int32) (*BinOp, error) {
	op, err := enum.BinaryOpFromCode(opcode, isFloat(typ))
	if err != nil {
		return nil, err
	}
	v := &BinOp{register: newRegister(typ), Op: op, Flags: enum.FlagsFromCode(op, flags)}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.X = f.symbols.LookupFor(lhs, v)
	v.Y = f.symbols.LookupFor(rhs, v)
	return v, nil
}

// CreateComparison appends a comparison instruction.
func (f *Function) CreateComparison(typ types.Type, pred uint64, lhs, rhs int32) (*Cmp, error) {
	p, err := enum.CompareOpFromCode(pred)
	if err != nil {
		return nil, err
	}
	v := &Cmp{register: newRegister(typ), Pred: p}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.X = f.symbols.LookupFor(lhs, v)
	v.Y = f.symbols.LookupFor(rhs, v)
	return v, nil
}

// CreateCast appends a conversion instruction.
func (f *Function) CreateCast(typ types.Type, opcode uint64, value int32) (*Convert, error) {
	op, err := enum.CastOpFromCode(opcode)
	if err != nil {
		return nil, err
	}
	v := &Convert{register: newRegister(typ), Op: op}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.From = f.symbols.LookupFor(value, v)
	return v, nil
}

// CreateAllocation appends a stack allocation instruction. count
// references the element-count symbol.
func (f *Function) CreateAllocation(typ types.Type, count int32, align uint64) (*Alloc, error) {
	v := &Alloc{register: newRegister(typ), Align: align}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.Count = f.symbols.LookupFor(count, v)
	return v, nil
}

// CreateLoad appends a load instruction.
func (f *Function) CreateLoad(typ types.Type, src int32, align uint64, volatile bool) (*Load, error) {
	v := &Load{register: newRegister(typ), Align: align, Volatile: volatile}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.Src = f.symbols.LookupFor(src, v)
	return v, nil
}

// CreateStore appends a store instruction.
func (f *Function) CreateStore(dst, src int32, align uint64, volatile bool) (*Store, error) {
	s := &Store{Align: align, Volatile: volatile}
	if err := f.emitVoid(s); err != nil {
		return nil, err
	}
	s.Dst = f.symbols.LookupFor(dst, s)
	s.Val = f.symbols.LookupFor(src, s)
	return s, nil
}

// CreateExtractElement appends a vector element read; the index is
// symbolic.
func (f *Function) CreateExtractElement(typ types.Type, vec, index int32) (*ExtractElement, error) {
	v := &ExtractElement{register: newRegister(typ)}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.X = f.symbols.LookupFor(vec, v)
	v.Index = f.symbols.LookupFor(index, v)
	return v, nil
}

// CreateInsertElement appends a vector element write; the index is
// symbolic.
func (f *Function) CreateInsertElement(typ types.Type, vec, elem, index int32) (*InsertElement, error) {
	v := &InsertElement{register: newRegister(typ)}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.X = f.symbols.LookupFor(vec, v)
	v.Elem = f.symbols.LookupFor(elem, v)
	v.Index = f.symbols.LookupFor(index, v)
	return v, nil
}

// CreateExtractValue appends an aggregate member read; the index is a
// literal.
func (f *Function) CreateExtractValue(typ types.Type, agg int32, index uint64) (*ExtractValue, error) {
	v := &ExtractValue{register: newRegister(typ), Index: index}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.X = f.symbols.LookupFor(agg, v)
	return v, nil
}

// CreateInsertValue appends an aggregate member write; the index is a
// literal.
func (f *Function) CreateInsertValue(typ types.Type, agg, elem int32, index uint64) (*InsertValue, error) {
	v := &InsertValue{register: newRegister(typ), Index: index}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.X = f.symbols.LookupFor(agg, v)
	v.Elem = f.symbols.LookupFor(elem, v)
	return v, nil
}

// CreateShuffleVector appends a vector shuffle instruction.
func (f *Function) CreateShuffleVector(typ types.Type, x, y, mask int32) (*ShuffleVector, error) {
	v := &ShuffleVector{register: newRegister(typ)}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.X = f.symbols.LookupFor(x, v)
	v.Y = f.symbols.LookupFor(y, v)
	v.Mask = f.symbols.LookupFor(mask, v)
	return v, nil
}

// CreateGetElementPointer appends an address computation instruction.
func (f *Function) CreateGetElementPointer(typ types.Type, base int32, indices []int32, inbounds bool) (*GetElementPtr, error) {
	v := &GetElementPtr{register: newRegister(typ), InBounds: inbounds}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.Base = f.symbols.LookupFor(base, v)
	v.Indices = make([]Symbol, len(indices))
	for i, index := range indices {
		v.Indices[i] = f.symbols.LookupFor(index, v)
	}
	return v, nil
}

// CreateBranch appends an unconditional branch to the block at the
// given index.
func (f *Function) CreateBranch(target int32) (*Jump, error) {
	b, err := f.Block(target)
	if err != nil {
		return nil, err
	}
	s := &Jump{Target: b}
	if err := f.emitVoid(s); err != nil {
		return nil, err
	}
	return s, nil
}

// CreateConditionalBranch appends a conditional branch.
func (f *Function) CreateConditionalBranch(cond, trueTarget, falseTarget int32) (*If, error) {
	then, err := f.Block(trueTarget)
	if err != nil {
		return nil, err
	}
	els, err := f.Block(falseTarget)
	if err != nil {
		return nil, err
	}
	s := &If{Then: then, Else: els}
	if err := f.emitVoid(s); err != nil {
		return nil, err
	}
	s.Cond = f.symbols.LookupFor(cond, s)
	return s, nil
}

// CreateIndirectBranch appends an indirect branch over the blocks at
// the given indices.
func (f *Function) CreateIndirectBranch(addr int32, targets []int32) (*IndirectJump, error) {
	blocks := make([]*BasicBlock, len(targets))
	for i, target := range targets {
		b, err := f.Block(target)
		if err != nil {
			return nil, err
		}
		blocks[i] = b
	}
	s := &IndirectJump{Targets: blocks}
	if err := f.emitVoid(s); err != nil {
		return nil, err
	}
	s.Addr = f.symbols.LookupFor(addr, s)
	return s, nil
}

// CreateSwitch appends a multi-way branch. caseValues and caseBlocks
// pair up by position and must have equal length. A case target equal
// to the default block is stored unchanged.
func (f *Function) CreateSwitch(cond, defaultTarget int32, caseValues, caseBlocks []int32) (*Switch, error) {
	if len(caseValues) != len(caseBlocks) {
		return nil, errors.Wrapf(ErrProtocolViolation,
			"switch with %d case values but %d case blocks", len(caseValues), len(caseBlocks))
	}
	def, err := f.Block(defaultTarget)
	if err != nil {
		return nil, err
	}
	s := &Switch{Default: def}
	if err := f.emitVoid(s); err != nil {
		return nil, err
	}
	s.Cond = f.symbols.LookupFor(cond, s)
	s.Cases = make([]SwitchCase, len(caseValues))
	for i := range caseValues {
		target, err := f.Block(caseBlocks[i])
		if err != nil {
			return nil, err
		}
		s.Cases[i].Target = target
		s.Cases[i].Value = f.symbols.LookupFor(caseValues[i], s)
	}
	return s, nil
}

// CreateSwitchOld appends a multi-way branch in the legacy encoding,
// whose case values are raw 64-bit integers rather than constant
// symbols. They are retained as such.
func (f *Function) CreateSwitchOld(cond, defaultTarget int32, caseValues []uint64, caseBlocks []int32) (*SwitchOld, error) {
	if len(caseValues) != len(caseBlocks) {
		return nil, errors.Wrapf(ErrProtocolViolation,
			"switch with %d case values but %d case blocks", len(caseValues), len(caseBlocks))
	}
	def, err := f.Block(defaultTarget)
	if err != nil {
		return nil, err
	}
	s := &SwitchOld{Default: def}
	if err := f.emitVoid(s); err != nil {
		return nil, err
	}
	s.Cond = f.symbols.LookupFor(cond, s)
	s.Cases = make([]SwitchOldCase, len(caseValues))
	for i := range caseValues {
		target, err := f.Block(caseBlocks[i])
		if err != nil {
			return nil, err
		}
		s.Cases[i] = SwitchOldCase{Value: caseValues[i], Target: target}
	}
	return s, nil
}

// CreateReturn appends a void return.
func (f *Function) CreateReturn() (*Return, error) {
	s := &Return{}
	if err := f.emitVoid(s); err != nil {
		return nil, err
	}
	return s, nil
}

// CreateReturnValue appends a return of the given value.
func (f *Function) CreateReturnValue(value int32) (*Return, error) {
	s := &Return{}
	if err := f.emitVoid(s); err != nil {
		return nil, err
	}
	s.Value = f.symbols.LookupFor(value, s)
	return s, nil
}

// CreateUnreachable appends an unreachable marker.
func (f *Function) CreateUnreachable() (*Unreachable, error) {
	s := &Unreachable{}
	if err := f.emitVoid(s); err != nil {
		return nil, err
	}
	return s, nil
}

// CreateCall appends a call of the target symbol. When typ is void
// the call produces no value and is not registered in the symbol
// table; otherwise it occupies the next slot like any value producer.
func (f *Function) CreateCall(typ types.Type, target int32, args []int32) (Instruction, error) {
	if isVoid(typ) {
		s := &VoidCall{}
		if err := f.emitVoid(s); err != nil {
			return nil, err
		}
		s.Callee = f.symbols.LookupFor(target, s)
		s.Args = make([]Symbol, len(args))
		for i, arg := range args {
			s.Args[i] = f.symbols.LookupFor(arg, s)
		}
		return s, nil
	}
	v := &Call{register: newRegister(typ)}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.Callee = f.symbols.LookupFor(target, v)
	v.Args = make([]Symbol, len(args))
	for i, arg := range args {
		v.Args[i] = f.symbols.LookupFor(arg, v)
	}
	return v, nil
}

// CreatePhi appends a phi instruction. values and blocks pair up by
// position and must have equal length. The phi's own index is
// assigned before its edges resolve, so an edge may reach the phi
// again through a later value.
func (f *Function) CreatePhi(typ types.Type, values, blocks []int32) (*Phi, error) {
	if len(values) != len(blocks) {
		return nil, errors.Wrapf(ErrProtocolViolation,
			"phi with %d values but %d blocks", len(values), len(blocks))
	}
	v := &Phi{register: newRegister(typ)}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.Edges = make([]PhiEdge, len(values))
	for i := range values {
		b, err := f.Block(blocks[i])
		if err != nil {
			return nil, err
		}
		v.Edges[i].Block = b
		v.Edges[i].Value = f.symbols.LookupFor(values[i], v)
	}
	return v, nil
}

// CreateSelect appends a select instruction.
func (f *Function) CreateSelect(typ types.Type, cond, trueValue, falseValue int32) (*Select, error) {
	v := &Select{register: newRegister(typ)}
	if err := f.defineValue(v); err != nil {
		return nil, err
	}
	v.Cond = f.symbols.LookupFor(cond, v)
	v.X = f.symbols.LookupFor(trueValue, v)
	v.Y = f.symbols.LookupFor(falseValue, v)
	return v, nil
}

// ---- Constants ----

// CreateInteger places an integer constant in the symbol table.
func (f *Function) CreateInteger(typ types.Type, value int64) *Int {
	c := &Int{aConstant: newConstant(typ), V: value}
	f.symbols.Append(c)
	return c
}

// CreateFloat places a floating-point constant, given as its raw bit
// pattern, in the symbol table.
func (f *Function) CreateFloat(typ types.Type, bits uint64) *Float {
	c := &Float{aConstant: newConstant(typ), Bits: bits}
	f.symbols.Append(c)
	return c
}

// CreateNull places a null constant in the symbol table.
func (f *Function) CreateNull(typ types.Type) *Null {
	c := &Null{aConstant: newConstant(typ)}
	f.symbols.Append(c)
	return c
}

// CreateUndefined places an undefined constant in the symbol table.
func (f *Function) CreateUndefined(typ types.Type) *Undef {
	c := &Undef{aConstant: newConstant(typ)}
	f.symbols.Append(c)
	return c
}

// CreateString places a raw string constant in the symbol table.
func (f *Function) CreateString(typ types.Type, data []byte) *CharArray {
	c := &CharArray{aConstant: newConstant(typ), Data: data}
	f.symbols.Append(c)
	return c
}

// CreateCString places a C string constant in the symbol table. data
// excludes the implicit terminator.
func (f *Function) CreateCString(typ types.Type, data []byte) *CharArray {
	c := &CharArray{aConstant: newConstant(typ), Data: data, CString: true}
	f.symbols.Append(c)
	return c
}

// CreateFromData places an aggregate constant built from a packed
// data record in the symbol table.
func (f *Function) CreateFromData(typ types.Type, elems []uint64) *DataArray {
	c := &DataArray{aConstant: newConstant(typ), Elems: elems}
	f.symbols.Append(c)
	return c
}

// CreateFromValues places an aggregate constant over previously
// defined constants in the symbol table. Every filled index must hold
// a constant.
func (f *Function) CreateFromValues(typ types.Type, indices []int32) (*Aggregate, error) {
	c := &Aggregate{aConstant: newConstant(typ)}
	f.symbols.Append(c)
	elems, err := f.symbols.Constants(indices, c)
	if err != nil {
		return nil, err
	}
	c.Elems = elems
	return c, nil
}

// CreateBinaryOperationExpression places a constant binary expression
// in the symbol table. Operator and flag decoding match the
// instruction form.
func (f *Function) CreateBinaryOperationExpression(typ types.Type, opcode, flags uint64, lhs, rhs int32) (*ExprBinOp, error) {
	op, err := enum.BinaryOpFromCode(opcode, isFloat(typ))
	if err != nil {
		return nil, err
	}
	c := &ExprBinOp{aConstant: newConstant(typ), Op: op, Flags: enum.FlagsFromCode(op, flags)}
	f.symbols.Append(c)
	c.X = f.symbols.LookupFor(lhs, c)
	c.Y = f.symbols.LookupFor(rhs, c)
	return c, nil
}

// CreateCastExpression places a constant conversion expression in the
// symbol table. The operand type plays no part in decoding the
// operator.
func (f *Function) CreateCastExpression(typ types.Type, opcode uint64, value int32) (*ExprCast, error) {
	op, err := enum.CastOpFromCode(opcode)
	if err != nil {
		return nil, err
	}
	c := &ExprCast{aConstant: newConstant(typ), Op: op}
	f.symbols.Append(c)
	c.From = f.symbols.LookupFor(value, c)
	return c, nil
}

// CreateCompareExpression places a constant comparison expression in
// the symbol table.
func (f *Function) CreateCompareExpression(typ types.Type, pred uint64, lhs, rhs int32) (*ExprCmp, error) {
	p, err := enum.CompareOpFromCode(pred)
	if err != nil {
		return nil, err
	}
	c := &ExprCmp{aConstant: newConstant(typ), Pred: p}
	f.symbols.Append(c)
	c.X = f.symbols.LookupFor(lhs, c)
	c.Y = f.symbols.LookupFor(rhs, c)
	return c, nil
}

// CreateGetElementPointerExpression places a constant address
// computation expression in the symbol table.
func (f *Function) CreateGetElementPointerExpression(typ types.Type, base int32, indices []int32, inbounds bool) (*ExprGetElementPtr, error) {
	c := &ExprGetElementPtr{aConstant: newConstant(typ), InBounds: inbounds}
	f.symbols.Append(c)
	c.Base = f.symbols.LookupFor(base, c)
	c.Indices = make([]Symbol, len(indices))
	for i, index := range indices {
		c.Indices[i] = f.symbols.LookupFor(index, c)
	}
	return c, nil
}

// CreateBlockAddress places a block-address constant in the symbol
// table. method references the function symbol; block indexes that
// function's block array.
func (f *Function) CreateBlockAddress(typ types.Type, method, block int32) (*BlockAddress, error) {
	c := &BlockAddress{aConstant: newConstant(typ)}
	f.symbols.Append(c)
	c.Func = f.symbols.LookupFor(method, c)
	fn, ok := c.Func.(*Function)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "symbol %d is %T, not a function", method, c.Func)
	}
	b, err := fn.Block(block)
	if err != nil {
		return nil, err
	}
	c.Block = b
	return c, nil
}
