// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// This file implements the Function type and the block/naming side of
// the builder protocol. The instruction and constant-expression
// operations live in builder.go.

import (
	"strconv"

	"github.com/llir/llvm/ir/types"
	"github.com/pkg/errors"
)

// Function is a function definition under construction or finished.
// It exclusively owns its parameters, blocks and symbol table; all
// other references into the function (branch targets, phi edges,
// block addresses) are non-owning handles.
//
// A Function is itself a symbol: call targets and block-address
// constants refer to it, and its reported type is a pointer to the
// function type.
type Function struct {
	// Params are the function's parameters. They occupy the lowest
	// indices of the symbol table, in order.
	Params []*Parameter
	// Blocks is the block array, allocated up front by
	// AllocateBlocks. Blocks[0] is the entry block.
	Blocks []*BasicBlock

	name    string
	sig     *types.FuncType
	typ     *types.PointerType
	symbols *SymbolTable
	// current is the cursor consumed by GenerateBlock; the active
	// block for instruction emission is Blocks[current-1].
	current int
}

// NewFunction returns an empty function definition with the given
// signature.
func NewFunction(sig *types.FuncType) *Function {
	return &Function{
		name:    UnknownName,
		sig:     sig,
		typ:     types.NewPointer(sig),
		symbols: &SymbolTable{},
	}
}

// Name returns the function's name, decorated with a leading "@", or
// UnknownName if the function has not been named.
func (f *Function) Name() string { return f.name }

func (f *Function) setName(name string) { f.name = name }

// Type returns the pointer-to-function type of the definition.
func (f *Function) Type() types.Type { return f.typ }

// Sig returns the function's signature.
func (f *Function) Sig() *types.FuncType { return f.sig }

// Replace is a no-op; a function definition holds no rewritable
// symbol operands.
func (f *Function) Replace(old, new Symbol) {}

// Symbols returns the function's symbol table.
func (f *Function) Symbols() *SymbolTable { return f.symbols }

// NumBlocks returns the number of allocated blocks.
func (f *Function) NumBlocks() int { return len(f.Blocks) }

// Block returns the block at the given index.
func (f *Function) Block(index int32) (*BasicBlock, error) {
	if index < 0 || int(index) >= len(f.Blocks) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "block %d of %d", index, len(f.Blocks))
	}
	return f.Blocks[index], nil
}

// Accept visits the function's blocks in index order.
func (f *Function) Accept(v FunctionVisitor) {
	for _, b := range f.Blocks {
		v.VisitBlock(b)
	}
}

func (f *Function) String() string {
	if f.name == UnknownName {
		return "@?"
	}
	return f.name
}

// Parameter is a positional function parameter.
type Parameter struct {
	parent *Function
	index  int
	typ    types.Type
	name   string
}

// Index returns the parameter's position, which is also its
// symbol-table index.
func (p *Parameter) Index() int { return p.index }

// Parent returns the function the parameter belongs to.
func (p *Parameter) Parent() *Function { return p.parent }

func (p *Parameter) Name() string { return p.name }
func (p *Parameter) setName(name string) { p.name = name }
func (p *Parameter) Type() types.Type { return p.typ }
func (p *Parameter) Replace(old, new Symbol) {}

// ---- Builder protocol: parameters, blocks, naming ----

// CreateParameter appends a parameter of the given type. Its position
// defines its index in both the parameter list and the symbol table.
// Parameters are created before any block is allocated.
func (f *Function) CreateParameter(typ types.Type) *Parameter {
	p := &Parameter{
		parent: f,
		index:  len(f.Params),
		typ:    typ,
		name:   UnknownName,
	}
	f.Params = append(f.Params, p)
	f.symbols.Append(p)
	return p
}

// AllocateBlocks creates the function's block array. Block 0 is the
// entry block and is named by the empty string; the rest start
// anonymous.
func (f *Function) AllocateBlocks(count int) error {
	if f.Blocks != nil {
		return errors.Wrap(ErrProtocolViolation, "blocks already allocated")
	}
	if count < 1 {
		return errors.Wrapf(ErrProtocolViolation, "allocating %d blocks", count)
	}
	f.Blocks = make([]*BasicBlock, count)
	for i := range f.Blocks {
		name := UnknownName
		if i == 0 {
			name = ""
		}
		f.Blocks[i] = &BasicBlock{Index: int32(i), parent: f, name: name}
	}
	return nil
}

// GenerateBlock returns the next unopened block, advancing the
// cursor. Blocks are emitted strictly in index order; subsequent
// instruction creations append to the returned block.
func (f *Function) GenerateBlock() (*BasicBlock, error) {
	if f.Blocks == nil {
		return nil, errors.Wrap(ErrProtocolViolation, "GenerateBlock before AllocateBlocks")
	}
	if f.current >= len(f.Blocks) {
		return nil, errors.Wrapf(ErrProtocolViolation, "all %d blocks already generated", len(f.Blocks))
	}
	b := f.Blocks[f.current]
	f.current++
	return b, nil
}

// EnterBlock is a stream marker; the active block is determined
// solely by GenerateBlock.
func (f *Function) EnterBlock() {}

// ExitBlock is a stream marker; see EnterBlock.
func (f *Function) ExitBlock() {}

// currentBlock returns the block instructions are being emitted into.
func (f *Function) currentBlock() (*BasicBlock, error) {
	if f.current == 0 {
		return nil, errors.Wrap(ErrProtocolViolation, "no open block")
	}
	return f.Blocks[f.current-1], nil
}

// NameBlock attaches a name to the block at the given index.
func (f *Function) NameBlock(index int32, name string) error {
	b, err := f.Block(index)
	if err != nil {
		return err
	}
	b.setName(name)
	return nil
}

// NameEntry attaches a name to the symbol at the given symbol-table
// index.
func (f *Function) NameEntry(index int32, name string) error {
	return f.symbols.SetName(index, name)
}

// NameFunction attaches a name to the function symbol at the given
// symbol-table index. Function names carry a leading "@". offset is
// the bit position of the named function's body in the stream; it is
// consumed by the decoder and retained here only for signature
// parity.
func (f *Function) NameFunction(index int32, offset uint64, name string) error {
	_ = offset
	return f.symbols.SetName(index, "@"+name)
}

// ExitFunction finalizes the function. Every placeholder must have
// resolved by now. Anonymous parameters, blocks (entry excepted) and
// value-producing instructions are assigned decimal names from a
// single counter starting at 1, in traversal order: parameters first,
// then blocks in index order with each block's instructions in
// insertion order.
func (f *Function) ExitFunction() error {
	if refs := f.symbols.Unresolved(); len(refs) > 0 {
		return errors.Wrapf(ErrUnresolvedForwardReference,
			"%d placeholders remain, first at index %d", len(refs), refs[0].Index())
	}
	counter := 1
	next := func() string {
		name := strconv.Itoa(counter)
		counter++
		return name
	}
	for _, p := range f.Params {
		if p.name == UnknownName {
			p.name = next()
		}
	}
	for _, b := range f.Blocks {
		if b.Index != 0 && b.name == UnknownName {
			b.name = next()
		}
		for _, instr := range b.Instrs {
			v, ok := instr.(Value)
			if ok && v.Name() == UnknownName {
				instr.(setNamable).setName(next())
			}
		}
	}
	return nil
}
