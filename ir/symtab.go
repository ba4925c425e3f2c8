// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// This file implements the per-function symbol table: an ordered,
// append-only arena addressed by 32-bit indices, with support for
// references to indices that have not been filled yet.

import (
	"sort"

	"github.com/llir/llvm/ir/types"
	"github.com/pkg/errors"
)

// SymbolTable is the per-function symbol arena. The index assigned to
// a symbol at append time is stable for the lifetime of the function.
// Looking up an unfilled index yields a ForwardRef placeholder that
// is patched into every registered holder when the slot fills.
type SymbolTable struct {
	symbols []Symbol
	pending map[int32]*ForwardRef
}

// ForwardRef is the placeholder handed out when a symbol-table index
// is dereferenced before its slot is filled. It carries the requested
// index and, when a typed lookup supplied one, the expected type.
// A ForwardRef never survives a successful ExitFunction.
type ForwardRef struct {
	index   int32
	typ     types.Type // nil until known
	holders []Holder
}

// Index returns the symbol-table index the placeholder stands for.
func (r *ForwardRef) Index() int32 { return r.index }

func (r *ForwardRef) Name() string { return UnknownName }
func (r *ForwardRef) Type() types.Type { return r.typ }
func (r *ForwardRef) Replace(old, new Symbol) {}

// A placeholder may stand for a constant; see Constant.
func (r *ForwardRef) constant() {}

// Len returns the number of filled slots.
func (t *SymbolTable) Len() int { return len(t.symbols) }

// At returns the symbol at index, or nil if the slot is unfilled or
// the index is out of range. Unlike Lookup, At never creates a
// placeholder.
func (t *SymbolTable) At(index int32) Symbol {
	if index < 0 || int(index) >= len(t.symbols) {
		return nil
	}
	return t.symbols[index]
}

// Append places sym at the next free slot and returns its index. If a
// placeholder was handed out for that slot, every holder registered
// with it is patched to sym and the placeholder is dropped.
func (t *SymbolTable) Append(sym Symbol) int32 {
	index := int32(len(t.symbols))
	t.symbols = append(t.symbols, sym)
	if ref, ok := t.pending[index]; ok {
		for _, holder := range ref.holders {
			holder.Replace(ref, sym)
		}
		delete(t.pending, index)
	}
	return index
}

// Lookup returns the symbol at index. If the slot is unfilled, the
// placeholder for that index is returned, created if absent. The
// caller is not registered for resolution; use LookupFor when the
// result is stored in an operand slot.
func (t *SymbolTable) Lookup(index int32) Symbol {
	if 0 <= index && int(index) < len(t.symbols) {
		return t.symbols[index]
	}
	return t.forwardRef(index)
}

// LookupFor is like Lookup, but registers holder as dependent on the
// placeholder, so that filling the slot calls holder.Replace. If the
// slot is already filled, the symbol is returned directly and no
// registration takes place.
func (t *SymbolTable) LookupFor(index int32, holder Holder) Symbol {
	if 0 <= index && int(index) < len(t.symbols) {
		return t.symbols[index]
	}
	ref := t.forwardRef(index)
	ref.holders = append(ref.holders, holder)
	return ref
}

// LookupTyped is like LookupFor, additionally recording the expected
// type of the referenced symbol on the placeholder when it is not yet
// known.
func (t *SymbolTable) LookupTyped(index int32, typ types.Type, holder Holder) Symbol {
	if 0 <= index && int(index) < len(t.symbols) {
		return t.symbols[index]
	}
	ref := t.forwardRef(index)
	if ref.typ == nil {
		ref.typ = typ
	}
	ref.holders = append(ref.holders, holder)
	return ref
}

// Constants resolves indices in bulk for aggregate construction,
// registering holder for any still-unfilled slot. Every resolved
// symbol must be a constant.
func (t *SymbolTable) Constants(indices []int32, holder Holder) ([]Constant, error) {
	elems := make([]Constant, 0, len(indices))
	for _, index := range indices {
		sym := t.LookupFor(index, holder)
		c, ok := sym.(Constant)
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "symbol %d is %T, not a constant", index, sym)
		}
		elems = append(elems, c)
	}
	return elems, nil
}

// SetName attaches name to the symbol at index.
func (t *SymbolTable) SetName(index int32, name string) error {
	if index < 0 || int(index) >= len(t.symbols) {
		return errors.Wrapf(ErrIndexOutOfRange, "naming symbol %d of %d", index, len(t.symbols))
	}
	sym, ok := t.symbols[index].(setNamable)
	if !ok {
		return errors.Wrapf(ErrTypeMismatch, "symbol %d (%T) cannot be named", index, t.symbols[index])
	}
	sym.setName(name)
	return nil
}

// Unresolved returns the placeholders that have not been filled, in
// index order.
func (t *SymbolTable) Unresolved() []*ForwardRef {
	if len(t.pending) == 0 {
		return nil
	}
	refs := make([]*ForwardRef, 0, len(t.pending))
	for _, ref := range t.pending {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].index < refs[j].index })
	return refs
}

func (t *SymbolTable) forwardRef(index int32) *ForwardRef {
	if ref, ok := t.pending[index]; ok {
		return ref
	}
	if t.pending == nil {
		t.pending = make(map[int32]*ForwardRef)
	}
	ref := &ForwardRef{index: index}
	t.pending[index] = ref
	return ref
}
