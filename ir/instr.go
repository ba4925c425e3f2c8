// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// This file defines one instruction variant per opcode. Value
// producers embed register and live in the symbol table as well as in
// their block; the rest embed anInstruction and appear in their block
// only.

import (
	"fmt"
	"strings"

	"github.com/declang/bcfunc/ir/enum"
)

// ---- Arithmetic and logic ----

// BinOp is a binary arithmetic or logic instruction.
type BinOp struct {
	register
	Op    enum.BinaryOp
	Flags enum.Flags
	X, Y  Symbol
}

func (v *BinOp) Operands(rands []*Symbol) []*Symbol { return append(rands, &v.X, &v.Y) }
func (v *BinOp) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *BinOp) Accept(vis InstructionVisitor) { vis.VisitBinOp(v) }

func (v *BinOp) String() string {
	if v.Flags != 0 {
		return fmt.Sprintf("%s %s %s, %s", v.Op, v.Flags, relName(v.X), relName(v.Y))
	}
	return fmt.Sprintf("%s %s, %s", v.Op, relName(v.X), relName(v.Y))
}

// Cmp is an integer or floating-point comparison instruction.
type Cmp struct {
	register
	Pred enum.CompareOp
	X, Y Symbol
}

func (v *Cmp) Operands(rands []*Symbol) []*Symbol { return append(rands, &v.X, &v.Y) }
func (v *Cmp) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *Cmp) Accept(vis InstructionVisitor) { vis.VisitCmp(v) }

func (v *Cmp) String() string {
	kind := "icmp"
	if v.Pred.IsFloat() {
		kind = "fcmp"
	}
	return fmt.Sprintf("%s %s %s, %s", kind, v.Pred, relName(v.X), relName(v.Y))
}

// Convert is a conversion instruction.
type Convert struct {
	register
	Op   enum.CastOp
	From Symbol
}

func (v *Convert) Operands(rands []*Symbol) []*Symbol { return append(rands, &v.From) }
func (v *Convert) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *Convert) Accept(vis InstructionVisitor) { vis.VisitConvert(v) }

func (v *Convert) String() string {
	return fmt.Sprintf("%s %s", v.Op, relName(v.From))
}

// ---- Memory ----

// Alloc is a stack allocation instruction. Count is the number of
// elements to allocate.
type Alloc struct {
	register
	Count Symbol
	Align uint64
}

func (v *Alloc) Operands(rands []*Symbol) []*Symbol { return append(rands, &v.Count) }
func (v *Alloc) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *Alloc) Accept(vis InstructionVisitor) { vis.VisitAlloc(v) }

func (v *Alloc) String() string {
	return fmt.Sprintf("alloca %s, align %d", relName(v.Count), v.Align)
}

// Load reads a value from memory.
type Load struct {
	register
	Src      Symbol
	Align    uint64
	Volatile bool
}

func (v *Load) Operands(rands []*Symbol) []*Symbol { return append(rands, &v.Src) }
func (v *Load) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *Load) Accept(vis InstructionVisitor) { vis.VisitLoad(v) }

func (v *Load) String() string {
	volatile := ""
	if v.Volatile {
		volatile = "volatile "
	}
	return fmt.Sprintf("load %s%s, align %d", volatile, relName(v.Src), v.Align)
}

// Store writes a value to memory. It produces no value.
type Store struct {
	anInstruction
	Dst      Symbol
	Val      Symbol
	Align    uint64
	Volatile bool
}

func (s *Store) Operands(rands []*Symbol) []*Symbol { return append(rands, &s.Dst, &s.Val) }
func (s *Store) Replace(old, new Symbol) { replaceAll(s.Operands(nil), old, new) }
func (s *Store) Accept(vis InstructionVisitor) { vis.VisitStore(s) }

func (s *Store) String() string {
	volatile := ""
	if s.Volatile {
		volatile = "volatile "
	}
	return fmt.Sprintf("store %s%s, %s, align %d", volatile, relName(s.Val), relName(s.Dst), s.Align)
}

// ---- Vector and aggregate ----

// ExtractElement reads one element of a vector; the index is
// symbolic.
type ExtractElement struct {
	register
	X     Symbol
	Index Symbol
}

func (v *ExtractElement) Operands(rands []*Symbol) []*Symbol { return append(rands, &v.X, &v.Index) }
func (v *ExtractElement) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *ExtractElement) Accept(vis InstructionVisitor) { vis.VisitExtractElement(v) }

func (v *ExtractElement) String() string {
	return fmt.Sprintf("extractelement %s, %s", relName(v.X), relName(v.Index))
}

// InsertElement writes one element of a vector; the index is
// symbolic.
type InsertElement struct {
	register
	X     Symbol
	Elem  Symbol
	Index Symbol
}

func (v *InsertElement) Operands(rands []*Symbol) []*Symbol {
	return append(rands, &v.X, &v.Elem, &v.Index)
}
func (v *InsertElement) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *InsertElement) Accept(vis InstructionVisitor) { vis.VisitInsertElement(v) }

func (v *InsertElement) String() string {
	return fmt.Sprintf("insertelement %s, %s, %s", relName(v.X), relName(v.Elem), relName(v.Index))
}

// ExtractValue reads a member of an aggregate. Unlike
// ExtractElement, the index is a literal; the asymmetry follows the
// IR semantics and is not normalized.
type ExtractValue struct {
	register
	X     Symbol
	Index uint64
}

func (v *ExtractValue) Operands(rands []*Symbol) []*Symbol { return append(rands, &v.X) }
func (v *ExtractValue) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *ExtractValue) Accept(vis InstructionVisitor) { vis.VisitExtractValue(v) }

func (v *ExtractValue) String() string {
	return fmt.Sprintf("extractvalue %s, %d", relName(v.X), v.Index)
}

// InsertValue writes a member of an aggregate; the index is a
// literal.
type InsertValue struct {
	register
	X     Symbol
	Elem  Symbol
	Index uint64
}

func (v *InsertValue) Operands(rands []*Symbol) []*Symbol { return append(rands, &v.X, &v.Elem) }
func (v *InsertValue) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *InsertValue) Accept(vis InstructionVisitor) { vis.VisitInsertValue(v) }

func (v *InsertValue) String() string {
	return fmt.Sprintf("insertvalue %s, %s, %d", relName(v.X), relName(v.Elem), v.Index)
}

// ShuffleVector permutes the elements of two vectors.
type ShuffleVector struct {
	register
	X, Y Symbol
	Mask Symbol
}

func (v *ShuffleVector) Operands(rands []*Symbol) []*Symbol {
	return append(rands, &v.X, &v.Y, &v.Mask)
}
func (v *ShuffleVector) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *ShuffleVector) Accept(vis InstructionVisitor) { vis.VisitShuffleVector(v) }

func (v *ShuffleVector) String() string {
	return fmt.Sprintf("shufflevector %s, %s, %s", relName(v.X), relName(v.Y), relName(v.Mask))
}

// ---- Addressing ----

// GetElementPtr computes the address of a subelement of an aggregate
// in memory.
type GetElementPtr struct {
	register
	InBounds bool
	Base     Symbol
	Indices  []Symbol
}

func (v *GetElementPtr) Operands(rands []*Symbol) []*Symbol {
	rands = append(rands, &v.Base)
	for i := range v.Indices {
		rands = append(rands, &v.Indices[i])
	}
	return rands
}
func (v *GetElementPtr) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *GetElementPtr) Accept(vis InstructionVisitor) { vis.VisitGetElementPtr(v) }

func (v *GetElementPtr) String() string {
	var sb strings.Builder
	sb.WriteString("getelementptr ")
	if v.InBounds {
		sb.WriteString("inbounds ")
	}
	sb.WriteString(relName(v.Base))
	for _, index := range v.Indices {
		sb.WriteString(", " + relName(index))
	}
	return sb.String()
}

// ---- Control flow ----

// Jump is an unconditional branch.
type Jump struct {
	anInstruction
	Target *BasicBlock
}

func (s *Jump) Operands(rands []*Symbol) []*Symbol { return rands }
func (s *Jump) Replace(old, new Symbol) {}
func (s *Jump) Accept(vis InstructionVisitor) { vis.VisitJump(s) }

func (s *Jump) String() string {
	return fmt.Sprintf("br %s", relName(s.Target))
}

// If is a conditional branch.
type If struct {
	anInstruction
	Cond Symbol
	Then *BasicBlock
	Else *BasicBlock
}

func (s *If) Operands(rands []*Symbol) []*Symbol { return append(rands, &s.Cond) }
func (s *If) Replace(old, new Symbol) { replaceAll(s.Operands(nil), old, new) }
func (s *If) Accept(vis InstructionVisitor) { vis.VisitIf(s) }

func (s *If) String() string {
	return fmt.Sprintf("br %s, %s, %s", relName(s.Cond), relName(s.Then), relName(s.Else))
}

// IndirectJump transfers control to the block whose address Addr
// evaluates to; Targets lists the possible destinations.
type IndirectJump struct {
	anInstruction
	Addr    Symbol
	Targets []*BasicBlock
}

func (s *IndirectJump) Operands(rands []*Symbol) []*Symbol { return append(rands, &s.Addr) }
func (s *IndirectJump) Replace(old, new Symbol) { replaceAll(s.Operands(nil), old, new) }
func (s *IndirectJump) Accept(vis InstructionVisitor) { vis.VisitIndirectJump(s) }

func (s *IndirectJump) String() string {
	targets := make([]string, len(s.Targets))
	for i, t := range s.Targets {
		targets[i] = relName(t)
	}
	return fmt.Sprintf("indirectbr %s, [%s]", relName(s.Addr), strings.Join(targets, ", "))
}

// SwitchCase pairs a case value with its target block. The target may
// coincide with the switch's default block; it is stored unchanged.
type SwitchCase struct {
	Value  Symbol
	Target *BasicBlock
}

// Switch is a multi-way branch over symbolic case values.
type Switch struct {
	anInstruction
	Cond    Symbol
	Default *BasicBlock
	Cases   []SwitchCase
}

func (s *Switch) Operands(rands []*Symbol) []*Symbol {
	rands = append(rands, &s.Cond)
	for i := range s.Cases {
		rands = append(rands, &s.Cases[i].Value)
	}
	return rands
}
func (s *Switch) Replace(old, new Symbol) { replaceAll(s.Operands(nil), old, new) }
func (s *Switch) Accept(vis InstructionVisitor) { vis.VisitSwitch(s) }

func (s *Switch) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "switch %s, %s [", relName(s.Cond), relName(s.Default))
	for i, c := range s.Cases {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%s: %s", relName(c.Value), relName(c.Target))
	}
	sb.WriteString("]")
	return sb.String()
}

// SwitchOldCase pairs a raw 64-bit case constant with its target
// block. The old switch encoding carries case values inline rather
// than as constant symbols; they are retained verbatim.
type SwitchOldCase struct {
	Value  uint64
	Target *BasicBlock
}

// SwitchOld is a multi-way branch in the legacy encoding.
type SwitchOld struct {
	anInstruction
	Cond    Symbol
	Default *BasicBlock
	Cases   []SwitchOldCase
}

func (s *SwitchOld) Operands(rands []*Symbol) []*Symbol { return append(rands, &s.Cond) }
func (s *SwitchOld) Replace(old, new Symbol) { replaceAll(s.Operands(nil), old, new) }
func (s *SwitchOld) Accept(vis InstructionVisitor) { vis.VisitSwitchOld(s) }

func (s *SwitchOld) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "switch %s, %s [", relName(s.Cond), relName(s.Default))
	for i, c := range s.Cases {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d: %s", c.Value, relName(c.Target))
	}
	sb.WriteString("]")
	return sb.String()
}

// Return leaves the function. Value is nil for a void return.
type Return struct {
	anInstruction
	Value Symbol
}

func (s *Return) Operands(rands []*Symbol) []*Symbol {
	if s.Value == nil {
		return rands
	}
	return append(rands, &s.Value)
}
func (s *Return) Replace(old, new Symbol) { replaceAll(s.Operands(nil), old, new) }
func (s *Return) Accept(vis InstructionVisitor) { vis.VisitReturn(s) }

func (s *Return) String() string {
	if s.Value == nil {
		return "ret void"
	}
	return fmt.Sprintf("ret %s", relName(s.Value))
}

// Unreachable marks a point the program never reaches.
type Unreachable struct {
	anInstruction
}

func (s *Unreachable) Operands(rands []*Symbol) []*Symbol { return rands }
func (s *Unreachable) Replace(old, new Symbol) {}
func (s *Unreachable) Accept(vis InstructionVisitor) { vis.VisitUnreachable(s) }

func (s *Unreachable) String() string { return "unreachable" }

// ---- Calls ----

// Call is a value-producing function call.
type Call struct {
	register
	Callee Symbol
	Args   []Symbol
}

func (v *Call) Operands(rands []*Symbol) []*Symbol {
	rands = append(rands, &v.Callee)
	for i := range v.Args {
		rands = append(rands, &v.Args[i])
	}
	return rands
}
func (v *Call) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *Call) Accept(vis InstructionVisitor) { vis.VisitCall(v) }

func (v *Call) String() string {
	return callString("call", v.Callee, v.Args)
}

// VoidCall is a call of a void function. It appears in its block but
// not in the symbol table.
type VoidCall struct {
	anInstruction
	Callee Symbol
	Args   []Symbol
}

func (s *VoidCall) Operands(rands []*Symbol) []*Symbol {
	rands = append(rands, &s.Callee)
	for i := range s.Args {
		rands = append(rands, &s.Args[i])
	}
	return rands
}
func (s *VoidCall) Replace(old, new Symbol) { replaceAll(s.Operands(nil), old, new) }
func (s *VoidCall) Accept(vis InstructionVisitor) { vis.VisitVoidCall(s) }

func (s *VoidCall) String() string {
	return callString("call void", s.Callee, s.Args)
}

func callString(prefix string, callee Symbol, args []Symbol) string {
	strs := make([]string, len(args))
	for i, arg := range args {
		strs[i] = relName(arg)
	}
	return fmt.Sprintf("%s %s(%s)", prefix, relName(callee), strings.Join(strs, ", "))
}

// ---- SSA forms ----

// PhiEdge is one incoming value of a Phi, paired with the predecessor
// block it arrives from.
type PhiEdge struct {
	Value Symbol
	Block *BasicBlock
}

// Phi merges one value per predecessor block. An edge value may refer
// forward, including indirectly to the phi itself; the phi's
// symbol-table index is stable before its operands are resolved.
type Phi struct {
	register
	Edges []PhiEdge
}

func (v *Phi) Operands(rands []*Symbol) []*Symbol {
	for i := range v.Edges {
		rands = append(rands, &v.Edges[i].Value)
	}
	return rands
}
func (v *Phi) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *Phi) Accept(vis InstructionVisitor) { vis.VisitPhi(v) }

func (v *Phi) String() string {
	edges := make([]string, len(v.Edges))
	for i, e := range v.Edges {
		edges[i] = fmt.Sprintf("[%s, %s]", relName(e.Value), relName(e.Block))
	}
	return fmt.Sprintf("phi %s", strings.Join(edges, ", "))
}

// Select chooses between two values based on a condition.
type Select struct {
	register
	Cond Symbol
	X, Y Symbol
}

func (v *Select) Operands(rands []*Symbol) []*Symbol {
	return append(rands, &v.Cond, &v.X, &v.Y)
}
func (v *Select) Replace(old, new Symbol) { replaceAll(v.Operands(nil), old, new) }
func (v *Select) Accept(vis InstructionVisitor) { vis.VisitSelect(v) }

func (v *Select) String() string {
	return fmt.Sprintf("select %s, %s, %s", relName(v.Cond), relName(v.X), relName(v.Y))
}
