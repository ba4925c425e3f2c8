// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// An optional pass for sanity-checking a finalized function: operand
// resolution, naming completeness and block structure.

import (
	"fmt"
	"io"
	"os"
)

type sanity struct {
	reporter io.Writer
	fn       *Function
	block    *BasicBlock
	insane   bool
}

// SanityCheck performs integrity checking of fn and returns true if
// it was valid. Diagnostics are written to reporter if non-nil,
// os.Stderr otherwise. Intended for use after ExitFunction.
func SanityCheck(fn *Function, reporter io.Writer) bool {
	if reporter == nil {
		reporter = os.Stderr
	}
	return (&sanity{reporter: reporter}).checkFunction(fn)
}

// MustSanityCheck is like SanityCheck but panics instead of returning
// a negative result.
func MustSanityCheck(fn *Function, reporter io.Writer) {
	if !SanityCheck(fn, reporter) {
		fn.WriteTo(os.Stderr)
		panic("SanityCheck failed")
	}
}

func (s *sanity) errorf(format string, args ...interface{}) {
	s.insane = true
	fmt.Fprintf(s.reporter, "Error: function %s", s.fn)
	if s.block != nil {
		fmt.Fprintf(s.reporter, ", block %s", s.block)
	}
	io.WriteString(s.reporter, ": ")
	fmt.Fprintf(s.reporter, format, args...)
	io.WriteString(s.reporter, "\n")
}

func (s *sanity) checkFunction(fn *Function) bool {
	s.fn = fn
	if fn.Blocks == nil {
		s.errorf("no blocks allocated")
	}
	for i, p := range fn.Params {
		if p.Parent() != fn {
			s.errorf("parameter %d has wrong parent", i)
		}
		if p.Name() == UnknownName {
			s.errorf("parameter %d has no name", i)
		}
	}
	if refs := fn.Symbols().Unresolved(); len(refs) > 0 {
		s.errorf("%d unresolved forward references, first at index %d", len(refs), refs[0].Index())
	}
	for i, b := range fn.Blocks {
		if b == nil {
			s.errorf("nil block at index %d", i)
			continue
		}
		if b.Index != int32(i) {
			s.errorf("block %s has index %d, want %d", b, b.Index, i)
		}
		s.checkBlock(b)
	}
	if len(fn.Blocks) > 0 && fn.Blocks[0].Name() != "" {
		s.errorf("entry block is named %q, want \"\"", fn.Blocks[0].Name())
	}
	s.block = nil
	s.fn = nil
	return !s.insane
}

func (s *sanity) checkBlock(b *BasicBlock) {
	s.block = b
	if b.Index != 0 && b.Name() == UnknownName {
		s.errorf("block has no name")
	}
	if n := len(b.Instrs); n == 0 {
		s.errorf("empty block")
	} else if !isTerminator(b.Instrs[n-1]) {
		s.errorf("block does not end in a control-flow instruction: %T", b.Instrs[n-1])
	}
	var rands []*Symbol
	for idx, instr := range b.Instrs {
		if instr.Parent() != b {
			s.errorf("instruction %d has wrong parent", idx)
		}
		if idx != len(b.Instrs)-1 && isTerminator(instr) {
			s.errorf("control-flow instruction not at end of block")
		}
		if v, ok := instr.(Value); ok && v.Name() == UnknownName {
			s.errorf("value instruction %d has no name", idx)
		}
		if _, ok := instr.(*Phi); ok && idx > 0 {
			if _, ok := b.Instrs[idx-1].(*Phi); !ok {
				s.errorf("phi instruction follows a non-phi: %T", b.Instrs[idx-1])
			}
		}
		rands = instr.Operands(rands[:0])
		for i, rand := range rands {
			switch sym := (*rand).(type) {
			case nil:
				s.errorf("instruction %d has nil operand #%d", idx, i)
			case *ForwardRef:
				s.errorf("instruction %d holds unresolved placeholder for index %d in operand #%d",
					idx, sym.Index(), i)
			}
		}
	}
}

// isTerminator reports whether instr ends a block.
func isTerminator(instr Instruction) bool {
	switch instr.(type) {
	case *Jump, *If, *IndirectJump, *Switch, *SwitchOld, *Return, *Unreachable:
		return true
	}
	return false
}
