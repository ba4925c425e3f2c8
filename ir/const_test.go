// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir_test

import (
	"testing"

	"github.com/llir/llvm/ir/types"

	"github.com/declang/bcfunc/ir"
	"github.com/declang/bcfunc/ir/enum"
)

func TestLeafConstants(t *testing.T) {
	f := ir.NewFunction(types.NewFunc(types.Void))
	i := f.CreateInteger(types.I64, -42)
	fl := f.CreateFloat(types.Double, 0x4000000000000000)
	n := f.CreateNull(types.NewPointer(types.I8))
	u := f.CreateUndefined(types.I32)
	s := f.CreateCString(types.NewArray(6, types.I8), []byte("hello"))
	r := f.CreateString(types.NewArray(2, types.I8), []byte("hi"))
	d := f.CreateFromData(types.NewArray(3, types.I8), []uint64{1, 2, 3})

	if got := f.Symbols().Len(); got != 7 {
		t.Fatalf("symbol table has %d entries, want 7", got)
	}
	if i.V != -42 {
		t.Errorf("integer value = %d, want -42", i.V)
	}
	if fl.Bits != 0x4000000000000000 {
		t.Errorf("float bits = %#x", fl.Bits)
	}
	if !s.CString || r.CString {
		t.Errorf("CString flags = (%v, %v), want (true, false)", s.CString, r.CString)
	}
	if len(d.Elems) != 3 {
		t.Errorf("data array has %d elements, want 3", len(d.Elems))
	}
	for idx, sym := range []ir.Symbol{i, fl, n, u, s, r, d} {
		if got := f.Symbols().Lookup(int32(idx)); got != sym {
			t.Errorf("index %d = %v, want the constant appended there", idx, got)
		}
		if sym.Name() != ir.UnknownName {
			t.Errorf("constant %d is named %q before any naming", idx, sym.Name())
		}
	}
}

func TestConstantExpressions(t *testing.T) {
	f := ir.NewFunction(types.NewFunc(types.Void))
	a := f.CreateInteger(types.I32, 6) // 0
	b := f.CreateInteger(types.I32, 7) // 1

	mul, err := f.CreateBinaryOperationExpression(types.I32, 2, 0, 0, 1) // 2
	if err != nil {
		t.Fatal(err)
	}
	if mul.Op != enum.BinaryOpMul {
		t.Errorf("op = %v, want mul", mul.Op)
	}
	if mul.X != ir.Symbol(a) || mul.Y != ir.Symbol(b) {
		t.Errorf("expression operands are not the registered constants")
	}

	cmp, err := f.CreateCompareExpression(types.I1, 38, 0, 1) // 3: icmp sgt
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Pred != enum.ICmpSGT {
		t.Errorf("pred = %v, want sgt", cmp.Pred)
	}

	gep, err := f.CreateGetElementPointerExpression(types.NewPointer(types.I32), 0, []int32{1}, true)
	if err != nil {
		t.Fatal(err)
	}
	if !gep.InBounds {
		t.Errorf("inbounds flag dropped")
	}
	if gep.Base != ir.Symbol(a) || gep.Indices[0] != ir.Symbol(b) {
		t.Errorf("gep operands are not the registered constants")
	}
}

// TestConstantExpressionForwardRef checks that constant-expression
// operands use the same forward-reference machinery as instruction
// operands.
func TestConstantExpressionForwardRef(t *testing.T) {
	f := ir.NewFunction(types.NewFunc(types.Void))
	f.CreateInteger(types.I32, 1) // 0
	// Index 2 is filled only after the expression is created.
	cast, err := f.CreateCastExpression(types.I64, 1, 2) // 1: zext
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cast.From.(*ir.ForwardRef); !ok {
		t.Fatalf("operand = %T, want *ir.ForwardRef before the slot fills", cast.From)
	}
	c := f.CreateInteger(types.I32, 9) // 2
	if cast.From != ir.Symbol(c) {
		t.Errorf("operand = %v after fill, want the integer constant", cast.From)
	}
	if refs := f.Symbols().Unresolved(); len(refs) != 0 {
		t.Errorf("%d placeholders remain", len(refs))
	}
}

func TestConstantStrings(t *testing.T) {
	f := ir.NewFunction(types.NewFunc(types.Void))
	tests := []struct {
		sym  interface{ String() string }
		want string
	}{
		{f.CreateInteger(types.I32, 9), "9"},
		{f.CreateNull(types.NewPointer(types.I8)), "zeroinitializer"},
		{f.CreateUndefined(types.I32), "undef"},
		{f.CreateCString(types.NewArray(3, types.I8), []byte("ab")), `c"ab"`},
	}
	for _, test := range tests {
		if got := test.sym.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}
