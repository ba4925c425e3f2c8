// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/llir/llvm/ir/types"

	"github.com/declang/bcfunc/ir"
)

func TestSanityCheckValid(t *testing.T) {
	f, err := buildCountdown()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if !ir.SanityCheck(f, &buf) {
		t.Errorf("sanity check failed:\n%s", buf.String())
	}
}

func TestSanityCheckMissingTerminator(t *testing.T) {
	f := ir.NewFunction(types.NewFunc(types.I32, types.I32))
	f.CreateParameter(types.I32)
	if err := f.AllocateBlocks(1); err != nil {
		t.Fatal(err)
	}
	f.GenerateBlock()
	if _, err := f.CreateBinaryOperation(types.I32, 0, 0, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := f.ExitFunction(); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if ir.SanityCheck(f, &buf) {
		t.Fatalf("sanity check passed on a block without a terminator")
	}
	if !strings.Contains(buf.String(), "control-flow") {
		t.Errorf("diagnostic does not mention the missing terminator:\n%s", buf.String())
	}
}

func TestSanityCheckUnnamed(t *testing.T) {
	// Skipping ExitFunction leaves anonymous blocks and values
	// unnamed; the pass must flag them.
	f := ir.NewFunction(types.NewFunc(types.Void))
	if err := f.AllocateBlocks(2); err != nil {
		t.Fatal(err)
	}
	f.GenerateBlock()
	if _, err := f.CreateBranch(1); err != nil {
		t.Fatal(err)
	}
	f.GenerateBlock()
	if _, err := f.CreateReturn(); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if ir.SanityCheck(f, &buf) {
		t.Fatalf("sanity check passed with an unnamed block")
	}
}

func TestSanityCheckPhiPlacement(t *testing.T) {
	f := ir.NewFunction(types.NewFunc(types.I32, types.I32))
	f.CreateParameter(types.I32)
	if err := f.AllocateBlocks(1); err != nil {
		t.Fatal(err)
	}
	f.GenerateBlock()
	if _, err := f.CreateBinaryOperation(types.I32, 0, 0, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := f.CreatePhi(types.I32, []int32{0}, []int32{0}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.CreateReturnValue(2); err != nil {
		t.Fatal(err)
	}
	if err := f.ExitFunction(); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if ir.SanityCheck(f, &buf) {
		t.Fatalf("sanity check passed with a phi after a non-phi")
	}
	if !strings.Contains(buf.String(), "phi") {
		t.Errorf("diagnostic does not mention the phi:\n%s", buf.String())
	}
}
