// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir_test

import (
	"errors"
	"io"
	"testing"

	"github.com/kr/pretty"
	"github.com/llir/llvm/ir/types"
	"golang.org/x/sync/errgroup"

	"github.com/declang/bcfunc/ir"
)

// buildCountdown assembles the moral equivalent of
//
//	define i32 @f(i32 %n) {
//	  br label %loop
//	loop:
//	  %v = phi i32 [ %n, %entry ], [ %dec, %loop ]
//	  %dec = sub i32 %v, 1
//	  %z = icmp eq i32 %dec, 0
//	  br i1 %z, label %done, label %loop
//	done:
//	  ret i32 %dec
//	}
func buildCountdown() (*ir.Function, error) {
	f := ir.NewFunction(types.NewFunc(types.I32, types.I32))
	f.CreateParameter(types.I32) // 0
	if err := f.AllocateBlocks(3); err != nil {
		return nil, err
	}
	if _, err := f.GenerateBlock(); err != nil {
		return nil, err
	}
	if _, err := f.CreateBranch(1); err != nil {
		return nil, err
	}
	if _, err := f.GenerateBlock(); err != nil {
		return nil, err
	}
	if _, err := f.CreatePhi(types.I32, []int32{0, 3}, []int32{0, 1}); err != nil {
		return nil, err
	}
	f.CreateInteger(types.I32, 1) // 2
	if _, err := f.CreateBinaryOperation(types.I32, 1, 0, 1, 2); err != nil { // 3: sub
		return nil, err
	}
	f.CreateInteger(types.I32, 0) // 4
	if _, err := f.CreateComparison(types.I1, 32, 3, 4); err != nil { // 5: icmp eq
		return nil, err
	}
	if _, err := f.CreateConditionalBranch(5, 2, 1); err != nil {
		return nil, err
	}
	if _, err := f.GenerateBlock(); err != nil {
		return nil, err
	}
	if _, err := f.CreateReturnValue(3); err != nil {
		return nil, err
	}
	if err := f.ExitFunction(); err != nil {
		return nil, err
	}
	return f, nil
}

func TestCountdownNaming(t *testing.T) {
	f, err := buildCountdown()
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	got = append(got, f.Params[0].Name())
	for _, b := range f.Blocks {
		got = append(got, b.Name())
		for _, instr := range b.Instrs {
			if v, ok := instr.(ir.Value); ok {
				got = append(got, v.Name())
			}
		}
	}
	// One counter: parameter, then blocks and value instructions in
	// traversal order. The entry block keeps the empty name.
	want := []string{"1", "", "2", "3", "4", "5", "6"}
	if diff := pretty.Diff(want, got); len(diff) > 0 {
		t.Errorf("assigned names differ: %v", diff)
	}
}

// TestConcurrentBuilds builds distinct functions in parallel. They
// share no state, so concurrent assembly must be safe.
func TestConcurrentBuilds(t *testing.T) {
	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			f, err := buildCountdown()
			if err != nil {
				return err
			}
			if !ir.SanityCheck(f, io.Discard) {
				return errors.New("sanity check failed")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
