// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

import "github.com/pkg/errors"

// Assembly error categories. All are fatal: a function under
// construction is either finalized successfully or the containing
// build aborts.
var (
	// ErrProtocolViolation indicates builder operations issued out of
	// order, e.g. GenerateBlock before AllocateBlocks.
	ErrProtocolViolation = errors.New("builder protocol violation")

	// ErrIndexOutOfRange indicates a block or symbol index outside
	// the valid range.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrTypeMismatch indicates a symbol of the wrong kind, e.g. a
	// non-constant where a constant is required.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnresolvedForwardReference indicates that a symbol-table
	// slot still holds a placeholder at ExitFunction.
	ErrUnresolvedForwardReference = errors.New("unresolved forward reference")
)
