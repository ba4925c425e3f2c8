// Copyright 2024 The bcfunc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ir

// Human-readable "disassembly" of a function, for debugging and
// tests. The layout is not a stable interface.

import (
	"bytes"
	"fmt"
	"io"
)

var _ io.WriterTo = (*Function)(nil)

func (f *Function) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	WriteFunction(&buf, f)
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// WriteFunction writes to buf a human-readable rendering of f.
func WriteFunction(buf *bytes.Buffer, f *Function) {
	fmt.Fprintf(buf, "# Name: %s\n", f)
	fmt.Fprintf(buf, "# Params:")
	for _, p := range f.Params {
		fmt.Fprintf(buf, " %s", relName(p))
	}
	buf.WriteString("\n")

	for _, b := range f.Blocks {
		fmt.Fprintf(buf, "%s:\n", b)
		for _, instr := range b.Instrs {
			buf.WriteString("\t")
			if v, ok := instr.(Value); ok {
				fmt.Fprintf(buf, "%s = ", relName(v))
			}
			fmt.Fprint(buf, instr)
			buf.WriteString("\n")
		}
	}
	buf.WriteString("\n")
}

// relName renders a symbol the way it appears as an operand: local
// symbols with a "%" prefix, functions with their "@" name, constants
// by value, placeholders by the index they stand for.
func relName(s Symbol) string {
	switch s := s.(type) {
	case nil:
		return "<nil>"
	case *ForwardRef:
		return fmt.Sprintf("fwd(%d)", s.Index())
	case *Function:
		return s.String()
	case *BasicBlock:
		return "%" + s.String()
	}
	// Constants render by value.
	if c, ok := s.(Constant); ok {
		if str, ok := c.(fmt.Stringer); ok {
			return str.String()
		}
	}
	name := s.Name()
	if name == UnknownName {
		return "%?"
	}
	return "%" + name
}
