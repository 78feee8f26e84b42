/*
 * synacorvm - Disassembler: one line per word, `<address> <decode>`.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package disassemble writes a flat per-word listing: one line per
// memory word, each either an opcode mnemonic, a register name, or a
// bare literal value.
package disassemble

import (
	"fmt"
	"io"

	"github.com/rcornwell/synacorvm/internal/opcode"
	"github.com/rcornwell/synacorvm/internal/operand"
)

// Write renders words as one "<address> <decode>" line each. It does
// not attempt to track instruction boundaries: every word gets its
// own line, decoded independently, exactly as the original dump_binary
// tool this sidecar is modeled on does.
func Write(words []uint16, w io.Writer) error {
	for addr, word := range words {
		decoded, err := decodeWord(word)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%d %s\n", addr, decoded); err != nil {
			return err
		}
	}
	return nil
}

func decodeWord(word uint16) (string, error) {
	if entry, ok := opcode.Lookup(word); ok {
		return entry.Name, nil
	}
	o, err := operand.Classify(word)
	if err != nil {
		return "", err
	}
	if o.Kind == operand.KindRegister {
		return fmt.Sprintf("R%d", o.Value), nil
	}
	return fmt.Sprintf("%d", o.Value), nil
}
