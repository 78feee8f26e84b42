/*
 * synacorvm - Disassembler tests.
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

package disassemble

import (
	"bytes"
	"testing"
)

func TestWriteDecodesMnemonicsRegistersAndLiterals(t *testing.T) {
	words := []uint16{19, 32768, 65, 0}
	var buf bytes.Buffer
	if err := Write(words, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := "0 OUT\n1 R0\n2 65\n3 HALT\n"
	if buf.String() != want {
		t.Errorf("Write() = %q, want %q", buf.String(), want)
	}
}

func TestWriteRejectsInvalidWord(t *testing.T) {
	var buf bytes.Buffer
	if err := Write([]uint16{32776}, &buf); err == nil {
		t.Error("expected an error decoding a value past the register range")
	}
}

func TestDecodeWordPrefersOpcodeOverLiteral(t *testing.T) {
	got, err := decodeWord(0) // 0 is both HALT and a valid literal
	if err != nil {
		t.Fatalf("decodeWord(0): %v", err)
	}
	if got != "HALT" {
		t.Errorf("decodeWord(0) = %q, want %q", got, "HALT")
	}
}

func TestDecodeWordRegister(t *testing.T) {
	got, err := decodeWord(32775)
	if err != nil {
		t.Fatalf("decodeWord(32775): %v", err)
	}
	if got != "R7" {
		t.Errorf("decodeWord(32775) = %q, want R7", got)
	}
}
