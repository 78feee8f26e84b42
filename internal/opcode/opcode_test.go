/*
 * synacorvm - Opcode table tests.
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

package opcode

import "testing"

func TestLookupKnownOpcodes(t *testing.T) {
	cases := []struct {
		op    uint16
		name  string
		arity int
	}{
		{Halt, "HALT", 0},
		{Set, "SET", 2},
		{Push, "PUSH", 1},
		{Pop, "POP", 1},
		{Eq, "EQ", 3},
		{Gt, "GT", 3},
		{Jmp, "JMP", 1},
		{Jt, "JT", 2},
		{Jf, "JF", 2},
		{Add, "ADD", 3},
		{Mult, "MULT", 3},
		{Mod, "MOD", 3},
		{And, "AND", 3},
		{Or, "OR", 3},
		{Not, "NOT", 2},
		{Rmem, "RMEM", 2},
		{Wmem, "WMEM", 2},
		{Call, "CALL", 1},
		{Ret, "RET", 0},
		{Out, "OUT", 1},
		{In, "IN", 1},
		{Noop, "NOOP", 0},
	}
	for _, c := range cases {
		entry, ok := Lookup(c.op)
		if !ok {
			t.Errorf("Lookup(%d): not found", c.op)
			continue
		}
		if entry.Name != c.name || entry.Arity != c.arity {
			t.Errorf("Lookup(%d) = %+v, want {%s %d}", c.op, entry, c.name, c.arity)
		}
	}
}

func TestLookupUnknownOpcode(t *testing.T) {
	if _, ok := Lookup(22); ok {
		t.Error("Lookup(22) should not be found: only 0-21 are defined")
	}
}

func TestTableCoversEveryOpcodeExactlyOnce(t *testing.T) {
	if len(Table) != 22 {
		t.Fatalf("len(Table) = %d, want 22", len(Table))
	}
	for op := uint16(0); op < 22; op++ {
		if _, ok := Table[op]; !ok {
			t.Errorf("Table missing entry for opcode %d", op)
		}
	}
}
