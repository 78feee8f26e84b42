/*
 * synacorvm - Opcode table, shared by the executor and disassembler.
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

// Package opcode holds the one table of Synacor Challenge opcodes the
// executor and the disassembler both read, so the two never diverge.
package opcode

// Opcode values, per the architecture's 22-instruction set.
const (
	Halt uint16 = iota
	Set
	Push
	Pop
	Eq
	Gt
	Jmp
	Jt
	Jf
	Add
	Mult
	Mod
	And
	Or
	Not
	Rmem
	Wmem
	Call
	Ret
	Out
	In
	Noop
)

// Entry describes one opcode: its mnemonic and its argument count
// (the number of operand words following the opcode word itself).
type Entry struct {
	Name  string
	Arity int
}

// Table is the single source of truth for opcode mnemonics and
// arities, indexed by opcode value.
var Table = map[uint16]Entry{
	Halt: {"HALT", 0},
	Set:  {"SET", 2},
	Push: {"PUSH", 1},
	Pop:  {"POP", 1},
	Eq:   {"EQ", 3},
	Gt:   {"GT", 3},
	Jmp:  {"JMP", 1},
	Jt:   {"JT", 2},
	Jf:   {"JF", 2},
	Add:  {"ADD", 3},
	Mult: {"MULT", 3},
	Mod:  {"MOD", 3},
	And:  {"AND", 3},
	Or:   {"OR", 3},
	Not:  {"NOT", 2},
	Rmem: {"RMEM", 2},
	Wmem: {"WMEM", 2},
	Call: {"CALL", 1},
	Ret:  {"RET", 0},
	Out:  {"OUT", 1},
	In:   {"IN", 1},
	Noop: {"NOOP", 0},
}

// Lookup returns the mnemonic entry for op and whether it is defined.
func Lookup(op uint16) (Entry, bool) {
	e, ok := Table[op]
	return e, ok
}
