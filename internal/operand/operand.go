/*
 * synacorvm - Operand decoder: literal vs. register-reference words.
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

// Package operand classifies a raw memory word as a literal or a
// register reference, and implements the READ/WRITE operations every
// opcode uses to resolve its operands.
package operand

import "github.com/rcornwell/synacorvm/internal/vmerr"

const (
	// MaxLiteral is the highest word value that is its own literal value.
	MaxLiteral uint16 = 32767
	// RegBase is the first word value that denotes a register reference.
	RegBase uint16 = 32768
	// RegCount is the number of general-purpose registers.
	RegCount uint16 = 8
	// RegTop is the last word value that denotes a register reference.
	RegTop uint16 = RegBase + RegCount - 1
)

// Kind distinguishes a literal word from a register-reference word.
type Kind int

const (
	KindLiteral Kind = iota
	KindRegister
)

// Operand is the decoded form of a raw memory word.
type Operand struct {
	Kind Kind
	// Value holds the literal value when Kind == KindLiteral, or the
	// register index (0..7) when Kind == KindRegister.
	Value uint16
}

// Classify interprets word per the register-vs-literal convention.
// Any value above RegTop is an invalid operand.
func Classify(word uint16) (Operand, error) {
	switch {
	case word <= MaxLiteral:
		return Operand{Kind: KindLiteral, Value: word}, nil
	case word <= RegTop:
		return Operand{Kind: KindRegister, Value: word - RegBase}, nil
	default:
		return Operand{}, vmerr.New(vmerr.Operand, "invalid operand %d", word)
	}
}

// Read returns the value a guest program intends when reading word:
// the literal itself, or the contents of the referenced register.
func Read(word uint16, regs *[8]uint16) (uint16, error) {
	o, err := Classify(word)
	if err != nil {
		return 0, err
	}
	if o.Kind == KindRegister {
		return regs[o.Value], nil
	}
	return o.Value, nil
}

// Write interprets word as a register reference and stores value
// there. word not being a register reference is fatal (§4.2).
func Write(word uint16, regs *[8]uint16, value uint16) error {
	o, err := Classify(word)
	if err != nil {
		return err
	}
	if o.Kind != KindRegister {
		return vmerr.New(vmerr.Operand, "write destination %d is not a register", word)
	}
	regs[o.Value] = value
	return nil
}
