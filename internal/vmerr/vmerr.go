/*
 * synacorvm - Fatal and diagnostic error taxonomy.
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

package vmerr

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal VM condition, per the error kinds the
// executor and loader can raise.
type Kind int

const (
	Image Kind = iota
	Opcode
	Operand
	Stack
	Address
	Divide
)

func (k Kind) String() string {
	switch k {
	case Image:
		return "image"
	case Opcode:
		return "invalid operation"
	case Operand:
		return "invalid operand"
	case Stack:
		return "stack"
	case Address:
		return "address"
	case Divide:
		return "divide by zero"
	default:
		return "error"
	}
}

// Error is a fatal condition the executor or loader raises. It never
// propagates into the guest; the caller halts or exits on sight of it.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// New builds a fatal error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error, keeping its message.
// The result does not unwrap to err: errors.Is/As see only the *Error.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: fmt.Sprintf("%s: %s", kind, err.Error())}
}

// Is reports whether err is a vmerr.Error of the given kind.
func Is(err error, kind Kind) bool {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Kind == kind
	}
	return false
}
