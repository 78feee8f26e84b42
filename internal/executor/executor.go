/*
 * synacorvm - Fetch/decode/execute loop.
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

// Package executor holds the VM state and the fetch/decode/execute
// loop over the 22 Synacor Challenge opcodes.
package executor

import (
	"io"

	"github.com/rcornwell/synacorvm/internal/opcode"
	"github.com/rcornwell/synacorvm/internal/operand"
	"github.com/rcornwell/synacorvm/internal/vmerr"
)

// MemSize is the 15-bit address space, in words.
const MemSize = 32768

// RunState is the VM's run-state.
type RunState int

const (
	Running RunState = iota
	Halted
)

// VM is the full machine state: memory, registers, stack, PC, and
// run-state. It is the tuple the Snapshot Store clones on save/load.
type VM struct {
	Memory    [MemSize]uint16
	Registers [8]uint16
	Stack     []uint16
	PC        uint16
	State     RunState
}

// New builds a VM with memory initialized from image (zero-padded to
// MemSize) and all other state at its zero value.
func New(image []uint16) *VM {
	vm := &VM{}
	copy(vm.Memory[:], image)
	return vm
}

// InputSource supplies the next input word for an IN instruction. It
// may block (reading a line from the operator), and may itself mutate
// vm (snapshot load, register set, debug toggle) before returning.
type InputSource interface {
	Next(vm *VM) (uint16, error)
}

// PreFetchHook runs immediately before every fetch. It must not alter
// VM state; it exists to render the debugger frame and honor
// breakpoint/stepping.
type PreFetchHook interface {
	PreFetch(vm *VM) error
}

// Step executes exactly one instruction: fetch at PC, dispatch, and
// advance PC per the opcode table. It returns an error when the VM
// has already halted, when the opcode/operand is invalid, or on any
// other fatal condition.
func (vm *VM) Step(out io.Writer, in InputSource) error {
	err := vm.step(out, in)
	if err != nil {
		vm.State = Halted
	}
	return err
}

func (vm *VM) step(out io.Writer, in InputSource) error {
	if vm.State != Running {
		return vmerr.New(vmerr.Opcode, "step called on halted VM")
	}
	if vm.PC >= MemSize {
		return vmerr.New(vmerr.Address, "program counter %d out of range", vm.PC)
	}

	op := vm.Memory[vm.PC]
	if _, ok := opcode.Lookup(op); !ok {
		return vmerr.New(vmerr.Opcode, "invalid operation %d at %d", op, vm.PC)
	}

	switch op {
	case opcode.Halt:
		vm.State = Halted
		return nil

	case opcode.Set:
		b, err := vm.readSlot(2)
		if err != nil {
			return err
		}
		if err := vm.writeDest(1, b); err != nil {
			return err
		}
		vm.PC += 3

	case opcode.Push:
		a, err := vm.readSlot(1)
		if err != nil {
			return err
		}
		vm.Stack = append(vm.Stack, a)
		vm.PC += 2

	case opcode.Pop:
		v, err := vm.popStack()
		if err != nil {
			return err
		}
		if err := vm.writeDest(1, v); err != nil {
			return err
		}
		vm.PC += 2

	case opcode.Eq:
		b, c, err := vm.readBC()
		if err != nil {
			return err
		}
		if err := vm.writeDest(1, boolWord(b == c)); err != nil {
			return err
		}
		vm.PC += 4

	case opcode.Gt:
		b, c, err := vm.readBC()
		if err != nil {
			return err
		}
		if err := vm.writeDest(1, boolWord(b > c)); err != nil {
			return err
		}
		vm.PC += 4

	case opcode.Jmp:
		a, err := vm.readSlot(1)
		if err != nil {
			return err
		}
		return vm.jump(a)

	case opcode.Jt:
		a, err := vm.readSlot(1)
		if err != nil {
			return err
		}
		if a != 0 {
			b, err := vm.readSlot(2)
			if err != nil {
				return err
			}
			return vm.jump(b)
		}
		vm.PC += 3

	case opcode.Jf:
		a, err := vm.readSlot(1)
		if err != nil {
			return err
		}
		if a == 0 {
			b, err := vm.readSlot(2)
			if err != nil {
				return err
			}
			return vm.jump(b)
		}
		vm.PC += 3

	case opcode.Add:
		b, c, err := vm.readBC()
		if err != nil {
			return err
		}
		if err := vm.writeDest(1, uint16((uint32(b)+uint32(c))%32768)); err != nil {
			return err
		}
		vm.PC += 4

	case opcode.Mult:
		b, c, err := vm.readBC()
		if err != nil {
			return err
		}
		if err := vm.writeDest(1, uint16((uint32(b)*uint32(c))%32768)); err != nil {
			return err
		}
		vm.PC += 4

	case opcode.Mod:
		b, c, err := vm.readBC()
		if err != nil {
			return err
		}
		if c == 0 {
			return vmerr.New(vmerr.Divide, "MOD by zero at %d", vm.PC)
		}
		if err := vm.writeDest(1, b%c); err != nil {
			return err
		}
		vm.PC += 4

	case opcode.And:
		b, c, err := vm.readBC()
		if err != nil {
			return err
		}
		if err := vm.writeDest(1, b&c); err != nil {
			return err
		}
		vm.PC += 4

	case opcode.Or:
		b, c, err := vm.readBC()
		if err != nil {
			return err
		}
		if err := vm.writeDest(1, b|c); err != nil {
			return err
		}
		vm.PC += 4

	case opcode.Not:
		b, err := vm.readSlot(2)
		if err != nil {
			return err
		}
		if err := vm.writeDest(1, (^b)&0x7fff); err != nil {
			return err
		}
		vm.PC += 3

	case opcode.Rmem:
		b, err := vm.readSlot(2)
		if err != nil {
			return err
		}
		if b >= MemSize {
			return vmerr.New(vmerr.Address, "RMEM address %d out of range", b)
		}
		if err := vm.writeDest(1, vm.Memory[b]); err != nil {
			return err
		}
		vm.PC += 3

	case opcode.Wmem:
		a, b, err := vm.readAB()
		if err != nil {
			return err
		}
		if a >= MemSize {
			return vmerr.New(vmerr.Address, "WMEM address %d out of range", a)
		}
		vm.Memory[a] = b
		vm.PC += 3

	case opcode.Call:
		a, err := vm.readSlot(1)
		if err != nil {
			return err
		}
		vm.Stack = append(vm.Stack, vm.PC+2)
		return vm.jump(a)

	case opcode.Ret:
		v, err := vm.popStack()
		if err != nil {
			vm.State = Halted
			return nil
		}
		return vm.jump(v)

	case opcode.Out:
		a, err := vm.readSlot(1)
		if err != nil {
			return err
		}
		if out != nil {
			if _, werr := out.Write([]byte{byte(a & 0xff)}); werr != nil {
				return werr
			}
		}
		vm.PC += 2

	case opcode.In:
		if in == nil {
			return vmerr.New(vmerr.Operand, "IN with no input source attached")
		}
		v, err := in.Next(vm)
		if err != nil {
			return err
		}
		if err := vm.writeDest(1, v); err != nil {
			return err
		}
		vm.PC += 2

	case opcode.Noop:
		vm.PC++

	default:
		return vmerr.New(vmerr.Opcode, "invalid operation %d at %d", op, vm.PC)
	}

	return nil
}

// Run drives Step in a loop until the VM halts or a fatal error
// occurs. hook, if non-nil, is invoked before every fetch (the
// debugger's rendering point).
func (vm *VM) Run(out io.Writer, in InputSource, hook PreFetchHook) error {
	for vm.State == Running {
		if hook != nil {
			if err := hook.PreFetch(vm); err != nil {
				return err
			}
		}
		if err := vm.Step(out, in); err != nil {
			return err
		}
	}
	return nil
}

// readSlot resolves the operand word at offset slots past PC (1, 2, 3
// for the a/b/c argument positions).
func (vm *VM) readSlot(slot uint16) (uint16, error) {
	addr := vm.PC + slot
	if addr >= MemSize {
		return 0, vmerr.New(vmerr.Address, "operand address %d out of range", addr)
	}
	return operand.Read(vm.Memory[addr], &vm.Registers)
}

func (vm *VM) readAB() (uint16, uint16, error) {
	a, err := vm.readSlot(1)
	if err != nil {
		return 0, 0, err
	}
	b, err := vm.readSlot(2)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (vm *VM) readBC() (uint16, uint16, error) {
	b, err := vm.readSlot(2)
	if err != nil {
		return 0, 0, err
	}
	c, err := vm.readSlot(3)
	if err != nil {
		return 0, 0, err
	}
	return b, c, nil
}

// writeDest interprets the word at PC+slot as a register reference
// (the destination convention every arithmetic/move opcode uses) and
// stores value there.
func (vm *VM) writeDest(slot uint16, value uint16) error {
	addr := vm.PC + slot
	if addr >= MemSize {
		return vmerr.New(vmerr.Address, "destination address %d out of range", addr)
	}
	return operand.Write(vm.Memory[addr], &vm.Registers, value)
}

func (vm *VM) jump(target uint16) error {
	if target >= MemSize {
		return vmerr.New(vmerr.Address, "jump target %d out of range", target)
	}
	vm.PC = target
	return nil
}

func (vm *VM) popStack() (uint16, error) {
	if len(vm.Stack) == 0 {
		return 0, vmerr.New(vmerr.Stack, "stack underflow at %d", vm.PC)
	}
	top := vm.Stack[len(vm.Stack)-1]
	vm.Stack = vm.Stack[:len(vm.Stack)-1]
	return top, nil
}

func boolWord(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}
