/*
 * synacorvm - Register/stack/disassembly debugger frame.
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

// Package debugger renders the register/stack/disassembly frame and
// drives breakpoint/single-step mode. It runs as a pre-fetch hook
// inside the executor and never mutates VM state.
package debugger

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rcornwell/synacorvm/internal/executor"
	"github.com/rcornwell/synacorvm/internal/opcode"
)

// Debugger holds the rendering/stepping state the operator toggles
// with the "d"/"s" commands and breakpoints.
type Debugger struct {
	Enabled    bool
	Stepping   bool
	Breakpoint uint16
	out        io.Writer
	line       *liner.State
}

// New builds a Debugger that writes its frame to out and reads
// stepping-mode commands from line (shared with the Input Channel's
// operator prompt).
func New(out io.Writer, line *liner.State) *Debugger {
	return &Debugger{out: out, line: line}
}

// PreFetch implements executor.PreFetchHook: it renders the frame when
// enabled, re-enters stepping mode at a breakpoint, and blocks on the
// stepping prompt when stepping.
func (d *Debugger) PreFetch(vm *executor.VM) error {
	if !d.Enabled {
		return nil
	}

	d.render(vm)

	if d.Breakpoint == vm.PC {
		d.Stepping = true
	}

	for d.Stepping {
		cmd, err := d.line.Prompt("step (s/b N/c)> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		d.line.AppendHistory(cmd)
		cmd = strings.TrimSpace(cmd)

		switch {
		case cmd == "s":
			return nil
		case cmd == "c":
			d.Stepping = false
		case strings.HasPrefix(cmd, "b "):
			addr, perr := strconv.ParseUint(strings.TrimSpace(cmd[2:]), 10, 16)
			if perr != nil {
				fmt.Fprintf(d.out, "bad breakpoint address: %s\n", cmd[2:])
				continue
			}
			d.Breakpoint = uint16(addr)
			d.Stepping = false
		default:
			fmt.Fprintf(d.out, "unknown debug command: %s\n", cmd)
		}
	}
	return nil
}

// render writes the registers, last-5-stack, and PC-3..PC+6
// disassembly window, bracketing the current instruction.
func (d *Debugger) render(vm *executor.VM) {
	for i, r := range vm.Registers {
		fmt.Fprintf(d.out, "R%d: %d\n", i, r)
	}

	fmt.Fprintln(d.out, "stack:")
	start := 0
	if len(vm.Stack) > 5 {
		start = len(vm.Stack) - 5
	}
	for _, v := range vm.Stack[start:] {
		fmt.Fprintf(d.out, "  %d\n", v)
	}

	fmt.Fprintln(d.out)
	lo := int(vm.PC) - 3
	hi := int(vm.PC) + 6
	for addr := lo; addr <= hi; addr++ {
		if addr < 0 || addr >= executor.MemSize {
			continue
		}
		line := decodeLine(vm, uint16(addr))
		if uint16(addr) == vm.PC {
			line = "[" + line + "]"
		}
		fmt.Fprintln(d.out, line)
	}
	fmt.Fprintln(d.out)
}

// decodeLine renders one instruction-or-data line of the disassembly
// window: the address, then the mnemonic and its operand words as raw
// numbers on one line, or the bare word when it is not an opcode.
func decodeLine(vm *executor.VM, addr uint16) string {
	word := vm.Memory[addr]
	entry, ok := opcode.Lookup(word)
	if !ok {
		return fmt.Sprintf("%d   %d", addr, word)
	}
	args := make([]string, entry.Arity)
	for i := range args {
		pos := int(addr) + 1 + i
		if pos >= executor.MemSize {
			args[i] = "?"
			continue
		}
		args[i] = strconv.Itoa(int(vm.Memory[pos]))
	}
	if len(args) == 0 {
		return fmt.Sprintf("%d   %s", addr, entry.Name)
	}
	return fmt.Sprintf("%d   %s %s", addr, entry.Name, strings.Join(args, " "))
}
