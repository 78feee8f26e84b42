/*
 * synacorvm - Input Channel: guest IN feed plus operator command shell.
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

// Package inputchannel is the line-buffered stdin adapter that feeds
// the guest one character at a time and intercepts operator commands
// inline with guest input.
package inputchannel

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/rcornwell/synacorvm/internal/debugger"
	"github.com/rcornwell/synacorvm/internal/executor"
	"github.com/rcornwell/synacorvm/internal/snapshot"
)

// cmd is one operator command: an exact trimmed-text match dispatched
// to run. Only a command with takesArgs set matches a line that has
// text after its name.
type cmd struct {
	name      string
	takesArgs bool
	run       func(c *Channel, args string, vm *executor.VM) error
}

var cmdList = []cmd{
	{name: "save", run: (*Channel).cmdSave},
	{name: "load", run: (*Channel).cmdLoad},
	{name: "d", run: (*Channel).cmdDebug},
	{name: "s", run: (*Channel).cmdStep},
	{name: "set", takesArgs: true, run: (*Channel).cmdSet},
	{name: "reg", run: (*Channel).cmdReg},
	{name: "q", run: (*Channel).cmdQuit},
}

// ErrQuit is returned by Next when the operator issues "q": the
// caller should exit the process immediately, with no HALT message.
var ErrQuit = errors.New("operator quit")

// Channel adapts a liner.State into the guest's IN feed. The same
// liner.State is shared with the Debugger's stepping prompt, so the
// operator only ever types at one console.
type Channel struct {
	line  *liner.State
	out   io.Writer
	queue []uint16
	snap  *snapshot.Store
	dbg   *debugger.Debugger
}

// New builds a Channel. snap and dbg may be nil if save/load or
// debugger toggling is not wired (e.g. in tests).
func New(line *liner.State, out io.Writer, snap *snapshot.Store, dbg *debugger.Debugger) *Channel {
	return &Channel{line: line, out: out, snap: snap, dbg: dbg}
}

// Next implements executor.InputSource, per the algorithm of spec
// §4.4: drain the queue if non-empty; otherwise read and classify one
// line, looping on recognized commands until a non-command line
// arrives, at which point every character (including the trailing
// newline) is enqueued and the first is delivered.
func (c *Channel) Next(vm *executor.VM) (uint16, error) {
	for {
		if len(c.queue) > 0 {
			v := c.queue[0]
			c.queue = c.queue[1:]
			return v, nil
		}

		raw, err := c.line.Prompt("")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return 0, io.EOF
			}
			return 0, err
		}
		c.line.AppendHistory(raw)

		if handled, err := c.dispatch(raw, vm); handled {
			if err != nil {
				if errors.Is(err, ErrQuit) {
					return 0, err
				}
				fmt.Fprintf(c.out, "command error: %s\n", err.Error())
			}
			continue
		}

		for _, ch := range raw {
			c.queue = append(c.queue, uint16(ch))
		}
		c.queue = append(c.queue, '\n')
	}
}

// dispatch matches trimmed against the operator command grammar. It
// reports whether trimmed was a command at all (handled) separately
// from any error the command itself raised.
func (c *Channel) dispatch(raw string, vm *executor.VM) (handled bool, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false, nil
	}
	fields := strings.SplitN(trimmed, " ", 2)
	name := fields[0]
	args := ""
	if len(fields) == 2 {
		args = strings.TrimSpace(fields[1])
	}

	for _, entry := range cmdList {
		if entry.name == name && (entry.takesArgs || args == "") {
			return true, entry.run(c, args, vm)
		}
	}
	return false, nil
}

func (c *Channel) cmdSave(_ string, vm *executor.VM) error {
	if c.snap == nil {
		return errors.New("snapshot store not available")
	}
	c.snap.Save(vm)
	fmt.Fprintln(c.out, "saved state")
	return nil
}

func (c *Channel) cmdLoad(_ string, vm *executor.VM) error {
	if c.snap == nil {
		return errors.New("snapshot store not available")
	}
	if !c.snap.Restore(vm) {
		return errors.New("no saved state")
	}
	fmt.Fprintln(c.out, "loaded state")
	return nil
}

func (c *Channel) cmdDebug(_ string, _ *executor.VM) error {
	if c.dbg == nil {
		return errors.New("debugger not available")
	}
	c.dbg.Enabled = !c.dbg.Enabled
	return nil
}

func (c *Channel) cmdStep(_ string, _ *executor.VM) error {
	if c.dbg == nil {
		return errors.New("debugger not available")
	}
	c.dbg.Enabled = true
	c.dbg.Stepping = true
	return nil
}

func (c *Channel) cmdSet(args string, vm *executor.VM) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return fmt.Errorf("usage: set R V")
	}
	reg, err := strconv.Atoi(fields[0])
	if err != nil || reg < 0 || reg > 7 {
		return fmt.Errorf("bad register %q", fields[0])
	}
	val, err := strconv.ParseUint(fields[1], 10, 16)
	if err != nil {
		return fmt.Errorf("bad value %q", fields[1])
	}
	vm.Registers[reg] = uint16(val)
	fmt.Fprintf(c.out, "set reg %d to %d\n", reg, val)
	return nil
}

func (c *Channel) cmdReg(_ string, vm *executor.VM) error {
	for i, r := range vm.Registers {
		fmt.Fprintf(c.out, "%d: %d\n", i, r)
	}
	return nil
}

func (c *Channel) cmdQuit(_ string, _ *executor.VM) error {
	return ErrQuit
}
