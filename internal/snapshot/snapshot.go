/*
 * synacorvm - Single-slot VM state snapshot store.
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

// Package snapshot holds one captured copy of VM state, replaceable
// on demand by the "save"/"load" operator commands.
package snapshot

import "github.com/rcornwell/synacorvm/internal/executor"

// Store holds at most one snapshot. The zero value is empty: Restore
// before any Save is a no-op that reports false. Callers that want an
// unconditioned "load" to reset to the initial VM state should call
// Save once right after building the VM, before running it.
type Store struct {
	have bool
	vm   executor.VM
}

// Save replaces the stored snapshot with a deep copy of vm's current
// state.
func (s *Store) Save(vm *executor.VM) {
	s.vm = *vm
	s.vm.Stack = append([]uint16(nil), vm.Stack...)
	s.have = true
}

// Restore atomically replaces vm's live state (including PC and
// run-state) with a deep copy of the stored snapshot. It reports false
// and leaves vm untouched if no snapshot has been saved yet.
func (s *Store) Restore(vm *executor.VM) bool {
	if !s.have {
		return false
	}
	*vm = s.vm
	vm.Stack = append([]uint16(nil), s.vm.Stack...)
	return true
}

// Saved reports whether a snapshot has ever been taken.
func (s *Store) Saved() bool {
	return s.have
}
