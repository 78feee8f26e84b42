/*
 * synacorvm - Main process.
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

package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	"github.com/peterh/liner"

	"github.com/rcornwell/synacorvm/internal/debugger"
	"github.com/rcornwell/synacorvm/internal/executor"
	"github.com/rcornwell/synacorvm/internal/image"
	"github.com/rcornwell/synacorvm/internal/inputchannel"
	"github.com/rcornwell/synacorvm/internal/snapshot"
	"github.com/rcornwell/synacorvm/internal/vmerr"
	"github.com/rcornwell/synacorvm/internal/vmlog"
)

var Logger *slog.Logger

func main() {
	optImage := getopt.StringLong("image", 'i', "", "Path to the binary image")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optBreak := getopt.IntLong("break", 'b', 0, "Initial breakpoint address")
	optDebug := getopt.BoolLong("debug", 'd', "Start with the debugger enabled")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(vmlog.NewHandler(file, &slog.HandlerOptions{Level: programLevel}, false))
	slog.SetDefault(Logger)

	path := imagePath(optImage, getopt.Args())
	if path == "" {
		Logger.Error("no image path given: pass -i, a positional argument, or set $SYNACOR_IMAGE")
		os.Exit(1)
	}

	words, err := image.Load(path)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	vm := executor.New(words)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	snap := &snapshot.Store{}
	snap.Save(vm) // seed with the freshly loaded image, so an early "load" resets to it
	dbg := debugger.New(os.Stdout, line)
	dbg.Enabled = *optDebug
	dbg.Breakpoint = uint16(*optBreak)
	in := inputchannel.New(line, os.Stdout, snap, dbg)

	runErr := vm.Run(os.Stdout, in, dbg)
	os.Exit(exitCode(runErr))
}

// imagePath resolves the image path from, in order: the -i/--image
// flag, the first positional argument, and $SYNACOR_IMAGE.
func imagePath(flagVal *string, positional []string) string {
	if flagVal != nil && *flagVal != "" {
		return *flagVal
	}
	if len(positional) > 0 {
		return positional[0]
	}
	return os.Getenv("SYNACOR_IMAGE")
}

// exitCode maps a VM run error to the process exit code: 0 on HALT
// (including EOF-as-HALT and invalid opcode, both of which still halt
// after printing the termination line) and on an operator "q",
// non-zero on any other fatal error.
func exitCode(err error) int {
	if err == nil {
		Logger.Info("program halted, now exiting")
		return 0
	}
	if errors.Is(err, inputchannel.ErrQuit) {
		return 0
	}
	if errors.Is(err, io.EOF) {
		Logger.Info("program halted, now exiting")
		return 0
	}
	var verr *vmerr.Error
	if errors.As(err, &verr) {
		Logger.Error(verr.Error())
		if verr.Kind == vmerr.Opcode {
			Logger.Info("program halted, now exiting")
			return 0
		}
		return 1
	}
	Logger.Error(err.Error())
	return 1
}
