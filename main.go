/*
 * rv32g - Driver: thin plumbing wiring the loader, architectural state, and
 * core together, then handing off to either the debug shell or a free run
 * (spec.md 1, 6).
 *
 * Copyright 2025, rv32g Authors
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
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	"github.com/rv32g/rv32g/internal/armsemihost"
	"github.com/rv32g/rv32g/internal/core"
	"github.com/rv32g/rv32g/internal/counters"
	"github.com/rv32g/rv32g/internal/htif"
	"github.com/rv32g/rv32g/internal/loader"
	"github.com/rv32g/rv32g/internal/logutil"
	"github.com/rv32g/rv32g/internal/memory"
	"github.com/rv32g/rv32g/internal/shell"
	"github.com/rv32g/rv32g/internal/state"
)

var logger *slog.Logger

func main() {
	os.Exit(run())
}

func run() int {
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optInteractive := getopt.BoolLong("interactive", 'i', "Start the debug shell instead of running freely")
	optCounterDir := getopt.StringLong("counter-dir", 'c', "", "Directory to write the counter-export record to")
	optHTIF := getopt.BoolLong("htif", 0, "Enable HTIF semihosting")
	optARM := getopt.BoolLong("arm-semihost", 0, "Enable ARM semihosting")
	optStackBase := getopt.StringLong("stack-base", 0, "", "Initial stack pointer (hex), overriding __stack_end")
	optStackSize := getopt.StringLong("stack-size", 0, "", "Stack size in bytes (hex), overriding __stack_size")
	optExitOnEcall := getopt.BoolLong("exit-on-ecall", 0, "Halt with ProgramDone on any unclaimed ecall")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		return 0
	}

	var file *os.File
	if *optLogFile != "" {
		var err error
		file, err = os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "rv32g: ", err)
			return 1
		}
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	logger = slog.New(logutil.NewHandler(file, &slog.HandlerOptions{Level: programLevel}, false))
	slog.SetDefault(logger)

	if *optHTIF && *optARM {
		logger.Error("htif and arm-semihost are mutually exclusive")
		return 1
	}

	args := getopt.Args()
	if len(args) != 1 {
		logger.Error("expected exactly one ELF file argument")
		return 1
	}
	elfPath := args[0]

	data, err := os.ReadFile(elfPath)
	if err != nil {
		logger.Error("reading " + filepath.Clean(elfPath) + ": " + err.Error())
		return 1
	}

	img, err := loader.LoadELF32(data)
	if err != nil {
		logger.Error("loading " + elfPath + ": " + err.Error())
		return 1
	}

	mem := memory.New()
	watcher := memory.NewWatcher(mem)
	s := state.New(watcher)

	for _, seg := range img.Segments() {
		mem.Store(seg.Addr, seg.Data)
	}
	s.SetPC(img.Entry())

	c := core.New(s)
	mem.OnWrite(func(addr uint32, size int) {
		c.Cache.Invalidate(addr, size)
	})

	stackBase, haveBase := parseHexFlag(*optStackBase)
	stackSize, haveSize := parseHexFlag(*optStackSize)
	if sp, ok := loader.InitStack(img, stackBase, stackSize, haveBase, haveSize); ok {
		s.WriteInt("sp", sp)
	}

	if *optHTIF {
		if _, ok, err := htif.Install(watcher, img, c, os.Stdout); err != nil {
			logger.Error("installing HTIF: " + err.Error())
			return 1
		} else if !ok {
			logger.Warn("htif requested but the binary carries no HTIF symbols")
		}
	}
	if *optARM {
		armsemihost.Install(s, mem, c, os.Stdout)
	}
	if *optExitOnEcall {
		c.EnableExitOnEcall()
	}

	counts := counters.New()
	c.AddSink(counts.Sink)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		c.Halt()
	}()

	var reason core.HaltReason
	if *optInteractive {
		shell.ConsoleReader(c)
		reason = core.HaltReason{Kind: core.HaltUser}
	} else {
		c.Run()
		reason = c.Wait()
	}

	if *optCounterDir != "" {
		if err := exportCounters(*optCounterDir, counts); err != nil {
			logger.Error("exporting counters: " + err.Error())
		}
	}

	logger.Info("halted: " + reason.String())

	switch reason.Kind {
	case core.HaltFatalTrap:
		return 1
	default:
		return 0
	}
}

func parseHexFlag(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	var v uint32
	_, err := fmt.Sscanf(s, "%x", &v)
	return v, err == nil
}

func exportCounters(dir string, counts *counters.Counters) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "counters.txt"))
	if err != nil {
		return err
	}
	defer f.Close()
	return counts.Export(f)
}
