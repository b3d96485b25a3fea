/*
 * rv32g - Debug shell command parser: prefix-matched commands driving the
 * Debug Interface (spec.md 4.6).
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

// Package parser implements the debug shell's command grammar: a line is a
// command name (matched against cmdList by unambiguous prefix, the same
// style the teacher's command parser uses) followed by hex addresses,
// register names, or byte values depending on the command.
package parser

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/rv32g/rv32g/internal/core"
	"github.com/rv32g/rv32g/internal/hexfmt"
)

type cmd struct {
	name    string
	min     int
	process func(*cmdLine, *core.Core) (quit bool, err error)
}

type cmdLine struct {
	line string
	pos  int
}

var cmdList = []cmd{
	{name: "step", min: 1, process: step},
	{name: "run", min: 1, process: run},
	{name: "continue", min: 1, process: run},
	{name: "halt", min: 1, process: halt},
	{name: "break", min: 2, process: setBreak},
	{name: "clear", min: 2, process: clearBreak},
	{name: "register", min: 3, process: register},
	{name: "memory", min: 3, process: memory},
	{name: "deposit", min: 2, process: deposit},
	{name: "show", min: 2, process: show},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand matches the first word of commandLine against cmdList by
// unambiguous prefix and runs it. quit is true once the shell should exit.
func ProcessCommand(commandLine string, c *core.Core) (quit bool, err error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	switch len(match) {
	case 0:
		return false, fmt.Errorf("command not found: %s", name)
	case 1:
		return match[0].process(&line, c)
	default:
		return false, fmt.Errorf("ambiguous command: %s", name)
	}
}

// CompleteCmd returns the full names of every command whose prefix matches
// the word being typed, for liner's completer.
func CompleteCmd(commandLine string) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()
	if !line.isEOL() {
		return nil
	}
	matches := []string{}
	for _, m := range matchList(name) {
		matches = append(matches, m.name+" ")
	}
	return matches
}

func matchCommand(m cmd, name string) bool {
	if len(name) > len(m.name) {
		return false
	}
	if name != m.name[:len(name)] {
		return false
	}
	return len(name) >= m.min
}

func matchList(name string) []cmd {
	if name == "" {
		return nil
	}
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, name) {
			match = append(match, m)
		}
	}
	return match
}

func (l *cmdLine) isEOL() bool {
	return l.pos >= len(l.line)
}

func (l *cmdLine) skipSpace() {
	for !l.isEOL() && unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
}

// getWord returns the next run of non-space characters, lower-cased.
func (l *cmdLine) getWord() string {
	l.skipSpace()
	start := l.pos
	for !l.isEOL() && !unicode.IsSpace(rune(l.line[l.pos])) {
		l.pos++
	}
	return strings.ToLower(l.line[start:l.pos])
}

// getHex32 parses the next word as a hex address, with or without a "0x"
// prefix.
func (l *cmdLine) getHex32() (uint32, error) {
	word := l.getWord()
	if word == "" {
		return 0, errors.New("expected a hex address")
	}
	word = strings.TrimPrefix(word, "0x")
	v, err := strconv.ParseUint(word, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("not a hex address: %s", word)
	}
	return uint32(v), nil
}

// getUint parses the next word as a decimal unsigned integer.
func (l *cmdLine) getUint() (uint64, error) {
	word := l.getWord()
	if word == "" {
		return 0, errors.New("expected a number")
	}
	v, err := strconv.ParseUint(word, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %s", word)
	}
	return v, nil
}

func step(l *cmdLine, c *core.Core) (bool, error) {
	n := 1
	if !l.isEOL() {
		v, err := l.getUint()
		if err != nil {
			return false, err
		}
		n = int(v)
	}
	c.Step(n)
	reason := c.Wait()
	fmt.Println(reason.String())
	return false, nil
}

func run(_ *cmdLine, c *core.Core) (bool, error) {
	c.Run()
	reason := c.Wait()
	fmt.Println(reason.String())
	return false, nil
}

func halt(_ *cmdLine, c *core.Core) (bool, error) {
	c.Halt()
	return false, nil
}

func setBreak(l *cmdLine, c *core.Core) (bool, error) {
	addr, err := l.getHex32()
	if err != nil {
		return false, err
	}
	return false, c.SetBreakpoint(addr)
}

func clearBreak(l *cmdLine, c *core.Core) (bool, error) {
	word := l.getWord()
	if word == "all" {
		return false, c.ClearAllBreakpoints()
	}
	word = strings.TrimPrefix(word, "0x")
	addr, err := strconv.ParseUint(word, 16, 32)
	if err != nil {
		return false, fmt.Errorf("not a hex address: %s", word)
	}
	return false, c.ClearBreakpoint(uint32(addr))
}

func register(l *cmdLine, c *core.Core) (bool, error) {
	name := l.getWord()
	if name == "" {
		return false, errors.New("expected a register name")
	}
	l.skipSpace()
	if name == "pc" {
		if l.isEOL() {
			fmt.Printf("pc = %s\n", hexfmt.Word32(c.S.PC()))
			return false, nil
		}
		addr, err := l.getHex32()
		if err != nil {
			return false, err
		}
		c.S.SetPC(addr)
		return false, nil
	}
	if l.isEOL() {
		v, err := c.ReadRegister(name)
		if err != nil {
			return false, err
		}
		fmt.Printf("%s = %s\n", name, hexfmt.Word32(uint32(v)))
		return false, nil
	}
	v, err := l.getHex32()
	if err != nil {
		return false, err
	}
	return false, c.WriteRegister(name, uint64(v))
}

func memory(l *cmdLine, c *core.Core) (bool, error) {
	addr, err := l.getHex32()
	if err != nil {
		return false, err
	}
	size := 16
	if !l.isEOL() {
		v, err := l.getUint()
		if err != nil {
			return false, err
		}
		size = int(v)
	}
	buf, err := c.ReadMemory(addr, size)
	if err != nil {
		return false, err
	}
	var b strings.Builder
	hexfmt.FormatBytes(&b, true, buf)
	fmt.Printf("%s: %s\n", hexfmt.Word32(addr), b.String())
	return false, nil
}

func deposit(l *cmdLine, c *core.Core) (bool, error) {
	addr, err := l.getHex32()
	if err != nil {
		return false, err
	}
	word := strings.TrimPrefix(l.getWord(), "0x")
	if word == "" {
		return false, errors.New("expected hex bytes")
	}
	buf, err := hex.DecodeString(word)
	if err != nil {
		return false, fmt.Errorf("not hex bytes: %s", word)
	}
	return false, c.WriteMemory(addr, buf)
}

func show(_ *cmdLine, c *core.Core) (bool, error) {
	fmt.Printf("pc = %s\n", hexfmt.Word32(c.S.PC()))
	fmt.Printf("state = %s\n", c.State().String())
	fmt.Printf("instructions retired = %d\n", c.InstrCount())
	return false, nil
}

func quit(_ *cmdLine, _ *core.Core) (bool, error) {
	return true, nil
}
