/*
 * rv32g - Counter export: a flat textual component-data record of named
 * counters and their final values (spec.md 6).
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

// Package counters implements the counter/trace sink of spec.md 4.7 step 5
// and the textual component-data record export of spec.md 6: one named
// counter per retired opcode, plus the running total, written one
// "name value" line per record on Export.
package counters

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/rv32g/rv32g/internal/decoder"
	"github.com/rv32g/rv32g/internal/state"
)

// Counters tallies retired instructions by name; safe for concurrent use
// since Sink may be invoked from the core's run-loop goroutine while Export
// is called from the shell or the driver at shutdown.
type Counters struct {
	mu       sync.Mutex
	total    uint64
	byOpcode map[string]uint64
}

// New returns an empty counter set.
func New() *Counters {
	return &Counters{byOpcode: make(map[string]uint64)}
}

// Sink is installed on Core via AddSink; it tallies every retired
// instruction by mnemonic (spec.md 4.7 step 5).
func (c *Counters) Sink(s *state.State, inst *decoder.Instruction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total++
	c.byOpcode[inst.Name]++
}

// Export writes one "name value" line per counter, sorted by name, followed
// by a final "instructions_retired" total line — a flat component-data
// record (spec.md 6), not a structured or machine-specific format.
func (c *Counters) Export(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.byOpcode))
	for name := range c.byOpcode {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%s %d\n", name, c.byOpcode[name]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "instructions_retired %d\n", c.total)
	return err
}
