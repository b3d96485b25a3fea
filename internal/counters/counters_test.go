/*
 * rv32g - Tests for counter export.
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

package counters

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rv32g/rv32g/internal/decoder"
)

func TestSinkTalliesByOpcode(t *testing.T) {
	c := New()
	c.Sink(nil, &decoder.Instruction{Name: "addi"})
	c.Sink(nil, &decoder.Instruction{Name: "addi"})
	c.Sink(nil, &decoder.Instruction{Name: "jal"})

	var buf bytes.Buffer
	if err := c.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"addi 2\n", "jal 1\n", "instructions_retired 3\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("Export() = %q, missing line %q", out, want)
		}
	}
}

func TestExportEmpty(t *testing.T) {
	c := New()
	var buf bytes.Buffer
	if err := c.Export(&buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if buf.String() != "instructions_retired 0\n" {
		t.Errorf("Export() = %q, want just the total line", buf.String())
	}
}
