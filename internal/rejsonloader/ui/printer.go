// Copyright © 2025 jackelyj <dreamerlyj@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
//

// Package ui renders loader results on the terminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes the confirmation line and the retrieved document.
type Printer struct {
	output  io.Writer
	success *color.Color
}

// PrinterOption represents a configuration option for Printer.
type PrinterOption func(*Printer)

// WithOutput sets the output writer.
func WithOutput(output io.Writer) PrinterOption {
	return func(p *Printer) {
		p.output = output
	}
}

// WithNoColor disables color output.
func WithNoColor(noColor bool) PrinterOption {
	return func(p *Printer) {
		if noColor {
			p.success.DisableColor()
		}
	}
}

// NewPrinter creates a printer writing to stdout.
func NewPrinter(options ...PrinterOption) *Printer {
	p := &Printer{
		output:  os.Stdout,
		success: color.New(color.FgGreen, color.Bold),
	}

	for _, option := range options {
		option(p)
	}

	return p
}

// PrintLoaded writes the confirmation line followed by the rendered document.
func (p *Printer) PrintLoaded(key, addr string, db int, rendered string) error {
	line := p.success.Sprintf("Document %q loaded into %s (db %d):", key, addr, db)
	_, err := fmt.Fprintf(p.output, "%s\n%s\n", line, rendered)
	return err
}
