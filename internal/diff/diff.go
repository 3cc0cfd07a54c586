// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package diff renders unified diffs of file rewrites.
package diff

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

const contextLines = 3

// Unified returns a unified diff between contents a and b of the file called
// name, or an empty string if they are equal.
func Unified(name string, a, b []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  contextLines,
	})
}

// Printer writes unified diffs to an underlying writer, optionally colored
// for a terminal.
type Printer struct {
	w io.Writer

	header, hunk, add, del *color.Color
}

// NewPrinter returns a Printer writing to w. Colors are used only if colored
// is true.
func NewPrinter(w io.Writer, colored bool) *Printer {
	p := &Printer{
		w:      w,
		header: color.New(color.Bold),
		hunk:   color.New(color.FgCyan),
		add:    color.New(color.FgGreen),
		del:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.header, p.hunk, p.add, p.del} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Print writes the diff between contents a and b of name.
func (p *Printer) Print(name string, a, b []byte) error {
	d, err := Unified(name, a, b)
	if err != nil {
		return err
	}
	for _, line := range strings.SplitAfter(d, "\n") {
		if line == "" {
			continue
		}
		c := p.colorFor(line)
		if c == nil {
			if _, err := io.WriteString(p.w, line); err != nil {
				return err
			}
			continue
		}
		if _, err := c.Fprint(p.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) colorFor(line string) *color.Color {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return p.header
	case strings.HasPrefix(line, "@@"):
		return p.hunk
	case strings.HasPrefix(line, "+"):
		return p.add
	case strings.HasPrefix(line, "-"):
		return p.del
	}
	return nil
}
