package main

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/reflow/wordwrap"

	"mockzork/zork"
)

// console is the terminal side of the cli and headless frontends.
type console struct {
	out   io.Writer
	width int
}

func newConsole(out io.Writer, width int) *console {
	if out == nil {
		out = os.Stdout
	}
	return &console{out: out, width: width}
}

func (c *console) print(a ...any) {
	_, _ = fmt.Fprint(c.out, a...)
}

func (c *console) println(a ...any) {
	_, _ = fmt.Fprintln(c.out, a...)
}

func (c *console) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(c.out, format, a...)
}

// wrapWriteLn writes text wrapped at the console width. Embedded newlines are kept.
func (c *console) wrapWriteLn(text string) {
	c.println(wrap(text, c.width))
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// showState prints an observation followed by the score footer.
func (c *console) showState(st zork.GameState) {
	c.println()
	c.wrapWriteLn(st.Observation)
	c.printf("[score %d, moves %d]\n", st.Score, st.Moves)
}
