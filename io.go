package main

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const maxHistory = 50

// lineReader reads player input. On a terminal it runs a small raw-mode editor with
// backspace and up/down history; otherwise it reads plain lines.
type lineReader struct {
	con      *console
	in       io.Reader
	buf      *bufio.Reader
	headless bool

	history []string
}

func newLineReader(con *console, in io.Reader, headless bool) *lineReader {
	return &lineReader{
		con:      con,
		in:       in,
		buf:      bufio.NewReader(in),
		headless: headless,
	}
}

// ReadLine prints prompt and returns the next line without its terminator.
// It returns io.EOF when input ends or the player presses Ctrl-D.
func (r *lineReader) ReadLine(prompt string) (string, error) {
	r.con.print(prompt)

	f, ok := r.in.(*os.File)
	if r.headless || !ok || !term.IsTerminal(int(f.Fd())) {
		return r.readPlain()
	}

	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return r.readPlain()
	}
	defer func() { _ = term.Restore(fd, oldState) }()
	return r.readRaw(f)
}

func (r *lineReader) readPlain() (string, error) {
	line, err := r.buf.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line == "" {
		return "", io.EOF
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	return line, nil
}

func (r *lineReader) readRaw(f *os.File) (string, error) {
	var lineRunes []rune
	histIdx := len(r.history)

	erase := func() {
		for range lineRunes {
			r.con.print("\b \b")
		}
	}

	for {
		buf := make([]byte, 4)
		n, err := f.Read(buf)
		if err != nil || n == 0 {
			r.con.print("\r\n")
			if len(lineRunes) == 0 {
				return "", io.EOF
			}
			return string(lineRunes), nil
		}
		b := buf[0]

		switch {
		case b == '\r' || b == '\n':
			r.con.print("\r\n")
			line := string(lineRunes)
			r.remember(line)
			return line, nil

		case b == '\x04': // Ctrl-D
			r.con.print("\r\n")
			return "", io.EOF

		case b == '\x7f' || b == '\x08':
			if len(lineRunes) > 0 {
				lineRunes = lineRunes[:len(lineRunes)-1]
				r.con.print("\b \b")
			}

		case b == '\x1b':
			seq := buf[1:n]
			if len(seq) < 2 {
				more := make([]byte, 2)
				m, _ := f.Read(more)
				seq = append(seq, more[:m]...)
			}
			if len(seq) < 2 || seq[0] != '[' {
				continue
			}
			switch seq[1] {
			case 'A':
				if histIdx > 0 {
					erase()
					histIdx--
					lineRunes = []rune(r.history[histIdx])
					r.con.print(string(lineRunes))
				}
			case 'B':
				if histIdx < len(r.history) {
					erase()
					histIdx++
					lineRunes = nil
					if histIdx < len(r.history) {
						lineRunes = []rune(r.history[histIdx])
					}
					r.con.print(string(lineRunes))
				}
			}

		default:
			if b >= ' ' {
				if rn, _ := utf8.DecodeRune(buf[:n]); rn != utf8.RuneError {
					lineRunes = append(lineRunes, rn)
					r.con.print(string(rn))
				}
			}
		}
	}
}

// remember appends line to the history, skipping blanks and immediate repeats.
func (r *lineReader) remember(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if n := len(r.history); n > 0 && r.history[n-1] == line {
		return
	}
	r.history = append(r.history, line)
	if len(r.history) > maxHistory {
		r.history = r.history[len(r.history)-maxHistory:]
	}
}
