package util

import "strings"

// PrettyPrinter is implemented by anything that can write a human-readable
// representation of itself into a Printer.
type PrettyPrinter interface {
	PrettyPrint(p *Printer)
}

// Printer is an indentation-aware text builder.  It tracks a nesting depth and
// applies the matching indentation only at the start of a line, so text can be
// appended in pieces without worrying about where lines begin.
type Printer struct {
	sb          strings.Builder
	indentStyle string
	depth       int
}

// NewPrinter creates a new printer that indents with the given string once per
// level of depth.
func NewPrinter(indentStyle string) *Printer {
	return &Printer{indentStyle: indentStyle}
}

// Right increases the indentation depth by one level.
func (p *Printer) Right() {
	p.depth++
}

// Left decreases the indentation depth by one level.
func (p *Printer) Left() {
	if p.depth > 0 {
		p.depth--
	}
}

// Depth returns the current indentation depth.
func (p *Printer) Depth() int {
	return p.depth
}

// Clear empties the printer and resets its depth.
func (p *Printer) Clear() {
	p.sb.Reset()
	p.depth = 0
}

// atLineStart returns whether the next character written begins a new line.
func (p *Printer) atLineStart() bool {
	s := p.sb.String()
	return len(s) == 0 || s[len(s)-1] == '\n'
}

// Append writes msg to the printer.  Every line of msg that begins on a fresh
// line is indented to the current depth.  Segments of msg that consist only of
// whitespace and would begin a fresh line are dropped; their newlines are
// kept.
func (p *Printer) Append(msg string) {
	for i, line := range strings.Split(msg, "\n") {
		if i > 0 {
			p.sb.WriteByte('\n')
		}

		if p.atLineStart() {
			if strings.TrimSpace(line) == "" {
				continue
			}

			p.sb.WriteString(strings.Repeat(p.indentStyle, p.depth))
		}

		p.sb.WriteString(line)
	}
}

// AppendLn writes msg followed by a newline.
func (p *Printer) AppendLn(msg string) {
	p.Append(msg + "\n")
}

// Print writes the pretty-printed form of obj.
func (p *Printer) Print(obj PrettyPrinter) {
	obj.PrettyPrint(p)
}

func (p *Printer) String() string {
	return p.sb.String()
}

// Sprint pretty-prints obj into a fresh printer and returns the text.
func Sprint(indentStyle string, obj PrettyPrinter) string {
	p := NewPrinter(indentStyle)
	p.Print(obj)
	return p.String()
}
