package grammar

import (
	"strings"
)

const instructionIndent = "    "

// Format prints f in canonical layout: labels at column 0, instructions
// indented, operands separated by ", ", upper-case hex digits, runs of blank
// lines collapsed to one and no leading or trailing blank lines.
func Format(f *File) string {
	var b strings.Builder
	pendingBlank := false
	wrote := false

	for _, line := range f.Lines {
		if line.IsBlank() {
			pendingBlank = wrote
			continue
		}
		if pendingBlank {
			b.WriteString("\n")
			pendingBlank = false
		}
		b.WriteString(line.String())
		wrote = true
	}

	return b.String()
}

// FormatSource parses and formats source in one step.
func FormatSource(name, source string) (string, error) {
	f, err := ParseString(name, source)
	if err != nil {
		return "", err
	}
	return Format(f), nil
}

func (f *File) String() string {
	return Format(f)
}

// String renders one source line. A label followed by an instruction on the
// same line is split over two lines.
func (l *Line) String() string {
	var b strings.Builder

	if l.Label != nil {
		b.WriteString(l.Label.String())
		if l.Instruction == nil && l.Comment != nil {
			b.WriteString(" " + l.Comment.String())
		}
		b.WriteString("\n")
	}

	if l.Instruction != nil {
		b.WriteString(instructionIndent + l.Instruction.String())
		if l.Comment != nil {
			b.WriteString(" " + l.Comment.String())
		}
		b.WriteString("\n")
	} else if l.Label == nil && l.Comment != nil {
		if l.Comment.Pos.Column > 1 {
			b.WriteString(instructionIndent)
		}
		b.WriteString(l.Comment.String() + "\n")
	}

	return b.String()
}

func (l *Label) String() string {
	return l.Name + ":"
}

func (c *Comment) String() string {
	return strings.TrimRight(c.Text, " \t\r")
}

func (i *Instruction) String() string {
	var b strings.Builder
	b.WriteString(i.Opcode)
	for idx, op := range i.Operands {
		if idx == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(op.String())
	}
	return b.String()
}

func (o *Operand) String() string {
	switch {
	case o.Register != nil:
		return *o.Register
	case o.Hex != nil:
		return "0x" + strings.ToUpper((*o.Hex)[2:])
	case o.Integer != nil:
		return *o.Integer
	case o.Label != nil:
		return *o.Label
	default:
		return ""
	}
}
