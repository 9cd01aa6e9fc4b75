package grammar

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var parser = buildParser()

func buildParser() *participle.Parser[File] {
	p, err := participle.Build[File](
		participle.Lexer(BessamblyLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}

	return p
}

// ParseString parses source. A missing final line break is supplied.
func ParseString(name, source string) (*File, error) {
	if !strings.HasSuffix(source, "\n") {
		source += "\n"
	}
	return parser.ParseString(name, source)
}

func ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseString(path, string(source))
}

// ReportParseError writes a caret-style parse error message to w.
func ReportParseError(w io.Writer, src string, err error) {
	red := color.New(color.FgRed).SprintFunc()
	hiRed := color.New(color.FgHiRed).SprintFunc()

	pe, ok := err.(participle.Error)
	if !ok {
		fmt.Fprintln(w, red(fmt.Sprintf("Unexpected error: %s", err)))
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		fmt.Fprintln(w, red(fmt.Sprintf("Syntax error at unknown location: %s", err)))
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(0, pos.Column-1)) + "^"

	fmt.Fprintln(w, red(fmt.Sprintf("Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)))
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, hiRed(caret))
	fmt.Fprintf(w, "→ %s\n", pe.Message())
}
