// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"bessambly/internal/compiler"
	"bessambly/internal/errors"
)

const PROMPT = ">> "

// Start reads Bessambly source line by line. Every accepted line is added to
// the session program, which is recompiled and printed after each entry.
// Lines that do not parse are reported and discarded. ":reset" clears the
// session and ":quit" ends it.
func Start(in io.Reader, out io.Writer, opts compiler.Options) {
	scanner := bufio.NewScanner(in)
	var lines []string

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "":
			continue
		case ":quit":
			return
		case ":reset":
			lines = nil
			continue
		}

		candidate := strings.Join(append(lines, line), "\n") + "\n"
		result, err := compiler.Compile("<repl>", candidate, opts)
		if result == nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		reporter := errors.NewErrorReporter("<repl>", candidate)
		for _, diag := range result.Diagnostics {
			fmt.Fprint(out, reporter.FormatError(diag))
		}

		if err != nil && result.FailedStage == compiler.StageParse {
			continue
		}
		lines = append(lines, line)

		if result.Program != nil {
			fmt.Fprint(out, result.Program.String())
		}
	}
}
