package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func writeSource(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.bsm")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestCompileCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-color", "--rewrites", "../../examples/threading.bsm"}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "[Jump Threading]")
	assert.Contains(t, stdout.String(), "LABEL")
	assert.Contains(t, stdout.String(), "Successfully compiled")
}

func TestCompileCommandReportsDiagnostics(t *testing.T) {
	path := writeSource(t, "JMP nowhere\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{path}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "error[E0002]")
	assert.Contains(t, stderr.String(), "Compilation failed during semantic analysis")
}

func TestCompileCommandRejectsUnknownTarget(t *testing.T) {
	path := writeSource(t, "RET\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--target", "windows/sparcv9", path}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "unsupported target")
}

func TestCompileCommandNeedsOneFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage:")
	assert.Contains(t, stderr.String(), "--max-iterations")
}

func TestCompileCommandFlags(t *testing.T) {
	path := writeSource(t, "JMP end\nMOV R0, 1\nend:\nRET\n")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-O", "0", "--target", "windows/armv9", path}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "MOV R0, 1", "level 0 keeps dead code")
	assert.Contains(t, stdout.String(), "for windows/armv9")

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-v", "--max-iterations", "5", path}, &stdout, &stderr), stderr.String())
	assert.NotContains(t, stdout.String(), "MOV R0, 1")
}

func TestCompileCommandIterationCap(t *testing.T) {
	path := writeSource(t, "JMP a\na:\nJMP b\nb:\nJMP c\nc:\nRET\n")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"--max-iterations", "1", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "fixed point")
	assert.Contains(t, stderr.String(), "Compilation failed during optimization")
}

func TestUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run([]string{"--frobnicate", "x.bsm"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unknown flag")
}

func TestFormatCommand(t *testing.T) {
	path := writeSource(t, "loop:  JMP   loop\n")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"fmt", path}, &stdout, &stderr))
	assert.Equal(t, "loop:\n    JMP loop\n", stdout.String())

	stdout.Reset()
	require.Equal(t, 0, run([]string{"fmt", "-w", path}, &stdout, &stderr))
	assert.Empty(t, stdout.String())

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "loop:\n    JMP loop\n", string(written))
}

func TestFormatCommandSyntaxError(t *testing.T) {
	path := writeSource(t, "MOV R0 R1\n")

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"fmt", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Syntax error")
}

func TestFormatCommandLongFlag(t *testing.T) {
	path := writeSource(t, "RET\n")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"fmt", "--write", path}, &stdout, &stderr))
	assert.Empty(t, stdout.String())
	assert.Equal(t, 2, run([]string{"fmt"}, &stdout, &stderr))
}

func TestExplainCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"explain", "e0002"}, &stdout, &stderr))
	assert.Equal(t, "E0002 (Semantic Analysis): Jump refers to a label that is not declared\n", stdout.String())

	stdout.Reset()
	assert.Equal(t, 2, run([]string{"explain", "E0999"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unknown diagnostic code")
}

func TestTargetsCommand(t *testing.T) {
	var stdout bytes.Buffer
	require.Equal(t, 0, run([]string{"targets"}, &stdout, &bytes.Buffer{}))

	out := stdout.String()
	assert.Contains(t, out, "linux/amd64")
	assert.Contains(t, out, "Little")
	assert.Contains(t, out, "Big")
}
