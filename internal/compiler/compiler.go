package compiler

import (
	"fmt"
	"os"

	"bessambly/internal/ast"
	"bessambly/internal/errors"
	"bessambly/internal/optimizer"
	"bessambly/internal/parser"
	"bessambly/internal/semantic"
	"bessambly/internal/target"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("bessambly.compiler")

// Stage identifies a step of the compilation pipeline.
type Stage int

const (
	StageParse Stage = iota
	StageSemantic
	StageOptimize
)

func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageSemantic:
		return "semantic analysis"
	case StageOptimize:
		return "optimization"
	default:
		return "unknown stage"
	}
}

type Options struct {
	OptimizationLevel int            // 0 assigns addresses only
	MaxIterations     int            // optimizer cap, 0 for the default
	Target            *target.Config // nil selects target.Default()
}

func DefaultOptions() Options {
	return Options{
		OptimizationLevel: optimizer.DefaultLevel,
		MaxIterations:     optimizer.DefaultMaxIterations,
	}
}

// Result holds everything a compilation produced. Program and Symbols are
// nil unless every stage succeeded. Parsed is the program as written and is
// set whenever parsing succeeded, even if a later stage failed.
type Result struct {
	Parsed      *ast.Program
	Program     *ast.Program
	Symbols     *semantic.SymbolTable
	Report      *optimizer.Report
	Target      *target.Config
	Diagnostics []errors.CompilerError
	FailedStage Stage
}

// Compile runs the parser, the semantic analyzer and the optimizer in order.
// A failing stage stops the pipeline; the returned error then wraps
// errors.ErrCompilationFailed.
func Compile(filename, source string, opts Options) (*Result, error) {
	result := &Result{Target: opts.Target}
	if result.Target == nil {
		result.Target = target.Default()
	}

	log.Debugf("compiling %s for %s", filename, result.Target)

	program, parseErrors := parser.ParseSource(filename, source)
	for _, pe := range parseErrors {
		result.Diagnostics = append(result.Diagnostics, pe.ToCompilerError(filename))
	}
	if program == nil {
		return result.fail(StageParse, nil)
	}
	result.Parsed = program

	analysis, err := semantic.NewAnalyzer().Analyze(program)
	if err != nil {
		return nil, err
	}
	result.Diagnostics = append(result.Diagnostics, analysis.Diagnostics...)
	if !analysis.OK() {
		return result.fail(StageSemantic, nil)
	}

	pipeline := optimizer.NewPipeline(
		optimizer.WithLevel(opts.OptimizationLevel),
		optimizer.WithMaxIterations(opts.MaxIterations),
	)
	// the optimizer rewrites in place; Parsed keeps the source order
	optimized := analysis.Program.Clone()
	report, err := pipeline.Run(optimized, analysis.Symbols)
	result.Report = report
	if err != nil {
		return result.fail(StageOptimize, err)
	}

	result.Program = optimized
	result.Symbols = analysis.Symbols
	log.Infof("%s: %d instructions, %d labels", filename, len(result.Program.Instructions()), result.Symbols.Len())
	return result, nil
}

// CompileFile reads path and compiles it.
func CompileFile(path string, opts Options) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Compile(path, string(source), opts)
}

func (r *Result) fail(stage Stage, cause error) (*Result, error) {
	r.FailedStage = stage
	r.Program = nil
	r.Symbols = nil
	log.Debugf("%s failed with %d diagnostics", stage, len(r.Diagnostics))
	if cause != nil {
		return r, fmt.Errorf("%s: %w: %w", stage, errors.ErrCompilationFailed, cause)
	}
	return r, fmt.Errorf("%s: %w", stage, errors.ErrCompilationFailed)
}
