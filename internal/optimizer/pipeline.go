package optimizer

import (
	"fmt"

	"bessambly/internal/ast"
	"bessambly/internal/errors"
	"bessambly/internal/semantic"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("bessambly.optimizer")

const (
	// DefaultMaxIterations bounds the fixed-point loop.
	DefaultMaxIterations = 1000

	// DefaultLevel runs every pass. Level 0 only assigns addresses.
	DefaultLevel = 1
)

// Pass represents a single optimization transformation
type Pass interface {
	Name() string
	Description() string
	Apply(ctx *Context) bool // Returns true if changes were made
}

// Context is what a pass operates on. Passes report each rewrite through Record.
type Context struct {
	Program *ast.Program
	Symbols *semantic.SymbolTable

	pass     string
	rewrites []Rewrite
}

// Rewrite describes one change made by a pass.
type Rewrite struct {
	Pass     string
	Position ast.Position
	Message  string
}

func (r Rewrite) String() string {
	return fmt.Sprintf("%s: [%s] %s", r.Position, r.Pass, r.Message)
}

// Record logs a rewrite and keeps it for the report.
func (c *Context) Record(pos ast.Position, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Infof("%s: %s: %s", c.pass, pos, message)
	c.rewrites = append(c.rewrites, Rewrite{Pass: c.pass, Position: pos, Message: message})
}

// Report summarizes one pipeline run.
type Report struct {
	Iterations int       // full sweeps over every pass, including the final quiet one
	Changes    int       // pass applications that reported a change
	Rewrites   []Rewrite // every individual rewrite, in order
}

// Pipeline manages the sequence of optimization passes
type Pipeline struct {
	passes        []Pass
	maxIterations int
	level         int
}

type Option func(*Pipeline)

// WithMaxIterations sets the iteration cap. Values below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxIterations = n
		}
	}
}

// WithLevel selects the optimization level.
func WithLevel(level int) Option {
	return func(p *Pipeline) {
		p.level = level
	}
}

// NewPipeline creates a pipeline with the standard passes for the selected level
func NewPipeline(opts ...Option) *Pipeline {
	pipeline := &Pipeline{
		maxIterations: DefaultMaxIterations,
		level:         DefaultLevel,
	}
	for _, opt := range opts {
		opt(pipeline)
	}

	// Addresses come first so later passes and the next sweep see current values
	pipeline.AddPass(&AddressAssignment{})
	if pipeline.level > 0 {
		pipeline.AddPass(&DeadCodeElimination{})
		pipeline.AddPass(&JumpThreading{})
		pipeline.AddPass(&ConstantFolding{})
	}

	return pipeline
}

// AddPass adds an optimization pass to the end of the pipeline
func (p *Pipeline) AddPass(pass Pass) {
	p.passes = append(p.passes, pass)
}

// Passes returns the passes in execution order.
func (p *Pipeline) Passes() []Pass {
	out := make([]Pass, len(p.passes))
	copy(out, p.passes)
	return out
}

// Run applies every pass repeatedly until a whole sweep makes no change.
// The program and symbol table are rewritten in place.
func (p *Pipeline) Run(program *ast.Program, symbols *semantic.SymbolTable) (*Report, error) {
	if program == nil || symbols == nil {
		return nil, fmt.Errorf("optimizer: nil program or symbol table: %w", errors.ErrInvalidInput)
	}

	ctx := &Context{Program: program, Symbols: symbols}
	report := &Report{}

	log.Debugf("running %d passes, at most %d iterations", len(p.passes), p.maxIterations)

	for {
		if report.Iterations >= p.maxIterations {
			report.Rewrites = ctx.rewrites
			return report, fmt.Errorf("optimizer: stopped after %d iterations: %w", report.Iterations, errors.ErrNoFixedPoint)
		}
		report.Iterations++

		changed := false
		for _, pass := range p.passes {
			ctx.pass = pass.Name()
			if pass.Apply(ctx) {
				log.Debugf("iteration %d: %s changed the program", report.Iterations, pass.Name())
				changed = true
				report.Changes++
			}
		}

		if !changed {
			break
		}
	}

	report.Rewrites = ctx.rewrites
	log.Infof("fixed point after %d iterations, %d rewrites", report.Iterations, len(report.Rewrites))
	return report, nil
}
