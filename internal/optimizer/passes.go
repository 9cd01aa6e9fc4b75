package optimizer

import (
	"strings"

	"bessambly/internal/ast"
)

// AddressAssignment numbers instructions in program order. A label takes the
// address of the instruction that follows it.
type AddressAssignment struct{}

func (aa *AddressAssignment) Name() string {
	return "Address Assignment"
}

func (aa *AddressAssignment) Description() string {
	return "Assigns one virtual address per instruction and updates label addresses"
}

func (aa *AddressAssignment) Apply(ctx *Context) bool {
	changed := false
	var address uint32

	for _, stmt := range ctx.Program.Statements {
		switch s := stmt.(type) {
		case *ast.Instruction:
			if s.Address != address {
				log.Debugf("%s: %s moved from %d to %d", s.Pos, s.Opcode, s.Address, address)
				s.Address = address
				changed = true
			}
			address++
		case *ast.LabelDecl:
			if ctx.Symbols.SetAddress(s.Name, address) {
				ctx.Record(s.Pos, "label %s now at address %d", s.Name, address)
				changed = true
			}
		}
	}

	return changed
}

// DeadCodeElimination removes instructions that follow an unconditional
// transfer and precede the next label.
type DeadCodeElimination struct{}

func (dce *DeadCodeElimination) Name() string {
	return "Dead Code Elimination"
}

func (dce *DeadCodeElimination) Description() string {
	return "Removes instructions that no control path can reach"
}

func (dce *DeadCodeElimination) Apply(ctx *Context) bool {
	statements := ctx.Program.Statements
	kept := make([]ast.Statement, 0, len(statements))
	reachable := true
	changed := false

	for _, stmt := range statements {
		switch s := stmt.(type) {
		case *ast.LabelDecl:
			// Any label may be a jump target
			reachable = true
			kept = append(kept, s)
		case *ast.Instruction:
			if !reachable {
				ctx.Record(s.Pos, "removed unreachable %s", strings.TrimSpace(s.String()))
				changed = true
				continue
			}
			kept = append(kept, s)
			if s.Opcode.IsTerminator() {
				reachable = false
			}
		}
	}

	if changed {
		ctx.Program.Statements = kept
	}
	return changed
}

// JumpThreading retargets a jump whose target label is immediately followed
// by an unconditional JMP. Each application moves every jump by one hop.
type JumpThreading struct{}

func (jt *JumpThreading) Name() string {
	return "Jump Threading"
}

func (jt *JumpThreading) Description() string {
	return "Retargets jumps that land on an unconditional jump"
}

func (jt *JumpThreading) Apply(ctx *Context) bool {
	hops := jt.collectHops(ctx.Program)
	changed := false

	for _, inst := range ctx.Program.Instructions() {
		if !inst.Opcode.IsJump() || len(inst.Operands) != 1 {
			continue
		}
		ref, ok := inst.Operands[0].(*ast.LabelRef)
		if !ok {
			continue
		}

		next, ok := hops[ref.Name]
		if !ok || next == ref.Name || jt.onCycle(hops, ref.Name) {
			continue
		}

		ctx.Record(inst.Pos, "%s %s threaded to %s", inst.Opcode, ref.Name, next)
		ref.Name = next
		changed = true
	}

	return changed
}

// collectHops maps each label directly followed by "JMP target" to that
// target, as the program stands before this application.
func (jt *JumpThreading) collectHops(program *ast.Program) map[string]string {
	hops := make(map[string]string)
	statements := program.Statements

	for i := 0; i+1 < len(statements); i++ {
		label, ok := statements[i].(*ast.LabelDecl)
		if !ok {
			continue
		}
		jump, ok := statements[i+1].(*ast.Instruction)
		if !ok || jump.Opcode != ast.JMP {
			continue
		}
		if target := jump.JumpTarget(); target != "" {
			hops[label.Name] = target
		}
	}

	return hops
}

// onCycle reports whether following hops from start's successor leads back
// to start. A chain that ends, or that runs into a cycle start is not part
// of, leaves start free to be threaded.
func (jt *JumpThreading) onCycle(hops map[string]string, start string) bool {
	visited := make(map[string]bool)

	for current := hops[start]; ; {
		if current == start {
			return true
		}
		if visited[current] {
			return false
		}
		visited[current] = true

		next, ok := hops[current]
		if !ok {
			return false
		}
		current = next
	}
}

// ConstantFolding is reserved for evaluating immediate arithmetic. It never
// changes the program, which keeps every surviving instruction intact.
type ConstantFolding struct{}

func (cf *ConstantFolding) Name() string {
	return "Constant Folding"
}

func (cf *ConstantFolding) Description() string {
	return "Reserved: evaluates constant expressions at compile time"
}

func (cf *ConstantFolding) Apply(ctx *Context) bool {
	return false
}
