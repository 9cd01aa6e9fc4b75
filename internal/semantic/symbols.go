package semantic

import (
	"bessambly/internal/ast"
)

type Symbol struct {
	Name      string
	Address   uint32
	DefinedAt ast.Position
}

// SymbolTable holds label declarations in the order they appear. Entries are
// never removed and names are unique.
type SymbolTable struct {
	symbols map[string]*Symbol
	order   []*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
	}
}

// Define adds a label. If the name is already present the existing symbol is
// returned together with false and the table is left unchanged.
func (st *SymbolTable) Define(name string, address uint32, pos ast.Position) (*Symbol, bool) {
	if existing, exists := st.symbols[name]; exists {
		return existing, false
	}
	symbol := &Symbol{
		Name:      name,
		Address:   address,
		DefinedAt: pos,
	}
	st.symbols[name] = symbol
	st.order = append(st.order, symbol)
	return symbol, true
}

func (st *SymbolTable) Lookup(name string) *Symbol {
	if symbol, exists := st.symbols[name]; exists {
		return symbol
	}
	return nil
}

// SetAddress updates the address of a defined label and reports whether the
// stored value changed.
func (st *SymbolTable) SetAddress(name string, address uint32) bool {
	symbol := st.Lookup(name)
	if symbol == nil || symbol.Address == address {
		return false
	}
	symbol.Address = address
	return true
}

// Entries returns the symbols in insertion order.
func (st *SymbolTable) Entries() []*Symbol {
	out := make([]*Symbol, len(st.order))
	copy(out, st.order)
	return out
}

func (st *SymbolTable) Names() []string {
	names := make([]string, len(st.order))
	for i, symbol := range st.order {
		names[i] = symbol.Name
	}
	return names
}

func (st *SymbolTable) Len() int {
	return len(st.order)
}
