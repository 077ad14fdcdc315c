package grammar

import "fmt"

// SymbolKind distinguishes the three cases a Symbol can take.
type SymbolKind int

const (
	// NonTerminalSymbol marks a Symbol as standing in for a nonterminal of
	// the grammar.
	NonTerminalSymbol SymbolKind = iota

	// TerminalSymbol marks a Symbol as standing in for a terminal (token
	// class) of the grammar.
	TerminalSymbol

	// EpsilonSymbol is the single Symbol that represents the empty string.
	// It only ever appears inside FIRST/FOLLOW sets; a production's Rhs uses
	// the empty-slice representation instead of carrying an EpsilonSymbol
	// entry (open question 3 of SPEC_FULL.md).
	EpsilonSymbol
)

func (k SymbolKind) String() string {
	switch k {
	case NonTerminalSymbol:
		return "non-terminal"
	case TerminalSymbol:
		return "terminal"
	case EpsilonSymbol:
		return "epsilon"
	default:
		return "unknown"
	}
}

// Symbol is a grammar atom: a terminal, a nonterminal, or epsilon. Identity
// is structural (Kind plus Name); the zero value is not a valid Symbol.
type Symbol struct {
	Kind SymbolKind
	Name string
}

// Epsilon is the sole Symbol of kind EpsilonSymbol.
var Epsilon = Symbol{Kind: EpsilonSymbol}

// EOF is the end-of-input marker terminal that FOLLOW(start) always
// contains once the grammar is augmented (SPEC_FULL.md §7.1).
var EOF = Symbol{Kind: TerminalSymbol, Name: "$"}

// NewTerminal returns the Symbol naming the terminal with the given name.
func NewTerminal(name string) Symbol {
	return Symbol{Kind: TerminalSymbol, Name: name}
}

// NewNonTerminal returns the Symbol naming the nonterminal with the given
// name.
func NewNonTerminal(name string) Symbol {
	return Symbol{Kind: NonTerminalSymbol, Name: name}
}

// IsEpsilon reports whether s is the Epsilon symbol.
func (s Symbol) IsEpsilon() bool {
	return s.Kind == EpsilonSymbol
}

// IsTerminal reports whether s is a terminal symbol.
func (s Symbol) IsTerminal() bool {
	return s.Kind == TerminalSymbol
}

// IsNonTerminal reports whether s is a nonterminal symbol.
func (s Symbol) IsNonTerminal() bool {
	return s.Kind == NonTerminalSymbol
}

func (s Symbol) String() string {
	if s.Kind == EpsilonSymbol {
		return "ε"
	}
	return s.Name
}

// Less gives the total order on symbols: Nonterminal < Terminal < Epsilon
// by Kind (the declaration order of SymbolKind), then lexicographic on Name. SortedSet and every
// deterministic iteration in this package relies on this order.
func (s Symbol) Less(o Symbol) bool {
	if s.Kind != o.Kind {
		return s.Kind < o.Kind
	}
	return s.Name < o.Name
}

// Equal reports whether s and o denote the same symbol.
func (s Symbol) Equal(o Symbol) bool {
	return s.Kind == o.Kind && s.Name == o.Name
}

// Compare returns -1, 0, or 1 according to the total order defined by Less.
func (s Symbol) Compare(o Symbol) int {
	switch {
	case s.Equal(o):
		return 0
	case s.Less(o):
		return -1
	default:
		return 1
	}
}

// GoString supports %#v formatting for debugging/test failure output.
func (s Symbol) GoString() string {
	return fmt.Sprintf("Symbol{%s, %q}", s.Kind, s.Name)
}
