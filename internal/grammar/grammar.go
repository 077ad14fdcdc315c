package grammar

import (
	"github.com/dekarrin/slrgen/internal/gerr"
)

// Grammar is an indexed context-free grammar: a start nonterminal, the
// universe of symbols appearing anywhere in it, and its productions grouped
// by left-hand side in order of appearance (spec.md §3). It is immutable
// once NewFromTree returns; Augmented returns a new Grammar rather than
// mutating the receiver.
type Grammar struct {
	start      string
	symbols    *SortedSet[Symbol]
	prodsByLHS map[string][]ProductionRef
	productions []Production

	// augmentedStartProd, when >= 0, is the ref of the S' -> S production
	// added by Augmented. It lets the SLR table builder recognize the one
	// reduction that should become Accept instead (SPEC_FULL.md §7.1).
	augmentedStartProd ProductionRef

	// first memoizes FIRST(nonterminal) across calls, per spec.md §4.3. It
	// is computed once, for every nonterminal at once, by first.go's
	// fixed-point worklist, and is safe because the whole pipeline runs
	// single-threaded and synchronously (spec.md §5).
	first         map[string]*SortedSet[Symbol]
	firstComputed bool

	// follow memoizes FOLLOW(nonterminal) the same way first memoizes
	// FIRST; see follow.go.
	follow         map[string]*SortedSet[Symbol]
	followComputed bool
}

func newEmptyGrammar() *Grammar {
	return &Grammar{
		symbols:            NewSortedSet[Symbol](),
		prodsByLHS:         map[string][]ProductionRef{},
		augmentedStartProd: -1,
		first:              map[string]*SortedSet[Symbol]{},
		follow:             map[string]*SortedSet[Symbol]{},
	}
}

// NewFromTree converts a parse tree in the shape of spec.md §6 into an
// indexed Grammar. The first Production node's left-hand side becomes the
// start symbol. Production nodes that share a left-hand side have their
// alternatives unioned, preserving first-seen order across the subtrees.
//
// NewFromTree returns a gerr.Error wrapping gerr.ErrMalformedGrammar if a
// node has an unexpected label or arity, or gerr.ErrUndefinedNonterminal if
// some production's right-hand side names a nonterminal with no
// productions of its own.
func NewFromTree(root TreeNode) (*Grammar, error) {
	if root == nil {
		return nil, gerr.Malformedf("grammar tree is nil")
	}
	if root.NodeLabel() != "Grammar" {
		return nil, gerr.Malformedf("root node must be labeled %q, got %q", "Grammar", root.NodeLabel())
	}

	g := newEmptyGrammar()

	first := true
	for _, prodNode := range root.NodeChildren() {
		if prodNode.NodeLabel() != "Production" {
			return nil, gerr.Malformedf("expected %q node, got %q", "Production", prodNode.NodeLabel())
		}
		children := prodNode.NodeChildren()
		if len(children) != 2 {
			return nil, gerr.Malformedf("%q node must have exactly 2 children, got %d", "Production", len(children))
		}

		lhsName, err := nonTermName(children[0])
		if err != nil {
			return nil, err
		}
		if first {
			g.start = lhsName
			first = false
		}
		g.symbols.Add(NewNonTerminal(lhsName))

		bodyNode := children[1]
		if bodyNode.NodeLabel() != "Body" {
			return nil, gerr.Malformedf("expected %q node, got %q", "Body", bodyNode.NodeLabel())
		}
		for _, ruleNode := range bodyNode.NodeChildren() {
			if ruleNode.NodeLabel() != "Rule" {
				return nil, gerr.Malformedf("expected %q node, got %q", "Rule", ruleNode.NodeLabel())
			}
			rhs, err := g.convertRule(ruleNode)
			if err != nil {
				return nil, err
			}
			g.appendProduction(Production{Lhs: lhsName, Rhs: rhs})
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks the invariants of spec.md §3: the start nonterminal has
// at least one production, and every nonterminal named anywhere in the
// symbol universe has at least one production of its own.
func (g *Grammar) Validate() error {
	if g.start == "" || len(g.prodsByLHS[g.start]) == 0 {
		return gerr.Malformedf("grammar has no productions for a start nonterminal")
	}
	for _, sym := range g.symbols.Iter() {
		if sym.IsNonTerminal() {
			if _, ok := g.prodsByLHS[sym.Name]; !ok {
				return gerr.Undefinedf("nonterminal %q is referenced but has no productions", sym.Name)
			}
		}
	}
	return nil
}

func (g *Grammar) convertRule(ruleNode TreeNode) ([]Symbol, error) {
	children := ruleNode.NodeChildren()
	if len(children) == 1 && children[0].NodeLabel() == "Empty" {
		return nil, nil
	}

	rhs := make([]Symbol, 0, len(children))
	for _, symNode := range children {
		sym, err := g.convertSymbol(symNode)
		if err != nil {
			return nil, err
		}
		rhs = append(rhs, sym)
		g.symbols.Add(sym)
	}
	return rhs, nil
}

func (g *Grammar) convertSymbol(node TreeNode) (Symbol, error) {
	switch node.NodeLabel() {
	case "Term":
		name, err := leafName(node)
		if err != nil {
			return Symbol{}, err
		}
		return NewTerminal(name), nil
	case "NonTerm":
		name, err := leafName(node)
		if err != nil {
			return Symbol{}, err
		}
		return NewNonTerminal(name), nil
	default:
		return Symbol{}, gerr.Malformedf("expected %q or %q node, got %q", "Term", "NonTerm", node.NodeLabel())
	}
}

func nonTermName(node TreeNode) (string, error) {
	if node.NodeLabel() != "NonTerm" {
		return "", gerr.Malformedf("expected %q node, got %q", "NonTerm", node.NodeLabel())
	}
	return leafName(node)
}

func leafName(node TreeNode) (string, error) {
	children := node.NodeChildren()
	if len(children) != 1 {
		return "", gerr.Malformedf("expected exactly one leaf child under %q node, got %d", node.NodeLabel(), len(children))
	}
	leaf := children[0]
	if len(leaf.NodeChildren()) != 0 {
		return "", gerr.Malformedf("leaf under %q node must not have children", node.NodeLabel())
	}
	return leaf.NodeLabel(), nil
}

// appendProduction adds p to the grammar, unioning it into any existing
// alternatives for p.Lhs. A production already present (same Lhs and Rhs)
// is not added twice, per spec.md §4.2's "union their alternatives."
func (g *Grammar) appendProduction(p Production) ProductionRef {
	for _, ref := range g.prodsByLHS[p.Lhs] {
		if g.productions[ref].Equal(p) {
			return ref
		}
	}
	ref := ProductionRef(len(g.productions))
	g.productions = append(g.productions, p)
	g.prodsByLHS[p.Lhs] = append(g.prodsByLHS[p.Lhs], ref)
	return ref
}

// Start returns the name of the grammar's start nonterminal.
func (g *Grammar) Start() string {
	return g.start
}

// StartSymbol returns the Symbol for the start nonterminal.
func (g *Grammar) StartSymbol() Symbol {
	return NewNonTerminal(g.start)
}

// Symbols returns the universe of symbols appearing anywhere in the
// grammar, including the start nonterminal.
func (g *Grammar) Symbols() *SortedSet[Symbol] {
	return g.symbols
}

// NonTerminals returns every nonterminal in the symbol universe, in Symbol
// order.
func (g *Grammar) NonTerminals() []Symbol {
	var out []Symbol
	for _, sym := range g.symbols.Iter() {
		if sym.IsNonTerminal() {
			out = append(out, sym)
		}
	}
	return out
}

// Terminals returns every terminal in the symbol universe, in Symbol order.
func (g *Grammar) Terminals() []Symbol {
	var out []Symbol
	for _, sym := range g.symbols.Iter() {
		if sym.IsTerminal() {
			out = append(out, sym)
		}
	}
	return out
}

// ProductionsOf returns the productions of the given nonterminal name, in
// order of appearance.
func (g *Grammar) ProductionsOf(lhs string) []Production {
	refs := g.prodsByLHS[lhs]
	out := make([]Production, len(refs))
	for i, ref := range refs {
		out[i] = g.productions[ref]
	}
	return out
}

// ProductionRefsOf returns the ProductionRefs of the given nonterminal
// name's productions, in order of appearance.
func (g *Grammar) ProductionRefsOf(lhs string) []ProductionRef {
	return g.prodsByLHS[lhs]
}

// Production returns the production identified by ref.
func (g *Grammar) Production(ref ProductionRef) Production {
	return g.productions[ref]
}

// AllProductionRefs returns every ProductionRef in the grammar, in global
// order of appearance (the order used to break ties when two productions
// would otherwise be indistinguishable, e.g. in Display output).
func (g *Grammar) AllProductionRefs() []ProductionRef {
	refs := make([]ProductionRef, len(g.productions))
	for i := range g.productions {
		refs[i] = ProductionRef(i)
	}
	return refs
}

// IsAugmented reports whether g was produced by Augmented.
func (g *Grammar) IsAugmented() bool {
	return g.augmentedStartProd >= 0
}

// AugmentedStartProduction returns the ref of the S' -> S production added
// by Augmented, and whether g has one at all.
func (g *Grammar) AugmentedStartProduction() (ProductionRef, bool) {
	if !g.IsAugmented() {
		return 0, false
	}
	return g.augmentedStartProd, true
}

// Augmented returns a new Grammar with a fresh start symbol S' and a single
// production S' -> S, where S is g's own start symbol (SPEC_FULL.md §7.1).
// The new nonterminal's name is g.Start() with one or more trailing quote
// marks appended, enough to avoid colliding with an existing symbol name.
func (g *Grammar) Augmented() *Grammar {
	newStart := g.start + "'"
	for g.symbols.Contains(NewNonTerminal(newStart)) {
		newStart += "'"
	}

	ag := newEmptyGrammar()
	ag.start = newStart
	ag.symbols.AddAll(g.symbols)
	ag.symbols.Add(NewNonTerminal(newStart))

	ref := ag.appendProduction(Production{Lhs: newStart, Rhs: []Symbol{g.StartSymbol()}})
	ag.augmentedStartProd = ref

	for _, p := range g.productions {
		ag.appendProduction(p)
	}

	return ag
}
