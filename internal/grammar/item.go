package grammar

import "fmt"

// Item is an LR(0) item: a production together with a dot position marking
// how much of its right-hand side has been recognized so far (spec.md
// §3). Dot ranges from 0 (nothing recognized) to len(Rhs) (the production
// is complete, i.e. a reduce item).
type Item struct {
	Prod ProductionRef
	Dot  int
}

// AtEnd reports whether the dot has reached the end of g's production,
// making this a reduce (or, for the augmented start production, accept)
// item.
func (it Item) AtEnd(g *Grammar) bool {
	return it.Dot >= len(g.Production(it.Prod).Rhs)
}

// NextSymbol returns the symbol immediately after the dot and true, or the
// zero Symbol and false if the dot is already at the end.
func (it Item) NextSymbol(g *Grammar) (Symbol, bool) {
	rhs := g.Production(it.Prod).Rhs
	if it.Dot >= len(rhs) {
		return Symbol{}, false
	}
	return rhs[it.Dot], true
}

// Advanced returns the item with the dot moved one place to the right. The
// caller is responsible for only calling this when NextSymbol matches the
// symbol being moved over.
func (it Item) Advanced() Item {
	return Item{Prod: it.Prod, Dot: it.Dot + 1}
}

// Less orders items lexicographically by (production, dot), matching
// spec.md §3's ordering so ItemSet (a SortedSet[Item]) is deterministic.
func (it Item) Less(o Item) bool {
	if it.Prod != o.Prod {
		return it.Prod < o.Prod
	}
	return it.Dot < o.Dot
}

// Equal reports whether it and o are the same item.
func (it Item) Equal(o Item) bool {
	return it.Prod == o.Prod && it.Dot == o.Dot
}

// String gives Item a context-free textual form ("production-index.dot")
// used only so SortedSet can use it to build a stable ItemSet key; for
// human-readable output see Display.
func (it Item) String() string {
	return fmt.Sprintf("%d.%d", it.Prod, it.Dot)
}

// Display renders an item using g to resolve its production, with the dot
// written as a middle-dot: "E -> E + ·T".
func (it Item) Display(g *Grammar) string {
	p := g.Production(it.Prod)
	s := p.Lhs + " ->"
	if len(p.Rhs) == 0 {
		return s + " ·"
	}
	for i, sym := range p.Rhs {
		if i == it.Dot {
			s += " ·"
		} else {
			s += " "
		}
		s += sym.String()
	}
	if it.Dot == len(p.Rhs) {
		s += " ·"
	}
	return s
}

// ItemSet is a canonically ordered set of items; it is the unit of
// identity the canonical-collection builder dedupes on (spec.md §4.5),
// via SortedSet's Key/String.
type ItemSet = SortedSet[Item]

// NewItemSet returns an empty ItemSet.
func NewItemSet() *ItemSet {
	return NewSortedSet[Item]()
}
