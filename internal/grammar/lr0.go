package grammar

// Closure returns the closure of item set i: i itself, plus, for every item
// A -> α·Bβ in the set with B a nonterminal, an item B -> ·γ for every
// production of B, repeated until no new items appear (spec.md §4.5).
// Closure is idempotent: Closure(Closure(i)) equals Closure(i), since the
// worklist below only ever stops once nothing new was added.
func (g *Grammar) Closure(i *ItemSet) *ItemSet {
	result := NewItemSet()
	result.AddAll(i)

	worklist := append([]Item(nil), i.Iter()...)
	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]

		next, ok := it.NextSymbol(g)
		if !ok || !next.IsNonTerminal() {
			continue
		}
		for _, ref := range g.ProductionRefsOf(next.Name) {
			newItem := Item{Prod: ref, Dot: 0}
			if !result.Contains(newItem) {
				result.Add(newItem)
				worklist = append(worklist, newItem)
			}
		}
	}
	return result
}

// Goto returns the closure of the set of items obtained by advancing the
// dot past X in every item of i that has X immediately after its dot
// (spec.md §4.5). If no item in i has X next, Goto returns an empty set.
func (g *Grammar) Goto(i *ItemSet, x Symbol) *ItemSet {
	moved := NewItemSet()
	for _, it := range i.Iter() {
		next, ok := it.NextSymbol(g)
		if ok && next.Equal(x) {
			moved.Add(it.Advanced())
		}
	}
	if moved.Len() == 0 {
		return moved
	}
	return g.Closure(moved)
}

// Moves returns, in Symbol order, every symbol that appears immediately
// after the dot in some item of i: the set of symbols Goto(i, X) is
// non-empty for.
func (g *Grammar) Moves(i *ItemSet) []Symbol {
	seen := NewSortedSet[Symbol]()
	for _, it := range i.Iter() {
		if next, ok := it.NextSymbol(g); ok {
			seen.Add(next)
		}
	}
	return seen.Iter()
}
