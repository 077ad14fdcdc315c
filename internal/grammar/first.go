package grammar

// First returns FIRST(sym): the set of terminals that can begin some string
// derived from sym, plus Epsilon itself if sym is nullable.
//
// For a terminal, FIRST is the singleton {sym}. For a nonterminal, FIRST is
// computed for every nonterminal in the grammar at once on first use, via a
// worklist that runs to a fixed point (spec.md §4.3): repeatedly sweeping
// every production and adding to FIRST(Lhs) until no set grows. A recursive,
// "seed an empty set then recurse" formulation would compute the same
// answer for acyclic grammars but undercounts on mutual left-recursion
// (A -> B, B -> A c); the worklist does not have that failure mode.
func (g *Grammar) First(sym Symbol) *SortedSet[Symbol] {
	if sym.IsTerminal() {
		return Singleton(sym)
	}
	if sym.IsEpsilon() {
		return Singleton(Epsilon)
	}
	g.computeFirstSets()
	if s, ok := g.first[sym.Name]; ok {
		return s
	}
	return NewSortedSet[Symbol]()
}

// FirstOfSequence returns FIRST(seq): the set of terminals that can begin
// some string derived from the symbol sequence seq, plus Epsilon if every
// symbol in seq is nullable (including the empty sequence itself, whose
// FIRST is {ε}).
func (g *Grammar) FirstOfSequence(seq []Symbol) *SortedSet[Symbol] {
	result := NewSortedSet[Symbol]()
	nullableSoFar := true
	for _, sym := range seq {
		symFirst := g.First(sym)
		for _, f := range symFirst.Iter() {
			if !f.IsEpsilon() {
				result.Add(f)
			}
		}
		if !symFirst.Contains(Epsilon) {
			nullableSoFar = false
			break
		}
	}
	if nullableSoFar {
		result.Add(Epsilon)
	}
	return result
}

// computeFirstSets fills g.first with FIRST(N) for every nonterminal N,
// running a single worklist to a fixed point over all productions at once.
// It is idempotent: once firstComputed is true, later calls are a no-op, so
// repeated First/FirstOfSequence calls share one computation.
func (g *Grammar) computeFirstSets() {
	if g.firstComputed {
		return
	}

	sets := make(map[string]*SortedSet[Symbol], len(g.prodsByLHS))
	for _, nt := range g.NonTerminals() {
		sets[nt.Name] = NewSortedSet[Symbol]()
	}

	firstOfRhsSymbol := func(sym Symbol) *SortedSet[Symbol] {
		if sym.IsTerminal() {
			return Singleton(sym)
		}
		return sets[sym.Name]
	}

	for changed := true; changed; {
		changed = false
		for _, ref := range g.AllProductionRefs() {
			p := g.productions[ref]
			ntSet := sets[p.Lhs]
			before := ntSet.Len()

			if p.IsEpsilon() {
				ntSet.Add(Epsilon)
			} else {
				rhsNullable := true
				for _, sym := range p.Rhs {
					symFirst := firstOfRhsSymbol(sym)
					for _, f := range symFirst.Iter() {
						if !f.IsEpsilon() {
							ntSet.Add(f)
						}
					}
					if !symFirst.Contains(Epsilon) {
						rhsNullable = false
						break
					}
				}
				if rhsNullable {
					ntSet.Add(Epsilon)
				}
			}

			if ntSet.Len() != before {
				changed = true
			}
		}
	}

	g.first = sets
	g.firstComputed = true
}
