package grammar

// Follow returns FOLLOW(nt): the set of terminals that can appear
// immediately after nt in some derivation, plus the end marker EOF if nt's
// start nonterminal can be the last thing derived (spec.md §4.4). The
// start nonterminal of g always has EOF in its FOLLOW set; when g is the
// result of Augmented, that is g's fresh S' and the ordinary propagation
// rule below carries EOF into FOLLOW of the original start for free.
//
// Like First, Follow is computed for every nonterminal at once by a
// worklist run to a fixed point, not by recursion, so mutually recursive
// nonterminals (A's FOLLOW depending on B's depending on A's) still
// converge correctly.
func (g *Grammar) Follow(nt string) *SortedSet[Symbol] {
	g.computeFollowSets()
	if s, ok := g.follow[nt]; ok {
		return s
	}
	return NewSortedSet[Symbol]()
}

func (g *Grammar) computeFollowSets() {
	if g.followComputed {
		return
	}

	sets := make(map[string]*SortedSet[Symbol], len(g.prodsByLHS))
	for _, nt := range g.NonTerminals() {
		sets[nt.Name] = NewSortedSet[Symbol]()
	}
	if _, ok := sets[g.start]; ok {
		sets[g.start].Add(EOF)
	}

	for changed := true; changed; {
		changed = false
		for _, ref := range g.AllProductionRefs() {
			p := g.productions[ref]
			for i, sym := range p.Rhs {
				if !sym.IsNonTerminal() {
					continue
				}
				ntSet := sets[sym.Name]
				before := ntSet.Len()

				beta := p.Rhs[i+1:]
				firstBeta := g.FirstOfSequence(beta)
				for _, f := range firstBeta.Iter() {
					if !f.IsEpsilon() {
						ntSet.Add(f)
					}
				}
				if firstBeta.Contains(Epsilon) {
					ntSet.AddAll(sets[p.Lhs])
				}

				if ntSet.Len() != before {
					changed = true
				}
			}
		}
	}

	g.follow = sets
	g.followComputed = true
}
