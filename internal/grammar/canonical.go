package grammar

import "github.com/dekarrin/slrgen/internal/gerr"

// SLRState is one state of the canonical LR(0) collection: its item set,
// a dense id, and the transitions out of it keyed by the symbol moved
// over (spec.md §3, §4.5).
type SLRState struct {
	ID    int
	Items *ItemSet

	// Moves maps a symbol to the id of the state Goto(Items, symbol)
	// produced. Symbol is a plain comparable struct, so it works directly
	// as a map key.
	Moves map[Symbol]int
}

// SLRAutomaton is the canonical collection of LR(0) item sets for an
// augmented grammar, plus the Goto transitions between them (spec.md
// §4.5). State 0 is always the closure of the augmented start item.
type SLRAutomaton struct {
	Grammar *Grammar
	States  []SLRState
	Start   int
}

// BuildCanonicalCollection runs the worklist construction of spec.md §4.5
// over g, which must already be augmented (see Grammar.Augmented): starting
// from the closure of the augmented start production's initial item,
// repeatedly compute Goto for every symbol with a move out of each newly
// discovered state, assigning state ids in first-discovery order.
//
// Determinism follows from iterating Moves in Symbol order and discovering
// states in worklist (FIFO) order, so two runs over the same grammar always
// produce identically numbered states.
func BuildCanonicalCollection(g *Grammar) (*SLRAutomaton, error) {
	startProd, ok := g.AugmentedStartProduction()
	if !ok {
		return nil, gerr.Malformedf("grammar passed to BuildCanonicalCollection must be augmented first")
	}

	startItems := g.Closure(Singleton(Item{Prod: startProd, Dot: 0}))

	auto := &SLRAutomaton{Grammar: g, Start: 0}
	idOf := map[string]int{startItems.Key(): 0}
	auto.States = append(auto.States, SLRState{ID: 0, Items: startItems, Moves: map[Symbol]int{}})

	worklist := []int{0}
	for len(worklist) > 0 {
		curID := worklist[0]
		worklist = worklist[1:]
		cur := auto.States[curID]

		for _, sym := range g.Moves(cur.Items) {
			target := g.Goto(cur.Items, sym)
			if target.Len() == 0 {
				continue
			}
			key := target.Key()
			targetID, exists := idOf[key]
			if !exists {
				targetID = len(auto.States)
				idOf[key] = targetID
				auto.States = append(auto.States, SLRState{ID: targetID, Items: target, Moves: map[Symbol]int{}})
				worklist = append(worklist, targetID)
			}
			auto.States[curID].Moves[sym] = targetID
		}
	}

	return auto, nil
}
