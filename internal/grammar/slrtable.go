package grammar

import (
	"fmt"

	"github.com/dekarrin/slrgen/internal/gerr"
)

// ActionKind distinguishes the four cases an SLR parser action can take.
type ActionKind int

const (
	// ActionShift advances the parser by one input symbol into Action.Target.
	ActionShift ActionKind = iota
	// ActionReduce replaces the top of the stack per the production
	// Action.Target names.
	ActionReduce
	// ActionAccept signals a successful parse: the augmented start
	// production reduced with EOF as lookahead.
	ActionAccept
)

func (k ActionKind) String() string {
	switch k {
	case ActionShift:
		return "shift"
	case ActionReduce:
		return "reduce"
	case ActionAccept:
		return "accept"
	default:
		return "unknown"
	}
}

// Action is a single cell of the ACTION table: what the parser does on a
// given state and lookahead terminal.
type Action struct {
	Kind ActionKind

	// Target is the destination state id for ActionShift, or the
	// ProductionRef to reduce by for ActionReduce. It is unused (-1) for
	// ActionAccept.
	Target int
}

func (a Action) String() string {
	switch a.Kind {
	case ActionShift:
		return fmt.Sprintf("s%d", a.Target)
	case ActionReduce:
		return fmt.Sprintf("r%d", a.Target)
	case ActionAccept:
		return "acc"
	default:
		return "?"
	}
}

// SLRTable is the full ACTION/GOTO table derived from an automaton's
// canonical collection (spec.md §3, §4.6).
type SLRTable struct {
	Grammar   *Grammar
	Automaton *SLRAutomaton

	// Action maps state id -> terminal -> action.
	Action map[int]map[Symbol]Action
	// Goto maps state id -> nonterminal -> state id.
	Goto map[int]map[Symbol]int
}

// BuildSLRTable augments g, builds its canonical LR(0) collection, and
// derives the SLR ACTION/GOTO table from it (spec.md §4.6): a shift action
// for every terminal move, a goto for every nonterminal move, a reduce
// action for every completed item on every terminal in FOLLOW(its
// left-hand side), and an accept action in place of the reduce the
// augmented start production would otherwise produce.
//
// The conflict policy is strict-fail (SPEC_FULL.md §7.2): the first state,
// in ascending id order, that has more than one candidate action for the
// same terminal (checked in Symbol order) aborts the whole build with a
// gerr.Error wrapping gerr.ErrTableConflict. There is no ambiguity-breaking
// precedence; a grammar that is not SLR(1) is rejected outright.
func BuildSLRTable(g *Grammar) (*SLRTable, error) {
	ag := g.Augmented()
	auto, err := BuildCanonicalCollection(ag)
	if err != nil {
		return nil, err
	}
	startProd, _ := ag.AugmentedStartProduction()

	table := &SLRTable{
		Grammar:   ag,
		Automaton: auto,
		Action:    map[int]map[Symbol]Action{},
		Goto:      map[int]map[Symbol]int{},
	}

	for _, state := range auto.States {
		candidates := map[Symbol][]Action{}
		gotoRow := map[Symbol]int{}

		for sym, target := range state.Moves {
			if sym.IsTerminal() {
				candidates[sym] = append(candidates[sym], Action{Kind: ActionShift, Target: target})
			} else if sym.IsNonTerminal() {
				gotoRow[sym] = target
			}
		}

		for _, it := range state.Items.Iter() {
			if !it.AtEnd(ag) {
				continue
			}
			if it.Prod == startProd {
				candidates[EOF] = append(candidates[EOF], Action{Kind: ActionAccept, Target: -1})
				continue
			}
			lhs := ag.Production(it.Prod).Lhs
			for _, a := range ag.Follow(lhs).Iter() {
				candidates[a] = append(candidates[a], Action{Kind: ActionReduce, Target: int(it.Prod)})
			}
		}

		symOrder := NewSortedSet[Symbol]()
		for sym := range candidates {
			symOrder.Add(sym)
		}

		actionRow := map[Symbol]Action{}
		for _, sym := range symOrder.Iter() {
			acts := candidates[sym]
			if len(acts) > 1 {
				return nil, gerr.Conflictf(
					"state %d has a %s/%s conflict on symbol %q",
					state.ID, acts[0].Kind, acts[1].Kind, sym.String(),
				)
			}
			actionRow[sym] = acts[0]
		}

		table.Action[state.ID] = actionRow
		table.Goto[state.ID] = gotoRow
	}

	return table, nil
}
