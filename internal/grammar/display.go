package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

// DisplayGrammar renders g's productions, one per line, in global order of
// appearance, e.g. "0: E -> E + T".
func DisplayGrammar(g *Grammar) string {
	var sb strings.Builder
	for _, ref := range g.AllProductionRefs() {
		fmt.Fprintf(&sb, "%d: %s\n", ref, g.Production(ref))
	}
	return sb.String()
}

// DisplayAutomaton renders every state of auto as its numeric id followed
// by its item set, one item per line, and its outgoing moves.
func DisplayAutomaton(auto *SLRAutomaton) string {
	var sb strings.Builder
	for _, state := range auto.States {
		fmt.Fprintf(&sb, "state %d:\n", state.ID)
		for _, it := range state.Items.Iter() {
			fmt.Fprintf(&sb, "  %s\n", it.Display(auto.Grammar))
		}
		for _, sym := range auto.Grammar.Symbols().Iter() {
			if target, ok := state.Moves[sym]; ok {
				fmt.Fprintf(&sb, "  on %s -> state %d\n", sym, target)
			}
		}
	}
	return sb.String()
}

// DisplayTable renders t's ACTION and GOTO rows as a single table, one row
// per state, one column per terminal (prefixed "A:") and nonterminal
// (prefixed "G:"), in the manner of the ictiobus parser package this
// package's table construction is descended from.
func DisplayTable(t *SLRTable) string {
	g := t.Grammar
	// EOF is never a member of g's symbol universe (it only ever appears in
	// FOLLOW sets), but every Accept action and every reduce on end-of-input
	// lives in the "$" ACTION column, so it must be added here explicitly.
	terms := append(g.Terminals(), EOF)
	nonTerms := g.NonTerminals()

	var data [][]string
	headers := []string{"State", "|"}
	for _, term := range terms {
		headers = append(headers, "A:"+term.Name)
	}
	headers = append(headers, "|")
	for _, nt := range nonTerms {
		headers = append(headers, "G:"+nt.Name)
	}
	data = append(data, headers)

	for _, state := range t.Automaton.States {
		row := []string{fmt.Sprintf("%d", state.ID), "|"}
		for _, term := range terms {
			cell := ""
			if act, ok := t.Action[state.ID][term]; ok {
				cell = act.String()
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for _, nt := range nonTerms {
			cell := ""
			if target, ok := t.Goto[state.ID][nt]; ok {
				cell = fmt.Sprintf("%d", target)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
