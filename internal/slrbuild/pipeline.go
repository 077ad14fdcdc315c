// Package slrbuild wires gparse and grammar together into the single
// operation both the CLI and the HTTP server need: turn grammar source text
// into a built SLR table, or a gerr.Error naming what went wrong.
package slrbuild

import (
	"github.com/dekarrin/slrgen/internal/gparse"
	"github.com/dekarrin/slrgen/internal/grammar"
	"github.com/dekarrin/slrgen/internal/store"
)

// Build parses src as grammar source and builds its canonical SLR(1) table.
func Build(src string) (*grammar.SLRTable, error) {
	tree, err := gparse.ParseGrammar(src)
	if err != nil {
		return nil, err
	}

	g, err := grammar.NewFromTree(tree)
	if err != nil {
		return nil, err
	}

	return grammar.BuildSLRTable(g)
}

// Summarize reduces a built table to the small, storable snapshot kept
// alongside a saved grammar's source. t.Grammar is the augmented grammar
// BuildSLRTable actually ran over, so ProductionCount includes the synthetic
// start production added by augmentation.
func Summarize(t *grammar.SLRTable) *store.BuildSummary {
	return &store.BuildSummary{
		StateCount:      len(t.Automaton.States),
		ProductionCount: len(t.Grammar.AllProductionRefs()),
	}
}
