package grammar

import (
	"errors"
	"testing"

	"github.com/dekarrin/slrgen/internal/gerr"
	"github.com/stretchr/testify/assert"
)

func Test_BuildSLRTable_dragonExprGrammar_acceptsOnStartOnEOF(t *testing.T) {
	assert := assert.New(t)

	g := dragonExprGrammar(t)
	table, err := BuildSLRTable(g)
	if !assert.NoError(err) {
		return
	}

	foundAccept := false
	for _, row := range table.Action {
		for sym, act := range row {
			if act.Kind == ActionAccept && sym.Equal(EOF) {
				foundAccept = true
			}
		}
	}
	assert.True(foundAccept, "no accept action on EOF found anywhere in the table")
}

func Test_BuildSLRTable_everyCompletedItemHasAReduceOnEachFollowSymbol(t *testing.T) {
	assert := assert.New(t)

	g := dragonExprGrammar(t)
	table, err := BuildSLRTable(g)
	if !assert.NoError(err) {
		return
	}

	for _, state := range table.Automaton.States {
		for _, it := range state.Items.Iter() {
			if !it.AtEnd(table.Grammar) {
				continue
			}
			startProd, _ := table.Grammar.AugmentedStartProduction()
			if it.Prod == startProd {
				continue
			}
			lhs := table.Grammar.Production(it.Prod).Lhs
			for _, a := range table.Grammar.Follow(lhs).Iter() {
				act, ok := table.Action[state.ID][a]
				assert.True(ok, "state %d missing action on %s for completed item of %s", state.ID, a, lhs)
				assert.Equal(ActionReduce, act.Kind)
			}
		}
	}
}

func Test_BuildSLRTable_gotoDefinedForEveryNonterminalMove(t *testing.T) {
	assert := assert.New(t)

	g := dragonExprGrammar(t)
	table, err := BuildSLRTable(g)
	if !assert.NoError(err) {
		return
	}

	for _, state := range table.Automaton.States {
		for sym, target := range state.Moves {
			if !sym.IsNonTerminal() {
				continue
			}
			got, ok := table.Goto[state.ID][sym]
			assert.True(ok)
			assert.Equal(target, got)
		}
	}
}

func Test_BuildSLRTable_detectsShiftReduceConflict(t *testing.T) {
	assert := assert.New(t)

	// The classic dangling-else style ambiguity expressed arithmetically:
	// E -> E + E | id
	// This is not SLR(1): state closure({E -> E + E·, E -> E· + E}) has both
	// a shift on '+' and a reduce on '+' (since FOLLOW(E) contains '+').
	g, err := NewFromTree(grammarTree(
		production("E",
			rule(nonTerm("E"), term("+"), nonTerm("E")),
			rule(term("id")),
		),
	))
	if !assert.NoError(err) {
		return
	}

	_, err = BuildSLRTable(g)
	assert.Error(err)
	assert.True(errors.Is(err, gerr.ErrTableConflict))
}

func Test_BuildSLRTable_singleProductionGrammar(t *testing.T) {
	assert := assert.New(t)

	g, err := NewFromTree(grammarTree(production("S", rule(term("a")))))
	if !assert.NoError(err) {
		return
	}

	table, err := BuildSLRTable(g)
	if !assert.NoError(err) {
		return
	}

	assert.Equal(0, table.Automaton.Start)

	shiftState := table.Automaton.States[0].Moves[NewTerminal("a")]
	act, ok := table.Action[shiftState][EOF]
	if assert.True(ok) {
		assert.Equal(ActionReduce, act.Kind)
	}
}

func Test_BuildSLRTable_epsilonGrammar(t *testing.T) {
	assert := assert.New(t)

	// S -> A; A -> ε
	g, err := NewFromTree(grammarTree(
		production("S", rule(nonTerm("A"))),
		production("A", epsilonRule()),
	))
	if !assert.NoError(err) {
		return
	}

	table, err := BuildSLRTable(g)
	if !assert.NoError(err) {
		return
	}

	startRow := table.Action[table.Automaton.Start]
	act, ok := startRow[EOF]
	if assert.True(ok) {
		assert.Equal(ActionReduce, act.Kind)
	}
}
