package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_Closure_idempotent(t *testing.T) {
	assert := assert.New(t)

	g := dragonExprGrammar(t).Augmented()
	startProd, _ := g.AugmentedStartProduction()

	once := g.Closure(Singleton(Item{Prod: startProd, Dot: 0}))
	twice := g.Closure(once)

	assert.True(once.Equal(twice))
}

func Test_Grammar_Goto_resultIsAlreadyClosed(t *testing.T) {
	assert := assert.New(t)

	g := dragonExprGrammar(t).Augmented()
	startProd, _ := g.AugmentedStartProduction()
	i0 := g.Closure(Singleton(Item{Prod: startProd, Dot: 0}))

	// Goto closes the set it builds, so taking the closure of Goto(I0, id)
	// again must leave it unchanged.
	direct := g.Goto(i0, NewTerminal("id"))
	again := g.Closure(direct)
	assert.True(direct.Equal(again), "Goto's result must already be closed")
}

func Test_Grammar_Goto_noMoveOnSymbolReturnsEmpty(t *testing.T) {
	assert := assert.New(t)

	g := dragonExprGrammar(t).Augmented()
	startProd, _ := g.AugmentedStartProduction()
	i0 := g.Closure(Singleton(Item{Prod: startProd, Dot: 0}))

	got := g.Goto(i0, NewTerminal("*"))
	assert.Equal(0, got.Len())
}

func Test_Grammar_Moves_matchesItemsWithSymbolAfterDot(t *testing.T) {
	assert := assert.New(t)

	g := dragonExprGrammar(t).Augmented()
	startProd, _ := g.AugmentedStartProduction()
	i0 := g.Closure(Singleton(Item{Prod: startProd, Dot: 0}))

	moves := g.Moves(i0)
	assert.Contains(moves, NewNonTerminal("E"))
	assert.Contains(moves, NewNonTerminal("T"))
	assert.Contains(moves, NewNonTerminal("F"))
	assert.Contains(moves, NewTerminal("("))
	assert.Contains(moves, NewTerminal("id"))
	assert.NotContains(moves, NewTerminal("*"))
}
