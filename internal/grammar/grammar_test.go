package grammar

import (
	"errors"
	"testing"

	"github.com/dekarrin/slrgen/internal/gerr"
	"github.com/stretchr/testify/assert"
)

func Test_NewFromTree_simpleGrammar(t *testing.T) {
	assert := assert.New(t)

	g, err := NewFromTree(grammarTree(
		production("S", rule(term("a"))),
	))
	if !assert.NoError(err) {
		return
	}
	assert.Equal("S", g.Start())
	assert.Equal([]Production{{Lhs: "S", Rhs: []Symbol{NewTerminal("a")}}}, g.ProductionsOf("S"))
}

func Test_NewFromTree_unionsAlternativesAcrossSubtreesWithSameLhs(t *testing.T) {
	assert := assert.New(t)

	g, err := NewFromTree(grammarTree(
		production("S", rule(nonTerm("A"))),
		production("A", rule(term("a"))),
		production("A", rule(term("b"))),
	))
	if !assert.NoError(err) {
		return
	}

	prods := g.ProductionsOf("A")
	if assert.Len(prods, 2) {
		assert.Equal([]Symbol{NewTerminal("a")}, prods[0].Rhs)
		assert.Equal([]Symbol{NewTerminal("b")}, prods[1].Rhs)
	}
}

func Test_NewFromTree_duplicateAlternativeIsNotAddedTwice(t *testing.T) {
	assert := assert.New(t)

	g, err := NewFromTree(grammarTree(
		production("S", rule(term("a"))),
		production("S", rule(term("a"))),
	))
	if !assert.NoError(err) {
		return
	}
	assert.Len(g.ProductionsOf("S"), 1)
}

func Test_NewFromTree_epsilonProduction(t *testing.T) {
	assert := assert.New(t)

	g, err := NewFromTree(grammarTree(
		production("S", rule(nonTerm("A"))),
		production("A", epsilonRule(), rule(term("a"))),
	))
	if !assert.NoError(err) {
		return
	}

	prods := g.ProductionsOf("A")
	if assert.Len(prods, 2) {
		assert.True(prods[0].IsEpsilon())
		assert.Empty(prods[0].Rhs)
	}
}

func Test_NewFromTree_undefinedNonterminal(t *testing.T) {
	assert := assert.New(t)

	_, err := NewFromTree(grammarTree(
		production("S", rule(nonTerm("A"))),
	))
	assert.Error(err)
	assert.True(errors.Is(err, gerr.ErrUndefinedNonterminal))
}

func Test_NewFromTree_malformedRootLabel(t *testing.T) {
	assert := assert.New(t)

	_, err := NewFromTree(node("NotAGrammar"))
	assert.Error(err)
	assert.True(errors.Is(err, gerr.ErrMalformedGrammar))
}

func Test_NewFromTree_malformedProductionArity(t *testing.T) {
	assert := assert.New(t)

	_, err := NewFromTree(grammarTree(
		node("Production", nonTerm("S")),
	))
	assert.Error(err)
	assert.True(errors.Is(err, gerr.ErrMalformedGrammar))
}

func Test_NewFromTree_malformedSymbolLabel(t *testing.T) {
	assert := assert.New(t)

	_, err := NewFromTree(grammarTree(
		production("S", rule(node("Bogus", leaf("x")))),
	))
	assert.Error(err)
	assert.True(errors.Is(err, gerr.ErrMalformedGrammar))
}

func Test_NewFromTree_noProductions(t *testing.T) {
	assert := assert.New(t)

	_, err := NewFromTree(grammarTree())
	assert.Error(err)
	assert.True(errors.Is(err, gerr.ErrMalformedGrammar))
}

func Test_Grammar_Augmented(t *testing.T) {
	assert := assert.New(t)

	g := dragonExprGrammar(t)
	ag := g.Augmented()

	assert.Equal("E'", ag.Start())
	ref, ok := ag.AugmentedStartProduction()
	if assert.True(ok) {
		p := ag.Production(ref)
		assert.Equal("E'", p.Lhs)
		assert.Equal([]Symbol{NewNonTerminal("E")}, p.Rhs)
	}
	assert.False(g.IsAugmented())
	assert.True(ag.IsAugmented())

	// Augmenting must not mutate the original grammar.
	assert.Equal("E", g.Start())
}

func Test_Grammar_Augmented_avoidsNameCollision(t *testing.T) {
	assert := assert.New(t)

	g, err := NewFromTree(grammarTree(
		production("S", rule(nonTerm("S'"))),
		production("S'", rule(term("a"))),
	))
	if !assert.NoError(err) {
		return
	}

	ag := g.Augmented()
	assert.Equal("S''", ag.Start())
}
