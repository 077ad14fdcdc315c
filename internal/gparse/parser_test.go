package gparse

import (
	"testing"

	"github.com/dekarrin/slrgen/internal/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_ParseGrammar_classicExpressionGrammar(t *testing.T) {
	assert := assert.New(t)

	tree, err := ParseGrammar(`
		Expr -> Expr PLUS Term | Term ;
		Term -> Term TIMES Factor | Factor ;
		Factor -> LPAREN Expr RPAREN | ID ;
	`)
	if !assert.NoError(err) {
		return
	}

	g, err := grammar.NewFromTree(tree)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("Expr", g.Start())
	assert.Len(g.ProductionsOf("Expr"), 2)
	assert.Len(g.ProductionsOf("Term"), 2)
	assert.Len(g.ProductionsOf("Factor"), 2)

	assert.True(g.Symbols().Contains(grammar.NewTerminal("PLUS")))
	assert.True(g.Symbols().Contains(grammar.NewTerminal("ID")))
	assert.True(g.Symbols().Contains(grammar.NewNonTerminal("Expr")))
}

func Test_ParseGrammar_singleLetterNontermsDoNotBecomeTerminals(t *testing.T) {
	assert := assert.New(t)

	// S1 of the test-scenario catalog: single uppercase letters used as a
	// production's left-hand side are nonterminals even though they would
	// otherwise look like an ALLCAPS terminal.
	tree, err := ParseGrammar(`S -> A ; A -> X ;`)
	if !assert.NoError(err) {
		return
	}

	g, err := grammar.NewFromTree(tree)
	if !assert.NoError(err) {
		return
	}
	assert.True(g.Symbols().Contains(grammar.NewNonTerminal("S")))
	assert.True(g.Symbols().Contains(grammar.NewNonTerminal("A")))
	assert.True(g.Symbols().Contains(grammar.NewTerminal("X")))
}

func Test_ParseGrammar_epsilonAlternative(t *testing.T) {
	assert := assert.New(t)

	tree, err := ParseGrammar(`
		S -> A B ;
		A -> X | e ;
		B -> Y ;
	`)
	if !assert.NoError(err) {
		return
	}

	g, err := grammar.NewFromTree(tree)
	if !assert.NoError(err) {
		return
	}

	prods := g.ProductionsOf("A")
	if assert.Len(prods, 2) {
		assert.Equal([]grammar.Symbol{grammar.NewTerminal("X")}, prods[0].Rhs)
		assert.True(prods[1].IsEpsilon())
	}
}

func Test_ParseGrammar_commentsAreIgnored(t *testing.T) {
	assert := assert.New(t)

	tree, err := ParseGrammar(`
		# the start symbol
		S -> A ; # only one alternative
		A -> X ;
	`)
	assert.NoError(err)
	_, err = grammar.NewFromTree(tree)
	assert.NoError(err)
}

func Test_ParseGrammar_missingSemicolonIsMalformed(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseGrammar(`S -> A`)
	assert.Error(err)
}

func Test_ParseGrammar_missingArrowIsMalformed(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseGrammar(`S A ;`)
	assert.Error(err)
}

func Test_ParseGrammar_emptySourceIsMalformed(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseGrammar(``)
	assert.Error(err)
}
