package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_Follow_dragonExprGrammar(t *testing.T) {
	assert := assert.New(t)

	g := dragonExprGrammar(t).Augmented()

	followE := g.Follow("E")
	for _, sym := range []Symbol{NewTerminal("+"), NewTerminal(")"), EOF} {
		assert.Truef(followE.Contains(sym), "FOLLOW(E) missing %s", sym)
	}
	assert.False(followE.Contains(NewTerminal("*")))

	followT := g.Follow("T")
	for _, sym := range []Symbol{NewTerminal("+"), NewTerminal("*"), NewTerminal(")"), EOF} {
		assert.Truef(followT.Contains(sym), "FOLLOW(T) missing %s", sym)
	}

	followF := g.Follow("F")
	for _, sym := range []Symbol{NewTerminal("+"), NewTerminal("*"), NewTerminal(")"), EOF} {
		assert.Truef(followF.Contains(sym), "FOLLOW(F) missing %s", sym)
	}
}

func Test_Grammar_Follow_startAlwaysHasEOF(t *testing.T) {
	assert := assert.New(t)

	g, err := NewFromTree(grammarTree(production("S", rule(term("a")))))
	if !assert.NoError(err) {
		return
	}
	ag := g.Augmented()
	assert.True(ag.Follow(ag.Start()).Contains(EOF))
}

func Test_Grammar_Follow_neverContainsEpsilon(t *testing.T) {
	assert := assert.New(t)

	// A nullable nonterminal in a FOLLOW-propagating position must not leak
	// Epsilon itself into anyone's FOLLOW set (spec.md's FOLLOW well-
	// formedness property).
	g, err := NewFromTree(grammarTree(
		production("S", rule(nonTerm("A"), nonTerm("B"))),
		production("A", rule(term("a")), epsilonRule()),
		production("B", rule(term("b")), epsilonRule()),
	))
	if !assert.NoError(err) {
		return
	}
	ag := g.Augmented()

	for _, nt := range []string{"A", "B"} {
		assert.False(ag.Follow(nt).Contains(Epsilon), "FOLLOW(%s) contains epsilon", nt)
	}
}

func Test_Grammar_Follow_propagatesThroughNullableSuffix(t *testing.T) {
	assert := assert.New(t)

	// S -> A B; B -> ε
	// Since B is nullable, FOLLOW(A) must include FOLLOW(S), which includes
	// EOF once augmented.
	g, err := NewFromTree(grammarTree(
		production("S", rule(nonTerm("A"), nonTerm("B"))),
		production("A", rule(term("a"))),
		production("B", epsilonRule()),
	))
	if !assert.NoError(err) {
		return
	}
	ag := g.Augmented()
	assert.True(ag.Follow("A").Contains(EOF))
}
