package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BuildCanonicalCollection_dragonExprGrammar(t *testing.T) {
	assert := assert.New(t)

	ag := dragonExprGrammar(t).Augmented()
	auto, err := BuildCanonicalCollection(ag)
	if !assert.NoError(err) {
		return
	}

	// The dragon-book worked example for this exact grammar has 12 states.
	assert.Len(auto.States, 12)
	assert.Equal(0, auto.Start)
}

func Test_BuildCanonicalCollection_deterministic(t *testing.T) {
	assert := assert.New(t)

	ag := dragonExprGrammar(t).Augmented()

	first, err := BuildCanonicalCollection(ag)
	if !assert.NoError(err) {
		return
	}
	second, err := BuildCanonicalCollection(ag)
	if !assert.NoError(err) {
		return
	}

	if !assert.Equal(len(first.States), len(second.States)) {
		return
	}
	for i := range first.States {
		assert.True(first.States[i].Items.Equal(second.States[i].Items), "state %d item sets differ across builds", i)
		assert.Equal(first.States[i].Moves, second.States[i].Moves, "state %d moves differ across builds", i)
	}
}

func Test_BuildCanonicalCollection_rejectsUnaugmentedGrammar(t *testing.T) {
	assert := assert.New(t)

	g := dragonExprGrammar(t)
	_, err := BuildCanonicalCollection(g)
	assert.Error(err)
}

func Test_BuildCanonicalCollection_everyStateReachableFromStart(t *testing.T) {
	assert := assert.New(t)

	ag := dragonExprGrammar(t).Augmented()
	auto, err := BuildCanonicalCollection(ag)
	if !assert.NoError(err) {
		return
	}

	reached := map[int]bool{auto.Start: true}
	queue := []int{auto.Start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, to := range auto.States[cur].Moves {
			if !reached[to] {
				reached[to] = true
				queue = append(queue, to)
			}
		}
	}
	assert.Len(reached, len(auto.States))
}
