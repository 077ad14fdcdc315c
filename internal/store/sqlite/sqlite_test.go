package sqlite

import (
	"context"
	"testing"

	"github.com/dekarrin/slrgen/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	dir := t.TempDir()
	st, err := NewDatastore(dir)
	if err != nil {
		t.Fatalf("NewDatastore: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func Test_GrammarsDB_CreateAndGetByID(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Grammars().Create(ctx, store.GrammarRecord{
		Name:   "expr",
		Source: "S -> A ;",
		Summary: &store.BuildSummary{StateCount: 3, ProductionCount: 1},
	})
	if !assert.NoError(err) {
		return
	}
	assert.NotEqual(uuid.Nil, created.ID)

	fetched, err := st.Grammars().GetByID(ctx, created.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created.Name, fetched.Name)
	assert.Equal(created.Source, fetched.Source)
	if assert.NotNil(fetched.Summary) {
		assert.Equal(3, fetched.Summary.StateCount)
		assert.Equal(1, fetched.Summary.ProductionCount)
	}
}

func Test_GrammarsDB_Create_nilSummaryRoundTrips(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Grammars().Create(ctx, store.GrammarRecord{Name: "expr", Source: "S -> A ;"})
	if !assert.NoError(err) {
		return
	}

	fetched, err := st.Grammars().GetByID(ctx, created.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Nil(fetched.Summary)
}

func Test_GrammarsDB_Create_duplicateNameIsConstraintViolation(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	_, err := st.Grammars().Create(ctx, store.GrammarRecord{Name: "expr", Source: "S -> A ;"})
	if !assert.NoError(err) {
		return
	}

	_, err = st.Grammars().Create(ctx, store.GrammarRecord{Name: "expr", Source: "S -> B ;"})
	assert.ErrorIs(err, store.ErrConstraintViolation)
}

func Test_GrammarsDB_GetByID_missingIsNotFound(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	id, err := uuid.NewRandom()
	if !assert.NoError(err) {
		return
	}
	_, err = st.Grammars().GetByID(ctx, id)
	assert.ErrorIs(err, store.ErrNotFound)
}

func Test_GrammarsDB_GetByName(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Grammars().Create(ctx, store.GrammarRecord{Name: "expr", Source: "S -> A ;"})
	if !assert.NoError(err) {
		return
	}

	fetched, err := st.Grammars().GetByName(ctx, "expr")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created.ID, fetched.ID)

	_, err = st.Grammars().GetByName(ctx, "nope")
	assert.ErrorIs(err, store.ErrNotFound)
}

func Test_GrammarsDB_GetAll_sortedByName(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	for _, n := range []string{"zeta", "alpha", "mid"} {
		_, err := st.Grammars().Create(ctx, store.GrammarRecord{Name: n, Source: "S -> A ;"})
		if !assert.NoError(err) {
			return
		}
	}

	all, err := st.Grammars().GetAll(ctx)
	if !assert.NoError(err) {
		return
	}
	if !assert.Len(all, 3) {
		return
	}
	assert.Equal([]string{"alpha", "mid", "zeta"}, []string{all[0].Name, all[1].Name, all[2].Name})
}

func Test_GrammarsDB_Update(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Grammars().Create(ctx, store.GrammarRecord{Name: "expr", Source: "S -> A ;"})
	if !assert.NoError(err) {
		return
	}

	updated, err := st.Grammars().Update(ctx, created.ID, store.GrammarRecord{
		Name:    "expr2",
		Source:  "S -> B ;",
		Summary: &store.BuildSummary{StateCount: 7, ProductionCount: 2},
	})
	if !assert.NoError(err) {
		return
	}
	assert.Equal("expr2", updated.Name)
	if assert.NotNil(updated.Summary) {
		assert.Equal(7, updated.Summary.StateCount)
	}

	_, err = st.Grammars().GetByName(ctx, "expr")
	assert.ErrorIs(err, store.ErrNotFound)
}

func Test_GrammarsDB_Update_missingIsNotFound(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	id, err := uuid.NewRandom()
	if !assert.NoError(err) {
		return
	}
	_, err = st.Grammars().Update(ctx, id, store.GrammarRecord{Name: "expr", Source: "S -> A ;"})
	assert.ErrorIs(err, store.ErrNotFound)
}

func Test_GrammarsDB_Delete(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	st := newTestStore(t)

	created, err := st.Grammars().Create(ctx, store.GrammarRecord{Name: "expr", Source: "S -> A ;"})
	if !assert.NoError(err) {
		return
	}

	deleted, err := st.Grammars().Delete(ctx, created.ID)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(created.ID, deleted.ID)

	_, err = st.Grammars().GetByID(ctx, created.ID)
	assert.ErrorIs(err, store.ErrNotFound)
}
