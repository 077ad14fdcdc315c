// Package inmem is an in-process, non-persistent implementation of
// store.Store, used as slrgen's default store so the server and CLI run
// with no external dependencies out of the box.
package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/dekarrin/slrgen/internal/store"
	"github.com/google/uuid"
)

type grammarsRepo struct {
	byID   map[uuid.UUID]store.GrammarRecord
	byName map[string]uuid.UUID
}

// NewGrammarsRepository returns an empty in-memory GrammarRepository.
func NewGrammarsRepository() *grammarsRepo {
	return &grammarsRepo{
		byID:   make(map[uuid.UUID]store.GrammarRecord),
		byName: make(map[string]uuid.UUID),
	}
}

func (r *grammarsRepo) Close() error {
	return nil
}

func (r *grammarsRepo) Create(ctx context.Context, rec store.GrammarRecord) (store.GrammarRecord, error) {
	if _, exists := r.byName[rec.Name]; exists {
		return store.GrammarRecord{}, store.ErrConstraintViolation
	}

	newID, err := uuid.NewRandom()
	if err != nil {
		return store.GrammarRecord{}, err
	}

	now := time.Now()
	rec.ID = newID
	rec.Created = now
	rec.Modified = now

	r.byID[rec.ID] = rec
	r.byName[rec.Name] = rec.ID
	return rec, nil
}

func (r *grammarsRepo) GetByID(ctx context.Context, id uuid.UUID) (store.GrammarRecord, error) {
	rec, ok := r.byID[id]
	if !ok {
		return store.GrammarRecord{}, store.ErrNotFound
	}
	return rec, nil
}

func (r *grammarsRepo) GetByName(ctx context.Context, name string) (store.GrammarRecord, error) {
	id, ok := r.byName[name]
	if !ok {
		return store.GrammarRecord{}, store.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *grammarsRepo) GetAll(ctx context.Context) ([]store.GrammarRecord, error) {
	all := make([]store.GrammarRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all, nil
}

func (r *grammarsRepo) Update(ctx context.Context, id uuid.UUID, rec store.GrammarRecord) (store.GrammarRecord, error) {
	existing, ok := r.byID[id]
	if !ok {
		return store.GrammarRecord{}, store.ErrNotFound
	}

	if rec.Name != existing.Name {
		if _, exists := r.byName[rec.Name]; exists {
			return store.GrammarRecord{}, store.ErrConstraintViolation
		}
		delete(r.byName, existing.Name)
		r.byName[rec.Name] = id
	}

	rec.ID = id
	rec.Created = existing.Created
	rec.Modified = time.Now()

	r.byID[id] = rec
	return rec, nil
}

func (r *grammarsRepo) Delete(ctx context.Context, id uuid.UUID) (store.GrammarRecord, error) {
	existing, ok := r.byID[id]
	if !ok {
		return store.GrammarRecord{}, store.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byName, existing.Name)
	return existing, nil
}

type datastore struct {
	grammars *grammarsRepo
}

// NewDatastore returns a store.Store backed entirely by in-memory maps.
func NewDatastore() store.Store {
	return &datastore{grammars: NewGrammarsRepository()}
}

func (s *datastore) Grammars() store.GrammarRepository {
	return s.grammars
}

func (s *datastore) Close() error {
	return s.grammars.Close()
}
