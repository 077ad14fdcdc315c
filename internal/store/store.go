// Package store defines the persistence contract for saved grammars: the
// source text a client submitted, plus a summary of the SLR table built
// from it the last time it was saved. It mirrors the repository-per-
// resource Store pattern used elsewhere in this codebase's server layer.
package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound means the requested grammar does not exist.
	ErrNotFound = errors.New("the requested grammar was not found")

	// ErrConstraintViolation means a uniqueness constraint (grammar name)
	// was violated.
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")

	// ErrDecodingFailure means a stored field could not be decoded back
	// into its in-memory representation.
	ErrDecodingFailure = errors.New("field could not be decoded from storage format")
)

// BuildSummary is a small, storable snapshot of the outcome of building an
// SLR table for a grammar: enough to show in a listing without re-running
// the whole construction pipeline. It is nil on a GrammarRecord that has
// never been successfully built.
//
// BuildSummary implements encoding.BinaryMarshaler/BinaryUnmarshaler so sqlite
// storage can hand it directly to rezi.EncBinary/DecBinary.
type BuildSummary struct {
	StateCount      int
	ProductionCount int
}

func encBuildSummaryInt(i int) []byte {
	return binary.AppendVarint(nil, int64(i))
}

func decBuildSummaryInt(data []byte) (int, int, error) {
	val, read := binary.Varint(data)
	if read <= 0 {
		return 0, 0, fmt.Errorf("malformed varint in stored build summary")
	}
	return int(val), read, nil
}

// MarshalBinary encodes the summary as two consecutive signed varints.
func (b BuildSummary) MarshalBinary() ([]byte, error) {
	var data []byte
	data = append(data, encBuildSummaryInt(b.StateCount)...)
	data = append(data, encBuildSummaryInt(b.ProductionCount)...)
	return data, nil
}

// UnmarshalBinary decodes a summary previously produced by MarshalBinary.
func (b *BuildSummary) UnmarshalBinary(data []byte) error {
	states, n, err := decBuildSummaryInt(data)
	if err != nil {
		return fmt.Errorf("state count: %w", err)
	}
	data = data[n:]

	prods, _, err := decBuildSummaryInt(data)
	if err != nil {
		return fmt.Errorf("production count: %w", err)
	}

	b.StateCount = states
	b.ProductionCount = prods
	return nil
}

// GrammarRecord is one saved grammar.
type GrammarRecord struct {
	ID     uuid.UUID
	Name   string
	Source string

	// Summary is the outcome of the most recent successful BuildSLRTable
	// call over Source, or nil if the grammar has never built cleanly.
	Summary *BuildSummary

	Created  time.Time
	Modified time.Time
}

// Store holds all the repositories slrgen's server needs.
type Store interface {
	Grammars() GrammarRepository
	Close() error
}

// GrammarRepository is the CRUD contract over GrammarRecord.
type GrammarRepository interface {
	Create(ctx context.Context, rec GrammarRecord) (GrammarRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (GrammarRecord, error)
	GetByName(ctx context.Context, name string) (GrammarRecord, error)
	GetAll(ctx context.Context) ([]GrammarRecord, error)
	Update(ctx context.Context, id uuid.UUID, rec GrammarRecord) (GrammarRecord, error)
	Delete(ctx context.Context, id uuid.UUID) (GrammarRecord, error)
	Close() error
}
