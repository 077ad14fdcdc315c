// Package sqlite is a modernc.org/sqlite-backed implementation of
// store.Store, for deployments that want saved grammars to survive a
// restart.
package sqlite

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/dekarrin/slrgen/internal/store"
	"github.com/google/uuid"
	"modernc.org/sqlite"
)

type datastore struct {
	dbFilename string
	db         *sql.DB
	grammars   *GrammarsDB
}

// NewDatastore opens (creating if necessary) a sqlite database in
// storageDir and returns a store.Store backed by it.
func NewDatastore(storageDir string) (store.Store, error) {
	st := &datastore{dbFilename: "slrgen.db"}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.grammars = &GrammarsDB{db: st.db}
	if err := st.grammars.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *datastore) Grammars() store.GrammarRepository {
	return s.grammars
}

func (s *datastore) Close() error {
	return wrapDBError(s.db.Close())
}

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %s", store.ErrDecodingFailure, err)
	}
	*target = u
	return nil
}

func convertToDB_Time(t time.Time) int64 {
	return t.Unix()
}

func convertFromDB_Time(i int64, target *time.Time) error {
	*target = time.Unix(i, 0)
	return nil
}

// convertToDB_Summary encodes a *store.BuildSummary to its storage form. A
// nil pointer becomes the empty string, mirroring how a grammar that has
// never built cleanly has no summary to store.
func convertToDB_Summary(b *store.BuildSummary) string {
	if b == nil {
		return ""
	}
	enc := rezi.EncBinary(*b)
	return base64.StdEncoding.EncodeToString(enc)
}

func convertFromDB_Summary(s string, target **store.BuildSummary) error {
	if s == "" {
		*target = nil
		return nil
	}

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %s", store.ErrDecodingFailure, err)
	}

	b := &store.BuildSummary{}
	n, err := rezi.DecBinary(raw, b)
	if err != nil {
		return fmt.Errorf("%w: %s", store.ErrDecodingFailure, err)
	}
	if n != len(raw) {
		return fmt.Errorf("%w: decoded byte count mismatch; only consumed %d/%d bytes", store.ErrDecodingFailure, n, len(raw))
	}

	*target = b
	return nil
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return store.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}
