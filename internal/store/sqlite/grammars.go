package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/slrgen/internal/store"
	"github.com/google/uuid"
)

// GrammarsDB is the sqlite-backed store.GrammarRepository.
type GrammarsDB struct {
	db *sql.DB
}

func (repo *GrammarsDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS grammars (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		source TEXT NOT NULL,
		summary TEXT NOT NULL,
		created INTEGER NOT NULL,
		modified INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *GrammarsDB) Create(ctx context.Context, rec store.GrammarRecord) (store.GrammarRecord, error) {
	newID, err := uuid.NewRandom()
	if err != nil {
		return store.GrammarRecord{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO grammars (id, name, source, summary, created, modified) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return store.GrammarRecord{}, wrapDBError(err)
	}

	now := time.Now()

	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newID),
		rec.Name,
		rec.Source,
		convertToDB_Summary(rec.Summary),
		convertToDB_Time(now),
		convertToDB_Time(now),
	)
	if err != nil {
		return store.GrammarRecord{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newID)
}

func (repo *GrammarsDB) GetByID(ctx context.Context, id uuid.UUID) (store.GrammarRecord, error) {
	rec := store.GrammarRecord{ID: id}
	var created, modified int64
	var summary string

	row := repo.db.QueryRowContext(ctx, `SELECT name, source, summary, created, modified FROM grammars WHERE id = ?;`,
		convertToDB_UUID(id),
	)
	err := row.Scan(&rec.Name, &rec.Source, &summary, &created, &modified)
	if err != nil {
		return rec, wrapDBError(err)
	}

	if err := convertFromDB_Summary(summary, &rec.Summary); err != nil {
		return rec, err
	}
	if err := convertFromDB_Time(created, &rec.Created); err != nil {
		return rec, err
	}
	if err := convertFromDB_Time(modified, &rec.Modified); err != nil {
		return rec, err
	}

	return rec, nil
}

func (repo *GrammarsDB) GetByName(ctx context.Context, name string) (store.GrammarRecord, error) {
	var rec store.GrammarRecord
	var id string
	var created, modified int64
	var summary string

	row := repo.db.QueryRowContext(ctx, `SELECT id, source, summary, created, modified FROM grammars WHERE name = ?;`, name)
	err := row.Scan(&id, &rec.Source, &summary, &created, &modified)
	if err != nil {
		return rec, wrapDBError(err)
	}
	rec.Name = name

	if err := convertFromDB_UUID(id, &rec.ID); err != nil {
		return rec, err
	}
	if err := convertFromDB_Summary(summary, &rec.Summary); err != nil {
		return rec, err
	}
	if err := convertFromDB_Time(created, &rec.Created); err != nil {
		return rec, err
	}
	if err := convertFromDB_Time(modified, &rec.Modified); err != nil {
		return rec, err
	}

	return rec, nil
}

func (repo *GrammarsDB) GetAll(ctx context.Context) ([]store.GrammarRecord, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, name, source, summary, created, modified FROM grammars ORDER BY name;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []store.GrammarRecord

	for rows.Next() {
		var rec store.GrammarRecord
		var id string
		var created, modified int64
		var summary string

		if err := rows.Scan(&id, &rec.Name, &rec.Source, &summary, &created, &modified); err != nil {
			return nil, wrapDBError(err)
		}

		if err := convertFromDB_UUID(id, &rec.ID); err != nil {
			return all, err
		}
		if err := convertFromDB_Summary(summary, &rec.Summary); err != nil {
			return all, err
		}
		if err := convertFromDB_Time(created, &rec.Created); err != nil {
			return all, err
		}
		if err := convertFromDB_Time(modified, &rec.Modified); err != nil {
			return all, err
		}

		all = append(all, rec)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *GrammarsDB) Update(ctx context.Context, id uuid.UUID, rec store.GrammarRecord) (store.GrammarRecord, error) {
	res, err := repo.db.ExecContext(ctx, `UPDATE grammars SET name=?, source=?, summary=?, modified=? WHERE id=?;`,
		rec.Name,
		rec.Source,
		convertToDB_Summary(rec.Summary),
		convertToDB_Time(time.Now()),
		convertToDB_UUID(id),
	)
	if err != nil {
		return store.GrammarRecord{}, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return store.GrammarRecord{}, wrapDBError(err)
	}
	if rowsAff < 1 {
		return store.GrammarRecord{}, store.ErrNotFound
	}

	return repo.GetByID(ctx, id)
}

func (repo *GrammarsDB) Delete(ctx context.Context, id uuid.UUID) (store.GrammarRecord, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM grammars WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, store.ErrNotFound
	}

	return curVal, nil
}

func (repo *GrammarsDB) Close() error {
	return nil
}
