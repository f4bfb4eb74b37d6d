// Package store persists passages in SQLite.
//
// Rows keep the six numerals, the numeric start and end keys for range
// queries, and the catalog the passage was validated against. Loading a row
// always rebuilds the passage through passage.Between, so a row can never
// yield a passage the catalog would reject.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/passage/core/catalog"
	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/passage"
	"github.com/FocuswithJustin/passage/core/sqlite"
	"github.com/FocuswithJustin/passage/internal/logging"
	"github.com/FocuswithJustin/passage/internal/validation"
)

const table = "passages"

const schema = `
CREATE TABLE IF NOT EXISTS passages (
	id                  TEXT PRIMARY KEY,
	label               TEXT NOT NULL DEFAULT '',
	reading             INTEGER NOT NULL DEFAULT 0,
	primary_passage     INTEGER NOT NULL DEFAULT 0,
	translation         TEXT NOT NULL,
	catalog_fingerprint TEXT NOT NULL,
	start_book          INTEGER NOT NULL,
	start_chapter       INTEGER NOT NULL,
	start_verse         INTEGER NOT NULL,
	end_book            INTEGER NOT NULL,
	end_chapter         INTEGER NOT NULL,
	end_verse           INTEGER NOT NULL,
	start_key           INTEGER NOT NULL,
	end_key             INTEGER NOT NULL,
	created_at          INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS passages_keys ON passages (start_key, end_key);
`

var columns = []string{
	"id", "label", "reading", "primary_passage", "translation", "catalog_fingerprint",
	"start_book", "start_chapter", "start_verse", "end_book", "end_chapter", "end_verse",
	"start_key", "end_key", "created_at",
}

// Meta is the descriptive data saved with a passage.
type Meta struct {
	Label   string
	Reading bool // read aloud during a service
	Primary bool // the subject of the talk
}

// Record is one stored passage.
type Record struct {
	ID        uuid.UUID
	Meta      Meta
	Passage   passage.Passage
	CreatedAt time.Time
}

// Options configures a Store.
type Options struct {
	// Path of the database file, or sqlite.Memory.
	Path string
	// Catalogs resolves the translation id stored with each row. Defaults to
	// catalog.ForTranslation.
	Catalogs func(id string) (*catalog.Catalog, error)
}

// Store is a SQLite-backed passage repository. It is safe for concurrent use.
type Store struct {
	db       *sql.DB
	catalogs func(id string) (*catalog.Catalog, error)
	now      func() time.Time
}

// Open opens (creating if needed) the database described by opts.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Path != sqlite.Memory {
		if err := validation.ValidatePath(opts.Path); err != nil {
			return nil, errors.NewValidation("path", err.Error())
		}
	}
	db, err := sqlite.OpenFile(opts.Path)
	if err != nil {
		return nil, errors.NewIO("open", opts.Path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.NewIO("migrate", opts.Path, err)
	}

	resolve := opts.Catalogs
	if resolve == nil {
		resolve = catalog.ForTranslation
	}
	return &Store{db: db, catalogs: resolve, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save validates p and stores it under a new id.
func (s *Store) Save(ctx context.Context, p passage.Passage, meta Meta) (Record, error) {
	if err := p.Validate(); err != nil {
		return Record{}, err
	}
	if err := validation.ValidateLabel(meta.Label); err != nil {
		return Record{}, errors.NewValidation("label", err.Error())
	}

	rec := Record{
		ID:        uuid.New(),
		Meta:      meta,
		Passage:   p,
		CreatedAt: s.now().UTC(),
	}
	cat := p.Catalog()
	query, args, err := squirrel.Insert(table).
		Columns(columns...).
		Values(
			rec.ID.String(), meta.Label, meta.Reading, meta.Primary, cat.ID(), cat.Fingerprint(),
			p.StartBook(), p.StartChapter(), p.StartVerse(), p.EndBook(), p.EndChapter(), p.EndVerse(),
			p.StartKey(), p.EndKey(), rec.CreatedAt.UnixNano(),
		).
		ToSql()
	if err != nil {
		return Record{}, errors.Wrap(err, "building insert")
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return Record{}, errors.NewIO("insert", table, err)
	}

	logging.StoreOperation(ctx, "save", rec.ID.String(), "passage", p.String(), "label", meta.Label)
	return rec, nil
}

// Get returns the record with id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	recs, err := s.query(ctx, selectRows().Where(squirrel.Eq{"id": id.String()}))
	if err != nil {
		return Record{}, err
	}
	if len(recs) == 0 {
		return Record{}, errors.NewNotFound("passage", id.String())
	}
	return recs[0], nil
}

// List returns every record in canonical order.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	return s.query(ctx, selectRows())
}

// Overlapping returns the records that share at least one verse position
// with p, judged by numeric keys.
func (s *Store) Overlapping(ctx context.Context, p passage.Passage) ([]Record, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.query(ctx, selectRows().Where(squirrel.And{
		squirrel.LtOrEq{"start_key": p.EndKey()},
		squirrel.GtOrEq{"end_key": p.StartKey()},
	}))
}

// Delete removes the record with id.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := squirrel.Delete(table).Where(squirrel.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building delete")
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.NewIO("delete", table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.NewNotFound("passage", id.String())
	}
	logging.StoreOperation(ctx, "delete", id.String())
	return nil
}

func selectRows() squirrel.SelectBuilder {
	return squirrel.Select(columns...).From(table).OrderBy("start_key", "end_key", "created_at")
}

func (s *Store) query(ctx context.Context, b squirrel.SelectBuilder) ([]Record, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building select")
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewIO("query", table, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := s.scan(ctx, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewIO("query", table, err)
	}
	return out, nil
}

func (s *Store) scan(ctx context.Context, rows *sql.Rows) (Record, error) {
	var (
		id, translation, fingerprint string
		rec                          Record
		start, end                   passage.Position
		startKey, endKey             int
		created                      int64
	)
	err := rows.Scan(
		&id, &rec.Meta.Label, &rec.Meta.Reading, &rec.Meta.Primary, &translation, &fingerprint,
		&start.Book, &start.Chapter, &start.Verse, &end.Book, &end.Chapter, &end.Verse,
		&startKey, &endKey, &created,
	)
	if err != nil {
		return Record{}, errors.NewIO("scan", table, err)
	}

	rec.ID, err = uuid.Parse(id)
	if err != nil {
		return Record{}, errors.NewParse("passage id", table, err.Error())
	}
	rec.CreatedAt = time.Unix(0, created).UTC()

	cat, err := s.catalogs(translation)
	if err != nil {
		return Record{}, errors.Wrapf(err, "passage %s", id)
	}
	if cat.Fingerprint() != fingerprint {
		logging.WarnContext(ctx, "catalog changed since passage was saved",
			"id", id, "translation", translation)
	}
	rec.Passage, err = passage.Between(cat, start, end)
	if err != nil {
		return Record{}, errors.Wrapf(err, "passage %s", id)
	}
	if rec.Passage.StartKey() != startKey || rec.Passage.EndKey() != endKey {
		logging.WarnContext(ctx, "stored keys disagree with numerals",
			"id", id, "start_key", startKey, "end_key", endKey)
	}
	return rec, nil
}
