package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects read-only to the movie database at path.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&immutable=1", path)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS MOVIE (
    id TEXT PRIMARY KEY,
    year INTEGER,
    duration INTEGER,
    filmaffinity INTEGER
);
CREATE TABLE IF NOT EXISTS TITLE (
    movie TEXT NOT NULL REFERENCES MOVIE(id),
    title TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS PERSON (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS DIRECTOR (
    movie TEXT NOT NULL REFERENCES MOVIE(id),
    person TEXT NOT NULL REFERENCES PERSON(id)
);
`

const ftsSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS TITLE_FTS USING fts5(movie UNINDEXED, title);
CREATE VIRTUAL TABLE IF NOT EXISTS PERSON_FTS USING fts5(id UNINDEXED, name);
`

// CreateSchema creates the movie tables on a writable database. The FTS5
// tables need a go-sqlite3 build with the sqlite_fts5 tag.
func CreateSchema(ctx context.Context, db *sqlx.DB, withFTS bool) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create movie schema: %w", err)
	}
	if withFTS {
		if _, err := db.ExecContext(ctx, ftsSchema); err != nil {
			return fmt.Errorf("create movie fts schema: %w", err)
		}
	}
	return nil
}
