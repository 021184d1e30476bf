package sqlite

import "database/sql"

type movieTableModel struct {
	ID           string        `db:"id"`
	Year         sql.NullInt64 `db:"year"`
	Duration     sql.NullInt64 `db:"duration"`
	FilmAffinity sql.NullInt64 `db:"filmaffinity"`
}
