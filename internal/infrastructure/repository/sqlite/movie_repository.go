package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/event-agenda/internal/domain/movie"
	qb "github.com/riskibarqy/event-agenda/internal/platform/querybuilder"
)

// MovieRepository searches the local movie database. Names are compared with
// NOCASE equality and, when fts is on, with an FTS5 phrase match as well.
type MovieRepository struct {
	db  *sqlx.DB
	fts bool
}

func NewMovieRepository(db *sqlx.DB, fts bool) *MovieRepository {
	return &MovieRepository{db: db, fts: fts}
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (movie.Movie, bool, error) {
	query, args, err := qb.Select("id", "year", "duration", "filmaffinity").
		From("MOVIE").
		Where(qb.Eq("id", id)).
		Dialect(qb.SQLite).
		ToSQL()
	if err != nil {
		return movie.Movie{}, false, fmt.Errorf("build get movie query: %w", err)
	}

	var row movieTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return movie.Movie{}, false, nil
		}
		return movie.Movie{}, false, fmt.Errorf("get movie: %w", err)
	}

	titles, err := r.selectStrings(ctx, qb.Select("title").From("TITLE").Where(qb.Eq("movie", id)).OrderBy("rowid"))
	if err != nil {
		return movie.Movie{}, false, fmt.Errorf("select movie titles: %w", err)
	}
	directors, err := r.selectStrings(ctx, qb.Select("p.name").
		From("DIRECTOR d JOIN PERSON p ON p.id = d.person").
		Where(qb.Eq("d.movie", id)).
		OrderBy("d.rowid"))
	if err != nil {
		return movie.Movie{}, false, fmt.Errorf("select movie directors: %w", err)
	}

	return movie.Movie{
		ID:           row.ID,
		Year:         int(row.Year.Int64),
		Duration:     int(row.Duration.Int64),
		FilmAffinity: int(row.FilmAffinity.Int64),
		Titles:       titles,
		Directors:    directors,
	}, true, nil
}

func (r *MovieRepository) FindByTitles(ctx context.Context, titles []string, filter movie.SearchFilter) ([]string, error) {
	titles = distinct(titles)
	if len(titles) == 0 {
		return nil, nil
	}

	var parts []qb.Query
	for _, t := range titles {
		parts = append(parts, qb.Select("movie").From("TITLE").Where(qb.Expr("title = ? COLLATE NOCASE", t)))
		if r.fts {
			parts = append(parts, qb.Select("movie").From("TITLE_FTS").Where(qb.Match("title", escapeFTS5(t))))
		}
	}

	ids, err := r.selectStrings(ctx, qb.Select("movie").Distinct().
		FromQuery(qb.Union(parts...), "hits").
		Where(windowCondition(filter)).
		OrderBy("movie"))
	if err != nil {
		return nil, fmt.Errorf("search movie by title: %w", err)
	}
	return ids, nil
}

func (r *MovieRepository) FindByDirectors(ctx context.Context, directors []string, filter movie.SearchFilter) ([]string, error) {
	directors = distinct(directors)
	if len(directors) == 0 {
		return nil, nil
	}

	var parts []qb.Query
	for _, d := range directors {
		parts = append(parts, qb.Select("id").From("PERSON").Where(qb.Expr("lower(name) = ? COLLATE NOCASE", strings.ToLower(d))))
		if r.fts {
			parts = append(parts, qb.Select("id").From("PERSON_FTS").Where(qb.Match("name", escapeFTS5(d))))
		}
	}

	ids, err := r.selectStrings(ctx, qb.Select("movie").Distinct().
		From("DIRECTOR").
		Where(qb.InQuery("person", qb.Union(parts...)), windowCondition(filter)).
		OrderBy("movie"))
	if err != nil {
		return nil, fmt.Errorf("search movie by director: %w", err)
	}
	return ids, nil
}

func (r *MovieRepository) selectStrings(ctx context.Context, b *qb.SelectBuilder) ([]string, error) {
	query, args, err := b.Dialect(qb.SQLite).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	return out, nil
}

// windowCondition restricts hits to movies inside the exclusive year and
// duration bounds of f. It returns nil when f sets no bound.
func windowCondition(f movie.SearchFilter) qb.Condition {
	var conds []qb.Condition
	if f.MinDuration > 0 {
		conds = append(conds, qb.Gt("duration", f.MinDuration))
	}
	if f.MaxDuration > 0 {
		conds = append(conds, qb.Lt("duration", f.MaxDuration))
	}
	if f.MinYear > 0 {
		conds = append(conds, qb.Gt("year", f.MinYear))
	}
	if f.MaxYear > 0 {
		conds = append(conds, qb.Lt("year", f.MaxYear))
	}
	if len(conds) == 0 {
		return nil
	}
	return qb.InQuery("movie", qb.Select("id").From("MOVIE").Where(conds...))
}

func escapeFTS5(text string) string {
	return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
}

func distinct(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" && !slices.Contains(out, item) {
			out = append(out, item)
		}
	}
	return out
}
