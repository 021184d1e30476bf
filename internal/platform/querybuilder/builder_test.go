package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("event_id", "publish").
		From("event_publish").
		Where(Eq("event_id", "e1"), IsNull("deleted_at")).
		OrderBy("event_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT event_id, publish FROM event_publish WHERE event_id = $1 AND deleted_at IS NULL ORDER BY event_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "e1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_SQLiteUnionAndSubquery(t *testing.T) {
	hits := Union(
		Select("movie").From("TITLE").Where(Expr("title = ? COLLATE NOCASE", "Vértigo")),
		Select("movie").From("TITLE_FTS").Where(Match("title", `"Vértigo"`)),
	)
	query, args, err := Select("movie").Distinct().
		FromQuery(hits, "hits").
		Where(InQuery("movie", Select("id").From("MOVIE").Where(Gt("year", 1957), Lt("year", 1959)))).
		Dialect(SQLite).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT DISTINCT movie FROM (SELECT movie FROM TITLE WHERE title = ? COLLATE NOCASE UNION SELECT movie FROM TITLE_FTS WHERE title MATCH ?) AS hits WHERE movie IN (SELECT id FROM MOVIE WHERE year > ? AND year < ?)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "Vértigo" || args[2] != 1957 || args[3] != 1959 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_PostgresNumbersNestedArgs(t *testing.T) {
	query, args, err := Select("id").
		From("t").
		Where(Or(Eq("a", 1), In("b", []string{"x", "y"})), InQuery("c", Select("c").From("u").Where(Eq("d", 2)))).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM t WHERE (a = $1 OR b IN ($2, $3)) AND c IN (SELECT c FROM u WHERE d = $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestIn_EmptyMatchesNothing(t *testing.T) {
	query, _, err := Select("id").From("t").Where(In[string]("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM t WHERE 1=0" {
		t.Fatalf("unexpected query: %s", query)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("event_publish").
		Columns("event_id", "publish").
		Values("e1", "2025-01-01").
		Values("e2", "2025-01-02").
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO event_publish (event_id, publish) VALUES ($1, $2), ($3, $4) ON CONFLICT (event_id) DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "e1" || args[3] != "2025-01-02" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModels(t *testing.T) {
	type row struct {
		ID      string `db:"event_id"`
		Publish string `db:"publish"`
		skipped string
	}
	query, args, err := InsertModels(SQLite, "event_publish", []row{{ID: "e1", Publish: "2025-01-01"}}, "")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}
	if query != "INSERT INTO event_publish (event_id, publish) VALUES (?, ?)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[row](Postgres, "event_publish", nil, ""); err == nil {
		t.Fatalf("expected error without rows")
	}
}
