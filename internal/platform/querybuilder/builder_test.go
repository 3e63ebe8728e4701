package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("user_id", "game_id", "state").
		From("progress").
		Where(Eq("user_id", "player-1"), IsNull("deleted_at")).
		OrderBy("updated_at").
		Limit(50).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT user_id, game_id, state FROM progress WHERE user_id = $1 AND deleted_at IS NULL ORDER BY updated_at LIMIT 50"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "player-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_LtAndIn(t *testing.T) {
	query, args, err := Select("*").
		From("progress").
		Where(Lt("updated_at", "cutoff"), In("game_id", []any{"a", "b"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM progress WHERE updated_at < $1 AND game_id IN ($2, $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInNeverMatches(t *testing.T) {
	query, args, err := Select("*").
		From("submissions").
		Where(In("game_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT * FROM submissions WHERE 1=0"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("submissions").
		Columns("public_id", "user_id", "game_id").
		Values("sub-1", "player-1", "wordle-2026-08-31").
		Suffix("RETURNING public_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO submissions (public_id, user_id, game_id) VALUES ($1, $2, $3) RETURNING public_id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "sub-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowShapeMismatch(t *testing.T) {
	_, _, err := InsertInto("submissions").
		Columns("user_id", "game_id").
		Values("player-1").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for mismatched row width")
	}
}
