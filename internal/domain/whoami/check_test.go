package whoami

import "testing"

func TestCheck_ReturnsAllPositions(t *testing.T) {
	t.Parallel()

	got := Check("Abednego", 'e')
	want := []int{2, 5}
	if len(got) != len(want) {
		t.Fatalf("positions length: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got=%d want=%d", i, got[i], want[i])
		}
	}
}

func TestCheck_PositionsAreRuneOffsets(t *testing.T) {
	t.Parallel()

	// Multi-byte letters must not shift later positions: the m sits in the
	// eighth mask slot even though it starts at byte nine.
	got := Check("Ångström", 'm')
	if len(got) != 1 || got[0] != 7 {
		t.Fatalf("positions: got=%v want=[7]", got)
	}
	if maskLen := len([]rune(Mask("Ångström"))); got[0] >= maskLen {
		t.Fatalf("position %d outside mask of %d slots", got[0], maskLen)
	}
}

func TestCheck_MissReturnsNil(t *testing.T) {
	t.Parallel()

	if got := Check("Moses", 'z'); got != nil {
		t.Fatalf("expected no positions, got %v", got)
	}
}

func TestCheck_IgnoresNonLetterGuess(t *testing.T) {
	t.Parallel()

	if got := Check("C3PO", '3'); got != nil {
		t.Fatalf("digit guess must not match, got %v", got)
	}
}

func TestMask_PreservesShape(t *testing.T) {
	t.Parallel()

	if got := Mask("John the Baptist"); got != "____ ___ _______" {
		t.Fatalf("mask: got=%q", got)
	}
}

func TestSolved(t *testing.T) {
	t.Parallel()

	revealed := map[rune]bool{'m': true, 'o': true, 's': true}
	if !Solved("Moses", revealed) {
		t.Fatalf("all letters revealed, expected solved")
	}

	delete(revealed, 's')
	if Solved("Moses", revealed) {
		t.Fatalf("missing letter, expected unsolved")
	}
}
