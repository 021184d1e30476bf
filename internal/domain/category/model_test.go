package category

import "testing"

func TestCompareUnknownIsLast(t *testing.T) {
	t.Parallel()

	for _, c := range All() {
		if c == Unknown {
			continue
		}
		if !c.Less(Unknown) {
			t.Fatalf("expected %s to sort before unknown", c.Name())
		}
		if Unknown.Less(c) {
			t.Fatalf("expected unknown not to sort before %s", c.Name())
		}
	}
	all := All()
	if all[len(all)-1] != Unknown {
		t.Fatalf("expected unknown as last category, got %s", all[len(all)-1].Name())
	}
}

func TestCompareUsesSpanishCollation(t *testing.T) {
	t.Parallel()

	items := []Category{Theater, Expo, Unknown, Cinema, Music, Dance}
	Sort(items)

	want := []Category{Cinema, Dance, Expo, Music, Theater, Unknown}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("unexpected order at %d: expected %s, got %s", i, want[i].Name(), items[i].Name())
		}
	}
}

func TestCompareIsTotalOrder(t *testing.T) {
	t.Parallel()

	all := All()
	for _, a := range all {
		for _, b := range all {
			ab, ba := Compare(a, b), Compare(b, a)
			if (ab < 0) != (ba > 0) {
				t.Fatalf("asymmetric comparison between %s and %s", a.Name(), b.Name())
			}
			if a != b && ab == 0 {
				t.Fatalf("distinct categories %s and %s compare equal", a.Name(), b.Name())
			}
		}
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	got, err := Parse("reading_club")
	if err != nil {
		t.Fatalf("parse category: %v", err)
	}
	if got != ReadingClub {
		t.Fatalf("expected READING_CLUB, got %s", got.Name())
	}
	if got, err := Parse(""); err != nil || got != Unknown {
		t.Fatalf("expected empty name to parse as unknown, got %v %v", got, err)
	}
	if _, err := Parse("NOPE"); err == nil {
		t.Fatalf("expected error for unknown category name")
	}
}

func TestTextRoundTrip(t *testing.T) {
	t.Parallel()

	var c Category
	if err := c.UnmarshalText([]byte("LITERATURE")); err != nil {
		t.Fatalf("unmarshal text: %v", err)
	}
	raw, err := c.MarshalText()
	if err != nil || string(raw) != "LITERATURE" {
		t.Fatalf("unexpected marshal output %q %v", raw, err)
	}
	if c.String() != "literatura" {
		t.Fatalf("unexpected display label %q", c.String())
	}
}
