package collation

import "testing"

func TestCompareIgnoresCase(t *testing.T) {
	coll := New("en")
	if coll.Compare("charisma", "Charisma") != 0 {
		t.Fatal("expected case-insensitive comparison")
	}
	if coll.Compare("Adaptable", "Charisma") >= 0 {
		t.Fatal("expected alphabetical ordering")
	}
}

func TestCompareAccentedNames(t *testing.T) {
	coll := New("en")
	// Accented letters sort with their base letter, not after z.
	if coll.Compare("Déjà Vu", "Knife") >= 0 {
		t.Fatal("expected accented name before later letters")
	}
}

func TestInvalidLocaleFallsBack(t *testing.T) {
	coll := New("not-a-locale")
	if coll == nil {
		t.Fatal("expected fallback collator")
	}
	if coll.Compare("a", "b") >= 0 {
		t.Fatal("expected working comparison after fallback")
	}
}
