package edit

import (
	"reflect"
	"testing"

	"github.com/louisbranch/deckwright/internal/catalog"
	"github.com/louisbranch/deckwright/internal/deck"
	"github.com/louisbranch/deckwright/internal/deck/meta"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func testCatalog() *catalog.Catalog {
	return catalog.New([]*catalog.Card{
		{Code: "01016", Name: ".45 Automatic", TypeCode: catalog.TypeAsset, FactionCode: "guardian", XP: intPtr(0), PackCode: "core"},
		{Code: "09022", Name: "Hunter's Armor", TypeCode: catalog.TypeAsset, FactionCode: "guardian", XP: intPtr(0), PackCode: "tsk",
			Customizations: []catalog.CustomizationOption{{XP: 1}, {XP: 2}, {XP: 3}}},
		{Code: "03264", Name: "Stick to the Plan", TypeCode: catalog.TypeAsset, FactionCode: "guardian", XP: intPtr(3), PackCode: "ptc", Permanent: true},
	}, nil, nil, nil)
}

func TestApplyScalarFields(t *testing.T) {
	base := deck.Deck{ID: "d1", Name: "Old", Slots: deck.Slots{"01016": 2}}
	edits := Edits{
		Name:         strPtr("New"),
		Description:  strPtr("notes"),
		TabooSetID:   intPtr(8),
		XPAdjustment: intPtr(2),
	}

	next := Apply(base, edits, testCatalog(), true, nil)
	if next.Name != "New" || next.Description != "notes" {
		t.Fatalf("expected scalar edits applied, got %+v", next)
	}
	if next.TabooSetID == nil || *next.TabooSetID != 8 {
		t.Fatal("expected taboo set 8")
	}
	if next.XPAdjustment != 2 {
		t.Fatalf("expected xp adjustment 2, got %d", next.XPAdjustment)
	}
	if base.Name != "Old" {
		t.Fatal("base record mutated")
	}
}

func TestApplyTabooZeroClears(t *testing.T) {
	base := deck.Deck{ID: "d1", TabooSetID: intPtr(8)}
	next := Apply(base, Edits{TabooSetID: intPtr(0)}, testCatalog(), true, nil)
	if next.TabooSetID != nil {
		t.Fatal("expected taboo cleared")
	}
}

func TestApplyQuantitiesPruned(t *testing.T) {
	base := deck.Deck{ID: "d1", Slots: deck.Slots{"01016": 2, "03264": 1}}
	edits := Edits{Quantities: map[Group]map[string]int{
		GroupMain: {"03264": 0, "09022": -3},
	}}

	committed := Apply(base, edits, testCatalog(), true, nil)
	if _, ok := committed.Slots["03264"]; ok {
		t.Fatal("expected zeroed slot pruned on commit")
	}
	if _, ok := committed.Slots["09022"]; ok {
		t.Fatal("expected negative quantity clamped to zero and pruned")
	}
	if committed.Slots["01016"] != 2 {
		t.Fatal("expected untouched slot preserved")
	}

	draft := Apply(base, edits, testCatalog(), false, nil)
	if qty, ok := draft.Slots["03264"]; !ok || qty != 0 {
		t.Fatal("expected explicit zero kept on the draft path")
	}
}

func TestApplyIdempotent(t *testing.T) {
	base := deck.Deck{ID: "d1", Slots: deck.Slots{"01016": 1}}
	edits := Edits{
		Name:       strPtr("Final"),
		Quantities: map[Group]map[string]int{GroupMain: {"01016": 2}},
		Annotations: map[string]string{
			"01016": "solid opener",
		},
	}

	once := Apply(base, edits, testCatalog(), true, nil)
	twice := Apply(once, edits, testCatalog(), true, nil)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("apply not idempotent:\n once %+v\n twice %+v", once, twice)
	}
}

func TestApplyCustomizationClamped(t *testing.T) {
	base := deck.Deck{ID: "d1", Slots: deck.Slots{"09022": 1}}
	edits := Edits{Customizations: map[string][]CustomizationEdit{
		"09022": {{Index: 1, XPSpent: intPtr(5)}},
	}}

	next := Apply(base, edits, testCatalog(), true, nil)
	decoded := meta.Decode(next.Meta)
	entries := decoded.Customizations["09022"]
	if len(entries) != 1 {
		t.Fatalf("expected one ledger entry, got %+v", entries)
	}
	if entries[0].XPSpent != 2 {
		t.Fatalf("expected spend clamped to option cost 2, got %d", entries[0].XPSpent)
	}
}

func TestApplyCustomizationPrunedWithCard(t *testing.T) {
	base := deck.Deck{ID: "d1", Slots: deck.Slots{"09022": 1}, Meta: "cus_09022=1|0"}
	edits := Edits{Quantities: map[Group]map[string]int{GroupMain: {"09022": 0}}}

	next := Apply(base, edits, testCatalog(), true, nil)
	decoded := meta.Decode(next.Meta)
	if len(decoded.Customizations) != 0 {
		t.Fatalf("expected empty ledger pruned with card, got %+v", decoded.Customizations)
	}
}

func TestApplyLockedLedgerSurvives(t *testing.T) {
	previous := deck.Deck{ID: "d0", Meta: "cus_09022=1|2"}
	base := deck.Deck{ID: "d1", Slots: deck.Slots{"09022": 1}, Meta: "cus_09022=1|2", PreviousDeckID: "d0"}
	edits := Edits{Quantities: map[Group]map[string]int{GroupMain: {"09022": 0}}}

	next := Apply(base, edits, testCatalog(), true, &previous)
	decoded := meta.Decode(next.Meta)
	entries := decoded.Customizations["09022"]
	if len(entries) != 1 || entries[0].XPSpent != 2 {
		t.Fatalf("expected locked-in ledger to survive removal, got %+v", entries)
	}
}

func TestApplyAttachmentsClampedToSlots(t *testing.T) {
	base := deck.Deck{ID: "d1", Slots: deck.Slots{"03264": 1, "01016": 2}}
	edits := Edits{Attachments: map[string]map[string]int{
		"03264": {"01016": 3, "09022": 1},
	}}

	next := Apply(base, edits, testCatalog(), true, nil)
	decoded := meta.Decode(next.Meta)
	attached := decoded.Attachments["03264"]
	if attached["01016"] != 2 {
		t.Fatalf("expected attachment clamped to 2 copies in deck, got %d", attached["01016"])
	}
	if _, ok := attached["09022"]; ok {
		t.Fatal("expected attachment of absent card dropped")
	}
}

func TestApplyAnnotationsDeleted(t *testing.T) {
	base := deck.Deck{ID: "d1", Meta: "annotation_01016=old"}
	edits := Edits{Annotations: map[string]string{"01016": ""}}

	next := Apply(base, edits, testCatalog(), true, nil)
	decoded := meta.Decode(next.Meta)
	if len(decoded.Annotations) != 0 {
		t.Fatalf("expected annotation deleted, got %+v", decoded.Annotations)
	}
}

func TestApplyExtraDeckThroughMeta(t *testing.T) {
	base := deck.Deck{ID: "d1", Meta: "extra_deck=90002:1"}
	edits := Edits{Quantities: map[Group]map[string]int{
		GroupExtra: {"90003": 1},
	}}

	next := Apply(base, edits, testCatalog(), true, nil)
	decoded := meta.Decode(next.Meta)
	if decoded.ExtraDeck["90002"] != 1 || decoded.ExtraDeck["90003"] != 1 {
		t.Fatalf("unexpected extra deck %v", decoded.ExtraDeck)
	}
}

func TestApplyPreservesUnknownMeta(t *testing.T) {
	base := deck.Deck{ID: "d1", Meta: "future_key=value&annotation_01016=note"}
	next := Apply(base, Edits{Name: strPtr("x")}, testCatalog(), true, nil)
	decoded := meta.Decode(next.Meta)
	if decoded.Unknown["future_key"] != "value" {
		t.Fatalf("expected unknown meta preserved, got %+v", decoded.Unknown)
	}
	if decoded.Annotations["01016"] != "note" {
		t.Fatal("expected untouched annotation preserved")
	}
}

func TestApplyTimestampsUntouched(t *testing.T) {
	base := deck.Deck{ID: "d1"}
	next := Apply(base, Edits{Name: strPtr("x")}, testCatalog(), true, nil)
	if !next.CreatedAt.Equal(base.CreatedAt) || !next.UpdatedAt.Equal(base.UpdatedAt) {
		t.Fatal("expected timestamps copied verbatim")
	}
}
