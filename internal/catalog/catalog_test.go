package catalog

import (
	"reflect"
	"testing"
	"testing/fstest"
)

func intPtr(v int) *int { return &v }

func testCards() []*Card {
	return []*Card{
		{Code: "01001", Name: "Roland Banks", TypeCode: TypeInvestigator, FactionCode: "guardian", PackCode: "core"},
		{Code: "90024", Name: "Roland Banks", TypeCode: TypeInvestigator, FactionCode: "guardian", PackCode: "rtptc", AlternateOf: "01001"},
		{Code: "01016", Name: ".45 Automatic", TypeCode: TypeAsset, FactionCode: "guardian", XP: intPtr(0), PackCode: "core", Traits: []string{"Item", "Weapon", "Firearm"}},
		{Code: "02226", Name: ".45 Automatic", Subname: "", TypeCode: TypeAsset, FactionCode: "guardian", XP: intPtr(2), PackCode: "bsr", Traits: []string{"Item", "Weapon", "Firearm"}},
		{Code: "01516", Name: ".45 Automatic", TypeCode: TypeAsset, FactionCode: "guardian", XP: intPtr(0), PackCode: "rcore", DuplicateOf: "01016"},
		{Code: "05314", Name: "Hallowed Mirror", TypeCode: TypeAsset, FactionCode: "guardian", XP: intPtr(0), PackCode: "tde", Traits: []string{"Item", "Relic", "Occult"}},
		{Code: "05317", Name: "Soothing Melody", TypeCode: TypeEvent, FactionCode: "guardian", PackCode: "tde", BondedTo: "Hallowed Mirror", BondedCount: 3},
	}
}

func TestNewIndexesCardsByCode(t *testing.T) {
	cat := New(testCards(), []*Pack{{Code: "core", Name: "Core Set", CycleCode: "core"}}, nil, nil)
	if cat.Card("01016") == nil {
		t.Fatal("expected card 01016")
	}
	if cat.Card("99999") != nil {
		t.Fatal("expected unknown code to resolve nil")
	}
	if cat.Pack("core") == nil {
		t.Fatal("expected pack core")
	}
}

func TestLookupDuplicates(t *testing.T) {
	cat := New(testCards(), nil, nil, nil)
	if got := cat.Lookup.Relations.Duplicates["01016"]; !reflect.DeepEqual(got, []string{"01516"}) {
		t.Fatalf("expected reprint list [01516], got %v", got)
	}
	if got := cat.Lookup.Relations.Reprints["01516"]; got != "01016" {
		t.Fatalf("expected reprint to point at 01016, got %q", got)
	}
}

func TestLookupLevelSiblings(t *testing.T) {
	cat := New(testCards(), nil, nil, nil)
	if got := cat.Lookup.Relations.Level["01016"]; !reflect.DeepEqual(got, []string{"02226"}) {
		t.Fatalf("expected level sibling [02226], got %v", got)
	}
	if got := cat.Lookup.Relations.Level["02226"]; !reflect.DeepEqual(got, []string{"01016"}) {
		t.Fatalf("expected level sibling [01016], got %v", got)
	}
	// The reprint never joins the level chain; its canonical printing does.
	if _, ok := cat.Lookup.Relations.Level["01516"]; ok {
		t.Fatal("expected reprint to stay out of the level index")
	}
}

func TestLookupBondedByName(t *testing.T) {
	cat := New(testCards(), nil, nil, nil)
	if got := cat.Lookup.Relations.Bonded["05314"]; !reflect.DeepEqual(got, []string{"05317"}) {
		t.Fatalf("expected bonded [05317], got %v", got)
	}
}

func TestLookupParallelFronts(t *testing.T) {
	cat := New(testCards(), nil, nil, nil)
	if got := cat.Lookup.Relations.Fronts["01001"]; !reflect.DeepEqual(got, []string{"90024"}) {
		t.Fatalf("expected parallel [90024], got %v", got)
	}
	if got := cat.Lookup.Relations.Bases["90024"]; got != "01001" {
		t.Fatalf("expected base 01001, got %q", got)
	}
}

func TestLookupTraitIndexSorted(t *testing.T) {
	cat := New(testCards(), nil, nil, nil)
	if got := cat.Lookup.TraitIndex["Weapon"]; !reflect.DeepEqual(got, []string{"01016", "02226"}) {
		t.Fatalf("expected weapons [01016 02226], got %v", got)
	}
}

func TestTabooChange(t *testing.T) {
	set := &TabooSet{ID: 8, Name: "2023", Changes: []TabooChange{
		{Code: "01016", XP: intPtr(1)},
	}}
	change := set.Change("01016")
	if change == nil || *change.XP != 1 {
		t.Fatalf("expected xp override, got %+v", change)
	}
	if set.Change("99999") != nil {
		t.Fatal("expected nil change for unknown code")
	}
	var nilSet *TabooSet
	if nilSet.Change("01016") != nil {
		t.Fatal("expected nil change from nil set")
	}
}

func TestCardLevelAndWeakness(t *testing.T) {
	unleveled := &Card{Code: "x"}
	if unleveled.Level() != 0 {
		t.Fatal("expected level 0 for unleveled card")
	}
	leveled := &Card{Code: "y", XP: intPtr(3)}
	if leveled.Level() != 3 {
		t.Fatal("expected printed level 3")
	}
	weakness := &Card{Code: "z", Subtype: SubtypeBasicWeakness}
	if !weakness.IsWeakness() {
		t.Fatal("expected basic weakness to be a weakness")
	}
}

func TestMyriadMultiplier(t *testing.T) {
	plain := &Card{Code: "a"}
	if plain.MyriadMultiplier() != 1 {
		t.Fatal("expected multiplier 1 for non-myriad card")
	}
	myriad := &Card{Code: "b", Myriad: true}
	if myriad.MyriadMultiplier() != 3 {
		t.Fatal("expected default myriad multiplier 3")
	}
	printed := &Card{Code: "c", Myriad: true, Quantity: 2}
	if printed.MyriadMultiplier() != 2 {
		t.Fatal("expected printed quantity to win")
	}
}

func TestCustomizationBudget(t *testing.T) {
	card := &Card{Code: "09022", Customizations: []CustomizationOption{
		{XP: 0}, {XP: 1}, {XP: 2}, {XP: 3},
	}}
	if !card.Customizable() {
		t.Fatal("expected card to be customizable")
	}
	if card.CustomizationBudget() != 6 {
		t.Fatalf("expected budget 6, got %d", card.CustomizationBudget())
	}
}

func TestLoadFromFSSingleDump(t *testing.T) {
	fsys := fstest.MapFS{
		"catalog.json": &fstest.MapFile{Data: []byte(`{
			"cards": [{"code": "01016", "name": ".45 Automatic", "faction_code": "guardian", "type_code": "asset", "pack_code": "core", "xp": 0}],
			"packs": [{"code": "core", "name": "Core Set", "cycle_code": "core"}],
			"cycles": [{"code": "core", "name": "Core"}],
			"taboo_sets": [{"id": 8, "name": "2023", "date": "2023-08-30", "cards": [{"code": "01016", "xp": 1}]}]
		}`)},
	}
	cat, err := LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if cat.Card("01016") == nil {
		t.Fatal("expected card loaded")
	}
	if cat.TabooSet(8) == nil {
		t.Fatal("expected taboo set loaded")
	}
	if change := cat.TabooSet(8).Change("01016"); change == nil || change.XP == nil || *change.XP != 1 {
		t.Fatalf("expected taboo xp override, got %+v", change)
	}
}

func TestLoadFromFSSplitFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"cards.json": &fstest.MapFile{Data: []byte(`[{"code": "01000", "name": "Flashlight", "faction_code": "neutral", "type_code": "asset", "pack_code": "core"}]`)},
		"packs.json": &fstest.MapFile{Data: []byte(`[{"code": "core", "name": "Core Set", "cycle_code": "core"}]`)},
	}
	cat, err := LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if cat.Card("01000") == nil {
		t.Fatal("expected card loaded from split files")
	}
}

func TestLoadFromFSMissingCards(t *testing.T) {
	if _, err := LoadFromFS(fstest.MapFS{}); err == nil {
		t.Fatal("expected error when cards.json is missing")
	}
}
