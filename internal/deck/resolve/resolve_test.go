package resolve

import (
	"reflect"
	"strings"
	"testing"

	"github.com/louisbranch/deckwright/internal/catalog"
	"github.com/louisbranch/deckwright/internal/deck"
	"github.com/louisbranch/deckwright/internal/platform/collation"
)

func intPtr(v int) *int { return &v }

func testCatalog() *catalog.Catalog {
	cards := []*catalog.Card{
		{Code: "01001", Name: "Roland Banks", TypeCode: catalog.TypeInvestigator, FactionCode: "guardian", PackCode: "core",
			Requirements: &catalog.DeckRequirements{Size: 30, Cards: []catalog.RequiredCard{
				{Code: "01006", Quantity: 1}, {Code: "01007", Quantity: 1},
			}}},
		{Code: "90024", Name: "Roland Banks", TypeCode: catalog.TypeInvestigator, FactionCode: "guardian", PackCode: "rtptc", AlternateOf: "01001"},
		{Code: "05001", Name: "Carolyn Fern", TypeCode: catalog.TypeInvestigator, FactionCode: "guardian", PackCode: "tcu"},
		{Code: "01006", Name: "Roland's .38 Special", TypeCode: catalog.TypeAsset, FactionCode: "neutral", PackCode: "core"},
		{Code: "01007", Name: "Cover Up", TypeCode: catalog.TypeTreachery, Subtype: catalog.SubtypeWeakness, FactionCode: "neutral", PackCode: "core"},
		{Code: "01016", Name: ".45 Automatic", TypeCode: catalog.TypeAsset, FactionCode: "guardian", XP: intPtr(0), PackCode: "core", Traits: []string{"Item", "Weapon", "Firearm"}},
		{Code: "01516", Name: ".45 Automatic", TypeCode: catalog.TypeAsset, FactionCode: "guardian", XP: intPtr(0), PackCode: "rcore", DuplicateOf: "01016"},
		{Code: "02226", Name: "Charisma", TypeCode: catalog.TypeAsset, FactionCode: "neutral", XP: intPtr(3), PackCode: "bsr", Permanent: true},
		{Code: "03264", Name: "Stick to the Plan", TypeCode: catalog.TypeAsset, FactionCode: "guardian", XP: intPtr(3), PackCode: "ptc", Permanent: true},
		{Code: "06110", Name: "Cryptic Writings", TypeCode: catalog.TypeEvent, FactionCode: "seeker", XP: intPtr(0), PackCode: "tdea", Myriad: true, Quantity: 3, DeckLimit: 3},
		{Code: "04268", Name: "The Red-Gloved Man", TypeCode: catalog.TypeAsset, FactionCode: "neutral", XP: intPtr(5), PackCode: "tfa", Exceptional: true},
		{Code: "05314", Name: "Hallowed Mirror", TypeCode: catalog.TypeAsset, FactionCode: "guardian", XP: intPtr(0), PackCode: "tde"},
		{Code: "05317", Name: "Soothing Melody", TypeCode: catalog.TypeEvent, FactionCode: "guardian", PackCode: "tde", BondedTo: "Hallowed Mirror", BondedCount: 3},
		{Code: "09022", Name: "Hunter's Armor", TypeCode: catalog.TypeAsset, FactionCode: "guardian", XP: intPtr(0), PackCode: "tsk",
			Customizations: []catalog.CustomizationOption{
				{XP: 1, TextEdit: "It gets +1 health."},
				{XP: 2, TextEdit: "It gets +2 sanity."},
				{XP: 3},
			}},
	}
	packs := []*catalog.Pack{
		{Code: "core", Name: "Core Set", CycleCode: "core"},
		{Code: "rcore", Name: "Revised Core Set", CycleCode: "rcore"},
	}
	taboos := []*catalog.TabooSet{
		{ID: 8, Name: "2023", Changes: []catalog.TabooChange{
			{Code: "01016", XP: intPtr(2)},
		}},
	}
	return catalog.New(cards, packs, nil, taboos)
}

func resolveTestDeck(t *testing.T, record deck.Deck) *ResolvedDeck {
	t.Helper()
	return Deck(testCatalog(), collation.New("en"), record)
}

func TestDeckResolvesGroups(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Slots:            deck.Slots{"01016": 2, "01006": 1, "01007": 1},
		SideSlots:        deck.Slots{"02226": 1},
		ExileString:      "01016",
	})

	if rd.Quantity(GroupMain, "01016") != 2 {
		t.Fatalf("expected 2 copies in main, got %d", rd.Quantity(GroupMain, "01016"))
	}
	if rd.Quantity(GroupSide, "02226") != 1 {
		t.Fatal("expected side slot resolved")
	}
	if rd.Quantity(GroupExile, "01016") != 1 {
		t.Fatal("expected exile string expanded")
	}
	if rd.Investigator.Front == nil || rd.Investigator.Front.Card.Code != "01001" {
		t.Fatal("expected investigator resolved")
	}
}

func TestDeckOrderUsesCollation(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Slots:            deck.Slots{"03264": 1, "01016": 1, "02226": 1},
	})
	// .45 Automatic, Charisma, Stick to the Plan.
	want := []string{"01016", "02226", "03264"}
	if !reflect.DeepEqual(rd.Order[GroupMain], want) {
		t.Fatalf("expected order %v, got %v", want, rd.Order[GroupMain])
	}
}

func TestDeckUnknownCodesResolveToAbsentEntries(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Slots:            deck.Slots{"99999": 2},
	})
	entry := rd.Groups[GroupMain]["99999"]
	if entry.Card != nil {
		t.Fatal("expected unknown code to resolve nil card")
	}
	if entry.Quantity != 2 {
		t.Fatal("expected quantity preserved for unknown code")
	}
}

func TestTabooOverridesLevel(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		TabooSetID:       intPtr(8),
		Slots:            deck.Slots{"01016": 2},
	})
	card := rd.Groups[GroupMain]["01016"].Card
	if !card.TabooApplied {
		t.Fatal("expected taboo applied")
	}
	if card.Level() != 2 {
		t.Fatalf("expected taboo level 2, got %d", card.Level())
	}
	if rd.TabooSet == nil || rd.TabooSet.ID != 8 {
		t.Fatal("expected taboo set attached to resolution")
	}
	// XP cost follows the overridden level.
	if rd.Stats.XPRequired != 4 {
		t.Fatalf("expected 4 xp under taboo, got %d", rd.Stats.XPRequired)
	}
}

func TestCustomizationDrivesLevelAndText(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Slots:            deck.Slots{"09022": 1},
		Meta:             "cus_09022=0|1,1|2",
	})
	card := rd.Groups[GroupMain]["09022"].Card
	// 3 XP spent, level is half rounded up.
	if card.Level() != 2 {
		t.Fatalf("expected customization level 2, got %d", card.Level())
	}
	if !strings.Contains(card.Card.Text, "+1 health") || !strings.Contains(card.Card.Text, "+2 sanity") {
		t.Fatalf("expected purchased text edits applied, got %q", card.Card.Text)
	}
	rows := rd.Customizations["09022"]
	if len(rows) != 2 {
		t.Fatalf("expected 2 resolved rows, got %d", len(rows))
	}
	if !rows[0].Unlocked || !rows[1].Unlocked {
		t.Fatal("expected fully purchased rows unlocked")
	}
	if rd.Stats.XPRequired != 3 {
		t.Fatalf("expected 3 xp for customizations, got %d", rd.Stats.XPRequired)
	}
}

func TestPartialCustomizationStaysLocked(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Slots:            deck.Slots{"09022": 1},
		Meta:             "cus_09022=1|1",
	})
	card := rd.Groups[GroupMain]["09022"].Card
	if card.Level() != 1 {
		t.Fatalf("expected level 1 from 1 xp, got %d", card.Level())
	}
	if strings.Contains(card.Card.Text, "+2 sanity") {
		t.Fatal("expected partially purchased text edit withheld")
	}
	if rd.Customizations["09022"][0].Unlocked {
		t.Fatal("expected partial row locked")
	}
}

func TestBondedGroupDerived(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Slots:            deck.Slots{"05314": 2},
	})
	entry := rd.Groups[GroupBonded]["05317"]
	if entry.Card == nil {
		t.Fatal("expected bonded card resolved")
	}
	if entry.Quantity != 3 {
		t.Fatalf("expected bonded count 3, got %d", entry.Quantity)
	}
}

func TestPreferredPrintingRespectsCardPool(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Slots:            deck.Slots{"01016": 1},
		Meta:             "card_pool=core",
	})
	card := rd.Groups[GroupMain]["01016"].Card
	if card.Card.Code != "01016" {
		t.Fatalf("expected core printing under core-only pool, got %s", card.Card.Code)
	}

	rd = resolveTestDeck(t, deck.Deck{
		ID:               "d2",
		InvestigatorCode: "01001",
		Slots:            deck.Slots{"01016": 1},
	})
	card = rd.Groups[GroupMain]["01016"].Card
	if card.Card.Code != "01516" {
		t.Fatalf("expected newest printing without a pool, got %s", card.Card.Code)
	}
	if card.Original.Code != "01016" {
		t.Fatal("expected original to stay the canonical printing")
	}
}

func TestAlternateFrontHonored(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Meta:             "alternate_front=90024",
	})
	if rd.Investigator.Front.Card.Code != "90024" {
		t.Fatalf("expected parallel front, got %s", rd.Investigator.Front.Card.Code)
	}
	if rd.Investigator.Back.Card.Code != "01001" {
		t.Fatalf("expected original back, got %s", rd.Investigator.Back.Card.Code)
	}
}

func TestAlternateFrontRejectsUnrelatedCard(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Meta:             "alternate_front=05001",
	})
	if rd.Investigator.Front.Card.Code != "01001" {
		t.Fatalf("expected unrelated override ignored, got %s", rd.Investigator.Front.Card.Code)
	}
}

func TestTransformIntoReplacesInvestigator(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Meta:             "transform_into=05001",
	})
	if rd.Investigator.Front.Card.Code != "05001" {
		t.Fatalf("expected transformed investigator, got %s", rd.Investigator.Front.Card.Code)
	}
	if rd.Investigator.TransformedFrom != "01001" {
		t.Fatalf("expected original recorded, got %q", rd.Investigator.TransformedFrom)
	}
}

func TestStatsExclusions(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Slots: deck.Slots{
			"01016": 2, // counts
			"01006": 1, // signature requirement, excluded
			"01007": 1, // weakness, excluded
			"02226": 1, // permanent, excluded
		},
		IgnoreDeckLimitSlots: deck.Slots{"01016": 1},
	})
	if rd.Stats.DeckSizeTotal != 5 {
		t.Fatalf("expected total 5, got %d", rd.Stats.DeckSizeTotal)
	}
	// One counted copy of 01016 after the ignored copy is excluded.
	if rd.Stats.DeckSize != 1 {
		t.Fatalf("expected deck size 1, got %d", rd.Stats.DeckSize)
	}
}

func TestStatsExceptionalXP(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Slots: deck.Slots{
			"03264": 1, // level 3 permanent
			"04268": 1, // level 5 exceptional
		},
	})
	// 3 + 5*2 = 13.
	if rd.Stats.XPRequired != 13 {
		t.Fatalf("expected 13 xp, got %d", rd.Stats.XPRequired)
	}
}

func TestEntryXPMyriadStacks(t *testing.T) {
	card := &EffectiveCard{Card: catalog.Card{
		Code: "x", XP: intPtr(2), Myriad: true, Quantity: 3,
	}}
	// Six printed copies are two logical purchases.
	if got := entryXP(Entry{Card: card, Quantity: 6}); got != 4 {
		t.Fatalf("expected 4 xp for two myriad stacks, got %d", got)
	}
	// A partial stack still costs a full purchase.
	if got := entryXP(Entry{Card: card, Quantity: 4}); got != 4 {
		t.Fatalf("expected 4 xp for a partial second stack, got %d", got)
	}
}

func TestAvailableAttachments(t *testing.T) {
	rd := resolveTestDeck(t, deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Slots:            deck.Slots{"03264": 1},
	})
	if len(rd.Attachments) != 1 || rd.Attachments[0].Code != "03264" {
		t.Fatalf("expected stick to the plan host, got %+v", rd.Attachments)
	}

	def := rd.Attachments[0]
	event := &catalog.Card{Code: "x", TypeCode: catalog.TypeEvent, Traits: []string{"Tactic"}}
	if !def.Accepts(event) {
		t.Fatal("expected tactic event accepted")
	}
	asset := &catalog.Card{Code: "y", TypeCode: catalog.TypeAsset, Traits: []string{"Tactic"}}
	if def.Accepts(asset) {
		t.Fatal("expected non-event rejected")
	}
}

func TestDeckResolutionIsDeterministic(t *testing.T) {
	record := deck.Deck{
		ID:               "d1",
		InvestigatorCode: "01001",
		Slots:            deck.Slots{"01016": 2, "03264": 1, "02226": 1, "09022": 1},
		Meta:             "cus_09022=0|1",
	}
	first := resolveTestDeck(t, record)
	for i := 0; i < 10; i++ {
		again := resolveTestDeck(t, record)
		if !reflect.DeepEqual(first.Order, again.Order) {
			t.Fatalf("order not deterministic: %v vs %v", first.Order, again.Order)
		}
		if first.Stats != again.Stats {
			t.Fatalf("stats not deterministic: %+v vs %+v", first.Stats, again.Stats)
		}
	}
}
