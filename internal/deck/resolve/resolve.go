package resolve

import (
	"sort"

	"github.com/louisbranch/deckwright/internal/catalog"
	"github.com/louisbranch/deckwright/internal/deck"
	"github.com/louisbranch/deckwright/internal/deck/meta"
	"github.com/louisbranch/deckwright/internal/platform/collation"
)

// GroupName identifies one resolved slot group.
type GroupName string

const (
	GroupMain            GroupName = "slots"
	GroupSide            GroupName = "sideSlots"
	GroupBonded          GroupName = "bondedSlots"
	GroupExtra           GroupName = "extraSlots"
	GroupExile           GroupName = "exileSlots"
	GroupIgnoreDeckLimit GroupName = "ignoreDeckLimitSlots"
)

// Entry pairs an effective card with its in-group quantity.
type Entry struct {
	Card     *EffectiveCard
	Quantity int
}

// Group maps card codes to entries within one slot group.
type Group map[string]Entry

// Investigator is the resolved front/back pair, honoring parallel-side
// overrides and full transforms.
type Investigator struct {
	Front *EffectiveCard
	Back  *EffectiveCard
	// TransformedFrom holds the original code when a transform_into
	// override replaced the investigator entirely.
	TransformedFrom string
}

// ResolvedCustomization types a ledger entry against its option definition.
type ResolvedCustomization struct {
	Index      int
	XPSpent    int
	Selections []string
	Option     catalog.CustomizationOption
	// Unlocked reports whether the option is fully purchased.
	Unlocked bool
}

// Stats are the deck's computed aggregates.
type Stats struct {
	// DeckSize counts cards against the required size; weaknesses,
	// permanents, signature requirements, and ignored slots are excluded.
	DeckSize int
	// DeckSizeTotal counts every card in the main slots.
	DeckSizeTotal int
	// XPRequired is the experience needed to build the deck as listed.
	XPRequired int
}

// ResolvedDeck is the immutable display-ready projection of a deck record.
// It is constructed fresh on every resolve; callers never mutate it.
type ResolvedDeck struct {
	Deck deck.Deck
	Meta meta.Meta

	Investigator Investigator
	Groups       map[GroupName]Group
	// Order lists each group's codes in collator order by card name.
	Order map[GroupName][]string

	Customizations map[string][]ResolvedCustomization
	Attachments    []AttachmentDef
	Annotations    map[string]string

	Stats    Stats
	TabooSet *catalog.TabooSet
}

// Quantity returns the quantity of code within the named group.
func (r *ResolvedDeck) Quantity(group GroupName, code string) int {
	return r.Groups[group][code].Quantity
}

// Deck resolves the record against the catalog: decode meta, resolve the
// investigator, resolve every slot group, and assemble aggregates. Unknown
// card codes resolve to absent entries rather than failing the deck.
func Deck(cat *catalog.Catalog, coll collation.Collator, record deck.Deck) *ResolvedDeck {
	decoded := meta.Decode(record.Meta)
	resolver := NewCardResolver(cat, record.TabooSetID, decoded.CardPool)

	rd := &ResolvedDeck{
		Deck:        record.Clone(),
		Meta:        decoded,
		Groups:      map[GroupName]Group{},
		Order:       map[GroupName][]string{},
		Annotations: decoded.Annotations,
	}
	if record.TabooSetID != nil {
		rd.TabooSet = cat.TabooSet(*record.TabooSetID)
	}

	rd.Investigator = resolveInvestigator(resolver, record.InvestigatorCode, decoded)

	rd.Groups[GroupMain] = resolveGroup(resolver, record.Slots, decoded)
	rd.Groups[GroupSide] = resolveGroup(resolver, record.SideSlots, decoded)
	rd.Groups[GroupIgnoreDeckLimit] = resolveGroup(resolver, record.IgnoreDeckLimitSlots, decoded)
	rd.Groups[GroupExtra] = resolveGroup(resolver, decoded.ExtraDeck, decoded)
	rd.Groups[GroupExile] = resolveGroup(resolver, record.ExiledSlots(), decoded)
	rd.Groups[GroupBonded] = resolveBonded(cat, resolver, rd.Groups[GroupMain], decoded)

	rd.Customizations = resolveCustomizations(cat, decoded)
	rd.Attachments = availableAttachments(rd)
	rd.Stats = computeStats(rd)

	for name, group := range rd.Groups {
		rd.Order[name] = sortedCodes(group, coll)
	}
	return rd
}

func resolveGroup(resolver *CardResolver, slots map[string]int, decoded meta.Meta) Group {
	group := Group{}
	for code, qty := range slots {
		if qty <= 0 {
			continue
		}
		group[code] = Entry{
			Card:     resolver.Resolve(code, decoded.Customizations[code]),
			Quantity: qty,
		}
	}
	return group
}

// resolveBonded derives the bonded group from the main slots through the
// catalog's bonded relation; bonded cards are never listed in the record.
func resolveBonded(cat *catalog.Catalog, resolver *CardResolver, main Group, decoded meta.Meta) Group {
	group := Group{}
	for code := range main {
		for _, bondedCode := range cat.Lookup.Relations.Bonded[code] {
			bonded := resolver.Resolve(bondedCode, decoded.Customizations[bondedCode])
			if bonded == nil {
				continue
			}
			qty := bonded.Card.BondedCount
			if qty <= 0 {
				qty = 1
			}
			group[bondedCode] = Entry{Card: bonded, Quantity: qty}
		}
	}
	return group
}

func resolveCustomizations(cat *catalog.Catalog, decoded meta.Meta) map[string][]ResolvedCustomization {
	if len(decoded.Customizations) == 0 {
		return nil
	}
	out := map[string][]ResolvedCustomization{}
	for code, entries := range decoded.Customizations {
		card := cat.Card(code)
		if card == nil {
			continue
		}
		resolved := make([]ResolvedCustomization, 0, len(entries))
		for _, entry := range entries {
			if entry.Index < 0 || entry.Index >= len(card.Customizations) {
				continue
			}
			option := card.Customizations[entry.Index]
			resolved = append(resolved, ResolvedCustomization{
				Index:      entry.Index,
				XPSpent:    entry.XPSpent,
				Selections: append([]string(nil), entry.Selections...),
				Option:     option,
				Unlocked:   entry.XPSpent >= option.XP,
			})
		}
		if len(resolved) > 0 {
			out[code] = resolved
		}
	}
	return out
}

func sortedCodes(group Group, coll collation.Collator) []string {
	codes := make([]string, 0, len(group))
	for code := range group {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		a, b := group[codes[i]], group[codes[j]]
		nameA, nameB := codes[i], codes[j]
		if a.Card != nil {
			nameA = a.Card.Card.Name
		}
		if b.Card != nil {
			nameB = b.Card.Card.Name
		}
		if coll != nil {
			if cmp := coll.Compare(nameA, nameB); cmp != 0 {
				return cmp < 0
			}
		} else if nameA != nameB {
			return nameA < nameB
		}
		return codes[i] < codes[j]
	})
	return codes
}
