package validate

import (
	"github.com/louisbranch/deckwright/internal/deck/resolve"
)

// OccupationEntry is one card consuming budget units.
type OccupationEntry struct {
	Code     string
	Card     *resolve.EffectiveCard
	Quantity int
}

// Occupation reports how one shared dynamic budget is consumed: which
// option defines it, its unit cap, and the cards drawing from it.
type Occupation struct {
	// Index is the option's position within the deck's collected options.
	Index int
	Name  string
	Limit int
	// Entries lists consuming cards in code order.
	Entries []OccupationEntry
}

// SlotOccupation determines, for decks whose rules grant shared dynamic
// budgets, how many budget units are consumed and by which cards. A card
// consumes budget only when no unlimited option admits it. Returns nil when
// the deck has no limited options.
func SlotOccupation(rd *resolve.ResolvedDeck) []Occupation {
	options := collectDeckOptions(rd)
	var limited []deckOption
	for _, opt := range options {
		if opt.Limit > 0 && opt.AtLeast == nil && !opt.Not {
			limited = append(limited, opt)
		}
	}
	if len(limited) == 0 {
		return nil
	}
	selected := rd.Meta.FactionSelected

	occupations := make([]Occupation, len(limited))
	for i, opt := range limited {
		occupations[i] = Occupation{Index: opt.index, Name: opt.Name, Limit: opt.Limit}
	}

	for _, code := range sortedGroupCodes(rd, resolve.GroupMain) {
		entry := rd.Groups[resolve.GroupMain][code]
		if exemptFromOptions(rd, code, entry.Card) {
			continue
		}

		// Cards an unlimited option admits never touch a budget.
		free := false
		for _, opt := range options {
			if opt.Limit > 0 || opt.Not || opt.AtLeast != nil {
				continue
			}
			if optionMatches(opt.DeckOption, entry.Card, selected) {
				free = true
				break
			}
		}
		if free {
			continue
		}

		for i, opt := range limited {
			if !optionMatches(opt.DeckOption, entry.Card, selected) {
				continue
			}
			occupations[i].Entries = append(occupations[i].Entries, OccupationEntry{
				Code:     code,
				Card:     entry.Card,
				Quantity: entry.Quantity,
			})
			break
		}
	}
	return occupations
}
