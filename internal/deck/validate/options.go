package validate

import (
	"sort"

	"github.com/louisbranch/deckwright/internal/catalog"
	"github.com/louisbranch/deckwright/internal/deck"
	"github.com/louisbranch/deckwright/internal/deck/resolve"
)

const specialCardUnderworldSupport = deck.CodeUnderworldSupport

// hasSpecialCard reports whether the main slots hold the canonical card or
// any reprint of it.
func hasSpecialCard(rd *resolve.ResolvedDeck, code string) bool {
	for slotCode, entry := range rd.Groups[resolve.GroupMain] {
		if entry.Quantity <= 0 {
			continue
		}
		if slotCode == code {
			return true
		}
		if entry.Card != nil && entry.Card.Card.DuplicateOf == code {
			return true
		}
	}
	return false
}

// deckOption is a grant in effect for this deck: the investigator's own
// options plus options granted by cards in the deck (a Versatile-style card
// grants one per copy).
type deckOption struct {
	catalog.DeckOption
	// index is the option's stable position for limited-slot bucketing.
	index int
	// grantedBy is empty for investigator options.
	grantedBy string
}

// collectDeckOptions gathers the options in effect, investigator first,
// then card-granted options in code order.
func collectDeckOptions(rd *resolve.ResolvedDeck) []deckOption {
	var options []deckOption
	if back := rd.Investigator.Back; back != nil {
		for _, opt := range back.Card.DeckOptions {
			options = append(options, deckOption{DeckOption: opt, index: len(options)})
		}
	}

	codes := make([]string, 0, len(rd.Groups[resolve.GroupMain]))
	for code := range rd.Groups[resolve.GroupMain] {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		entry := rd.Groups[resolve.GroupMain][code]
		if entry.Card == nil || len(entry.Card.Card.DeckOptions) == 0 {
			continue
		}
		if entry.Card.Card.TypeCode == catalog.TypeInvestigator {
			continue
		}
		for _, opt := range entry.Card.Card.DeckOptions {
			granted := opt
			if granted.Limit > 0 {
				granted.Limit *= entry.Quantity
			}
			options = append(options, deckOption{
				DeckOption: granted,
				index:      len(options),
				grantedBy:  code,
			})
		}
	}
	return options
}

// optionMatches reports whether the option admits the card. Matching uses
// the effective level so customizable cards are judged at their purchased
// level.
func optionMatches(opt catalog.DeckOption, card *resolve.EffectiveCard, factionSelected string) bool {
	if card == nil {
		return false
	}
	def := &card.Card

	factions := opt.Factions
	if len(opt.FactionSelect) > 0 {
		if factionSelected == "" {
			return false
		}
		allowed := false
		for _, f := range opt.FactionSelect {
			if f == factionSelected {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
		factions = []string{factionSelected}
	}
	if len(factions) > 0 {
		matched := false
		for _, want := range factions {
			for _, have := range def.Factions() {
				if want == have {
					matched = true
					break
				}
			}
		}
		if !matched {
			return false
		}
	}
	if opt.Level != nil && !opt.Level.Contains(card.Level()) {
		return false
	}
	if len(opt.Traits) > 0 {
		matched := false
		for _, trait := range opt.Traits {
			if def.HasTrait(trait) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if len(opt.Tags) > 0 {
		matched := false
		for _, tag := range opt.Tags {
			if def.HasTag(tag) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// exemptFromOptions reports whether a card never consults deck options:
// weaknesses, bonded cards, investigator-restricted signatures, and cards
// under an ignore-deck-limit slot.
func exemptFromOptions(rd *resolve.ResolvedDeck, code string, card *resolve.EffectiveCard) bool {
	if card == nil {
		// Unknown codes are a data problem, reported nowhere: one missing
		// card never invalidates the rest of the deck.
		return true
	}
	if card.Card.IsWeakness() {
		return true
	}
	if rd.Deck.IgnoreDeckLimitSlots.Quantity(code) >= rd.Quantity(resolve.GroupMain, code) {
		return true
	}
	if restrictedTo(rd, card) {
		return true
	}
	back := rd.Investigator.Back
	if back != nil && back.Card.Requirements != nil {
		for _, req := range back.Card.Requirements.Cards {
			if req.Code == code || card.Card.DuplicateOf == req.Code || card.Card.AlternateOf == req.Code {
				return true
			}
		}
	}
	return false
}

// restrictedTo reports whether the card is printed for this investigator
// specifically.
func restrictedTo(rd *resolve.ResolvedDeck, card *resolve.EffectiveCard) bool {
	if card.Card.Restrictions == nil {
		return false
	}
	back := rd.Investigator.Back
	for _, code := range card.Card.Restrictions.Investigator {
		if back != nil && (back.Card.Code == code || back.Card.AlternateOf == code) {
			return true
		}
		if rd.Investigator.TransformedFrom == code || rd.Deck.InvestigatorCode == code {
			return true
		}
	}
	return false
}

// checkDeckOptions flags cards no option admits and cards a negated option
// forbids. Cards that only fit a limited option are legal here; their
// budget is enforced by checkLimitedSlots via SlotOccupation.
func checkDeckOptions(rd *resolve.ResolvedDeck, cat *catalog.Catalog) []Problem {
	options := collectDeckOptions(rd)
	if len(options) == 0 {
		return nil
	}
	selected := rd.Meta.FactionSelected

	var invalid []CardCount
	codes := sortedGroupCodes(rd, resolve.GroupMain)
	for _, code := range codes {
		entry := rd.Groups[resolve.GroupMain][code]
		if exemptFromOptions(rd, code, entry.Card) {
			continue
		}
		legal := false
		forbidden := false
		for _, opt := range options {
			if opt.AtLeast != nil {
				continue
			}
			if !optionMatches(opt.DeckOption, entry.Card, selected) {
				continue
			}
			if opt.Not {
				forbidden = true
				break
			}
			legal = true
		}
		if forbidden || !legal {
			invalid = append(invalid, CardCount{Code: code, Quantity: entry.Quantity})
		}
	}

	var problems []Problem
	if len(invalid) > 0 {
		problems = append(problems, Problem{Code: CodeInvalidCard, Cards: invalid})
	}
	problems = append(problems, checkLimitedSlots(rd)...)
	return problems
}

// checkLimitedSlots enforces every shared dynamic budget.
func checkLimitedSlots(rd *resolve.ResolvedDeck) []Problem {
	var problems []Problem
	for _, occupation := range SlotOccupation(rd) {
		used := 0
		var cards []CardCount
		for _, entry := range occupation.Entries {
			used += entry.Quantity
			cards = append(cards, CardCount{
				Code:     entry.Code,
				Quantity: entry.Quantity,
				Limit:    occupation.Limit,
			})
		}
		if used > occupation.Limit {
			problems = append(problems, Problem{
				Code:     CodeDeckOptionsLimit,
				Cards:    cards,
				Target:   occupation.Name,
				Expected: occupation.Limit,
				Actual:   used,
			})
		}
	}
	return problems
}

func sortedGroupCodes(rd *resolve.ResolvedDeck, name resolve.GroupName) []string {
	codes := make([]string, 0, len(rd.Groups[name]))
	for code := range rd.Groups[name] {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
