package resolve

import "github.com/louisbranch/deckwright/internal/catalog"

// AttachmentFilter restricts which cards a host accepts.
type AttachmentFilter struct {
	Traits   []string
	Types    []catalog.CardType
	MaxLevel int
	// LevelBound is set when MaxLevel participates in matching; a zero
	// MaxLevel otherwise means "no bound".
	LevelBound bool
}

// AttachmentDef describes one card (or investigator) that hosts other cards
// from the deck, with the host's capacity and acceptance filter.
type AttachmentDef struct {
	// Code is the host card's code.
	Code   string
	Name   string
	Limit  int
	Filter AttachmentFilter
}

// Accepts reports whether the filter admits the card.
func (d AttachmentDef) Accepts(card *catalog.Card) bool {
	if card == nil {
		return false
	}
	if len(d.Filter.Types) > 0 {
		matched := false
		for _, t := range d.Filter.Types {
			if card.TypeCode == t {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if len(d.Filter.Traits) > 0 {
		matched := false
		for _, trait := range d.Filter.Traits {
			if card.HasTrait(trait) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	if d.Filter.LevelBound && card.Level() > d.Filter.MaxLevel {
		return false
	}
	return true
}

// attachmentDefs is the fixed table of hosting cards in the ruleset.
var attachmentDefs = []AttachmentDef{
	{
		Code:  "03264", // Stick to the Plan
		Name:  "Stick to the Plan",
		Limit: 3,
		Filter: AttachmentFilter{
			Types:  []catalog.CardType{catalog.TypeEvent},
			Traits: []string{"Tactic", "Supply"},
		},
	},
	{
		Code:  "05002", // Joe Diamond's hunch deck
		Name:  "Hunch Deck",
		Limit: 11,
		Filter: AttachmentFilter{
			Types:  []catalog.CardType{catalog.TypeEvent},
			Traits: []string{"Insight"},
		},
	},
	{
		Code:  "09077", // Underworld Market
		Name:  "Underworld Market",
		Limit: 10,
		Filter: AttachmentFilter{
			Traits: []string{"Illicit"},
		},
	},
	{
		Code:  "10079", // Bewitching
		Name:  "Bewitching",
		Limit: 3,
		Filter: AttachmentFilter{
			Types:  []catalog.CardType{catalog.TypeEvent},
			Traits: []string{"Trick"},
		},
	},
}

// availableAttachments returns the definitions whose host is in the main
// slots or is the investigator itself.
func availableAttachments(rd *ResolvedDeck) []AttachmentDef {
	var defs []AttachmentDef
	for _, def := range attachmentDefs {
		if _, inDeck := rd.Groups[GroupMain][def.Code]; inDeck {
			defs = append(defs, def)
			continue
		}
		if front := rd.Investigator.Front; front != nil && front.Card.Code == def.Code {
			defs = append(defs, def)
			continue
		}
		if back := rd.Investigator.Back; back != nil && back.Card.Code == def.Code {
			defs = append(defs, def)
		}
	}
	return defs
}
