package resolve

// computeStats aggregates deck size and experience requirements. Rules:
// weaknesses, permanents, and the investigator's required signature cards
// occupy the deck without counting toward its required size, and copies
// listed under ignoreDeckLimitSlots are excluded as well.
func computeStats(rd *ResolvedDeck) Stats {
	stats := Stats{}
	required := requiredCodes(rd)

	for code, entry := range rd.Groups[GroupMain] {
		stats.DeckSizeTotal += entry.Quantity

		counted := entry.Quantity
		if ignored := rd.Deck.IgnoreDeckLimitSlots.Quantity(code); ignored > 0 {
			counted -= ignored
			if counted < 0 {
				counted = 0
			}
		}
		if entry.Card != nil {
			card := &entry.Card.Card
			if card.IsWeakness() || card.Permanent || required[code] {
				counted = 0
			}
		}
		stats.DeckSize += counted

		stats.XPRequired += entryXP(entry)
	}
	for _, entry := range rd.Groups[GroupExtra] {
		stats.XPRequired += entryXP(entry)
	}
	for _, rows := range rd.Customizations {
		for _, row := range rows {
			stats.XPRequired += row.XPSpent
		}
	}
	return stats
}

// entryXP is the experience needed to include the entry when building the
// deck from scratch. Myriad stacks cost once per logical copy; exceptional
// doubles the printed level.
func entryXP(entry Entry) int {
	if entry.Card == nil || entry.Card.Card.XP == nil {
		return 0
	}
	card := &entry.Card.Card
	level := card.Level()
	if level == 0 {
		return 0
	}
	copies := entry.Quantity
	if card.Myriad {
		multiplier := card.MyriadMultiplier()
		copies = (copies + multiplier - 1) / multiplier
	}
	cost := level * copies
	if card.Exceptional {
		cost *= 2
	}
	return cost
}

// requiredCodes collects the signature codes the investigator's back side
// demands, including replacement and advanced variants.
func requiredCodes(rd *ResolvedDeck) map[string]bool {
	out := map[string]bool{}
	back := rd.Investigator.Back
	if back == nil || back.Card.Requirements == nil {
		return out
	}
	for _, req := range back.Card.Requirements.Cards {
		out[req.Code] = true
	}
	return out
}
