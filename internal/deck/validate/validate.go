package validate

import (
	"sort"

	"github.com/louisbranch/deckwright/internal/catalog"
	"github.com/louisbranch/deckwright/internal/deck/resolve"
)

// check is one independent rule family. Checks take only the resolved deck
// and the catalog; there is no hidden state to make two runs differ.
type check func(rd *resolve.ResolvedDeck, cat *catalog.Catalog) []Problem

var checks = []check{
	checkInvestigator,
	checkDeckSize,
	checkDeckLimits,
	checkRequiredCards,
	checkDeckOptions,
	checkAtLeast,
	checkCustomizations,
	checkCardPool,
	checkExtraDeckSize,
}

// Deck runs every rule check and collects their problems. The result is a
// pure function of its inputs: validating the same resolved deck twice
// yields identical results.
func Deck(rd *resolve.ResolvedDeck, cat *catalog.Catalog) Result {
	var problems []Problem
	for _, run := range checks {
		problems = append(problems, run(rd, cat)...)
	}
	return Result{Valid: len(problems) == 0, Problems: problems}
}

func checkInvestigator(rd *resolve.ResolvedDeck, cat *catalog.Catalog) []Problem {
	back := rd.Investigator.Back
	if back == nil || back.Card.TypeCode != catalog.TypeInvestigator {
		return []Problem{{Code: CodeInvalidInvestigator, Target: rd.Deck.InvestigatorCode}}
	}
	return nil
}

// checkDeckSize compares the counted deck size against the investigator's
// required size plus every in-deck size modifier.
func checkDeckSize(rd *resolve.ResolvedDeck, cat *catalog.Catalog) []Problem {
	back := rd.Investigator.Back
	if back == nil || back.Card.Requirements == nil {
		return nil
	}
	required := back.Card.Requirements.Size
	for _, entry := range rd.Groups[resolve.GroupMain] {
		if entry.Card != nil && entry.Card.Card.DeckSizeModifier != 0 {
			required += entry.Card.Card.DeckSizeModifier * entry.Quantity
		}
	}
	if required < 0 {
		required = 0
	}
	size := rd.Stats.DeckSize
	switch {
	case size < required:
		return []Problem{{Code: CodeTooFewCards, Expected: required, Actual: size}}
	case size > required:
		return []Problem{{Code: CodeTooManyCards, Expected: required, Actual: size}}
	}
	return nil
}

// checkDeckLimits enforces per-card copy limits, grouping printings by name
// and subname so reprints and leveled versions share one limit. Myriad
// stacks count once per logical copy. An Underworld-Support-style card
// tightens every limit to one copy per title.
func checkDeckLimits(rd *resolve.ResolvedDeck, cat *catalog.Catalog) []Problem {
	type groupCount struct {
		count int
		limit int
		codes []string
	}
	groups := map[string]*groupCount{}
	oneCopyPerTitle := underworldSupportActive(rd)

	for code, entry := range rd.Groups[resolve.GroupMain] {
		if entry.Card == nil {
			continue
		}
		card := &entry.Card.Card
		if card.IsWeakness() {
			continue
		}

		qty := entry.Quantity
		if ignored := rd.Deck.IgnoreDeckLimitSlots.Quantity(code); ignored > 0 {
			qty -= ignored
		}
		if qty <= 0 {
			continue
		}
		logical := qty
		if card.Myriad {
			multiplier := card.MyriadMultiplier()
			logical = (qty + multiplier - 1) / multiplier
		}

		limit := card.DeckLimit
		if limit <= 0 {
			limit = 1
		}
		if card.Myriad {
			limit = 1
		}
		if oneCopyPerTitle {
			limit = 1
			logical = qty
		}

		key := card.Name + "\x00" + card.Subname
		group, ok := groups[key]
		if !ok {
			group = &groupCount{limit: limit}
			groups[key] = group
		}
		group.count += logical
		if limit > group.limit && !oneCopyPerTitle {
			group.limit = limit
		}
		group.codes = append(group.codes, code)
	}

	var problems []Problem
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		group := groups[key]
		if group.count <= group.limit {
			continue
		}
		sort.Strings(group.codes)
		cards := make([]CardCount, 0, len(group.codes))
		for _, code := range group.codes {
			cards = append(cards, CardCount{
				Code:     code,
				Quantity: rd.Quantity(resolve.GroupMain, code),
				Limit:    group.limit,
			})
		}
		problems = append(problems, Problem{
			Code:     CodeTooManyCopies,
			Cards:    cards,
			Expected: group.limit,
			Actual:   group.count,
		})
	}
	return problems
}

// underworldSupportActive is the named predicate for the one-copy-per-title
// deckbuilding restriction.
func underworldSupportActive(rd *resolve.ResolvedDeck) bool {
	return hasSpecialCard(rd, specialCardUnderworldSupport)
}

// checkRequiredCards verifies signature-card presence with exact
// quantities. A requirement is satisfied by the named code or by any of its
// variants: reprints, parallel versions, and replacement/advanced
// signatures linked through the catalog relations.
func checkRequiredCards(rd *resolve.ResolvedDeck, cat *catalog.Catalog) []Problem {
	back := rd.Investigator.Back
	if back == nil || back.Card.Requirements == nil {
		return nil
	}
	var problems []Problem
	for _, req := range back.Card.Requirements.Cards {
		want := req.Quantity
		if want <= 0 {
			want = 1
		}
		have := 0
		for _, code := range requirementVariants(cat, req.Code) {
			have += rd.Quantity(resolve.GroupMain, code)
		}
		if have != want {
			problems = append(problems, Problem{
				Code:     CodeMissingRequiredCard,
				Target:   req.Code,
				Expected: want,
				Actual:   have,
			})
		}
	}
	return problems
}

func requirementVariants(cat *catalog.Catalog, code string) []string {
	variants := []string{code}
	variants = append(variants, cat.Lookup.Relations.Duplicates[code]...)
	variants = append(variants, cat.Lookup.Relations.Fronts[code]...)
	return variants
}

// checkExtraDeckSize verifies the secondary deck holds exactly the size the
// investigator demands.
func checkExtraDeckSize(rd *resolve.ResolvedDeck, cat *catalog.Catalog) []Problem {
	back := rd.Investigator.Back
	if back == nil || back.Card.ExtraDeckSize <= 0 {
		return nil
	}
	total := 0
	for _, entry := range rd.Groups[resolve.GroupExtra] {
		total += entry.Quantity
	}
	if total == back.Card.ExtraDeckSize {
		return nil
	}
	return []Problem{{
		Code:     CodeExtraDeckSizeMismatch,
		Expected: back.Card.ExtraDeckSize,
		Actual:   total,
	}}
}
