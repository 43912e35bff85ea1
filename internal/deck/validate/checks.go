package validate

import (
	"sort"
	"strings"

	"github.com/louisbranch/deckwright/internal/catalog"
	"github.com/louisbranch/deckwright/internal/deck/resolve"
)

// checkAtLeast enforces "at least N cards from each of M factions" options.
func checkAtLeast(rd *resolve.ResolvedDeck, cat *catalog.Catalog) []Problem {
	var problems []Problem
	for _, opt := range collectDeckOptions(rd) {
		if opt.AtLeast == nil {
			continue
		}
		counts := map[string]int{}
		for _, code := range sortedGroupCodes(rd, resolve.GroupMain) {
			entry := rd.Groups[resolve.GroupMain][code]
			if entry.Card == nil || entry.Card.Card.IsWeakness() {
				continue
			}
			for _, faction := range entry.Card.Card.Factions() {
				if faction == "neutral" {
					continue
				}
				if len(opt.Factions) > 0 && !containsString(opt.Factions, faction) {
					continue
				}
				counts[faction] += entry.Quantity
			}
		}
		satisfied := 0
		for _, count := range counts {
			if count >= opt.AtLeast.Min {
				satisfied++
			}
		}
		if satisfied < opt.AtLeast.FactionCount {
			problems = append(problems, Problem{
				Code:     CodeAtLeastUnmet,
				Target:   opt.Name,
				Expected: opt.AtLeast.FactionCount,
				Actual:   satisfied,
			})
		}
	}
	return problems
}

// checkCustomizations verifies every ledger entry against the option
// definitions: spent XP within the option's cost, cumulative spend within
// the card's budget, and the resulting level within a range some deck
// option grants for the card's faction.
func checkCustomizations(rd *resolve.ResolvedDeck, cat *catalog.Catalog) []Problem {
	if len(rd.Meta.Customizations) == 0 {
		return nil
	}
	options := collectDeckOptions(rd)
	selected := rd.Meta.FactionSelected

	var problems []Problem
	for _, code := range sortedMapKeys(rd.Meta.Customizations) {
		card := cat.Card(code)
		if card == nil || !card.Customizable() {
			continue
		}
		total := 0
		overspent := false
		for _, entry := range rd.Meta.Customizations[code] {
			if entry.Index < 0 || entry.Index >= len(card.Customizations) {
				continue
			}
			if entry.XPSpent > card.Customizations[entry.Index].XP {
				overspent = true
			}
			total += entry.XPSpent
		}
		if overspent || total > card.CustomizationBudget() {
			problems = append(problems, Problem{
				Code:     CodeInvalidCustomization,
				Target:   code,
				Expected: card.CustomizationBudget(),
				Actual:   total,
			})
			continue
		}

		entry, inDeck := rd.Groups[resolve.GroupMain][code]
		if !inDeck || entry.Card == nil {
			continue
		}
		admitted := false
		for _, opt := range options {
			if opt.Not || opt.AtLeast != nil {
				continue
			}
			if optionMatches(opt.DeckOption, entry.Card, selected) {
				admitted = true
				break
			}
		}
		if !admitted {
			problems = append(problems, Problem{
				Code:   CodeInvalidCustomization,
				Target: code,
				Actual: entry.Card.Level(),
			})
		}
	}
	return problems
}

// checkCardPool enforces card-pool and sealed-deck legality. Every
// non-basic-weakness card above level zero must trace to an allowed pack
// (any printing counts) or to a sealed-deck entry within its cap.
func checkCardPool(rd *resolve.ResolvedDeck, cat *catalog.Catalog) []Problem {
	pool := rd.Meta.CardPool
	sealed := rd.Meta.SealedDeck
	if len(pool) == 0 && len(sealed) == 0 {
		return nil
	}

	var poolViolations []CardCount
	var sealedViolations []CardCount
	for _, code := range sortedGroupCodes(rd, resolve.GroupMain) {
		entry := rd.Groups[resolve.GroupMain][code]
		if entry.Card == nil {
			continue
		}
		card := &entry.Card.Card
		if card.Subtype == catalog.SubtypeBasicWeakness || entry.Card.Level() == 0 {
			continue
		}

		if len(sealed) > 0 {
			allowed, listed := sealed[code]
			if !listed {
				sealedViolations = append(sealedViolations, CardCount{Code: code, Quantity: entry.Quantity})
			} else if entry.Quantity > allowed {
				sealedViolations = append(sealedViolations, CardCount{Code: code, Quantity: entry.Quantity, Limit: allowed})
			}
			continue
		}

		if !inCardPool(cat, pool, entry.Card) {
			poolViolations = append(poolViolations, CardCount{Code: code, Quantity: entry.Quantity})
		}
	}

	var problems []Problem
	if len(poolViolations) > 0 {
		problems = append(problems, Problem{Code: CodeCardPoolViolation, Cards: poolViolations})
	}
	if len(sealedViolations) > 0 {
		problems = append(problems, Problem{
			Code:   CodeSealedDeckViolation,
			Cards:  sealedViolations,
			Target: rd.Meta.SealedDeckName,
		})
	}
	return problems
}

// inCardPool reports whether any printing of the card belongs to a pack the
// pool allows. Tokens name packs directly, cycles as "cycle:<code>", or
// individual cards as "card:<code>".
func inCardPool(cat *catalog.Catalog, pool []string, card *resolve.EffectiveCard) bool {
	printings := []string{card.Card.Code}
	printings = append(printings, card.OtherVersions...)
	if canonical := card.Card.DuplicateOf; canonical != "" {
		printings = append(printings, canonical)
		printings = append(printings, cat.Lookup.Relations.Duplicates[canonical]...)
	}

	for _, token := range pool {
		if code, ok := strings.CutPrefix(token, "card:"); ok {
			for _, printing := range printings {
				if printing == code {
					return true
				}
			}
			continue
		}
		cycle, isCycle := strings.CutPrefix(token, "cycle:")
		for _, printing := range printings {
			def := cat.Card(printing)
			if def == nil {
				continue
			}
			if isCycle {
				if pack := cat.Pack(def.PackCode); pack != nil && pack.CycleCode == cycle {
					return true
				}
				continue
			}
			if def.PackCode == token {
				return true
			}
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
