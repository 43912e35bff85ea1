// Package upgrade computes the experience ledger explaining the difference
// between two versions of the same deck: which cards were added, removed,
// upgraded, or repurchased after exile, and how much XP the transition
// cost once every discount and penalty modifier is applied in its fixed
// precedence.
//
// The engine's central invariant is that XPSpent equals the next deck's
// stated spent-XP field for every legal transition. When no discount
// combination reconciles the two, the computed total is still returned:
// a mismatch is a data problem in the input decks for the caller to
// surface, never a runtime error.
package upgrade

import (
	"github.com/louisbranch/deckwright/internal/deck/resolve"
)

// CustomizationDelta is the XP newly spent on one option index.
type CustomizationDelta struct {
	Index   int
	XPDelta int
}

// ChangeStats is the computed difference between two deck versions.
type ChangeStats struct {
	// Slots, ExtraSlots, and ExileSlots map codes to quantity deltas
	// (positive = added in the next version).
	Slots      map[string]int
	ExtraSlots map[string]int
	ExileSlots map[string]int

	// Customizations lists newly purchased option XP per card code.
	Customizations map[string][]CustomizationDelta

	// XPSpent is the reconciled cost of the transition.
	XPSpent int

	TabooSetID *int
}

// Between diffs two resolved decks of the same lineage. With
// omitUpgradeStats set, only the raw deltas are computed and XPSpent stays
// zero; the discount machinery is skipped entirely.
func Between(prev, next *resolve.ResolvedDeck, omitUpgradeStats bool) ChangeStats {
	stats := ChangeStats{
		Slots:          diffGroups(prev, next, resolve.GroupMain),
		ExtraSlots:     diffGroups(prev, next, resolve.GroupExtra),
		ExileSlots:     diffExile(prev, next),
		Customizations: diffCustomizations(prev, next),
		TabooSetID:     next.Deck.TabooSetID,
	}
	if omitUpgradeStats {
		return stats
	}
	stats.XPSpent = computeXP(prev, next, stats)
	return stats
}

func diffGroups(prev, next *resolve.ResolvedDeck, name resolve.GroupName) map[string]int {
	diff := map[string]int{}
	for code, entry := range next.Groups[name] {
		diff[code] = entry.Quantity
	}
	for code, entry := range prev.Groups[name] {
		diff[code] -= entry.Quantity
	}
	for code, delta := range diff {
		if delta == 0 {
			delete(diff, code)
		}
	}
	return diff
}

func diffExile(prev, next *resolve.ResolvedDeck) map[string]int {
	diff := map[string]int{}
	for code, qty := range next.Deck.ExiledSlots() {
		diff[code] = qty
	}
	for code, qty := range prev.Deck.ExiledSlots() {
		diff[code] -= qty
	}
	for code, delta := range diff {
		if delta == 0 {
			delete(diff, code)
		}
	}
	return diff
}

// diffCustomizations reports per-option spending increases. Unchanged
// indices are zero-cost and omitted; the ledger is locked-in, so spending
// never decreases between committed versions.
func diffCustomizations(prev, next *resolve.ResolvedDeck) map[string][]CustomizationDelta {
	out := map[string][]CustomizationDelta{}
	for code, entries := range next.Meta.Customizations {
		prevSpent := map[int]int{}
		for _, entry := range prev.Meta.Customizations[code] {
			prevSpent[entry.Index] = entry.XPSpent
		}
		var deltas []CustomizationDelta
		for _, entry := range entries {
			delta := entry.XPSpent - prevSpent[entry.Index]
			if delta > 0 {
				deltas = append(deltas, CustomizationDelta{Index: entry.Index, XPDelta: delta})
			}
		}
		if len(deltas) > 0 {
			out[code] = deltas
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
