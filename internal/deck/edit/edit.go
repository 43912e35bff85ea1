// Package edit merges a layered set of pending editor changes onto a base
// deck record, producing a new canonical record of the same shape. Merging
// is pure: the base record is never mutated, and applying the same edits
// twice yields the same record as applying them once.
package edit

import (
	"github.com/louisbranch/deckwright/internal/catalog"
	"github.com/louisbranch/deckwright/internal/deck"
	"github.com/louisbranch/deckwright/internal/deck/meta"
)

// Group names a slot group an edit targets.
type Group string

const (
	GroupMain            Group = "slots"
	GroupSide            Group = "sideSlots"
	GroupIgnoreDeckLimit Group = "ignoreDeckLimitSlots"
	GroupExtra           Group = "extraSlots"
)

// CustomizationEdit patches one ledger row of a customizable card. Nil
// fields leave the existing row untouched.
type CustomizationEdit struct {
	Index      int
	XPSpent    *int
	Selections []string
}

// Edits is the in-memory layer of pending changes. Nil pointer fields mean
// "not edited"; zero-value quantities mean "removed".
type Edits struct {
	Name        *string
	Description *string
	Tags        *string

	// TabooSetID of zero clears the deck's taboo list.
	TabooSetID   *int
	XPAdjustment *int

	Quantities map[Group]map[string]int

	Customizations map[string][]CustomizationEdit
	Attachments    map[string]map[string]int
	// Annotations with empty values are deleted.
	Annotations map[string]string

	// AlternateFront/AlternateBack of empty string clear the override.
	AlternateFront *string
	AlternateBack  *string
}

// Apply overlays edits onto base and returns the merged record. Zero
// quantities are deleted when pruneDeletions is true (the commit path) and
// kept as explicit zeros otherwise so the editor can render a "0" row.
// previous is the prior committed deck in the lineage, consulted only to
// keep customization ledgers locked in by an earlier upgrade.
func Apply(base deck.Deck, edits Edits, cat *catalog.Catalog, pruneDeletions bool, previous *deck.Deck) deck.Deck {
	next := base.Clone()
	decoded := meta.Decode(base.Meta)

	if edits.Name != nil {
		next.Name = *edits.Name
	}
	if edits.Description != nil {
		next.Description = *edits.Description
	}
	if edits.Tags != nil {
		next.Tags = *edits.Tags
	}
	if edits.TabooSetID != nil {
		if *edits.TabooSetID == 0 {
			next.TabooSetID = nil
		} else {
			id := *edits.TabooSetID
			next.TabooSetID = &id
		}
	}
	if edits.XPAdjustment != nil {
		next.XPAdjustment = *edits.XPAdjustment
	}

	next.Slots = mergeSlots(base.Slots, edits.Quantities[GroupMain], pruneDeletions)
	next.SideSlots = mergeSlots(base.SideSlots, edits.Quantities[GroupSide], pruneDeletions)
	next.IgnoreDeckLimitSlots = mergeSlots(base.IgnoreDeckLimitSlots, edits.Quantities[GroupIgnoreDeckLimit], pruneDeletions)
	decoded.ExtraDeck = map[string]int(mergeSlots(decoded.ExtraDeck, edits.Quantities[GroupExtra], pruneDeletions))

	mergeCustomizations(&decoded, edits.Customizations, cat, next, pruneDeletions, previous)
	mergeAttachments(&decoded, edits.Attachments, next.Slots)
	mergeAnnotations(&decoded, edits.Annotations)

	if edits.AlternateFront != nil {
		decoded.AlternateFront = *edits.AlternateFront
	}
	if edits.AlternateBack != nil {
		decoded.AlternateBack = *edits.AlternateBack
	}

	next.Meta = meta.Encode(decoded)
	return next
}

func mergeSlots(base deck.Slots, overlay map[string]int, prune bool) deck.Slots {
	if base == nil && len(overlay) == 0 {
		return nil
	}
	merged := base.Clone()
	if merged == nil {
		merged = deck.Slots{}
	}
	for code, qty := range overlay {
		if qty < 0 {
			qty = 0
		}
		merged[code] = qty
	}
	if prune {
		for code, qty := range merged {
			if qty == 0 {
				delete(merged, code)
			}
		}
	}
	return merged
}

func mergeCustomizations(decoded *meta.Meta, edits map[string][]CustomizationEdit, cat *catalog.Catalog, next deck.Deck, prune bool, previous *deck.Deck) {
	if len(edits) == 0 && !prune {
		return
	}

	for code, rows := range edits {
		card := cat.Card(code)
		entries := decoded.Customizations[code]
		for _, row := range rows {
			entries = patchEntry(entries, row, card)
		}
		if decoded.Customizations == nil {
			decoded.Customizations = map[string][]meta.CustomizationEntry{}
		}
		decoded.Customizations[code] = entries
	}

	if !prune {
		return
	}

	// Locked-in ledgers survive the card leaving the deck: entries present
	// on the previous committed version are never pruned.
	var locked map[string][]meta.CustomizationEntry
	if previous != nil {
		locked = meta.Decode(previous.Meta).Customizations
	}
	for code, entries := range decoded.Customizations {
		inDeck := next.Slots.Quantity(code) > 0 ||
			next.SideSlots.Quantity(code) > 0 ||
			deck.Slots(decoded.ExtraDeck).Quantity(code) > 0
		if inDeck || len(locked[code]) > 0 {
			continue
		}
		empty := true
		for _, e := range entries {
			if e.XPSpent > 0 || len(e.Selections) > 0 {
				empty = false
				break
			}
		}
		if empty {
			delete(decoded.Customizations, code)
		}
	}
	if len(decoded.Customizations) == 0 {
		decoded.Customizations = nil
	}
}

func patchEntry(entries []meta.CustomizationEntry, row CustomizationEdit, card *catalog.Card) []meta.CustomizationEntry {
	for i := range entries {
		if entries[i].Index != row.Index {
			continue
		}
		if row.XPSpent != nil {
			entries[i].XPSpent = clampXP(*row.XPSpent, row.Index, card)
		}
		if row.Selections != nil {
			entries[i].Selections = append([]string(nil), row.Selections...)
		}
		return entries
	}
	entry := meta.CustomizationEntry{Index: row.Index}
	if row.XPSpent != nil {
		entry.XPSpent = clampXP(*row.XPSpent, row.Index, card)
	}
	if row.Selections != nil {
		entry.Selections = append([]string(nil), row.Selections...)
	}
	return append(entries, entry)
}

// clampXP bounds spent XP to the option's printed cost when the card
// definition is available.
func clampXP(xp, index int, card *catalog.Card) int {
	if xp < 0 {
		return 0
	}
	if card == nil || index >= len(card.Customizations) {
		return xp
	}
	if cost := card.Customizations[index].XP; xp > cost {
		return cost
	}
	return xp
}

func mergeAttachments(decoded *meta.Meta, edits map[string]map[string]int, slots deck.Slots) {
	for target, attached := range edits {
		merged := map[string]int{}
		for code, qty := range decoded.Attachments[target] {
			merged[code] = qty
		}
		for code, qty := range attached {
			merged[code] = qty
		}
		// Attached quantities never exceed the copies actually in the deck.
		for code, qty := range merged {
			if limit := slots.Quantity(code); qty > limit {
				merged[code] = limit
			}
			if merged[code] <= 0 {
				delete(merged, code)
			}
		}
		if decoded.Attachments == nil {
			decoded.Attachments = map[string]map[string]int{}
		}
		if len(merged) == 0 {
			delete(decoded.Attachments, target)
		} else {
			decoded.Attachments[target] = merged
		}
	}
	if len(decoded.Attachments) == 0 {
		decoded.Attachments = nil
	}
}

func mergeAnnotations(decoded *meta.Meta, edits map[string]string) {
	for code, text := range edits {
		if text == "" {
			delete(decoded.Annotations, code)
			continue
		}
		if decoded.Annotations == nil {
			decoded.Annotations = map[string]string{}
		}
		decoded.Annotations[code] = text
	}
	if len(decoded.Annotations) == 0 {
		decoded.Annotations = nil
	}
}
