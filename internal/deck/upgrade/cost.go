package upgrade

import (
	"sort"

	"github.com/louisbranch/deckwright/internal/deck"
	"github.com/louisbranch/deckwright/internal/deck/resolve"
)

// unit is one logical copy moving in or out of the deck. Myriad stacks
// collapse to a single unit before costing.
type unit struct {
	code        string
	name        string
	level       int
	spell       bool
	exceptional bool
	myriad      bool
	repurchase  bool
}

// modifiers holds the discount state granted by cards in the next deck.
type modifiers struct {
	arcaneResearch int  // copies, one discounted Spell upgrade each
	rabbitHole     bool // discounts upgrades, penalizes new purchases
	adaptableSwaps int  // free level-0 swap budget
	dejaVuCodes    int  // distinct exiled codes refundable
}

func computeXP(prev, next *resolve.ResolvedDeck, stats ChangeStats) int {
	mods := collectModifiers(next)

	xp := 0
	for _, deltas := range stats.Customizations {
		for _, delta := range deltas {
			xp += delta.XPDelta
		}
	}

	adds, removes := buildUnits(prev, next, stats)
	pairs := matchUpgrades(&adds, &removes)
	xp += upgradeCost(pairs, mods)
	xp += additionCost(adds, removes, mods)
	return xp
}

// collectModifiers counts modifier cards in the next deck's main slots,
// resolving reprints to their canonical codes first.
func collectModifiers(next *resolve.ResolvedDeck) modifiers {
	var mods modifiers
	dejaVuCopies := 0
	for code, entry := range next.Groups[resolve.GroupMain] {
		canonical := code
		if entry.Card != nil && entry.Card.Card.DuplicateOf != "" {
			canonical = entry.Card.Card.DuplicateOf
		}
		switch canonical {
		case deck.CodeArcaneResearch:
			mods.arcaneResearch += entry.Quantity
		case deck.CodeDownTheRabbitHole:
			mods.rabbitHole = true
		case deck.CodeAdaptable:
			mods.adaptableSwaps += entry.Quantity * deck.AdaptableSwapsPerCopy
		case deck.CodeDejaVu:
			dejaVuCopies += entry.Quantity
		}
	}
	mods.dejaVuCodes = dejaVuCopies * deck.DejaVuCodesPerCopy
	return mods
}

// buildUnits expands the slot diffs into per-copy add and remove units.
// Exiled copies are reconstructed first: a card exiled and then bought back
// shows no slot delta, but the repurchase still costs XP.
func buildUnits(prev, next *resolve.ResolvedDeck, stats ChangeStats) (adds, removes []unit) {
	exiled := stats.ExileSlots

	codes := map[string]bool{}
	for code := range prev.Groups[resolve.GroupMain] {
		codes[code] = true
	}
	for code := range next.Groups[resolve.GroupMain] {
		codes[code] = true
	}
	sorted := make([]string, 0, len(codes))
	for code := range codes {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	for _, code := range sorted {
		prevQty := prev.Quantity(resolve.GroupMain, code)
		nextQty := next.Quantity(resolve.GroupMain, code)
		newlyExiled := exiled[code]
		if newlyExiled < 0 {
			newlyExiled = 0
		}

		surviving := prevQty - newlyExiled
		if surviving < 0 {
			surviving = 0
		}
		added := nextQty - surviving
		removed := surviving - nextQty

		card := cardFor(prev, next, code)
		if added > 0 {
			repurchased := min(newlyExiled, added)
			adds = append(adds, expandUnits(code, card, added-repurchased, false)...)
			adds = append(adds, expandUnits(code, card, repurchased, true)...)
		}
		if removed > 0 {
			removes = append(removes, expandUnits(code, card, removed, false)...)
		}
	}

	// Extra-deck purchases cost like main-deck ones.
	extraCodes := make([]string, 0, len(stats.ExtraSlots))
	for code := range stats.ExtraSlots {
		extraCodes = append(extraCodes, code)
	}
	sort.Strings(extraCodes)
	for _, code := range extraCodes {
		delta := stats.ExtraSlots[code]
		card := cardFor(prev, next, code)
		if delta > 0 {
			adds = append(adds, expandUnits(code, card, delta, false)...)
		} else {
			removes = append(removes, expandUnits(code, card, -delta, false)...)
		}
	}
	return adds, removes
}

func cardFor(prev, next *resolve.ResolvedDeck, code string) *resolve.EffectiveCard {
	for _, name := range []resolve.GroupName{resolve.GroupMain, resolve.GroupExtra} {
		if entry, ok := next.Groups[name][code]; ok && entry.Card != nil {
			return entry.Card
		}
		if entry, ok := prev.Groups[name][code]; ok && entry.Card != nil {
			return entry.Card
		}
	}
	return nil
}

func expandUnits(code string, card *resolve.EffectiveCard, copies int, repurchase bool) []unit {
	if copies <= 0 {
		return nil
	}
	u := unit{code: code, name: code, repurchase: repurchase}
	if card != nil {
		def := &card.Card
		u.name = def.Name + "\x00" + def.Subname
		u.level = card.Level()
		u.spell = def.HasTrait(deck.SpellTrait)
		u.exceptional = def.Exceptional
		u.myriad = def.Myriad
		if def.Myriad {
			multiplier := def.MyriadMultiplier()
			copies = (copies + multiplier - 1) / multiplier
		}
	}
	units := make([]unit, copies)
	for i := range units {
		units[i] = u
	}
	return units
}

// upgradePair is one card replaced by a higher-level version of itself.
type upgradePair struct {
	from, to unit
}

func (p upgradePair) baseCost() int {
	cost := p.to.level
	if p.to.exceptional {
		cost *= 2
	}
	cost -= p.from.level
	if cost < 1 {
		cost = 1
	}
	return cost
}

// matchUpgrades pairs removed units with added units of the same name at a
// higher level, consuming both. Each add takes the highest-level remove
// still below it, which minimizes the summed level difference.
func matchUpgrades(adds, removes *[]unit) []upgradePair {
	var pairs []upgradePair
	remaining := append([]unit(nil), *removes...)
	var unpaired []unit

	sort.SliceStable(*adds, func(i, j int) bool { return (*adds)[i].level > (*adds)[j].level })
	for _, add := range *adds {
		if add.repurchase || add.level == 0 {
			unpaired = append(unpaired, add)
			continue
		}
		best := -1
		for i, rem := range remaining {
			if rem.name != add.name || rem.level >= add.level {
				continue
			}
			if best == -1 || rem.level > remaining[best].level {
				best = i
			}
		}
		if best == -1 {
			unpaired = append(unpaired, add)
			continue
		}
		pairs = append(pairs, upgradePair{from: remaining[best], to: add})
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	*adds = unpaired
	*removes = remaining
	return pairs
}

// upgradeCost prices the paired upgrades. The Arcane-Research and
// Down-the-Rabbit-Hole discount families interact through their zero
// floors, so both application orders are evaluated and the cheaper one
// wins. Exactly two such families exist; a third would force the search to
// generalize over every ordering.
func upgradeCost(pairs []upgradePair, mods modifiers) int {
	if len(pairs) == 0 {
		return 0
	}
	base := make([]int, len(pairs))
	for i, pair := range pairs {
		base[i] = pair.baseCost()
	}

	arFirst := applyDiscounts(pairs, base, mods, true)
	rabbitFirst := applyDiscounts(pairs, base, mods, false)
	if rabbitFirst < arFirst {
		return rabbitFirst
	}
	return arFirst
}

func applyDiscounts(pairs []upgradePair, base []int, mods modifiers, arcaneFirst bool) int {
	costs := append([]int(nil), base...)
	if arcaneFirst {
		applyArcaneResearch(pairs, costs, mods.arcaneResearch)
		applyRabbitHole(costs, mods.rabbitHole)
	} else {
		applyRabbitHole(costs, mods.rabbitHole)
		applyArcaneResearch(pairs, costs, mods.arcaneResearch)
	}
	total := 0
	for _, cost := range costs {
		total += cost
	}
	return total
}

// applyArcaneResearch spends each discount on the most expensive Spell
// upgrade still undiscounted.
func applyArcaneResearch(pairs []upgradePair, costs []int, uses int) {
	for ; uses > 0; uses-- {
		best := -1
		for i, pair := range pairs {
			if !pair.to.spell || costs[i] == 0 {
				continue
			}
			if best == -1 || costs[i] > costs[best] {
				best = i
			}
		}
		if best == -1 {
			return
		}
		costs[best]--
	}
}

func applyRabbitHole(costs []int, active bool) {
	if !active {
		return
	}
	for i := range costs {
		if costs[i] > 0 {
			costs[i]--
		}
	}
}

// additionCost prices the unpaired additions: full price above level zero,
// one XP per level-0 copy net of the Adaptable swap budget, full price plus
// refunds for exiled repurchases, and the rabbit-hole penalty on every new
// purchase.
func additionCost(adds, removes []unit, mods modifiers) int {
	xp := 0

	level0Removes := 0
	for _, rem := range removes {
		if rem.level == 0 {
			level0Removes++
		}
	}
	freeSwaps := min(mods.adaptableSwaps, level0Removes)

	refunded := map[string]bool{}
	for _, add := range adds {
		switch {
		case add.repurchase:
			cost := add.level
			if add.exceptional {
				cost *= 2
			}
			if cost < 1 {
				cost = 1
			}
			// One refund unit per distinct exiled code, applied to the
			// first repurchased copy only.
			if !refunded[add.code] && len(refunded) < mods.dejaVuCodes {
				refunded[add.code] = true
				cost--
			}
			xp += cost
		case add.level == 0:
			if freeSwaps > 0 {
				freeSwaps--
			} else {
				xp++
			}
		default:
			cost := add.level
			if add.exceptional {
				cost *= 2
			}
			xp += cost
		}

		if mods.rabbitHole && (add.repurchase || add.level == 0 || add.myriad) {
			xp++
		}
	}
	return xp
}
