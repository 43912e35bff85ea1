package resolve

import (
	"sort"
	"strings"

	"github.com/louisbranch/deckwright/internal/catalog"
	"github.com/louisbranch/deckwright/internal/deck/meta"
)

// EffectiveCard is a card definition with taboo and customization overlays
// applied, plus its printed relations.
type EffectiveCard struct {
	// Card is a copy of the printed definition with overrides folded in.
	Card catalog.Card
	// Original points at the untouched catalog definition.
	Original *catalog.Card

	TabooApplied bool

	// CustomizationLevel is the effective deckbuilding level of a
	// customizable card: half the spent XP, rounded up.
	CustomizationLevel int

	// Parallel lists parallel versions; OtherVersions lists reprints of
	// the same card.
	Parallel      []string
	OtherVersions []string
}

// Level returns the effective level, preferring the customization level for
// customizable cards and any taboo XP override otherwise.
func (e *EffectiveCard) Level() int {
	if e == nil {
		return 0
	}
	if e.Card.Customizable() {
		return e.CustomizationLevel
	}
	return e.Card.Level()
}

// CardResolver produces effective cards for one (deck, taboo, pool)
// context. Resolution results are cached per code for the duration of a
// single deck resolve; the cache never outlives the resolver.
type CardResolver struct {
	cat      *catalog.Catalog
	taboo    *catalog.TabooSet
	cardPool []string
	cache    map[string]*EffectiveCard
}

// NewCardResolver builds a resolver. tabooSetID of nil selects no taboo
// list; cardPool restricts which reprint packs are eligible.
func NewCardResolver(cat *catalog.Catalog, tabooSetID *int, cardPool []string) *CardResolver {
	r := &CardResolver{
		cat:      cat,
		cardPool: cardPool,
		cache:    map[string]*EffectiveCard{},
	}
	if tabooSetID != nil {
		r.taboo = cat.TabooSet(*tabooSetID)
	}
	return r
}

// Resolve returns the effective card for code, or nil when the code is
// absent from the catalog. Customization entries, when given, overlay the
// purchased options' text changes and drive the effective level.
func (r *CardResolver) Resolve(code string, customizations []meta.CustomizationEntry) *EffectiveCard {
	base := r.resolvePrinted(code)
	if base == nil {
		return nil
	}
	if len(customizations) == 0 || !base.Card.Customizable() {
		return base
	}
	// Customized cards are derived from the cached printed resolution so
	// the cache stays customization-free.
	custom := *base
	custom.Card = base.Card
	applyCustomizations(&custom, customizations)
	return &custom
}

func (r *CardResolver) resolvePrinted(code string) *EffectiveCard {
	if cached, ok := r.cache[code]; ok {
		return cached
	}
	printed := r.cat.Card(code)
	if printed == nil {
		r.cache[code] = nil
		return nil
	}

	effective := &EffectiveCard{
		Card:     *r.preferredPrinting(printed),
		Original: printed,
	}
	effective.Parallel = append([]string(nil), r.cat.Lookup.Relations.Fronts[code]...)
	effective.OtherVersions = append([]string(nil), r.cat.Lookup.Relations.Duplicates[code]...)

	if change := r.taboo.Change(code); change != nil {
		applyTaboo(effective, change)
	}
	r.cache[code] = effective
	return effective
}

// preferredPrinting favors the newest official printing of a card unless
// its pack is excluded by the active card pool.
func (r *CardResolver) preferredPrinting(printed *catalog.Card) *catalog.Card {
	reprints := r.cat.Lookup.Relations.Duplicates[printed.Code]
	if len(reprints) == 0 {
		return printed
	}
	candidates := append([]string(nil), reprints...)
	sort.Strings(candidates)
	// Walk newest-first; codes sort by release within the upstream scheme.
	for i := len(candidates) - 1; i >= 0; i-- {
		reprint := r.cat.Card(candidates[i])
		if reprint == nil {
			continue
		}
		if r.packAllowed(reprint.PackCode) {
			return reprint
		}
	}
	return printed
}

func (r *CardResolver) packAllowed(packCode string) bool {
	if len(r.cardPool) == 0 {
		return true
	}
	for _, token := range r.cardPool {
		if token == packCode {
			return true
		}
		if cycle, ok := strings.CutPrefix(token, "cycle:"); ok {
			if pack := r.cat.Pack(packCode); pack != nil && pack.CycleCode == cycle {
				return true
			}
		}
	}
	return false
}

func applyTaboo(effective *EffectiveCard, change *catalog.TabooChange) {
	effective.TabooApplied = true
	if change.Text != "" {
		effective.Card.Text = change.Text
	}
	if change.XP != nil {
		xp := *change.XP
		effective.Card.XP = &xp
	}
	if change.Exceptional != nil {
		effective.Card.Exceptional = *change.Exceptional
	}
	if change.DeckLimit != nil {
		effective.Card.DeckLimit = *change.DeckLimit
	}
}

func applyCustomizations(effective *EffectiveCard, entries []meta.CustomizationEntry) {
	spent := 0
	var additions []string
	for _, entry := range entries {
		if entry.Index < 0 || entry.Index >= len(effective.Card.Customizations) {
			continue
		}
		option := effective.Card.Customizations[entry.Index]
		xp := entry.XPSpent
		if xp > option.XP {
			xp = option.XP
		}
		spent += xp
		if xp == option.XP && option.TextEdit != "" {
			additions = append(additions, option.TextEdit)
		}
	}
	effective.CustomizationLevel = (spent + 1) / 2
	if len(additions) > 0 {
		effective.Card.Text = strings.Join(append([]string{effective.Card.Text}, additions...), "\n")
	}
}
