// Package meta encodes and decodes the deck record's opaque meta string: a
// key=value side channel shared by several independent concerns. Keys the
// codec does not recognize round-trip verbatim so that no concern ever
// destroys data written by another.
package meta

// CustomizationEntry is one row of a customizable card's upgrade ledger.
type CustomizationEntry struct {
	// Index identifies the purchasable option on the card definition.
	Index int
	// XPSpent never exceeds the option's printed cost.
	XPSpent int
	// Selections holds the player's chosen traits/cards/skills, when the
	// option requires them.
	Selections []string
}

// Meta is the decoded side channel. Zero values mean "absent".
type Meta struct {
	// Customizations maps card codes to their option ledgers.
	Customizations map[string][]CustomizationEntry
	// Attachments maps a target card code to attached codes and quantities.
	Attachments map[string]map[string]int
	// Annotations maps card codes to free-form player notes.
	Annotations map[string]string

	// CardPool lists pack/cycle/card selector tokens restricting legality.
	CardPool []string
	// SealedDeck caps per-card quantities for sealed play.
	SealedDeck     map[string]int
	SealedDeckName string

	// AlternateFront and AlternateBack override investigator sides.
	AlternateFront string
	AlternateBack  string
	// TransformInto permanently replaces the investigator mid-campaign.
	TransformInto string
	// FactionSelected records the choice for a faction-select deck option.
	FactionSelected string

	// ExtraDeck holds the secondary deck's slots for investigators that
	// have one.
	ExtraDeck map[string]int
	// HiddenSlots holds slots removed from view because their cards are
	// not in the active catalog.
	HiddenSlots map[string]int

	// Unknown preserves unrecognized keys verbatim.
	Unknown map[string]string
}

// Clone returns an independent copy.
func (m Meta) Clone() Meta {
	out := m
	if m.Customizations != nil {
		out.Customizations = make(map[string][]CustomizationEntry, len(m.Customizations))
		for code, entries := range m.Customizations {
			copied := make([]CustomizationEntry, len(entries))
			for i, e := range entries {
				copied[i] = e
				copied[i].Selections = append([]string(nil), e.Selections...)
			}
			out.Customizations[code] = copied
		}
	}
	if m.Attachments != nil {
		out.Attachments = make(map[string]map[string]int, len(m.Attachments))
		for target, attached := range m.Attachments {
			inner := make(map[string]int, len(attached))
			for code, qty := range attached {
				inner[code] = qty
			}
			out.Attachments[target] = inner
		}
	}
	out.Annotations = cloneStringMap(m.Annotations)
	out.CardPool = append([]string(nil), m.CardPool...)
	out.SealedDeck = cloneIntMap(m.SealedDeck)
	out.ExtraDeck = cloneIntMap(m.ExtraDeck)
	out.HiddenSlots = cloneIntMap(m.HiddenSlots)
	out.Unknown = cloneStringMap(m.Unknown)
	return out
}

func cloneStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneIntMap(in map[string]int) map[string]int {
	if in == nil {
		return nil
	}
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
