package deck

import (
	"strings"
	"time"
)

// Slots maps card codes to non-negative quantities.
type Slots map[string]int

// Clone returns an independent copy of the slot map.
func (s Slots) Clone() Slots {
	if s == nil {
		return nil
	}
	out := make(Slots, len(s))
	for code, qty := range s {
		out[code] = qty
	}
	return out
}

// Quantity returns the quantity for code, zero when absent.
func (s Slots) Quantity(code string) int {
	return s[code]
}

// Deck is the persisted deck record.
type Deck struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	InvestigatorCode string `json:"investigator_code"`

	// TabooSetID selects the taboo list the deck plays under; nil means none.
	TabooSetID *int `json:"taboo_id,omitempty"`

	Slots                Slots `json:"slots"`
	SideSlots            Slots `json:"sideSlots,omitempty"`
	IgnoreDeckLimitSlots Slots `json:"ignoreDeckLimitSlots,omitempty"`

	// ExileString lists exiled card codes comma-separated, one entry per
	// exiled copy.
	ExileString string `json:"exile_string,omitempty"`

	Description string `json:"description_md,omitempty"`
	Tags        string `json:"tags,omitempty"`

	// XP is the experience the deck's owner reported spending on the
	// upgrade that produced this version; nil on a freshly built deck.
	XP *int `json:"xp,omitempty"`
	// XPAdjustment corrects bookkeeping errors without editing history.
	XPAdjustment int `json:"xp_adjustment,omitempty"`

	// Meta is the opaque multi-concern side channel; see the meta package.
	Meta string `json:"meta,omitempty"`

	PreviousDeckID string `json:"previous_deck,omitempty"`
	NextDeckID     string `json:"next_deck,omitempty"`

	CreatedAt time.Time `json:"date_creation"`
	UpdatedAt time.Time `json:"date_update"`
}

// Clone returns a deep copy of the record.
func (d Deck) Clone() Deck {
	out := d
	out.Slots = d.Slots.Clone()
	out.SideSlots = d.SideSlots.Clone()
	out.IgnoreDeckLimitSlots = d.IgnoreDeckLimitSlots.Clone()
	if d.TabooSetID != nil {
		id := *d.TabooSetID
		out.TabooSetID = &id
	}
	if d.XP != nil {
		xp := *d.XP
		out.XP = &xp
	}
	return out
}

// ExiledSlots expands ExileString into a code-to-quantity map.
func (d Deck) ExiledSlots() Slots {
	if strings.TrimSpace(d.ExileString) == "" {
		return nil
	}
	out := Slots{}
	for _, code := range strings.Split(d.ExileString, ",") {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		out[code]++
	}
	return out
}
