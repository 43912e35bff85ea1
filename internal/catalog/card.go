package catalog

// CardType identifies the printed type of a card.
type CardType string

const (
	TypeInvestigator CardType = "investigator"
	TypeAsset        CardType = "asset"
	TypeEvent        CardType = "event"
	TypeSkill        CardType = "skill"
	TypeTreachery    CardType = "treachery"
	TypeEnemy        CardType = "enemy"
)

// Subtype identifies weakness subtypes.
type Subtype string

const (
	SubtypeNone          Subtype = ""
	SubtypeWeakness      Subtype = "weakness"
	SubtypeBasicWeakness Subtype = "basicweakness"
)

// SelectionKind describes what a customization option asks the player to pick.
type SelectionKind string

const (
	SelectNone   SelectionKind = ""
	SelectTrait  SelectionKind = "trait"
	SelectCard   SelectionKind = "card"
	SelectSkill  SelectionKind = "skill"
	SelectRemove SelectionKind = "remove_slot"
)

// CustomizationOption is one purchasable checkbox row on a customizable card.
type CustomizationOption struct {
	XP        int           `json:"xp"`
	Text      string        `json:"text"`
	TextEdit  string        `json:"text_edit"`
	Selection SelectionKind `json:"selection"`
}

// LevelRange bounds card levels an option grants access to.
type LevelRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether level falls inside the range.
func (r LevelRange) Contains(level int) bool {
	return level >= r.Min && level <= r.Max
}

// AtLeast expresses an "at least N cards from each of M factions" constraint.
type AtLeast struct {
	FactionCount int `json:"factions"`
	Min          int `json:"min"`
}

// DeckOption is one grant (or restriction) in an investigator's deckbuilding
// rules. Options are matched in order; an option with Limit > 0 defines a
// shared budget across every card that only it admits.
type DeckOption struct {
	Name          string      `json:"name,omitempty"`
	ID            string      `json:"id,omitempty"`
	Factions      []string    `json:"faction,omitempty"`
	FactionSelect []string    `json:"faction_select,omitempty"`
	Level         *LevelRange `json:"level,omitempty"`
	Limit         int         `json:"limit,omitempty"`
	Traits        []string    `json:"trait,omitempty"`
	Tags          []string    `json:"tag,omitempty"`
	Not           bool        `json:"not,omitempty"`
	AtLeast       *AtLeast    `json:"atleast,omitempty"`
}

// RequiredCard is one signature-card requirement on an investigator.
type RequiredCard struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// DeckRequirements captures the mandatory contents of an investigator's deck.
type DeckRequirements struct {
	Size  int            `json:"size"`
	Cards []RequiredCard `json:"card,omitempty"`
}

// Restrictions limits which decks may include a card.
type Restrictions struct {
	Investigator []string `json:"investigator,omitempty"`
	Trait        []string `json:"trait,omitempty"`
}

// Card is one printed card definition keyed by code.
type Card struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Subname     string   `json:"subname,omitempty"`
	FactionCode string   `json:"faction_code"`
	Faction2    string   `json:"faction2_code,omitempty"`
	Faction3    string   `json:"faction3_code,omitempty"`
	TypeCode    CardType `json:"type_code"`
	Subtype     Subtype  `json:"subtype_code,omitempty"`
	PackCode    string   `json:"pack_code"`
	Position    int      `json:"position,omitempty"`
	Text        string   `json:"text,omitempty"`
	Traits      []string `json:"traits,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	// XP is the printed level; nil for unleveled cards (weaknesses,
	// investigators, story assets).
	XP *int `json:"xp,omitempty"`

	DeckLimit int `json:"deck_limit,omitempty"`
	Quantity  int `json:"quantity,omitempty"`

	Myriad      bool `json:"myriad,omitempty"`
	Exceptional bool `json:"exceptional,omitempty"`
	Permanent   bool `json:"permanent,omitempty"`
	Exile       bool `json:"exile,omitempty"`

	// BondedTo names the card this one is bonded to (it enters the deck
	// outside normal deckbuilding); BondedCount is how many copies follow.
	BondedTo    string `json:"bonded_to,omitempty"`
	BondedCount int    `json:"bonded_count,omitempty"`

	// DuplicateOf points at the canonical printing this card reprints.
	DuplicateOf string `json:"duplicate_of,omitempty"`
	// AlternateOf points at the card this one is a parallel version of.
	AlternateOf string `json:"alternate_of,omitempty"`

	// DeckSizeModifier adjusts the owning deck's required size while the
	// card is in it (positive or negative).
	DeckSizeModifier int `json:"deck_size_modifier,omitempty"`

	Requirements  *DeckRequirements `json:"deck_requirements,omitempty"`
	ExtraDeckSize int               `json:"extra_deck_size,omitempty"`
	DeckOptions   []DeckOption      `json:"deck_options,omitempty"`
	Restrictions  *Restrictions     `json:"restrictions,omitempty"`

	Customizations []CustomizationOption `json:"customization_options,omitempty"`
}

// Level returns the printed level, treating unleveled cards as level 0.
func (c *Card) Level() int {
	if c == nil || c.XP == nil {
		return 0
	}
	return *c.XP
}

// IsWeakness reports whether the card is any kind of weakness.
func (c *Card) IsWeakness() bool {
	return c != nil && (c.Subtype == SubtypeWeakness || c.Subtype == SubtypeBasicWeakness)
}

// Factions returns every faction printed on the card, primary first.
func (c *Card) Factions() []string {
	if c == nil {
		return nil
	}
	factions := []string{c.FactionCode}
	if c.Faction2 != "" {
		factions = append(factions, c.Faction2)
	}
	if c.Faction3 != "" {
		factions = append(factions, c.Faction3)
	}
	return factions
}

// HasTrait reports whether the card carries the trait (exact match).
func (c *Card) HasTrait(trait string) bool {
	if c == nil {
		return false
	}
	for _, t := range c.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// HasTag reports whether the card carries the tag.
func (c *Card) HasTag(tag string) bool {
	if c == nil {
		return false
	}
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Customizable reports whether the card has purchasable options.
func (c *Card) Customizable() bool {
	return c != nil && len(c.Customizations) > 0
}

// CustomizationBudget is the total XP purchasable across every option.
func (c *Card) CustomizationBudget() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, opt := range c.Customizations {
		total += opt.XP
	}
	return total
}

// MyriadMultiplier is how many printed copies one logical myriad purchase
// brings into the deck.
func (c *Card) MyriadMultiplier() int {
	if c == nil || !c.Myriad {
		return 1
	}
	if c.Quantity > 1 {
		return c.Quantity
	}
	return 3
}
