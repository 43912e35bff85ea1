package catalog

// Pack is one released card pack.
type Pack struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	CycleCode string `json:"cycle_code"`
	Position  int    `json:"position,omitempty"`
}

// Cycle groups packs released together.
type Cycle struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Position int    `json:"position,omitempty"`
}

// Catalog is the read-only card metadata bundle the engine consumes.
// All maps are keyed by code and must not be mutated after construction.
type Catalog struct {
	Cards     map[string]*Card
	Packs     map[string]*Pack
	Cycles    map[string]*Cycle
	TabooSets map[int]*TabooSet
	Lookup    *LookupTables
}

// New builds a catalog from card, pack, cycle, and taboo definitions and
// precomputes the relation indexes.
func New(cards []*Card, packs []*Pack, cycles []*Cycle, taboos []*TabooSet) *Catalog {
	c := &Catalog{
		Cards:     make(map[string]*Card, len(cards)),
		Packs:     make(map[string]*Pack, len(packs)),
		Cycles:    make(map[string]*Cycle, len(cycles)),
		TabooSets: make(map[int]*TabooSet, len(taboos)),
	}
	for _, card := range cards {
		c.Cards[card.Code] = card
	}
	for _, pack := range packs {
		c.Packs[pack.Code] = pack
	}
	for _, cycle := range cycles {
		c.Cycles[cycle.Code] = cycle
	}
	for _, taboo := range taboos {
		c.TabooSets[taboo.ID] = taboo
	}
	c.Lookup = buildLookupTables(c)
	return c
}

// Card returns the definition for code, or nil when the code is unknown.
// Unknown codes are a data problem, not an error: resolution of the rest of
// a deck proceeds without the missing card.
func (c *Catalog) Card(code string) *Card {
	if c == nil {
		return nil
	}
	return c.Cards[code]
}

// Pack returns the pack for code, or nil.
func (c *Catalog) Pack(code string) *Pack {
	if c == nil {
		return nil
	}
	return c.Packs[code]
}

// TabooSet returns the taboo set with the given id, or nil.
func (c *Catalog) TabooSet(id int) *TabooSet {
	if c == nil {
		return nil
	}
	return c.TabooSets[id]
}
