package catalog

// TabooChange is the per-card delta a taboo set applies. Nil pointer fields
// leave the printed value untouched.
type TabooChange struct {
	Code        string `json:"code"`
	Text        string `json:"text,omitempty"`
	XP          *int   `json:"xp,omitempty"`
	Exceptional *bool  `json:"exceptional,omitempty"`
	DeckLimit   *int   `json:"deck_limit,omitempty"`
}

// TabooSet is one versioned list of card overrides selected per deck.
type TabooSet struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Date    string        `json:"date"`
	Changes []TabooChange `json:"cards"`
}

// Change returns the delta for code within the set, or nil.
func (t *TabooSet) Change(code string) *TabooChange {
	if t == nil {
		return nil
	}
	for i := range t.Changes {
		if t.Changes[i].Code == code {
			return &t.Changes[i]
		}
	}
	return nil
}
