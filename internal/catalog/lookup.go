package catalog

import "sort"

// Relations holds the precomputed relation indexes between card codes.
// Every map fans out from one code to the codes related to it.
type Relations struct {
	// Duplicates maps a canonical printing to its reprints.
	Duplicates map[string][]string
	// Reprints maps a reprint back to its canonical printing.
	Reprints map[string]string
	// Level maps a card to same-name, same-faction cards at other levels.
	Level map[string][]string
	// Bonded maps a card to the cards bonded to it.
	Bonded map[string][]string
	// Fronts maps an investigator to its parallel versions.
	Fronts map[string][]string
	// Bases maps a parallel version back to the original printing.
	Bases map[string]string
}

// LookupTables bundles the relation indexes plus secondary groupings the
// validation engine needs.
type LookupTables struct {
	Relations Relations
	// TraitIndex maps a trait to every card code carrying it.
	TraitIndex map[string][]string
	// PackCards maps a pack code to the card codes printed in it.
	PackCards map[string][]string
}

func buildLookupTables(c *Catalog) *LookupTables {
	lt := &LookupTables{
		Relations: Relations{
			Duplicates: map[string][]string{},
			Reprints:   map[string]string{},
			Level:      map[string][]string{},
			Bonded:     map[string][]string{},
			Fronts:     map[string][]string{},
			Bases:      map[string]string{},
		},
		TraitIndex: map[string][]string{},
		PackCards:  map[string][]string{},
	}

	type nameKey struct {
		name    string
		faction string
	}
	byName := map[nameKey][]string{}

	for code, card := range c.Cards {
		if card.DuplicateOf != "" {
			lt.Relations.Duplicates[card.DuplicateOf] = append(lt.Relations.Duplicates[card.DuplicateOf], code)
			lt.Relations.Reprints[code] = card.DuplicateOf
		}
		if card.AlternateOf != "" {
			lt.Relations.Fronts[card.AlternateOf] = append(lt.Relations.Fronts[card.AlternateOf], code)
			lt.Relations.Bases[code] = card.AlternateOf
		}
		if card.BondedTo != "" {
			// Bonded references are by printed name in the upstream dumps,
			// so the child hangs off every printing of the parent.
			for parent, parentCard := range c.Cards {
				if parentCard.Name == card.BondedTo {
					lt.Relations.Bonded[parent] = append(lt.Relations.Bonded[parent], code)
				}
			}
		}
		if card.XP != nil && card.DuplicateOf == "" {
			key := nameKey{name: card.Name, faction: card.FactionCode}
			byName[key] = append(byName[key], code)
		}
		for _, trait := range card.Traits {
			lt.TraitIndex[trait] = append(lt.TraitIndex[trait], code)
		}
		lt.PackCards[card.PackCode] = append(lt.PackCards[card.PackCode], code)
	}

	for _, codes := range byName {
		if len(codes) < 2 {
			continue
		}
		for _, code := range codes {
			for _, other := range codes {
				if other != code {
					lt.Relations.Level[code] = append(lt.Relations.Level[code], other)
				}
			}
		}
	}

	// Sorted slices keep lookups deterministic regardless of map order.
	for _, index := range []map[string][]string{
		lt.Relations.Duplicates, lt.Relations.Level, lt.Relations.Bonded,
		lt.Relations.Fronts, lt.TraitIndex, lt.PackCards,
	} {
		for key := range index {
			sort.Strings(index[key])
		}
	}

	return lt
}
