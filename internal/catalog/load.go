package catalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// dump mirrors the upstream JSON catalog layout.
type dump struct {
	Cards     []*Card     `json:"cards"`
	Packs     []*Pack     `json:"packs"`
	Cycles    []*Cycle    `json:"cycles"`
	TabooSets []*TabooSet `json:"taboo_sets"`
}

// LoadFromFS reads a JSON catalog dump from catalogFS and builds the
// catalog with its lookup tables. The dump may be a single catalog.json or
// split into cards.json, packs.json, cycles.json, and taboo_sets.json.
func LoadFromFS(catalogFS fs.FS) (*Catalog, error) {
	if data, err := fs.ReadFile(catalogFS, "catalog.json"); err == nil {
		var d dump
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parse catalog.json: %w", err)
		}
		return New(d.Cards, d.Packs, d.Cycles, d.TabooSets), nil
	}

	var d dump
	if err := readJSON(catalogFS, "cards.json", &d.Cards); err != nil {
		return nil, err
	}
	if err := readJSONOptional(catalogFS, "packs.json", &d.Packs); err != nil {
		return nil, err
	}
	if err := readJSONOptional(catalogFS, "cycles.json", &d.Cycles); err != nil {
		return nil, err
	}
	if err := readJSONOptional(catalogFS, "taboo_sets.json", &d.TabooSets); err != nil {
		return nil, err
	}
	return New(d.Cards, d.Packs, d.Cycles, d.TabooSets), nil
}

func readJSON(catalogFS fs.FS, name string, target any) error {
	data, err := fs.ReadFile(catalogFS, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func readJSONOptional(catalogFS fs.FS, name string, target any) error {
	data, err := fs.ReadFile(catalogFS, name)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
