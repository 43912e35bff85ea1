package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/louisbranch/deckwright/internal/deck"
	"github.com/louisbranch/deckwright/internal/deck/edit"
	"github.com/louisbranch/deckwright/internal/storage"
)

func init() {
	decksCmd.AddCommand(decksEditCmd)

	flags := decksEditCmd.Flags()
	flags.String("name", "", "rename the deck")
	flags.String("description", "", "replace the deck notes")
	flags.String("tags", "", "replace the deck tags")
	flags.Int("taboo", -1, "taboo set id (0 clears the taboo list)")
	flags.Int("xp-adjustment", 0, "manual experience adjustment")
	flags.StringArray("set", nil, "set a main slot quantity as code=qty (0 removes)")
	flags.StringArray("side", nil, "set a side slot quantity as code=qty")
	flags.StringArray("ignore", nil, "set an ignored slot quantity as code=qty")
	flags.StringArray("extra", nil, "set a secondary deck quantity as code=qty")
	flags.StringArray("annotate", nil, "set a card note as code=text (empty text deletes)")
	flags.String("front", "", "alternate investigator front code")
	flags.String("back", "", "alternate investigator back code")
}

var decksEditCmd = &cobra.Command{
	Use:   "edit <deck-id>",
	Short: "Apply slot and metadata changes to a stored deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.DatabasePath == "" {
			return fmt.Errorf("editing requires a database (set --db or DECKWRIGHT_DB)")
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		edits, err := editsFromFlags(cmd)
		if err != nil {
			return err
		}

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		record, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		var previous *deck.Deck
		if record.PreviousDeckID != "" {
			prev, err := store.Get(cmd.Context(), record.PreviousDeckID)
			if err == nil {
				previous = &prev
			} else if !errors.Is(err, storage.ErrNotFound) {
				return err
			}
		}

		next := edit.Apply(record, edits, cat, true, previous)
		next.UpdatedAt = time.Now().UTC()
		return store.Put(cmd.Context(), next)
	},
}

func editsFromFlags(cmd *cobra.Command) (edit.Edits, error) {
	var edits edit.Edits
	flags := cmd.Flags()

	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		edits.Name = &v
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		edits.Description = &v
	}
	if flags.Changed("tags") {
		v, _ := flags.GetString("tags")
		edits.Tags = &v
	}
	if flags.Changed("taboo") {
		v, _ := flags.GetInt("taboo")
		if v < 0 {
			return edit.Edits{}, fmt.Errorf("taboo set id must be zero or positive")
		}
		edits.TabooSetID = &v
	}
	if flags.Changed("xp-adjustment") {
		v, _ := flags.GetInt("xp-adjustment")
		edits.XPAdjustment = &v
	}
	if flags.Changed("front") {
		v, _ := flags.GetString("front")
		edits.AlternateFront = &v
	}
	if flags.Changed("back") {
		v, _ := flags.GetString("back")
		edits.AlternateBack = &v
	}

	for flag, group := range map[string]edit.Group{
		"set":    edit.GroupMain,
		"side":   edit.GroupSide,
		"ignore": edit.GroupIgnoreDeckLimit,
		"extra":  edit.GroupExtra,
	} {
		pairs, _ := flags.GetStringArray(flag)
		for _, pair := range pairs {
			code, qty, err := parseQuantityPair(pair)
			if err != nil {
				return edit.Edits{}, fmt.Errorf("--%s %s: %w", flag, pair, err)
			}
			if edits.Quantities == nil {
				edits.Quantities = map[edit.Group]map[string]int{}
			}
			if edits.Quantities[group] == nil {
				edits.Quantities[group] = map[string]int{}
			}
			edits.Quantities[group][code] = qty
		}
	}

	notes, _ := flags.GetStringArray("annotate")
	for _, pair := range notes {
		code, text, ok := strings.Cut(pair, "=")
		if !ok || code == "" {
			return edit.Edits{}, fmt.Errorf("--annotate %s: expected code=text", pair)
		}
		if edits.Annotations == nil {
			edits.Annotations = map[string]string{}
		}
		edits.Annotations[code] = text
	}

	return edits, nil
}

func parseQuantityPair(pair string) (string, int, error) {
	code, raw, ok := strings.Cut(pair, "=")
	if !ok || code == "" {
		return "", 0, fmt.Errorf("expected code=qty")
	}
	qty, err := strconv.Atoi(raw)
	if err != nil || qty < 0 {
		return "", 0, fmt.Errorf("quantity must be a non-negative integer")
	}
	return code, qty, nil
}
