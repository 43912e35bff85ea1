package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/louisbranch/deckwright/internal/deck/resolve"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().String("file", "", "read the deck from a JSON file instead of the store")
	resolveCmd.Flags().Bool("json", false, "emit the resolved deck as JSON")
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [deck-id]",
	Short: "Expand a deck into its effective card list",
	Long: `Resolves a deck against the catalog: the active taboo list, the card
pool, customization ledgers, and investigator overrides are all applied,
and the result is printed group by group in collation order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		record, err := loadDeck(cmd, cfg, args)
		if err != nil {
			return err
		}
		rd, _, err := resolveDeck(cfg, record)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rd)
		}

		printResolved(rd)
		return nil
	},
}

var printedGroups = []struct {
	name  resolve.GroupName
	label string
}{
	{resolve.GroupMain, "Deck"},
	{resolve.GroupExtra, "Extra deck"},
	{resolve.GroupSide, "Side deck"},
	{resolve.GroupBonded, "Bonded"},
	{resolve.GroupIgnoreDeckLimit, "Ignored"},
	{resolve.GroupExile, "Exiled"},
}

func printResolved(rd *resolve.ResolvedDeck) {
	fmt.Printf("%s\n", rd.Deck.Name)
	if rd.Investigator.Front != nil {
		fmt.Printf("Investigator: %s\n", cardLabel(rd.Investigator.Front))
	} else {
		fmt.Printf("Investigator: %s (unknown)\n", rd.Deck.InvestigatorCode)
	}
	if rd.Investigator.TransformedFrom != "" {
		fmt.Printf("Transformed from: %s\n", rd.Investigator.TransformedFrom)
	}
	if rd.TabooSet != nil {
		fmt.Printf("Taboo list: %s\n", rd.TabooSet.Name)
	}
	fmt.Printf("Deck size: %d (%d total)\n", rd.Stats.DeckSize, rd.Stats.DeckSizeTotal)
	fmt.Printf("Experience required: %d\n", rd.Stats.XPRequired)

	for _, g := range printedGroups {
		order := rd.Order[g.name]
		if len(order) == 0 {
			continue
		}
		fmt.Printf("\n%s:\n", g.label)
		for _, code := range order {
			entry := rd.Groups[g.name][code]
			fmt.Printf("  %dx %s\n", entry.Quantity, cardLabel(entry.Card))
		}
	}
}

func cardLabel(card *resolve.EffectiveCard) string {
	if card == nil {
		return "(unknown)"
	}
	label := card.Card.Name
	if card.Card.Subname != "" {
		label += ": " + card.Card.Subname
	}
	if level := card.Level(); level > 0 {
		label += fmt.Sprintf(" (%d)", level)
	}
	return label + " [" + card.Card.Code + "]"
}
