package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/louisbranch/deckwright/internal/deck/validate"
)

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("file", "", "read the deck from a JSON file instead of the store")
}

var validateCmd = &cobra.Command{
	Use:   "validate [deck-id]",
	Short: "Check a deck against its deckbuilding rules",
	Long: `Resolves the deck and runs every deckbuilding check: investigator,
deck size, copy limits, required cards, deck options, and customizations.
Exits non-zero when the deck is invalid.`,
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
		rd, cat, err := resolveDeck(cfg, record)
		if err != nil {
			return err
		}

		result := validate.Deck(rd, cat)
		if result.Valid {
			fmt.Println("valid")
			return nil
		}

		renderer := newRenderer(cfg)
		for _, problem := range result.Problems {
			fmt.Println(renderer.Render(problem))
		}
		return fmt.Errorf("%d problem(s) found", len(result.Problems))
	},
}
