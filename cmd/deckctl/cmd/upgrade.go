package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/louisbranch/deckwright/internal/deck"
	"github.com/louisbranch/deckwright/internal/deck/upgrade"
)

func init() {
	rootCmd.AddCommand(upgradeCmd)
	upgradeCmd.Flags().String("prev-file", "", "read the previous deck version from a JSON file")
	upgradeCmd.Flags().String("next-file", "", "read the next deck version from a JSON file")
	upgradeCmd.Flags().Bool("no-xp", false, "only diff the card lists, skip experience pricing")
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [prev-deck-id] [next-deck-id]",
	Short: "Diff two deck versions and price the transition",
	Long: `Diffs two versions of the same deck and computes the experience the
transition costs, applying any discount cards present in the deck.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		prev, next, err := loadUpgradePair(cmd, cfg, args)
		if err != nil {
			return err
		}

		prevResolved, _, err := resolveDeck(cfg, prev)
		if err != nil {
			return err
		}
		nextResolved, _, err := resolveDeck(cfg, next)
		if err != nil {
			return err
		}

		noXP, _ := cmd.Flags().GetBool("no-xp")
		stats := upgrade.Between(prevResolved, nextResolved, noXP)

		printDelta("Deck changes", stats.Slots)
		printDelta("Extra deck changes", stats.ExtraSlots)
		printDelta("Exiled", stats.ExileSlots)
		printCustomizationDeltas(stats.Customizations)
		if !noXP {
			fmt.Printf("Experience spent: %d\n", stats.XPSpent)
			if next.XP != nil && *next.XP != stats.XPSpent {
				fmt.Printf("Recorded experience: %d (differs from computed cost)\n", *next.XP)
			}
		}
		return nil
	},
}

func loadUpgradePair(cmd *cobra.Command, cfg Config, args []string) (deck.Deck, deck.Deck, error) {
	prevFile, _ := cmd.Flags().GetString("prev-file")
	nextFile, _ := cmd.Flags().GetString("next-file")
	if prevFile != "" && nextFile != "" {
		prev, err := readDeckFile(prevFile)
		if err != nil {
			return deck.Deck{}, deck.Deck{}, err
		}
		next, err := readDeckFile(nextFile)
		if err != nil {
			return deck.Deck{}, deck.Deck{}, err
		}
		return prev, next, nil
	}
	if len(args) != 2 {
		return deck.Deck{}, deck.Deck{}, fmt.Errorf("two deck ids or both --prev-file and --next-file are required")
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return deck.Deck{}, deck.Deck{}, err
	}
	defer closeStore()

	prev, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return deck.Deck{}, deck.Deck{}, err
	}
	next, err := store.Get(cmd.Context(), args[1])
	if err != nil {
		return deck.Deck{}, deck.Deck{}, err
	}
	return prev, next, nil
}

func printDelta(label string, deltas map[string]int) {
	if len(deltas) == 0 {
		return
	}
	codes := make([]string, 0, len(deltas))
	for code := range deltas {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	fmt.Printf("%s:\n", label)
	for _, code := range codes {
		fmt.Printf("  %+d %s\n", deltas[code], code)
	}
}

func printCustomizationDeltas(deltas map[string][]upgrade.CustomizationDelta) {
	if len(deltas) == 0 {
		return
	}
	codes := make([]string, 0, len(deltas))
	for code := range deltas {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	fmt.Println("Customizations:")
	for _, code := range codes {
		for _, delta := range deltas[code] {
			fmt.Printf("  %s option %d: +%d XP\n", code, delta.Index, delta.XPDelta)
		}
	}
}
