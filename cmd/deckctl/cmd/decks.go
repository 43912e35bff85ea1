package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/louisbranch/deckwright/internal/platform/id"
)

func init() {
	rootCmd.AddCommand(decksCmd)
	decksCmd.AddCommand(decksListCmd)
	decksCmd.AddCommand(decksShowCmd)
	decksCmd.AddCommand(decksImportCmd)
	decksCmd.AddCommand(decksDeleteCmd)
	decksCmd.AddCommand(decksLineageCmd)
}

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "Manage stored decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var decksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored decks, newest update first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		records, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, record := range records {
			fmt.Printf("%s  %-30s  %s  %s\n",
				record.ID,
				record.Name,
				record.InvestigatorCode,
				record.UpdatedAt.Format(time.DateOnly))
		}
		return nil
	},
}

var decksShowCmd = &cobra.Command{
	Use:   "show <deck-id>",
	Short: "Print one stored deck's resolved card list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
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
		rd, _, err := resolveDeck(cfg, record)
		if err != nil {
			return err
		}
		printResolved(rd)
		return nil
	},
}

var decksImportCmd = &cobra.Command{
	Use:   "import <deck.json>",
	Short: "Import a deck JSON file into the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.DatabasePath == "" {
			return fmt.Errorf("importing requires a database (set --db or DECKWRIGHT_DB)")
		}
		record, err := readDeckFile(args[0])
		if err != nil {
			return err
		}
		if record.ID == "" {
			record.ID, err = id.NewID()
			if err != nil {
				return fmt.Errorf("assign deck id: %w", err)
			}
		}
		now := time.Now().UTC()
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
		record.UpdatedAt = now

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := store.Put(cmd.Context(), record); err != nil {
			return err
		}
		fmt.Println(record.ID)
		return nil
	},
}

var decksDeleteCmd = &cobra.Command{
	Use:   "delete <deck-id>",
	Short: "Delete a stored deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()
		return store.Delete(cmd.Context(), args[0])
	},
}

var decksLineageCmd = &cobra.Command{
	Use:   "lineage <deck-id>",
	Short: "Print a deck's upgrade history, oldest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		chain, err := store.Lineage(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for i, record := range chain {
			xp := "-"
			if record.XP != nil {
				xp = fmt.Sprintf("%d XP", *record.XP)
			}
			fmt.Printf("%d. %s  %-30s  %s\n", i+1, record.ID, record.Name, xp)
		}
		return nil
	},
}
