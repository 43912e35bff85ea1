// Package cmd implements the deckctl command tree.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/louisbranch/deckwright/internal/catalog"
	"github.com/louisbranch/deckwright/internal/deck"
	"github.com/louisbranch/deckwright/internal/deck/resolve"
	"github.com/louisbranch/deckwright/internal/platform/collation"
	"github.com/louisbranch/deckwright/internal/platform/config"
	"github.com/louisbranch/deckwright/internal/platform/i18n"
	"github.com/louisbranch/deckwright/internal/storage"
	"github.com/louisbranch/deckwright/internal/storage/memory"
	"github.com/louisbranch/deckwright/internal/storage/sqlite"
)

// Config holds deckctl settings. Values are layered: built-in defaults,
// then the YAML config file, then DECKWRIGHT_* environment variables,
// then flags.
type Config struct {
	CatalogDir   string `env:"DECKWRIGHT_CATALOG_DIR" yaml:"catalog_dir"`
	DatabasePath string `env:"DECKWRIGHT_DB" yaml:"database_path"`
	Locale       string `env:"DECKWRIGHT_LOCALE" yaml:"locale"`
}

var (
	configPath   string
	flagCatalog  string
	flagDatabase string
	flagLocale   string
)

var rootCmd = &cobra.Command{
	Use:   "deckctl",
	Short: "Resolve, validate, and upgrade deck lists",
	Long: `deckctl works with deck lists against a local card catalog.

COMMANDS:
  resolve     Expand a deck into its effective card list
  validate    Check a deck against its deckbuilding rules
  upgrade     Diff two deck versions and price the transition
  decks       Manage stored decks (list, show, import, edit, delete, lineage)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "deckctl:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a deckctl.yaml config file")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "directory holding the card catalog JSON files")
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "db", "", "path to the deck database (empty runs without persistence)")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "locale for card ordering and messages")
}

// loadConfig resolves the layered configuration for one invocation.
func loadConfig() (Config, error) {
	cfg := Config{Locale: "en"}

	path := configPath
	if path == "" {
		if _, err := os.Stat("deckctl.yaml"); err == nil {
			path = "deckctl.yaml"
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if flagCatalog != "" {
		cfg.CatalogDir = flagCatalog
	}
	if flagDatabase != "" {
		cfg.DatabasePath = flagDatabase
	}
	if flagLocale != "" {
		cfg.Locale = flagLocale
	}
	return cfg, nil
}

func loadCatalog(cfg Config) (*catalog.Catalog, error) {
	if cfg.CatalogDir == "" {
		return nil, fmt.Errorf("no catalog directory configured (set --catalog, DECKWRIGHT_CATALOG_DIR, or catalog_dir)")
	}
	cat, err := catalog.LoadFromFS(os.DirFS(cfg.CatalogDir))
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", cfg.CatalogDir, err)
	}
	return cat, nil
}

// openStore returns the configured deck store and a close function.
func openStore(cfg Config) (storage.DeckStore, func() error, error) {
	if cfg.DatabasePath == "" {
		return memory.New(), func() error { return nil }, nil
	}
	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

// loadDeck reads a deck either from a JSON file or from the store by id.
func loadDeck(cmd *cobra.Command, cfg Config, args []string) (deck.Deck, error) {
	file, _ := cmd.Flags().GetString("file")
	if file != "" {
		return readDeckFile(file)
	}
	if len(args) == 0 {
		return deck.Deck{}, fmt.Errorf("a deck id or --file is required")
	}
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return deck.Deck{}, err
	}
	defer closeStore()
	return store.Get(cmd.Context(), args[0])
}

func readDeckFile(path string) (deck.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return deck.Deck{}, fmt.Errorf("read deck %s: %w", path, err)
	}
	var record deck.Deck
	if err := json.Unmarshal(data, &record); err != nil {
		return deck.Deck{}, fmt.Errorf("parse deck %s: %w", path, err)
	}
	return record, nil
}

func resolveDeck(cfg Config, record deck.Deck) (*resolve.ResolvedDeck, *catalog.Catalog, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}
	coll := collation.New(cfg.Locale)
	return resolve.Deck(cat, coll, record), cat, nil
}

func newRenderer(cfg Config) *i18n.Renderer {
	return i18n.NewRenderer(cfg.Locale)
}
