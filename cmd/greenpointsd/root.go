package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"greenpoints-backend/config"
	"greenpoints-backend/internal/catalog"
	"greenpoints-backend/internal/db"
	"greenpoints-backend/internal/store"
)

const defaultConfigPath = "./config/config.yaml"

var (
	configPath string
	logger     = log.New(os.Stdout, "greenpoints ", log.LstdFlags)
)

var rootCmd = &cobra.Command{
	Use:   "greenpointsd",
	Short: "Green Points - campus sustainability tracker",
	Long: `Green Points lets students log green actions, earn points and compete
on a per-dorm leaderboard.

Configuration is read from --config, then $CONFIG_PATH, then ./config/config.yaml.
A .env file in the working directory may set GREENPOINTS_DSN.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the YAML configuration file")
	rootCmd.AddCommand(serveCmd, seedCmd, migrateCmd)
}

// loadConfig resolves the configuration file and applies environment overrides.
// Only an implicit default path may be missing.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Printf("warning: failed to read .env: %v", err)
	}

	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	switch {
	case err == nil:
		logger.Printf("configuration loaded successfully from %s", path)
	case !explicit && errors.Is(err, fs.ErrNotExist):
		logger.Printf("no configuration at %s, using defaults", path)
		cfg = config.Default()
	default:
		return nil, fmt.Errorf("failed to load configuration from %s: %w", path, err)
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// openStore connects to the database and migrates the schema.
func openStore(cfg *config.Config) (store.Store, error) {
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Printf("database initialized successfully (%s)", cfg.Database.Driver)
	return store.NewGormStore(gormDB), nil
}

// seedCatalog inserts the configured catalog rows that are not present yet.
func seedCatalog(ctx context.Context, s store.Store, cfg *config.Config) error {
	c, err := catalog.Load(cfg.Seed.CatalogPath)
	if err != nil {
		return err
	}
	res, err := s.Seed(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	if res.Inserted() {
		logger.Printf("seeded %d dorms and %d action types", res.DormsInserted, res.ActionTypesInserted)
	} else {
		logger.Println("catalog already seeded")
	}
	return nil
}

// warnIfUnseeded flags a disabled seed against an empty catalog, which
// leaves the registration form without dorms.
func warnIfUnseeded(ctx context.Context, s store.Store) {
	dorms, err := s.Dorms(ctx)
	if err != nil {
		logger.Printf("warning: could not check catalog: %v", err)
		return
	}
	if len(dorms) == 0 {
		logger.Println("warning: seeding is disabled and the dorms table is empty; run `greenpointsd seed` or set seed.enabled")
	}
}
