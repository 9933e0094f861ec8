package main

import (
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert missing dorms and action types from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		appStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		return seedCatalog(cmd.Context(), appStore, cfg)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// db.Init migrates on open.
		_, err = openStore(cfg)
		if err == nil {
			logger.Println("schema is up to date")
		}
		return err
	},
}
