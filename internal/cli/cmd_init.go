package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/workdeck/internal/config"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize workdeck in the current directory",
		Long: `Initialize workdeck in the current directory.

Creates the .workdeck directory with a default config file and an
empty workspace database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := filepath.Join(config.WorkdeckDir, config.ConfigFileName)
			if err := config.WriteDefault(cfgPath); err != nil {
				return err
			}

			store, _, err := openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if !quiet {
				fmt.Println("Initialized workdeck workspace in", config.WorkdeckDir)
				fmt.Println("Database:", store.Path())
			}
			return nil
		},
	}
}
