// ABOUTME: CLI command for moving preferences between storage backends.
// ABOUTME: Copies every key from the configured backend into another one.
package main

import (
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthdash/internal/charm"
	"github.com/harperreed/healthdash/internal/config"
	"github.com/harperreed/healthdash/internal/storage"
)

var (
	migrateTo     string
	migrateForce  bool
	migrateSwitch bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy preferences to another storage backend",
	Long: `Copy every stored preference from the configured backend to another one.

BACKENDS:

  sqlite   ~/.local/share/healthdash/healthdash.db (default)
  badger   ~/.local/share/healthdash/badger/
  charm    Charm Cloud KV, synced across devices

IMPORTANT:

  - The destination must be empty unless --force is given
  - Existing keys in the destination are overwritten with --force
  - Use --switch to make the destination the configured backend afterwards

EXAMPLES:

  healthdash migrate --to badger
  healthdash migrate --to charm --switch
  HEALTHDASH_BACKEND=badger healthdash migrate --to sqlite --force`,
	Annotations: map[string]string{skipDashboard: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		from := cfg.GetBackend()
		if !slices.Contains(config.Backends, migrateTo) || migrateTo == "memory" {
			return fmt.Errorf("invalid destination backend: %q (use sqlite, badger, or charm)", migrateTo)
		}
		if migrateTo == from {
			return fmt.Errorf("source and destination are both %s", from)
		}

		dataDir := cfg.GetDataDir()
		if migrateTo == "badger" && !migrateForce {
			path := config.BackendPath(migrateTo, dataDir)
			nonEmpty, err := storage.IsDirNonEmpty(path)
			if err != nil {
				return fmt.Errorf("failed to inspect %s: %w", path, err)
			}
			if nonEmpty {
				return fmt.Errorf("destination %s is not empty (use --force to overwrite)", path)
			}
		}

		src, err := cfg.OpenStorage(logger)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", from, err)
		}
		defer src.Close()

		dst, err := config.OpenBackend(migrateTo, dataDir, logger)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", migrateTo, err)
		}
		defer dst.Close()

		if !migrateForce {
			keys, err := dst.Keys()
			if err != nil {
				return fmt.Errorf("failed to inspect %s storage: %w", migrateTo, err)
			}
			if len(keys) > 0 {
				return fmt.Errorf("destination %s already has %d keys (use --force to overwrite)", migrateTo, len(keys))
			}
		}

		// one sync after the copy instead of one per key
		cc, synced := dst.(*charm.Client)
		if synced {
			cc.SetAutoSync(false)
		}

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		if synced {
			if err := cc.Sync(); err != nil {
				return fmt.Errorf("migrated but sync failed: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Migrated %s → %s", from, migrateTo))
		fmt.Fprintf(out, "  Keys: %d\n", summary.Keys)
		fmt.Fprintf(out, "  Bytes: %d\n", summary.Bytes)

		if migrateSwitch {
			cfg.Backend = migrateTo
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintln(out, color.GreenString("✓ Backend set to %s in %s", migrateTo, config.GetConfigPath()))
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite, badger, charm")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "allow a non-empty destination")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "use the destination as the backend afterwards")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
