// ABOUTME: CLI commands for the Charm Cloud backend.
// ABOUTME: Link/unlink the device, inspect status, and repair, reset or wipe the synced store.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/healthdash/internal/charm"
)

var syncRepairForce bool

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Manage Charm Cloud sync of preferences",
	Long: `Manage the Charm Cloud backend (HEALTHDASH_BACKEND=charm).

With the charm backend, preferences are E2E encrypted with your SSH key and
synced after every change, so the selected metrics, time range and completed
tasks follow you across devices.

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show the Charm ID and stored preference keys
  repair      Repair the local replica (checkpoint WAL, remove SHM, vacuum)
  reset       Replace the local replica with the cloud copy (destructive)
  wipe        Delete cloud and local data (destructive)

Move existing preferences to Charm with 'healthdash migrate --to charm'.`,
	Annotations: map[string]string{skipDashboard: "true"},
}

// runCharm hands the terminal to the charm CLI.
func runCharm(args ...string) error {
	c := exec.Command("charm", args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// confirm reads one line from r and reports whether it equals one of want.
func confirm(r io.Reader, w io.Writer, prompt string, want ...string) bool {
	fmt.Fprint(w, prompt)
	line, _ := bufio.NewReader(r).ReadString('\n')
	answer := strings.TrimSpace(line)
	for _, ok := range want {
		if answer == ok {
			return true
		}
	}
	fmt.Fprintln(w, "Canceled.")
	return false
}

var syncLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Link this device to Charm",
	Long: `Link this device to your Charm account via the charm CLI.

An account is created from your SSH key when you don't have one yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Device linked to Charm"))

		client, err := charm.InitClient()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("⚠ Could not open the synced store: %v", err))
			return nil
		}
		defer client.Close()
		if err := client.Sync(); err != nil {
			fmt.Fprintln(out, color.YellowString("⚠ Initial sync failed: %v", err))
			return nil
		}
		fmt.Fprintln(out, color.GreenString("✓ Initial sync complete"))
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Disconnect from Charm",
	Long:  `Disconnect this device from Charm. Local preferences are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Device unlinked from Charm"))
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg.GetBackend() != "charm" {
			fmt.Fprintln(out, color.YellowString("Configured backend is %s; sync is off.", cfg.GetBackend()))
			fmt.Fprintln(out, "Set HEALTHDASH_BACKEND=charm or run 'healthdash migrate --to charm --switch'.")
		}

		client, err := charm.InitClient()
		if err != nil {
			return fmt.Errorf("failed to open the synced store: %w", err)
		}
		defer client.Close()

		id, err := client.ID()
		if err != nil {
			fmt.Fprintln(out, color.YellowString("Not linked to Charm"))
			fmt.Fprintln(out, "\nRun 'healthdash sync link' to connect.")
			return nil
		}

		keys, err := client.Keys()
		if err != nil {
			return fmt.Errorf("failed to list keys: %w", err)
		}

		fmt.Fprintln(out, "Charm ID:", id)
		fmt.Fprintln(out, "Database:", charm.DBName)
		if client.IsReadOnly() {
			fmt.Fprintln(out, color.YellowString("Read-only: another process holds the lock"))
		}
		fmt.Fprintln(out, color.GreenString("✓ Connected to Charm"))
		fmt.Fprintf(out, "  Preference keys: %d\n", len(keys))
		for _, k := range keys {
			fmt.Fprintf(out, "    %s\n", faint.Sprint(k))
		}
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair the local replica",
	Long: `Checkpoint the WAL, remove stale SHM files, check integrity and vacuum.

Use this after lock errors or corruption. --force attempts recovery even when
the integrity check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Repairing", charm.DBName, "...")
		result, err := kv.Repair(charm.DBName, syncRepairForce)

		steps := []struct {
			done  bool
			label string
		}{
			{result.WalCheckpointed, "WAL checkpointed"},
			{result.ShmRemoved, "SHM file removed"},
			{result.Vacuumed, "Database vacuumed"},
		}
		for _, s := range steps {
			if s.done {
				fmt.Fprintln(out, color.GreenString("  ✓ %s", s.label))
			}
		}
		if result.IntegrityOK {
			fmt.Fprintln(out, color.GreenString("  ✓ Integrity check passed"))
		} else {
			fmt.Fprintln(out, color.RedString("  ✗ Integrity check failed"))
		}

		if err != nil {
			if !syncRepairForce {
				fmt.Fprintln(out, color.YellowString("\nRun with --force to attempt recovery."))
			}
			return fmt.Errorf("repair failed: %w", err)
		}
		fmt.Fprintln(out, color.GreenString("\n✓ Repair complete"))
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace local data with the cloud copy",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will DELETE local preferences and restore them from the cloud.")
		if !confirm(cmd.InOrStdin(), out, "Continue? [y/N]: ", "y", "Y") {
			return nil
		}
		if err := kv.Reset(charm.DBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		fmt.Fprintln(out, color.GreenString("✓ Local data reset and restored from cloud"))
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete all cloud and local data",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "This will PERMANENTLY DELETE all cloud backups and local preferences.")
		if !confirm(cmd.InOrStdin(), out, "Type 'wipe' to confirm: ", "wipe") {
			return nil
		}
		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}
		fmt.Fprintln(out, color.GreenString("✓ Data wiped"))
		fmt.Fprintf(out, "  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Fprintf(out, "  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

func init() {
	syncRepairCmd.Flags().BoolVar(&syncRepairForce, "force", false, "attempt recovery even if integrity checks fail")

	syncCmd.AddCommand(syncLinkCmd, syncUnlinkCmd, syncStatusCmd, syncRepairCmd, syncResetCmd, syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
