// Snapshot lifecycle commands: active, refresh, stats, archive.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var archiveBy string

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the currently active snapshot",
	Args:  cobra.NoArgs,
	RunE:  runActive,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute snapshot statuses against the current time",
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the snapshot set",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var archiveCmd = &cobra.Command{
	Use:   "archive <snapshotID>",
	Short: "Archive a snapshot",
	Long: `Archive marks a snapshot archived. Archiving is one-way: the status
refresh never reconsiders archived snapshots. Archiving the active
snapshot promotes the next eligible one.`,
	Args: cobra.ExactArgs(1),
	RunE: runArchive,
}

func init() {
	archiveCmd.Flags().StringVar(&archiveBy, "by", "", "actor recorded on the archive event")
}

func runActive(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "active:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	mgr := newManager(backend, "warn")
	active, err := mgr.Active()
	if err != nil {
		return fmt.Errorf("resolve active snapshot: %w", err)
	}
	if active == nil {
		fmt.Println("No active snapshot.")
		return nil
	}

	if flagJSON {
		return printJSON(active)
	}
	fmt.Println("Active snapshot:", active.ID)
	fmt.Println("  version:  ", active.Version)
	fmt.Println("  effective:", active.EffectiveDate.Format(time.RFC3339))
	fmt.Println("  products: ", active.ProductCount)
	return nil
}

func runRefresh(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "refresh:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	mgr := newManager(backend, "warn")
	changed, err := mgr.RefreshStatuses()
	if err != nil {
		return fmt.Errorf("refresh statuses: %w", err)
	}

	fmt.Printf("Refreshed: %d status change(s)\n", changed)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "stats:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	mgr := newManager(backend, "warn")
	stats, err := mgr.Stats()
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	if flagJSON {
		return printJSON(stats)
	}
	fmt.Println("Snapshots:")
	fmt.Println("  total:    ", stats.TotalSnapshots)
	fmt.Println("  active:   ", stats.ActiveCount)
	fmt.Println("  scheduled:", stats.ScheduledCount)
	fmt.Println("  archived: ", stats.ArchivedCount)
	fmt.Println("  latest:   ", stats.LatestVersion)
	if stats.NextScheduledDate != nil {
		fmt.Println("  next:     ", stats.NextScheduledDate.Format(time.RFC3339))
	}
	return nil
}

func runArchive(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "archive:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	mgr := newManager(backend, "warn")
	if err := mgr.Archive(args[0], archiveBy); err != nil {
		return fmt.Errorf("archive %s: %w", args[0], err)
	}

	fmt.Println("Snapshot archived:", args[0])
	return nil
}
