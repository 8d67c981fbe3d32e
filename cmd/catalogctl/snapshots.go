// Snapshot listing and inspection commands.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/wickers-data/catalog/pkg/types"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Inspect published snapshots",
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all snapshots with the current active ID",
	Args:  cobra.NoArgs,
	RunE:  runSnapshotsList,
}

var snapshotsShowCmd = &cobra.Command{
	Use:   "show <snapshotID>",
	Short: "Show a snapshot including its product copy",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotsShow,
}

func init() {
	snapshotsCmd.AddCommand(snapshotsListCmd)
	snapshotsCmd.AddCommand(snapshotsShowCmd)
}

func runSnapshotsList(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "snapshots list:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	mgr := newManager(backend, "warn")
	published, err := mgr.Published()
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}

	if flagJSON {
		return printJSON(published)
	}
	printSnapshotTable(published)
	return nil
}

func runSnapshotsShow(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "snapshots show:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	mgr := newManager(backend, "warn")
	snapshot, err := mgr.Get(args[0])
	if err != nil {
		return fmt.Errorf("get snapshot %s: %w", args[0], err)
	}
	return printJSON(snapshot)
}

// printSnapshotTable prints snapshots in a human-readable table format.
func printSnapshotTable(published types.PublishedSnapshots) {
	if len(published.Snapshots) == 0 {
		fmt.Println("No snapshots found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tVERSION\tSTATUS\tEFFECTIVE\tPRODUCTS")
	fmt.Fprintln(w, "--\t-------\t------\t---------\t--------")
	for _, s := range published.Snapshots {
		marker := ""
		if s.ID == published.CurrentActiveSnapshotID {
			marker = " *"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\t%d\n",
			s.ID, marker, s.Version, s.Status,
			s.EffectiveDate.Format(time.RFC3339), s.ProductCount)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
	fmt.Printf("Total: %d snapshot(s)\n", len(published.Snapshots))
}
