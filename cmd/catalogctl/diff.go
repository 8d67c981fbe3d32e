// Diff command: compare the working set against a published snapshot.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <snapshotID>",
	Short: "Diff the working set against a snapshot",
	Long: `Diff compares the current working set against a published snapshot by
style code: products present only in the working set are added, products
present only in the snapshot are removed, and products whose serialized
fields differ are modified.

Example:
  catalogctl diff snapshot_2026-08-28_10-00-00-000
  catalogctl diff snapshot_2026-08-28_10-00-00-000 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "diff:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	products, err := fetchWorkingSet(backend)
	if err != nil {
		return err
	}

	mgr := newManager(backend, "warn")
	diff, err := mgr.DiffAgainst(products, args[0])
	if err != nil {
		return fmt.Errorf("diff against %s: %w", args[0], err)
	}

	if flagJSON {
		return printJSON(diff)
	}

	for _, p := range diff.Added {
		fmt.Println("+ ", p.StyleCode())
	}
	for _, p := range diff.Removed {
		fmt.Println("- ", p.StyleCode())
	}
	for _, m := range diff.Modified {
		fmt.Printf("~  %s (%s)\n", m.StyleCode, strings.Join(m.Changes, ", "))
	}
	fmt.Printf("Added: %d, Removed: %d, Modified: %d\n",
		len(diff.Added), len(diff.Removed), len(diff.Modified))
	return nil
}
