// Publish command: capture the working set as a snapshot.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	publishEffective string
	publishBy        string
	publishNotes     string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the working set as a new snapshot",
	Long: `Publish captures a deep copy of the current product working set as an
immutable snapshot. The version is the patch increment of the highest
existing version (1.0.0 for the first snapshot). A future effective date
schedules the snapshot; otherwise it becomes eligible immediately.

Example:
  catalogctl publish --by jdoe
  catalogctl publish --effective-date 2026-09-01T00:00:00Z --by jdoe --notes "fall line"`,
	Args: cobra.NoArgs,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishEffective, "effective-date", "", "effective date (RFC 3339; default: now)")
	publishCmd.Flags().StringVar(&publishBy, "by", "", "publisher identity recorded on the snapshot")
	publishCmd.Flags().StringVar(&publishNotes, "notes", "", "free-form notes recorded on the snapshot")
}

func runPublish(cmd *cobra.Command, args []string) error {
	effective := time.Now().UTC()
	if publishEffective != "" {
		parsed, err := time.Parse(time.RFC3339, publishEffective)
		if err != nil {
			return fmt.Errorf("invalid --effective-date %q: %w", publishEffective, err)
		}
		effective = parsed
	}

	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "publish:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	products, err := fetchWorkingSet(backend)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		return fmt.Errorf("working set is empty; nothing to publish")
	}

	mgr := newManager(backend, "warn")
	snapshot, err := mgr.Publish(products, effective, publishBy, publishNotes)
	if err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	if flagJSON {
		return printJSON(snapshot)
	}
	fmt.Println("Snapshot published:", snapshot.ID)
	fmt.Println("  version:  ", snapshot.Version)
	fmt.Println("  status:   ", snapshot.Status)
	fmt.Println("  effective:", snapshot.EffectiveDate.Format(time.RFC3339))
	fmt.Println("  products: ", snapshot.ProductCount)
	return nil
}
