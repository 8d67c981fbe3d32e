// Export command: write a snapshot's products to a file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wickers-data/catalog/pkg/publish"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export <snapshotID>",
	Short: "Export a snapshot as an ADL JSON feed or a spreadsheet",
	Long: `Export writes a snapshot's product copy to a file. The adl format is an
indented JSON passthrough of the raw product records; xlsx renders a
spreadsheet with one column per list attribute.

Example:
  catalogctl export snapshot_2026-08-28_10-00-00-000 --out feed.json
  catalogctl export snapshot_2026-08-28_10-00-00-000 --format xlsx --out catalog.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "adl", "export format: adl or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default: <snapshotID>.json or .xlsx)")
}

func runExport(cmd *cobra.Command, args []string) error {
	id := args[0]

	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	mgr := newManager(backend, "warn")
	snapshot, err := mgr.Get(id)
	if err != nil {
		return fmt.Errorf("get snapshot %s: %w", id, err)
	}

	var data []byte
	var defaultExt string
	switch exportFormat {
	case "adl":
		data, err = publish.ExportADL(snapshot)
		defaultExt = ".json"
	case "xlsx":
		engine, engErr := loadEngine()
		if engErr != nil {
			return fmt.Errorf("load attribute engine: %w", engErr)
		}
		data, err = publish.ExportXLSX(snapshot, engine)
		defaultExt = ".xlsx"
	default:
		return fmt.Errorf("unknown export format %q (valid: adl, xlsx)", exportFormat)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", id, err)
	}

	out := exportOut
	if out == "" {
		out = id + defaultExt
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "export:", err)
		os.Exit(exitSysError)
	}

	fmt.Printf("Exported %d product(s) to %s\n", snapshot.ProductCount, out)
	return nil
}
