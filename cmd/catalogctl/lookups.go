// Lookups command: reference data listing.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wickers-data/catalog/pkg/types"
)

var lookupsTableFilter string

var lookupsCmd = &cobra.Command{
	Use:   "lookups",
	Short: "List lookup reference rows",
	Long: `Lookups lists the reference rows used for dropdowns and validation,
grouped by logical table (brands, categories, program_types).

Example:
  catalogctl lookups
  catalogctl lookups --table brands`,
	Args: cobra.NoArgs,
	RunE: runLookups,
}

func init() {
	lookupsCmd.Flags().StringVar(&lookupsTableFilter, "table", "", "restrict to one logical table")
}

func runLookups(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "lookups:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableLookups)
	if err != nil {
		return fmt.Errorf("get lookups table: %w", err)
	}

	var filter map[string]any
	if lookupsTableFilter != "" {
		filter = map[string]any{"table_name": lookupsTableFilter}
	}
	entities, err := table.Fetch(filter)
	if err != nil {
		return fmt.Errorf("fetch lookups: %w", err)
	}

	lookups := make([]*types.Lookup, len(entities))
	for i, entity := range entities {
		lookups[i] = entity.(*types.Lookup)
	}

	if flagJSON {
		return printJSON(lookups)
	}

	if len(lookups) == 0 {
		fmt.Println("No lookups found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tNAME\tORDINAL")
	fmt.Fprintln(w, "-----\t----\t-------")
	for _, l := range lookups {
		fmt.Fprintf(w, "%s\t%s\t%d\n", l.TableName, l.Name, l.Ordinal)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
	fmt.Printf("Total: %d lookup(s)\n", len(lookups))
	return nil
}
