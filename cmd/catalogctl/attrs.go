// Attribute catalog commands: attrs and counts.
package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var attrsCmd = &cobra.Command{
	Use:   "attrs",
	Short: "List attribute definitions",
	Args:  cobra.NoArgs,
	RunE:  runAttrs,
}

var countsCmd = &cobra.Command{
	Use:   "counts <attrID>",
	Short: "Show distinct-value counts for an attribute across the working set",
	Long: `Counts tallies how often each distinct value of an attribute occurs in
the product working set. Multi-select values are counted per element, so
percentages are shares of value occurrences, not of products.

Example:
  catalogctl counts brand
  catalogctl counts subCategories --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCounts,
}

func runAttrs(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine()
	if err != nil {
		return fmt.Errorf("load attribute engine: %w", err)
	}

	attrs := engine.All()
	if flagJSON {
		return printJSON(attrs)
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tTYPE\tFILTER\tSEARCH")
	fmt.Fprintln(w, "--\t-----\t----\t------\t------")
	for _, a := range attrs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\n",
			a.ID, a.Label, a.DataType, a.Filterable, a.Searchable)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
	fmt.Printf("Total: %d attribute(s)\n", len(attrs))
	return nil
}

func runCounts(cmd *cobra.Command, args []string) error {
	attrID := args[0]

	engine, err := loadEngine()
	if err != nil {
		return fmt.Errorf("load attribute engine: %w", err)
	}
	if _, ok := engine.ByID(attrID); !ok {
		return fmt.Errorf("unknown attribute %q", attrID)
	}

	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "counts:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	products, err := fetchWorkingSet(backend)
	if err != nil {
		return err
	}

	counts := engine.ValueCounts(products, attrID)
	if flagJSON {
		return printJSON(counts)
	}

	if len(counts) == 0 {
		fmt.Println("No values found.")
		return nil
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tCOUNT\tPERCENT")
	fmt.Fprintln(w, "-----\t-----\t-------")
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", c.Value, c.Count, c.Percentage)
	}
	w.Flush()

	for _, line := range strings.Split(sb.String(), "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}
	return nil
}
