// Product working-set commands: list, get, set, delete.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wickers-data/catalog/pkg/types"
)

var (
	productsQuery   string
	productsFilters []string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the product working set",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products with optional filters and search",
	Long: `List fetches the product working set, narrowed by attribute filters
and free-text search.

Filters are attrID=value pairs; multiple filters are ANDed together.
Search matches style code, name, and searchable attributes.

Example:
  catalogctl products list
  catalogctl products list --filter brand=Wickers --filter category=Footwear
  catalogctl products list --q "merino"
  catalogctl products list --json`,
	Args: cobra.NoArgs,
	RunE: runProductsList,
}

var productsGetCmd = &cobra.Command{
	Use:   "get <styleCode>",
	Short: "Get a product by style code",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsGet,
}

var productsSetCmd = &cobra.Command{
	Use:   "set <file.json>",
	Short: "Upsert a product from a JSON file (use - for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsSet,
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <styleCode>",
	Short: "Delete a product from the working set",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsDelete,
}

func init() {
	productsListCmd.Flags().StringVar(&productsQuery, "q", "", "free-text search query")
	productsListCmd.Flags().StringArrayVar(&productsFilters, "filter", nil, "attribute filter as attrID=value (repeatable)")

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsGetCmd)
	productsCmd.AddCommand(productsSetCmd)
	productsCmd.AddCommand(productsDeleteCmd)
}

func runProductsList(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "products list:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	engine, err := loadEngine()
	if err != nil {
		return fmt.Errorf("load attribute engine: %w", err)
	}

	products, err := fetchWorkingSet(backend)
	if err != nil {
		return err
	}

	filters := make(map[string]string, len(productsFilters))
	for _, arg := range productsFilters {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid filter %q (expected attrID=value)", arg)
		}
		filters[parts[0]] = parts[1]
	}

	matched := engine.ApplyFilters(products, filters, productsQuery)

	if flagJSON {
		return printJSON(matched)
	}
	printProductTable(matched)
	return nil
}

func runProductsGet(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "products get:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableProducts)
	if err != nil {
		return fmt.Errorf("get products table: %w", err)
	}
	entity, err := table.Get(args[0])
	if err != nil {
		return fmt.Errorf("get product %s: %w", args[0], err)
	}
	return printJSON(entity)
}

func runProductsSet(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if args[0] == "-" {
		data, err = readAllStdin()
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read product data: %w", err)
	}

	product, err := types.NewProduct(data)
	if err != nil {
		return fmt.Errorf("parse product: %w", err)
	}
	if product.StyleCode() == "" {
		return fmt.Errorf("product has no style code")
	}

	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "products set:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableProducts)
	if err != nil {
		return fmt.Errorf("get products table: %w", err)
	}
	id, err := table.Set("", &product)
	if err != nil {
		return fmt.Errorf("set product: %w", err)
	}

	fmt.Println("Product stored:", id)
	return nil
}

func runProductsDelete(cmd *cobra.Command, args []string) error {
	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "products delete:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	table, err := backend.GetTable(types.TableProducts)
	if err != nil {
		return fmt.Errorf("get products table: %w", err)
	}
	if err := table.Delete(args[0]); err != nil {
		return fmt.Errorf("delete product %s: %w", args[0], err)
	}

	fmt.Println("Product deleted:", args[0])
	return nil
}

// readAllStdin slurps stdin for `products set -`.
func readAllStdin() ([]byte, error) {
	return io.ReadAll(os.Stdin)
}

// printProductTable prints products in a human-readable table format.
func printProductTable(products []types.Product) {
	if len(products) == 0 {
		fmt.Println("No products found.")
		return
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "STYLE CODE\tNAME")
	fmt.Fprintln(w, "----------\t----")
	for _, p := range products {
		name := p.Name()
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\n", p.StyleCode(), name)
	}
	w.Flush()

	output := sb.String()
	for _, line := range strings.Split(output, "\n") {
		fmt.Println(strings.TrimRight(line, " "))
	}

	fmt.Printf("Total: %d product(s)\n", len(products))
}
