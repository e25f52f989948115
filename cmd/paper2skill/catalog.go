// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper2skill/internal/catalog"
	"github.com/pdiddy/paper2skill/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List and search previously generated skill documents",
	Long: `Catalog manages the local SQLite index of generated skills. Every build
records its skill here; use subcommands to list past runs or search them
by name and summary text.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List generated skills, newest first",
	RunE:  runCatalogList,
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over skill names and summaries",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogSearch,
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON on stdout",
	RunE:  runCatalogExport,
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", "", "catalog directory (default: catalog/ or catalog.dir from config)")
	catalogCmd.PersistentFlags().Int("limit", 0, "maximum results (0 = use default)")
	catalogCmd.PersistentFlags().Bool("json", false, "output results as JSON")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCatalogOutput(records, jsonOutput)
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatCatalogOutput(records, jsonOutput)
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml", "":
		return store.ExportYAML(context.Background(), os.Stdout)
	case "json":
		return store.ExportJSON(context.Background(), os.Stdout)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	dir, _ := cmd.Flags().GetString("catalog-dir")
	if dir == "" {
		dir = viper.GetString("catalog.dir")
	}
	if dir == "" {
		dir = "catalog"
	}

	return catalog.NewStore(types.CatalogConfig{
		Dir:        dir,
		MaxResults: viper.GetInt("catalog.max_results"),
	})
}

func formatCatalogOutput(records []catalog.Record, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("No skills found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-12s  %-30s  %s\n", "Name", "Type", "Source", "Created")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for _, r := range records {
		name := r.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		source := r.SourceDocument
		if len(source) > 30 {
			source = source[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-12s  %-30s  %s\n",
			name, r.Type, source, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(os.Stdout, "\n%d skills\n", len(records))
	return nil
}
