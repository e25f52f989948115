// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper2skill/internal/catalog"
	"github.com/pdiddy/paper2skill/internal/extract"
	"github.com/pdiddy/paper2skill/internal/loader"
	"github.com/pdiddy/paper2skill/internal/model"
	"github.com/pdiddy/paper2skill/internal/pipeline"
	"github.com/pdiddy/paper2skill/internal/render"
	"github.com/pdiddy/paper2skill/internal/secrets"
	"github.com/pdiddy/paper2skill/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build [document]",
	Short: "Build a skill document from a paper or technical document",
	Long: `Build loads a document, extracts its concepts, theorems, results, tools,
and the most useful implementable method, and writes a Skill.md document.

Supported input formats: ` + strings.Join(loader.SupportedExtensions(), ", ") + `.

By default the output is written next to the input as [stem].skill.md, or
into build.output_dir when configured. With --no-model (or no provider
configured) every stage runs on heuristics alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output file path (default: [stem].skill.md)")
	buildCmd.Flags().Bool("no-model", false, "skip the model even when a provider is configured")
	buildCmd.Flags().String("provider", "", "model provider: anthropic, openai, or ollama")
	buildCmd.Flags().String("model", "", "model identifier (e.g. claude-sonnet-4-5)")
	buildCmd.Flags().Bool("no-catalog", false, "do not record the skill in the catalog")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	docPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := buildConfigFromViper(cmd)

	text, err := loader.Load(docPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Loaded %s (%d characters)\n", docPath, len(text))

	completer := buildCompleter(cmd, cfg.Model)
	if completer == nil {
		fmt.Fprintln(os.Stdout, "No model configured; running heuristic extraction")
	} else {
		fmt.Fprintf(os.Stdout, "Using %s model %s\n", cfg.Model.Provider, cfg.Model.Model)
	}

	st := pipeline.Run(ctx, types.NewState(text, docPath),
		extract.Stages(completer, cfg.Build.KnownLibraries))
	if st.Error != "" {
		return fmt.Errorf("extraction failed: %s", st.Error)
	}

	printSummary(st)

	outPath, err := resolveOutputPath(cmd, cfg.Build, docPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(render.Skill(st)), 0o644); err != nil {
		return fmt.Errorf("writing skill document: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Skill document written to %s\n", outPath)

	// Catalog recording is best-effort: a failed save must not fail the build.
	if noCatalog, _ := cmd.Flags().GetBool("no-catalog"); !noCatalog {
		if err := recordSkill(ctx, cfg.Catalog, st, outPath); err != nil {
			fmt.Fprintf(os.Stderr, "warning: catalog update failed: %v\n", err)
		}
	}

	return nil
}

// buildConfigFromViper assembles the run configuration from the config file
// and environment, with flags taking precedence for the model settings.
func buildConfigFromViper(cmd *cobra.Command) types.Config {
	cfg := types.Config{
		Model: types.ModelConfig{
			Provider:   types.ModelProvider(viper.GetString("model.provider")),
			Model:      viper.GetString("model.model"),
			APIKey:     viper.GetString("model.api_key"),
			BaseURL:    viper.GetString("model.base_url"),
			MaxRetries: viper.GetInt("model.max_retries"),
			Timeout:    viper.GetDuration("model.timeout"),
		},
		Catalog: types.CatalogConfig{
			Dir:        viper.GetString("catalog.dir"),
			MaxResults: viper.GetInt("catalog.max_results"),
		},
		Build: types.BuildConfig{
			OutputDir:      viper.GetString("build.output_dir"),
			KnownLibraries: viper.GetStringSlice("build.known_libraries"),
		},
	}

	if provider, _ := cmd.Flags().GetString("provider"); provider != "" {
		cfg.Model.Provider = types.ModelProvider(provider)
	}
	if modelID, _ := cmd.Flags().GetString("model"); modelID != "" {
		cfg.Model.Model = modelID
	}
	if cfg.Catalog.Dir == "" {
		cfg.Catalog.Dir = "catalog"
	}

	return cfg
}

// buildCompleter constructs the model backend, or returns nil to select the
// heuristic path. A backend that cannot be built (missing key, unknown
// provider) degrades to heuristics with a warning rather than failing the run.
func buildCompleter(cmd *cobra.Command, mc types.ModelConfig) extract.Completer {
	if noModel, _ := cmd.Flags().GetBool("no-model"); noModel {
		return nil
	}
	if mc.Provider == "" {
		return nil
	}

	if mc.APIKey == "" {
		switch mc.Provider {
		case types.ProviderAnthropic:
			mc.APIKey = secrets.Resolve(loadedSecrets, "anthropic-api-key", "ANTHROPIC_API_KEY")
		case types.ProviderOpenAI:
			mc.APIKey = secrets.Resolve(loadedSecrets, "openai-api-key", "OPENAI_API_KEY")
		}
	}

	backend, err := model.New(mc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: model unavailable (%v); using heuristics\n", err)
		return nil
	}
	return backend
}

func printSummary(st types.State) {
	fmt.Fprintf(os.Stdout, "Extracted: %d concepts, %d theorems, %d results, %d tools\n",
		len(st.MainConcepts), len(st.Theorems), len(st.Results), len(st.Tools))
	if st.UsefulValue != nil {
		fmt.Fprintf(os.Stdout, "Most useful value: %s (%s)\n", st.UsefulValue.Name, st.UsefulValue.Type)
	}
}

// resolveOutputPath picks the output file: the --output flag, else
// build.output_dir/[stem].skill.md, else [stem].skill.md next to the input.
func resolveOutputPath(cmd *cobra.Command, bc types.BuildConfig, docPath string) (string, error) {
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		return out, nil
	}

	stem := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	name := stem + ".skill.md"

	if bc.OutputDir != "" {
		if err := os.MkdirAll(bc.OutputDir, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
		return filepath.Join(bc.OutputDir, name), nil
	}
	return filepath.Join(filepath.Dir(docPath), name), nil
}

func recordSkill(ctx context.Context, cc types.CatalogConfig, st types.State, outPath string) error {
	store, err := catalog.NewStore(cc)
	if err != nil {
		return err
	}
	defer store.Close()

	rec := catalog.Record{
		ID:             catalog.RecordID(st.DocumentPath),
		SourceDocument: st.DocumentPath,
		OutputPath:     outPath,
		ConceptCount:   len(st.MainConcepts),
		ToolCount:      len(st.Tools),
		CreatedAt:      time.Now().UTC(),
	}
	if st.UsefulValue != nil {
		rec.Name = st.UsefulValue.Name
		rec.Type = st.UsefulValue.Type
		rec.Summary = st.UsefulValue.Description
	}
	if rec.Name == "" {
		rec.Name = filepath.Base(st.DocumentPath)
	}

	return store.Save(ctx, rec)
}
