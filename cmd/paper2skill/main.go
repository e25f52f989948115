// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper2skill CLI.
// See docs/ARCHITECTURE § CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper2skill/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the paper2skill CLI.
var rootCmd = &cobra.Command{
	Use:   "paper2skill",
	Short: "Turn papers and technical documents into actionable skill documents",
	Long: `paper2skill reads a document (Markdown, plain text, PDF, or Word), runs a
fixed extraction pipeline over it, and writes a self-contained Skill.md
describing what to build, why, and how.

Extraction works without any model configuration: every stage has a
heuristic path. When a model provider is configured the stages ask the
model first and fall back to heuristics on any failure.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper2skill.yaml or ~/.config/paper2skill/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper2skill")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper2skill"))
		}
	}

	viper.SetEnvPrefix("PAPER2SKILL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
