package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of paper2skill",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("paper2skill %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
