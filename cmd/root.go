// Package cmd implements the leafdoctor CLI.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	plain   bool
)

var rootCmd = &cobra.Command{
	Use:   "leafdoctor",
	Short: "Plant disease identification and care advice from leaf photos",
	Long: `LeafDoctor diagnoses plant diseases from leaf photos using a remote
inference server, keeps a garden of saved diagnoses with watering
schedules, and answers plant-care questions with an AI assistant.
It also serves a local web UI and integrates with AI agents via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ~/.leafdoctor.yml)")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "plain output without colors or animations")
}
