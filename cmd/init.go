package cmd

import (
	"github.com/spf13/cobra"

	"github.com/leafdoctor/leafdoctor/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize leafdoctor configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the inference server, your location and units, and writes ~/.leafdoctor.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			var err error
			path, err = config.DefaultPath()
			if err != nil {
				return err
			}
		}
		_, err := config.RunWizard(path)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
