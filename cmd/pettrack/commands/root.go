// Package commands wires the pettrack CLI.
package commands

import (
	"github.com/spf13/cobra"

	"pettrack/internal/config"
)

var (
	configPath string
	cfg        config.Config
)

// Execute runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:          "pettrack",
		Short:        "Pet nutrition and weight tracking server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			return err
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "pettrack.toml", "path to TOML config file")

	root.AddCommand(serveCmd(), addUserCmd())
	return root.Execute()
}
