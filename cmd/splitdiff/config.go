package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return exitError(1, "failed to load config: %v", err)
			}
			text, err := cfg.Dump()
			if err != nil {
				return exitError(1, "failed to render config: %v", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "config", "", "Config file (default: .splitdiff.yaml if present)")
	return cmd
}
