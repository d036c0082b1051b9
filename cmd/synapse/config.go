package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snappingturtle/synapse/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var (
		format string
		env    bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file and
environment overrides have been applied. The output is a valid config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if env {
				for _, k := range config.EnvKeys() {
					fmt.Fprintln(w, k)
				}
				return nil
			}
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			return config.Encode(w, a.cfg, f)
		},
	}
	cmd.Flags().StringVar(&format, "format", "toml", "output format: toml or yaml")
	cmd.Flags().BoolVar(&env, "env", false, "list recognized environment overrides instead")
	return cmd
}
