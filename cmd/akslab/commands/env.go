package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/akslab/cmd/akslab/handlers"
)

// Env returns the command for printing recorded lab outputs.
//
// Without arguments it prints the whole state file; with a key argument it
// prints that key's value alone, handy for shell substitution.
func Env() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "env [KEY]",
		Short: "Print the lab state file, or a single key",
		Args:  cobra.MaximumNArgs(1),
		Long: `Print the recorded lab outputs.

Without arguments the whole KEY=VALUE state file is printed. With a key
argument only that value is printed, which makes it easy to use from
shell scripts:

  az storage blob list --account-name "$(akslab env STORAGE_ACCOUNT)" ...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) > 0 {
				key = args[0]
			}
			return handlers.Env(configPath, key)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: akslab.yaml)")

	return cmd
}
