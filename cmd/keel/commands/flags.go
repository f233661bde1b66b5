package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/keel/internal/app"
)

func (c *CLI) newFlagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flags [package]",
		Short: "Print compiler and linker flags for a package and its public dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			opts := app.FlagsOptions{Format: format}
			if len(args) == 1 {
				opts.Package = args[0]
			}
			return c.app.Flags(cmd.Context(), resolveOptions(cmd), opts)
		},
	}
	addResolveFlags(cmd)
	cmd.Flags().String("format", "text", "Output format: env, text or yaml")
	return cmd
}
