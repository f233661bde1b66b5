package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Resolve the dependency graph and check every binary can be obtained",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.app.Install(cmd.Context(), resolveOptions(cmd))
			return err
		},
	}
	addResolveFlags(cmd)
	return cmd
}

func (c *CLI) newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the resolved dependency graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Info(cmd.Context(), resolveOptions(cmd))
		},
	}
	addResolveFlags(cmd)
	return cmd
}

func (c *CLI) newLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock [path]",
		Short: "Resolve the dependency graph and write it to a lockfile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return c.app.Lock(cmd.Context(), resolveOptions(cmd), path)
		},
	}
	addResolveFlags(cmd)
	return cmd
}
