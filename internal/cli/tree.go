package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arxml-inspect/internal/app"
)

type treeCommandOptions struct {
	Ports       bool
	Connections bool
	Depth       int
}

func newTreeCommand() *cobra.Command {
	opts := treeCommandOptions{}
	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the package and component tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Ports, "ports", false, "Show component ports")
	cmd.Flags().BoolVar(&opts.Connections, "connections", false, "Show composition connectors")
	cmd.Flags().IntVar(&opts.Depth, "depth", 0, "Package levels to expand (0 for all)")
	_ = viper.BindPFlag("tree.ports", cmd.Flags().Lookup("ports"))
	_ = viper.BindPFlag("tree.connections", cmd.Flags().Lookup("connections"))
	_ = viper.BindPFlag("tree.depth", cmd.Flags().Lookup("depth"))
	return cmd
}

func runTree(ctx context.Context, cmd *cobra.Command, path string, opts treeCommandOptions) error {
	service := newAppService(cmd)
	th, err := resolveTheme(cmd, service)
	if err != nil {
		return err
	}
	result, err := service.Open(ctx, app.OpenRequest{Path: path, Remember: true})
	if err != nil {
		return err
	}
	tree := documentTree(result.Document, treeOptions{
		Ports:       resolveBool(cmd, opts.Ports, "tree.ports", "ports"),
		Connections: resolveBool(cmd, opts.Connections, "tree.connections", "connections"),
		Depth:       resolveInt(cmd, opts.Depth, "tree.depth", "depth"),
	}, th)
	renderTree(cmd.OutOrStdout(), tree, th)
	return nil
}
