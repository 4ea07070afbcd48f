package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"arxml-inspect/internal/app"
)

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file> <name>",
		Short: "Describe the packages, components, ports or interfaces with a given name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), cmd, args[0], strings.Join(args[1:], " "))
		},
	}
}

func runShow(ctx context.Context, cmd *cobra.Command, path string, name string) error {
	service := newAppService(cmd)
	th, err := resolveTheme(cmd, service)
	if err != nil {
		return err
	}
	result, err := service.Show(ctx, app.ShowRequest{Path: path, Name: name})
	if err != nil {
		return err
	}
	writeShow(cmd.OutOrStdout(), result, name, th)
	return nil
}
