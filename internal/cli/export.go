package cli

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arxml-inspect/internal/app"
	"arxml-inspect/internal/types"
)

type exportOptions struct {
	Format string
	Output string
}

func newExportCommand() *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the parsed model as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", "", "Export format (json, yaml); inferred from --output when empty")
	cmd.Flags().StringVar(&opts.Output, "output", "-", "Output file, - for stdout")
	_ = viper.BindPFlag("export.format", cmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("export.output", cmd.Flags().Lookup("output"))
	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, path string, opts exportOptions) error {
	service := newAppService(cmd)
	result, err := service.Export(ctx, app.ExportRequest{
		Path:   path,
		Format: types.ExportFormat(strings.ToLower(resolveString(cmd, opts.Format, "export.format", "format"))),
		Output: resolveString(cmd, opts.Output, "export.output", "output"),
		Writer: cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("format", string(result.Format)).Str("output", result.Output).Msg("model exported")
	return nil
}
