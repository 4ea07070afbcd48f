package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arxml-inspect/internal/adapters"
	"arxml-inspect/internal/app"
)

type scanOptions struct {
	Pattern string
}

func newScanCommand() *cobra.Command {
	opts := scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "Parse every ARXML document below a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runScan(cmd.Context(), cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Pattern, "pattern", adapters.DefaultDocumentPattern, "Glob pattern relative to root")
	_ = viper.BindPFlag("scan.pattern", cmd.Flags().Lookup("pattern"))
	return cmd
}

func runScan(ctx context.Context, cmd *cobra.Command, root string, opts scanOptions) error {
	service := newAppService(cmd)
	result, err := service.Scan(ctx, app.ScanRequest{
		Root:    root,
		Pattern: resolveString(cmd, opts.Pattern, "scan.pattern", "pattern"),
	})
	if err != nil {
		return err
	}
	writeScan(cmd.OutOrStdout(), result)
	if result.Failed > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%d of %d documents failed to parse", result.Failed, len(result.Entries)))
	}
	return nil
}
