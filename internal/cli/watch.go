package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arxml-inspect/internal/adapters"
	"arxml-inspect/internal/app"
)

func newWatchCommand() *cobra.Command {
	debounce := adapters.DefaultDebounce
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Reload and summarize a document whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd, args[0], debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", adapters.DefaultDebounce, "Quiet period before reloading")
	_ = viper.BindPFlag("watch.debounce", cmd.Flags().Lookup("debounce"))
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, path string, debounce time.Duration) error {
	service := newAppService(cmd)
	th, err := resolveTheme(cmd, service)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	return service.Watch(ctx, app.WatchRequest{
		Path:     path,
		Debounce: resolveDuration(cmd, debounce, "watch.debounce", "debounce"),
		OnLoad: func(result app.OpenResult, err error) {
			if err != nil {
				log.Ctx(ctx).Error().Err(err).Str("path", path).Msg("reload failed, keeping previous model")
				return
			}
			fmt.Fprintln(out, "---")
			writeSummary(out, result, th)
		},
	})
}
