package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"arxml-inspect/internal/app"
)

func newRecentCommand() *cobra.Command {
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List or clear recently opened files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recent, err := newAppService(cmd).Recent(app.RecentRequest{Clear: clearAll})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if clearAll {
				fmt.Fprintln(out, "recent files cleared")
				return nil
			}
			for _, path := range recent {
				fmt.Fprintln(out, path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Forget all recent files")
	return cmd
}
