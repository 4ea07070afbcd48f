package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arxml-inspect/internal/app"
)

type validateOptions struct {
	Strict bool
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Parse a document and report its warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when the document has warnings")
	_ = viper.BindPFlag("validate.strict", cmd.Flags().Lookup("strict"))
	return cmd
}

func runValidate(ctx context.Context, cmd *cobra.Command, path string, opts validateOptions) error {
	service := newAppService(cmd)
	th, err := resolveTheme(cmd, service)
	if err != nil {
		return err
	}
	result, err := service.Validate(ctx, app.ValidateRequest{
		Path:   path,
		Strict: resolveBool(cmd, opts.Strict, "validate.strict", "strict"),
	})
	if result.Document.Root == nil {
		return err
	}
	out := cmd.OutOrStdout()
	writeWarnings(out, result.Warnings, th)
	if len(result.Counts) > 0 {
		kinds := make([]string, 0, len(result.Counts))
		for kind, count := range result.Counts {
			kinds = append(kinds, fmt.Sprintf("%s=%d", kind, count))
		}
		sort.Strings(kinds)
		fmt.Fprintf(out, "by kind: %s\n", strings.Join(kinds, ", "))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "validated: %s\n", result.Document.SourcePath)
	return nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func resolveBool(cmd *cobra.Command, value bool, key string, flagName string) bool {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetBool(key)
}

func resolveInt(cmd *cobra.Command, value int, key string, flagName string) int {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetInt(key)
}

func resolveDuration(cmd *cobra.Command, value time.Duration, key string, flagName string) time.Duration {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetDuration(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
