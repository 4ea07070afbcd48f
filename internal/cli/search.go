package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arxml-inspect/internal/app"
	"arxml-inspect/internal/types"
)

type searchOptions struct {
	Scope      string
	Mode       string
	Types      []string
	Directions []string
	Package    string
	Limit      int
}

func newSearchCommand() *cobra.Command {
	opts := searchOptions{}
	cmd := &cobra.Command{
		Use:   "search <file> <query>",
		Short: "Search packages, components, ports and interfaces",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, args[0], strings.Join(args[1:], " "), opts)
		},
	}
	cmd.Flags().StringVar(&opts.Scope, "scope", "", "Search scope (all, packages, components, ports, interfaces)")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "Match mode (contains, prefix, suffix, exact, regex, fuzzy)")
	cmd.Flags().StringSliceVar(&opts.Types, "type", nil, "Component types to keep")
	cmd.Flags().StringSliceVar(&opts.Directions, "direction", nil, "Port directions to keep (provided, required)")
	cmd.Flags().StringVar(&opts.Package, "package", "", "Package path prefix")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Maximum number of results")
	_ = viper.BindPFlag("search.scope", cmd.Flags().Lookup("scope"))
	_ = viper.BindPFlag("search.mode", cmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("search.types", cmd.Flags().Lookup("type"))
	_ = viper.BindPFlag("search.directions", cmd.Flags().Lookup("direction"))
	_ = viper.BindPFlag("search.package", cmd.Flags().Lookup("package"))
	_ = viper.BindPFlag("search.max_results", cmd.Flags().Lookup("limit"))
	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, path string, text string, opts searchOptions) error {
	service := newAppService(cmd)
	query := types.SearchQuery{
		Text:  text,
		Scope: types.SearchScope(resolveString(cmd, opts.Scope, "search.scope", "scope")),
		Mode:  types.SearchMode(resolveString(cmd, opts.Mode, "search.mode", "mode")),
		Filter: types.SearchFilter{
			PackagePrefix: resolveString(cmd, opts.Package, "search.package", "package"),
		},
		Limit: resolveInt(cmd, opts.Limit, "search.max_results", "limit"),
	}
	for _, value := range resolveStrings(cmd, opts.Types, "search.types", "type") {
		query.Filter.ComponentTypes = append(query.Filter.ComponentTypes, types.ComponentType(strings.ToLower(value)))
	}
	for _, value := range resolveStrings(cmd, opts.Directions, "search.directions", "direction") {
		query.Filter.Directions = append(query.Filter.Directions, types.PortDirection(strings.ToLower(value)))
	}
	result, err := service.Search(ctx, app.SearchRequest{Path: path, Query: query})
	if err != nil {
		return err
	}
	writeSearchResults(cmd.OutOrStdout(), result)
	return nil
}
