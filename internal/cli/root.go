package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"arxml-inspect/internal/app"
	"arxml-inspect/internal/types"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "ARXML_INSPECT"

type RootConfig struct {
	ConfigFile  string
	ConfigDir   string
	LogLevel    string
	LogFile     string
	Debug       bool
	Theme       string
	MetricsFile string
}

// appService is shared by the running command and the post-run hook so
// that parse metrics collected during the run can be flushed.
var appService *app.Service

var logFile *os.File

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	root := newRootCommand()
	err := root.ExecuteContext(ctx)
	interrupted := ctx.Err() != nil
	stop()
	if logFile != nil {
		_ = logFile.Close()
	}
	if err != nil {
		if interrupted {
			os.Exit(0)
		}
		log.Debug().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %s\n", errorMessage(err))
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "arxml-inspect [file]",
		Short:         "Inspect AUTOSAR ARXML software component models",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appService = nil
			if err := initConfig(cfg.ConfigFile, resolveConfigDir(cmd)); err != nil {
				return err
			}
			if err := setupLogging(
				viper.GetString("log_level"),
				resolveBool(cmd, cfg.Debug, "debug", "debug"),
				resolveString(cmd, cfg.LogFile, "log_file", "log-file"),
			); err != nil {
				return err
			}
			cmd.SetContext(log.Logger.WithContext(cmd.Context()))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd.Context(), cmd, args)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.ConfigDir, "config-dir", "", "Directory holding config.yaml and recent files")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.StringVar(&cfg.LogFile, "log-file", "", "Append logs to this file")
	flags.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	flags.StringVar(&cfg.Theme, "theme", "", "Output theme (dark, light, plain)")
	flags.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write parse metrics in Prometheus text format")
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log_file", flags.Lookup("log-file"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("config_dir", flags.Lookup("config-dir"))
	_ = viper.BindPFlag("theme", flags.Lookup("theme"))
	_ = viper.BindPFlag("metrics_file", flags.Lookup("metrics-file"))

	cmd.AddCommand(newTreeCommand())
	cmd.AddCommand(newSearchCommand())
	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newScanCommand())
	cmd.AddCommand(newWatchCommand())
	cmd.AddCommand(newRecentCommand())

	for _, c := range append([]*cobra.Command{cmd}, cmd.Commands()...) {
		if c.RunE != nil {
			c.RunE = flushMetricsAfter(c.RunE, &cfg)
		}
	}
	return cmd
}

// flushMetricsAfter writes the metrics textfile once the command is done,
// whether or not it failed. Post-run hooks are skipped on error.
func flushMetricsAfter(run func(*cobra.Command, []string) error, cfg *RootConfig) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		runErr := run(cmd, args)
		path := resolveString(cmd, cfg.MetricsFile, "metrics_file", "metrics-file")
		if path == "" || appService == nil {
			return runErr
		}
		if err := appService.WriteMetrics(path); err != nil {
			if runErr != nil {
				log.Ctx(cmd.Context()).Warn().Err(err).Str("path", path).Msg("failed to write metrics")
				return runErr
			}
			return err
		}
		return runErr
	}
}

// runRoot opens the file given on the command line and prints a summary.
// Without a file it lists the recently opened ones.
func runRoot(ctx context.Context, cmd *cobra.Command, args []string) error {
	service := newAppService(cmd)
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		recent, err := service.Recent(app.RecentRequest{})
		if err != nil {
			return err
		}
		if len(recent) == 0 {
			fmt.Fprintln(out, "no recent files; run arxml-inspect <file> to open one")
			return nil
		}
		fmt.Fprintln(out, "recent files:")
		for _, path := range recent {
			fmt.Fprintf(out, "- %s\n", path)
		}
		return nil
	}
	th, err := resolveTheme(cmd, service)
	if err != nil {
		return err
	}
	result, err := service.Open(ctx, app.OpenRequest{Path: args[0], Remember: true})
	if err != nil {
		return err
	}
	writeSummary(out, result, th)
	return nil
}

func newAppService(cmd *cobra.Command) app.Service {
	if appService == nil {
		service := app.NewService(resolveConfigDir(cmd))
		appService = &service
	}
	return *appService
}

func resolveConfigDir(cmd *cobra.Command) string {
	var value string
	if cmd != nil {
		value, _ = cmd.Flags().GetString("config-dir")
	}
	if dir := resolveString(cmd, value, "config_dir", "config-dir"); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return ".arxml-inspect"
	}
	return filepath.Join(base, "arxml-inspect")
}

func initConfig(configFile string, configDir string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string, debug bool, path string) error {
	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}}
	if path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to open log file").
				WithCause(err)
		}
		if logFile != nil {
			_ = logFile.Close()
		}
		logFile = file
		writers = append(writers, file)
	}
	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
	if debug {
		level = "debug"
	}
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return nil
}

func exitCodeForError(err error) int {
	var parseErr *types.ParseError
	if errors.As(err, &parseErr) {
		return 1
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeFailedPrecondition:
		return 4
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
