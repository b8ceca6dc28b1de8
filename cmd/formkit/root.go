package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

// app is the state shared by every subcommand once the root command has
// loaded the configuration.
type app struct {
	settings config.Settings
	log      *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		envFiles []string
		backend  string
	)

	cmd := &cobra.Command{
		Use:   "formkit",
		Short: "formkit runs the sample forms against a configurable backend",
		Long: `formkit validates the lesson, address and profile sample forms from the
command line and serves them, together with the backend protocol, over HTTP.

Configuration comes from the environment (FORMKIT_*, LOG_*, REDIS_*, HTTP)
and optional .env files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadEnvFiles(envFiles...); err != nil {
				return err
			}
			if err := config.Load(&a.settings); err != nil {
				return err
			}
			if backend != "" {
				a.settings.Backend = backend
			}
			if err := a.settings.Validate(); err != nil {
				return err
			}

			format := logger.FormatText
			if a.settings.LogFormat == string(logger.FormatJSON) {
				format = logger.FormatJSON
			}
			a.log = logger.New(
				logger.WithEnvironment(a.settings.AppEnv, "formkit"),
				logger.WithFormat(format),
				logger.WithLevelName(a.settings.LogLevel),
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithAttr(slog.String("backend", a.settings.Backend)),
				logger.WithContextExtractors(requestid.LoggerExtractor()),
			)
			return nil
		},
	}

	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "load variables from these .env files first")
	cmd.PersistentFlags().StringVar(&backend, "backend", "", fmt.Sprintf("backend kind, overrides FORMKIT_BACKEND (%s, %s or %s)",
		config.BackendMemory, config.BackendRedis, config.BackendHTTP))

	cmd.AddCommand(
		newCheckCmd(a),
		newLessonCmd(a),
		newAddressCmd(a),
		newProtocolCmd(a),
		newServeCmd(a),
	)
	return cmd
}
