package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/LuciCodesStuff/GP2040-CE/pkg/config"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/di"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/logging"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/metrics"
	"github.com/LuciCodesStuff/GP2040-CE/pkg/storage"
)

type contextKey string

const sessionKey contextKey = "session"

// session is the opened option storage shared by the subcommands
type session struct {
	config   *config.Config
	storage  *storage.Storage
	logger   *slog.Logger
	registry *prometheus.Registry
	errOut   io.Writer
}

// app wires the command tree to a dependency container
type app struct {
	container *di.Container
	session   *session
}

// Execute runs the command line. This is called by main.main().
func Execute(container *di.Container) {
	a := &app{container: container}
	err := a.rootCmd().Execute()
	if closeErr := a.close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "optstore",
		Short: "Inspect GP2040-CE option storage images",
		Long: `optstore reads the persisted option image of a GP2040-CE controller.

It decodes the gamepad, board, LED and animation records, reports which
validated records are missing or corrupt, and can rewrite corrupt
animation records with their defaults.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
	}

	root.PersistentFlags().StringP("config", "c", "", "Config file (default "+config.GetDefaultConfigPath()+")")
	root.PersistentFlags().String("image", "", "Image file or pebble directory, overrides media.path")
	root.PersistentFlags().String("backend", "", "Media backend (memory, file or pebble), overrides media.backend")

	root.AddCommand(newInspectCmd(), newVerifyCmd(), newRepairCmd(), newConfigCmd())
	return root
}

// open loads the configuration and opens the storage for the running command
func (a *app) open(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logOpts := cfg.LoggingOptions()
	logOpts.Output = cmd.ErrOrStderr()
	logger, err := logging.New(logOpts)
	if err != nil {
		return err
	}

	var (
		registry *prometheus.Registry
		m        *metrics.Metrics
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		m = metrics.NewMetrics(registry)
	}

	s, err := a.container.OpenStorage(cmd.Context(), cfg, logger, m)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	a.session = &session{
		config:   cfg,
		storage:  s,
		logger:   logger,
		registry: registry,
		errOut:   cmd.ErrOrStderr(),
	}
	cmd.SetContext(context.WithValue(cmd.Context(), sessionKey, a.session))
	return nil
}

// close dumps the collected metrics when enabled and closes the storage
func (a *app) close() error {
	if a.session == nil {
		return nil
	}
	sess := a.session
	a.session = nil

	var metricsErr error
	if sess.registry != nil {
		metricsErr = writeMetrics(sess)
	}
	return errors.Join(metricsErr, sess.storage.Close())
}

func writeMetrics(sess *session) error {
	families, err := sess.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(sess.errOut, mf); err != nil {
			return err
		}
	}
	return nil
}

// loadConfig reads the config file named by --config, or the default path
// when it exists, and applies the flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	explicit := configPath != ""
	if !explicit {
		configPath = config.GetDefaultConfigPath()
	}

	cfg := config.DefaultConfig()
	if explicit || config.ConfigExists(configPath) {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
	}

	if image, _ := cmd.Flags().GetString("image"); image != "" {
		cfg.Media.Path = image
	}
	if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
		cfg.Media.Backend = backend
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func sessionFrom(cmd *cobra.Command) (*session, error) {
	sess, ok := cmd.Context().Value(sessionKey).(*session)
	if !ok {
		return nil, fmt.Errorf("storage not found in context")
	}
	return sess, nil
}
