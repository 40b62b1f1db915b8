package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	currency "github.com/malusev998/currency-agency"
)

type (
	Services struct {
		Storages []currency.Storage
		Update   currency.UpdateService
		Rates    currency.RateService
	}

	// Builder wires storages and services once the config file is loaded.
	Builder func(ctx context.Context, v *viper.Viper, logger log.Logger) (*Services, error)

	Config struct {
		Ctx    context.Context
		Logger log.Logger
		Viper  *viper.Viper
		Build  Builder

		services   *Services
		logger     log.Logger
		debug      bool
		configFile string
	}
)

func (c *Config) readConfig() error {
	absolutePath, err := filepath.Abs(c.configFile)
	if err != nil {
		return err
	}

	c.Viper.SetConfigFile(absolutePath)
	c.Viper.SetEnvPrefix("CURRENCY_AGENCY")
	c.Viper.AutomaticEnv()

	if err := c.Viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}

func (c *Config) setup(cmd *cobra.Command, args []string) error {
	if c.Ctx == nil {
		c.Ctx = context.Background()
	}

	if c.Viper == nil {
		c.Viper = viper.New()
	}

	if c.Logger == nil {
		c.Logger = log.NewLogfmtLogger(log.NewSyncWriter(cmd.ErrOrStderr()))
	}

	if c.debug {
		c.logger = level.NewFilter(c.Logger, level.AllowDebug())
	} else {
		c.logger = level.NewFilter(c.Logger, level.AllowInfo())
	}

	if err := c.readConfig(); err != nil {
		return err
	}

	services, err := c.Build(c.Ctx, c.Viper, c.logger)
	if err != nil {
		return err
	}

	c.services = services

	return nil
}

func (c *Config) teardown(cmd *cobra.Command, args []string) error {
	if c.services == nil {
		return nil
	}

	for _, st := range c.services.Storages {
		if err := st.Close(); err != nil {
			_ = level.Warn(c.logger).Log("msg", "storage not closed", "storage", st.GetStorageProviderName(), "err", err)
		}
	}

	return nil
}

func NewRootCommand(config *Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:                "currency-agency",
		Short:              "Currency agency rate resolution",
		Version:            "v2.0.0",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  config.setup,
		PersistentPostRunE: config.teardown,
	}

	rootCmd.PersistentFlags().BoolVar(&config.debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&config.configFile, "config", "./config.yml", "Path to config file")

	rootCmd.AddCommand(
		create(config),
		update(config),
		rate(config),
		convert(config),
		rates(config),
	)

	return rootCmd
}

func Execute(config *Config) error {
	return NewRootCommand(config).Execute()
}
