package main

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	currency "github.com/malusev998/currency-agency"
	"github.com/malusev998/currency-agency/cli/cmd"
	"github.com/malusev998/currency-agency/fetchers"
	"github.com/malusev998/currency-agency/services"
	"github.com/malusev998/currency-agency/storage"
)

func closeStorages(storages []currency.Storage) {
	for _, st := range storages {
		_ = st.Close()
	}
}

func createStorages(config *Config) ([]currency.Storage, error) {
	storages := make([]currency.Storage, 0, len(config.Storage))
	for _, s := range config.Storage {
		c, ok := config.StorageConfig[s]
		if !ok {
			closeStorages(storages)
			return nil, fmt.Errorf("storage %s does not exist", s)
		}

		st, err := storage.NewStorage(s, c)

		if err != nil {
			closeStorages(storages)
			return nil, err
		}

		storages = append(storages, st)
	}

	return storages, nil
}

func createUpdateStrategy(config *Config) (currency.UpdateStrategy, error) {
	chain := make(fetchers.Chain, 0, len(config.Fetchers))

	for _, f := range config.Fetchers {
		c, ok := config.FetchersConfig[f]

		if !ok {
			return nil, fmt.Errorf("fetcher %s does not exist", f)
		}

		strategy, err := fetchers.NewUpdateStrategy(f, c)
		if err != nil {
			return nil, err
		}

		chain = append(chain, strategy)
	}

	return chain, nil
}

func newServices(ctx context.Context, storages []currency.Storage, strategy currency.UpdateStrategy, logger log.Logger, registerer prometheus.Registerer) *cmd.Services {
	metrics := services.NewMetrics(registerer)
	debug := level.Debug(logger)

	var update currency.UpdateService = services.UpdateService{
		Ctx:      ctx,
		Strategy: strategy,
		Storages: storages,
	}
	update = services.NewLoggingUpdateService(debug, update)
	update = services.NewInstrumentingUpdateService(metrics, update)

	var rates currency.RateService = services.RateService{
		Ctx:      ctx,
		Storages: storages,
	}
	rates = services.NewLoggingRateService(debug, rates)
	rates = services.NewInstrumentingRateService(metrics, rates)

	return &cmd.Services{
		Storages: storages,
		Update:   update,
		Rates:    rates,
	}
}

func build(ctx context.Context, v *viper.Viper, logger log.Logger) (*cmd.Services, error) {
	config, err := getConfig(ctx, v)
	if err != nil {
		return nil, err
	}

	strategy, err := createUpdateStrategy(config)
	if err != nil {
		return nil, err
	}

	storages, err := createStorages(config)
	if err != nil {
		return nil, err
	}

	return newServices(ctx, storages, strategy, logger, prometheus.DefaultRegisterer), nil
}
