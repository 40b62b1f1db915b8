package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	currency "github.com/malusev998/currency-agency"
	"github.com/malusev998/currency-agency/fetchers"
	"github.com/malusev998/currency-agency/storage"
)

type (
	FetchersConfig map[currency.Provider]interface{}
	StorageConfig  map[storage.Provider]interface{}
	Config         struct {
		Fetchers          []currency.Provider
		Storage           []storage.Provider
		FetchersConfig    FetchersConfig
		StorageConfig     StorageConfig
		CurrenciesToFetch []string
	}
)

var ErrNoStorageConfigured = errors.New("at least one storage must be configured")

func getMysqlDSN(config map[string]string) string {
	mysqlDriverConfig := mysql.NewConfig()
	mysqlDriverConfig.User = config["user"]
	mysqlDriverConfig.Passwd = config["password"]
	mysqlDriverConfig.Addr = config["addr"]
	mysqlDriverConfig.Net = "tcp"
	mysqlDriverConfig.DBName = config["db"]

	return mysqlDriverConfig.FormatDSN()
}

func parseLimit(config map[string]string, key string) (int, error) {
	value, ok := config[key]
	if !ok || value == "" {
		return 0, nil
	}

	limit, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("error while parsing %s in fetchers.freecurrconv: %w", key, err)
	}

	return int(limit), nil
}

func getConfig(ctx context.Context, v *viper.Viper) (*Config, error) {
	mysqlConfig := v.GetStringMapString("databases.mysql")
	mongodbConfig := v.GetStringMapString("databases.mongo")
	fetcherConfig := v.GetStringMapString("fetchers.freecurrconv")

	maxPerHour, err := parseLimit(fetcherConfig, "maxperhour")
	if err != nil {
		return nil, err
	}

	maxPerRequest, err := parseLimit(fetcherConfig, "maxperrequest")
	if err != nil {
		return nil, err
	}

	providers, err := currency.ConvertToProvidersFromStringSlice(v.GetStringSlice("fetchers.fetch"))
	if err != nil {
		return nil, err
	}

	storages, err := storage.ConvertToProvidersFromStringSlice(v.GetStringSlice("storage"))
	if err != nil {
		return nil, err
	}

	if len(storages) == 0 {
		return nil, ErrNoStorageConfigured
	}

	storageBaseConfig := storage.BaseConfig{
		Cxt:     ctx,
		Migrate: v.GetBool("migrate"),
	}

	pairs := v.GetStringSlice("currencies")

	return &Config{
		Fetchers: providers,
		Storage:  storages,
		StorageConfig: StorageConfig{
			storage.MySQL: storage.MySQLConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: getMysqlDSN(mysqlConfig),
				TableName:        mysqlConfig["table"],
			},
			storage.MongoDB: storage.MongoDBConfig{
				BaseConfig:       storageBaseConfig,
				ConnectionString: mongodbConfig["uri"],
				Database:         mongodbConfig["db"],
				Collection:       mongodbConfig["collection"],
			},
			storage.Memory: storage.MemoryConfig{},
		},
		FetchersConfig: FetchersConfig{
			currency.ExchangeRatesAPIProvider: fetchers.ExchangeRatesAPIConfig{
				BaseConfig: fetchers.BaseConfig{
					Ctx:   ctx,
					URL:   v.GetString("fetchers.exchangeratesapi"),
					Pairs: pairs,
				},
			},
			currency.FreeConvProvider: fetchers.FreeConvServiceConfig{
				BaseConfig: fetchers.BaseConfig{
					Ctx:   ctx,
					URL:   fetcherConfig["url"],
					Pairs: pairs,
				},
				APIKey:             fetcherConfig["apikey"],
				MaxPerHourRequests: maxPerHour,
				MaxPerRequest:      maxPerRequest,
			},
			currency.CSVProvider: fetchers.CSVConfig{
				Path: v.GetString("fetchers.csv"),
			},
		},
		CurrenciesToFetch: pairs,
	}, nil
}
