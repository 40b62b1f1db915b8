package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/currency-agency"
	"github.com/malusev998/currency-agency/fetchers"
	"github.com/malusev998/currency-agency/storage"
)

const testConfig = `
storage:
  - memory
migrate: true
databases:
  mysql:
    user: currency
    password: secret
    addr: localhost:3306
    db: currencydb
    table: agency
  mongo:
    uri: mongodb://localhost:27017
    db: currencydb
    collection: agencies
fetchers:
  fetch:
    - freecurrconv
    - csv
  freecurrconv:
    url: http://localhost:8080/api/v7/convert
    apiKey: secret-key
    maxPerHour: 100
    maxPerRequest: 2
  exchangeratesapi: http://localhost:8081/latest
  csv: ./rates.csv
currencies:
  - USD_EUR
  - USD_JPY
`

func readTestConfig(t *testing.T, content string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	require.Nil(t, v.ReadConfig(bytes.NewBufferString(content)))

	return v
}

func TestGetConfig(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	config, err := getConfig(context.Background(), readTestConfig(t, testConfig))
	assert.Nil(err)
	assert.Equal([]storage.Provider{storage.Memory}, config.Storage)
	assert.Equal([]currency.Provider{currency.FreeConvProvider, currency.CSVProvider}, config.Fetchers)
	assert.Equal([]string{"USD_EUR", "USD_JPY"}, config.CurrenciesToFetch)

	mysqlConfig := config.StorageConfig[storage.MySQL].(storage.MySQLConfig)
	assert.Equal("currency:secret@tcp(localhost:3306)/currencydb", mysqlConfig.ConnectionString)
	assert.Equal("agency", mysqlConfig.TableName)
	assert.True(mysqlConfig.Migrate)

	mongoConfig := config.StorageConfig[storage.MongoDB].(storage.MongoDBConfig)
	assert.Equal("mongodb://localhost:27017", mongoConfig.ConnectionString)
	assert.Equal("agencies", mongoConfig.Collection)

	freeConv := config.FetchersConfig[currency.FreeConvProvider].(fetchers.FreeConvServiceConfig)
	assert.Equal("secret-key", freeConv.APIKey)
	assert.Equal(100, freeConv.MaxPerHourRequests)
	assert.Equal(2, freeConv.MaxPerRequest)
	assert.Equal([]string{"USD_EUR", "USD_JPY"}, freeConv.Pairs)

	csvConfig := config.FetchersConfig[currency.CSVProvider].(fetchers.CSVConfig)
	assert.Equal("./rates.csv", csvConfig.Path)
}

func TestGetConfig_Errors(t *testing.T) {
	t.Parallel()

	data := []struct {
		name    string
		content string
	}{
		{name: "No_Storage", content: "currencies: [USD_EUR]"},
		{name: "Unknown_Storage", content: "storage: [redis]"},
		{name: "Unknown_Fetcher", content: "storage: [memory]\nfetchers:\n  fetch: [ecb]"},
		{name: "Invalid_Limit", content: "storage: [memory]\nfetchers:\n  freecurrconv:\n    maxPerHour: many"},
	}

	for _, item := range data {
		item := item
		t.Run(item.name, func(t *testing.T) {
			t.Parallel()
			config, err := getConfig(context.Background(), readTestConfig(t, item.content))
			require.Nil(t, config)
			require.Error(t, err)
		})
	}
}

func TestBuildServices(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	ctx := context.Background()

	config, err := getConfig(ctx, readTestConfig(t, testConfig))
	assert.Nil(err)

	storages, err := createStorages(config)
	assert.Nil(err)
	assert.Len(storages, 1)

	strategy, err := createUpdateStrategy(config)
	assert.Nil(err)
	assert.Len(strategy.(fetchers.Chain), 2)

	svc := newServices(ctx, storages, strategy, log.NewNopLogger(), prometheus.NewRegistry())

	agency, err := currency.NewAgency("Agency", "Address", "Country", "USD")
	assert.Nil(err)
	assert.Nil(agency.AddRate("USD", "EUR", "1.25", "2023-10-02T00:00:00"))
	assert.Nil(storages[0].Store(agency))

	money, err := svc.Rates.Convert(agency.ID(), "EUR", "USD", "10", nil)
	assert.Nil(err)
	assert.Equal("8", money.String())
}
