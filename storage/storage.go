package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	currency "github.com/malusev998/currency-agency"
)

type (
	Provider   string
	BaseConfig struct {
		Cxt     context.Context
		Migrate bool
	}
	MySQLConfig struct {
		BaseConfig
		ConnectionString string
		TableName        string
	}
	MongoDBConfig struct {
		BaseConfig
		ConnectionString string
		Database         string
		Collection       string
	}
	MemoryConfig struct{}

	// rawRate is a rate as persisted: every field is text so loading goes
	// through currency.ParseRate again.
	rawRate struct {
		From      string
		To        string
		Amount    string
		Timestamp string
	}
)

const (
	MySQL   Provider = "mysql"
	MongoDB Provider = "mongodb"
	Memory  Provider = "memory"

	MySQLTimeFormat = "2006-01-02 15:04:05"
)

var (
	ErrStorageNotFound = errors.New("storage is not found")
	ErrAgencyNotFound  = currency.ErrAgencyNotFound
)

func ConvertToProvidersFromStringSlice(strings []string) ([]Provider, error) {
	providers := make([]Provider, 0, len(strings))

	for _, str := range strings {
		provider, err := ConvertToProviderFromString(str)
		if err != nil {
			return nil, err
		}

		providers = append(providers, provider)
	}

	return providers, nil
}

func ConvertToProviderFromString(str string) (Provider, error) {
	switch strings.ToLower(str) {
	case "mysql":
		return MySQL, nil
	case "mongodb", "mongo":
		return MongoDB, nil
	case "memory":
		return Memory, nil
	}

	return "", fmt.Errorf("value %s is not valid Provider", str)
}

func NewStorage(provider Provider, config interface{}) (currency.Storage, error) {
	switch provider {
	case MySQL:
		return NewMySQLStorage(config.(MySQLConfig))
	case MongoDB:
		return NewMongoStorage(config.(MongoDBConfig))
	case Memory:
		return NewMemoryStorage(), nil
	}

	return nil, ErrStorageNotFound
}

func toRawRates(rates []currency.Rate, layout string) []rawRate {
	raw := make([]rawRate, 0, len(rates))

	for _, r := range rates {
		raw = append(raw, rawRate{
			From:      r.From().Code(),
			To:        r.To().Code(),
			Amount:    r.Amount().String(),
			Timestamp: r.Timestamp().Format(layout),
		})
	}

	return raw
}

func restoreAgency(id, name, address, country, base string, raw []rawRate) (*currency.Agency, error) {
	agencyID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("agency id %q: %w", id, err)
	}

	baseCurrency, err := currency.ParseCurrency(base)
	if err != nil {
		return nil, fmt.Errorf("agency %s base currency: %w", id, err)
	}

	rates := make([]currency.Rate, 0, len(raw))

	for _, r := range raw {
		rate, err := currency.ParseRate(r.From, r.To, r.Amount, r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("agency %s rate %s_%s: %w", id, r.From, r.To, err)
		}

		rates = append(rates, rate)
	}

	return currency.RestoreAgency(agencyID, name, address, country, baseCurrency, rates), nil
}
