package fetchers

import (
	"context"
	"time"

	currency "github.com/malusev998/currency-agency"
)

type (
	BaseConfig struct {
		Ctx   context.Context
		URL   string
		Pairs []string
	}
	FreeConvServiceConfig struct {
		BaseConfig
		APIKey             string
		MaxPerHourRequests int
		MaxPerRequest      int
		Now                func() time.Time
	}
	ExchangeRatesAPIConfig struct {
		BaseConfig
	}
	CSVConfig struct {
		Path string
	}
)

func NewUpdateStrategy(provider currency.Provider, config interface{}) (currency.UpdateStrategy, error) {
	switch provider {
	case currency.FreeConvProvider:
		c := config.(FreeConvServiceConfig)

		return FreeCurrConvFetcher{
			Ctx:           c.Ctx,
			URL:           c.URL,
			APIKey:        c.APIKey,
			MaxPerHour:    c.MaxPerHourRequests,
			MaxPerRequest: c.MaxPerRequest,
			Pairs:         c.Pairs,
			Now:           c.Now,
		}, nil
	case currency.ExchangeRatesAPIProvider:
		c := config.(ExchangeRatesAPIConfig)

		return ExchangeRatesAPIFetcher{
			Ctx:   c.Ctx,
			URL:   c.URL,
			Pairs: c.Pairs,
		}, nil
	case currency.CSVProvider:
		c := config.(CSVConfig)

		return CSVFetcher{Path: c.Path}, nil
	}

	return nil, ErrFetcherNotFound
}

// Chain runs strategies in order and concatenates their rows.
type Chain []currency.UpdateStrategy

func (c Chain) Execute() ([]currency.UnprocessedRate, error) {
	rates := make([]currency.UnprocessedRate, 0)

	for _, strategy := range c {
		r, err := strategy.Execute()
		if err != nil {
			return nil, err
		}

		rates = append(rates, r...)
	}

	return rates, nil
}
