package fetchers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/currency-agency/fetchers"
)

type exchangeRatesHandler struct{}

func (h exchangeRatesHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	writer.Header().Set("Content-Type", "application/json")

	switch request.URL.Query().Get("base") {
	case "EUR":
		_, _ = writer.Write([]byte(`{"base":"EUR","date":"2023-10-01","rates":{"USD":1.0567,"RSD":117.23}}`))
	case "USD":
		_, _ = writer.Write([]byte(`{"base":"USD","date":"2023-10-02","rates":{"EUR":0.94632345}}`))
	default:
		writer.WriteHeader(http.StatusBadRequest)
	}
}

func TestExchangeRatesAPIFetcher_PrepareISOCurrencies(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	api := fetchers.ExchangeRatesAPIFetcher{Ctx: context.Background()}

	result, err := api.PrepareISOCurrencies([]string{"EUR_USD", "EUR_RSD", "RSD_EUR", "RSD_USD", "USD_EUR", "USD_RSD"})

	assert.Nil(err)
	assert.NotEmpty(result)
	assert.Contains(result, "RSD")
	assert.Contains(result, "EUR")
	assert.Contains(result, "USD")
	assert.EqualValues([]string{"EUR", "USD"}, result["RSD"])
	assert.EqualValues([]string{"USD", "RSD"}, result["EUR"])
	assert.EqualValues([]string{"EUR", "RSD"}, result["USD"])

	_, err = api.PrepareISOCurrencies([]string{"EUR-USD"})
	assert.True(errors.Is(err, fetchers.ErrInvalidPair))
}

func TestExchangeRatesAPIFetcher_Execute(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(exchangeRatesHandler{})
	defer server.Close()

	t.Run("ReturnsRatesGroupedByBase", func(t *testing.T) {
		assert := require.New(t)
		api := fetchers.ExchangeRatesAPIFetcher{
			Ctx:   context.Background(),
			URL:   server.URL,
			Pairs: []string{"USD_EUR", "EUR_RSD", "EUR_USD", "EUR_GBP"},
		}

		rates, err := api.Execute()

		assert.Nil(err)
		assert.Len(rates, 3)

		assert.Equal("EUR", rates[0].CurrencyFrom)
		assert.Equal("RSD", rates[0].CurrencyTo)
		assert.Equal("117.23", rates[0].Rate)
		assert.Equal("2023-10-01", rates[0].Date)

		assert.Equal("EUR", rates[1].CurrencyFrom)
		assert.Equal("USD", rates[1].CurrencyTo)
		assert.Equal("1.0567", rates[1].Rate)

		assert.Equal("USD", rates[2].CurrencyFrom)
		assert.Equal("EUR", rates[2].CurrencyTo)
		assert.Equal("0.94632345", rates[2].Rate)
		assert.Equal("2023-10-02", rates[2].Date)
	})

	t.Run("ClientError", func(t *testing.T) {
		assert := require.New(t)
		api := fetchers.ExchangeRatesAPIFetcher{
			URL:   server.URL,
			Pairs: []string{"GBP_EUR"},
		}

		rates, err := api.Execute()

		assert.Nil(rates)
		assert.True(errors.Is(err, fetchers.ErrClient))
	})
}
