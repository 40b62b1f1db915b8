package currency_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/currency-agency"
)

func TestConvertToProvidersFromStringSlice(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	values := []struct {
		value    []string
		expected interface{}
		err      error
	}{
		{[]string{"freecurrconversion", "exchangeratesapi", "CSV"}, []currency.Provider{currency.FreeConvProvider, currency.ExchangeRatesAPIProvider, currency.CSVProvider}, nil},
		{[]string{"not-valid-value"}, []currency.Provider(nil), errors.New("value not-valid-value is not valid Provider")},
	}
	for _, value := range values {
		providers, err := currency.ConvertToProvidersFromStringSlice(value.value)
		assert.Equal(value.expected, providers)
		assert.Equal(value.err, err)
	}
}

func TestConvertToProviderFromString(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	values := []struct {
		value    string
		expected interface{}
		err      error
	}{
		{"freecurrconversion", currency.FreeConvProvider, nil},
		{"exchangeratesapi", currency.ExchangeRatesAPIProvider, nil},
		{"csv", currency.CSVProvider, nil},
		{"", currency.Provider(""), errors.New("value  is not valid Provider")},
		{"not-valid-value", currency.Provider(""), errors.New("value not-valid-value is not valid Provider")},
	}

	for _, value := range values {
		provider, err := currency.ConvertToProviderFromString(value.value)
		assert.Equal(value.expected, provider)
		assert.Equal(value.err, err)
	}
}

func TestProvider_UnmarshalYAML(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	var p currency.Provider
	err := p.UnmarshalYAML(func(v interface{}) error {
		*(v.(*string)) = "ExchangeRatesAPI"
		return nil
	})

	assert.Nil(err)
	assert.Equal(currency.ExchangeRatesAPIProvider, p)

	marshaled, err := p.MarshalYAML()
	assert.Nil(err)
	assert.Equal("ExchangeRatesAPI", marshaled)
}
