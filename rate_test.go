package currency_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/currency-agency"
)

func TestParseRate(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	expectedDate := time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC)

	values := []struct {
		from   string
		to     string
		amount string
		date   string
	}{
		{"USD", "EUR", "0.85", "2023-10-01T00:00:00"},
		{"USD", "EUR", "1.23456789", "2023-10-01T00:00:00Z"},
		{"usd", "eur", "1.234567880", "2023-10-01 00:00:00"},
		{"USD", "EUR", "1.234567886", "2023-10-01T00:00:45.123Z"},
		{"USD", "EUR", "1,5", "2023-10-01T02:00:30+02:00"},
	}

	for _, value := range values {
		rate, err := currency.ParseRate(value.from, value.to, value.amount, value.date)

		assert.Nil(err, "%v", value)
		assert.Equal("USD", rate.From().Code())
		assert.Equal("EUR", rate.To().Code())
		assert.True(currency.MustParseMoney(value.amount).Equal(rate.Amount()))
		assert.True(expectedDate.Equal(rate.Timestamp()), "%s parsed as %s", value.date, rate.Timestamp())
		assert.Equal(time.UTC, rate.Timestamp().Location())
	}
}

func TestParseRate_TruncatesToMinute(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	rate, err := currency.ParseRate("USD", "EUR", "1", "2023-10-01T10:15:59.999Z")

	assert.Nil(err)
	assert.Equal(time.Date(2023, time.October, 1, 10, 15, 0, 0, time.UTC), rate.Timestamp())
	assert.True(rate.Equal(currency.MustParseRate("USD", "EUR", "1.0", "2023-10-01T10:15:00Z")))
}

func TestParseRate_Invalid(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	values := []struct {
		from   string
		to     string
		amount string
		date   string
		err    error
	}{
		{"US", "EUR", "0.85", "2023-10-01T00:00:00", currency.ErrCurrencyInvalidLength},
		{"USD", "E1R", "0.85", "2023-10-01T00:00:00", currency.ErrCurrencyInvalidCharacters},
		{"USD", "EUR", "invalid_rate", "2023-10-01T00:00:00", currency.ErrMoneyInvalidCharacters},
		{"USD", "EUR", "0.85", "invalid_date", currency.ErrInvalidTimestamp},
		{"USD", "EUR", "0.00", "2023-10-01T00:00:00", currency.ErrMoneyNotPositive},
		{"USD", "EUR", "-0.85", "2023-10-01T00:00:00", currency.ErrMoneyInvalidCharacters},
		{"USDE", "EUR", "0.85", "2023-10-01T00:00:00", currency.ErrCurrencyInvalidLength},
		{"USD", "EUR", "0.85", "", currency.ErrInvalidTimestamp},
		{"", "EUR", "bad", "bad", currency.ErrInvalidTimestamp},
		{"", "EUR", "bad", "2023-10-01", currency.ErrCurrencyEmpty},
	}

	for _, value := range values {
		rate, err := currency.ParseRate(value.from, value.to, value.amount, value.date)

		assert.True(errors.Is(err, value.err), "%v: %v", value, err)
		assert.True(rate.IsZero())
		assert.Equal(currency.CodeBadRequest, currency.StatusCode(err))
	}
}

func TestRate_Multiply(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	values := []struct {
		left     string
		right    string
		expected string
	}{
		{"2", "0.5", "1"},
		{"4", "2", "8"},
		{"1.00000000", "0.25", "0.25"},
	}

	for _, value := range values {
		left := currency.MustParseRate("USD", "EUR", value.left, "2023-10-01T00:00:00")
		right := currency.MustParseRate("JPY", "USD", value.right, "2023-09-01T00:00:00")

		result, err := left.Multiply(right)

		assert.Nil(err)
		assert.True(result.Equal(currency.MustParseRate("JPY", "EUR", value.expected, "2023-10-01T00:00:00")), "got %s", result)
	}
}

func TestRate_MultiplyUnderflow(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	left := currency.MustParseRate("USD", "EUR", "0.00000001", "2023-10-01T00:00:00")
	right := currency.MustParseRate("JPY", "USD", "0.1", "2023-10-01T00:00:00")

	_, err := left.Multiply(right)
	assert.True(errors.Is(err, currency.ErrMoneyNotPositive))
}

func TestRate_Invert(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	inverted, err := currency.MustParseRate("USD", "EUR", "2", "2023-10-01T00:00:00").Invert()

	assert.Nil(err)
	assert.True(inverted.Equal(currency.MustParseRate("EUR", "USD", "0.50000000", "2023-10-01T00:00:00")))

	back, err := inverted.Invert()
	assert.Nil(err)
	assert.True(back.Equal(currency.MustParseRate("USD", "EUR", "2", "2023-10-01T00:00:00")))
}

func TestRate_Equal(t *testing.T) {
	t.Parallel()
	assert := require.New(t)

	base := currency.MustParseRate("USD", "EUR", "1.25", "2023-10-01T00:00:00")

	assert.True(base.Equal(currency.MustParseRate("usd", "eur", "1,25", "2023-10-01T00:00:30")))
	assert.False(base.Equal(currency.MustParseRate("USD", "EUR", "1.26", "2023-10-01T00:00:00")))
	assert.False(base.Equal(currency.MustParseRate("USD", "GBP", "1.25", "2023-10-01T00:00:00")))
	assert.False(base.Equal(currency.MustParseRate("USD", "EUR", "1.25", "2023-10-01T00:01:00")))
}
