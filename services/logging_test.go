package services_test

import (
	"bytes"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/currency-agency"
	"github.com/malusev998/currency-agency/services"
	"github.com/malusev998/currency-agency/storage"
)

func TestLoggingRateService(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	buf := &bytes.Buffer{}
	st := storage.NewMemoryStorage()
	agency := newStoredAgency(t, st)

	service := services.NewLoggingRateService(
		log.NewLogfmtLogger(buf),
		services.RateService{Storages: []currency.Storage{st}},
	)

	rate, err := service.GetRate(agency.ID(), "USD", "EUR", nil)
	assert.Nil(err)
	assert.Equal("1.3", rate.Amount().String())

	line := buf.String()
	assert.Contains(line, "method=rate")
	assert.Contains(line, "agency="+agency.ID().String())
	assert.Contains(line, "at=latest")
	assert.Contains(line, "rate=1.3")
	assert.Contains(line, "err=null")

	buf.Reset()
	_, err = service.Convert(agency.ID(), "USD", "GBP", "1", nil)
	assert.Error(err)
	assert.Contains(buf.String(), "method=convert")
	assert.Contains(buf.String(), `err="Rate not found."`)
}

func TestLoggingUpdateService(t *testing.T) {
	t.Parallel()
	assert := require.New(t)
	buf := &bytes.Buffer{}
	st := storage.NewMemoryStorage()
	agency := newStoredAgency(t, st)

	service := services.NewLoggingUpdateService(log.NewLogfmtLogger(buf), services.UpdateService{
		Strategy: currency.UpdateStrategyFunc(func() ([]currency.UnprocessedRate, error) {
			return nil, nil
		}),
		Storages: []currency.Storage{st},
	})

	n, err := service.Update(agency.ID())
	assert.Nil(err)
	assert.Equal(3, n)
	assert.Contains(buf.String(), "method=update")
	assert.Contains(buf.String(), "rates=3")
}
