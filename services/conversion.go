package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	currency "github.com/malusev998/currency-agency"
)

type RateService struct {
	Ctx      context.Context
	Storages []currency.Storage
}

func (r RateService) GetRate(agencyID uuid.UUID, from, to string, at *time.Time) (currency.Rate, error) {
	agency, err := loadAgency(r.Ctx, r.Storages, agencyID)
	if err != nil {
		return currency.Rate{}, err
	}

	if at == nil {
		return agency.GetRate(from, to)
	}

	return agency.GetRateAt(from, to, *at)
}

// Convert multiplies amount by the from->to rate of the agency.
func (r RateService) Convert(agencyID uuid.UUID, from, to, amount string, at *time.Time) (currency.Money, error) {
	value, err := currency.ParseMoney(amount)
	if err != nil {
		return currency.Money{}, err
	}

	rate, err := r.GetRate(agencyID, from, to, at)
	if err != nil {
		return currency.Money{}, err
	}

	return value.Multiply(rate.Amount())
}
