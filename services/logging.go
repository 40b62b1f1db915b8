package services

import (
	"time"

	"github.com/go-kit/log"
	"github.com/google/uuid"

	currency "github.com/malusev998/currency-agency"
)

type (
	loggingUpdateService struct {
		logger log.Logger
		next   currency.UpdateService
	}

	loggingRateService struct {
		logger log.Logger
		next   currency.RateService
	}
)

// NewLoggingUpdateService decorates an UpdateService with logging
func NewLoggingUpdateService(logger log.Logger, s currency.UpdateService) currency.UpdateService {
	return &loggingUpdateService{
		logger: logger,
		next:   s,
	}
}

// NewLoggingRateService decorates a RateService with logging
func NewLoggingRateService(logger log.Logger, s currency.RateService) currency.RateService {
	return &loggingRateService{
		logger: logger,
		next:   s,
	}
}

func formatAt(at *time.Time) string {
	if at == nil {
		return "latest"
	}

	return at.UTC().Format(time.RFC3339)
}

func (s *loggingUpdateService) Update(agencyID uuid.UUID) (n int, err error) {
	defer func(begin time.Time) {
		_ = s.logger.Log(
			"method", "update",
			"agency", agencyID,
			"rates", n,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Update(agencyID)
}

func (s *loggingRateService) GetRate(agencyID uuid.UUID, from, to string, at *time.Time) (rate currency.Rate, err error) {
	defer func(begin time.Time) {
		_ = s.logger.Log(
			"method", "rate",
			"agency", agencyID,
			"from", from,
			"to", to,
			"at", formatAt(at),
			"rate", rate.Amount(),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetRate(agencyID, from, to, at)
}

func (s *loggingRateService) Convert(agencyID uuid.UUID, from, to, amount string, at *time.Time) (converted currency.Money, err error) {
	defer func(begin time.Time) {
		_ = s.logger.Log(
			"method", "convert",
			"agency", agencyID,
			"from", from,
			"to", to,
			"amount", amount,
			"at", formatAt(at),
			"converted_amount", converted,
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Convert(agencyID, from, to, amount, at)
}
