package currency

import (
	"time"

	"github.com/google/uuid"
)

type (
	// UpdateService pulls fresh rates into a persisted agency and returns how
	// many rates the agency holds afterwards.
	UpdateService interface {
		Update(agencyID uuid.UUID) (int, error)
	}

	// RateService answers rate queries against persisted agencies. A nil at
	// selects the latest available rate.
	RateService interface {
		GetRate(agencyID uuid.UUID, from, to string, at *time.Time) (Rate, error)
		Convert(agencyID uuid.UUID, from, to, amount string, at *time.Time) (Money, error)
	}
)
