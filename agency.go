package currency

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Agency owns a base currency and the set of rates observed against it.
// An Agency is not safe for concurrent use.
type Agency struct {
	id           uuid.UUID
	name         string
	address      string
	country      string
	baseCurrency Currency

	rates []Rate
	index map[string]struct{}
}

func NewAgency(name, address, country, baseCode string) (*Agency, error) {
	base, err := ParseCurrency(baseCode)
	if err != nil {
		return nil, err
	}

	return RestoreAgency(uuid.New(), name, address, country, base, nil), nil
}

// RestoreAgency rebuilds an Agency from already validated parts, as loaded
// from a storage.
func RestoreAgency(id uuid.UUID, name, address, country string, base Currency, rates []Rate) *Agency {
	a := &Agency{
		id:           id,
		name:         name,
		address:      address,
		country:      country,
		baseCurrency: base,
		rates:        make([]Rate, 0, len(rates)),
		index:        make(map[string]struct{}, len(rates)),
	}

	for _, r := range rates {
		a.insert(r)
	}

	return a
}

func (a *Agency) ID() uuid.UUID          { return a.id }
func (a *Agency) Name() string           { return a.name }
func (a *Agency) Address() string        { return a.address }
func (a *Agency) Country() string        { return a.country }
func (a *Agency) BaseCurrency() Currency { return a.baseCurrency }

// Rates returns a copy of the stored rates in insertion order.
func (a *Agency) Rates() []Rate {
	rates := make([]Rate, len(a.rates))
	copy(rates, a.rates)

	return rates
}

func (a *Agency) AddRate(from, to, amount, timestamp string) error {
	rate, err := ParseRate(from, to, amount, timestamp)
	if err != nil {
		return err
	}

	a.insert(rate)

	return nil
}

// ApplyUpdates adds every row produced by strategy, stopping at the first
// invalid one. Rows before the failing one stay applied.
func (a *Agency) ApplyUpdates(strategy UpdateStrategy) error {
	rows, err := strategy.Execute()
	if err != nil {
		return err
	}

	for i, row := range rows {
		if err := a.AddRate(row.CurrencyFrom, row.CurrencyTo, row.Rate, row.Date); err != nil {
			return fmt.Errorf("rate %d (%s_%s): %w", i, row.CurrencyFrom, row.CurrencyTo, err)
		}
	}

	return nil
}

func (a *Agency) insert(rate Rate) bool {
	key := rate.key()
	if _, exists := a.index[key]; exists {
		return false
	}

	a.index[key] = struct{}{}
	a.rates = append(a.rates, rate)

	return true
}

// GetRate resolves from -> to using the latest rate of each leg.
func (a *Agency) GetRate(from, to string) (Rate, error) {
	return a.getRate(from, to, func(Rate) bool { return true })
}

// GetRateAt resolves from -> to using only rates stamped exactly at (to the minute).
func (a *Agency) GetRateAt(from, to string, at time.Time) (Rate, error) {
	at = TruncateTimestamp(at)

	return a.getRate(from, to, func(r Rate) bool { return r.timestamp.Equal(at) })
}

// find returns the matching rate with the latest timestamp. Among equal
// timestamps the one inserted last wins.
func (a *Agency) find(predicate func(Rate) bool) (Rate, bool) {
	var (
		best  Rate
		found bool
	)

	for _, r := range a.rates {
		if !predicate(r) {
			continue
		}

		if !found || !r.timestamp.Before(best.timestamp) {
			best = r
			found = true
		}
	}

	return best, found
}

func (a *Agency) getRate(fromCode, toCode string, at func(Rate) bool) (Rate, error) {
	from, err := ParseCurrency(fromCode)
	if err != nil {
		return Rate{}, fmt.Errorf("%w %w", ErrInvalidCurrency, err)
	}

	to, err := ParseCurrency(toCode)
	if err != nil {
		return Rate{}, fmt.Errorf("%w %w", ErrInvalidCurrency, err)
	}

	fromBase := func(target Currency) func(Rate) bool {
		return func(r Rate) bool {
			return r.from.Equal(a.baseCurrency) && r.to.Equal(target) && at(r)
		}
	}

	if from.Equal(a.baseCurrency) {
		rate, ok := a.find(fromBase(to))
		if !ok {
			return Rate{}, ErrRateNotFound
		}

		return rate, nil
	}

	if to.Equal(a.baseCurrency) {
		rate, ok := a.find(fromBase(from))
		if !ok {
			return Rate{}, ErrRateNotFound
		}

		inverted, err := rate.Invert()
		if err != nil {
			return Rate{}, fmt.Errorf("%w %w", ErrUnreachable, err)
		}

		return inverted, nil
	}

	fromLeg, okFrom := a.find(fromBase(from))
	toLeg, okTo := a.find(fromBase(to))

	if !okFrom || !okTo {
		return Rate{}, ErrRateNotFound
	}

	cross, err := crossRate(fromLeg, toLeg)
	if err != nil {
		return Rate{}, fmt.Errorf("%w %w", ErrUnreachable, err)
	}

	return cross, nil
}

// crossRate turns base->from and base->to into from->to. The pair is first
// chained as to->from and then inverted.
func crossRate(fromLeg, toLeg Rate) (Rate, error) {
	toInverted, err := toLeg.Invert()
	if err != nil {
		return Rate{}, err
	}

	chained, err := fromLeg.Multiply(toInverted)
	if err != nil {
		return Rate{}, err
	}

	return chained.Invert()
}
