package currency

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Rate says that one unit of From is worth Amount units of To at Timestamp.
type Rate struct {
	from      Currency
	to        Currency
	amount    Money
	timestamp time.Time
}

// ParseRate validates the four raw fields of a rate. The timestamp is
// truncated to the minute and kept in UTC; inputs without an offset are read
// as UTC.
func ParseRate(from, to, amount, timestamp string) (Rate, error) {
	ts, err := ParseTimestamp(timestamp)
	if err != nil {
		return Rate{}, err
	}

	currencyFrom, err := ParseCurrency(from)
	if err != nil {
		return Rate{}, err
	}

	currencyTo, err := ParseCurrency(to)
	if err != nil {
		return Rate{}, err
	}

	money, err := ParseMoney(amount)
	if err != nil {
		return Rate{}, err
	}

	return Rate{
		from:      currencyFrom,
		to:        currencyTo,
		amount:    money,
		timestamp: ts,
	}, nil
}

func MustParseRate(from, to, amount, timestamp string) Rate {
	r, err := ParseRate(from, to, amount, timestamp)
	if err != nil {
		panic(err)
	}

	return r
}

func ParseTimestamp(timestamp string) (time.Time, error) {
	if strings.TrimSpace(timestamp) == "" {
		return time.Time{}, ErrInvalidTimestamp
	}

	parsed, err := dateparse.ParseIn(timestamp, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidTimestamp
	}

	return TruncateTimestamp(parsed), nil
}

// TruncateTimestamp zeroes seconds and sub-seconds and converts to UTC.
func TruncateTimestamp(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location()).UTC()
}

// Multiply chains r with other through their shared currency: the result goes
// from other.From to r.To and keeps the timestamp of r.
func (r Rate) Multiply(other Rate) (Rate, error) {
	amount, err := r.amount.Multiply(other.amount)
	if err != nil {
		return Rate{}, err
	}

	return Rate{
		from:      other.from,
		to:        r.to,
		amount:    amount,
		timestamp: r.timestamp,
	}, nil
}

func (r Rate) Invert() (Rate, error) {
	amount, err := r.amount.Invert()
	if err != nil {
		return Rate{}, err
	}

	return Rate{
		from:      r.to,
		to:        r.from,
		amount:    amount,
		timestamp: r.timestamp,
	}, nil
}

func (r Rate) From() Currency {
	return r.from
}

func (r Rate) To() Currency {
	return r.to
}

func (r Rate) Amount() Money {
	return r.amount
}

func (r Rate) Timestamp() time.Time {
	return r.timestamp
}

func (r Rate) IsZero() bool {
	return r.from.IsZero() && r.to.IsZero() && r.amount.IsZero() && r.timestamp.IsZero()
}

func (r Rate) Equal(other Rate) bool {
	return r.from.Equal(other.from) &&
		r.to.Equal(other.to) &&
		r.amount.Equal(other.amount) &&
		r.timestamp.Equal(other.timestamp)
}

// key identifies a rate by all of its fields.
func (r Rate) key() string {
	return fmt.Sprintf("%s|%s|%s|%d", r.from, r.to, r.amount, r.timestamp.UnixNano())
}

func (r Rate) String() string {
	return fmt.Sprintf("%s_%s %s @ %s", r.from, r.to, r.amount, r.timestamp.Format(time.RFC3339))
}
