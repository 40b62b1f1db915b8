package currency

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of fractional digits every Money amount is
// rounded to (half to even).
const MoneyPrecision = 8

// divisionPrecision is the scale the quotient of Invert is computed with
// before it is rounded to MoneyPrecision.
const divisionPrecision = 20

var (
	one = decimal.NewFromInt(1)

	// MaxAmount is the largest amount a Money may hold.
	MaxAmount = decimal.RequireFromString("79228162514264337593543950335")
)

// Money is a strictly positive amount rounded to MoneyPrecision digits.
// The zero value (amount 0) is only ever returned together with an error.
type Money struct {
	amount decimal.Decimal
}

func ParseMoney(text string) (Money, error) {
	if strings.TrimSpace(text) == "" {
		return Money{}, ErrMoneyEmpty
	}

	text = strings.ReplaceAll(text, ",", ".")

	for _, c := range text {
		if (c < '0' || c > '9') && c != '.' {
			return Money{}, ErrMoneyInvalidCharacters
		}
	}

	if strings.Count(text, ".") > 1 {
		return Money{}, ErrMoneyMalformed
	}

	parsed, err := decimal.NewFromString(text)
	if err != nil {
		return Money{}, ErrMoneyOverflow
	}

	return MoneyFromDecimal(parsed)
}

// MoneyFromDecimal validates and rounds an already numeric amount.
func MoneyFromDecimal(amount decimal.Decimal) (Money, error) {
	rounded := amount.RoundBank(MoneyPrecision)

	if rounded.Sign() <= 0 {
		return Money{}, ErrMoneyNotPositive
	}

	if rounded.GreaterThan(MaxAmount) {
		return Money{}, ErrMoneyOverflow
	}

	return Money{amount: rounded}, nil
}

func MustParseMoney(text string) Money {
	m, err := ParseMoney(text)
	if err != nil {
		panic(err)
	}

	return m
}

func (m Money) Multiply(other Money) (Money, error) {
	return MoneyFromDecimal(m.amount.Mul(other.amount).RoundBank(MoneyPrecision))
}

func (m Money) Invert() (Money, error) {
	if m.amount.IsZero() {
		return Money{}, ErrUnreachable
	}

	return MoneyFromDecimal(one.DivRound(m.amount, divisionPrecision).RoundBank(MoneyPrecision))
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.String()
}
