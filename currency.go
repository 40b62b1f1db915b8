package currency

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Currency is a validated three letter currency code.
// The zero value is the invalid currency returned alongside errors.
type Currency struct {
	code string
}

const currencyCodeLength = 3

func ParseCurrency(code string) (Currency, error) {
	if strings.TrimSpace(code) == "" {
		return Currency{}, ErrCurrencyEmpty
	}

	if utf8.RuneCountInString(code) != currencyCodeLength {
		return Currency{}, ErrCurrencyInvalidLength
	}

	for _, c := range code {
		if !unicode.IsLetter(c) {
			return Currency{}, ErrCurrencyInvalidCharacters
		}
	}

	return Currency{code: strings.ToUpper(code)}, nil
}

// MustParseCurrency is like ParseCurrency but panics on invalid input.
func MustParseCurrency(code string) Currency {
	c, err := ParseCurrency(code)
	if err != nil {
		panic(err)
	}

	return c
}

func (c Currency) Code() string {
	return c.code
}

func (c Currency) IsZero() bool {
	return c.code == ""
}

func (c Currency) Equal(other Currency) bool {
	return c.code == other.code
}

func (c Currency) String() string {
	return c.code
}
