package currency

// UnprocessedRate is a raw rate row as produced by an UpdateStrategy.
type UnprocessedRate struct {
	CurrencyFrom string
	CurrencyTo   string
	Rate         string
	Date         string
}

// UpdateStrategy produces an ordered batch of raw rate rows for an Agency.
type UpdateStrategy interface {
	Execute() ([]UnprocessedRate, error)
}

// UpdateStrategyFunc adapts a function to UpdateStrategy.
type UpdateStrategyFunc func() ([]UnprocessedRate, error)

func (f UpdateStrategyFunc) Execute() ([]UnprocessedRate, error) {
	return f()
}
