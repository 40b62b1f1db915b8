package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	currency "github.com/malusev998/currency-agency"
)

type (
	exchangeRateAPIResponse struct {
		Base  string                 `json:"base,omitempty"`
		Rates map[string]json.Number `json:"rates,omitempty"`
		Date  string                 `json:"date,omitempty"`
	}

	// ExchangeRatesAPIFetcher issues one request per base currency found in
	// Pairs and keeps the date the API reports for each batch.
	ExchangeRatesAPIFetcher struct {
		Ctx   context.Context
		URL   string
		Pairs []string
	}
)

func (e ExchangeRatesAPIFetcher) fetchCurrencies(
	ctx context.Context,
	client *http.Client,
	index int,
	url string,
	baseCurrency string,
	currenciesToFetch []string,
	results chan<- fetchResult,
) {
	rates, err := e.fetchBase(ctx, client, url, baseCurrency, currenciesToFetch)
	results <- fetchResult{index: index, rates: rates, err: err}
}

func (e ExchangeRatesAPIFetcher) fetchBase(
	ctx context.Context,
	client *http.Client,
	url string,
	baseCurrency string,
	currenciesToFetch []string,
) ([]currency.UnprocessedRate, error) {
	req, formattedCurrencies, err := getData(ctx, url, currenciesToFetch)

	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Add("symbols", formattedCurrencies)
	q.Add("base", baseCurrency)

	req.URL.RawQuery = q.Encode()
	res, err := client.Do(req)

	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	if err := handleHTTPStatusCodeError(res); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(res.Body)

	if err != nil {
		return nil, err
	}

	var data exchangeRateAPIResponse

	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}

	base := data.Base
	if base == "" {
		base = baseCurrency
	}

	rates := make([]currency.UnprocessedRate, 0, len(currenciesToFetch))

	for _, to := range currenciesToFetch {
		value, ok := data.Rates[to]
		if !ok {
			continue
		}

		rates = append(rates, currency.UnprocessedRate{
			CurrencyFrom: base,
			CurrencyTo:   to,
			Rate:         value.String(),
			Date:         data.Date,
		})
	}

	return rates, nil
}

// PrepareISOCurrencies groups BASE_TARGET pairs by base currency, keeping the
// order the targets were given in.
func (e ExchangeRatesAPIFetcher) PrepareISOCurrencies(currencies []string) (map[string][]string, error) {
	mappedCurrencies := make(map[string][]string)

	for _, c := range currencies {
		from, to, err := splitPair(c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c, err)
		}

		mappedCurrencies[from] = append(mappedCurrencies[from], to)
	}

	return mappedCurrencies, nil
}

func (e ExchangeRatesAPIFetcher) Execute() ([]currency.UnprocessedRate, error) {
	currencies, err := e.PrepareISOCurrencies(e.Pairs)

	if err != nil {
		return nil, err
	}

	bases := make([]string, 0, len(currencies))
	for base := range currencies {
		bases = append(bases, base)
	}
	sort.Strings(bases)

	url := e.URL

	if url == "" {
		url = ExchangeRatesAPIURL
	}

	ctx, cancel := context.WithCancel(contextOrBackground(e.Ctx))
	defer cancel()

	results := make(chan fetchResult, len(bases))
	client := &http.Client{}

	for i, base := range bases {
		go e.fetchCurrencies(ctx, client, i, url, base, currencies[base], results)
	}

	return collect(results, len(bases))
}
