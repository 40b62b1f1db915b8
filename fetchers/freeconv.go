package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	currency "github.com/malusev998/currency-agency"
)

// FreeCurrConvFetcher loads BASE_TARGET pairs from the free.currconv API.
// The API carries no timestamp, so rows are stamped with the fetch time.
type FreeCurrConvFetcher struct {
	Ctx           context.Context
	URL           string
	APIKey        string
	MaxPerHour    int
	MaxPerRequest int
	Pairs         []string
	Now           func() time.Time
}

func (f FreeCurrConvFetcher) fetchCurrencies(
	ctx context.Context,
	client *http.Client,
	index int,
	pairs []string,
	date string,
	results chan<- fetchResult,
) {
	rates, err := f.fetchChunk(ctx, client, pairs, date)
	results <- fetchResult{index: index, rates: rates, err: err}
}

func (f FreeCurrConvFetcher) fetchChunk(ctx context.Context, client *http.Client, pairs []string, date string) ([]currency.UnprocessedRate, error) {
	url := f.URL

	if url == "" {
		url = FreeConvFetchURL
	}

	req, formattedCurrencies, err := getData(ctx, url, pairs)

	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Add("q", formattedCurrencies)
	q.Add("compact", "ultra")
	q.Add("apiKey", f.APIKey)

	req.URL.RawQuery = q.Encode()

	res, err := client.Do(req)

	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)

	if err != nil {
		return nil, err
	}

	if res.StatusCode == http.StatusBadRequest {
		errorRes := errorFreeConvResponse{}
		_ = json.Unmarshal(body, &errorRes)

		if strings.Contains(errorRes.Error, "required") {
			return nil, ErrUnAuthorized
		}

		if strings.Contains(errorRes.Error, "API limit reached") {
			return nil, ErrAPILimitReached
		}
	}

	if err := handleHTTPStatusCodeError(res); err != nil {
		return nil, err
	}

	data := map[string]json.Number{}

	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}

	rates := make([]currency.UnprocessedRate, 0, len(pairs))

	for _, pair := range pairs {
		value, ok := data[pair]
		if !ok {
			continue
		}

		from, to, _ := splitPair(pair)
		rates = append(rates, currency.UnprocessedRate{
			CurrencyFrom: from,
			CurrencyTo:   to,
			Rate:         value.String(),
			Date:         date,
		})
	}

	return rates, nil
}

func (f FreeCurrConvFetcher) chunks() ([][]string, error) {
	perRequest := f.MaxPerRequest

	if perRequest <= 0 {
		perRequest = 1
	}

	chunks := make([][]string, 0, len(f.Pairs)/perRequest+1)

	for idx := 0; idx < len(f.Pairs); idx += perRequest {
		end := idx + perRequest

		if end > len(f.Pairs) {
			end = len(f.Pairs)
		}

		for _, pair := range f.Pairs[idx:end] {
			if _, _, err := splitPair(pair); err != nil {
				return nil, fmt.Errorf("%s: %w", pair, err)
			}
		}

		chunks = append(chunks, f.Pairs[idx:end])
	}

	return chunks, nil
}

func (f FreeCurrConvFetcher) Execute() ([]currency.UnprocessedRate, error) {
	chunks, err := f.chunks()

	if err != nil {
		return nil, err
	}

	if len(chunks) >= f.MaxPerHour {
		return nil, ErrNotEnoughRequests
	}

	ctx, cancel := context.WithCancel(contextOrBackground(f.Ctx))
	defer cancel()

	results := make(chan fetchResult, len(chunks))
	client := &http.Client{}
	date := nowOrDefault(f.Now).Format(time.RFC3339)

	for i, chunk := range chunks {
		go f.fetchCurrencies(ctx, client, i, chunk, date, results)
	}

	return collect(results, len(chunks))
}
