package fetchers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	currency "github.com/malusev998/currency-agency"
)

const (
	FreeConvFetchURL    = "https://free.currconv.com/api/v7/convert"
	ExchangeRatesAPIURL = "https://api.exchangeratesapi.io/latest"
)

type (
	errorFreeConvResponse struct {
		Status int    `json:"status"`
		Error  string `json:"error"`
	}

	fetchResult struct {
		index int
		rates []currency.UnprocessedRate
		err   error
	}
)

var (
	ErrUnAuthorized      = errors.New("unauthorized, API key is not provided")
	ErrNotEnoughRequests = errors.New("not enough requests per hour")
	ErrClient            = errors.New("client error")
	ErrServer            = errors.New("server error")
	ErrUnknown           = errors.New("unknown error")
	ErrAPILimitReached   = errors.New("API limit reached")
	ErrInvalidPair       = errors.New("currency pair must be in BASE_TARGET format")
	ErrFetcherNotFound   = errors.New("fetcher is not found")
)

func getData(ctx context.Context, url string, currencies []string) (*http.Request, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)

	if err != nil {
		return nil, "", err
	}

	req.Header.Add("Accept", "application/json")

	return req, strings.Join(currencies, ","), nil
}

func splitPair(pair string) (string, string, error) {
	isoCurrencies := strings.Split(pair, "_")

	if len(isoCurrencies) != 2 {
		return "", "", ErrInvalidPair
	}

	return isoCurrencies[0], isoCurrencies[1], nil
}

func handleHTTPStatusCodeError(res *http.Response) error {
	switch {
	case res.StatusCode == http.StatusOK:
		return nil
	case res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError:
		return ErrClient
	case res.StatusCode >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrUnknown
	}
}

// collect gathers n results sent on ch and joins them back in index order.
// The first error received is returned.
func collect(ch <-chan fetchResult, n int) ([]currency.UnprocessedRate, error) {
	ordered := make([][]currency.UnprocessedRate, n)
	var firstErr error

	for i := 0; i < n; i++ {
		result := <-ch

		if result.err != nil && firstErr == nil {
			firstErr = result.err
		}

		ordered[result.index] = result.rates
	}

	if firstErr != nil {
		return nil, firstErr
	}

	rates := make([]currency.UnprocessedRate, 0)
	for _, chunk := range ordered {
		rates = append(rates, chunk...)
	}

	return rates, nil
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}

	return ctx
}

func nowOrDefault(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}

	return now().UTC()
}
