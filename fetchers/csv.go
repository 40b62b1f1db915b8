package fetchers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	currency "github.com/malusev998/currency-agency"
)

const csvColumns = 4

var ErrCSVPathRequired = errors.New("csv path is required")

// CSVFetcher reads from,to,amount,timestamp rows from a file on every
// Execute. A leading header row is skipped.
type CSVFetcher struct {
	Path string
}

func (c CSVFetcher) Execute() ([]currency.UnprocessedRate, error) {
	if c.Path == "" {
		return nil, ErrCSVPathRequired
	}

	file, err := os.Open(c.Path)

	if err != nil {
		return nil, err
	}

	defer file.Close()

	return ReadCSV(file)
}

func ReadCSV(r io.Reader) ([]currency.UnprocessedRate, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = csvColumns
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	rates := make([]currency.UnprocessedRate, 0)

	for line := 0; ; line++ {
		record, err := reader.Read()

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}

		if line == 0 && isHeader(record) {
			continue
		}

		rates = append(rates, currency.UnprocessedRate{
			CurrencyFrom: record[0],
			CurrencyTo:   record[1],
			Rate:         record[2],
			Date:         record[3],
		})
	}

	return rates, nil
}

func isHeader(record []string) bool {
	first := strings.ToLower(strings.TrimSpace(record[0]))

	return first == "from" || first == "currency_from" || first == "currencyfrom"
}
