package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	currency "github.com/malusev998/currency-agency"
)

var (
	ErrNoStorageProvided = errors.New("no storage provided")
	ErrTimeRanOut        = errors.New("time has run out")
)

type (
	UpdateService struct {
		Ctx      context.Context
		Strategy currency.UpdateStrategy
		Storages []currency.Storage
	}

	loadResult struct {
		agency *currency.Agency
		err    error
	}
)

// loadAgency asks every storage for the agency. The first successful
// answer wins; when all of them fail the first error is returned.
func loadAgency(ctx context.Context, storages []currency.Storage, id uuid.UUID) (*currency.Agency, error) {
	if len(storages) == 0 {
		return nil, ErrNoStorageProvided
	}

	if ctx == nil {
		ctx = context.Background()
	}

	results := make(chan loadResult, len(storages))

	for _, storage := range storages {
		go func(storage currency.Storage) {
			agency, err := storage.Get(id)
			results <- loadResult{agency: agency, err: err}
		}(storage)
	}

	var firstErr error

	for i := 0; i < len(storages); i++ {
		select {
		case <-ctx.Done():
			return nil, ErrTimeRanOut
		case result := <-results:
			if result.err == nil {
				return result.agency, nil
			}

			if firstErr == nil {
				firstErr = result.err
			}
		}
	}

	return nil, firstErr
}

func saveToStorage(wg *sync.WaitGroup, agency *currency.Agency, storage currency.Storage, errorChannel chan<- error) {
	defer wg.Done()

	if err := storage.Store(agency); err != nil {
		errorChannel <- err
	}
}

func saveToStorages(agency *currency.Agency, storages []currency.Storage) error {
	var wg sync.WaitGroup

	errorChannel := make(chan error, len(storages))

	wg.Add(len(storages))
	for _, storage := range storages {
		go saveToStorage(&wg, agency, storage, errorChannel)
	}

	go func(wg *sync.WaitGroup, errorChannel chan error) {
		wg.Wait()
		close(errorChannel)
	}(&wg, errorChannel)

	if err, more := <-errorChannel; more {
		return err
	}

	return nil
}

// Update applies the strategy to the stored agency and writes it back to
// every storage. Rates applied before a failing row are still persisted;
// the update error is returned afterwards. The returned count is the
// number of rates the agency holds.
func (s UpdateService) Update(agencyID uuid.UUID) (int, error) {
	agency, err := loadAgency(s.Ctx, s.Storages, agencyID)
	if err != nil {
		return 0, err
	}

	updateErr := agency.ApplyUpdates(s.Strategy)

	if err := saveToStorages(agency, s.Storages); err != nil {
		return 0, err
	}

	return len(agency.Rates()), updateErr
}
