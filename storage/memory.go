package storage

import (
	"sync"

	"github.com/google/uuid"

	currency "github.com/malusev998/currency-agency"
)

type memoryStorage struct {
	mutex    sync.RWMutex
	agencies map[uuid.UUID]*currency.Agency
}

// NewMemoryStorage keeps copies of agencies in process memory.
func NewMemoryStorage() currency.Storage {
	return &memoryStorage{
		agencies: make(map[uuid.UUID]*currency.Agency),
	}
}

func clone(a *currency.Agency) *currency.Agency {
	return currency.RestoreAgency(a.ID(), a.Name(), a.Address(), a.Country(), a.BaseCurrency(), a.Rates())
}

func (m *memoryStorage) Store(agency *currency.Agency) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	stored, ok := m.agencies[agency.ID()]
	if !ok {
		m.agencies[agency.ID()] = clone(agency)
		return nil
	}

	m.agencies[agency.ID()] = currency.RestoreAgency(
		agency.ID(),
		agency.Name(),
		agency.Address(),
		agency.Country(),
		agency.BaseCurrency(),
		append(stored.Rates(), agency.Rates()...),
	)

	return nil
}

func (m *memoryStorage) Get(id uuid.UUID) (*currency.Agency, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	agency, ok := m.agencies[id]
	if !ok {
		return nil, ErrAgencyNotFound
	}

	return clone(agency), nil
}

func (m *memoryStorage) Migrate() error {
	return nil
}

func (m *memoryStorage) Drop() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.agencies = make(map[uuid.UUID]*currency.Agency)

	return nil
}

func (m *memoryStorage) Close() error {
	return nil
}

func (m *memoryStorage) GetStorageProviderName() string {
	return string(Memory)
}
