package currency

import (
	"github.com/google/uuid"
)

// Storage persists agencies together with their rates.
// Store must be idempotent for rates already persisted.
type Storage interface {
	Store(agency *Agency) error
	Get(id uuid.UUID) (*Agency, error)
	Migrate() error
	Drop() error
	Close() error
	GetStorageProviderName() string
}
