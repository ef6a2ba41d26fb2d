package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zzyhdu/tk-tools/internal/freight"
)

var (
	// ErrInvalidRateTables indicates the provided rate tables violate validation rules.
	ErrInvalidRateTables = errors.New("rate tables failed validation")
)

// Storage provides access to the rate tables used by the quote calculator.
type Storage interface {
	GetRateTables() (freight.RateTables, error)
	SetRateTables(tables freight.RateTables) error
	UpdatedAt() time.Time
}

// MemoryStorage keeps rate tables in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	mu        sync.RWMutex
	tables    freight.RateTables
	updatedAt time.Time
	now       func() time.Time
}

// NewMemoryStorage initialises storage with the default rate tables.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		tables:    freight.DefaultRateTables(),
		updatedAt: time.Now().UTC(),
		now:       time.Now,
	}
}

// NewMemoryStorageWith initialises storage with tables, typically loaded from
// a rate file at startup.
func NewMemoryStorageWith(tables freight.RateTables) (*MemoryStorage, error) {
	store := NewMemoryStorage()
	if err := store.SetRateTables(tables); err != nil {
		return nil, err
	}
	return store, nil
}

// GetRateTables returns a defensive copy of the current rate tables.
func (s *MemoryStorage) GetRateTables() (freight.RateTables, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tables.Clone(), nil
}

// SetRateTables validates and stores a copy of tables.
func (s *MemoryStorage) SetRateTables(tables freight.RateTables) error {
	if err := tables.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRateTables, err)
	}
	normalized := normalize(tables.Clone())

	s.mu.Lock()
	s.tables = normalized
	s.updatedAt = s.now().UTC()
	s.mu.Unlock()

	return nil
}

// UpdatedAt reports when the tables were last replaced.
func (s *MemoryStorage) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.updatedAt
}

// normalize replaces missing sections so lookups never hit a nil map.
func normalize(tables freight.RateTables) freight.RateTables {
	if tables.FlatRatePerKg == nil {
		tables.FlatRatePerKg = freight.FlatRates{}
	}
	if tables.AirExpress == nil {
		tables.AirExpress = freight.AirExpressRateTable{}
	}
	if tables.ExpressSea == nil {
		tables.ExpressSea = freight.SeaRateTable{}
	}
	if tables.StandardSea == nil {
		tables.StandardSea = freight.SeaRateTable{}
	}
	if tables.EconomySea == nil {
		tables.EconomySea = freight.SeaRateTable{}
	}
	return tables
}
