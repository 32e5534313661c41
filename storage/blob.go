package storage

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a key has never been written. Callers fall
// back to their default value.
var ErrNotFound = errors.New("blob not found")

// Store is the persistence port: a synchronous key→blob map. Stores read
// their blob once at startup and write the whole thing back after every
// mutation.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Blob is the backing row for the gorm implementation.
type Blob struct {
	Key   string `gorm:"primaryKey;type:varchar(64)"`
	Value []byte
}

// GormStore persists blobs in a single key/value table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("migrate blobs table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(key string) ([]byte, error) {
	var b Blob
	err := s.db.First(&b, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %q: %w", key, err)
	}
	return b.Value, nil
}

func (s *GormStore) Set(key string, value []byte) error {
	b := Blob{Key: key, Value: value}
	if err := s.db.Save(&b).Error; err != nil {
		return fmt.Errorf("write blob %q: %w", key, err)
	}
	return nil
}

// MemoryStore is the in-memory implementation used in tests.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
	// FailWrites makes every Set fail, for exercising persistence
	// degradation paths.
	FailWrites bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return fmt.Errorf("write blob %q: store unavailable", key)
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.blobs[key] = v
	return nil
}
