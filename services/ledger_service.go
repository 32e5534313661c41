package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"backend/models"
	"backend/storage"
)

// LedgerKey is the blob the whole ledger map serializes under.
const LedgerKey = "foodRecords"

// LedgerService owns the date→entry map. It is the only mutator of daily
// entries and keeps the invariant totals == Aggregate(records) after every
// mutation. Each mutation is a read-modify-write under the lock against
// current state and ends with a full write-through of the ledger blob.
type LedgerService struct {
	mu     sync.Mutex
	store  storage.Store
	ledger models.Ledger
	lastID int64

	now func() time.Time
}

// NewLedgerService loads the ledger blob once; an absent key means an
// empty ledger. A corrupt blob is an error rather than silent data loss.
func NewLedgerService(store storage.Store) (*LedgerService, error) {
	s := &LedgerService{
		store:  store,
		ledger: models.Ledger{},
		now:    time.Now,
	}

	raw, err := store.Get(LedgerKey)
	if err == storage.ErrNotFound {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if err := json.Unmarshal(raw, &s.ledger); err != nil {
		return nil, fmt.Errorf("decode ledger blob: %w", err)
	}
	return s, nil
}

// GetEntry returns the entry for date, or the empty entry if unset. The
// returned record slice is a copy; callers cannot reach ledger state.
func (s *LedgerService) GetEntry(date string) models.DailyEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyEntry(s.ledger[date])
}

// Snapshot returns a deep copy of the whole ledger map, for bulk export.
func (s *LedgerService) Snapshot() models.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(models.Ledger, len(s.ledger))
	for date, e := range s.ledger {
		out[date] = copyEntry(e)
	}
	return out
}

// ReplaceRecords overwrites the full record list for date.
func (s *LedgerService) ReplaceRecords(date string, records []models.FoodRecord) (models.DailyEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if records == nil {
		records = []models.FoodRecord{}
	}
	return s.commit(date, records)
}

// AddRecord appends record to date's list, creating the entry if absent.
// A zero ID gets a fresh unix-millisecond ID, kept strictly increasing so
// two adds within the same millisecond stay distinguishable.
func (s *LedgerService) AddRecord(date string, rec models.FoodRecord) (models.DailyEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == 0 {
		id := s.now().UnixMilli()
		if id <= s.lastID {
			id = s.lastID + 1
		}
		s.lastID = id
		rec.ID = id
	}

	entry := s.ledger[date]
	records := append(append([]models.FoodRecord{}, entry.Records...), rec)
	return s.commit(date, records)
}

// RemoveRecord deletes the record with the given id from date's list. A
// missing entry or unmatched id is a no-op, so a repeated delete yields
// the same state as a single one.
func (s *LedgerService) RemoveRecord(date string, id int64) (models.DailyEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.ledger[date]
	if !ok {
		return copyEntry(entry), nil
	}
	records := make([]models.FoodRecord, 0, len(entry.Records))
	for _, r := range entry.Records {
		if r.ID != id {
			records = append(records, r)
		}
	}
	return s.commit(date, records)
}

// UpdateRecord replaces the record sharing rec.ID in place, keeping list
// order. An unmatched id leaves the list unchanged.
func (s *LedgerService) UpdateRecord(date string, rec models.FoodRecord) (models.DailyEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.ledger[date]
	records := append([]models.FoodRecord{}, entry.Records...)
	for i, r := range records {
		if r.ID == rec.ID {
			records[i] = rec
			break
		}
	}
	return s.commit(date, records)
}

// commit recomputes totals, installs the entry and persists the whole
// ledger. On a persist failure the in-memory state stands and the error
// surfaces upward; there is no rollback. Caller must hold the lock.
func (s *LedgerService) commit(date string, records []models.FoodRecord) (models.DailyEntry, error) {
	entry := models.DailyEntry{
		Records: records,
		Totals:  models.Aggregate(records),
	}
	s.ledger[date] = entry

	raw, err := json.Marshal(s.ledger)
	if err != nil {
		return copyEntry(entry), fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.store.Set(LedgerKey, raw); err != nil {
		return copyEntry(entry), fmt.Errorf("persist ledger: %w", err)
	}
	return copyEntry(entry), nil
}

func copyEntry(e models.DailyEntry) models.DailyEntry {
	records := make([]models.FoodRecord, len(e.Records))
	copy(records, e.Records)
	return models.DailyEntry{Records: records, Totals: e.Totals}
}
