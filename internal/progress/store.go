package progress

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

var ErrProgressNotFound = errors.New("progress not found")

// Store keeps at most one progress record per user and plan day.
type Store interface {
	// GetOrCreate atomically returns the existing record or creates a new
	// one dated date. created reports whether a record was made.
	GetOrCreate(ctx context.Context, userID, dayNumber int, date string) (_ *Progress, created bool, _ error)
	Get(ctx context.Context, userID, dayNumber int) (*Progress, error)
	Update(ctx context.Context, id int, patch Patch) (*Progress, error)
	List(ctx context.Context, userID int) ([]Progress, error)
}

type storeKey struct {
	userID    int
	dayNumber int
}

// MemStore is an in-memory Store. Contents are lost on restart.
type MemStore struct {
	mutex  sync.RWMutex
	byID   map[int]*Progress
	byKey  map[storeKey]int
	lastID int
	now    func() time.Time
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		byID:  make(map[int]*Progress),
		byKey: make(map[storeKey]int),
		now:   time.Now,
	}
}

func (s *MemStore) GetOrCreate(_ context.Context, userID, dayNumber int, date string) (*Progress, bool, error) {
	key := storeKey{userID: userID, dayNumber: dayNumber}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if id, ok := s.byKey[key]; ok {
		return s.byID[id].clone(), false, nil
	}

	s.lastID++
	p := newProgress(userID, dayNumber, date)
	p.ID = s.lastID
	p.CreatedAt = s.now().UTC()

	s.byID[p.ID] = &p
	s.byKey[key] = p.ID

	return p.clone(), true, nil
}

func (s *MemStore) Get(_ context.Context, userID, dayNumber int) (*Progress, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	id, ok := s.byKey[storeKey{userID: userID, dayNumber: dayNumber}]
	if !ok {
		return nil, ErrProgressNotFound
	}
	return s.byID[id].clone(), nil
}

func (s *MemStore) Update(_ context.Context, id int, patch Patch) (*Progress, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, ErrProgressNotFound
	}
	patch.applyTo(p)
	return p.clone(), nil
}

// List returns the user's records ordered by day number.
func (s *MemStore) List(_ context.Context, userID int) ([]Progress, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	records := make([]Progress, 0, len(s.byID))
	for _, p := range s.byID {
		if p.UserID == userID {
			records = append(records, *p.clone())
		}
	}
	slices.SortFunc(records, func(a, b Progress) int {
		return a.DayNumber - b.DayNumber
	})
	return records, nil
}
