package mealplan

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockService implements Service in memory with the same validation as FirestoreStore.
type MockService struct {
	mu      sync.RWMutex
	entries map[string]map[string]Entry
}

// NewMockService creates an empty mock calendar.
func NewMockService() *MockService {
	return &MockService{entries: make(map[string]map[string]Entry)}
}

func (m *MockService) Add(_ context.Context, userID string, params AddParams) (*Entry, error) {
	params, err := params.normalize()
	if err != nil {
		return nil, err
	}
	entry := Entry{
		ID:        uuid.NewString(),
		Date:      params.Date,
		MealType:  params.MealType,
		RecipeID:  params.RecipeID,
		Title:     params.Title,
		Servings:  params.Servings,
		Notes:     params.Notes,
		CreatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries[userID] == nil {
		m.entries[userID] = make(map[string]Entry)
	}
	m.entries[userID][entry.ID] = entry
	return &entry, nil
}

func (m *MockService) List(_ context.Context, userID string, r Range) ([]Entry, error) {
	r, err := r.normalize()
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := []Entry{}
	for _, e := range m.entries[userID] {
		if e.Date >= r.From && e.Date <= r.To {
			entries = append(entries, e)
		}
	}
	sortEntries(entries)
	return entries, nil
}

func (m *MockService) Delete(_ context.Context, userID, entryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[userID][entryID]; !ok {
		return ErrNotFound
	}
	delete(m.entries[userID], entryID)
	return nil
}

var _ Service = (*MockService)(nil)
