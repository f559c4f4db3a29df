package pantry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockService implements Service in memory with the same validation as FirestoreStore.
type MockService struct {
	mu    sync.RWMutex
	items map[string]map[string]Item
}

// NewMockService creates an empty mock pantry.
func NewMockService() *MockService {
	return &MockService{items: make(map[string]map[string]Item)}
}

func (m *MockService) Create(_ context.Context, userID string, params CreateParams) (*Item, error) {
	params, err := params.normalize()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := Item{
		ID:        uuid.NewString(),
		Name:      params.Name,
		Quantity:  params.Quantity,
		Unit:      params.Unit,
		Category:  params.Category,
		ExpiresOn: params.ExpiresOn,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items[userID] == nil {
		m.items[userID] = make(map[string]Item)
	}
	m.items[userID][item.ID] = item
	return &item, nil
}

func (m *MockService) Get(_ context.Context, userID, itemID string) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[userID][itemID]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (m *MockService) List(_ context.Context, userID string, filter ListFilter) ([]Item, error) {
	category := normalizeCategory(filter.Category)

	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]Item, 0, len(m.items[userID]))
	for _, item := range m.items[userID] {
		if category != "" && item.Category != category {
			continue
		}
		items = append(items, item)
	}
	sortItems(items)
	return items, nil
}

func (m *MockService) Update(_ context.Context, userID, itemID string, params UpdateParams) (*Item, error) {
	params, err := params.normalize()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[userID][itemID]
	if !ok {
		return nil, ErrNotFound
	}
	params.apply(&item)
	item.UpdatedAt = time.Now().UTC()
	m.items[userID][itemID] = item
	return &item, nil
}

func (m *MockService) Delete(_ context.Context, userID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[userID][itemID]; !ok {
		return ErrNotFound
	}
	delete(m.items[userID], itemID)
	return nil
}

var _ Service = (*MockService)(nil)
