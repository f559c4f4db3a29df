package likes

import (
	"context"
	"sync"
	"time"
)

// MockService implements Service in memory.
type MockService struct {
	mu    sync.RWMutex
	likes map[string]map[string]Like
	now   func() time.Time
}

// NewMockService creates an empty mock.
func NewMockService() *MockService {
	return &MockService{likes: make(map[string]map[string]Like), now: time.Now}
}

func (m *MockService) Like(_ context.Context, userID string, params LikeParams) (*Like, error) {
	params, err := params.normalize()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.likes[userID][params.RecipeID]; ok {
		return &existing, nil
	}
	if m.likes[userID] == nil {
		m.likes[userID] = make(map[string]Like)
	}
	like := Like{RecipeID: params.RecipeID, Title: params.Title, ImageURL: params.ImageURL, LikedAt: m.now().UTC()}
	m.likes[userID][params.RecipeID] = like
	return &like, nil
}

func (m *MockService) Unlike(_ context.Context, userID, recipeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.likes[userID][recipeID]; !ok {
		return ErrNotFound
	}
	delete(m.likes[userID], recipeID)
	return nil
}

func (m *MockService) List(_ context.Context, userID string) ([]Like, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	likes := make([]Like, 0, len(m.likes[userID]))
	for _, l := range m.likes[userID] {
		likes = append(likes, l)
	}
	sortNewestFirst(likes)
	return likes, nil
}

var _ Service = (*MockService)(nil)
