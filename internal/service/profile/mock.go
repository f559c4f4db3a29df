package profile

import (
	"context"
	"sync"
	"time"
)

// MockProfileService implements Service in memory for unit tests. It applies the same
// validation and normalization as FirestoreStore.
type MockProfileService struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	updates  []UpdateParams
	// UpdateErr, when set, fails every Update before validation.
	UpdateErr error
}

// NewMockProfileService creates a new mock service.
func NewMockProfileService() *MockProfileService {
	return &MockProfileService{
		profiles: make(map[string]*Profile),
	}
}

func (m *MockProfileService) Create(_ context.Context, userID string, params CreateParams) (*Profile, error) {
	params, err := params.normalize()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[userID]; exists {
		return nil, ErrAlreadyExists
	}

	now := time.Now().UTC()
	p := &Profile{
		ID:        userID,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.profiles[userID] = p
	cp := *p
	return &cp, nil
}

func (m *MockProfileService) Get(_ context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockProfileService) Update(_ context.Context, userID string, params UpdateParams) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updates = append(m.updates, params)
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}

	params, err := params.normalize()
	if err != nil {
		return nil, err
	}

	p, exists := m.profiles[userID]
	if !exists {
		return nil, ErrNotFound
	}
	if params.FirstName != nil {
		p.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		p.LastName = *params.LastName
	}
	if params.Email != nil {
		p.Email = *params.Email
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (m *MockProfileService) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[userID]; !exists {
		return ErrNotFound
	}
	delete(m.profiles, userID)
	return nil
}

// Updates returns every UpdateParams received, valid or not.
func (m *MockProfileService) Updates() []UpdateParams {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]UpdateParams(nil), m.updates...)
}

// Clear removes all profiles and recorded updates.
func (m *MockProfileService) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = make(map[string]*Profile)
	m.updates = nil
}

// Compile-time interface check
var _ Service = (*MockProfileService)(nil)
