package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func seededMock(t *testing.T) *MockProfileService {
	t.Helper()
	svc := NewMockProfileService()
	_, err := svc.Create(context.Background(), "user-123", CreateParams{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc
}

func TestMockCreate(t *testing.T) {
	svc := seededMock(t)

	p, err := svc.Get(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "user-123" || p.FirstName != "John" || p.LastName != "Doe" {
		t.Errorf("unexpected profile %+v", p)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestMockCreateDuplicate(t *testing.T) {
	svc := seededMock(t)

	_, err := svc.Create(context.Background(), "user-123", CreateParams{
		FirstName: "John", LastName: "Doe", Email: "john@example.com",
	})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestMockGetNotFound(t *testing.T) {
	svc := NewMockProfileService()
	if _, err := svc.Get(context.Background(), "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMockUpdatePartial(t *testing.T) {
	svc := seededMock(t)

	updated, err := svc.Update(context.Background(), "user-123", UpdateParams{FirstName: strPtr("Jane")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FirstName != "Jane" {
		t.Errorf("expected Jane, got %s", updated.FirstName)
	}
	if updated.LastName != "Doe" || updated.Email != "john@example.com" {
		t.Errorf("expected omitted fields untouched, got %+v", updated)
	}
}

func TestMockUpdateInvalidFieldWritesNothing(t *testing.T) {
	svc := seededMock(t)

	_, err := svc.Update(context.Background(), "user-123", UpdateParams{
		FirstName: strPtr("Jane"),
		Email:     strPtr("not-an-email"),
	})
	if !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	p, _ := svc.Get(context.Background(), "user-123")
	if p.FirstName != "John" {
		t.Fatalf("expected no partial write, got first name %s", p.FirstName)
	}
}

func TestMockUpdateErrInjected(t *testing.T) {
	svc := seededMock(t)
	boom := errors.New("transport down")
	svc.UpdateErr = boom

	if _, err := svc.Update(context.Background(), "user-123", UpdateParams{FirstName: strPtr("Jane")}); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if len(svc.Updates()) != 1 {
		t.Fatalf("expected the call to be recorded, got %d", len(svc.Updates()))
	}
}

func TestMockDelete(t *testing.T) {
	svc := seededMock(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, "user-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, "user-123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMockClear(t *testing.T) {
	svc := seededMock(t)
	svc.Clear()

	if _, err := svc.Get(context.Background(), "user-123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
	if len(svc.Updates()) != 0 {
		t.Fatal("expected recorded updates to be cleared")
	}
}

func TestMockConcurrentUpdates(t *testing.T) {
	svc := seededMock(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			_, _ = svc.Update(ctx, "user-123", UpdateParams{LastName: strPtr("Smith")})
		})
	}
	wg.Wait()

	if len(svc.Updates()) != 20 {
		t.Fatalf("expected 20 recorded updates, got %d", len(svc.Updates()))
	}
}
