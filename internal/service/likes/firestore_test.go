package likes

import (
	"context"
	"errors"
	"testing"

	"github.com/janisto/meal-planner/internal/testutil"
)

func TestFirestoreLikeLifecycle(t *testing.T) {
	store := NewFirestoreStore(testutil.NewFirestoreClient(t))
	ctx := context.Background()

	first, err := store.Like(ctx, "user-likes", LikeParams{RecipeID: "52772", Title: "Teriyaki Chicken"})
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	again, err := store.Like(ctx, "user-likes", LikeParams{RecipeID: "52772", Title: "Other"})
	if err != nil {
		t.Fatalf("repeat like failed: %v", err)
	}
	if again.Title != first.Title {
		t.Fatalf("expected idempotent like, got %+v", again)
	}
	if _, err := store.Like(ctx, "user-likes", LikeParams{RecipeID: "52773", Title: "Second"}); err != nil {
		t.Fatalf("like failed: %v", err)
	}

	all, err := store.List(ctx, "user-likes")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 || all[0].RecipeID != "52773" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	if err := store.Unlike(ctx, "user-likes", "52772"); err != nil {
		t.Fatalf("unlike failed: %v", err)
	}
	if err := store.Unlike(ctx, "user-likes", "52772"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
