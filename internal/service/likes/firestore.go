package likes

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/janisto/meal-planner/internal/platform/logging"
	"github.com/janisto/meal-planner/internal/service/profile"
)

const auditResource = "liked_recipe"

type firestoreLike struct {
	Title    string    `firestore:"title"`
	ImageURL string    `firestore:"imageUrl"`
	LikedAt  time.Time `firestore:"likedAt"`
}

func (fl firestoreLike) toLike(recipeID string) Like {
	return Like{RecipeID: recipeID, Title: fl.Title, ImageURL: fl.ImageURL, LikedAt: fl.LikedAt}
}

// FirestoreStore implements Service on Users/{uid}/likedRecipes.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) likes(userID string) *firestore.CollectionRef {
	return s.client.Collection(profile.UsersCollection).Doc(userID).Collection(Collection)
}

func (s *FirestoreStore) audit(ctx context.Context, action, userID, recipeID string, err error) {
	if err != nil {
		applog.LogAuditEvent(ctx, action, userID, auditResource, recipeID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return
	}
	applog.LogAuditEvent(ctx, action, userID, auditResource, recipeID, applog.AuditSuccess, nil)
}

// Like writes the like unless one already exists, in one transaction.
func (s *FirestoreStore) Like(ctx context.Context, userID string, params LikeParams) (*Like, error) {
	params, err := params.normalize()
	if err != nil {
		s.audit(ctx, "create", userID, params.RecipeID, err)
		return nil, err
	}

	docRef := s.likes(userID).Doc(params.RecipeID)
	var result Like

	err = s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			var fl firestoreLike
			if err := doc.DataTo(&fl); err != nil {
				return err
			}
			result = fl.toLike(params.RecipeID)
			return nil
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		fl := firestoreLike{Title: params.Title, ImageURL: params.ImageURL, LikedAt: time.Now().UTC()}
		result = fl.toLike(params.RecipeID)
		return tx.Set(docRef, fl)
	})
	s.audit(ctx, "create", userID, params.RecipeID, err)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *FirestoreStore) Unlike(ctx context.Context, userID, recipeID string) error {
	docRef := s.likes(userID).Doc(recipeID)

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(docRef)
	})
	s.audit(ctx, "delete", userID, recipeID, err)
	return err
}

func (s *FirestoreStore) List(ctx context.Context, userID string) ([]Like, error) {
	iter := s.likes(userID).OrderBy("likedAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	likes := []Like{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fl firestoreLike
		if err := doc.DataTo(&fl); err != nil {
			return nil, err
		}
		likes = append(likes, fl.toLike(doc.Ref.ID))
	}
	sortNewestFirst(likes)
	return likes, nil
}

var _ Service = (*FirestoreStore)(nil)
