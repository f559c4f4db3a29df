package mealplan

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/janisto/meal-planner/internal/platform/logging"
	"github.com/janisto/meal-planner/internal/service/profile"
)

const auditResource = "meal_plan_entry"

type firestoreEntry struct {
	Date      string    `firestore:"date"`
	MealType  string    `firestore:"mealType"`
	RecipeID  string    `firestore:"recipeId"`
	Title     string    `firestore:"title"`
	Servings  int       `firestore:"servings"`
	Notes     string    `firestore:"notes"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func (fe firestoreEntry) toEntry(id string) Entry {
	return Entry{
		ID:        id,
		Date:      fe.Date,
		MealType:  fe.MealType,
		RecipeID:  fe.RecipeID,
		Title:     fe.Title,
		Servings:  fe.Servings,
		Notes:     fe.Notes,
		CreatedAt: fe.CreatedAt,
	}
}

// FirestoreStore implements Service on Users/{uid}/mealPlan.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) entries(userID string) *firestore.CollectionRef {
	return s.client.Collection(profile.UsersCollection).Doc(userID).Collection(Collection)
}

func (s *FirestoreStore) audit(ctx context.Context, action, userID, entryID string, err error) {
	if err != nil {
		applog.LogAuditEvent(ctx, action, userID, auditResource, entryID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return
	}
	applog.LogAuditEvent(ctx, action, userID, auditResource, entryID, applog.AuditSuccess, nil)
}

func (s *FirestoreStore) Add(ctx context.Context, userID string, params AddParams) (*Entry, error) {
	params, err := params.normalize()
	if err != nil {
		s.audit(ctx, "create", userID, "", err)
		return nil, err
	}

	id := uuid.NewString()
	fe := firestoreEntry{
		Date:      params.Date,
		MealType:  params.MealType,
		RecipeID:  params.RecipeID,
		Title:     params.Title,
		Servings:  params.Servings,
		Notes:     params.Notes,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.entries(userID).Doc(id).Create(ctx, fe)
	s.audit(ctx, "create", userID, id, err)
	if err != nil {
		return nil, err
	}
	entry := fe.toEntry(id)
	return &entry, nil
}

// List runs a range query on the date field; dates compare lexically in YYYY-MM-DD.
func (s *FirestoreStore) List(ctx context.Context, userID string, r Range) ([]Entry, error) {
	r, err := r.normalize()
	if err != nil {
		return nil, err
	}

	iter := s.entries(userID).
		Where("date", ">=", r.From).
		Where("date", "<=", r.To).
		OrderBy("date", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	entries := []Entry{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fe firestoreEntry
		if err := doc.DataTo(&fe); err != nil {
			return nil, err
		}
		entries = append(entries, fe.toEntry(doc.Ref.ID))
	}
	sortEntries(entries)
	return entries, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, userID, entryID string) error {
	docRef := s.entries(userID).Doc(entryID)

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(docRef)
	})
	s.audit(ctx, "delete", userID, entryID, err)
	return err
}

var _ Service = (*FirestoreStore)(nil)
