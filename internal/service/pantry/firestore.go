package pantry

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

const auditResource = "pantry_item"

type firestoreItem struct {
	Name      string    `firestore:"name"`
	Quantity  float64   `firestore:"quantity"`
	Unit      string    `firestore:"unit"`
	Category  string    `firestore:"category"`
	ExpiresOn string    `firestore:"expiresOn,omitempty"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func (fi firestoreItem) toItem(id string) Item {
	return Item{
		ID:        id,
		Name:      fi.Name,
		Quantity:  fi.Quantity,
		Unit:      fi.Unit,
		Category:  fi.Category,
		ExpiresOn: fi.ExpiresOn,
		CreatedAt: fi.CreatedAt,
		UpdatedAt: fi.UpdatedAt,
	}
}

// FirestoreStore implements Service on Users/{uid}/pantry.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) items(userID string) *firestore.CollectionRef {
	return s.client.Collection(profile.UsersCollection).Doc(userID).Collection(Collection)
}

func (s *FirestoreStore) audit(ctx context.Context, action, userID, itemID string, err error) {
	if err != nil {
		applog.LogAuditEvent(ctx, action, userID, auditResource, itemID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return
	}
	applog.LogAuditEvent(ctx, action, userID, auditResource, itemID, applog.AuditSuccess, nil)
}

func (s *FirestoreStore) Create(ctx context.Context, userID string, params CreateParams) (*Item, error) {
	params, err := params.normalize()
	if err != nil {
		s.audit(ctx, "create", userID, "", err)
		return nil, err
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	fi := firestoreItem{
		Name:      params.Name,
		Quantity:  params.Quantity,
		Unit:      params.Unit,
		Category:  params.Category,
		ExpiresOn: params.ExpiresOn,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = s.items(userID).Doc(id).Create(ctx, fi)
	s.audit(ctx, "create", userID, id, err)
	if err != nil {
		return nil, err
	}
	item := fi.toItem(id)
	return &item, nil
}

func (s *FirestoreStore) Get(ctx context.Context, userID, itemID string) (*Item, error) {
	doc, err := s.items(userID).Doc(itemID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fi firestoreItem
	if err := doc.DataTo(&fi); err != nil {
		return nil, err
	}
	item := fi.toItem(doc.Ref.ID)
	return &item, nil
}

// List reads the whole pantry. The category filter runs in Firestore, ordering in
// memory so no composite index is needed.
func (s *FirestoreStore) List(ctx context.Context, userID string, filter ListFilter) ([]Item, error) {
	q := s.items(userID).Query
	if c := normalizeCategory(filter.Category); c != "" {
		q = q.Where("category", "==", c)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	items := []Item{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fi firestoreItem
		if err := doc.DataTo(&fi); err != nil {
			return nil, err
		}
		items = append(items, fi.toItem(doc.Ref.ID))
	}
	sortItems(items)
	return items, nil
}

func (s *FirestoreStore) Update(ctx context.Context, userID, itemID string, params UpdateParams) (*Item, error) {
	params, err := params.normalize()
	if err != nil {
		s.audit(ctx, "update", userID, itemID, err)
		return nil, err
	}

	docRef := s.items(userID).Doc(itemID)
	var result *Item

	err = s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		var fi firestoreItem
		if err := doc.DataTo(&fi); err != nil {
			return err
		}

		item := fi.toItem(itemID)
		params.apply(&item)
		item.UpdatedAt = time.Now().UTC()

		updates := []firestore.Update{{Path: "updatedAt", Value: item.UpdatedAt}}
		if params.Name != nil {
			updates = append(updates, firestore.Update{Path: "name", Value: item.Name})
		}
		if params.Quantity != nil {
			updates = append(updates, firestore.Update{Path: "quantity", Value: item.Quantity})
		}
		if params.Unit != nil {
			updates = append(updates, firestore.Update{Path: "unit", Value: item.Unit})
		}
		if params.Category != nil {
			updates = append(updates, firestore.Update{Path: "category", Value: item.Category})
		}
		if params.ExpiresOn != nil {
			updates = append(updates, firestore.Update{Path: "expiresOn", Value: item.ExpiresOn})
		}
		if err := tx.Update(docRef, updates); err != nil {
			return err
		}
		result = &item
		return nil
	})
	s.audit(ctx, "update", userID, itemID, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *FirestoreStore) Delete(ctx context.Context, userID, itemID string) error {
	docRef := s.items(userID).Doc(itemID)

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(docRef)
	})
	s.audit(ctx, "delete", userID, itemID, err)
	return err
}

var _ Service = (*FirestoreStore)(nil)
