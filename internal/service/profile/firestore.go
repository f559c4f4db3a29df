package profile

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	applog "github.com/janisto/meal-planner/internal/platform/logging"
)

const auditResource = "profile"

// firestoreProfile maps to the Users/{uid} document.
type firestoreProfile struct {
	FirstName string    `firestore:"firstName"`
	LastName  string    `firestore:"lastName"`
	Email     string    `firestore:"email"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func (fp firestoreProfile) toProfile(userID string) *Profile {
	return &Profile{
		ID:        userID,
		FirstName: fp.FirstName,
		LastName:  fp.LastName,
		Email:     fp.Email,
		CreatedAt: fp.CreatedAt,
		UpdatedAt: fp.UpdatedAt,
	}
}

// FirestoreStore implements Service using Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) audit(ctx context.Context, action, userID string, err error) {
	if err != nil {
		applog.LogAuditEvent(ctx, action, userID, auditResource, userID, applog.AuditFailure,
			map[string]any{"error": categorizeError(err)})
		return
	}
	applog.LogAuditEvent(ctx, action, userID, auditResource, userID, applog.AuditSuccess, nil)
}

// Create creates a new profile using a transaction to prevent duplicates.
func (s *FirestoreStore) Create(ctx context.Context, userID string, params CreateParams) (*Profile, error) {
	params, err := params.normalize()
	if err != nil {
		s.audit(ctx, "create", userID, err)
		return nil, err
	}

	docRef := s.client.Collection(UsersCollection).Doc(userID)
	now := time.Now().UTC()
	fp := firestoreProfile{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err == nil && doc.Exists() {
			return ErrAlreadyExists
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		return tx.Set(docRef, fp)
	})
	s.audit(ctx, "create", userID, err)
	if err != nil {
		return nil, err
	}
	return fp.toProfile(userID), nil
}

// Get retrieves a profile by user ID.
func (s *FirestoreStore) Get(ctx context.Context, userID string) (*Profile, error) {
	doc, err := s.client.Collection(UsersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fp firestoreProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	return fp.toProfile(userID), nil
}

// Update validates every provided field, then writes only those fields and the update
// timestamp in one transaction. Omitted fields are left untouched in the document.
func (s *FirestoreStore) Update(ctx context.Context, userID string, params UpdateParams) (*Profile, error) {
	params, err := params.normalize()
	if err != nil {
		s.audit(ctx, "update", userID, err)
		return nil, err
	}

	docRef := s.client.Collection(UsersCollection).Doc(userID)
	var result *Profile

	err = s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}

		var fp firestoreProfile
		if err := doc.DataTo(&fp); err != nil {
			return err
		}

		updates := make([]firestore.Update, 0, 4)
		if params.FirstName != nil {
			fp.FirstName = *params.FirstName
			updates = append(updates, firestore.Update{Path: "firstName", Value: fp.FirstName})
		}
		if params.LastName != nil {
			fp.LastName = *params.LastName
			updates = append(updates, firestore.Update{Path: "lastName", Value: fp.LastName})
		}
		if params.Email != nil {
			fp.Email = *params.Email
			updates = append(updates, firestore.Update{Path: "email", Value: fp.Email})
		}
		fp.UpdatedAt = time.Now().UTC()
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: fp.UpdatedAt})

		if err := tx.Update(docRef, updates); err != nil {
			return err
		}
		result = fp.toProfile(userID)
		return nil
	})
	s.audit(ctx, "update", userID, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a profile using a transaction to ensure it exists.
func (s *FirestoreStore) Delete(ctx context.Context, userID string) error {
	docRef := s.client.Collection(UsersCollection).Doc(userID)

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(docRef)
	})
	s.audit(ctx, "delete", userID, err)
	return err
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
