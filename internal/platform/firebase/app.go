// Package firebase builds the Firebase Admin app and the clients the services run on.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ErrMissingProjectID is returned when Config has no project.
var ErrMissingProjectID = errors.New("firebase: project id is required")

// Config holds Firebase configuration.
type Config struct {
	ProjectID string
	// Credentials is a service account JSON path; empty uses application default credentials.
	Credentials string
}

// Clients holds initialized Firebase clients.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

func clientOptions(cfg Config) ([]option.ClientOption, error) {
	if cfg.ProjectID == "" {
		return nil, ErrMissingProjectID
	}
	if cfg.Credentials == "" {
		return nil, nil
	}
	creds, err := os.ReadFile(cfg.Credentials)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	return []option.ClientOption{option.WithCredentialsJSON(creds)}, nil
}

// InitializeClients sets up the Admin app and returns its Auth and Firestore clients.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	ac, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}

	fc, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore: %w", err)
	}

	return &Clients{Auth: ac, Firestore: fc}, nil
}

// NewFirestore returns a bare Firestore client for processes that never verify tokens.
// FIRESTORE_EMULATOR_HOST is honored by the underlying client.
func NewFirestore(ctx context.Context, cfg Config) (*firestore.Client, error) {
	opts, err := clientOptions(cfg)
	if err != nil {
		return nil, err
	}
	fc, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: %w", err)
	}
	return fc, nil
}

// Close closes the Firestore client.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
