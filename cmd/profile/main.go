package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/janisto/meal-planner/internal/identity"
	"github.com/janisto/meal-planner/internal/platform/config"
	"github.com/janisto/meal-planner/internal/platform/docstore"
	"github.com/janisto/meal-planner/internal/platform/firebase"
	applog "github.com/janisto/meal-planner/internal/platform/logging"
	"github.com/janisto/meal-planner/internal/profilesync"
	profilesvc "github.com/janisto/meal-planner/internal/service/profile"
	"github.com/janisto/meal-planner/internal/ui"
)

const demoUID = "demo-user"

type options struct {
	configPath string
	uid        string
	demo       bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := start(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "config file path (optional)")
	fs.StringVar(&opts.uid, "uid", "", "user id to open, overrides the config file")
	fs.BoolVar(&opts.demo, "demo", false, "run against an in-memory profile instead of Firestore")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func start(ctx context.Context, opts options) error {
	cfg, err := config.LoadClient(opts.configPath)
	if err != nil {
		return err
	}
	if opts.uid != "" {
		cfg.UID = opts.uid
	}
	cfg.UID = sessionUID(cfg.UID, opts.demo)

	logger, err := newLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	b, err := openBackend(ctx, cfg, opts.demo)
	if err != nil {
		logger.Error("backend unavailable", zap.Error(err))
		return err
	}
	defer b.close()

	source, session := mountSession(b, cfg.UID, logger)
	defer session.Close()

	logger.Info("profile client started", zap.String("uid", cfg.UID), zap.Bool("demo", opts.demo))
	return ui.Run(ui.Options{
		Context:   ctx,
		Session:   session,
		Identity:  source,
		ThemeName: cfg.Theme,
	})
}

// sessionUID is the user a session signs in as. The demo backend seeds demoUID,
// so a demo run without a configured user opens that profile.
func sessionUID(uid string, demo bool) string {
	if demo && uid == "" {
		return demoUID
	}
	return uid
}

func mountSession(b *backend, uid string, logger *zap.Logger) (*identity.Source, *profilesync.Session) {
	source := identity.NewSource(identity.Identity{UID: uid})
	return source, profilesync.Mount(b.docs, b.updater, source, profilesync.WithLogger(logger))
}

// newLogger writes to a file; stdout belongs to the terminal UI.
func newLogger(path string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	logger, err := applog.NewFileLogger(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return logger, nil
}

// backend is the document source and write path a session runs against.
type backend struct {
	docs    docstore.Store
	updater profilesync.Updater
	close   func()
}

func openBackend(ctx context.Context, cfg config.Client, demo bool) (*backend, error) {
	if demo {
		return demoBackend(ctx, cfg.UID)
	}

	if cfg.EmulatorHost != "" {
		if err := os.Setenv("FIRESTORE_EMULATOR_HOST", cfg.EmulatorHost); err != nil {
			return nil, fmt.Errorf("set emulator host: %w", err)
		}
	}
	client, err := firebase.NewFirestore(ctx, firebase.Config{
		ProjectID:   cfg.ProjectID,
		Credentials: cfg.Credentials,
	})
	if err != nil {
		return nil, err
	}
	return &backend{
		docs:    docstore.NewFirestore(client),
		updater: profilesvc.NewFirestoreStore(client),
		close:   func() { _ = client.Close() },
	}, nil
}

// demoBackend seeds an in-memory profile for uid (or demoUID when empty).
func demoBackend(ctx context.Context, uid string) (*backend, error) {
	uid = sessionUID(uid, true)
	docs := docstore.NewMemory()
	svc := profilesvc.NewMockProfileService()
	p, err := svc.Create(ctx, uid, profilesvc.CreateParams{
		FirstName: "Demo",
		LastName:  "User",
		Email:     "demo@example.com",
	})
	if err != nil {
		return nil, fmt.Errorf("seed demo profile: %w", err)
	}
	docs.Put(profilesvc.UsersCollection, uid, docstore.Fields{
		"firstName": p.FirstName,
		"lastName":  p.LastName,
		"email":     p.Email,
	})
	return &backend{
		docs:    docs,
		updater: profilesync.NewMemoryUpdater(svc, docs),
		close:   func() {},
	}, nil
}
