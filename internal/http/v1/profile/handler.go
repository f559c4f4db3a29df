package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/janisto/meal-planner/internal/identity"
	"github.com/janisto/meal-planner/internal/platform/auth"
	"github.com/janisto/meal-planner/internal/platform/docstore"
	applog "github.com/janisto/meal-planner/internal/platform/logging"
	"github.com/janisto/meal-planner/internal/platform/timeutil"
	"github.com/janisto/meal-planner/internal/profilesync"
	profilesvc "github.com/janisto/meal-planner/internal/service/profile"
)

var bearerAuth = []map[string][]string{{"bearerAuth": {}}}

// Register registers profile endpoints. docs backs the live stream.
func Register(api huma.API, svc profilesvc.Service, docs docstore.Store, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-profile",
		Method:        http.MethodPost,
		Path:          "/profile",
		Summary:       "Create user profile",
		Description:   "Creates the profile document for the authenticated user.",
		Tags:          []string{"Profile"},
		DefaultStatus: http.StatusCreated,
		Security:      bearerAuth,
	}, func(ctx context.Context, input *ProfileCreateInput) (*ProfileCreatedOutput, error) {
		user := auth.UserFromContext(ctx)

		profile, err := svc.Create(ctx, user.UID, profilesvc.CreateParams{
			FirstName: input.Body.FirstName,
			LastName:  input.Body.LastName,
			Email:     input.Body.Email,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileCreatedOutput{
			Location: prefix + "/profile",
			Body:     toHTTPProfile(profile),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get current user's profile",
		Tags:        []string{"Profile"},
		Security:    bearerAuth,
	}, func(ctx context.Context, _ *ProfileGetInput) (*ProfileOutput, error) {
		user := auth.UserFromContext(ctx)

		profile, err := svc.Get(ctx, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileOutput{Body: toHTTPProfile(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/profile",
		Summary:     "Update current user's profile",
		Description: "Updates the provided fields. Every field is validated before anything is written.",
		Tags:        []string{"Profile"},
		Security:    bearerAuth,
	}, func(ctx context.Context, input *ProfileUpdateInput) (*ProfileOutput, error) {
		user := auth.UserFromContext(ctx)

		profile, err := svc.Update(ctx, user.UID, profilesvc.UpdateParams{
			FirstName: input.Body.FirstName,
			LastName:  input.Body.LastName,
			Email:     input.Body.Email,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ProfileOutput{Body: toHTTPProfile(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-profile",
		Method:        http.MethodDelete,
		Path:          "/profile",
		Summary:       "Delete current user's profile",
		Tags:          []string{"Profile"},
		DefaultStatus: http.StatusNoContent,
		Security:      bearerAuth,
	}, func(ctx context.Context, _ *ProfileDeleteInput) (*struct{}, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Delete(ctx, user.UID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})

	sse.Register(api, huma.Operation{
		OperationID: "stream-profile",
		Method:      http.MethodGet,
		Path:        "/profile/stream",
		Summary:     "Stream live profile state",
		Description: "Sends the caller's profile state whenever the document changes, starting with the current state.",
		Tags:        []string{"Profile"},
		Security:    bearerAuth,
	}, map[string]any{
		"state": StateEvent{},
	}, func(ctx context.Context, _ *ProfileStreamInput, send sse.Sender) {
		user := auth.UserFromContext(ctx)
		stream(ctx, docs, svc, identity.Static(user.Identity()), send)
	})
}

// stream mounts one profile session for the connection and forwards every state
// change until the client goes away.
func stream(ctx context.Context, docs docstore.Store, svc profilesvc.Service, id identity.Static, send sse.Sender) {
	session := profilesync.Mount(docs, svc, id, profilesync.WithLogger(applog.LoggerFromContext(ctx)))
	defer session.Close()

	changes, stop := session.Store().Changes()
	defer stop()

	last := StateEvent{Phase: "-"}
	for {
		ev := toStateEvent(session.State())
		if ev != last {
			if err := send.Data(ev); err != nil {
				return
			}
			last = ev
		}
		select {
		case <-ctx.Done():
			return
		case <-changes:
		}
	}
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, profilesvc.ErrNotFound):
		return huma.Error404NotFound("profile not found")
	case errors.Is(err, profilesvc.ErrAlreadyExists):
		return huma.Error409Conflict("profile already exists")
	case errors.Is(err, profilesvc.ErrNoFields):
		return huma.Error422UnprocessableEntity("at least one field must be provided")
	case errors.Is(err, profilesvc.ErrInvalidName), errors.Is(err, profilesvc.ErrInvalidEmail):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	return Profile{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		CreatedAt: timeutil.NewTime(p.CreatedAt),
		UpdatedAt: timeutil.NewTime(p.UpdatedAt),
	}
}

func toStateEvent(st profilesync.State) StateEvent {
	ev := StateEvent{
		FirstName: st.Snapshot.FirstName,
		LastName:  st.Snapshot.LastName,
		Email:     st.Snapshot.Email,
		Loading:   st.Loading,
		Phase:     st.Phase.String(),
	}
	if st.Err != nil {
		ev.Error = "profile unavailable"
	}
	return ev
}
