// Package config loads settings for the API server (environment, optional .env file)
// and the terminal client (TOML file).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultRecipeBaseURL = "https://www.themealdb.com/api/json/v1/1"
)

// ErrMissingProjectID is returned when neither FIREBASE_PROJECT_ID nor
// GOOGLE_CLOUD_PROJECT is set.
var ErrMissingProjectID = errors.New("FIREBASE_PROJECT_ID is required")

// Server holds the API server settings.
type Server struct {
	Port             string
	ProjectID        string
	Credentials      string
	RecipeAPIBaseURL string
	CORSOrigins      []string
}

// Addr is the listen address.
func (s Server) Addr() string {
	return ":" + s.Port
}

// LoadServer reads the environment after loading envFile, if it exists. Variables
// already set in the environment win over the file.
func LoadServer(envFile string) (Server, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Server{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Server{
		Port:             envOr("PORT", defaultPort),
		ProjectID:        envOr("FIREBASE_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		Credentials:      strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
		RecipeAPIBaseURL: envOr("RECIPE_API_BASE_URL", defaultRecipeBaseURL),
		CORSOrigins:      splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return Server{}, ErrMissingProjectID
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return strings.TrimSpace(fallback)
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
