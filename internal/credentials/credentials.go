// Package credentials resolves the service-account key shared by the
// Firestore and Calendar clients.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

var (
	ErrNoCredentials = errors.New("no service account credentials")
	ErrMalformed     = errors.New("malformed service account credentials")
)

// Scopes granted to the loaded credentials.
var Scopes = []string{
	calendar.CalendarScope,
	"https://www.googleapis.com/auth/datastore",
}

type serviceAccount struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// Read returns the raw key: envValue when set, otherwise the content of path.
func Read(envValue, path string) ([]byte, error) {
	const op = "credentials.Read"

	raw := []byte(envValue)
	if envValue == "" {
		if path == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrNoCredentials)
		}
		b, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %s: %w", op, path, ErrNoCredentials)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		raw = b
	}

	var sa serviceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformed, err)
	}
	if sa.Type != "service_account" || sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, fmt.Errorf("%s: %w: not a service account key", op, ErrMalformed)
	}

	return raw, nil
}

// Load reads and parses the key into Google credentials.
func Load(ctx context.Context, envValue, path string) (*google.Credentials, error) {
	const op = "credentials.Load"

	raw, err := Read(envValue, path)
	if err != nil {
		return nil, err
	}

	creds, err := google.CredentialsFromJSON(ctx, raw, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrMalformed, err)
	}
	return creds, nil
}
