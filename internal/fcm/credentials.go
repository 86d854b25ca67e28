package fcm

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoServiceAccount  = errors.New("missing FCM service account configuration")
	ErrBadServiceAccount = errors.New("invalid FCM service account format")
	ErrNoProjectID       = errors.New("missing FCM project id")
)

// ServiceAccount holds the credential used to mint access tokens. Never
// logged and never persisted.
type ServiceAccount struct {
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
	ProjectID   string `json:"project_id"`
}

// ParseServiceAccount accepts the secret either as raw JSON or as
// base64-encoded JSON, which is how deployment tooling usually stores it.
func ParseServiceAccount(secret string) (ServiceAccount, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return ServiceAccount{}, ErrNoServiceAccount
	}
	if !strings.HasPrefix(secret, "{") {
		decoded, err := base64.StdEncoding.DecodeString(secret)
		if err != nil {
			return ServiceAccount{}, fmt.Errorf("%w: %v", ErrBadServiceAccount, err)
		}
		secret = string(decoded)
	}
	var sa ServiceAccount
	if err := json.Unmarshal([]byte(secret), &sa); err != nil {
		return ServiceAccount{}, fmt.Errorf("%w: %v", ErrBadServiceAccount, err)
	}
	return sa, nil
}

// ResolveProjectID prefers the credential's own project id, falling back to
// the configured override.
func ResolveProjectID(sa ServiceAccount, override string) (string, error) {
	if sa.ProjectID != "" {
		return sa.ProjectID, nil
	}
	if override != "" {
		return override, nil
	}
	return "", ErrNoProjectID
}
