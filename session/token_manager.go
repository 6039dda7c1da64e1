// Package session keeps the frontend's client-side authentication state:
// the persisted bearer token issued by the backend's OAuth flow, and the
// browser sessions mapping cookies to that token plus the resolved user.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// TokenManager persists the last issued bearer token to a JSON file under
// the user config directory, so a restarted process can resume without a
// fresh OAuth round trip.
type TokenManager struct {
	File string
}

type authToken struct {
	Token string `json:"token"`
}

func NewTokenManager() (*TokenManager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(configDir, "MesaAyuda", "auth_token.json")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return &TokenManager{File: path}, nil
}

func (m *TokenManager) SaveToken(token string) error {
	data, err := json.MarshalIndent(authToken{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.File, data, 0600)
}

// LoadToken returns the stored token, or "" when none has been saved yet.
func (m *TokenManager) LoadToken() (string, error) {
	data, err := os.ReadFile(m.File)
	if err != nil {
		return "", nil // no file yet
	}

	var stored authToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", err
	}
	return stored.Token, nil
}

func (m *TokenManager) RemoveToken() error {
	if _, err := os.Stat(m.File); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(m.File)
}

// Token implements backend.TokenSource over the persisted file, for
// single-operator use when no browser session is involved.
func (m *TokenManager) Token() (string, error) {
	return m.LoadToken()
}
