package session

import (
	"path/filepath"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"

	"helpdesk/db"
	"helpdesk/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "sessions.sqlite")
	database, err := db.InitDB(dbPath)
	if err != nil {
		t.Fatalf("init sqlite: %v", err)
	}
	t.Cleanup(func() { db.CloseDB(database) })
	return NewManager(database)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "u1", "exp": exp.Unix()}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("irrelevant-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestCreateAndGetSession(t *testing.T) {
	m := newTestManager(t)
	user := types.User{ID: "u1", Name: "Ana", RolID: types.RolAgente}
	token := signedToken(t, time.Now().Add(time.Hour))

	sess, err := m.Create(token, user)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.ID == "" {
		t.Fatalf("session id must be set")
	}

	got, ok := m.Get(sess.ID)
	if !ok {
		t.Fatalf("session not found after create")
	}
	if got.User.Name != "Ana" || got.User.RolID != types.RolAgente || got.Token != token {
		t.Fatalf("unexpected session: %+v", got)
	}
}

func TestGetSurvivesCacheLoss(t *testing.T) {
	m := newTestManager(t)
	token := signedToken(t, time.Now().Add(time.Hour))
	sess, err := m.Create(token, types.User{ID: "u1", Name: "Ana"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Simulate a restart: same sqlite file, cold cache.
	m.mu.Lock()
	m.cache = make(map[string]*Session)
	m.mu.Unlock()

	got, ok := m.Get(sess.ID)
	if !ok {
		t.Fatalf("session should be loadable from sqlite")
	}
	if got.User.Name != "Ana" {
		t.Fatalf("reloaded session lost user data: %+v", got)
	}
}

func TestExpiredTokenEvictsSession(t *testing.T) {
	m := newTestManager(t)
	token := signedToken(t, time.Now().Add(-time.Minute))
	sess, err := m.Create(token, types.User{ID: "u1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, ok := m.Get(sess.ID); ok {
		t.Fatalf("expired session must not be returned")
	}
	// Eviction is permanent, not just hidden.
	if _, ok := m.Get(sess.ID); ok {
		t.Fatalf("expired session must stay evicted")
	}
}

func TestUpdateUserSwapsCacheAndPersists(t *testing.T) {
	m := newTestManager(t)
	token := signedToken(t, time.Now().Add(time.Hour))
	sess, err := m.Create(token, types.User{ID: "u1", Name: "Ana"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated := sess.User
	updated.Name = "Ana María"
	if err := m.UpdateUser(sess.ID, updated); err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}

	// The old pointer is never written to.
	if sess.User.Name != "Ana" {
		t.Fatalf("existing session value mutated: %+v", sess.User)
	}
	got, ok := m.Get(sess.ID)
	if !ok || got.User.Name != "Ana María" {
		t.Fatalf("updated user not served: %+v", got)
	}

	// Survives a restart: same sqlite file, cold cache.
	m.mu.Lock()
	m.cache = make(map[string]*Session)
	m.mu.Unlock()
	got, ok = m.Get(sess.ID)
	if !ok || got.User.Name != "Ana María" {
		t.Fatalf("updated user not persisted: %+v", got)
	}
}

func TestDeleteSession(t *testing.T) {
	m := newTestManager(t)
	sess, err := m.Create(signedToken(t, time.Now().Add(time.Hour)), types.User{ID: "u1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	m.Delete(sess.ID)
	if _, ok := m.Get(sess.ID); ok {
		t.Fatalf("deleted session must not be returned")
	}
}

func TestTokenExpired(t *testing.T) {
	if TokenExpired(signedToken(t, time.Now().Add(time.Hour))) {
		t.Fatalf("future exp must not be expired")
	}
	if !TokenExpired(signedToken(t, time.Now().Add(-time.Hour))) {
		t.Fatalf("past exp must be expired")
	}
	if TokenExpired("opaque-token") {
		t.Fatalf("non-JWT tokens are treated as non-expiring")
	}
}

func TestGetUnknownSession(t *testing.T) {
	m := newTestManager(t)
	if _, ok := m.Get("missing"); ok {
		t.Fatalf("unknown session id must not resolve")
	}
}
