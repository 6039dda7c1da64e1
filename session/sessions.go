package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	"helpdesk/types"
)

// Session ties a browser cookie to the backend bearer token and the user
// resolved from it at login.
type Session struct {
	ID        string
	Token     string
	User      types.User
	CreatedAt time.Time
}

// Manager stores sessions in sqlite with an in-memory cache in front, so
// logins survive a frontend restart.
type Manager struct {
	db    *sql.DB
	mu    sync.RWMutex
	cache map[string]*Session
}

func NewManager(database *sql.DB) *Manager {
	return &Manager{db: database, cache: make(map[string]*Session)}
}

func (m *Manager) Create(token string, user types.User) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: time.Now().UTC(),
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	query := `INSERT INTO sessions (id, token, user_json, created_at) VALUES (?, ?, ?, ?)`
	if _, err := m.db.Exec(query, sess.ID, sess.Token, string(userJSON), sess.CreatedAt.Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.cache[sess.ID] = sess
	m.mu.Unlock()
	return sess, nil
}

// Get loads a session by id. Sessions whose bearer token has expired are
// evicted and reported as missing, forcing a fresh login.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	sess, ok := m.cache[id]
	m.mu.RUnlock()

	if !ok {
		loaded, err := m.load(id)
		if err != nil {
			return nil, false
		}
		sess = loaded
		m.mu.Lock()
		m.cache[id] = sess
		m.mu.Unlock()
	}

	if TokenExpired(sess.Token) {
		m.Delete(id)
		return nil, false
	}
	return sess, true
}

func (m *Manager) load(id string) (*Session, error) {
	var sess Session
	var userJSON, createdAt string
	query := `SELECT id, token, user_json, created_at FROM sessions WHERE id = ?`
	err := m.db.QueryRow(query, id).Scan(&sess.ID, &sess.Token, &userJSON, &createdAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(userJSON), &sess.User); err != nil {
		return nil, err
	}
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		sess.CreatedAt = ts
	}
	return &sess, nil
}

// UpdateUser replaces the user snapshot a session carries, in sqlite and in
// the cache. The cached entry is swapped for a fresh value rather than
// mutated, so requests already holding the old pointer keep reading a
// consistent snapshot.
func (m *Manager) UpdateUser(id string, user types.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if _, err := m.db.Exec(`UPDATE sessions SET user_json = ? WHERE id = ?`, string(userJSON), id); err != nil {
		return fmt.Errorf("failed to update session user: %w", err)
	}

	m.mu.Lock()
	if old, ok := m.cache[id]; ok {
		next := *old
		next.User = user
		m.cache[id] = &next
	}
	m.mu.Unlock()
	return nil
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.cache, id)
	m.mu.Unlock()
	m.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
}

// TokenExpired decodes the bearer token's claims without verifying the
// signature (the backend owns the signing key) and checks exp. Tokens that
// don't parse as JWTs are treated as non-expiring opaque tokens.
func TokenExpired(token string) bool {
	parser := jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().Unix() >= int64(exp)
}
