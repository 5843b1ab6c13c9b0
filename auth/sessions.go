// ABOUTME: Bearer-token session store backed by Badger with native TTL
// ABOUTME: Resolves Authorization headers to user ids for every API operation
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// ErrUnauthorized is returned whenever a caller cannot be tied to a valid
// session. Handlers translate it into a 401 without further detail.
var ErrUnauthorized = errors.New("unauthorized")

// DefaultSessionTTL is how long an issued token stays valid.
const DefaultSessionTTL = 30 * 24 * time.Hour

const tokenPrefix = "session/"

// SessionStore maps bearer tokens to user ids. Tokens expire via Badger's
// per-entry TTL, so stale sessions vanish without a sweeper.
type SessionStore struct {
	kv  *badger.DB
	ttl time.Duration
}

// OpenSessionStore opens the token store at path. An empty path opens an
// in-memory store, used by tests and one-shot CLI commands.
func OpenSessionStore(path string) (*SessionStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	kv, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	return &SessionStore{kv: kv, ttl: DefaultSessionTTL}, nil
}

func (s *SessionStore) Close() error {
	return s.kv.Close()
}

// Create issues a fresh token for userID.
func (s *SessionStore) Create(userID uuid.UUID) (string, error) {
	token := ulid.Make().String()

	err := s.kv.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(tokenPrefix+token), []byte(userID.String())).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Lookup resolves a token to its user id. Unknown, expired, and malformed
// tokens all return ErrUnauthorized.
func (s *SessionStore) Lookup(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, ErrUnauthorized
	}

	var raw []byte
	err := s.kv.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tokenPrefix + token))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return uuid.Nil, ErrUnauthorized
		}
		return uuid.Nil, fmt.Errorf("failed to read session: %w", err)
	}

	userID, err := uuid.Parse(string(raw))
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}

	return userID, nil
}

// Revoke deletes a token. Revoking an unknown token is not an error.
func (s *SessionStore) Revoke(token string) error {
	return s.kv.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(tokenPrefix + token))
	})
}

// UserFromRequest extracts the bearer token from the Authorization header and
// resolves the session owner. This is the single entry point every store and
// gateway operation authenticates through.
func UserFromRequest(store *SessionStore, r *http.Request) (uuid.UUID, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return uuid.Nil, ErrUnauthorized
	}
	return store.Lookup(strings.TrimSpace(token))
}
