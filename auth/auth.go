/*
Package auth is the dashboard's mock sign-in collaborator.

PURPOSE:
  The public dashboard carries a login/register flow for demo purposes
  only. There is no credential store and no real verification: any
  well-formed login succeeds. The value of this package is its shape -
  an injected, explicitly constructed Service with a clear lifecycle
  instead of a process-wide implicit singleton - so swapping in a real
  identity provider later touches only the Service internals.

SECURITY NOTE:
  This is NOT a trust boundary. Tokens are opaque random IDs with no
  signing, no expiry enforcement beyond the store, and no password
  hashing because no passwords are kept.

SESSIONS:
  SessionStore abstracts where the current session lives. The in-memory
  implementation stands in for the browser's local storage.
*/
package auth

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrNoSession is returned when no user is signed in.
var ErrNoSession = errors.New("no active session")

// User is the signed-in identity shown in the header.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile,omitempty"`
}

// Session pairs a user with their opaque token.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"auth_token"`
}

// LoginRequest is the sign-in form payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest is the sign-up form payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Mobile   string `json:"mobile" validate:"omitempty,len=10,numeric"`
	Password string `json:"password" validate:"required,min=6"`
}

// SessionStore holds at most one active session.
type SessionStore interface {
	Save(s Session) error
	Load() (Session, bool, error)
	Clear() error
}

// Service is the injectable auth collaborator. Consumers receive it by
// reference; nothing imports a package-level instance.
type Service struct {
	store    SessionStore
	validate *validator.Validate
}

// NewService creates a Service over the given session store.
func NewService(store SessionStore) *Service {
	return &Service{store: store, validate: validator.New()}
}

// Login validates the form and establishes a session. Mock semantics:
// any structurally valid credential pair is accepted.
func (s *Service) Login(req LoginRequest) (Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return Session{}, err
	}

	session := Session{
		User: User{
			ID:    uuid.NewString(),
			Name:  nameFromEmail(req.Email),
			Email: req.Email,
		},
		Token: uuid.NewString(),
	}
	if err := s.store.Save(session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Register validates the form and signs the new user straight in.
func (s *Service) Register(req RegisterRequest) (Session, error) {
	if err := s.validate.Struct(req); err != nil {
		return Session{}, err
	}

	session := Session{
		User: User{
			ID:     uuid.NewString(),
			Name:   req.Name,
			Email:  req.Email,
			Mobile: req.Mobile,
		},
		Token: uuid.NewString(),
	}
	if err := s.store.Save(session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Current returns the signed-in user, or ErrNoSession.
func (s *Service) Current() (User, error) {
	session, ok, err := s.store.Load()
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, ErrNoSession
	}
	return session.User, nil
}

// Logout clears the session. Logging out while signed out is a no-op.
func (s *Service) Logout() error {
	return s.store.Clear()
}

func nameFromEmail(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		local = email[:i]
	}
	return local
}

// =============================================================================
// IN-MEMORY SESSION STORE
// =============================================================================

// MemoryStore keeps the session in process memory, the test and demo
// stand-in for browser-local storage.
type MemoryStore struct {
	mu      sync.RWMutex
	session Session
	active  bool
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.active = true
	return nil
}

func (m *MemoryStore) Load() (Session, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session, m.active, nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
	m.active = false
	return nil
}
