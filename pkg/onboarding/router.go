// Package onboarding decides which screen a client shows after authentication.
//
// The session is an explicit value held by a SessionStore that the caller injects;
// it is set on successful authentication and cleared on logout.
package onboarding

import "sync"

// Screen paths understood by the web client.
const (
	PathLogin      = "/login"
	PathCompletion = "/google-name"
	PathFeed       = "/dashboard"
)

// Prefill carries identity fields already known so the completion form does not re-ask them.
type Prefill struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// Destination is the next screen plus any state to carry into it.
type Destination struct {
	Path    string   `json:"path"`
	Prefill *Prefill `json:"prefill,omitempty"`
}

// Session is the client-side record of the signed-in user.
type Session struct {
	UserID           string `json:"id"`
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Token            string `json:"token,omitempty"`
	ProfileCompleted bool   `json:"profileCompleted"`
}

// Route maps a session to its next screen.
func Route(s Session) Destination {
	if !s.ProfileCompleted {
		return Destination{
			Path: PathCompletion,
			Prefill: &Prefill{
				Email:      s.Email,
				GivenName:  s.FirstName,
				FamilyName: s.LastName,
			},
		}
	}
	return Destination{Path: PathFeed}
}

// SessionStore persists the current session.
type SessionStore interface {
	Load() (Session, bool)
	Save(s Session)
	Clear()
}

// MemoryStore is a SessionStore held in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	session *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

func (m *MemoryStore) Save(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
}

func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
}

// Router applies Route to the session held by its store.
type Router struct {
	store SessionStore
}

func NewRouter(store SessionStore) *Router {
	return &Router{store: store}
}

// Authenticated records a fresh session and returns where to go next.
func (r *Router) Authenticated(s Session) Destination {
	r.store.Save(s)
	return Route(s)
}

// ProfileCompleted marks the stored session complete, updating the names the
// completion form confirmed. Without a session the user is sent to login.
func (r *Router) ProfileCompleted(firstName, lastName string) Destination {
	s, ok := r.store.Load()
	if !ok {
		return Destination{Path: PathLogin}
	}
	if firstName != "" {
		s.FirstName = firstName
	}
	if lastName != "" {
		s.LastName = lastName
	}
	s.ProfileCompleted = true
	r.store.Save(s)
	return Route(s)
}

// Current returns the destination for the stored session, or login when there is none.
func (r *Router) Current() Destination {
	s, ok := r.store.Load()
	if !ok {
		return Destination{Path: PathLogin}
	}
	return Route(s)
}

// Logout clears the session.
func (r *Router) Logout() Destination {
	r.store.Clear()
	return Destination{Path: PathLogin}
}
