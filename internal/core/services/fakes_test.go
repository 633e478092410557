package services_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/nepalfund/nepalfund_backend/internal/apperrors"
	"github.com/nepalfund/nepalfund_backend/internal/core/domain"
	portsrepo "github.com/nepalfund/nepalfund_backend/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// memoryUserRepo is an identity store with the same uniqueness rules as the real adapters.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User

	// Fault injection.
	findErr   error
	saveErr   error
	updateErr error
	saves     int
}

var _ portsrepo.UserRepositoryFacade = (*memoryUserRepo)(nil)

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]domain.User{}}
}

func cloneUser(u domain.User) domain.User {
	if u.PasswordHash != nil {
		h := *u.PasswordHash
		u.PasswordHash = &h
	}
	if u.GoogleID != nil {
		g := *u.GoogleID
		u.GoogleID = &g
	}
	return u
}

func (r *memoryUserRepo) seed(u domain.User) domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	r.users[u.UserID] = cloneUser(u)
	return u
}

func (r *memoryUserRepo) get(id string) (domain.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	return cloneUser(u), ok
}

func (r *memoryUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func (r *memoryUserRepo) conflicts(u domain.User) bool {
	for id, other := range r.users {
		if id == u.UserID {
			continue
		}
		if other.Email == u.Email {
			return true
		}
		if u.HasGoogleID() && other.HasGoogleID() && *other.GoogleID == *u.GoogleID {
			return true
		}
	}
	return false
}

func (r *memoryUserRepo) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	u, ok := r.get(userID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *memoryUserRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memoryUserRepo) FindUsersByEmailOrGoogleID(_ context.Context, email, googleID string) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []domain.User
	for _, u := range r.users {
		if u.Email == email || (googleID != "" && u.HasGoogleID() && *u.GoogleID == googleID) {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *memoryUserRepo) SaveUser(_ context.Context, user domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	user.UserID = uuid.NewString()
	if r.conflicts(user) {
		return nil, fmt.Errorf("insert user: %w", apperrors.ErrDuplicate)
	}
	r.users[user.UserID] = cloneUser(user)
	return &user, nil
}

func (r *memoryUserRepo) UpdateUser(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.users[user.UserID]; !ok {
		return apperrors.ErrNotFound
	}
	if r.conflicts(user) {
		return fmt.Errorf("update user: %w", apperrors.ErrDuplicate)
	}
	r.users[user.UserID] = cloneUser(user)
	return nil
}

func (r *memoryUserRepo) UpdateUserByEmail(_ context.Context, email string, patch domain.ProfilePatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for id, u := range r.users {
		if u.Email != email {
			continue
		}
		set := func(dst *string, v *string) {
			if v != nil {
				*dst = *v
			}
		}
		set(&u.FirstName, patch.FirstName)
		set(&u.LastName, patch.LastName)
		set(&u.Username, patch.Username)
		set(&u.Bio, patch.Bio)
		set(&u.Gender, patch.Gender)
		set(&u.Phone, patch.Phone)
		set(&u.Photo, patch.Photo)
		if patch.ProfileCompleted != nil {
			u.ProfileCompleted = *patch.ProfileCompleted
		}
		r.users[id] = u
		c := cloneUser(u)
		return &c, nil
	}
	return nil, apperrors.ErrNotFound
}

// MockCredentialVerifier is a testify mock of the Google credential verifier.
type MockCredentialVerifier struct {
	mock.Mock
}

func (m *MockCredentialVerifier) Verify(ctx context.Context, token string) (*domain.VerifiedIdentity, error) {
	args := m.Called(ctx, token)
	var id *domain.VerifiedIdentity
	if args.Get(0) != nil {
		id = args.Get(0).(*domain.VerifiedIdentity)
	}
	return id, args.Error(1)
}

// MockCampaignRepository is a testify mock of the campaign store.
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) SaveCampaign(ctx context.Context, c domain.Campaign) (*domain.Campaign, error) {
	args := m.Called(ctx, c)
	var out *domain.Campaign
	switch v := args.Get(0).(type) {
	case func(context.Context, domain.Campaign) *domain.Campaign:
		out = v(ctx, c)
	case *domain.Campaign:
		out = v
	}
	return out, args.Error(1)
}

func (m *MockCampaignRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	args := m.Called(ctx)
	var out []domain.Campaign
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Campaign)
	}
	return out, args.Error(1)
}

// recordingMetrics counts ObserveAuth calls by "flow/outcome".
type recordingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{counts: map[string]int{}}
}

func (m *recordingMetrics) ObserveAuth(flow, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[flow+"/"+outcome]++
}

func (m *recordingMetrics) get(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key]
}

// recordingTracker collects analytics event names.
type recordingTracker struct {
	mu     sync.Mutex
	events []string
}

func (t *recordingTracker) Track(_, event string, _ map[string]any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func (t *recordingTracker) names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.events...)
}

func strPtr(s string) *string { return &s }
