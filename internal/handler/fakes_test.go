package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/denis-rim/node-auth/internal/domain"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePasswordHash(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) UpdateAuthenticatorSecret(_ context.Context, id uuid.UUID, secret string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.AuthenticatorSecret = &secret
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) MarkEmailVerified(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			user.EmailVerified = true
			user.UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.SessionToken] = &copied
	return nil
}

func (r *fakeSessionRepo) GetByToken(_ context.Context, sessionToken string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionToken]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *fakeSessionRepo) Touch(_ context.Context, sessionToken string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionToken]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.UpdatedAt = at
	return nil
}

func (r *fakeSessionRepo) DeleteByToken(_ context.Context, sessionToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionToken)
	return nil
}

// recordingEmailService captures outbound mail instead of sending it.
type recordingEmailService struct {
	mu                sync.Mutex
	verificationLinks map[string]string
	resetLinks        map[string]string
}

func newRecordingEmailService() *recordingEmailService {
	return &recordingEmailService{
		verificationLinks: make(map[string]string),
		resetLinks:        make(map[string]string),
	}
}

func (s *recordingEmailService) SendVerificationEmail(_ context.Context, to, link string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verificationLinks[to] = link
	return nil
}

func (s *recordingEmailService) SendPasswordResetEmail(_ context.Context, to, link string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLinks[to] = link
	return nil
}

func (s *recordingEmailService) resetLink(to string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetLinks[to]
}

func (s *recordingEmailService) verificationLink(to string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verificationLinks[to]
}
