package client

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type authResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// Session is the single source of truth for "who is logged in". The token
// and user are kept in memory and mirrored to durable storage on every
// auth transition.
type Session struct {
	c       *Client
	storage CredentialStorage

	mu    sync.RWMutex
	token string
	user  *UserInfo
}

// rehydrate restores a stored session. A stored token is trusted without
// a server round-trip until an API call comes back 401.
func (s *Session) rehydrate() {
	token, user, err := s.storage.Load()
	if err != nil {
		s.c.logger.Warn("failed to load stored credentials", zap.Error(err))
		return
	}
	if token == "" || user == nil {
		return
	}
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Login(ctx context.Context, email, password string) (*UserInfo, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := s.c.post(ctx, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	s.store(resp)
	return s.User(), nil
}

func (s *Session) Signup(ctx context.Context, input SignupInput) (*UserInfo, error) {
	var resp authResponse
	if err := s.c.post(ctx, "/auth/signup", input, &resp); err != nil {
		return nil, err
	}
	s.store(resp)
	return s.User(), nil
}

func (s *Session) SignupOrganizer(ctx context.Context, input OrganizerSignupInput) (*UserInfo, error) {
	var resp authResponse
	if err := s.c.post(ctx, "/auth/organizer/signup", input, &resp); err != nil {
		return nil, err
	}
	s.store(resp)
	return s.User(), nil
}

// Signout tells the backend, then purges local credentials either way;
// a failed signout call must not leave the client signed in.
func (s *Session) Signout(ctx context.Context) error {
	err := s.c.post(ctx, "/auth/signout", nil, nil)
	s.clearLocal()
	return err
}

func (s *Session) store(resp authResponse) {
	s.mu.Lock()
	s.token = resp.Token
	s.user = &resp.User
	s.mu.Unlock()

	if err := s.storage.Save(resp.Token, resp.User); err != nil {
		s.c.logger.Warn("failed to persist credentials", zap.Error(err))
	}
}

func (s *Session) clearLocal() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		s.c.logger.Warn("failed to clear stored credentials", zap.Error(err))
	}
}
