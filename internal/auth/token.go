// Package auth holds the process-wide token state shared by every outbound
// request, plus the local decode of the viewer identity from the access token.
package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jaeyoon222/PlanA/internal/domain"
)

// TokenPair is the result of a login or a successful refresh. RefreshToken
// may be empty when the backend rotates only the access token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// RefreshFunc performs one refresh round-trip with the stored refresh token.
type RefreshFunc func(ctx context.Context, refreshToken string) (TokenPair, error)

// TokenStore is the single owner of the token pair. Concurrent 401 handlers
// all funnel through Refresh: only one refresh call goes out, everyone else
// waits for its result.
type TokenStore struct {
	mu           sync.Mutex
	accessToken  string
	refreshToken string
	inflight     *refreshCall
}

type refreshCall struct {
	done chan struct{}
	ok   bool
}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

func (s *TokenStore) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accessToken = access
	if refresh != "" {
		s.refreshToken = refresh
	}
}

func (s *TokenStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

func (s *TokenStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}

func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
}

// Refresh runs fn at most once no matter how many goroutines call it
// concurrently; late callers block until the in-flight attempt settles and
// share its outcome. Returns whether a fresh access token is now stored.
func (s *TokenStore) Refresh(ctx context.Context, fn RefreshFunc) bool {
	s.mu.Lock()
	if call := s.inflight; call != nil {
		s.mu.Unlock()
		select {
		case <-call.done:
			return call.ok
		case <-ctx.Done():
			return false
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	s.inflight = call
	refresh := s.refreshToken
	s.mu.Unlock()

	pair, err := fn(ctx, refresh)

	s.mu.Lock()
	if err == nil && pair.AccessToken != "" {
		s.accessToken = pair.AccessToken
		if pair.RefreshToken != "" {
			s.refreshToken = pair.RefreshToken
		}
		call.ok = true
	}
	s.inflight = nil
	s.mu.Unlock()

	close(call.done)
	return call.ok
}

// UserID extracts the viewer identity from the stored access token without
// verifying the signature. The backend puts it in the userId claim, falling
// back to the standard sub claim. Empty when logged out or undecodable;
// display identity only, never trusted for authorization.
func (s *TokenStore) UserID() domain.UserID {
	token := s.AccessToken()
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	if v, ok := claims["userId"]; ok {
		if id := claimString(v); id != "" {
			return domain.UserID(id)
		}
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return domain.UserID(sub)
}

func claimString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatInt(int64(n), 10)
	case int64:
		return strconv.FormatInt(n, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}
