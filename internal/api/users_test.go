package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaeyoon222/PlanA/internal/auth"
	"github.com/jaeyoon222/PlanA/internal/domain"
)

func TestLoginStoresTokenPair(t *testing.T) {
	tokens := auth.NewTokenStore()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/login", r.URL.Path)

		var creds domain.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "kim@example.com", creds.Email)

		fmt.Fprint(w, `{"accessToken": "a1", "refreshToken": "r1"}`)
	}))
	defer server.Close()

	client := New(server.URL, tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := client.Login(context.Background(), domain.Credentials{Email: "kim@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "a1", tokens.AccessToken())
	assert.Equal(t, "r1", tokens.RefreshToken())
}

func TestLoginWithoutAccessTokenFails(t *testing.T) {
	tokens := auth.NewTokenStore()
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	client.tokens = tokens

	err := client.Login(context.Background(), domain.Credentials{Email: "kim@example.com", Password: "pw"})
	assert.Error(t, err)
	assert.Empty(t, tokens.AccessToken())
}

func TestLogoutIsBestEffort(t *testing.T) {
	tokens := auth.NewTokenStore()
	tokens.SetTokens("a1", "r1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// The server-side failure is swallowed; locally the sign-out happened.
	err := client.Logout(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, tokens.AccessToken())
	assert.Empty(t, tokens.RefreshToken())
}

func TestRegister(t *testing.T) {
	var got domain.RegisterForm
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	form := domain.RegisterForm{
		Email:    "kim@example.com",
		Password: "Secret1!",
		Name:     "Kim",
		Phone:    "010-1234-5678",
	}
	require.NoError(t, client.Register(context.Background(), form))
	assert.Equal(t, form, got)
}

func TestUpdateProfile(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/user", r.URL.Path)
		fmt.Fprint(w, `{"id": 1, "name": "Kim", "phone": "010-1234-5678"}`)
	})

	user, err := client.UpdateProfile(context.Background(), domain.ProfileUpdate{Phone: "010-1234-5678"})
	require.NoError(t, err)
	assert.Equal(t, "010-1234-5678", user.Phone)
}
