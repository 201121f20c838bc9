package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jaeyoon222/PlanA/internal/auth"
)

// refreshTokens runs the refresh fallback chain the backend deployments have
// accumulated over time, first success wins:
//
//  1. cookie-based: bare POST, refresh token travels in the session cookie
//     (only when the client is configured for it),
//  2. body-based: {"refreshToken": ...}, then {"token": ...},
//  3. header-based: the refresh token as a bearer header.
//
// Called exclusively through TokenStore.Refresh, so at most one chain runs at
// a time regardless of how many requests hit 401 together.
func (c *Client) refreshTokens(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	if c.refreshWithCookie {
		return c.refreshAttempt(ctx, nil, "")
	}

	for _, key := range []string{"refreshToken", "token"} {
		pair, err := c.refreshAttempt(ctx, map[string]string{key: refreshToken}, "")
		if err == nil {
			return pair, nil
		}
	}

	if refreshToken != "" {
		if pair, err := c.refreshAttempt(ctx, nil, refreshToken); err == nil {
			return pair, nil
		}
	}

	return auth.TokenPair{}, fmt.Errorf("all refresh strategies failed")
}

func (c *Client) refreshAttempt(ctx context.Context, body map[string]string, bearer string) (auth.TokenPair, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return auth.TokenPair{}, err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, reader)
	if err != nil {
		return auth.TokenPair{}, err
	}

	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return auth.TokenPair{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return auth.TokenPair{}, fmt.Errorf("refresh rejected (%d)", resp.StatusCode)
	}

	var pair auth.TokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return auth.TokenPair{}, fmt.Errorf("decode refresh response: %w", err)
	}
	if pair.AccessToken == "" {
		return auth.TokenPair{}, fmt.Errorf("refresh response carried no access token")
	}

	return pair, nil
}
