package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

var googleHTTPClient = &http.Client{Timeout: 10 * time.Second}

// GoogleClaims holds the fields of a verified Google ID token that the
// application cares about.
type GoogleClaims struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Audience      string `json:"aud"`
}

// VerifyGoogleIDToken verifies an ID token against Google's tokeninfo
// endpoint and checks that it was issued for this application.
func VerifyGoogleIDToken(ctx context.Context, idToken string) (*GoogleClaims, error) {
	if idToken == "" {
		return nil, errors.New("missing id token")
	}

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		return nil, errors.New("missing GOOGLE_CLIENT_ID environment variable")
	}

	endpoint := fmt.Sprintf("%s?id_token=%s", googleTokenInfoURL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := googleHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("google rejected the id token")
	}

	var claims GoogleClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if claims.Audience != clientID {
		return nil, errors.New("id token was issued for a different application")
	}
	if claims.EmailVerified != "true" {
		return nil, errors.New("google account email is not verified")
	}
	if claims.Email == "" {
		return nil, errors.New("id token carries no email")
	}

	return &claims, nil
}
