package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leadflow/leadflow-backend/internal/auth"
	"github.com/leadflow/leadflow-backend/internal/domain"
)

// Made a variable for testing purposes
var tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

var (
	// ErrInvalidToken means Google rejected the token or it was issued for
	// another client.
	ErrInvalidToken = fmt.Errorf("%w: invalid google id token", domain.ErrExternal)
	// ErrEmailNotVerified means the Google account has no verified email.
	ErrEmailNotVerified = fmt.Errorf("%w: google email not verified", domain.ErrExternal)
	// ErrUnavailable means Google could not be reached.
	ErrUnavailable = fmt.Errorf("%w: google unavailable", domain.ErrExternal)
)

// Verifier checks Google Sign-In ID tokens.
type Verifier struct {
	clientID   string
	httpClient *http.Client
	log        *slog.Logger
}

// NewVerifier creates a verifier that accepts tokens issued for clientID.
func NewVerifier(clientID string, logger *slog.Logger) *Verifier {
	return &Verifier{
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "google_oauth"),
	}
}

// tokenInfoResponse is the subset of the tokeninfo payload we use.
// Google encodes email_verified as a string.
type tokenInfoResponse struct {
	Audience      string   `json:"aud"`
	Subject       string   `json:"sub"`
	Email         string   `json:"email"`
	EmailVerified flexBool `json:"email_verified"`
	Name          string   `json:"name"`
	Picture       string   `json:"picture"`
}

type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	*b = flexBool(s == "true")
	return nil
}

// VerifyIDToken validates idToken with Google and returns the identity it
// carries.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.OAuthIdentity, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, ErrInvalidToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		tokenInfoURL+"?"+url.Values{"id_token": {idToken}}.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := v.doWithRetry(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		v.log.ErrorContext(ctx, "google tokeninfo failed", slog.String("error", err.Error()))
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		v.log.ErrorContext(ctx, "google tokeninfo failed", slog.Int("status", resp.StatusCode))
		return nil, ErrUnavailable
	case resp.StatusCode != http.StatusOK:
		v.log.WarnContext(ctx, "google rejected id token", slog.Int("status", resp.StatusCode))
		return nil, ErrInvalidToken
	}

	var info tokenInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		v.log.ErrorContext(ctx, "google tokeninfo failed", slog.String("error", "invalid json"))
		return nil, ErrInvalidToken
	}

	if info.Audience != v.clientID {
		v.log.WarnContext(ctx, "google id token audience mismatch", slog.String("aud", info.Audience))
		return nil, ErrInvalidToken
	}
	if info.Email == "" || info.Subject == "" {
		return nil, ErrInvalidToken
	}
	if !info.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	v.log.DebugContext(ctx, "google id token verified", slog.String("email", info.Email))

	return &auth.OAuthIdentity{
		Email:      info.Email,
		Name:       info.Name,
		PictureURL: info.Picture,
		ProviderID: info.Subject,
	}, nil
}

// doWithRetry executes an HTTP request with retry logic.
// Retries once on 5xx errors or network errors with 500ms backoff.
func (v *Verifier) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil || (resp != nil && resp.StatusCode >= 500) {
		if resp != nil {
			resp.Body.Close()
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		select {
		case <-time.After(500 * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		resp, err = v.httpClient.Do(req)
	}

	return resp, err
}
