package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
)

// APIClient is a REST client for the hosted identity service, implementing
// the Provider interface.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	apiKey     string
}

// NewClient creates a new identity service client.
func NewClient(baseURL, apiKey string) Provider {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Ensure APIClient implements the Provider interface.
var _ Provider = (*APIClient)(nil)

// tokenResponse is the provider's account payload. The ID token carries the
// realized identity; the flat fields are fallbacks for providers that omit
// claims from freshly minted tokens.
type tokenResponse struct {
	IDToken     string `json:"idToken"`
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *APIClient) SignUp(ctx context.Context, email, password, displayName string) (Session, error) {
	resp, err := c.post(ctx, "accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"displayName":       displayName,
		"returnSecureToken": true,
	})
	if err != nil {
		return Anonymous(), err
	}
	return c.sessionFrom(resp), nil
}

func (c *APIClient) SignIn(ctx context.Context, email, password string) (Session, error) {
	resp, err := c.post(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return Anonymous(), err
	}
	return c.sessionFrom(resp), nil
}

func (c *APIClient) SignInWithPopup(ctx context.Context) (Session, error) {
	resp, err := c.post(ctx, "accounts:signInWithIdp", map[string]any{
		"returnSecureToken": true,
	})
	if err != nil {
		return Anonymous(), err
	}
	return c.sessionFrom(resp), nil
}

func (c *APIClient) UpdateProfile(ctx context.Context, userID, displayName string) (Session, error) {
	resp, err := c.post(ctx, "accounts:update", map[string]any{
		"localId":           userID,
		"displayName":       displayName,
		"returnSecureToken": true,
	})
	if err != nil {
		return Anonymous(), err
	}
	return c.sessionFrom(resp), nil
}

// SignOut is local to this process; the provider keeps no server-side session
// for this client.
func (c *APIClient) SignOut(ctx context.Context) error {
	return nil
}

func (c *APIClient) post(ctx context.Context, endpoint string, body map[string]any) (*tokenResponse, error) {
	url := fmt.Sprintf("%s/v1/%s?key=%s", c.BaseURL, endpoint, c.apiKey)

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug("Requesting identity service", "endpoint", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read identity response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(data, &errResp); err != nil || errResp.Error.Message == "" {
			return nil, &IdentityError{Code: "unknown", Message: fmt.Sprintf("identity service returned status %d", resp.StatusCode)}
		}
		if errResp.Error.Message == "POPUP_BLOCKED" {
			return nil, ErrPopupBlocked
		}
		log.Debug("Identity service rejected request", "endpoint", endpoint, "code", errResp.Error.Message)
		return nil, &IdentityError{Code: errResp.Error.Message, Message: humanMessage(errResp.Error.Message)}
	}

	var token tokenResponse
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}
	return &token, nil
}

// sessionFrom realizes a session from the provider response, preferring the
// ID token claims over the flat fields.
func (c *APIClient) sessionFrom(resp *tokenResponse) Session {
	userID := resp.LocalID
	email := resp.Email
	displayName := resp.DisplayName

	if resp.IDToken != "" {
		claims := jwt.MapClaims{}
		// The token was minted by the provider moments ago; claims are read
		// without signature verification, same as a client SDK would.
		if _, _, err := jwt.NewParser().ParseUnverified(resp.IDToken, claims); err == nil {
			if sub, err := claims.GetSubject(); err == nil && sub != "" {
				userID = sub
			}
			if v, ok := claims["email"].(string); ok && v != "" {
				email = v
			}
			if v, ok := claims["name"].(string); ok && v != "" {
				displayName = v
			}
		} else {
			log.Debug("Failed to parse ID token, falling back to response fields", "error", err)
		}
	}

	return Authenticated(userID, email, displayName)
}

// humanMessage maps the provider's error codes to the messages shown inline.
func humanMessage(code string) string {
	switch code {
	case "EMAIL_EXISTS":
		return "An account with this email already exists"
	case "INVALID_LOGIN_CREDENTIALS", "INVALID_PASSWORD", "EMAIL_NOT_FOUND":
		return "Incorrect email or password"
	case "WEAK_PASSWORD":
		return "Password is too weak"
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return "Too many attempts. Please try again later"
	default:
		return "An unexpected error occurred"
	}
}
