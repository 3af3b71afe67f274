package poolctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// APIError is a non-2xx answer from the HTTP API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
}

type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	IsSuperuser bool   `json:"is_superuser"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// APIClient talks to the poolkeeper HTTP API.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *APIClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Detail string `json:"detail"`
		}
		if json.NewDecoder(resp.Body).Decode(&e) == nil {
			apiErr.Detail = e.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Bootstrap creates the first superuser. It only succeeds on a server that
// has none.
func (c *APIClient) Bootstrap(ctx context.Context, email, username, password string) (*User, error) {
	body, err := json.Marshal(map[string]string{"email": email, "username": username, "password": password})
	if err != nil {
		return nil, err
	}
	var u User
	if err := c.do(ctx, http.MethodPost, "/admin/initial-superuser", "application/json", bytes.NewReader(body), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *APIClient) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{"username": {username}, "password": {password}}
	var t Token
	if err := c.do(ctx, http.MethodPost, "/auth/token", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *APIClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
}
