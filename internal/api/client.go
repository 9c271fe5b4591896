// Package api talks to the profile backend: POST /credentials and GET /user.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jask/idcard/internal/logging"
)

var (
	ErrInvalidCredentials = errors.New("Incorrect credentials provided")
	ErrUnauthenticated    = errors.New("Incorrect authentication header")
)

// Client is an HTTP client for the profile backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *log.Logger
}

// New returns a client rooted at baseURL. A zero timeout means none; a nil
// logger discards.
func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger,
	}
}

// Login exchanges credentials for a token. The body is read as a JSON object
// whatever the status; a missing, empty or non-string token is invalid credentials.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return "", fmt.Errorf("encode credentials: %w", err)
	}
	obj, status, err := c.do(ctx, http.MethodPost, "/credentials", bytes.NewReader(body), nil)
	if err != nil {
		return "", err
	}
	raw, ok := obj["token"]
	if !ok {
		c.log.Warn("login rejected", "status", status)
		return "", ErrInvalidCredentials
	}
	var token string
	if err := json.Unmarshal(raw, &token); err != nil || token == "" {
		c.log.Warn("login returned unusable token", "status", status)
		return "", ErrInvalidCredentials
	}
	c.log.Info("login ok", "status", status)
	return token, nil
}

// FetchUser loads the profile for token. The token is sent as the raw
// Authorization value with no scheme. An empty object means the token was refused.
// Fields that are not strings are kept as their JSON text.
func (c *Client) FetchUser(ctx context.Context, token string) (UserData, error) {
	obj, status, err := c.do(ctx, http.MethodGet, "/user", nil, http.Header{"Authorization": {token}})
	if err != nil {
		return UserData{}, err
	}
	if len(obj) == 0 {
		c.log.Warn("user request refused", "status", status)
		return UserData{}, ErrUnauthenticated
	}
	var u UserData
	for field, dst := range map[string]*string{
		"uuid":      &u.UUID,
		"image":     &u.Image,
		"firstName": &u.FirstName,
		"lastName":  &u.LastName,
		"address":   &u.Address,
		"phone":     &u.Phone,
	} {
		if raw, ok := obj[field]; ok {
			*dst = fieldText(raw)
		}
	}
	c.log.Debug("user loaded", "uuid", u.UUID)
	return u, nil
}

// fieldText renders a user field for display: strings unquoted, null empty,
// anything else as written.
func fieldText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(raw, []byte("null")) {
		return ""
	}
	return string(raw)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, header http.Header) (map[string]json.RawMessage, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("request", "method", method, "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "path", path, "err", err)
		return nil, 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var obj map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		c.log.Error("decode failed", "path", path, "status", resp.StatusCode, "err", err)
		return nil, resp.StatusCode, fmt.Errorf("decode %s response: %w", path, err)
	}
	return obj, resp.StatusCode, nil
}
