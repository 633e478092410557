// Package client is a Go client for the NepalFund onboarding API. It keeps the
// signed-in session in an injected onboarding.SessionStore and returns the
// screen the caller should show next.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nepalfund/nepalfund_backend/pkg/onboarding"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nepalfund api: %d %s", e.Status, e.Message)
}

// RegisterInput is the manual sign-up form.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Gender    string `json:"gender,omitempty"`
	DOB       string `json:"dob,omitempty"`
}

type userView struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	ProfileCompleted bool   `json:"profileCompleted"`
}

type authResponse struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

type profileResponse struct {
	User userView `json:"user"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type Client struct {
	baseURL string
	http    *http.Client
	store   onboarding.SessionStore
	router  *onboarding.Router
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, store onboarding.SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		store:   store,
		router:  onboarding.NewRouter(store),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (onboarding.Destination, error) {
	return c.authenticate(ctx, "/register", in)
}

func (c *Client) Login(ctx context.Context, email, password string) (onboarding.Destination, error) {
	return c.authenticate(ctx, "/login", map[string]string{"email": email, "password": password})
}

// GoogleLogin signs in with an ID token obtained from Google Identity Services.
func (c *Client) GoogleLogin(ctx context.Context, credential string) (onboarding.Destination, error) {
	return c.authenticate(ctx, "/auth/google-login", map[string]string{"credential": credential})
}

// CompleteGoogleProfile confirms the name and phone of the signed-in account.
func (c *Client) CompleteGoogleProfile(ctx context.Context, name, phone string) (onboarding.Destination, error) {
	s, ok := c.store.Load()
	if !ok {
		return onboarding.Destination{Path: onboarding.PathLogin}, nil
	}
	var resp profileResponse
	body := map[string]string{"name": name, "phoneNumber": phone, "email": s.Email}
	if err := c.do(ctx, http.MethodPost, "/auth/google-register", s.Token, body, &resp); err != nil {
		return onboarding.Destination{}, err
	}
	return c.router.ProfileCompleted(resp.User.FirstName, resp.User.LastName), nil
}

// Current returns the destination for the stored session.
func (c *Client) Current() onboarding.Destination {
	return c.router.Current()
}

func (c *Client) Logout() onboarding.Destination {
	return c.router.Logout()
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (onboarding.Destination, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, path, "", body, &resp); err != nil {
		return onboarding.Destination{}, err
	}
	return c.router.Authenticated(onboarding.Session{
		UserID:           resp.User.ID,
		Email:            resp.User.Email,
		FirstName:        resp.User.FirstName,
		LastName:         resp.User.LastName,
		Token:            resp.Token,
		ProfileCompleted: resp.User.ProfileCompleted,
	}), nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e errorResponse
		_ = json.NewDecoder(res.Body).Decode(&e)
		if e.Message == "" {
			e.Message = http.StatusText(res.StatusCode)
		}
		return &APIError{Status: res.StatusCode, Message: e.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
