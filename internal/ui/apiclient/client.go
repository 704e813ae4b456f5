// Package apiclient is the typed HTTP client the UI uses to talk to the API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bookstore/internal/domains/author"
	"bookstore/internal/domains/book/model"
	"bookstore/internal/domains/user"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client with a 30s timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// =====================================================
// AUTH
// =====================================================

func (c *Client) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	var resp user.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req user.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", "", req, nil)
}

// =====================================================
// AUTHORS
// =====================================================

func (c *Client) ListAuthors(ctx context.Context, token string) ([]author.AuthorResponse, error) {
	var resp []author.AuthorResponse
	if err := c.do(ctx, http.MethodGet, "/api/authors", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetAuthor(ctx context.Context, token string, id int) (*author.AuthorResponse, error) {
	var resp author.AuthorResponse
	if err := c.do(ctx, http.MethodGet, "/api/authors/"+strconv.Itoa(id), token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateAuthor(ctx context.Context, token string, req author.CreateAuthorRequest) (*author.AuthorResponse, error) {
	var resp author.AuthorResponse
	if err := c.do(ctx, http.MethodPost, "/api/authors", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateAuthor(ctx context.Context, token string, req author.UpdateAuthorRequest) error {
	return c.do(ctx, http.MethodPut, "/api/authors/"+strconv.Itoa(req.ID), token, req, nil)
}

func (c *Client) DeleteAuthor(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/authors/"+strconv.Itoa(id), token, nil, nil)
}

// =====================================================
// BOOKS
// =====================================================

func (c *Client) ListBooks(ctx context.Context, token string) ([]model.BookResponse, error) {
	var resp []model.BookResponse
	if err := c.do(ctx, http.MethodGet, "/api/books", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetBook(ctx context.Context, token string, id int) (*model.BookDetailsResponse, error) {
	var resp model.BookDetailsResponse
	if err := c.do(ctx, http.MethodGet, "/api/books/"+strconv.Itoa(id), token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateBook(ctx context.Context, token string, req model.CreateBookRequest) (*model.BookDetailsResponse, error) {
	var resp model.BookDetailsResponse
	if err := c.do(ctx, http.MethodPost, "/api/books", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateBook(ctx context.Context, token string, req model.UpdateBookRequest) error {
	return c.do(ctx, http.MethodPut, "/api/books/"+strconv.Itoa(req.ID), token, req, nil)
}

func (c *Client) DeleteBook(ctx context.Context, token string, id int) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+strconv.Itoa(id), token, nil, nil)
}

// do sends body as JSON and decodes a 2xx response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

type errorEnvelope struct {
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeError(status int, body []byte) error {
	apiErr := &APIError{StatusCode: status}

	var env errorEnvelope
	if len(body) > 0 && json.Unmarshal(body, &env) == nil && env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		apiErr.Details = env.Error.Details
	}
	return apiErr
}
