// Package wordpress is a typed client for the subset of the WordPress REST
// API the migration needs: creating posts, media, users, categories and tags,
// and listing the existing entities to seed the in-memory registries.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wp-content-migrator/internal/config"
)

const listPageSize = 100

// Client talks to one WordPress site over its REST API
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a new API client. The configured timeout applies to every
// request; a timed-out call surfaces as a transient APIError.
func NewClient(cfg *config.WordPressConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.With().Str("component", "wordpress").Logger(),
	}
}

// CreatePost creates a post and returns its decoded representation
func (c *Client) CreatePost(ctx context.Context, payload *PostPayload) (*Post, error) {
	var post Post
	if err := c.postJSON(ctx, "/posts", payload, &post); err != nil {
		return nil, err
	}
	if post.ID == 0 {
		return nil, rejectedError("/posts", "response missing post id")
	}
	return &post, nil
}

// CreateMedia uploads image bytes and, when the upload carries a caption or
// description, patches the attachment metadata in a second request. A failed
// metadata step is logged but does not fail the upload.
func (c *Client) CreateMedia(ctx context.Context, upload *Upload) (*Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/media", bytes.NewReader(upload.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to build media request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", upload.Name))
	req.Header.Set("Content-Type", "image/jpg")
	req.SetBasicAuth(c.username, c.password)

	var media Media
	if err := c.do(req, "/media", &media); err != nil {
		return nil, err
	}
	if media.ID == 0 || media.SourceURL == "" {
		return nil, rejectedError("/media", "response missing media id or source_url")
	}

	if upload.Caption != "" || upload.Description != "" {
		meta := mediaMeta{Description: upload.Description, Caption: upload.Caption}
		endpoint := fmt.Sprintf("/media/%d", media.ID)
		if err := c.postJSON(ctx, endpoint, &meta, &Media{}); err != nil {
			c.log.Warn().Err(err).Int("media_id", media.ID).Msg("Failed to set media metadata")
		}
	}

	return &media, nil
}

// CreateCategory creates a category term
func (c *Client) CreateCategory(ctx context.Context, payload *TermPayload) (*Term, error) {
	return c.createTerm(ctx, "/categories", payload)
}

// CreateTag creates a tag term
func (c *Client) CreateTag(ctx context.Context, payload *TermPayload) (*Term, error) {
	return c.createTerm(ctx, "/tags", payload)
}

func (c *Client) createTerm(ctx context.Context, endpoint string, payload *TermPayload) (*Term, error) {
	var term Term
	if err := c.postJSON(ctx, endpoint, payload, &term); err != nil {
		return nil, err
	}
	if term.ID == 0 {
		return nil, rejectedError(endpoint, "response missing term id")
	}
	return &term, nil
}

// CreateUser creates a user account
func (c *Client) CreateUser(ctx context.Context, payload *UserPayload) (*User, error) {
	var user User
	if err := c.postJSON(ctx, "/users", payload, &user); err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, rejectedError("/users", "response missing user id")
	}
	return &user, nil
}

// ListCategories returns all existing categories
func (c *Client) ListCategories(ctx context.Context) ([]Term, error) {
	return c.listTerms(ctx, "/categories")
}

// ListTags returns all existing tags
func (c *Client) ListTags(ctx context.Context) ([]Term, error) {
	return c.listTerms(ctx, "/tags")
}

func (c *Client) listTerms(ctx context.Context, endpoint string) ([]Term, error) {
	var all []Term
	for page := 1; ; page++ {
		var batch []Term
		if err := c.getJSON(ctx, fmt.Sprintf("%s?per_page=%d&page=%d", endpoint, listPageSize, page), &batch); err != nil {
			if page > 1 && isInvalidPage(err) {
				return all, nil
			}
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < listPageSize {
			return all, nil
		}
	}
}

// ListUsers returns all existing users
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var all []User
	for page := 1; ; page++ {
		var batch []User
		if err := c.getJSON(ctx, fmt.Sprintf("/users?per_page=%d&page=%d", listPageSize, page), &batch); err != nil {
			if page > 1 && isInvalidPage(err) {
				return all, nil
			}
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < listPageSize {
			return all, nil
		}
	}
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	return c.do(req, endpoint, out)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", endpoint, err)
	}
	req.SetBasicAuth(c.username, c.password)

	return c.do(req, endpoint, out)
}

func (c *Client) do(req *http.Request, endpoint string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(endpoint, resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		// A 2xx response that does not decode is a rejection, not a retryable
		// failure; the remote is not speaking the contract we expect.
		return &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint, Message: fmt.Sprintf("undecodable response: %v", err)}
	}

	return nil
}
