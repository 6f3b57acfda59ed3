//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oshokin/pandora-installer/internal/config"
	"github.com/oshokin/pandora-installer/internal/domain/release"
	"github.com/oshokin/pandora-installer/internal/version"
)

// Client wraps an *http.Client with release API helpers.
type Client struct {
	// httpClient performs the requests.
	httpClient *http.Client
	// apiBaseURL is the release API root.
	apiBaseURL string
	// callTimeout bounds a single request including reading the body.
	callTimeout time.Duration
	// userAgent is sent with every request.
	userAgent string
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a timeout for every request.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

var (
	// errAPIBaseURLRequired is returned when the API root is missing.
	errAPIBaseURLRequired = errors.New("api base URL must be provided")
	// ErrBadHTTPStatus is returned for any non-2xx response.
	ErrBadHTTPStatus = errors.New("unexpected http status")
)

// latestReleaseResponse is the subset of the release API payload the installer reads.
type latestReleaseResponse struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name   string `json:"name"`
		Digest string `json:"digest"`
	} `json:"assets"`
}

// NewClient creates a client for the release API rooted at apiBaseURL.
func NewClient(apiBaseURL string, opts ...Option) (*Client, error) {
	if apiBaseURL == "" {
		return nil, errAPIBaseURLRequired
	}

	client := &Client{
		httpClient:  http.DefaultClient,
		apiBaseURL:  strings.TrimRight(apiBaseURL, "/"),
		callTimeout: config.DefaultTimeout,
		userAgent:   version.UserAgent(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// LatestReleaseURL returns the endpoint queried by LatestRelease.
func (c *Client) LatestReleaseURL(owner, repository string) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.apiBaseURL, owner, repository)
}

// LatestRelease fetches the latest release of owner/repository.
// The returned release is validated: its tag is never empty.
func (c *Client) LatestRelease(ctx context.Context, owner, repository string) (*release.Release, error) {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	body, err := c.open(ctx, c.LatestReleaseURL(owner, repository), "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = body.Close()
	}()

	var payload latestReleaseResponse
	if err = json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode release response: %w", err)
	}

	result := &release.Release{
		Tag:     strings.TrimSpace(payload.TagName),
		Digests: make(map[string]string, len(payload.Assets)),
	}

	for _, asset := range payload.Assets {
		result.Digests[asset.Name] = asset.Digest
	}

	if err = result.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}

// Download streams the body of url into w.
func (c *Client) Download(ctx context.Context, url string, w io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	body, err := c.open(ctx, url, "")
	if err != nil {
		return err
	}

	defer func() {
		_ = body.Close()
	}()

	if _, err = io.Copy(w, body); err != nil {
		return fmt.Errorf("read %s: %w", url, err)
	}

	return nil
}

// open performs a GET and returns the body of a 2xx response.
func (c *Client) open(ctx context.Context, url, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)

	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		_ = response.Body.Close()

		return nil, fmt.Errorf("%s, %s: %w", url, response.Status, ErrBadHTTPStatus)
	}

	return response.Body, nil
}
