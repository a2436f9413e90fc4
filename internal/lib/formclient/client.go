// Package formclient posts the file name form to a running server.
package formclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client submits file names to a server at BaseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for baseURL (e.g. "http://localhost:8080").
//
// Redirects are not followed: Submit reports where the server sends the
// browser instead of fetching the confirmation page.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Submit posts fileName as the file_name form field and returns the
// absolute URL of the confirmation page.
func (c *Client) Submit(ctx context.Context, fileName string) (string, error) {
	form := url.Values{"file_name": {fileName}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit form: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("expected a redirect, got %s", resp.Status)
	}

	location, err := resp.Location()
	if err != nil {
		return "", fmt.Errorf("redirect without location: %w", err)
	}

	return location.String(), nil
}
