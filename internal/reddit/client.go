// Package reddit wraps the one Reddit API call this service makes: replying
// to the comment associated with a link when the link is revoked.
package reddit

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redditdevs/VerifyBot_Go/internal/domain"
	"github.com/redditdevs/VerifyBot_Go/internal/logger"
)

// APIPrefix is the authenticated Reddit API base URL.
const APIPrefix = "https://oauth.reddit.com"

// Commenter posts a comment reply on Reddit.
type Commenter interface {
	SubmitComment(ctx context.Context, parentID, text string) error
}

// Client is a minimal Reddit API client.
type Client struct {
	BaseURL   string
	Client    *http.Client
	Token     string
	UserAgent string
}

// NewClient creates a Reddit client using the given OAuth token.
func NewClient(token, userAgent string) *Client {
	return &Client{
		BaseURL: APIPrefix,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		Token:     token,
		UserAgent: userAgent,
	}
}

// SubmitComment posts a reply under the given fullname (e.g. a t1_ comment id).
func (c *Client) SubmitComment(ctx context.Context, parentID, text string) error {
	const op = "submit comment"
	log := logger.FromContext(ctx)

	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("thing_id", parentID)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/comment", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		log.Error("Reddit request failed", "op", op, "error", err)
		return &domain.RemoteError{Op: op}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.RemoteError{Op: op, Status: resp.StatusCode}
	}

	log.Info("Comment submitted", "parent_id", parentID)
	return nil
}
