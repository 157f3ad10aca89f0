// Package youtube lists video comments through the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"ytclust/internal/domain"
	"ytclust/internal/port"
)

// ErrMissingAPIKey is returned when the configured key variable is unset.
var ErrMissingAPIKey = errors.New("API key not found")

// Client implements port.CommentLister with commentThreads.list.
type Client struct {
	svc *yt.Service
}

// NewClientFromEnv reads the API key from apiKeyEnv. endpoint overrides the
// API base URL when non-empty.
func NewClientFromEnv(ctx context.Context, apiKeyEnv, endpoint string) (*Client, error) {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("%w in environment variable: %s", ErrMissingAPIKey, apiKeyEnv)
	}

	var opts []option.ClientOption
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return NewClient(ctx, apiKey, opts...)
}

// NewClient creates a client authenticated with apiKey.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ListComments fetches one page of top-level comments.
func (c *Client) ListComments(ctx context.Context, req port.CommentPageRequest) (port.CommentPage, error) {
	call := c.svc.CommentThreads.List([]string{"snippet"}).
		VideoId(req.VideoID).
		MaxResults(int64(req.PageSize))
	if req.TextFormat != "" {
		call = call.TextFormat(req.TextFormat)
	}
	if req.PageToken != "" {
		call = call.PageToken(req.PageToken)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return port.CommentPage{}, fmt.Errorf("list comment threads: %w", err)
	}

	page := port.CommentPage{
		Comments:      make([]domain.Comment, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		s := item.Snippet.TopLevelComment.Snippet
		page.Comments = append(page.Comments, domain.Comment{
			LikeCount: s.LikeCount,
			Text:      s.TextDisplay,
		})
	}

	return page, nil
}
