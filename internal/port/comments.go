package port

import (
	"context"

	"ytclust/internal/domain"
)

// CommentPageRequest describes one page request to a comment listing API.
type CommentPageRequest struct {
	VideoID    string
	PageSize   int
	PageToken  string
	TextFormat string
}

// CommentPage is one page of top-level comments.
// An empty NextPageToken means there are no further pages.
type CommentPage struct {
	Comments      []domain.Comment
	NextPageToken string
}

// CommentLister lists the top-level comments of a video one page at a time.
type CommentLister interface {
	ListComments(ctx context.Context, req CommentPageRequest) (CommentPage, error)
}
