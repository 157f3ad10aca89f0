package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ytclust/internal/domain"
	"ytclust/internal/port"
)

var (
	// ErrInvalidVideoID is returned for an empty video id.
	ErrInvalidVideoID = errors.New("invalid video id")
	// ErrInvalidPageSize is returned for page sizes outside [1, 100].
	ErrInvalidPageSize = errors.New("invalid page size")
)

// FetchUseCase pages through a video's top-level comments.
type FetchUseCase struct {
	lister     port.CommentLister
	textFormat string
	maxPages   int
	logger     *slog.Logger
}

// NewFetchUseCase creates a new fetch use case. maxPages <= 0 means no cap.
func NewFetchUseCase(lister port.CommentLister, textFormat string, maxPages int, logger *slog.Logger) *FetchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &FetchUseCase{
		lister:     lister,
		textFormat: textFormat,
		maxPages:   maxPages,
		logger:     logger,
	}
}

// FetchResult contains the results of a fetch operation.
type FetchResult struct {
	Comments   []domain.Comment
	Pages      int
	Duplicates int
	// Interrupted is the error that stopped paging early, if any.
	// Comments still holds everything collected before it.
	Interrupted error
}

// FetchProgressFunc is called after every page.
type FetchProgressFunc func(pages, comments int)

// Fetch collects the distinct (like count, text) pairs of every comment
// page. API errors end paging without failing the fetch.
func (u *FetchUseCase) Fetch(ctx context.Context, videoID string, pageSize int, progress FetchProgressFunc) (*FetchResult, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: video id is empty", ErrInvalidVideoID)
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, fmt.Errorf("%w: %d is outside [1, 100]", ErrInvalidPageSize, pageSize)
	}

	result := &FetchResult{}
	seen := make(map[domain.Comment]struct{})
	token := ""

	for {
		if err := ctx.Err(); err != nil {
			result.Interrupted = err
			break
		}

		page, err := u.lister.ListComments(ctx, port.CommentPageRequest{
			VideoID:    videoID,
			PageSize:   pageSize,
			PageToken:  token,
			TextFormat: u.textFormat,
		})
		if err != nil {
			u.logger.Warn("comment listing failed, keeping partial result",
				"video_id", videoID, "page", result.Pages+1, "collected", len(result.Comments), "error", err)
			result.Interrupted = err
			break
		}
		result.Pages++

		for _, c := range page.Comments {
			if _, dup := seen[c]; dup {
				result.Duplicates++
				continue
			}
			seen[c] = struct{}{}
			result.Comments = append(result.Comments, c)
		}

		if progress != nil {
			progress(result.Pages, len(result.Comments))
		}

		if page.NextPageToken == "" {
			break
		}
		if u.maxPages > 0 && result.Pages >= u.maxPages {
			u.logger.Info("page limit reached", "max_pages", u.maxPages)
			break
		}
		token = page.NextPageToken
	}

	u.logger.Info("fetch finished",
		"video_id", videoID, "pages", result.Pages, "comments", len(result.Comments), "duplicates", result.Duplicates)
	return result, nil
}
