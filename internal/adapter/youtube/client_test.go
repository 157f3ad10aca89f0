package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"ytclust/internal/domain"
	"ytclust/internal/port"
)

func thread(likes int, text string) map[string]any {
	return map[string]any{
		"snippet": map[string]any{
			"topLevelComment": map[string]any{
				"snippet": map[string]any{
					"likeCount":   likes,
					"textDisplay": text,
				},
			},
		},
	}
}

func TestClient_ListComments(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/commentThreads", r.URL.Path)
		q := r.URL.Query()
		gotQuery = map[string]string{
			"part":       q.Get("part"),
			"videoId":    q.Get("videoId"),
			"maxResults": q.Get("maxResults"),
			"pageToken":  q.Get("pageToken"),
			"textFormat": q.Get("textFormat"),
			"key":        q.Get("key"),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items":         []any{thread(3, "great video"), thread(0, "first")},
			"nextPageToken": "page-2",
		})
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "test-key", option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)

	page, err := c.ListComments(context.Background(), port.CommentPageRequest{
		VideoID:    "abc123",
		PageSize:   50,
		PageToken:  "page-1",
		TextFormat: "plainText",
	})
	require.NoError(t, err)

	assert.Equal(t, "page-2", page.NextPageToken)
	assert.Equal(t, []domain.Comment{
		{LikeCount: 3, Text: "great video"},
		{LikeCount: 0, Text: "first"},
	}, page.Comments)

	assert.Equal(t, "snippet", gotQuery["part"])
	assert.Equal(t, "abc123", gotQuery["videoId"])
	assert.Equal(t, "50", gotQuery["maxResults"])
	assert.Equal(t, "page-1", gotQuery["pageToken"])
	assert.Equal(t, "plainText", gotQuery["textFormat"])
	assert.Equal(t, "test-key", gotQuery["key"])
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"commentsDisabled"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(context.Background(), "test-key", option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)

	_, err = c.ListComments(context.Background(), port.CommentPageRequest{VideoID: "x", PageSize: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commentsDisabled")
}

func TestNewClientFromEnv_MissingKey(t *testing.T) {
	t.Setenv("YTCLUST_TEST_KEY", "")
	_, err := NewClientFromEnv(context.Background(), "YTCLUST_TEST_KEY", "")
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}
