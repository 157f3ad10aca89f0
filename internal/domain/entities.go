package domain

// Comment is a top-level video comment as returned by the comment API.
// Comments are compared by value: equal text and like count are the same comment.
type Comment struct {
	LikeCount int64
	Text      string
}

// Row is one corpus entry. PostClean is overwritten by each pipeline stage.
type Row struct {
	Index     string
	LikeCount int64
	PreClean  string
	PostClean string
	Cluster   int
}

// Corpus is an ordered collection of rows.
type Corpus struct {
	Rows []Row
}

// Len returns the number of rows.
func (c *Corpus) Len() int {
	return len(c.Rows)
}

// Texts returns the PostClean column.
func (c *Corpus) Texts() []string {
	texts := make([]string, len(c.Rows))
	for i, r := range c.Rows {
		texts[i] = r.PostClean
	}
	return texts
}

// CommentRecord is the on-disk shape of a comment in the extractor output.
type CommentRecord struct {
	LikeCount int64  `json:"like_count"`
	Comment   string `json:"comment"`
}

// ClusterStats aggregates likes and comment counts for one cluster.
type ClusterStats struct {
	Cluster         int     `json:"cluster"`
	TotalLikes      int64   `json:"total_likes"`
	TotalComments   int     `json:"total_comments"`
	LikesPercent    float64 `json:"likes_percent"`
	CommentsPercent float64 `json:"comments_percent"`
}

// ClusterText is the concatenated cleaned text of one cluster.
type ClusterText struct {
	Cluster int
	Text    string
}
