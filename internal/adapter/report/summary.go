package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"ytclust/internal/domain"
)

// Summary writes a per-cluster table of likes and comments to w.
func Summary(w io.Writer, stats []domain.ClusterStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "cluster\tcomments\tcomments %\tlikes\tlikes %\t")

	var comments int
	var likes int64
	for _, s := range stats {
		fmt.Fprintf(tw, "%d\t%d\t%.0f%%\t%d\t%.0f%%\t\n",
			s.Cluster, s.TotalComments, s.CommentsPercent, s.TotalLikes, s.LikesPercent)
		comments += s.TotalComments
		likes += s.TotalLikes
	}
	fmt.Fprintf(tw, "total\t%d\t\t%d\t\t\n", comments, likes)

	return tw.Flush()
}
