package report

import (
	"errors"
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"ytclust/internal/domain"
)

// ErrNoClusters is returned when there is nothing to chart.
var ErrNoClusters = errors.New("no clusters to chart")

// BarChart renders total likes and comment counts per cluster as a grouped
// bar chart. Each bar is annotated with its value and its share of the total.
func BarChart(path string, stats []domain.ClusterStats, opts Options) error {
	if len(stats) == 0 {
		return ErrNoClusters
	}
	opts = opts.withDefaults()
	width, height := opts.size()

	likes := make(plotter.Values, len(stats))
	comments := make(plotter.Values, len(stats))
	names := make([]string, len(stats))
	maxValue := 0.0
	for i, s := range stats {
		likes[i] = float64(s.TotalLikes)
		comments[i] = float64(s.TotalComments)
		names[i] = strconv.Itoa(s.Cluster)
		maxValue = max(maxValue, likes[i], comments[i])
	}

	p := plot.New()
	p.Title.Text = "Total Likes and Comments per Cluster"
	p.X.Label.Text = "Cluster"
	p.Y.Label.Text = "Count"

	barWidth := width / vg.Length(3*len(stats)+1)
	if barWidth > vg.Points(40) {
		barWidth = vg.Points(40)
	}

	likeBars, err := plotter.NewBarChart(likes, barWidth)
	if err != nil {
		return fmt.Errorf("likes bars: %w", err)
	}
	likeBars.Color = plotutil.Color(0)
	likeBars.LineStyle.Width = vg.Length(0)
	likeBars.Offset = -barWidth / 2

	commentBars, err := plotter.NewBarChart(comments, barWidth)
	if err != nil {
		return fmt.Errorf("comment bars: %w", err)
	}
	commentBars.Color = plotutil.Color(1)
	commentBars.LineStyle.Width = vg.Length(0)
	commentBars.Offset = barWidth / 2

	p.Add(likeBars, commentBars)
	p.Legend.Add("Total Likes", likeBars)
	p.Legend.Add("Total Comments", commentBars)
	p.Legend.Top = true
	p.NominalX(names...)

	likeLabels, err := annotations(stats, likes, func(s domain.ClusterStats) float64 { return s.LikesPercent })
	if err != nil {
		return err
	}
	likeLabels.Offset = vg.Point{X: -barWidth / 2, Y: vg.Points(3)}

	commentLabels, err := annotations(stats, comments, func(s domain.ClusterStats) float64 { return s.CommentsPercent })
	if err != nil {
		return err
	}
	commentLabels.Offset = vg.Point{X: barWidth / 2, Y: vg.Points(3)}

	p.Add(likeLabels, commentLabels)

	p.Y.Min = 0
	p.Y.Max = maxValue*1.2 + 1

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save bar chart: %w", err)
	}
	return nil
}

func annotations(stats []domain.ClusterStats, values plotter.Values, percent func(domain.ClusterStats) float64) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(values))
	labels := make([]string, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: float64(i), Y: v}
		labels[i] = fmt.Sprintf("%d\n(%.0f%%)", int64(v), percent(stats[i]))
	}

	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("bar labels: %w", err)
	}
	for i := range l.TextStyle {
		l.TextStyle[i].Font.Size = vg.Points(8)
		l.TextStyle[i].XAlign = text.XCenter
	}
	return l, nil
}
