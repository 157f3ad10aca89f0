// Package report renders cluster word clouds, the likes/comments bar
// chart and a plain-text summary.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Options controls image size and word cloud density.
type Options struct {
	Width    int // pixels
	Height   int // pixels
	MaxWords int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 400
	}
	if o.MaxWords <= 0 {
		o.MaxWords = 100
	}
	return o
}

// pixels are rendered at 96 dpi.
func (o Options) size() (vg.Length, vg.Length) {
	return vg.Length(o.Width) * vg.Inch / 96, vg.Length(o.Height) * vg.Inch / 96
}

// WordCount is a word and its frequency.
type WordCount struct {
	Word  string
	Count int
}

// TopWords counts whitespace-separated words in doc and returns the n most
// frequent, ties broken alphabetically.
func TopWords(doc string, n int) []WordCount {
	counts := make(map[string]int)
	for _, w := range strings.Fields(doc) {
		counts[w]++
	}

	words := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		words = append(words, WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if n > 0 && len(words) > n {
		words = words[:n]
	}
	return words
}

type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) overlaps(o rect) bool {
	return r.x0 < o.x1 && o.x0 < r.x1 && r.y0 < o.y1 && o.y0 < r.y1
}

type placedWord struct {
	WordCount
	x, y float64
	size vg.Length
}

// layout places words on an Archimedean spiral from the centre, largest
// first. Coordinates are in points within a w x h box. Words that do not
// fit are dropped.
func layout(words []WordCount, w, h float64) []placedWord {
	if len(words) == 0 {
		return nil
	}

	maxCount := float64(words[0].Count)
	minSize, maxSize := 8.0, math.Max(12, h/5)

	var placed []placedWord
	var boxes []rect
	for _, wc := range words {
		size := minSize + (maxSize-minSize)*float64(wc.Count)/maxCount
		bw := 0.6 * size * float64(len([]rune(wc.Word)))
		bh := size

		for step := 0; step < 2000; step++ {
			theta := float64(step) * 0.1
			radius := 2 * theta
			cx := w/2 + radius*math.Cos(theta)
			cy := h/2 + radius*math.Sin(theta)*h/w

			box := rect{cx - bw/2, cy - bh/2, cx + bw/2, cy + bh/2}
			if box.x0 < 0 || box.y0 < 0 || box.x1 > w || box.y1 > h {
				continue
			}
			free := true
			for _, b := range boxes {
				if box.overlaps(b) {
					free = false
					break
				}
			}
			if !free {
				continue
			}

			boxes = append(boxes, box)
			placed = append(placed, placedWord{WordCount: wc, x: cx, y: cy, size: vg.Points(size)})
			break
		}
	}
	return placed
}

// WordCloud renders the most frequent words of doc to a PNG at path.
// Font size scales with frequency and the layout is deterministic.
func WordCloud(path string, cluster int, doc string, opts Options) error {
	opts = opts.withDefaults()
	width, height := opts.size()

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Word Cloud for Cluster %d", cluster)
	p.HideAxes()

	w, h := float64(width), float64(height)*0.9
	p.X.Min, p.X.Max = 0, w
	p.Y.Min, p.Y.Max = 0, h

	placed := layout(TopWords(doc, opts.MaxWords), w, h)
	if len(placed) > 0 {
		xys := make(plotter.XYs, len(placed))
		labels := make([]string, len(placed))
		for i, pw := range placed {
			xys[i] = plotter.XY{X: pw.x, Y: pw.y}
			labels[i] = pw.Word
		}

		l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return fmt.Errorf("word cloud labels: %w", err)
		}
		for i, pw := range placed {
			l.TextStyle[i].Font.Size = pw.size
			l.TextStyle[i].Color = plotutil.Color(i)
			l.TextStyle[i].XAlign = text.XCenter
			l.TextStyle[i].YAlign = text.YCenter
		}
		p.Add(l)
	}

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save word cloud: %w", err)
	}
	return nil
}
