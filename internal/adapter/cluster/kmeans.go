package cluster

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// KMeans clusters the rows of a matrix with k-means++ seeding and Lloyd
// iterations on squared Euclidean distance.
type KMeans struct {
	K       int
	Seed    int64 // negative seeds from the clock
	NInit   int
	MaxIter int
	Tol     float64 // relative to the mean per-feature variance
}

// Result is the best of the NInit runs.
type Result struct {
	K          int
	Labels     []int
	Centroids  *mat.Dense
	Inertia    float64
	Iterations int
	Seed       int64
}

// Sizes returns the number of rows assigned to each cluster.
func (r *Result) Sizes() []int {
	sizes := make([]int, r.K)
	for _, l := range r.Labels {
		sizes[l]++
	}
	return sizes
}

// Fit clusters the rows of x.
func (km KMeans) Fit(x *mat.Dense) (*Result, error) {
	if x == nil {
		return nil, ErrEmptyCorpus
	}
	n, _ := x.Dims()
	if n == 0 {
		return nil, ErrEmptyCorpus
	}
	if km.K < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", km.K)
	}

	k := km.K
	if k > n {
		k = n
	}
	nInit := km.NInit
	if nInit < 1 {
		nInit = 1
	}
	maxIter := km.MaxIter
	if maxIter < 1 {
		maxIter = 300
	}

	seed := km.Seed
	if seed < 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	tol := km.Tol * meanVariance(x)

	var best *Result
	for run := 0; run < nInit; run++ {
		res := lloyd(x, initPlusPlus(x, k, rng), maxIter, tol)
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	best.K = k
	best.Seed = seed
	return best, nil
}

// initPlusPlus picks k initial centroids with D² sampling.
func initPlusPlus(x *mat.Dense, k int, rng *rand.Rand) *mat.Dense {
	n, d := x.Dims()
	centroids := mat.NewDense(k, d, nil)

	centroids.SetRow(0, x.RawRowView(rng.Intn(n)))

	closest := make([]float64, n)
	for j := 0; j < n; j++ {
		closest[j] = sqDist(x.RawRowView(j), centroids.RawRowView(0))
	}

	for i := 1; i < k; i++ {
		total := floats.Sum(closest)
		next := rng.Intn(n)
		if total > 0 {
			target := rng.Float64() * total
			cum := 0.0
			for j, dist := range closest {
				cum += dist
				if cum >= target && dist > 0 {
					next = j
					break
				}
			}
		}
		centroids.SetRow(i, x.RawRowView(next))

		c := centroids.RawRowView(i)
		for j := 0; j < n; j++ {
			if dist := sqDist(x.RawRowView(j), c); dist < closest[j] {
				closest[j] = dist
			}
		}
	}

	return centroids
}

func lloyd(x, centroids *mat.Dense, maxIter int, tol float64) *Result {
	n, _ := x.Dims()
	k, _ := centroids.Dims()
	labels := make([]int, n)
	dists := make([]float64, n)

	iter := 0
	for iter < maxIter {
		iter++
		assign(x, centroids, labels, dists)

		updated := updateCentroids(x, labels, dists, k)
		shift := 0.0
		for c := 0; c < k; c++ {
			shift += sqDist(centroids.RawRowView(c), updated.RawRowView(c))
		}
		centroids = updated
		if shift <= tol {
			break
		}
	}

	// Final assignment against the converged centroids.
	inertia := assign(x, centroids, labels, dists)

	return &Result{
		Labels:     labels,
		Centroids:  centroids,
		Inertia:    inertia,
		Iterations: iter,
	}
}

// assign labels each row with its nearest centroid and returns the inertia.
func assign(x, centroids *mat.Dense, labels []int, dists []float64) float64 {
	n, _ := x.Dims()
	k, _ := centroids.Dims()
	inertia := 0.0
	for i := 0; i < n; i++ {
		point := x.RawRowView(i)
		bestDist := math.Inf(1)
		bestCluster := 0
		for c := 0; c < k; c++ {
			if dist := sqDist(point, centroids.RawRowView(c)); dist < bestDist {
				bestDist = dist
				bestCluster = c
			}
		}
		labels[i] = bestCluster
		dists[i] = bestDist
		inertia += bestDist
	}
	return inertia
}

// updateCentroids averages the rows of each cluster. An empty cluster is
// re-seeded with the row farthest from its current centroid.
func updateCentroids(x *mat.Dense, labels []int, dists []float64, k int) *mat.Dense {
	n, d := x.Dims()
	centroids := mat.NewDense(k, d, nil)
	counts := make([]int, k)

	for i := 0; i < n; i++ {
		floats.Add(centroids.RawRowView(labels[i]), x.RawRowView(i))
		counts[labels[i]]++
	}

	used := make(map[int]bool)
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			floats.Scale(1/float64(counts[c]), centroids.RawRowView(c))
			continue
		}
		far := -1
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			if far < 0 || dists[i] > dists[far] {
				far = i
			}
		}
		if far < 0 {
			continue
		}
		used[far] = true
		centroids.SetRow(c, x.RawRowView(far))
	}

	return centroids
}

func sqDist(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// meanVariance is the mean of the per-column variances of x.
func meanVariance(x *mat.Dense) float64 {
	n, d := x.Dims()
	if n == 0 || d == 0 {
		return 0
	}
	total := 0.0
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, x)
		mean := floats.Sum(col) / float64(n)
		v := 0.0
		for _, val := range col {
			v += (val - mean) * (val - mean)
		}
		total += v / float64(n)
	}
	return total / float64(d)
}
