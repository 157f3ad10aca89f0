package cluster

import "math"

// ClusterCount picks k = min(maxK, ceil(factor * ln(rows))), clamped to
// [1, rows]. It returns 0 when there are no rows.
func ClusterCount(rows, maxK int, factor float64) int {
	if rows <= 0 {
		return 0
	}
	k := int(math.Ceil(factor * math.Log(float64(rows))))
	if maxK > 0 && k > maxK {
		k = maxK
	}
	if k < 1 {
		k = 1
	}
	if k > rows {
		k = rows
	}
	return k
}
