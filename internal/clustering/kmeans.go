// Package clustering partitions feature vectors into groups with a seeded
// centroid-based algorithm.
package clustering

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"reviewlens/internal/config"
	"reviewlens/internal/core"
	"reviewlens/internal/logger"
)

// ErrInvalidClusterCount is returned when the requested cluster count is
// incompatible with the number of available rows. This is a configuration
// error, not something the engine papers over.
var ErrInvalidClusterCount = errors.New("clustering: invalid cluster count")

// Engine runs seeded k-means with multiple restarts, keeping the most
// compact (lowest-inertia) solution. With a fixed seed the result is fully
// deterministic for a given input.
type Engine struct {
	cfg config.Clustering
	log *slog.Logger
}

// NewEngine creates an Engine with the given clustering configuration.
func NewEngine(cfg config.Clustering) *Engine {
	return &Engine{cfg: cfg, log: logger.Get()}
}

// Cluster partitions rows into at most k groups. Every row is assigned to
// exactly one cluster; non-empty clusters are relabeled compactly 0..k'-1
// in order of first member appearance, so k' may be smaller than k when
// centroids collapse. Returns the clusters and the per-row assignment,
// which indexes the same row order the caller supplied.
func (e *Engine) Cluster(rows [][]float64, k int) ([]core.Cluster, []int, error) {
	if k <= 0 || k > len(rows) {
		return nil, nil, fmt.Errorf("%w: k=%d with %d rows", ErrInvalidClusterCount, k, len(rows))
	}

	var bestAssignments []int
	bestInertia := math.Inf(1)

	for restart := 0; restart < e.cfg.Restarts; restart++ {
		rng := rand.New(rand.NewSource(e.cfg.Seed + int64(restart)))
		assignments, inertia := e.run(rows, k, rng)
		if inertia < bestInertia {
			bestInertia = inertia
			bestAssignments = assignments
		}
	}

	clusters, relabeled := compact(bestAssignments)

	e.log.Debug("clustering complete",
		"rows", len(rows), "requested_k", k, "clusters", len(clusters), "inertia", bestInertia)

	return clusters, relabeled, nil
}

// run executes one k-means pass: k-means++ initialization, then assign and
// update steps until assignments stabilize or the iteration cap is hit.
// Returns the assignments and the solution's inertia.
func (e *Engine) run(rows [][]float64, k int, rng *rand.Rand) ([]int, float64) {
	dim := len(rows[0])
	centroids := initCentroids(rows, k, rng)

	assignments := make([]int, len(rows))
	for i := range assignments {
		assignments[i] = -1
	}

	for iter := 0; iter < e.cfg.MaxIterations; iter++ {
		changed := false
		for i, row := range rows {
			nearest := nearestCentroid(row, centroids)
			if nearest != assignments[i] {
				assignments[i] = nearest
				changed = true
			}
		}
		if !changed {
			break
		}
		centroids = updateCentroids(rows, assignments, k, dim, centroids)
	}

	var inertia float64
	for i, row := range rows {
		inertia += squaredDistance(row, centroids[assignments[i]])
	}
	return assignments, inertia
}

// initCentroids seeds k centroids with the k-means++ scheme: the first is
// drawn uniformly, each subsequent one with probability proportional to
// its squared distance from the nearest existing centroid.
func initCentroids(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, k)
	centroids[0] = cloneRow(rows[rng.Intn(len(rows))])

	distances := make([]float64, len(rows))
	for c := 1; c < k; c++ {
		var total float64
		for i, row := range rows {
			min := math.Inf(1)
			for _, centroid := range centroids[:c] {
				if d := squaredDistance(row, centroid); d < min {
					min = d
				}
			}
			distances[i] = min
			total += min
		}

		if total == 0 {
			centroids[c] = cloneRow(rows[rng.Intn(len(rows))])
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		selected := len(rows) - 1
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				selected = i
				break
			}
		}
		centroids[c] = cloneRow(rows[selected])
	}

	return centroids
}

// nearestCentroid returns the index of the closest centroid by squared
// Euclidean distance.
func nearestCentroid(row []float64, centroids [][]float64) int {
	best := 0
	min := math.Inf(1)
	for i, centroid := range centroids {
		if d := squaredDistance(row, centroid); d < min {
			min = d
			best = i
		}
	}
	return best
}

// updateCentroids recomputes each centroid as the mean of its assigned
// rows. A centroid that lost all members keeps its previous position.
func updateCentroids(rows [][]float64, assignments []int, k, dim int, previous [][]float64) [][]float64 {
	centroids := make([][]float64, k)
	counts := make([]int, k)
	for i := range centroids {
		centroids[i] = make([]float64, dim)
	}

	for i, row := range rows {
		label := assignments[i]
		counts[label]++
		for j, v := range row {
			centroids[label][j] += v
		}
	}

	for i := range centroids {
		if counts[i] == 0 {
			centroids[i] = previous[i]
			continue
		}
		for j := range centroids[i] {
			centroids[i][j] /= float64(counts[i])
		}
	}

	return centroids
}

// compact relabels raw assignments so that populated clusters get compact
// IDs 0..k'-1 in order of first appearance, and builds the cluster list.
// Member indices are ascending by construction. Together the clusters
// partition the input rows exactly.
func compact(assignments []int) ([]core.Cluster, []int) {
	labelMap := make(map[int]int)
	relabeled := make([]int, len(assignments))
	var clusters []core.Cluster

	for i, label := range assignments {
		id, ok := labelMap[label]
		if !ok {
			id = len(clusters)
			labelMap[label] = id
			clusters = append(clusters, core.Cluster{ID: id})
		}
		relabeled[i] = id
		clusters[id].MemberIndices = append(clusters[id].MemberIndices, i)
	}

	for i := range clusters {
		clusters[i].Size = len(clusters[i].MemberIndices)
	}

	return clusters, relabeled
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func cloneRow(row []float64) []float64 {
	out := make([]float64, len(row))
	copy(out, row)
	return out
}
