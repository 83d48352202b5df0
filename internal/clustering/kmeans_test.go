package clustering

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"reviewlens/internal/config"
)

func testClusteringConfig() config.Clustering {
	return config.Clustering{
		NumClusters:   8,
		MaxIterations: 300,
		Restarts:      10,
		Seed:          42,
	}
}

// blobs returns rows grouped around well-separated centers, deterministically.
func blobs(t *testing.T) [][]float64 {
	t.Helper()

	centers := [][]float64{
		{0, 0},
		{10, 10},
		{-10, 10},
	}
	rng := rand.New(rand.NewSource(7))

	var rows [][]float64
	for _, center := range centers {
		for i := 0; i < 5; i++ {
			rows = append(rows, []float64{
				center[0] + rng.Float64()*0.5,
				center[1] + rng.Float64()*0.5,
			})
		}
	}
	return rows
}

func TestClusterRejectsInvalidCounts(t *testing.T) {
	engine := NewEngine(testClusteringConfig())
	rows := [][]float64{{0}, {1}, {2}}

	for _, k := range []int{0, -1, 4} {
		if _, _, err := engine.Cluster(rows, k); !errors.Is(err, ErrInvalidClusterCount) {
			t.Errorf("k=%d: expected ErrInvalidClusterCount, got %v", k, err)
		}
	}
}

func TestClusterPartitionsEveryRow(t *testing.T) {
	engine := NewEngine(testClusteringConfig())
	rows := blobs(t)

	clusters, assignments, err := engine.Cluster(rows, 3)
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}

	if len(assignments) != len(rows) {
		t.Fatalf("expected %d assignments, got %d", len(rows), len(assignments))
	}

	seen := make(map[int]bool)
	for clusterID, cluster := range clusters {
		if cluster.ID != clusterID {
			t.Errorf("cluster at position %d has id %d", clusterID, cluster.ID)
		}
		if cluster.Size != len(cluster.MemberIndices) {
			t.Errorf("cluster %d size %d does not match %d members", cluster.ID, cluster.Size, len(cluster.MemberIndices))
		}
		for _, idx := range cluster.MemberIndices {
			if idx < 0 || idx >= len(rows) {
				t.Fatalf("cluster %d references row %d outside input", cluster.ID, idx)
			}
			if seen[idx] {
				t.Errorf("row %d appears in more than one cluster", idx)
			}
			seen[idx] = true
			if assignments[idx] != cluster.ID {
				t.Errorf("row %d assigned to %d but listed in cluster %d", idx, assignments[idx], cluster.ID)
			}
		}
	}
	if len(seen) != len(rows) {
		t.Errorf("clusters cover %d rows, want %d", len(seen), len(rows))
	}
}

func TestClusterSeparatesDistinctGroups(t *testing.T) {
	engine := NewEngine(testClusteringConfig())
	rows := blobs(t)

	_, assignments, err := engine.Cluster(rows, 3)
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}

	// Rows within a blob must share a label; rows across blobs must not.
	for blob := 0; blob < 3; blob++ {
		label := assignments[blob*5]
		for i := 1; i < 5; i++ {
			if assignments[blob*5+i] != label {
				t.Errorf("rows %d and %d belong to the same group but got labels %d and %d",
					blob*5, blob*5+i, label, assignments[blob*5+i])
			}
		}
	}
	if assignments[0] == assignments[5] || assignments[5] == assignments[10] || assignments[0] == assignments[10] {
		t.Errorf("distinct groups share a label: %v", assignments)
	}
}

func TestClusterIsDeterministic(t *testing.T) {
	rows := blobs(t)

	firstClusters, firstAssignments, err := NewEngine(testClusteringConfig()).Cluster(rows, 3)
	if err != nil {
		t.Fatalf("first Cluster failed: %v", err)
	}
	secondClusters, secondAssignments, err := NewEngine(testClusteringConfig()).Cluster(rows, 3)
	if err != nil {
		t.Fatalf("second Cluster failed: %v", err)
	}

	if !reflect.DeepEqual(firstAssignments, secondAssignments) {
		t.Errorf("assignments differ between runs: %v vs %v", firstAssignments, secondAssignments)
	}
	if !reflect.DeepEqual(firstClusters, secondClusters) {
		t.Error("clusters differ between runs")
	}
}

func TestClusterLabelsFollowFirstAppearance(t *testing.T) {
	engine := NewEngine(testClusteringConfig())

	clusters, assignments, err := engine.Cluster(blobs(t), 3)
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}

	// Row 0 always belongs to the first label, and labels increase in the
	// order new groups first appear in the input.
	if assignments[0] != 0 {
		t.Errorf("first row has label %d, want 0", assignments[0])
	}
	highest := -1
	for _, label := range assignments {
		if label > highest+1 {
			t.Fatalf("label %d appeared before label %d", label, highest+1)
		}
		if label > highest {
			highest = label
		}
	}
	if highest != len(clusters)-1 {
		t.Errorf("highest label %d does not match cluster count %d", highest, len(clusters))
	}
}

func TestClusterSingletonPerRow(t *testing.T) {
	engine := NewEngine(testClusteringConfig())
	rows := [][]float64{{0, 0}, {5, 5}, {9, 1}}

	clusters, _, err := engine.Cluster(rows, 3)
	if err != nil {
		t.Fatalf("Cluster failed: %v", err)
	}

	if len(clusters) != 3 {
		t.Fatalf("expected 3 singleton clusters, got %d", len(clusters))
	}
	for _, cluster := range clusters {
		if cluster.Size != 1 {
			t.Errorf("cluster %d has size %d, want 1", cluster.ID, cluster.Size)
		}
	}
}
