// Package cluster runs density-based clustering over the scaled
// (Referee, Team) table and projects it to two dimensions for plotting.
// The clustering and the projection are independent: PCA coordinates are
// never an input to the cluster decision.
package cluster

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/refwatch/refmetrics/internal/model"
)

// unclassified marks rows DBSCAN has not visited yet. Distinct from
// model.NoiseCluster so border points can be claimed by a later cluster.
const unclassified = -2

// Assign runs DBSCAN over the scaled numeric features and returns back the
// rows decorated with cluster labels and a 2-D PCA projection. Rows DBSCAN
// places in no cluster carry model.NoiseCluster.
func Assign(stats []model.ScaledStat, eps float64, minSamples int) ([]model.ClusterAssignment, error) {
	if len(stats) == 0 {
		return nil, fmt.Errorf("no rows to cluster")
	}

	features := featureMatrix(stats)
	labels := dbscanLabels(features, eps, minSamples)

	coords, err := project2D(features)
	if err != nil {
		return nil, fmt.Errorf("pca projection: %w", err)
	}

	out := make([]model.ClusterAssignment, len(stats))
	for i, s := range stats {
		out[i] = model.ClusterAssignment{
			Referee:     s.Referee,
			Team:        s.Team,
			Cluster:     labels[i],
			PC1:         coords.At(i, 0),
			PC2:         coords.At(i, 1),
			Fouls:       s.Fouls,
			YellowCards: s.YellowCards,
			RedCards:    s.RedCards,
		}
	}
	return out, nil
}

// Labels returns the distinct cluster labels in an assignment set, noise
// last, real clusters ascending.
func Labels(assignments []model.ClusterAssignment) []int {
	seen := make(map[int]struct{})
	for _, a := range assignments {
		seen[a.Cluster] = struct{}{}
	}
	labels := make([]int, 0, len(seen))
	for l := range seen {
		if l != model.NoiseCluster {
			labels = append(labels, l)
		}
	}
	sort.Ints(labels)
	if _, ok := seen[model.NoiseCluster]; ok {
		labels = append(labels, model.NoiseCluster)
	}
	return labels
}

func featureMatrix(stats []model.ScaledStat) *mat.Dense {
	flat := make([]float64, 0, len(stats)*3)
	for _, s := range stats {
		flat = append(flat, s.Fouls, s.YellowCards, s.RedCards)
	}
	return mat.NewDense(len(stats), 3, flat)
}

// dbscanLabels is the standard DBSCAN region-growing algorithm with the
// Euclidean metric. The eps-neighborhood includes the point itself, so
// minSamples counts it too. Cluster ids start at 0 in row-scan order,
// which makes the labeling deterministic for a fixed row order.
func dbscanLabels(features *mat.Dense, eps float64, minSamples int) []int {
	n, _ := features.Dims()
	labels := make([]int, n)
	for i := range labels {
		labels[i] = unclassified
	}

	next := 0
	for i := 0; i < n; i++ {
		if labels[i] != unclassified {
			continue
		}
		seed := regionQuery(features, i, eps)
		if len(seed) < minSamples {
			labels[i] = model.NoiseCluster
			continue
		}

		labels[i] = next
		queue := seed
		for k := 0; k < len(queue); k++ {
			j := queue[k]
			if labels[j] == model.NoiseCluster {
				labels[j] = next // border point, claimed but not expanded
			}
			if labels[j] != unclassified {
				continue
			}
			labels[j] = next
			if reach := regionQuery(features, j, eps); len(reach) >= minSamples {
				queue = append(queue, reach...)
			}
		}
		next++
	}
	return labels
}

// regionQuery returns the indexes of every row within eps of row i,
// including i itself.
func regionQuery(features *mat.Dense, i int, eps float64) []int {
	n, _ := features.Dims()
	row := features.RawRowView(i)
	var out []int
	for j := 0; j < n; j++ {
		if floats.Distance(row, features.RawRowView(j), 2) <= eps {
			out = append(out, j)
		}
	}
	return out
}

// project2D reduces the feature matrix to its first two principal
// components. The upstream scaler already centers every column, so the
// projection is a plain multiplication by the component vectors.
func project2D(features *mat.Dense) (*mat.Dense, error) {
	_, cols := features.Dims()

	var pc stat.PC
	if ok := pc.PrincipalComponents(features, nil); !ok {
		return nil, fmt.Errorf("principal component decomposition failed")
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	if _, vc := vecs.Dims(); vc < 2 {
		return nil, fmt.Errorf("projection produced %d components, want 2", vc)
	}

	var coords mat.Dense
	coords.Mul(features, vecs.Slice(0, cols, 0, 2))
	return &coords, nil
}
