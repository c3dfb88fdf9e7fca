package recommendations

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/advisor/internal/domain"
)

// minClusterProfiles is the smallest population that supports clustering.
const minClusterProfiles = 5

// kmeansSeed fixes the centroid initialization so segment assignments are
// reproducible across runs.
const kmeansSeed = 42

// featureVector encodes a profile as the six clustering features: age,
// income, monthly savings, debt, and the risk/experience ordinals.
func featureVector(p *domain.UserProfile) []float64 {
	return []float64{
		float64(p.Age),
		p.AnnualIncome,
		p.MonthlySavings,
		p.DebtAmount,
		float64(p.RiskTolerance.Score() - 1),
		float64(p.InvestmentExperience.Score() - 1),
	}
}

// GenerateUserSegments clusters profiles into up to three segments with
// k-means over standardized features. Returns nil when there are fewer than
// five profiles, since clusters over tiny populations are noise.
func (e *Engine) GenerateUserSegments(profiles []*domain.UserProfile) []int {
	if len(profiles) < minClusterProfiles {
		return nil
	}

	features := make([][]float64, len(profiles))
	for i, p := range profiles {
		features[i] = featureVector(p)
	}
	standardize(features)

	numClusters := len(profiles) / 2
	if numClusters > 3 {
		numClusters = 3
	}

	return kmeans(features, numClusters)
}

// FindSimilarUsers returns the profiles whose feature vectors have cosine
// similarity above 0.8 with the target. The target itself is excluded when
// it appears in the pool.
func (e *Engine) FindSimilarUsers(target *domain.UserProfile, all []*domain.UserProfile) []*domain.UserProfile {
	targetFeatures := featureVector(target)

	var similar []*domain.UserProfile
	for _, p := range all {
		if target.ProfileID != "" && p.ProfileID == target.ProfileID {
			continue
		}
		if cosineSimilarity(targetFeatures, featureVector(p)) > 0.8 {
			similar = append(similar, p)
		}
	}
	return similar
}

// Collaborative recommends products via similar users: the target profile
// is rescored under the risk tolerance most common among its neighbors.
// Falls back to plain personalized recommendations when the population is
// too small for meaningful collaboration.
func (e *Engine) Collaborative(target *domain.UserProfile, all []*domain.UserProfile) (*InvestmentRecommendations, error) {
	if len(all) < minClusterProfiles {
		return e.Investment(target)
	}

	similar := e.FindSimilarUsers(target, all)
	if len(similar) == 0 {
		return e.Investment(target)
	}

	counts := make(map[domain.RiskTolerance]int)
	for _, p := range similar {
		counts[p.RiskTolerance]++
	}
	consensus := target.RiskTolerance
	best := 0
	for _, tolerance := range []domain.RiskTolerance{domain.RiskConservative, domain.RiskModerate, domain.RiskAggressive} {
		if counts[tolerance] > best {
			best = counts[tolerance]
			consensus = tolerance
		}
	}

	composite := *target
	composite.RiskTolerance = consensus
	return e.Investment(&composite)
}

// standardize scales each feature column to zero mean and unit variance in
// place. Constant columns are left centered to avoid division by zero.
func standardize(features [][]float64) {
	if len(features) == 0 {
		return
	}
	numFeatures := len(features[0])
	column := make([]float64, len(features))

	for j := 0; j < numFeatures; j++ {
		for i := range features {
			column[i] = features[i][j]
		}
		mean, std := stat.MeanStdDev(column, nil)
		for i := range features {
			features[i][j] -= mean
			if std > 0 {
				features[i][j] /= std
			}
		}
	}
}

// kmeans runs Lloyd's algorithm with deterministic centroid initialization.
func kmeans(features [][]float64, numClusters int) []int {
	if numClusters < 1 {
		numClusters = 1
	}

	rng := rand.New(rand.NewSource(kmeansSeed))
	centroids := make([][]float64, numClusters)
	for i, idx := range rng.Perm(len(features))[:numClusters] {
		centroids[i] = append([]float64(nil), features[idx]...)
	}

	assignments := make([]int, len(features))
	for iter := 0; iter < 100; iter++ {
		changed := false
		for i, point := range features {
			nearest := 0
			nearestDist := math.Inf(1)
			for c, centroid := range centroids {
				if d := floats.Distance(point, centroid, 2); d < nearestDist {
					nearestDist = d
					nearest = c
				}
			}
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		for c := range centroids {
			count := 0
			sum := make([]float64, len(features[0]))
			for i, point := range features {
				if assignments[i] == c {
					floats.Add(sum, point)
					count++
				}
			}
			if count > 0 {
				floats.Scale(1/float64(count), sum)
				centroids[c] = sum
			}
		}
	}

	return assignments
}

// cosineSimilarity measures the angle between two feature vectors. Zero
// vectors have no direction and score 0.
func cosineSimilarity(a, b []float64) float64 {
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return floats.Dot(a, b) / (normA * normB)
}
