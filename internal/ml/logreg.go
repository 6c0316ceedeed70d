package ml

import (
	"fmt"
	"math"
	"sort"
)

// LogisticRegression is a multinomial (softmax) logistic regression fitted by
// full-batch gradient descent with class-balanced sample weights and L2
// regularization. Training data is expected to be pre-scaled.
type LogisticRegression struct {
	ClassList []int       `json:"classes"`
	Weights   [][]float64 `json:"weights"` // [class][feature]
	Bias      []float64   `json:"bias"`

	LearningRate float64 `json:"-"`
	L2           float64 `json:"-"`
	MaxIter      int     `json:"-"`
	Tol          float64 `json:"-"`
}

func (m *LogisticRegression) defaults() {
	if m.LearningRate == 0 {
		m.LearningRate = 0.1
	}
	if m.L2 == 0 {
		m.L2 = 1e-3
	}
	if m.MaxIter == 0 {
		m.MaxIter = 2000
	}
	if m.Tol == 0 {
		m.Tol = 1e-7
	}
}

// Fit trains on (X, y). Requires at least two distinct classes.
func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	m.defaults()
	n := len(X)
	if n == 0 || n != len(y) {
		return fmt.Errorf("logreg: bad training set (%d rows, %d labels)", n, len(y))
	}
	dim := len(X[0])

	counts := make(map[int]int)
	for _, c := range y {
		counts[c]++
	}
	if len(counts) < 2 {
		return fmt.Errorf("logreg: need at least 2 distinct classes, got %d", len(counts))
	}

	m.ClassList = make([]int, 0, len(counts))
	for c := range counts {
		m.ClassList = append(m.ClassList, c)
	}
	sort.Ints(m.ClassList)

	classIdx := make(map[int]int, len(m.ClassList))
	for i, c := range m.ClassList {
		classIdx[c] = i
	}
	k := len(m.ClassList)

	// Balanced sample weights: n / (k * count_c)
	sampleWeight := make([]float64, n)
	for i, c := range y {
		sampleWeight[i] = float64(n) / (float64(k) * float64(counts[c]))
	}

	m.Weights = make([][]float64, k)
	for c := range m.Weights {
		m.Weights[c] = make([]float64, dim)
	}
	m.Bias = make([]float64, k)

	probs := make([]float64, k)
	gradW := make([][]float64, k)
	for c := range gradW {
		gradW[c] = make([]float64, dim)
	}
	gradB := make([]float64, k)

	prevLoss := math.Inf(1)
	for iter := 0; iter < m.MaxIter; iter++ {
		for c := range gradW {
			for j := range gradW[c] {
				gradW[c][j] = 0
			}
			gradB[c] = 0
		}

		loss := 0.0
		for i, row := range X {
			m.softmax(row, probs)
			target := classIdx[y[i]]
			loss -= sampleWeight[i] * math.Log(math.Max(probs[target], 1e-12))
			for c := 0; c < k; c++ {
				diff := probs[c]
				if c == target {
					diff -= 1
				}
				diff *= sampleWeight[i]
				for j, v := range row {
					gradW[c][j] += diff * v
				}
				gradB[c] += diff
			}
		}

		inv := 1.0 / float64(n)
		for c := 0; c < k; c++ {
			for j := range m.Weights[c] {
				loss += 0.5 * m.L2 * m.Weights[c][j] * m.Weights[c][j]
				m.Weights[c][j] -= m.LearningRate * (gradW[c][j]*inv + m.L2*m.Weights[c][j])
			}
			m.Bias[c] -= m.LearningRate * gradB[c] * inv
		}
		loss *= inv

		if math.Abs(prevLoss-loss) < m.Tol {
			break
		}
		prevLoss = loss
	}

	return nil
}

// softmax fills probs with the class probabilities for x, in log space for
// numerical stability.
func (m *LogisticRegression) softmax(x []float64, probs []float64) {
	maxScore := math.Inf(-1)
	for c := range m.Weights {
		score := m.Bias[c]
		for j, v := range x {
			score += m.Weights[c][j] * v
		}
		probs[c] = score
		if score > maxScore {
			maxScore = score
		}
	}
	sum := 0.0
	for c := range probs {
		probs[c] = math.Exp(probs[c] - maxScore)
		sum += probs[c]
	}
	for c := range probs {
		probs[c] /= sum
	}
}

func (m *LogisticRegression) Classes() []int { return m.ClassList }

func (m *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("logreg: model not fitted")
	}
	if len(x) != len(m.Weights[0]) {
		return nil, fmt.Errorf("logreg: expected %d features, got %d", len(m.Weights[0]), len(x))
	}
	probs := make([]float64, len(m.ClassList))
	m.softmax(x, probs)
	return probs, nil
}
