package feature

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Keys is the canonical feature order. The model's coefficient layout depends
// on it, so entries must never be reordered, only appended.
var Keys = [...]string{
	"eloDiff", "ppgDiff", "homeOsl", "drawOsl", "awayOsl",
	"poissonHomeProb", "avgDrawPercent", "upsetScoreDiff",
	"xgHomeFor", "xgAwayFor", "xgHomeAgainst", "xgAwayAgainst",
}

// Dim is the feature vector length.
const Dim = len(Keys)

// Vector converts a named-feature mapping into the fixed-order vector.
// Missing, non-numeric, and NaN values become 0.
func Vector(features map[string]any) []float64 {
	vec := make([]float64, Dim)
	for i, k := range Keys {
		vec[i] = Num(features[k], 0)
	}
	return vec
}

// Num coerces an arbitrary JSON-decoded value to float64, returning def when
// coercion is impossible. Clients serialize numbers inconsistently (native,
// quoted, integer), so all of those are accepted.
func Num(v any, def float64) float64 {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return def
		}
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil && !math.IsNaN(f) {
			return f
		}
	case bool:
		if x {
			return 1
		}
		return 0
	}
	return def
}
