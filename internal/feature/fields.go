// Package feature normalizes heterogeneous client payloads into the fixed
// feature vector and class labels the model trains on. Extension clients have
// shipped several payload shapes over time; the mapping tables below reconcile
// them without forcing a contract change.
package feature

import "encoding/json"

// FieldMapping lists, per canonical field, the client key names that may carry
// it, in priority order. Kept as plain data so new client variants only need a
// table entry.
var FieldMapping = map[string][]string{
	"label": {
		"finalResult",
		"finalPrediction",
		"label",
		"finalPredClean",
		"prediction",
		"result",
		"outcome",
	},
	"features": {
		"features",
		"feature_dict",
		"feature",
		"featureDict",
		"data",
	},
	"warningRules": {
		"warningRules",
		"warning_rules",
		"patterns",
		"pattern_rules",
		"missPatterns",
	},
	"successRules": {
		"successRules",
		"success_rules",
		"success",
		"successPatterns",
	},
}

// Normalize returns the value of the first candidate key present in data with
// a non-null value. The second return reports whether anything was found.
func Normalize(data map[string]any, candidates []string) (any, bool) {
	for _, key := range candidates {
		if v, ok := data[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// NormalizeRaw is Normalize over undecoded JSON values, skipping JSON null.
func NormalizeRaw(data map[string]json.RawMessage, candidates []string) (json.RawMessage, bool) {
	for _, key := range candidates {
		if v, ok := data[key]; ok && len(v) > 0 && string(v) != "null" {
			return v, true
		}
	}
	return nil, false
}
