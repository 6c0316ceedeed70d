package feature

import (
	"encoding/json"
	"strings"
)

// Outcome class indices.
const (
	ClassHome = 0
	ClassDraw = 1
	ClassAway = 2
)

// Rejection reasons accumulated into the per-request histogram.
const (
	ReasonNotDict          = "not_dict"
	ReasonNoFeatures       = "no_features"
	ReasonInvalidLabel     = "invalid_label"
	ReasonLabelOutOfRange  = "label_out_of_range"
	ReasonInvalidLabelType = "invalid_label_type"
)

// ClassKeys maps class index -> outcome key.
var ClassKeys = [...]string{"home", "draw", "away"}

// Label synonym tables. The quoted digits follow 1/X/2 betting notation, not
// the class indices. Korean tokens come from the original extension UI.
var labelSynonyms = map[string]int{
	"home": ClassHome, "h": ClassHome, "home win": ClassHome, "홈 승": ClassHome, "1": ClassHome,
	"draw": ClassDraw, "d": ClassDraw, "무승부": ClassDraw, "x": ClassDraw, "0": ClassDraw,
	"away": ClassAway, "a": ClassAway, "away win": ClassAway, "원정 승": ClassAway, "2": ClassAway,
}

// ParseLabel converts a heterogeneous label value into a class index. On
// failure it returns -1 and the rejection reason.
func ParseLabel(v any) (int, string) {
	switch x := v.(type) {
	case string:
		if y, ok := labelSynonyms[strings.ToLower(strings.TrimSpace(x))]; ok {
			return y, ""
		}
		return -1, ReasonInvalidLabel
	case float64:
		return intLabel(int(x))
	case int:
		return intLabel(x)
	case int64:
		return intLabel(int(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return intLabel(int(f))
		}
		return -1, ReasonInvalidLabelType
	case bool:
		// int(true) == 1 for legacy clients that sent booleans
		if x {
			return ClassDraw, ""
		}
		return ClassHome, ""
	default:
		return -1, ReasonInvalidLabelType
	}
}

func intLabel(y int) (int, string) {
	if y < ClassHome || y > ClassAway {
		return -1, ReasonLabelOutOfRange
	}
	return y, ""
}
