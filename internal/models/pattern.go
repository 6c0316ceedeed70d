package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// PatternTable maps pattern name -> raw statistics object. Values are kept as
// raw JSON so a client round-trips exactly what it uploaded; typed access goes
// through Stats.
type PatternTable map[string]json.RawMessage

// Stats decodes the named pattern's statistics leniently. Missing or
// unparseable fields are zero, never an error.
func (t PatternTable) Stats(name string) PatternStats {
	var ps PatternStats
	if raw, ok := t[name]; ok {
		_ = json.Unmarshal(raw, &ps)
	}
	return ps
}

// PatternStats is the statistics blob attached to a single pattern in the
// miss/success tables.
type PatternStats struct {
	Total       int     `json:"total"`
	MissRate    float64 `json:"missRate"`
	SuccessRate float64 `json:"successRate"`
}

// UnmarshalJSON accepts both native and string-encoded numbers. Extension
// clients serialize through spreadsheet exports that quote every value, so
// "120" and 120 must both decode.
func (ps *PatternStats) UnmarshalJSON(data []byte) error {
	type alias PatternStats
	a := (*alias)(ps)
	if err := json.Unmarshal(data, a); err == nil {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	ps.Total = int(flexNum(raw["total"]))
	ps.MissRate = flexNum(raw["missRate"])
	ps.SuccessRate = flexNum(raw["successRate"])
	return nil
}

// flexNum parses a raw JSON value as a number, accepting quoted numerics.
func flexNum(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// Pattern is one entry of the pattern-sync API's flat list. Status partitions
// the set into "miss" and "success" patterns.
type Pattern struct {
	Name        string  `json:"name" validate:"required"`
	Status      string  `json:"status" validate:"required,oneof=miss success"`
	MissRate    float64 `json:"miss_rate,omitempty"`
	SuccessRate float64 `json:"success_rate,omitempty"`
	Count       int     `json:"count"`
}

// PatternUpload is the body of POST /api/patterns/upload.
type PatternUpload struct {
	Patterns  []Pattern `json:"patterns" validate:"required,dive"`
	Version   string    `json:"version"`
	Timestamp string    `json:"timestamp"`
}

// VersionInfo is the persisted model-version record of the pattern-sync API.
type VersionInfo struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}
