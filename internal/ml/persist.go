package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact mode tags, embedded in model version strings.
const (
	ModePlain      = "plain-logreg"
	ModeCalibrated = "calibrated"
)

type artifact struct {
	Mode    string          `json:"mode"`
	Version string          `json:"version"`
	Model   json.RawMessage `json:"model"`
}

// Save persists a trained classifier wholesale, replacing any previous
// artifact. The write goes through a temp file so a crash never leaves a
// truncated artifact behind.
func Save(path string, c Classifier, version string) error {
	var mode string
	switch c.(type) {
	case *CalibratedClassifier:
		mode = ModeCalibrated
	case *Pipeline:
		mode = ModePlain
	default:
		return fmt.Errorf("ml: unsupported classifier type %T", c)
	}

	model, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("ml: marshal model: %w", err)
	}
	payload, err := json.Marshal(artifact{Mode: mode, Version: version, Model: model})
	if err != nil {
		return fmt.Errorf("ml: marshal artifact: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads a persisted artifact. It returns the classifier and the version
// it was saved with.
func Load(path string) (Classifier, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, "", fmt.Errorf("ml: decode artifact: %w", err)
	}

	switch a.Mode {
	case ModeCalibrated:
		var c CalibratedClassifier
		if err := json.Unmarshal(a.Model, &c); err != nil {
			return nil, "", fmt.Errorf("ml: decode calibrated model: %w", err)
		}
		return &c, a.Version, nil
	case ModePlain:
		var p Pipeline
		if err := json.Unmarshal(a.Model, &p); err != nil {
			return nil, "", fmt.Errorf("ml: decode pipeline: %w", err)
		}
		return &p, a.Version, nil
	default:
		return nil, "", fmt.Errorf("ml: unknown artifact mode %q", a.Mode)
	}
}
