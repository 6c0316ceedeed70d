package logic

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/footycentral/predict-api/internal/models"
	"github.com/footycentral/predict-api/internal/store"
)

func modelsPatternUpload() models.PatternUpload {
	return models.PatternUpload{
		Patterns: []models.Pattern{
			{Name: "First", Status: "miss", MissRate: 40, Count: 10},
			{Name: "Second", Status: "success", SuccessRate: 75, Count: 20},
		},
		Version: "2.0.0",
	}
}

func newPatternService(t *testing.T) PatternService {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return NewPatternService(context.Background(), st, zap.NewNop())
}

func rawPayload(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return payload
}

func TestSyncMiss_ReplacesTable(t *testing.T) {
	svc := newPatternService(t)
	ctx := context.Background()

	resp, err := svc.SyncMiss(ctx, rawPayload(t, `{
		"warningRules": {
			"late_goal_collapse": {"total": 40, "missRate": 0.55},
			"derby_upset": {"total": "12", "missRate": "0.7"}
		}
	}`))
	if err != nil {
		t.Fatalf("SyncMiss: %v", err)
	}
	if !resp.OK || resp.StoredPatterns != 2 {
		t.Errorf("resp = %+v", resp)
	}

	miss, _ := svc.Tables()
	if len(miss) != 2 {
		t.Fatalf("table size = %d", len(miss))
	}
	// String-encoded numbers decode leniently
	if ps := miss.Stats("derby_upset"); ps.Total != 12 || ps.MissRate != 0.7 {
		t.Errorf("lenient stats decode failed: %+v", ps)
	}
}

func TestSyncMiss_AlternateFieldNames(t *testing.T) {
	svc := newPatternService(t)
	resp, err := svc.SyncMiss(context.Background(), rawPayload(t, `{
		"warning_rules": {"p1": {"total": 5, "missRate": 0.2}}
	}`))
	if err != nil {
		t.Fatalf("SyncMiss with snake_case field: %v", err)
	}
	if resp.StoredPatterns != 1 {
		t.Errorf("stored = %d", resp.StoredPatterns)
	}
}

func TestSyncMiss_EmptyObjectKeepsPreviousState(t *testing.T) {
	svc := newPatternService(t)
	ctx := context.Background()

	if _, err := svc.SyncMiss(ctx, rawPayload(t, `{"warningRules": {"p1": {"total": 3}}}`)); err != nil {
		t.Fatalf("seed sync: %v", err)
	}

	resp, err := svc.SyncMiss(ctx, rawPayload(t, `{"warningRules": {}}`))
	if err != nil {
		t.Fatalf("empty sync: %v", err)
	}
	if !resp.OK || resp.StoredPatterns != 0 || resp.Warning == "" {
		t.Errorf("empty sync resp = %+v", resp)
	}

	miss, _ := svc.Tables()
	if len(miss) != 1 {
		t.Errorf("empty object overwrote previous table: %d entries", len(miss))
	}
}

func TestSyncMiss_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"MissingField", `{"otherField": {}}`},
		{"NullField", `{"warningRules": null}`},
		{"NonObject", `{"warningRules": [1, 2, 3]}`},
		{"ScalarValue", `{"warningRules": "lots"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newPatternService(t)
			_, err := svc.SyncMiss(context.Background(), rawPayload(t, tt.body))
			var badReq *BadRequest
			if !errors.As(err, &badReq) {
				t.Errorf("expected BadRequest, got %v", err)
			}
		})
	}
}

func TestInsights_TopFiveByRate(t *testing.T) {
	svc := newPatternService(t)
	ctx := context.Background()

	if _, err := svc.SyncMiss(ctx, rawPayload(t, `{"warningRules": {
		"a": {"total": 10, "missRate": 0.10},
		"b": {"total": 20, "missRate": 0.90},
		"c": {"total": 30, "missRate": 0.50},
		"d": {"total": 40, "missRate": 0.70},
		"e": {"total": 50, "missRate": 0.30},
		"f": {"total": 60, "missRate": 0.60}
	}}`)); err != nil {
		t.Fatalf("SyncMiss: %v", err)
	}
	if _, err := svc.SyncSuccess(ctx, rawPayload(t, `{"successRules": {
		"s1": {"total": 5, "successRate": 0.8}
	}}`)); err != nil {
		t.Fatalf("SyncSuccess: %v", err)
	}

	insights := svc.Insights("test-version")
	if insights.ModelVersion != "test-version" {
		t.Errorf("version = %q", insights.ModelVersion)
	}
	if insights.TotalWarningPatterns != 6 || insights.TotalSuccessPatterns != 1 {
		t.Errorf("totals: %+v", insights)
	}
	if len(insights.TopMissPatterns) != 5 {
		t.Fatalf("top miss len = %d, want 5", len(insights.TopMissPatterns))
	}
	if insights.TopMissPatterns[0].Name != "b" || insights.TopMissPatterns[0].MissRate != "90.0%" {
		t.Errorf("top entry = %+v", insights.TopMissPatterns[0])
	}
	// "a" (lowest rate) must be the one cut
	for _, e := range insights.TopMissPatterns {
		if e.Name == "a" {
			t.Error("lowest-rate pattern should not appear in top 5")
		}
	}
	if insights.TopSuccessPatterns[0].SuccessRate != "80.0%" {
		t.Errorf("success rate formatting: %+v", insights.TopSuccessPatterns[0])
	}
}

func TestSyncService_UploadDownloadReset(t *testing.T) {
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	svc := NewSyncService(st, zap.NewNop())
	ctx := context.Background()

	// Fresh store serves seed data
	patterns, version, err := svc.Download(ctx)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if len(patterns) != len(store.SeedPatterns()) || version.Version != store.SeedVersion {
		t.Errorf("fresh download: %d patterns, version %q", len(patterns), version.Version)
	}

	count, err := svc.Upload(ctx, modelsPatternUpload())
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if count != 2 {
		t.Errorf("upload count = %d", count)
	}

	all, err := svc.All(ctx)
	if err != nil || len(all) != 2 {
		t.Fatalf("All after upload: %v, %d", err, len(all))
	}

	p, err := svc.ByIndex(ctx, 1)
	if err != nil || p.Name != "Second" {
		t.Errorf("ByIndex(1) = %+v, %v", p, err)
	}
	if _, err := svc.ByIndex(ctx, 9); err == nil {
		t.Error("ByIndex out of range should fail")
	}

	if err := svc.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	all, _ = svc.All(ctx)
	if len(all) != len(store.SeedPatterns()) {
		t.Errorf("reset did not restore seed data: %d", len(all))
	}
}
