package restserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/glazecalc/glazecalc/pkg/config"
	"github.com/glazecalc/glazecalc/pkg/estimate"
)

const testConfig = `server:
  listen_addr: 127.0.0.1
  port: 8090
defaults:
  preset: Cero2
presets:
  - name: CustomLine
    glass_u1: 0.20
    total_u1: 0.38
    glass_u2: 0.28
    total_u2: 0.44
    unit: BTU
`

func newTestController(t *testing.T) *Controller {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	var wg sync.WaitGroup
	ctrl, err := NewController(context.Background(), &wg, config.NewYAMLProvider(path), zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return ctrl
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshaling payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetHealth(t *testing.T) {
	ctrl := newTestController(t)
	router := ctrl.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestGetPresets(t *testing.T) {
	ctrl := newTestController(t)
	router := ctrl.setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/presets", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var presets []PresetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &presets); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	// Two built-ins plus the configured one.
	if len(presets) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(presets))
	}
	names := make(map[string]bool)
	for _, p := range presets {
		names[p.Name] = p.BuiltIn
	}
	if !names["Cero2"] || !names["Cero3"] {
		t.Errorf("built-in presets missing or misflagged: %v", names)
	}
	if builtIn, ok := names["CustomLine"]; !ok || builtIn {
		t.Errorf("configured preset missing or flagged built-in: %v", names)
	}
}

func TestPostEstimate(t *testing.T) {
	ctrl := newTestController(t)
	router := ctrl.setupRouter()

	rec := postJSON(t, router, "/api/estimate", EstimateRequest{
		Width:    2000,
		Height:   2000,
		SizeUnit: "mm",
		GlassU:   0.25,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result estimate.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if result.UBTU <= 0 {
		t.Errorf("expected positive U-value, got %v", result.UBTU)
	}
	if result.Diagnostics.Panels != 2 {
		t.Errorf("expected default panel count 2, got %d", result.Diagnostics.Panels)
	}
}

func TestPostEstimateValidationErrors(t *testing.T) {
	ctrl := newTestController(t)
	router := ctrl.setupRouter()

	tests := []struct {
		name         string
		payload      EstimateRequest
		expectedCode string
	}{
		{
			name:         "bad length unit",
			payload:      EstimateRequest{Width: 12, Height: 9, SizeUnit: "cubits", GlassU: 0.3},
			expectedCode: "invalid_unit",
		},
		{
			name:         "negative width",
			payload:      EstimateRequest{Width: -12, Height: 9, SizeUnit: "ft", GlassU: 0.3},
			expectedCode: "non_positive_dimension",
		},
		{
			name:         "unknown preset",
			payload:      EstimateRequest{Width: 12, Height: 9, SizeUnit: "ft", GlassU: 0.3, Preset: "Cero9"},
			expectedCode: "unknown_preset",
		},
		{
			name: "degenerate explicit calibration",
			payload: EstimateRequest{
				Width: 12, Height: 9, SizeUnit: "ft", GlassU: 0.3,
				RefGlassU1: 0.25, RefTotalU1: 0.41, RefGlassU2: 0.25, RefTotalU2: 0.48,
			},
			expectedCode: "degenerate_calibration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, router, "/api/estimate", tt.payload)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
			}
			var payload struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if payload.Code != tt.expectedCode {
				t.Errorf("expected code %q, got %q", tt.expectedCode, payload.Code)
			}
		})
	}
}

func TestPostEstimateBadJSON(t *testing.T) {
	ctrl := newTestController(t)
	router := ctrl.setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/estimate", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPostSweep(t *testing.T) {
	ctrl := newTestController(t)
	router := ctrl.setupRouter()

	rec := postJSON(t, router, "/api/sweep", SweepAPIRequest{
		EstimateRequest: EstimateRequest{Height: 9, SizeUnit: "ft", GlassU: 0.3},
		Axis:            "width",
		From:            8,
		To:              16,
		Step:            4,
		Panels:          []int{2, 4},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var table estimate.SweepTable
	if err := json.Unmarshal(rec.Body.Bytes(), &table); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(table.Values) != 3 {
		t.Errorf("expected 3 sweep points, got %d", len(table.Values))
	}
}

func TestPostSweepBadAxis(t *testing.T) {
	ctrl := newTestController(t)
	router := ctrl.setupRouter()

	rec := postJSON(t, router, "/api/sweep", SweepAPIRequest{
		EstimateRequest: EstimateRequest{Height: 9, SizeUnit: "ft", GlassU: 0.3},
		Axis:            "diagonal",
		From:            8,
		To:              16,
		Step:            4,
		Panels:          []int{2},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPostDatasheet(t *testing.T) {
	ctrl := newTestController(t)
	router := ctrl.setupRouter()

	rec := postJSON(t, router, "/api/datasheet", DatasheetRequest{
		EstimateRequest: EstimateRequest{Width: 12, Height: 9, SizeUnit: "ft", GlassU: 0.3},
		Project:         "Test Project",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected PDF content type, got %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body is not a PDF")
	}
}

func TestMsgpackFormat(t *testing.T) {
	ctrl := newTestController(t)
	router := ctrl.setupRouter()

	body, _ := json.Marshal(EstimateRequest{Width: 2000, Height: 2000, SizeUnit: "mm", GlassU: 0.25})
	req := httptest.NewRequest(http.MethodPost, "/api/estimate?format=msgpack", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/msgpack" {
		t.Errorf("expected msgpack content type, got %q", ct)
	}
}
