package controlplane

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tavianator/pixelforest/pkg/generate"
	"github.com/tavianator/pixelforest/pkg/observability"
)

func testConfig() Config {
	return Config{
		Host:            "127.0.0.1",
		Port:            0,
		RequestTimeout:  time.Second,
		ShutdownTimeout: time.Second,
		Auth:            AuthConfig{Enabled: false},
		RateLimit:       RateLimitConfig{Enabled: false},
	}
}

func TestHealthz(t *testing.T) {
	s := NewServer(testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v, want %q", body["status"], "healthy")
	}
}

func TestProgressDefaultsToZero(t *testing.T) {
	s := NewServer(testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/progress", nil)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	var progress generate.Progress
	if err := json.NewDecoder(rec.Body).Decode(&progress); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if progress.Placed != 0 || progress.Total != 0 {
		t.Errorf("progress = %+v, want zero value", progress)
	}
}

func TestWatchProgressUpdatesSnapshot(t *testing.T) {
	s := NewServer(testConfig(), nil)

	progress := make(chan generate.Progress, 1)
	progress <- generate.Progress{Placed: 42, Total: 100, Elapsed: 5 * time.Second}
	close(progress)

	done := make(chan struct{})
	go func() {
		s.WatchProgress(context.Background(), progress)
		close(done)
	}()
	<-done

	req := httptest.NewRequest(http.MethodGet, "/v1/progress", nil)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	var got generate.Progress
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Placed != 42 || got.Total != 100 {
		t.Errorf("progress = %+v, want Placed=42 Total=100", got)
	}
}

func TestMetricsEndpointServesPrometheusFormat(t *testing.T) {
	metrics := observability.NewMetrics()
	metrics.RecordPlacement()
	s := NewServer(testConfig(), metrics)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected non-empty metrics body")
	}
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	cfg := testConfig()
	cfg.Auth = AuthConfig{Enabled: true, JWTSecret: "test-secret"}
	s := NewServer(cfg, nil)

	handler := s.withMiddleware(s.mux)
	req := httptest.NewRequest(http.MethodGet, "/v1/progress", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareAllowsValidToken(t *testing.T) {
	cfg := testConfig()
	cfg.Auth = AuthConfig{Enabled: true, JWTSecret: "test-secret", PublicPaths: []string{"/healthz"}}
	s := NewServer(cfg, nil)

	token, err := GenerateToken("user-1", []string{"viewer"}, cfg.Auth.JWTSecret)
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	handler := s.withMiddleware(s.mux)
	req := httptest.NewRequest(http.MethodGet, "/v1/progress", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestStartAndStop(t *testing.T) {
	cfg := testConfig()
	cfg.Port = 0
	s := NewServer(cfg, nil)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("Start: %v", err)
	}
}
