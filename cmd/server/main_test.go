package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alecthomas/kingpin/v2"

	"github.com/zzyhdu/tk-tools/internal/application"
)

func TestBuildRootHandler(t *testing.T) {
	apiInvoked := false
	apiHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Fatalf("unexpected path passed to API handler: %s", r.URL.Path)
		}
		apiInvoked = true
		w.WriteHeader(http.StatusNoContent)
	})

	handler := application.BuildRootHandler(apiHandler)

	t.Run("describes the service", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		var body map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode index: %v", err)
		}
		if body["health"] != "/api/health" {
			t.Fatalf("unexpected index body %v", body)
		}
	})

	t.Run("returns not found for unknown paths", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("forwards api traffic", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Code)
		}
		if !apiInvoked {
			t.Fatalf("expected API handler to be invoked")
		}
	})
}

func TestParseFlags(t *testing.T) {
	t.Run("defaults leave overrides unset", func(t *testing.T) {
		overrides := parseFlags(kingpin.New("test", ""), nil)
		if overrides.Port != nil || overrides.RateTablesFile != nil || overrides.RateLimitRPS != nil ||
			overrides.RateLimitBurst != nil || overrides.LogLevel != nil {
			t.Fatalf("expected nil overrides, got %+v", overrides)
		}
	})

	t.Run("explicit flags", func(t *testing.T) {
		overrides := parseFlags(kingpin.New("test", ""), []string{
			"--config", "configs/config.yaml",
			"--env-file", ".env",
			"--port", "9000",
			"--rate-tables", "configs/rates.yaml",
			"--rate-limit-rps", "0",
			"--rate-limit-burst", "3",
			"--log-level", "debug",
		})
		if overrides.ConfigFile != "configs/config.yaml" || overrides.EnvFile != ".env" {
			t.Fatalf("unexpected file overrides %+v", overrides)
		}
		if *overrides.Port != "9000" || *overrides.RateTablesFile != "configs/rates.yaml" {
			t.Fatalf("unexpected string overrides %+v", overrides)
		}
		if *overrides.RateLimitRPS != 0 || *overrides.RateLimitBurst != 3 || *overrides.LogLevel != "debug" {
			t.Fatalf("unexpected numeric overrides %+v", overrides)
		}
	})
}
