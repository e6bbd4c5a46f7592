package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/angelmondragon/storefront/pkg/config"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	rec := doRequest(t, HealthLive(cfg), http.MethodGet, "/health/live", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec.Header().Get("X-Storefront-Env") != "test" {
		t.Fatalf("missing env header")
	}
}

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	rec := doRequest(t, HealthReady(cfg, nil, ReadyCheck{Name: "db", Pinger: ok}), http.MethodGet, "/health/ready", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	rec = doRequest(t, HealthReady(cfg, nil, ReadyCheck{Name: "db", Pinger: ok}, ReadyCheck{Name: "redis", Pinger: down}), http.MethodGet, "/health/ready", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", rec.Code)
	}
	apiErr := decodeError(t, rec)
	details, _ := apiErr.Details.(map[string]any)
	if details["redis"] != "connection refused" {
		t.Fatalf("unexpected details %v", apiErr.Details)
	}
}
