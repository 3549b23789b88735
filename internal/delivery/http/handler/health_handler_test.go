package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"jobradar/internal/repository"

	"github.com/gofiber/fiber/v3"
)

type fakeRuns struct {
	count int
	err   error
	since time.Time
}

func (f *fakeRuns) Save(_ context.Context, _ repository.MatchRun) error { return nil }

func (f *fakeRuns) CountSince(_ context.Context, since time.Time) (int, error) {
	f.since = since
	return f.count, f.err
}

func getHealth(t *testing.T, runs repository.MatchRunRepository) map[string]any {
	t.Helper()
	app := fiber.New()
	NewHealthHandler(runs).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var sem semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sem); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	var data map[string]any
	if err := json.Unmarshal(sem.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	return data
}

func TestHealthWithRunStats(t *testing.T) {
	runs := &fakeRuns{count: 7}
	data := getHealth(t, runs)

	if data["status"] != "up" {
		t.Errorf("status = %v", data["status"])
	}
	if got, ok := data["match_runs_24h"].(float64); !ok || int(got) != 7 {
		t.Errorf("match_runs_24h = %v, want 7", data["match_runs_24h"])
	}
	if window := time.Since(runs.since); window < 23*time.Hour || window > 25*time.Hour {
		t.Errorf("count window = %v back, want about 24h", window)
	}
}

func TestHealthWithoutDatabase(t *testing.T) {
	data := getHealth(t, nil)

	if data["status"] != "up" {
		t.Errorf("status = %v", data["status"])
	}
	if _, ok := data["match_runs_24h"]; ok {
		t.Error("run stats present without a repository")
	}
}

func TestHealthToleratesCountError(t *testing.T) {
	data := getHealth(t, &fakeRuns{err: errors.New("db down")})

	if data["status"] != "up" {
		t.Errorf("status = %v, health must not depend on the stats query", data["status"])
	}
	if _, ok := data["match_runs_24h"]; ok {
		t.Error("failed count leaked into the payload")
	}
}
