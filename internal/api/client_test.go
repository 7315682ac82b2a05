package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kyotei-ai/kyotei-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Analyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v5/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Venue      string `json:"venue"`
			RaceNumber int    `json:"race_number"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "大村", req.Venue)
		assert.Equal(t, 12, req.RaceNumber)

		_ = json.NewEncoder(w).Encode(model.AnalysisResponse{
			Status:     model.StatusSuccess,
			Venue:      req.Venue,
			RaceNumber: req.RaceNumber,
			Category:   model.CategoryStable,
			Stability:  80,
		})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	resp, err := client.Analyze(context.Background(), "大村", 12)

	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, resp.Status)
	assert.Equal(t, model.CategoryStable, resp.Category)
	assert.InDelta(t, 80, resp.Stability, 0.001)
}

func TestClient_AnalyzeBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"error","error":"データ収集に失敗しました","detail":"scrape timeout"}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	resp, err := client.Analyze(context.Background(), "大村", 1)

	require.Error(t, err)
	assert.Nil(t, resp)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "データ収集に失敗しました")
	assert.Contains(t, apiErr.Message, "scrape timeout")
	assert.False(t, apiErr.Permanent())
}

func TestClient_AnalyzeTransportFailure(t *testing.T) {
	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.Analyze(context.Background(), "大村", 1)

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not APIErrors")
}

func TestClient_AnalyzeRespectsContext(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	client := New(Config{BaseURL: server.URL})

	errCh := make(chan error, 1)
	go func() {
		_, err := client.Analyze(ctx, "大村", 1)
		errCh <- err
	}()

	<-started
	cancel()

	select {
	case err := <-errCh:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("analyze did not return after context cancellation")
	}
}

func TestClient_Stats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v5/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"total_predictions": 42,
			"skipped_races": 7,
			"successful_predictions": 30,
			"category_distribution": {"stable": 18, "mixed": 9, "upset": 3}
		}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	stats, err := client.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 42, stats.TotalPredictions)
	assert.Equal(t, 7, stats.SkippedRaces)
	assert.Equal(t, 18, stats.CategoryDistribution["stable"])
}

func TestClient_RegisterResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v5/result", r.URL.Path)

		var report model.ResultReport
		require.NoError(t, json.NewDecoder(r.Body).Decode(&report))
		assert.Equal(t, "pred_20260824_101530", report.PredictionID)
		assert.Equal(t, "1-2-3", report.ActualResult)
		assert.InDelta(t, 45.2, report.ActualOdds, 0.001)

		_ = json.NewEncoder(w).Encode(model.ResultAck{Success: true, PredictionID: report.PredictionID})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	ack, err := client.RegisterResult(context.Background(), model.ResultReport{
		PredictionID: "pred_20260824_101530",
		ActualResult: "1-2-3",
		ActualOdds:   45.2,
	})

	require.NoError(t, err)
	assert.True(t, ack.Success)
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"ok","service":"競艇予想AI v5.0","version":"5.0.0","models_loaded":true}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	info, err := client.Ping(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ok", info.Status)
	assert.Equal(t, "5.0.0", info.Version)
	assert.True(t, info.ModelsLoaded)
}

func TestAPIError_Permanent(t *testing.T) {
	tests := []struct {
		name string
		code int
		want bool
	}{
		{"bad request", http.StatusBadRequest, true},
		{"not found", http.StatusNotFound, true},
		{"server error", http.StatusInternalServerError, false},
		{"unavailable", http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, (&APIError{StatusCode: tt.code}).Permanent())
		})
	}
}
