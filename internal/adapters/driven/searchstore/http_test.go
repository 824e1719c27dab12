package searchstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brightpath-labs/quizvec-core/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(DefaultConfig(server.URL))
}

func TestClient_Query(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/query" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Filters["topic"] != "fractions" || req.Limit != 5 {
			t.Errorf("unexpected request %+v", req)
		}

		json.NewEncoder(w).Encode(storeResponse{
			Documents: []*domain.Document{{ID: "q1", Topic: "fractions"}},
			Total:     1,
			TookMs:    12,
		})
	})

	result, err := client.Query(context.Background(), map[string]string{"topic": "fractions"}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 1 || len(result.Documents) != 1 || result.Documents[0].ID != "q1" {
		t.Errorf("unexpected result %+v", result)
	}
	if result.Took != 12*time.Millisecond {
		t.Errorf("expected took 12ms, got %v", result.Took)
	}
}

func TestClient_QueryNearest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/knn" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req knnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if len(req.Embedding) != 3 || req.K != 10 {
			t.Errorf("unexpected request %+v", req)
		}

		json.NewEncoder(w).Encode(storeResponse{
			Documents: []*domain.Document{{ID: "near"}},
			Total:     1,
			MaxScore:  0.93,
		})
	})

	result, err := client.QueryNearest(context.Background(), []float32{0.1, 0.2, 0.3}, 10, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MaxScore != 0.93 {
		t.Errorf("expected max score 0.93, got %v", result.MaxScore)
	}
}

func TestClient_GetByIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents/batch-get" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req batchGetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if len(req.IDs) != 2 {
			t.Errorf("unexpected ids %v", req.IDs)
		}

		json.NewEncoder(w).Encode(storeResponse{
			Documents: []*domain.Document{{ID: "a"}, {ID: "b"}},
			Total:     2,
		})
	})

	docs, err := client.GetByIDs(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("expected 2 documents, got %d", len(docs))
	}
}

func TestClient_GetByIDs_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty id list")
	})

	docs, err := client.GetByIDs(context.Background(), nil)
	if err != nil || docs != nil {
		t.Errorf("expected a no-op, got %v / %v", docs, err)
	}
}

func TestClient_Index(t *testing.T) {
	var received int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents/bulk" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req indexRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		received = len(req.Documents)

		json.NewEncoder(w).Encode(storeResponse{Total: received})
	})

	err := client.Index(context.Background(), []*domain.Document{
		{ID: "q1", Text: "What is 5 + 3?"},
		{ID: "q2", Text: "What is 7 - 2?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received != 2 {
		t.Errorf("expected 2 documents sent, got %d", received)
	}
}

func TestClient_HealthCheck(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "shard failure", http.StatusInternalServerError)
	})

	if _, err := client.Query(context.Background(), nil, 10); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
	if err := client.HealthCheck(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: 100 * time.Millisecond})

	if _, err := client.Query(context.Background(), nil, 10); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}
