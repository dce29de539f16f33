package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/Night40050/support-copilot/internal/config"
)

func TestSupabaseUpdate_Success(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH, got %s", r.Method)
		}
		if r.URL.Path != "/rest/v1/tickets" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("id") != "eq."+id.String() {
			t.Errorf("unexpected filter %s", r.URL.RawQuery)
		}
		if r.Header.Get("apikey") != "service-key" || r.Header.Get("Authorization") != "Bearer service-key" {
			t.Error("missing supabase auth headers")
		}
		if r.Header.Get("Prefer") != "return=representation" {
			t.Error("expected representation to be requested")
		}

		var patch map[string]any
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			t.Errorf("decode patch: %v", err)
		}
		if len(patch) != 6 {
			t.Errorf("expected exactly six fields, got %v", patch)
		}
		if patch["processed"] != true || patch["category"] != "Billing" || patch["processing_time_ms"] != float64(120) {
			t.Errorf("unexpected patch %v", patch)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"` + id.String() + `","processed":true}]`))
	}))
	defer srv.Close()

	repo := NewSupabaseTicketRepository(config.SupabaseConfig{URL: srv.URL + "/", ServiceRoleKey: "service-key"}, srv.Client())
	if err := repo.UpdateClassification(context.Background(), sampleUpdate(id)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSupabaseUpdate_NoRowsIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repo := NewSupabaseTicketRepository(config.SupabaseConfig{URL: srv.URL, ServiceRoleKey: "k"}, srv.Client())
	err := repo.UpdateClassification(context.Background(), sampleUpdate(uuid.New()))
	if !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestSupabaseUpdate_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	repo := NewSupabaseTicketRepository(config.SupabaseConfig{URL: srv.URL, ServiceRoleKey: "k"}, srv.Client())
	err := repo.UpdateClassification(context.Background(), sampleUpdate(uuid.New()))
	if err == nil || errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected a store error distinct from not found, got %v", err)
	}
}

func TestSupabaseUpdate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	repo := NewSupabaseTicketRepository(config.SupabaseConfig{URL: url, ServiceRoleKey: "k"}, nil)
	err := repo.UpdateClassification(context.Background(), sampleUpdate(uuid.New()))
	if err == nil || errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestSupabasePing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Query().Get("select") != "id" {
			t.Errorf("unexpected ping request %s %s", r.Method, r.URL.RawQuery)
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repo := NewSupabaseTicketRepository(config.SupabaseConfig{URL: srv.URL, ServiceRoleKey: "k"}, srv.Client())
	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := NewSupabaseTicketRepository(config.SupabaseConfig{}, nil).Ping(context.Background()); !errors.Is(err, ErrStoreNotConfigured) {
		t.Fatalf("expected ErrStoreNotConfigured, got %v", err)
	}
}
