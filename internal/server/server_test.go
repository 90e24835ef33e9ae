package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestServerNew(t *testing.T) {
	s := newTestServer(t)

	if s.Catalog() == nil {
		t.Fatal("expected catalog to be loaded")
	}
	if got := s.Catalog().MaxPage(); got != 52 {
		t.Errorf("MaxPage() = %d, want 52", got)
	}
	if s.Hub() == nil {
		t.Error("expected session hub to be created")
	}
	if s.Addr() != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", s.Addr())
	}
}

func TestServerNewBadCatalogPath(t *testing.T) {
	_, err := New(Config{CatalogPath: "/nonexistent/catalog.yaml"})
	if err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}

func TestServerRoutes(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.httpServer.Handler)
	defer ts.Close()

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/health")
		if err != nil {
			t.Fatalf("GET /health: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("status reports catalog", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/status")
		if err != nil {
			t.Fatalf("GET /status: %v", err)
		}
		defer resp.Body.Close()
		var status struct {
			Server  string `json:"server"`
			Catalog struct {
				MaxPage  int `json:"max_page"`
				Sections int `json:"sections"`
			} `json:"catalog"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			t.Fatalf("decode status: %v", err)
		}
		if status.Server != "running" {
			t.Errorf("server = %q, want running", status.Server)
		}
		if status.Catalog.MaxPage != 52 {
			t.Errorf("catalog.max_page = %d, want 52", status.Catalog.MaxPage)
		}
	})

	t.Run("read page renders section anchor", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/read?page=10")
		if err != nil {
			t.Fatalf("GET /read: %v", err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if !strings.Contains(string(body), `id="page_10"`) {
			t.Error("expected rendered page to contain section anchor page_10")
		}
		if !strings.Contains(string(body), "reader_progress") {
			t.Error("expected rendered page to contain the progress slider")
		}
	})

	t.Run("section lookup", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/sections/5")
		if err != nil {
			t.Fatalf("GET /api/sections/5: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("section out of range", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/sections/99")
		if err != nil {
			t.Fatalf("GET /api/sections/99: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d, want 404", resp.StatusCode)
		}
	})

	t.Run("root redirects to reader", func(t *testing.T) {
		client := &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
		resp, err := client.Get(ts.URL + "/?page=3")
		if err != nil {
			t.Fatalf("GET /: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("status = %d, want 302", resp.StatusCode)
		}
		loc := resp.Header.Get("Location")
		if !strings.HasPrefix(loc, "/read") || !strings.Contains(loc, "page=3") {
			t.Errorf("Location = %q, want /read with page=3 preserved", loc)
		}
	})
}

func TestServerStartAndShutdown(t *testing.T) {
	s, err := New(Config{Port: "0"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !s.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("server never reported running")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	if s.IsRunning() {
		t.Error("server still reports running after shutdown")
	}
}
