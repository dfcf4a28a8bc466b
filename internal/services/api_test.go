package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Inxkls/xerces/internal/shared"
	tu "github.com/Inxkls/xerces/internal/testing"
)

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService(shared.CatalogConfig{BaseURL: "http://example.com"}, customClient)

			if srv.baseURL != "http://example.com" {
				t.Errorf("expected baseURL 'http://example.com', got %s", srv.baseURL)
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty Config", func(t *testing.T) {
			srv := NewAPIService(shared.CatalogConfig{}, nil)

			if srv.baseURL != defaultBaseURL {
				t.Errorf("expected default baseURL %s, got %s", defaultBaseURL, srv.baseURL)
			}
			if srv.userAgent != defaultUserAgent {
				t.Errorf("expected default user agent, got %s", srv.userAgent)
			}
		})

		t.Run("With Nil Client Uses Configured Timeout", func(t *testing.T) {
			srv := NewAPIService(shared.CatalogConfig{TimeoutSeconds: 3}, nil)

			if srv.httpClient.Timeout != 3*time.Second {
				t.Errorf("expected 3s timeout, got %v", srv.httpClient.Timeout)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Adds Key Format And User Agent", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				q := r.URL.Query()
				if q.Get("api_key") != "secret" {
					t.Errorf("expected api_key 'secret', got %q", q.Get("api_key"))
				}
				if q.Get("format") != "json" {
					t.Errorf("expected format 'json', got %q", q.Get("format"))
				}
				if q.Get("album") != "AC/DC & Friends" {
					t.Errorf("expected escaped album param to round-trip, got %q", q.Get("album"))
				}
				if ua := r.Header.Get("User-Agent"); ua != "xerces-test" {
					t.Errorf("expected User-Agent 'xerces-test', got %q", ua)
				}

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"status":"success"}`))
			}))
			defer server.Close()

			srv := NewAPIService(shared.CatalogConfig{BaseURL: server.URL, APIKey: "secret", UserAgent: "xerces-test"}, nil)
			resp, err := srv.Get(context.Background(), url.Values{"album": {"AC/DC & Friends"}})

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.OK() {
				t.Errorf("expected status 200, got %d", resp.StatusCode)
			}
			if !resp.IsJSON {
				t.Error("expected response to be JSON")
			}
		})

		t.Run("Non-JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("upstream down"))
			}))
			defer server.Close()

			srv := NewAPIService(shared.CatalogConfig{BaseURL: server.URL}, nil)
			resp, err := srv.Get(context.Background(), nil)

			if err != nil {
				t.Fatalf("expected no error for non-2xx, got %v", err)
			}
			if resp.OK() {
				t.Error("expected non-OK response")
			}
			if resp.IsJSON {
				t.Error("expected response to not be JSON")
			}
			if string(resp.Body) != "upstream down" {
				t.Errorf("unexpected body %q", resp.Body)
			}
		})

		t.Run("Transport Failure", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
			srv := NewAPIService(shared.CatalogConfig{BaseURL: "http://example.com"}, client)

			_, err := srv.Get(context.Background(), nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), "request failed") {
				t.Errorf("expected 'request failed' error, got %v", err)
			}
		})

		t.Run("Body Read Failure", func(t *testing.T) {
			resp := &http.Response{StatusCode: http.StatusOK, Body: &tu.FCloser{}, Header: http.Header{}}
			client := &http.Client{Transport: tu.NewMockRoundTripper(resp, nil)}
			srv := NewAPIService(shared.CatalogConfig{BaseURL: "http://example.com"}, client)

			_, err := srv.Get(context.Background(), nil)
			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected read failure, got %v", err)
			}
		})
	})

	t.Run("Method", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m := r.URL.Query().Get("method"); m != "album.search" {
				t.Errorf("expected method album.search, got %q", m)
			}
			io.WriteString(w, `{}`)
		}))
		defer server.Close()

		srv := NewAPIService(shared.CatalogConfig{BaseURL: server.URL}, nil)
		if _, err := srv.Method(context.Background(), "album.search", map[string]string{"album": "x"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}
