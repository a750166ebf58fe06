package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/thehouseofcodeinjava/clearout.bio.bolt/result"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/scanner"
)

func newTestServer(cfg scanner.Config) *httptest.Server {
	return httptest.NewServer(New(scanner.New(cfg, nil), nil).Handler())
}

func postScan(t *testing.T, api *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(api.URL+"/scan", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /scan: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("error response is not JSON: %v", err)
	}
	if body.Error == "" {
		t.Error("error response has empty message")
	}
	return body.Error
}

func TestScanEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><body>
			<a href="/ok">A</a>
			<a href="/missing">B</a>
			<a href="/moved">C</a>
		</body></html>`)
	})
	page := httptest.NewServer(mux)
	defer page.Close()

	api := newTestServer(scanner.DefaultConfig())
	defer api.Close()

	resp := postScan(t, api, fmt.Sprintf(`{"url": %q}`, page.URL+"/"))
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var res result.ScanResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.TotalLinks != 3 || res.WorkingLinks != 1 || res.Redirects != 1 || res.BrokenLinks != 1 {
		t.Errorf("got counts %d/%d/%d/%d, want 3/1/1/1",
			res.TotalLinks, res.WorkingLinks, res.Redirects, res.BrokenLinks)
	}
}

func TestScanEndpointBadRequests(t *testing.T) {
	api := newTestServer(scanner.DefaultConfig())
	defer api.Close()

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"url": `},
		{"missing url", `{}`},
		{"empty url", `{"url": ""}`},
		{"invalid url", `{"url": "not a url"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postScan(t, api, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			decodeError(t, resp)
		})
	}
}

func TestScanEndpointUpstreamStatus(t *testing.T) {
	page := httptest.NewServer(http.NotFoundHandler())
	defer page.Close()

	api := newTestServer(scanner.DefaultConfig())
	defer api.Close()

	resp := postScan(t, api, fmt.Sprintf(`{"url": %q}`, page.URL))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	msg := decodeError(t, resp)
	if !strings.Contains(msg, "404") || !strings.Contains(msg, "Not Found") {
		t.Errorf("error %q should carry the upstream status and reason", msg)
	}
}

func TestScanEndpointUpstreamTimeout(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer page.Close()

	cfg := scanner.DefaultConfig()
	cfg.PageFetchTimeout = 50 * time.Millisecond
	api := newTestServer(cfg)
	defer api.Close()

	resp := postScan(t, api, fmt.Sprintf(`{"url": %q}`, page.URL))
	if resp.StatusCode != http.StatusRequestTimeout {
		t.Errorf("status = %d, want 408", resp.StatusCode)
	}
	decodeError(t, resp)
}

func TestScanEndpointTransportFailure(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := page.URL
	page.Close()

	api := newTestServer(scanner.DefaultConfig())
	defer api.Close()

	resp := postScan(t, api, fmt.Sprintf(`{"url": %q}`, deadURL))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
	decodeError(t, resp)
}

func TestScanEndpointRejectsGet(t *testing.T) {
	api := newTestServer(scanner.DefaultConfig())
	defer api.Close()

	resp, err := http.Get(api.URL + "/scan")
	if err != nil {
		t.Fatalf("GET /scan: %v", err)
	}
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
	decodeError(t, resp)
}

func TestHealthz(t *testing.T) {
	api := newTestServer(scanner.DefaultConfig())
	defer api.Close()

	resp, err := http.Get(api.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
