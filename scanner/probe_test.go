package scanner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func probeConfig() Config {
	cfg := DefaultConfig()
	cfg.ProbeTimeout = 2 * time.Second
	return cfg
}

func TestProbeWorkingLink(t *testing.T) {
	var gotUA string
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	res := Probe(context.Background(), server.Client(), server.URL, probeConfig())

	if res.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", res.Status)
	}
	if !res.IsWorking {
		t.Error("expected link to be working")
	}
	if res.IsRedirect {
		t.Error("expected no redirect")
	}
	if res.FinalURL != server.URL {
		t.Errorf("FinalURL = %q, want %q", res.FinalURL, server.URL)
	}
	if res.StatusText != "OK" {
		t.Errorf("StatusText = %q, want %q", res.StatusText, "OK")
	}
	if res.ResponseTimeMs < 0 {
		t.Errorf("ResponseTimeMs = %d, want >= 0", res.ResponseTimeMs)
	}
	if gotMethod != http.MethodHead {
		t.Errorf("probe used %s, want HEAD", gotMethod)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, DefaultUserAgent)
	}
}

func TestProbeBrokenLink(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	res := Probe(context.Background(), server.Client(), server.URL+"/missing", probeConfig())

	if res.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", res.Status)
	}
	if res.IsWorking {
		t.Error("404 must not classify as working")
	}
	if res.StatusText != "Not Found" {
		t.Errorf("StatusText = %q, want %q", res.StatusText, "Not Found")
	}
}

func TestProbeRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	res := Probe(context.Background(), server.Client(), server.URL+"/old", probeConfig())

	if !res.IsWorking {
		t.Error("redirect resolving to 200 must classify as working")
	}
	if !res.IsRedirect {
		t.Error("expected redirect flag")
	}
	if res.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200 after following redirect", res.Status)
	}
	if res.FinalURL != server.URL+"/new" {
		t.Errorf("FinalURL = %q, want %q", res.FinalURL, server.URL+"/new")
	}
	if res.OriginalURL != server.URL+"/old" {
		t.Errorf("OriginalURL = %q, want %q", res.OriginalURL, server.URL+"/old")
	}
}

func TestProbeHeadFallsBackToGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	res := Probe(context.Background(), server.Client(), server.URL, probeConfig())

	if res.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200 from GET fallback", res.Status)
	}
	if !res.IsWorking {
		t.Error("expected link to be working after GET fallback")
	}
}

func TestProbeTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer server.Close()

	cfg := probeConfig()
	cfg.ProbeTimeout = 50 * time.Millisecond

	res := Probe(context.Background(), server.Client(), server.URL, cfg)

	if res.Status != 0 {
		t.Errorf("Status = %d, want 0 on timeout", res.Status)
	}
	if res.IsWorking || res.IsRedirect {
		t.Error("timed-out link must be neither working nor redirect")
	}
	if !strings.Contains(res.StatusText, "timed out") {
		t.Errorf("StatusText = %q, want a timeout description", res.StatusText)
	}
	if res.FinalURL != server.URL {
		t.Errorf("FinalURL = %q, want original URL on failure", res.FinalURL)
	}
}

func TestProbeConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := server.URL
	server.Close()

	res := Probe(context.Background(), &http.Client{}, deadURL, probeConfig())

	if res.Status != 0 {
		t.Errorf("Status = %d, want 0 on transport failure", res.Status)
	}
	if res.IsWorking {
		t.Error("unreachable link must not classify as working")
	}
	if strings.Contains(res.StatusText, "timed out") {
		t.Errorf("StatusText = %q must be distinguishable from a timeout", res.StatusText)
	}
	if res.StatusText == "" {
		t.Error("StatusText must describe the failure")
	}
}
