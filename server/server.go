// Package server exposes the scan pipeline over HTTP as a single JSON
// endpoint.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thehouseofcodeinjava/clearout.bio.bolt/scanner"
)

type scanRequest struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server handles scan requests. Responses are always well-formed JSON:
// either a ScanResult or an {"error": ...} body.
type Server struct {
	scanner *scanner.Scanner
	log     *logrus.Logger
}

// New creates a Server around the given scanner. A nil log disables
// request logging.
func New(s *scanner.Scanner, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Server{scanner: s, log: log}
}

// Handler returns the HTTP routes: POST /scan and GET /healthz.
func (srv *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/scan", srv.handleScan)
	mux.HandleFunc("/healthz", srv.handleHealthz)
	return mux
}

func (srv *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		srv.writeError(w, http.StatusMethodNotAllowed, "method not allowed, use POST")
		return
	}

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		srv.writeError(w, http.StatusBadRequest, "request body must be JSON with a \"url\" field")
		return
	}
	if req.URL == "" {
		srv.writeError(w, http.StatusBadRequest, "missing \"url\" field")
		return
	}

	start := time.Now()
	res, err := srv.scanner.Scan(r.Context(), req.URL)
	if err != nil {
		srv.log.WithFields(logrus.Fields{
			"url":      req.URL,
			"duration": time.Since(start),
		}).WithError(err).Warn("scan failed")
		srv.writeError(w, scanStatusCode(err), err.Error())
		return
	}

	srv.log.WithFields(logrus.Fields{
		"url":      req.URL,
		"duration": time.Since(start),
		"total":    res.TotalLinks,
		"working":  res.WorkingLinks,
		"broken":   res.BrokenLinks,
	}).Info("scan completed")

	srv.writeJSON(w, http.StatusOK, res)
}

func (srv *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// scanStatusCode maps a scan error to its HTTP status: caller-correctable
// input and upstream-status failures are 400, the page fetch's own timeout
// is 408, anything else is 500.
func scanStatusCode(err error) int {
	if errors.Is(err, scanner.ErrInvalidURL) {
		return http.StatusBadRequest
	}

	var fetchErr *scanner.FetchError
	if errors.As(err, &fetchErr) {
		switch {
		case fetchErr.Timeout:
			return http.StatusRequestTimeout
		case fetchErr.Status > 0:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func (srv *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		srv.log.WithError(err).Error("write response")
	}
}

func (srv *Server) writeError(w http.ResponseWriter, status int, msg string) {
	srv.writeJSON(w, status, errorResponse{Error: msg})
}
