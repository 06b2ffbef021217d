package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ai-stock-scanner/internal/logger"
	"ai-stock-scanner/internal/scanner"
	"ai-stock-scanner/internal/types"
)

const maxBodyBytes = 1 << 20

type ScanRequest struct {
	Symbols []string `json:"symbols"`
}

type ScanResponse struct {
	Success   bool            `json:"success"`
	Results   types.ScanBatch `json:"results"`
	ServerTag string          `json:"serverTag"`
	Timestamp time.Time       `json:"timestamp"`
	Message   string          `json:"message,omitempty"`
}

type StockResponse struct {
	types.StockAnalysis
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status        string    `json:"status"`
	ServerTag     string    `json:"serverTag"`
	Version       string    `json:"version"`
	UptimeSeconds float64   `json:"uptimeSeconds"`
	Timestamp     time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}

// handleScan always answers 200. A malformed or empty body scans the defaults.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScanRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn(ctx, "Ignoring malformed scan request body", "error", err)
		req.Symbols = nil
	}

	res := s.scanner.Scan(ctx, req.Symbols)

	resp := ScanResponse{
		Success:   true,
		Results:   res.Value,
		ServerTag: s.tag,
		Timestamp: s.now().UTC(),
	}
	if res.Fallback {
		resp.Message = scanner.FallbackMessage
	}
	if resp.Results == nil {
		resp.Results = types.ScanBatch{}
	}

	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	res := s.scanner.Analyze(r.Context(), symbol)

	resp := StockResponse{StockAnalysis: res.Value}
	if res.Fallback {
		resp.Message = scanner.FallbackMessage
	}

	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	s.writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:        "healthy",
		ServerTag:     s.tag,
		Version:       s.version,
		UptimeSeconds: now.Sub(s.started).Seconds(),
		Timestamp:     now.UTC(),
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	s.writeJSON(w, r, http.StatusNotFound, errorResponse{
		Error: "not found",
		Path:  r.URL.Path,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.ErrorWithErr(r.Context(), "Failed to encode response", err, "path", r.URL.Path)
	}
}
