// Package web provides the live syllabification API server.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/FocuswithJustin/havarot/core/errors"
	"github.com/FocuswithJustin/havarot/core/havarot"
	"github.com/FocuswithJustin/havarot/internal/cache"
	"github.com/FocuswithJustin/havarot/internal/logging"
	"github.com/FocuswithJustin/havarot/internal/server"
	"github.com/FocuswithJustin/havarot/internal/store"
	"github.com/FocuswithJustin/havarot/internal/validation"
)

// Config holds server configuration.
type Config struct {
	Port           int
	StorePath      string
	Watch          []string
	AllowedOrigins []string // CORS allowed origins (empty = allow all)
	Options        *havarot.Options
	Preset         string
	Debounce       time.Duration
}

// ServerConfig is the active server configuration.
var ServerConfig Config

// serverStore is the opened analysis store, nil when StorePath is empty.
var serverStore *store.Store

// Run listings and stats are cached briefly between requests; the
// watcher invalidates them whenever it writes a new run.
var (
	runsCache  = cache.New[string, []store.Run](5 * time.Second)
	statsCache = cache.New[string, *store.Stats](5 * time.Second)
)

func invalidateStoreCaches() {
	runsCache.Invalidate()
	statsCache.Invalidate()
}

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Start starts the analysis server with the given configuration.
func Start(cfg Config) error {
	ServerConfig = cfg
	if ServerConfig.Port == 0 {
		ServerConfig.Port = 8080
	}
	if ServerConfig.Options == nil {
		ServerConfig.Options = havarot.DefaultOptions()
	}

	if ServerConfig.StorePath != "" {
		st, err := store.Open(ServerConfig.StorePath)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		serverStore = st
	}

	// Initialize WebSocket hub
	GlobalHub = NewHub()
	go GlobalHub.Run()

	if len(ServerConfig.Watch) > 0 {
		watcher, err := NewWatcher(ServerConfig.Watch, ServerConfig.Debounce, GlobalHub, serverStore, ServerConfig.Options, ServerConfig.Preset)
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		if err := watcher.Start(context.Background()); err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
	}

	mux := setupRoutes()

	storePath := "disabled"
	if ServerConfig.StorePath != "" {
		storePath = server.AbsPath(ServerConfig.StorePath)
	}
	logging.ServerStartup("analysis_api", "http", ServerConfig.Port,
		"websocket_protocol", "ws",
		"store", storePath,
		"watched_patterns", len(ServerConfig.Watch))

	// Build middleware chain with security headers
	var handler http.Handler = server.SecurityHeaders(server.APICSPConfig(), mux)

	// Apply CORS middleware (outermost)
	corsConfig := server.CORSConfig{
		AllowedOrigins: ServerConfig.AllowedOrigins,
	}
	handler = server.CORSMiddleware(corsConfig, handler)
	if len(ServerConfig.AllowedOrigins) > 0 {
		logging.SecurityEvent("cors_configured", "web",
			"mode", "restricted",
			"allowed_origins_count", len(ServerConfig.AllowedOrigins))
	} else {
		logging.SecurityEvent("cors_configured", "web",
			"mode", "permissive",
			"note", "allowing all origins (*) - consider restricting for production")
	}

	// Apply logging middleware
	handler = logging.CombinedMiddleware(handler)

	return http.ListenAndServe(fmt.Sprintf(":%d", ServerConfig.Port), handler)
}

// setupRoutes configures all HTTP routes.
func setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", handleRoot)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/api/syllabify", handleSyllabify)
	mux.HandleFunc("/api/runs", handleRuns)
	mux.HandleFunc("/api/stats", handleStats)
	mux.HandleFunc("/api/lookup", handleLookup)
	mux.HandleFunc("/ws", handleWebSocket)

	return mux
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "unknown endpoint")
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"service": "havarot",
		"endpoints": []string{
			"/health",
			"/api/syllabify",
			"/api/runs",
			"/api/stats",
			"/api/lookup",
			"/ws",
		},
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"clients": hubClientCount(),
	})
}

// syllabifyRequest is the POST /api/syllabify body.
type syllabifyRequest struct {
	Text   string `json:"text"`
	Schema string `json:"schema,omitempty"`
}

func handleSyllabify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, validation.MaxTextSize)
	var req syllabifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "malformed JSON body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMS", "text must not be empty")
		return
	}

	opts := *ServerConfig.Options
	if req.Schema != "" {
		opts.Schema = req.Schema
	}

	text, err := havarot.NewText(req.Text, &opts)
	if err != nil {
		status, code := statusForError(err)
		respondError(w, status, code, err.Error())
		return
	}

	words := text.Words()
	syllables := text.Syllables()
	logging.AnalysisEvent("request", len(words), len(syllables), 0)
	BroadcastAnalysis("request", "", len(words), len(syllables))

	respond(w, http.StatusOK, text)
}

func handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}
	if serverStore == nil {
		respondError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "no analysis store configured")
		return
	}

	runs, ok := runsCache.Get("runs")
	if !ok {
		var err error
		runs, err = serverStore.Runs()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
			return
		}
		runsCache.Set("runs", runs)
	}
	respondList(w, http.StatusOK, runs, len(runs))
}

func handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}
	if serverStore == nil {
		respondError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "no analysis store configured")
		return
	}

	stats, ok := statsCache.Get("stats")
	if !ok {
		var err error
		stats, err = serverStore.Stats()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
			return
		}
		statsCache.Set("stats", stats)
	}
	respond(w, http.StatusOK, stats)
}

func handleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}
	if serverStore == nil {
		respondError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "no analysis store configured")
		return
	}

	ref := r.URL.Query().Get("ref")
	rows, err := serverStore.LookupRef(ref)
	if err != nil {
		status, code := statusForError(err)
		respondError(w, status, code, err.Error())
		return
	}
	respondList(w, http.StatusOK, rows, len(rows))
}

func hubClientCount() int {
	if GlobalHub == nil {
		return 0
	}
	return GlobalHub.ClientCount()
}

// statusForError maps analysis errors onto HTTP status codes.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, errors.ErrInvalidInput), errors.Is(err, errors.ErrNoVowels):
		return http.StatusBadRequest, "INVALID_INPUT"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondList(w http.ResponseWriter, status int, data interface{}, total int) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Total:     total,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
