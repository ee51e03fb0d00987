// Package server is the operational shell: a small web UI plus JSON API for
// running the content generation workflow and downloading the result.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Gouranga-GH/yt-to-other-sm/document"
	"github.com/Gouranga-GH/yt-to-other-sm/pipeline"
	"github.com/Gouranga-GH/yt-to-other-sm/platform"
	"github.com/Gouranga-GH/yt-to-other-sm/youtube"
)

//go:embed web/index.html
var embeddedStatic embed.FS

// requestTimeout bounds one full run: extraction plus three model calls.
const requestTimeout = 240 * time.Second

// VideoExtractor is the metadata/transcript collaborator.
type VideoExtractor interface {
	Extract(ctx context.Context, url string) (youtube.Video, error)
}

// LLMFactory builds an LLM client for a request. The apiKey is the caller's
// credential; empty means use the server's configured one.
type LLMFactory func(apiKey string) (pipeline.LLMClient, error)

// Server routes the web UI and API.
type Server struct {
	extractor   VideoExtractor
	newLLM      LLMFactory
	minCoverage float64
	store       *runStore
	logger      *log.Logger
}

type run struct {
	ID       string
	Document document.Document
}

type runStore struct {
	mu   sync.Mutex
	runs map[string]*run
}

func newStore() *runStore {
	return &runStore{runs: make(map[string]*run)}
}

func (s *runStore) set(r *run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = r
}

func (s *runStore) get(id string) (*run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runs[id]
	return r, ok
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMinSourceCoverage is passed through to each pipeline run.
func WithMinSourceCoverage(min float64) Option {
	return func(s *Server) { s.minCoverage = min }
}

// New builds a Server. Extractor and LLM factory are required.
func New(extractor VideoExtractor, newLLM LLMFactory, opts ...Option) (*Server, error) {
	if extractor == nil {
		return nil, errors.New("video extractor required")
	}
	if newLLM == nil {
		return nil, errors.New("llm factory required")
	}
	s := &Server{
		extractor:   extractor,
		newLLM:      newLLM,
		minCoverage: pipeline.DefaultMinSourceCoverage,
		store:       newStore(),
		logger:      log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/platforms", s.handlePlatforms)
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/runs/", s.handleRunByID)
	mux.HandleFunc("/", s.handleIndex)
	return s.logMiddleware(mux)
}

// --- Handlers ---

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := embeddedStatic.ReadFile("web/index.html")
	if err != nil {
		http.Error(w, "index unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "bad_request", "method not allowed")
		return
	}
	resp := map[platform.Platform][]platform.ContentType{
		platform.Instagram: platform.ContentTypes(platform.Instagram),
		platform.Medium:    platform.ContentTypes(platform.Medium),
	}
	writeJSON(w, resp)
}

type generateReq struct {
	URL         string `json:"url"`
	Platform    string `json:"platform"`
	ContentType string `json:"content_type"`
	APIKey      string `json:"api_key,omitempty"`
}

type generateResp struct {
	RunID    string            `json:"run_id"`
	Filename string            `json:"filename"`
	Document document.Document `json:"document"`
	HTML     string            `json:"html,omitempty"`
}

type errorResp struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "bad_request", "method not allowed")
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if !youtube.ValidURL(req.URL) {
		writeError(w, http.StatusBadRequest, "bad_request", "please enter a valid YouTube URL")
		return
	}
	sel := platform.Selection{
		Platform:    platform.Platform(req.Platform),
		ContentType: platform.ContentType(req.ContentType),
	}
	if err := sel.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "config", err.Error())
		return
	}

	llm, err := s.newLLM(req.APIKey)
	if err != nil {
		writeError(w, http.StatusBadRequest, "config", err.Error())
		return
	}
	p, err := pipeline.New(llm,
		pipeline.WithLogger(s.logger),
		pipeline.WithMinSourceCoverage(s.minCoverage))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "config", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	video, err := s.extractor.Extract(ctx, req.URL)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "extraction", err.Error())
		return
	}

	final, err := p.Run(ctx, video, sel)
	if err != nil {
		var cfgErr *platform.ConfigError
		if errors.As(err, &cfgErr) {
			writeError(w, http.StatusBadRequest, "config", err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "generation", err.Error())
		return
	}

	doc := document.Assemble(final, video, time.Now())
	rn := &run{ID: uuid.NewString(), Document: doc}
	s.store.set(rn)

	html, err := doc.HTML()
	if err != nil {
		s.logger.Printf("[server] preview render failed for run %s: %v", rn.ID, err)
	}
	writeJSON(w, generateResp{
		RunID:    rn.ID,
		Filename: doc.Filename(),
		Document: doc,
		HTML:     html,
	})
}

func (s *Server) handleRunByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "bad_request", "method not allowed")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	id, suffix, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	rn, ok := s.store.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "bad_request", "run not found")
		return
	}

	switch suffix {
	case "":
		writeJSON(w, generateResp{RunID: rn.ID, Filename: rn.Document.Filename(), Document: rn.Document})
	case "download":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+rn.Document.Filename()+`"`)
		w.Write([]byte(rn.Document.Markdown()))
	default:
		http.NotFound(w, r)
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResp{Kind: kind, Message: message})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Printf("[server] %s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
	})
}
