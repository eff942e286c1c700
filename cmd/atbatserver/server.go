// Command atbatserver exposes the simulation core over a small debug HTTP
// API, standing in for "an embedding application may call
// simulate_plate_appearance from a worker thread to keep a UI responsive."
// It is not part of the core's contract; the core has no wire protocol of
// its own.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/baseball-sim/atbat-core/basestate"
	"github.com/baseball-sim/atbat-core/random"
	"github.com/baseball-sim/atbat-core/simulation"
	"github.com/baseball-sim/atbat-core/stats"
)

// Config holds the server's runtime knobs, sourced from the environment.
type Config struct {
	Port string
}

// NewConfig reads Config from the environment, applying documented
// defaults for anything unset.
func NewConfig() Config {
	return Config{Port: getEnv("PORT", "8090")}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Server is the debug HTTP surface around simulation.Engine.
type Server struct {
	router     *mux.Router
	httpServer *http.Server
	cfg        Config
	logger     *log.Logger
}

// NewServer constructs a Server and registers its routes.
func NewServer(cfg Config) *Server {
	s := &Server{
		router: mux.NewRouter(),
		cfg:    cfg,
		logger: log.NewWithOptions(os.Stderr, log.Options{Prefix: "atbatserver"}),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/simulate", s.simulateHandler).Methods(http.MethodPost)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoveryMiddleware)
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.logger.Info("starting at-bat debug server", "port", s.cfg.Port)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down at-bat debug server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "healthy", "time": time.Now().UTC()})
}

// simulateRequest is the wire shape for a single plate-appearance request.
type simulateRequest struct {
	Seed       uint64                `json:"seed"`
	Year       int                   `json:"year"`
	Batter     stats.BattingStatLine `json:"batter"`
	Pitcher    stats.PitchingStatLine `json:"pitcher"`
	PriorOuts  int                   `json:"prior_outs"`
	PriorFirst bool                  `json:"prior_first"`
	PriorSecond bool                 `json:"prior_second"`
	PriorThird bool                  `json:"prior_third"`
}

type simulateResponse struct {
	RunID       string  `json:"run_id"`
	Outcome     string  `json:"outcome"`
	NewFirst    bool    `json:"new_first"`
	NewSecond   bool    `json:"new_second"`
	NewThird    bool    `json:"new_third"`
	Runs        int     `json:"runs"`
	OutDelta    int     `json:"out_delta"`
	StrikeoutP  float64 `json:"matchup_strikeout_probability"`
	HomeRunP    float64 `json:"matchup_home_run_probability"`
}

func (s *Server) simulateHandler(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	rng := random.New(req.Seed)
	engine, err := simulation.New(rng, nil, simulation.DefaultConfig())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	prior := basestate.New(req.PriorFirst, req.PriorSecond, req.PriorThird)
	result, err := engine.SimulatePlateAppearance(req.Batter, req.Pitcher, req.Year, prior, req.PriorOuts, stats.ProjectionContext{}, stats.ProjectionContext{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	runID := uuid.New().String()
	first, second, third := result.Advancement.NewState.AsTuple()
	resp := simulateResponse{
		RunID: runID, Outcome: result.Outcome.String(),
		NewFirst: first, NewSecond: second, NewThird: third,
		Runs: result.Advancement.Runs, OutDelta: result.Advancement.OutDelta,
		StrikeoutP: result.Matchup.Strikeout, HomeRunP: result.Matchup.HomeRun,
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "atbatserver: failed to write response: %v\n", err)
	}
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "error", rec, "stack", string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := NewConfig()
	srv := NewServer(cfg)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "atbatserver: %v\n", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
