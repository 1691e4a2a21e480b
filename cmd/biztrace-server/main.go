package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	gql "github.com/dd0wney/biztrace/pkg/graphql"
	"github.com/dd0wney/biztrace/pkg/logging"
	"github.com/dd0wney/biztrace/pkg/metrics"
	"github.com/dd0wney/biztrace/pkg/model"
	"github.com/dd0wney/biztrace/pkg/orchestration"
	"github.com/dd0wney/biztrace/pkg/schema"
	"github.com/dd0wney/biztrace/pkg/server"
	"github.com/dd0wney/biztrace/pkg/traceability"
	"github.com/dd0wney/biztrace/pkg/validation"
)

// snapshot is one immutable resolve-and-build result. The server swaps whole
// snapshots on reload; requests always see a consistent graph.
type snapshot struct {
	orchestrated *model.OrchestratedBusiness
	graph        *traceability.Graph
	result       *validation.Result
	loadedAt     time.Time
}

type app struct {
	resolver     *orchestration.Resolver
	registry     *metrics.Registry
	logger       logging.Logger
	businessFile string

	mu      sync.RWMutex
	current *snapshot
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	businessFile := flag.String("business", "business.yaml", "Path to the root business document")
	flag.Parse()

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(os.Getenv("LOG_LEVEL")))

	a := &app{
		resolver:     orchestration.NewResolver(schema.NewRegistry(), logger),
		registry:     metrics.NewRegistry(),
		logger:       logger,
		businessFile: *businessFile,
	}

	if err := a.reload(); err != nil {
		logger.Error("initial resolution failed", logging.Error(err), logging.File(*businessFile))
		os.Exit(1)
	}

	gqlSchema, err := gql.NewSchema(a.graphSnapshot)
	if err != nil {
		logger.Error("building GraphQL schema failed", logging.Error(err))
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", a.instrument("/graphql", gql.NewHandler(gqlSchema)))
	mux.Handle("/api/graph", a.instrument("/api/graph", http.HandlerFunc(a.handleGraph)))
	mux.Handle("/api/validation", a.instrument("/api/validation", http.HandlerFunc(a.handleValidation)))
	mux.Handle("/api/stats", a.instrument("/api/stats", http.HandlerFunc(a.handleStats)))
	mux.Handle("/metrics", a.registry.Handler())
	mux.HandleFunc("/health", a.handleHealth)

	gs := server.NewGracefulServer(*addr, mux, logger)
	gs.SetReloadFunc(a.reload)

	go a.collectSystemMetrics(gs.ShutdownChannel())

	if err := gs.Start(); err != nil {
		logger.Error("server failed", logging.Error(err))
		os.Exit(1)
	}
}

// reload re-resolves the business documents and swaps in a fresh snapshot.
// Resolution and build are not transactional against concurrent file edits;
// the swap only guarantees readers never see a half-built graph.
func (a *app) reload() error {
	start := time.Now()
	ob, err := a.resolver.Resolve(a.businessFile)
	if err != nil {
		a.registry.RecordResolution("error", 0, time.Since(start))
		return err
	}
	a.registry.RecordResolution("ok", len(ob.PresentLayers()), time.Since(start))

	buildStart := time.Now()
	graph := traceability.Build(ob)
	a.registry.RecordGraphBuild(len(graph.Nodes), len(graph.Edges), time.Since(buildStart))

	result := validation.ValidateCrossLayerReferences(ob)
	a.registry.RecordValidation(len(result.Errors()), len(result.Warnings()))

	a.mu.Lock()
	a.current = &snapshot{
		orchestrated: ob,
		graph:        graph,
		result:       result,
		loadedAt:     time.Now(),
	}
	a.mu.Unlock()

	a.logger.Info("snapshot loaded",
		logging.File(a.businessFile),
		logging.Int("nodes", len(graph.Nodes)),
		logging.Int("edges", len(graph.Edges)),
		logging.Bool("valid", result.IsValid))
	return nil
}

func (a *app) getSnapshot() *snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// graphSnapshot satisfies the GraphQL provider contract.
func (a *app) graphSnapshot() *traceability.Graph {
	return a.getSnapshot().graph
}

func (a *app) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.getSnapshot().graph)
}

func (a *app) handleValidation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.getSnapshot().result)
}

func (a *app) handleStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats := traceability.Stats(a.getSnapshot().graph)
	a.registry.RecordQuery("stats", time.Since(start))
	writeJSON(w, stats)
}

func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := a.getSnapshot()
	writeJSON(w, map[string]any{
		"status":   "ok",
		"loadedAt": snap.loadedAt.Format(time.RFC3339),
		"valid":    snap.result.IsValid,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("encoding response: %v", err), http.StatusInternalServerError)
	}
}

// statusRecorder captures the response code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with request counting and latency observation.
func (a *app) instrument(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		a.registry.RecordHTTPRequest(r.Method, path, strconv.Itoa(rec.status), time.Since(start))
	})
}

// collectSystemMetrics refreshes runtime gauges until shutdown.
func (a *app) collectSystemMetrics(done <-chan struct{}) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			a.registry.UpdateSystemMetrics()
		case <-done:
			return
		}
	}
}
