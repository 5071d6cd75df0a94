package api

import (
	"nav-eval-service/internal/api/handlers"
	"nav-eval-service/internal/ports"
	"nav-eval-service/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	samples ports.SampleRepository,
	results ports.ResultRepository,
	evaluator *services.Evaluator,
	store handlers.Pinger,
	limiter *rate.Limiter,
) http.Handler {
	mux := http.NewServeMux()

	evalHandler := &handlers.EvaluationHandler{Evaluator: evaluator}
	runHandler := &handlers.RunHandler{
		Samples:   samples,
		Results:   results,
		Evaluator: evaluator,
	}
	boardHandler := &handlers.LeaderboardHandler{Results: results}
	healthHandler := &handlers.HealthHandler{Store: store}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/evaluations", evalHandler.Evaluate)
	mux.HandleFunc("/runs", runHandler.Create)
	mux.HandleFunc("/leaderboard", boardHandler.List)
	mux.Handle("/metrics", promhttp.Handler())

	var h http.Handler = mux
	if limiter != nil {
		h = rateLimitMiddleware(limiter, h)
	}
	return requestIDMiddleware(loggingMiddleware(h))
}
