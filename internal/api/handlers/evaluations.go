package handlers

import (
	"log"
	"nav-eval-service/internal/api/dto"
	"nav-eval-service/internal/services"
	"net/http"
	"strings"
)

// EvaluationHandler scores a single reference/candidate pair.
type EvaluationHandler struct {
	Evaluator *services.Evaluator
}

func (h *EvaluationHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.EvaluateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Expected) == "" {
		writeError(w, r, http.StatusBadRequest, "expected route is required")
		return
	}

	eval, err := h.Evaluator.Evaluate(r.Context(), req.Expected, req.Actual)
	if err != nil {
		log.Printf("evaluate failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromEvaluation(eval))
}
