package handlers

import (
	"errors"
	"log"
	"nav-eval-service/internal/api/dto"
	"nav-eval-service/internal/domain"
	"nav-eval-service/internal/ports"
	"nav-eval-service/internal/services"
	"net/http"
)

// RunHandler scores and stores a model's candidates for a dataset.
type RunHandler struct {
	Samples   ports.SampleRepository
	Results   ports.ResultRepository
	Evaluator *services.Evaluator
}

// Create scores every candidate against its reference sample and persists the run.
func (h *RunHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RunRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	candidates := make([]domain.Candidate, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		if c.OutputTokens < 0 {
			writeError(w, r, http.StatusBadRequest, "output_tokens must not be negative")
			return
		}
		candidates = append(candidates, domain.Candidate{
			SampleID:     c.SampleID,
			Text:         c.Text,
			OutputTokens: c.OutputTokens,
		})
	}

	svcReq := services.ScoreRunRequest{
		Dataset:    req.Dataset,
		Model:      req.Model,
		Candidates: candidates,
	}

	report, err := services.ScoreRun(r.Context(), svcReq, h.Samples, h.Results, h.Evaluator)
	switch {
	case errors.Is(err, services.ErrInvalidRun):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	case err != nil:
		log.Printf("score run failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.RunResponse{
		RunID:     report.Run.RunID,
		Dataset:   report.Run.Dataset,
		Model:     report.Run.Model,
		CreatedAt: report.Run.CreatedAt,
		Summary:   dto.FromSummary(report.Summary),
		Results:   make([]dto.SampleResultResponse, 0, len(report.Results)),
	}
	for _, sr := range report.Results {
		res.Results = append(res.Results, dto.SampleResultResponse{
			SampleID:     sr.SampleID,
			OutputTokens: sr.OutputTokens,
			Evaluation:   dto.FromEvaluation(sr.Evaluation),
		})
	}

	writeJSON(w, r, http.StatusCreated, res)
}
