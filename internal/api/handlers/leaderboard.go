package handlers

import (
	"log"
	"nav-eval-service/internal/api/dto"
	"nav-eval-service/internal/ports"
	"nav-eval-service/internal/services"
	"net/http"
	"strings"
)

// LeaderboardHandler exposes read-only per-model accuracy summaries.
type LeaderboardHandler struct {
	Results ports.ResultRepository
}

func (h *LeaderboardHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	dataset := strings.TrimSpace(r.URL.Query().Get("dataset"))
	if dataset == "" {
		writeError(w, r, http.StatusBadRequest, "dataset query parameter is required")
		return
	}

	summaries, err := services.Leaderboard(r.Context(), dataset, h.Results)
	if err != nil {
		log.Printf("leaderboard failed: dataset=%s err=%v", dataset, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.LeaderboardResponse{
		Dataset: dataset,
		Models:  make([]dto.SummaryResponse, 0, len(summaries)),
	}
	for _, s := range summaries {
		res.Models = append(res.Models, dto.FromSummary(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}
