package logs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-scheduler/internal/domain/pets"
	"pet-care-scheduler/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/care/logs", func(lr chi.Router) {
		lr.Post("/", recordLogHandler(svc, petsSvc))
		lr.Get("/", listLogsHandler(svc, petsSvc))
	})
}

type recordLogRequest struct {
	Type       LogType `json:"type"`
	Title      string  `json:"title"`
	Value      string  `json:"value"`
	Notes      string  `json:"notes"`
	OccurredAt string  `json:"occurred_at"` // RFC3339 opcional
}

type logResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	Type       LogType   `json:"type"`
	Title      string    `json:"title,omitempty"`
	Value      string    `json:"value,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func recordLogHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := petsSvc.VerifyOwned(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "pet not found")
			return
		}

		var req recordLogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		var occurred *time.Time
		if strings.TrimSpace(req.OccurredAt) != "" {
			t, err := time.Parse(time.RFC3339, req.OccurredAt)
			if err != nil {
				writeError(w, http.StatusBadRequest, "occurred_at must be RFC3339")
				return
			}
			occurred = &t
		}

		l, err := svc.Record(r.Context(), p.ID, RecordInput{
			Type:       req.Type,
			Title:      req.Title,
			Value:      req.Value,
			Notes:      req.Notes,
			OccurredAt: occurred,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "type is required")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"log": toLogResponse(l)})
	}
}

func listLogsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := petsSvc.VerifyOwned(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "pet not found")
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		items, err := svc.ListByPet(r.Context(), p.ID, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]logResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLogResponse(l))
		}

		writeJSON(w, http.StatusOK, map[string]any{"logs": out})
	}
}

func toLogResponse(l CareLog) logResponse {
	return logResponse{
		ID:         l.ID,
		PetID:      l.PetID,
		Type:       l.Type,
		Title:      l.Title,
		Value:      l.Value,
		Notes:      l.Notes,
		OccurredAt: l.OccurredAt,
		CreatedAt:  l.CreatedAt,
	}
}

// writeJSON/writeError están duplicados intencionalmente en handlers de
// distintos módulos para no crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
