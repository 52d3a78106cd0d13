package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-scheduler/internal/domain/pets"
	"pet-care-scheduler/internal/middleware"
	"pet-care-scheduler/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, mat *Materializer, petsSvc *pets.Service, m *metrics.Metrics) {
	r.Route("/pets/{petID}/care", func(cr chi.Router) {
		cr.Get("/today", todayHandler(svc, mat, petsSvc))
		cr.Get("/events", upcomingHandler(svc, mat, petsSvc))
		cr.Post("/events", createAdHocEventHandler(svc, petsSvc))
	})

	// El update de status vive fuera del namespace /pets (el evento ya
	// conoce su mascota; el ownership se verifica por la cadena pet_id).
	r.Patch("/care/events/{eventID}", setStatusHandler(svc, petsSvc, m))
}

type createEventRequest struct {
	Title string `json:"title"`
	DueAt string `json:"due_at"` // RFC3339
}

type setStatusRequest struct {
	Status string `json:"status" enums:"done,skipped,upcoming"`
}

type eventResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	TemplateID string    `json:"template_id,omitempty"`
	Title      string    `json:"title"`
	DueAt      time.Time `json:"due_at"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// todayHandler godoc
// @Summary Cuidados de hoy
// @Description Eventos de cuidado con due_at dentro del día calendario actual, ascendente, con overdue derivado. Materializa la ventana antes de leer.
// @Tags care
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} map[string][]eventResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string "pet not found"
// @Router /pets/{petID}/care/today [get]
func todayHandler(svc *Service, mat *Materializer, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := petsSvc.VerifyOwned(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "pet not found")
			return
		}

		if err := mat.EnsurePet(r.Context(), p.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		items, err := svc.Today(r.Context(), p.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"events": toEventResponses(items)})
	}
}

// upcomingHandler godoc
// @Summary Eventos próximos
// @Description Eventos upcoming con due_at en [now, now+range], inclusivo en ambos extremos. range acepta "today..+14d", "+14d", "14d" o "14" (default 14, máximo 90).
// @Tags care
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param range query string false "Ventana hacia adelante"
// @Success 200 {object} map[string][]eventResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string "pet not found"
// @Router /pets/{petID}/care/events [get]
func upcomingHandler(svc *Service, mat *Materializer, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := petsSvc.VerifyOwned(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "pet not found")
			return
		}

		if err := mat.EnsurePet(r.Context(), p.ID); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		items, err := svc.Upcoming(r.Context(), p.ID, parseRangeDays(r.URL.Query().Get("range")))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"events": toEventResponses(items)})
	}
}

func createAdHocEventHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := petsSvc.VerifyOwned(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "pet not found")
			return
		}

		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		due, err := time.Parse(time.RFC3339, req.DueAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_at must be RFC3339")
			return
		}

		e, err := svc.CreateAdHoc(r.Context(), p.ID, CreateAdHocInput{
			Title: req.Title,
			DueAt: due,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "title and due_at are required")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"event": toEventResponse(e)})
	}
}

// setStatusHandler godoc
// @Summary Transicionar status de un evento
// @Description Aplica done/skipped/upcoming sobre un evento. done y skipped son terminales; overdue es derivado y no se setea desde el cliente. Evento ajeno o inexistente responde el mismo 404.
// @Tags care
// @Accept json
// @Produce json
// @Param eventID path string true "ID del evento"
// @Param payload body setStatusRequest true "Nuevo status"
// @Success 200 {object} map[string]eventResponse
// @Failure 400 {object} map[string]string "status inválido o transición ilegal"
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string "care event not found"
// @Router /care/events/{eventID} [patch]
func setStatusHandler(svc *Service, petsSvc *pets.Service, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		newStatus := Status(strings.TrimSpace(req.Status))
		if !ClientSettable(newStatus) {
			writeError(w, http.StatusBadRequest, "valid status is required (done, skipped, upcoming)")
			return
		}

		// Ownership por la cadena event -> pet -> owner. Evento inexistente y
		// evento de mascota ajena colapsan en el mismo 404 (anti-enumeración).
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "eventID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "care event not found")
			return
		}
		if _, err := petsSvc.VerifyOwned(r.Context(), claims.UserID, e.PetID); err != nil {
			writeError(w, http.StatusNotFound, "care event not found")
			return
		}

		updated, err := svc.SetStatus(r.Context(), e.ID, newStatus)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidTransition):
				writeError(w, http.StatusBadRequest, "invalid status transition")
			case errors.Is(err, ErrNotFound):
				writeError(w, http.StatusNotFound, "care event not found")
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		m.IncStatusTransition(string(updated.Status))
		writeJSON(w, http.StatusOK, map[string]any{"event": toEventResponse(updated)})
	}
}

// parseRangeDays es deliberadamente laxo: la app vieja mandaba "today..+14d"
// y a veces nada. Cualquier cosa no interpretable cae al default.
func parseRangeDays(v string) int {
	v = strings.TrimSpace(v)
	if i := strings.Index(v, ".."); i >= 0 {
		v = v[i+2:]
	}
	v = strings.TrimPrefix(v, "+")
	v = strings.TrimSuffix(v, "d")

	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return DefaultUpcomingWindowDays
	}
	if n > 90 {
		return 90
	}
	return n
}

func toEventResponse(e CareEvent) eventResponse {
	return eventResponse{
		ID:         e.ID,
		PetID:      e.PetID,
		TemplateID: e.TemplateID,
		Title:      e.Title,
		DueAt:      e.DueAt,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toEventResponses(items []CareEvent) []eventResponse {
	out := make([]eventResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toEventResponse(e))
	}
	return out
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
