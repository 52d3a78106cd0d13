package templates

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-care-scheduler/internal/domain/pets"
	"pet-care-scheduler/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/care/templates", func(tr chi.Router) {
		tr.Post("/", createTemplateHandler(svc, petsSvc))
		tr.Get("/", listTemplatesHandler(svc, petsSvc))
		tr.Post("/{templateID}/deactivate", deactivateTemplateHandler(svc, petsSvc))
	})
}

type createTemplateRequest struct {
	Type      CareType `json:"type" enums:"feeding,medication,grooming,vaccination,deworming,flea_tick,exercise,bath"`
	Title     string   `json:"title"`
	Cadence   string   `json:"cadence"`     // "daily", "every 3 days", "weekly"
	TimeOfDay string   `json:"time_of_day"` // HH:MM
}

type templateResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	Type      CareType  `json:"type"`
	Title     string    `json:"title"`
	Cadence   string    `json:"cadence,omitempty"`
	TimeOfDay string    `json:"time_of_day,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// createTemplateHandler godoc
// @Summary Crear definición de cuidado recurrente
// @Description Crea un care template para la mascota. Requiere type y title. Solo el dueño de la mascota; pet ajeno o inexistente responde 404.
// @Tags templates
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body createTemplateRequest true "Datos del template"
// @Success 201 {object} map[string]templateResponse
// @Failure 400 {object} map[string]string "type/title faltante o inválido"
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string "pet not found"
// @Router /pets/{petID}/care/templates [post]
func createTemplateHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := petsSvc.VerifyOwned(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "pet not found")
			return
		}

		var req createTemplateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		t, err := svc.Create(r.Context(), p.ID, CreateInput{
			Type:      req.Type,
			Title:     req.Title,
			Cadence:   req.Cadence,
			TimeOfDay: req.TimeOfDay,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				writeError(w, http.StatusBadRequest, "type and title are required")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]any{"template": toTemplateResponse(t)})
	}
}

func listTemplatesHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := petsSvc.VerifyOwned(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "pet not found")
			return
		}

		items, err := svc.ListActiveByPet(r.Context(), p.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]templateResponse, 0, len(items))
		for _, t := range items {
			out = append(out, toTemplateResponse(t))
		}

		writeJSON(w, http.StatusOK, map[string]any{"templates": out})
	}
}

func deactivateTemplateHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := petsSvc.VerifyOwned(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, http.StatusNotFound, "pet not found")
			return
		}

		t, err := svc.Deactivate(r.Context(), p.ID, chi.URLParam(r, "templateID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "template not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"template": toTemplateResponse(t)})
	}
}

func toTemplateResponse(t CareTemplate) templateResponse {
	return templateResponse{
		ID:        t.ID,
		PetID:     t.PetID,
		Type:      t.Type,
		Title:     t.Title,
		Cadence:   t.Cadence,
		TimeOfDay: t.TimeOfDay,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
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
