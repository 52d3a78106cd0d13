package events

import (
	"context"
	"time"

	"pet-care-scheduler/internal/domain/templates"
	"pet-care-scheduler/internal/platform/logger"
	"pet-care-scheduler/internal/platform/metrics"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
)

const (
	// DefaultWindowDays es la ventana de materialización hacia adelante.
	DefaultWindowDays = 14

	// DefaultTimeOfDay aplica cuando el template no trae time_of_day
	// (o trae uno inválido). Documentado y testeado; no varía en silencio.
	DefaultTimeOfDay = "09:00"
)

// TemplateSource desacopla el materializador del paquete templates
// (lo satisface *templates.Service).
type TemplateSource interface {
	ListActiveByPet(ctx context.Context, petID string) ([]templates.CareTemplate, error)
	ListActive(ctx context.Context) ([]templates.CareTemplate, error)
}

// Materializer expande templates activos en CareEvents concretos dentro de
// una ventana rodante. Es idempotente: correrlo N veces no duplica eventos
// ni toca eventos que ya transicionaron fuera de upcoming. Eso lo hace
// seguro de reintentar desde cualquier caller (query pull o sweep periódico).
type Materializer struct {
	events    Repository
	templates TemplateSource
	log       logger.Logger
	metrics   *metrics.Metrics

	windowDays int
	now        func() time.Time
}

func NewMaterializer(repo Repository, src TemplateSource, log logger.Logger, m *metrics.Metrics) *Materializer {
	return &Materializer{
		events:     repo,
		templates:  src,
		log:        log,
		metrics:    m,
		windowDays: DefaultWindowDays,
		now:        time.Now,
	}
}

// EnsurePet materializa todos los templates activos de una mascota.
// Se llama pull-style antes de cada query de ventana.
func (m *Materializer) EnsurePet(ctx context.Context, petID string) error {
	tpls, err := m.templates.ListActiveByPet(ctx, petID)
	if err != nil {
		return err
	}

	total := 0
	for _, t := range tpls {
		n, err := m.materializeTemplate(ctx, t)
		if err != nil {
			return err
		}
		total += n
	}

	m.metrics.IncEventsMaterialized(total)
	return nil
}

// Sweep materializa todos los templates activos del sistema (job periódico).
// Comparte la garantía de idempotencia con EnsurePet, así que sobrevive
// reinicios sin guardas adicionales.
func (m *Materializer) Sweep(ctx context.Context) error {
	m.metrics.IncSweepRuns()

	tpls, err := m.templates.ListActive(ctx)
	if err != nil {
		return err
	}

	total := 0
	for _, t := range tpls {
		n, err := m.materializeTemplate(ctx, t)
		if err != nil {
			m.log.Error("sweep: fallo materializando template", map[string]any{
				"template_id": t.ID,
				"pet_id":      t.PetID,
				"err":         err.Error(),
			})
			continue
		}
		total += n
	}

	m.metrics.IncEventsMaterialized(total)
	m.log.Debug("sweep: completado", map[string]any{
		"templates": len(tpls),
		"inserted":  total,
	})
	return nil
}

func (m *Materializer) materializeTemplate(ctx context.Context, t templates.CareTemplate) (int, error) {
	period, err := templates.ParseCadence(t.Cadence)
	if err != nil {
		// Sin cadencia interpretable no hay qué expandir; el template queda
		// como definición ad-hoc hasta que producto confirme gramáticas más
		// ricas (open question en DESIGN.md).
		m.log.Warn("materializer: cadencia no soportada, se omite template", map[string]any{
			"template_id": t.ID,
			"cadence":     t.Cadence,
		})
		return 0, nil
	}

	now := m.now()
	hour, minute := parseTimeOfDay(t.TimeOfDay)

	// Primera ocurrencia: hoy a la hora del template; si ya pasó, el
	// siguiente borde de período (first + k*period).
	first := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	for first.Before(now) {
		first = first.AddDate(0, 0, period)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.DAILY,
		Interval: period,
		Dtstart:  first,
	})
	if err != nil {
		return 0, err
	}

	windowEnd := now.AddDate(0, 0, m.windowDays)
	inserted := 0

	for _, due := range rule.Between(now, windowEnd, true) {
		ok, err := m.events.UpsertMaterialized(ctx, CareEvent{
			ID:         uuid.NewString(),
			PetID:      t.PetID,
			TemplateID: t.ID,
			Title:      t.Title,
			DueAt:      due,
			Status:     StatusUpcoming,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}

	return inserted, nil
}

// parseTimeOfDay acepta "HH:MM" (o "HH:MM:SS"); cualquier otra cosa cae al
// default 09:00.
func parseTimeOfDay(s string) (hour, minute int) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), t.Minute()
		}
	}

	t, _ := time.Parse("15:04", DefaultTimeOfDay)
	return t.Hour(), t.Minute()
}
