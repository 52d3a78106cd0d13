package events

import "time"

// CareEvent es una ocurrencia concreta de cuidado, materializada desde un
// template o creada ad hoc (TemplateID vacío). Nunca se borra: solo
// transiciona de status vía el lifecycle manager.
type CareEvent struct {
	ID         string
	PetID      string
	TemplateID string // vacío => evento ad hoc

	Title string
	DueAt time.Time

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveStatus deriva "overdue" en lectura: un evento almacenado como
// upcoming con due_at en el pasado se reporta overdue sin necesidad de un
// job que persista el cambio.
func (e CareEvent) EffectiveStatus(now time.Time) Status {
	if e.Status == StatusUpcoming && e.DueAt.Before(now) {
		return StatusOverdue
	}
	return e.Status
}
