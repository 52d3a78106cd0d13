package templates

import "time"

// CareTemplate define un cuidado recurrente ("medicación todos los días a las 9:00").
// Desactivar (Active=false) frena la generación futura de eventos; nunca
// altera retroactivamente los eventos ya materializados.
type CareTemplate struct {
	ID    string
	PetID string

	Type  CareType
	Title string

	Cadence   string // "daily", "every 3 days", "weekly"
	TimeOfDay string // "HH:MM"; vacío => default del materializador

	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
