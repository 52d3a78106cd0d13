package pets

import "time"

// Pet representa el perfil mínimo de una mascota registrada.
// El core de cuidado solo necesita el vínculo pet -> owner; el resto
// del perfil vive aquí para que el registro sea usable en dev/tests.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species string
	Breed   string
	Notes   string

	CreatedAt time.Time
	UpdatedAt time.Time
}
