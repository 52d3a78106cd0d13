package logs

import "time"

// LogType: los tipos de cuidado más weight/note para historial libre.
type LogType string

const (
	LogTypeFeeding     LogType = "feeding"
	LogTypeMedication  LogType = "medication"
	LogTypeGrooming    LogType = "grooming"
	LogTypeVaccination LogType = "vaccination"
	LogTypeDeworming   LogType = "deworming"
	LogTypeFleaTick    LogType = "flea_tick"
	LogTypeExercise    LogType = "exercise"
	LogTypeBath        LogType = "bath"
	LogTypeWeight      LogType = "weight"
	LogTypeNote        LogType = "note"
)

// CareLog es una entrada inmutable del historial de cuidado realizado.
// Append-only: no existe update ni delete en ningún nivel del diseño.
// Independiente de CareEvent (puede registrarse cuidado sin evento previo).
type CareLog struct {
	ID    string
	PetID string

	Type  LogType
	Title string
	Value string // medición libre, ej "28.5 kg"
	Notes string

	OccurredAt time.Time
	CreatedAt  time.Time
}
