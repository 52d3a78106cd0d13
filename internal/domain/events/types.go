package events

type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusDone     Status = "done"
	StatusSkipped  Status = "skipped"
	StatusOverdue  Status = "overdue"
)

// ClientSettable: "overdue" es derivado, nunca lo setea un cliente.
func ClientSettable(s Status) bool {
	switch s {
	case StatusDone, StatusSkipped, StatusUpcoming:
		return true
	default:
		return false
	}
}

func Terminal(s Status) bool {
	return s == StatusDone || s == StatusSkipped
}

// CanTransition valida la máquina de estados sobre el status efectivo:
//
//	upcoming -> done | skipped | upcoming (no-op)
//	overdue  -> done | skipped
//	done / skipped -> (terminal)
func CanTransition(from, to Status) bool {
	if Terminal(from) {
		return false
	}
	switch from {
	case StatusUpcoming:
		return to == StatusDone || to == StatusSkipped || to == StatusUpcoming
	case StatusOverdue:
		return to == StatusDone || to == StatusSkipped
	default:
		return false
	}
}
