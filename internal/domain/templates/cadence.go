package templates

import (
	"errors"
	"strconv"
	"strings"
)

var ErrBadCadence = errors.New("unsupported cadence")

// ParseCadence resuelve la cadencia a un período fijo en días calendario.
// Gramática soportada (ver open question en DESIGN.md antes de extender):
//   - "daily" / "every day"  => 1
//   - "weekly"               => 7
//   - "every N days"         => N
func ParseCadence(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return 0, ErrBadCadence
	case "daily", "every day":
		return 1, nil
	case "weekly":
		return 7, nil
	}

	fields := strings.Fields(s)
	if len(fields) == 3 && fields[0] == "every" && (fields[2] == "days" || fields[2] == "day") {
		n, err := strconv.Atoi(fields[1])
		if err != nil || n <= 0 {
			return 0, ErrBadCadence
		}
		return n, nil
	}

	return 0, ErrBadCadence
}
