// Package capability models storage engine facts and the registration-time
// gate that hides schema elements an engine cannot serve.
package capability

import (
	"fmt"
	"strings"
)

// Generation identifies a full-text search extension generation.
type Generation int

// Generation values.
const (
	Gen3 Generation = iota + 3
	Gen4
	Gen5
)

// Generations lists every known generation in ascending order.
func Generations() []Generation {
	return []Generation{Gen3, Gen4, Gen5}
}

// String returns the module name, e.g. "fts5".
func (g Generation) String() string {
	switch g {
	case Gen3:
		return "fts3"
	case Gen4:
		return "fts4"
	case Gen5:
		return "fts5"
	default:
		return fmt.Sprintf("fts%d", int(g))
	}
}

// Valid reports whether g is one of the known generations.
func (g Generation) Valid() bool {
	return g >= Gen3 && g <= Gen5
}

// ParseGeneration parses "fts3", "FTS4", "5" and similar forms.
func ParseGeneration(s string) (Generation, error) {
	v := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "fts")
	switch v {
	case "3":
		return Gen3, nil
	case "4":
		return Gen4, nil
	case "5":
		return Gen5, nil
	default:
		return 0, fmt.Errorf("unknown fts generation %q", s)
	}
}
