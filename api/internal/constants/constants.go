// Package constants holds the static table of physical constants the physics
// tutor resolves model-suggested names against.
package constants

import (
	"sort"
	"strconv"
	"strings"
)

// Entry is a single physical constant. Value is kept as text so that it
// crosses JSON boundaries without float formatting drift.
type Entry struct {
	Value       string `json:"value"`
	Unit        string `json:"unit"`
	Description string `json:"description"`
}

// Float parses Value.
func (e Entry) Float() (float64, error) {
	return strconv.ParseFloat(e.Value, 64)
}

// Table is read-only after construction and safe for concurrent use.
type Table struct {
	entries map[string]Entry
}

// Default is the process-wide table.
var Default = New()

func New() *Table {
	return &Table{entries: map[string]Entry{
		"speed_of_light": {
			Value:       "299792458.0",
			Unit:        "m/s",
			Description: "Speed of light in vacuum",
		},
		"gravitational_constant": {
			Value:       "6.6743e-11",
			Unit:        "m³/kg/s²",
			Description: "Newtonian constant of gravitation",
		},
		"planck_constant": {
			Value:       "6.62607015e-34",
			Unit:        "J⋅s",
			Description: "Planck constant",
		},
		"electron_mass": {
			Value:       "9.1093837015e-31",
			Unit:        "kg",
			Description: "Electron mass",
		},
		"proton_mass": {
			Value:       "1.67262192369e-27",
			Unit:        "kg",
			Description: "Proton mass",
		},
		"avogadro_number": {
			Value:       "6.02214076e+23",
			Unit:        "mol⁻¹",
			Description: "Avogadro constant",
		},
		"boltzmann_constant": {
			Value:       "1.380649e-23",
			Unit:        "J/K",
			Description: "Boltzmann constant",
		},
	}}
}

// NormalizeName lowercases name and replaces spaces with underscores.
// Other whitespace and punctuation are left as is.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// Lookup resolves name after NormalizeName. Unknown names report false.
func (t *Table) Lookup(name string) (Entry, bool) {
	e, ok := t.entries[NormalizeName(name)]
	return e, ok
}

// All returns a copy of every entry keyed by canonical name.
func (t *Table) All() map[string]Entry {
	out := make(map[string]Entry, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}

// Names returns the canonical names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for k := range t.entries {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
