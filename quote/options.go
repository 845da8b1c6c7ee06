package quote

import (
	"slices"
	"strings"
)

// DefaultManufacturers seeds the manufacturer suggestions.
var DefaultManufacturers = []string{
	"Aaon", "Titus", "Ruskin", "Cook", "Greenheck", "Nailor", "Price",
	"Vibro-Acoustics", "CDI - Curbs", "Check Test Startup", "Indeeco", "Carnes",
	"Metalaire", "PennBarry", "Temtrol", "Trane", "Daikin", "Carrier", "York", "Lennox",
}

// DefaultEquipment seeds the equipment suggestions.
var DefaultEquipment = []string{
	"Rooftop Units", "DOAS", "MAU", "Curbs", "Fans", "Sound Attenuators", "VAVs",
	"GRDs", "Electric Heaters", "Life Safety Dampers", "Humidifiers",
	"Energy Recovery Units", "Air Terminals", "Unit Heaters", "Louvers", "Controls",
	"Coils", "Terminal Boxes", "Dampers", "Misc",
}

// Options are the suggestion lists offered while editing lines.
type Options struct {
	Manufacturers []string `json:"manufacturers"`
	Equipment     []string `json:"equipment"`
}

// SuggestOptions merges the defaults with every manufacturer and equipment
// value used on non-note lines, alternates included. Lists are sorted
// case-insensitively.
func SuggestOptions(q Quote) Options {
	mfr := make(map[string]bool)
	equip := make(map[string]bool)
	for _, v := range DefaultManufacturers {
		mfr[v] = true
	}
	for _, v := range DefaultEquipment {
		equip[v] = true
	}

	add := func(l LineItem) {
		if l.IsNote {
			return
		}
		if v := strings.TrimSpace(l.Manufacturer); v != "" {
			mfr[v] = true
		}
		if v := strings.TrimSpace(l.Equipment); v != "" && v != NoteEquipment {
			equip[v] = true
		}
	}
	for _, p := range q.Packages {
		for _, pg := range p.PriceGroups {
			for _, l := range pg.LineItems {
				add(l)
			}
			for _, ad := range pg.AddDeducts {
				for _, l := range ad.LineItems {
					add(l)
				}
			}
		}
	}
	return Options{Manufacturers: sortedKeys(mfr), Equipment: sortedKeys(equip)}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.SortFunc(out, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}
