package quote

import "strings"

// fallbackGroupName replaces the equipment list once a group holds five or
// more distinct primary equipment names.
const fallbackGroupName = "Equipment Package Below"

// AutoName derives a price group title from its primary line equipment.
func AutoName(lines []LineItem) string {
	seen := make(map[string]bool)
	var names []string
	for _, l := range lines {
		if !l.IsPrimary() {
			continue
		}
		name := strings.TrimSpace(l.Equipment)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	switch n := len(names); {
	case n == 0:
		return DefaultGroupName
	case n == 1:
		return names[0]
	case n == 2:
		return names[0] + " and " + names[1]
	case n <= 4:
		return strings.Join(names[:n-1], ", ") + ", and " + names[n-1]
	default:
		return fallbackGroupName
	}
}

// relabel recomputes the group name unless the user has locked it.
func relabel(pg *PriceGroup) {
	if pg.NameLocked {
		return
	}
	pg.Name = AutoName(pg.LineItems)
}
