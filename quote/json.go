package quote

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseAmount reads a user-typed currency or number. Everything except digits,
// '.' and '-' is dropped, so "$1,250.50" parses as 1250.5. Input that still
// fails to parse yields 0.
func ParseAmount(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	switch cleaned {
	case "", "-", ".", "-.":
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// flexNumber decodes a JSON number, a numeric string, or anything else as 0.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*n = 0
	switch {
	case len(b) == 0:
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*n = flexNumber(ParseAmount(s))
		}
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		f, err := strconv.ParseFloat(string(b), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			*n = flexNumber(f)
		}
	}
	return nil
}

// UnmarshalJSON accepts numeric fields as numbers or numeric strings and
// normalises anything else to 0. An unknown role decodes as primary.
func (l *LineItem) UnmarshalJSON(b []byte) error {
	type plain LineItem
	var raw struct {
		plain
		Qty      flexNumber `json:"qty"`
		List     flexNumber `json:"list"`
		DollarUp flexNumber `json:"dollarUp"`
		Multi    flexNumber `json:"multi"`
		Pay      flexNumber `json:"pay"`
		Freight  flexNumber `json:"freight"`
		MU       flexNumber `json:"mu"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*l = LineItem(raw.plain)
	l.Qty = int(math.Round(float64(raw.Qty)))
	l.List = float64(raw.List)
	l.DollarUp = float64(raw.DollarUp)
	l.Multi = float64(raw.Multi)
	l.Pay = float64(raw.Pay)
	l.Freight = float64(raw.Freight)
	l.MU = float64(raw.MU)
	if l.Role != RolePrimary && l.Role != RoleSupporting {
		l.Role = RolePrimary
	}
	if l.IsPrimary() {
		l.PrimaryID = ""
	}
	return nil
}

// legacyLine is the part of an old draft line needed to resolve its groupId
// token into a primary reference.
type legacyLine struct {
	ID      string `json:"id"`
	GroupID string `json:"groupId"`
}

// UnmarshalJSON decodes a price group and upgrades drafts written with shared
// groupId tokens: a supporting line or note without a primaryId is attached
// to the nearest preceding primary of the same group holding the same token,
// or failing that to any primary of the group holding it. Alternate lines are
// normalised to plain supporting lines.
func (pg *PriceGroup) UnmarshalJSON(b []byte) error {
	type plain PriceGroup
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var legacy struct {
		LineItems []legacyLine `json:"lineItems"`
	}
	if err := json.Unmarshal(b, &legacy); err != nil {
		return err
	}

	*pg = PriceGroup(p)
	if pg.LineItems == nil {
		pg.LineItems = []LineItem{}
	}
	if pg.AddDeducts == nil {
		pg.AddDeducts = []AddDeduct{}
	}
	if len(legacy.LineItems) == len(pg.LineItems) {
		resolveLegacyRefs(pg.LineItems, legacy.LineItems)
	}

	for ai := range pg.AddDeducts {
		ad := &pg.AddDeducts[ai]
		if ad.Type != AlternateDeduct {
			ad.Type = AlternateAdd
		}
		if ad.LineItems == nil {
			ad.LineItems = []LineItem{}
		}
		for li := range ad.LineItems {
			l := &ad.LineItems[li]
			l.Role = RoleSupporting
			l.PrimaryID = ""
			l.IsNote = false
			l.NoteText = ""
		}
	}
	return nil
}

func resolveLegacyRefs(lines []LineItem, legacy []legacyLine) {
	for i := range lines {
		l := &lines[i]
		token := legacy[i].GroupID
		if l.IsPrimary() || l.PrimaryID != "" || token == "" {
			continue
		}
		l.PrimaryID = legacyPrimary(lines, legacy, i, token)
	}
}

func legacyPrimary(lines []LineItem, legacy []legacyLine, idx int, token string) string {
	for i := idx - 1; i >= 0; i-- {
		if lines[i].IsPrimary() && legacy[i].GroupID == token {
			return lines[i].ID
		}
	}
	for i := idx + 1; i < len(lines); i++ {
		if lines[i].IsPrimary() && legacy[i].GroupID == token {
			return lines[i].ID
		}
	}
	return ""
}

// UnmarshalJSON decodes a package, treating a missing group list as empty.
func (p *Package) UnmarshalJSON(b []byte) error {
	type plain Package
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Package(v)
	if p.PriceGroups == nil {
		p.PriceGroups = []PriceGroup{}
	}
	return nil
}
