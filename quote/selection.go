package quote

import "slices"

// SelectionType is the entity kind a multi-select holds.
type SelectionType string

const (
	SelectLine       SelectionType = "line"
	SelectNote       SelectionType = "note"
	SelectPriceGroup SelectionType = "priceGroup"
	SelectPackage    SelectionType = "package"
	SelectAddDeduct  SelectionType = "addDeduct"
	SelectADLine     SelectionType = "adLine"
)

// SelectionTypes lists every selectable entity kind.
var SelectionTypes = []SelectionType{
	SelectLine, SelectNote, SelectPriceGroup, SelectPackage, SelectAddDeduct, SelectADLine,
}

// Valid reports whether t is a known selection type.
func (t SelectionType) Valid() bool {
	return slices.Contains(SelectionTypes, t)
}

// Selection is a type-homogeneous multi-select. The zero value is the empty
// selection. Methods return a new value and never modify the receiver.
type Selection struct {
	Type SelectionType `json:"type"`
	IDs  []string      `json:"ids"`
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return len(s.IDs) == 0
}

// Toggle adds or removes id. While a selection of another type is active the
// call is a no-op. Removing the last id returns to the empty selection.
func (s Selection) Toggle(t SelectionType, id string) Selection {
	if !t.Valid() || id == "" {
		return s
	}
	if !s.Empty() && s.Type != t {
		return s
	}

	if i := slices.Index(s.IDs, id); i >= 0 {
		ids := slices.Delete(slices.Clone(s.IDs), i, i+1)
		if len(ids) == 0 {
			return Selection{}
		}
		return Selection{Type: t, IDs: ids}
	}
	return Selection{Type: t, IDs: append(slices.Clone(s.IDs), id)}
}

// Clear returns the empty selection.
func (s Selection) Clear() Selection {
	return Selection{}
}

// IsSelected reports whether id is part of the selection.
func (s Selection) IsSelected(id string) bool {
	return slices.Contains(s.IDs, id)
}

// IsDisabled reports whether entities of type t cannot currently be selected.
func (s Selection) IsDisabled(t SelectionType) bool {
	return !s.Empty() && s.Type != t
}

// DeleteSelection removes every selected entity. Deleted packages re-home
// their price groups the same way DeletePackages does.
func DeleteSelection(q Quote, sel Selection) Quote {
	if sel.Empty() {
		return q
	}
	drop := make(map[string]bool, len(sel.IDs))
	for _, id := range sel.IDs {
		drop[id] = true
	}

	switch sel.Type {
	case SelectPackage:
		return DeletePackages(q, sel.IDs...)
	case SelectPriceGroup:
		out := q.Clone()
		for pi := range out.Packages {
			p := &out.Packages[pi]
			p.PriceGroups = slices.DeleteFunc(p.PriceGroups, func(pg PriceGroup) bool { return drop[pg.ID] })
		}
		detachDangling(&out)
		return out
	case SelectLine, SelectNote:
		out := q.Clone()
		eachGroup(&out, func(pg *PriceGroup) {
			n := len(pg.LineItems)
			pg.LineItems = slices.DeleteFunc(pg.LineItems, func(l LineItem) bool { return drop[l.ID] })
			if len(pg.LineItems) != n {
				relabel(pg)
			}
		})
		detachDangling(&out)
		return out
	case SelectAddDeduct:
		out := q.Clone()
		eachGroup(&out, func(pg *PriceGroup) {
			pg.AddDeducts = slices.DeleteFunc(pg.AddDeducts, func(ad AddDeduct) bool { return drop[ad.ID] })
		})
		return out
	case SelectADLine:
		out := q.Clone()
		eachGroup(&out, func(pg *PriceGroup) {
			for ai := range pg.AddDeducts {
				ad := &pg.AddDeducts[ai]
				ad.LineItems = slices.DeleteFunc(ad.LineItems, func(l LineItem) bool { return drop[l.ID] })
			}
		})
		return out
	}
	return q
}

func eachGroup(q *Quote, fn func(pg *PriceGroup)) {
	for pi := range q.Packages {
		for gi := range q.Packages[pi].PriceGroups {
			fn(&q.Packages[pi].PriceGroups[gi])
		}
	}
}
