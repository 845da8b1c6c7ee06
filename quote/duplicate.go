package quote

// Duplicate inserts a copy right after each selected line, note or price
// group. Copies get fresh ids. A copied line keeps its primary reference; a
// copied price group gets fresh ids for every nested line and alternate, and
// references inside it are remapped to the copied primaries. Other selection
// types are a no-op.
func Duplicate(q Quote, sel Selection) Quote {
	if sel.Empty() {
		return q
	}
	pick := make(map[string]bool, len(sel.IDs))
	for _, id := range sel.IDs {
		pick[id] = true
	}

	switch sel.Type {
	case SelectLine, SelectNote:
		out := q.Clone()
		eachGroup(&out, func(pg *PriceGroup) {
			lines := make([]LineItem, 0, len(pg.LineItems))
			for _, l := range pg.LineItems {
				lines = append(lines, l)
				if pick[l.ID] {
					c := l
					c.ID = NewID()
					lines = append(lines, c)
				}
			}
			if len(lines) != len(pg.LineItems) {
				pg.LineItems = lines
				relabel(pg)
			}
		})
		return out
	case SelectPriceGroup:
		out := q.Clone()
		for pi := range out.Packages {
			p := &out.Packages[pi]
			groups := make([]PriceGroup, 0, len(p.PriceGroups))
			for _, pg := range p.PriceGroups {
				groups = append(groups, pg)
				if pick[pg.ID] {
					groups = append(groups, cloneGroup(pg))
				}
			}
			p.PriceGroups = groups
		}
		return out
	}
	return q
}

// cloneGroup copies a price group with fresh ids throughout. The input must
// already be a private copy.
func cloneGroup(pg PriceGroup) PriceGroup {
	remap := make(map[string]string, len(pg.LineItems))
	c := pg
	c.ID = NewID()

	c.LineItems = make([]LineItem, len(pg.LineItems))
	for i, l := range pg.LineItems {
		id := NewID()
		remap[l.ID] = id
		l.ID = id
		c.LineItems[i] = l
	}
	for i := range c.LineItems {
		if ref, ok := remap[c.LineItems[i].PrimaryID]; ok {
			c.LineItems[i].PrimaryID = ref
		}
	}

	c.AddDeducts = make([]AddDeduct, len(pg.AddDeducts))
	for i, ad := range pg.AddDeducts {
		ad.ID = NewID()
		lines := make([]LineItem, len(ad.LineItems))
		for j, l := range ad.LineItems {
			l.ID = NewID()
			lines[j] = l
		}
		ad.LineItems = lines
		c.AddDeducts[i] = ad
	}
	return c
}
