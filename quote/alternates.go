package quote

// adLoc addresses an add/deduct alternate.
type adLoc struct {
	groupLoc
	ad int
}

func findAddDeduct(q Quote, adID string) (adLoc, bool) {
	if adID == "" {
		return adLoc{}, false
	}
	for pi, p := range q.Packages {
		for gi, pg := range p.PriceGroups {
			for ai, ad := range pg.AddDeducts {
				if ad.ID == adID {
					return adLoc{groupLoc: groupLoc{pkg: pi, group: gi}, ad: ai}, true
				}
			}
		}
	}
	return adLoc{}, false
}

func findAddDeductLine(q Quote, lineID string) (adLoc, int, bool) {
	if lineID == "" {
		return adLoc{}, -1, false
	}
	for pi, p := range q.Packages {
		for gi, pg := range p.PriceGroups {
			for ai, ad := range pg.AddDeducts {
				for li, l := range ad.LineItems {
					if l.ID == lineID {
						return adLoc{groupLoc: groupLoc{pkg: pi, group: gi}, ad: ai}, li, true
					}
				}
			}
		}
	}
	return adLoc{}, -1, false
}

func (q *Quote) addDeduct(loc adLoc) *AddDeduct {
	return &q.group(loc.groupLoc).AddDeducts[loc.ad]
}

// AddAddDeduct attaches a new alternate with one blank line to a price group.
func AddAddDeduct(q Quote, groupID string, t AlternateType) Quote {
	if t != AlternateAdd && t != AlternateDeduct {
		return q
	}
	loc, ok := findGroup(q, groupID)
	if !ok {
		return q
	}
	out := q.Clone()
	pg := out.group(loc)
	pg.AddDeducts = append(pg.AddDeducts, NewAddDeduct(t))
	return out
}

// ToggleAddDeductType flips an alternate between ADD and DEDUCT.
func ToggleAddDeductType(q Quote, adID string) Quote {
	loc, ok := findAddDeduct(q, adID)
	if !ok {
		return q
	}
	out := q.Clone()
	ad := out.addDeduct(loc)
	if ad.Type == AlternateDeduct {
		ad.Type = AlternateAdd
	} else {
		ad.Type = AlternateDeduct
	}
	return out
}

// DescribeAddDeduct sets the description printed for an alternate.
func DescribeAddDeduct(q Quote, adID, description string) Quote {
	loc, ok := findAddDeduct(q, adID)
	if !ok {
		return q
	}
	out := q.Clone()
	out.addDeduct(loc).Description = description
	return out
}

// DeleteAddDeduct removes an alternate and its lines.
func DeleteAddDeduct(q Quote, adID string) Quote {
	loc, ok := findAddDeduct(q, adID)
	if !ok {
		return q
	}
	out := q.Clone()
	pg := out.group(loc.groupLoc)
	pg.AddDeducts, _ = removeAt(pg.AddDeducts, loc.ad)
	return out
}

// AddAddDeductLine appends a blank supporting line to an alternate.
func AddAddDeductLine(q Quote, adID string) Quote {
	loc, ok := findAddDeduct(q, adID)
	if !ok {
		return q
	}
	out := q.Clone()
	ad := out.addDeduct(loc)
	ad.LineItems = append(ad.LineItems, NewLine(RoleSupporting))
	return out
}

// UpdateAddDeductLine replaces an alternate line by id. Alternate lines are
// always priced supporting lines.
func UpdateAddDeductLine(q Quote, line LineItem) Quote {
	loc, li, ok := findAddDeductLine(q, line.ID)
	if !ok {
		return q
	}
	line.Role = RoleSupporting
	line.PrimaryID = ""
	line.IsNote = false
	line.NoteText = ""
	out := q.Clone()
	out.addDeduct(loc).LineItems[li] = line
	return out
}

// DeleteAddDeductLine removes a line from its alternate.
func DeleteAddDeductLine(q Quote, lineID string) Quote {
	loc, li, ok := findAddDeductLine(q, lineID)
	if !ok {
		return q
	}
	out := q.Clone()
	ad := out.addDeduct(loc)
	ad.LineItems, _ = removeAt(ad.LineItems, li)
	return out
}
