package quote

// LineKind selects what InsertLine creates.
type LineKind string

const (
	KindPrimary    LineKind = "primary"
	KindSupporting LineKind = "supporting"
	KindNote       LineKind = "note"
)

// InsertLine appends a new line of the given kind to a price group.
// Supporting lines and notes reference the nearest preceding primary.
func InsertLine(q Quote, groupID string, kind LineKind) Quote {
	loc, ok := findGroup(q, groupID)
	if !ok {
		return q
	}

	var l LineItem
	switch kind {
	case KindPrimary:
		l = NewLine(RolePrimary)
	case KindSupporting:
		l = NewLine(RoleSupporting)
	case KindNote:
		l = NewNote()
	default:
		return q
	}

	out := q.Clone()
	pg := out.group(loc)
	attach(&l, pg.LineItems, len(pg.LineItems))
	pg.LineItems = append(pg.LineItems, l)
	relabel(pg)
	return out
}

// UpdateLine replaces the line with the same id. The replacement keeps its
// position; a line switched to primary drops its reference.
func UpdateLine(q Quote, line LineItem) Quote {
	loc, ok := findLine(q, line.ID)
	if !ok {
		return q
	}
	out := q.Clone()
	if line.IsPrimary() {
		line.PrimaryID = ""
	}
	pg := out.group(loc.groupLoc)
	pg.LineItems[loc.line] = line
	relabel(pg)
	detachDangling(&out)
	return out
}

// DeleteLine removes a line from its price group. Lines that referenced it
// become detached.
func DeleteLine(q Quote, lineID string) Quote {
	loc, ok := findLine(q, lineID)
	if !ok {
		return q
	}
	out := q.Clone()
	pg := out.group(loc.groupLoc)
	pg.LineItems, _ = removeAt(pg.LineItems, loc.line)
	relabel(pg)
	detachDangling(&out)
	return out
}

// MoveLine moves a line one slot up (dir < 0) or down (dir > 0). At a group
// boundary the line flows into the adjacent price group in document order:
// appended to the previous group when moving up, prepended to the next group
// when moving down. Moving past either end of the document is a no-op.
// A note that changes group re-attaches to the destination's preceding
// primary; supporting lines keep their reference.
func MoveLine(q Quote, lineID string, dir int) Quote {
	loc, ok := findLine(q, lineID)
	if !ok || dir == 0 {
		return q
	}

	order := groupOrder(q)
	pos := -1
	for i, g := range order {
		if g == loc.groupLoc {
			pos = i
			break
		}
	}
	if pos < 0 {
		return q
	}

	n := len(q.group(loc.groupLoc).LineItems)
	var target groupLoc
	atStart := false
	switch {
	case dir < 0 && loc.line > 0:
		return swapLines(q, loc, loc.line-1)
	case dir > 0 && loc.line < n-1:
		return swapLines(q, loc, loc.line+1)
	case dir < 0:
		if pos == 0 {
			return q
		}
		target = order[pos-1]
	default:
		if pos == len(order)-1 {
			return q
		}
		target = order[pos+1]
		atStart = true
	}

	out := q.Clone()
	src := out.group(loc.groupLoc)
	var moved LineItem
	src.LineItems, moved = removeAt(src.LineItems, loc.line)
	dst := out.group(target)
	idx := len(dst.LineItems)
	if atStart {
		idx = 0
	}
	if moved.IsNote {
		attach(&moved, dst.LineItems, idx)
	}
	dst.LineItems = insertAt(dst.LineItems, idx, moved)
	relabel(src)
	relabel(dst)
	return out
}

func swapLines(q Quote, loc lineLoc, other int) Quote {
	out := q.Clone()
	lines := out.group(loc.groupLoc).LineItems
	lines[loc.line], lines[other] = lines[other], lines[loc.line]
	return out
}

// MoveLineTo moves a line to index in the target price group. The index is
// read against the target list as it was before the line was removed, so a
// same-list move past the line's own slot is shifted down by one. The result
// is clamped to the list bounds. As with MoveLine, only notes re-attach when
// the line changes group.
func MoveLineTo(q Quote, lineID, groupID string, index int) Quote {
	src, ok := findLine(q, lineID)
	if !ok {
		return q
	}
	dstLoc, ok := findGroup(q, groupID)
	if !ok {
		return q
	}

	out := q.Clone()
	srcGroup := out.group(src.groupLoc)
	var moved LineItem
	srcGroup.LineItems, moved = removeAt(srcGroup.LineItems, src.line)

	sameGroup := src.groupLoc == dstLoc
	if sameGroup && src.line < index {
		index--
	}
	dst := out.group(dstLoc)
	index = clamp(index, 0, len(dst.LineItems))
	if !sameGroup && moved.IsNote {
		attach(&moved, dst.LineItems, index)
	}
	dst.LineItems = insertAt(dst.LineItems, index, moved)
	relabel(srcGroup)
	if !sameGroup {
		relabel(dst)
	}
	return out
}

// AppendLines adds imported lines to the end of a price group. Each line gets
// a fresh id; supporting lines and notes attach to the nearest preceding
// primary, which may be one of the imported lines.
func AppendLines(q Quote, groupID string, lines []LineItem) Quote {
	loc, ok := findGroup(q, groupID)
	if !ok || len(lines) == 0 {
		return q
	}

	out := q.Clone()
	pg := out.group(loc)
	for _, l := range lines {
		l.ID = NewID()
		attach(&l, pg.LineItems, len(pg.LineItems))
		pg.LineItems = append(pg.LineItems, l)
	}
	relabel(pg)
	return out
}
