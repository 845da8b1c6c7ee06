package quote

import "testing"

func TestInsertLine(t *testing.T) {
	tests := []struct {
		name        string
		groupID     string
		kind        LineKind
		wantPrimary string
		wantNote    bool
	}{
		{"supporting attaches to nearest preceding primary", "g1", KindSupporting, "c", false},
		{"note attaches to nearest preceding primary", "g2", KindNote, "d", true},
		{"primary carries no reference", "g3", KindPrimary, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seqIDs(t)
			q := fixture()
			got := InsertLine(q, tt.groupID, tt.kind)

			lines := mustGroup(t, got, tt.groupID).LineItems
			added := lines[len(lines)-1]
			if added.ID != "id-1" {
				t.Fatalf("appended line id = %q, want id-1", added.ID)
			}
			if added.PrimaryID != tt.wantPrimary {
				t.Errorf("PrimaryID = %q, want %q", added.PrimaryID, tt.wantPrimary)
			}
			if added.IsNote != tt.wantNote {
				t.Errorf("IsNote = %v, want %v", added.IsNote, tt.wantNote)
			}
			if tt.wantNote && added.Equipment != NoteEquipment {
				t.Errorf("note equipment = %q, want %q", added.Equipment, NoteEquipment)
			}
			if added.Qty != DefaultQty || added.Multi != DefaultMulti || added.MU != DefaultMarkup {
				t.Errorf("defaults not applied: %+v", added)
			}
			assertValid(t, got)
			assertSame(t, q, fixture())
		})
	}
}

func TestInsertLine_EmptyGroupStaysDetached(t *testing.T) {
	seqIDs(t)
	q := AddGroup(fixture(), "p3") // group id-1
	got := InsertLine(q, "id-1", KindSupporting)

	l := mustGroup(t, got, "id-1").LineItems[0]
	if l.PrimaryID != "" {
		t.Errorf("PrimaryID = %q, want detached", l.PrimaryID)
	}
	if l.GroupKey() != l.ID {
		t.Errorf("GroupKey() = %q, want own id %q", l.GroupKey(), l.ID)
	}
}

func TestInsertLine_NoOps(t *testing.T) {
	q := fixture()
	assertSame(t, InsertLine(q, "missing", KindPrimary), q)
	assertSame(t, InsertLine(q, "g1", LineKind("bogus")), q)
}

func TestDeleteLine(t *testing.T) {
	q := fixture()

	got := DeleteLine(q, "a")
	assertIDs(t, "g1 lines", lineIDs(t, got, "g1"), []string{"b", "c"})
	if name := mustGroup(t, got, "g1").Name; name != "Dampers" {
		t.Errorf("g1 name = %q, want Dampers", name)
	}
	if ref := mustLine(t, got, "b").PrimaryID; ref != "" {
		t.Errorf("b.PrimaryID = %q, want detached after primary deleted", ref)
	}
	assertValid(t, got)

	got = DeleteLine(q, "e")
	if ref := mustLine(t, got, "n").PrimaryID; ref != "" {
		t.Errorf("n.PrimaryID = %q, want detached", ref)
	}

	assertSame(t, DeleteLine(q, "missing"), q)
	assertSame(t, q, fixture())
}

func TestUpdateLine(t *testing.T) {
	q := fixture()

	a := mustLine(t, q, "a")
	a.Equipment = "Exhaust Fans"
	got := UpdateLine(q, a)
	if name := mustGroup(t, got, "g1").Name; name != "Exhaust Fans and Dampers" {
		t.Errorf("g1 name = %q, want %q", name, "Exhaust Fans and Dampers")
	}

	a.Role = RoleSupporting
	got = UpdateLine(q, a)
	if name := mustGroup(t, got, "g1").Name; name != "Dampers" {
		t.Errorf("g1 name = %q, want Dampers", name)
	}
	if ref := mustLine(t, got, "b").PrimaryID; ref != "" {
		t.Errorf("b.PrimaryID = %q, want detached once a is no longer primary", ref)
	}
	assertValid(t, got)

	d := mustLine(t, q, "d")
	d.PrimaryID = "a"
	got = UpdateLine(q, d)
	if ref := mustLine(t, got, "d").PrimaryID; ref != "" {
		t.Errorf("primary d.PrimaryID = %q, want empty", ref)
	}

	assertSame(t, UpdateLine(q, testLine("missing", RolePrimary, "X", "")), q)
	assertSame(t, q, fixture())
}

func TestMoveLine_WithinGroup(t *testing.T) {
	q := fixture()

	got := MoveLine(q, "b", -1)
	assertIDs(t, "g1 lines", lineIDs(t, got, "g1"), []string{"b", "a", "c"})
	if ref := mustLine(t, got, "b").PrimaryID; ref != "a" {
		t.Errorf("b.PrimaryID = %q, want a kept on in-group swap", ref)
	}

	got = MoveLine(q, "b", 1)
	assertIDs(t, "g1 lines", lineIDs(t, got, "g1"), []string{"a", "c", "b"})
	assertSame(t, q, fixture())
}

func TestMoveLine_AcrossGroups(t *testing.T) {
	tests := []struct {
		name    string
		lineID  string
		dir     int
		groups  map[string][]string
		names   map[string]string
		primary map[string]string
		setup   func(Quote) Quote
	}{
		{
			name:   "up from first slot appends to previous group",
			lineID: "d", dir: -1,
			groups: map[string][]string{"g1": {"a", "b", "c", "d"}, "g2": {}},
			names:  map[string]string{"g1": "Fans, Dampers, and VAVs", "g2": "New Price Group"},
		},
		{
			name:   "down from last slot prepends to next group",
			lineID: "c", dir: 1,
			groups: map[string][]string{"g1": {"a", "b"}, "g2": {"c", "d"}},
			names:  map[string]string{"g1": "Fans", "g2": "Dampers and VAVs"},
		},
		{
			name:   "flows across package boundary",
			lineID: "e", dir: -1,
			groups: map[string][]string{"g2": {"d", "e"}, "g3": {"n"}},
			names:  map[string]string{"g2": "VAVs and GRDs", "g3": "New Price Group"},
		},
		{
			name:    "supporting line flowing down keeps its primary",
			setup:   func(q Quote) Quote { return MoveLine(q, "b", 1) },
			lineID:  "b", dir: 1,
			groups:  map[string][]string{"g1": {"a", "c"}, "g2": {"b", "d"}},
			primary: map[string]string{"b": "a"},
		},
		{
			name:    "supporting line keeps its reference on an in-group swap",
			lineID:  "b", dir: 1,
			groups:  map[string][]string{"g1": {"a", "c", "b"}},
			primary: map[string]string{"b": "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := fixture()
			if tt.setup != nil {
				q = tt.setup(q)
			}
			before := q.Clone()
			got := MoveLine(q, tt.lineID, tt.dir)
			for g, want := range tt.groups {
				assertIDs(t, g+" lines", lineIDs(t, got, g), want)
			}
			for g, want := range tt.names {
				if name := mustGroup(t, got, g).Name; name != want {
					t.Errorf("%s name = %q, want %q", g, name, want)
				}
			}
			for id, want := range tt.primary {
				if ref := mustLine(t, got, id).PrimaryID; ref != want {
					t.Errorf("%s.PrimaryID = %q, want %q", id, ref, want)
				}
			}
			assertIDs(t, "all lines", allLineIDs(got), allLineIDs(q))
			assertValid(t, got)
			assertSame(t, q, before)
		})
	}
}

func TestMoveLine_SupportingKeepsPrimaryAcrossGroups(t *testing.T) {
	q := fixture()

	got := MoveLine(q, "b", 1) // swap within g1
	got = MoveLine(got, "b", 1)
	assertIDs(t, "g2 lines", lineIDs(t, got, "g2"), []string{"b", "d"})
	if ref := mustLine(t, got, "b").PrimaryID; ref != "a" {
		t.Errorf("after flowing into g2: b.PrimaryID = %q, want a", ref)
	}

	got = MoveLineTo(got, "b", "g3", 2)
	assertIDs(t, "g3 lines", lineIDs(t, got, "g3"), []string{"e", "n", "b"})
	if ref := mustLine(t, got, "b").PrimaryID; ref != "a" {
		t.Errorf("after MoveLineTo g3: b.PrimaryID = %q, want a", ref)
	}
	assertValid(t, got)
}

func TestMoveLine_NoteReattachesAcrossGroups(t *testing.T) {
	q := fixture()

	got := MoveLine(q, "n", -1) // swap within g3
	assertIDs(t, "g3 lines", lineIDs(t, got, "g3"), []string{"n", "e"})

	got = MoveLine(got, "n", -1) // flows into g2 after d
	assertIDs(t, "g2 lines", lineIDs(t, got, "g2"), []string{"d", "n"})
	if ref := mustLine(t, got, "n").PrimaryID; ref != "d" {
		t.Errorf("n.PrimaryID = %q, want d", ref)
	}
	assertValid(t, got)
}

func TestMoveLine_DocumentBoundariesAreNoOps(t *testing.T) {
	q := fixture()
	assertSame(t, MoveLine(q, "a", -1), q)
	// p3 has no groups, so g3 is the last group in document order.
	assertSame(t, MoveLine(q, "n", 1), q)
	assertSame(t, MoveLine(q, "a", 0), q)
	assertSame(t, MoveLine(q, "missing", 1), q)
}

func TestMoveLine_ConservesLines(t *testing.T) {
	q := fixture()
	want := allLineIDs(q)
	steps := []struct {
		id  string
		dir int
	}{
		{"a", 1}, {"a", 1}, {"a", 1}, {"a", 1}, {"a", 1}, {"a", 1},
		{"n", -1}, {"n", -1}, {"n", -1}, {"d", -1}, {"c", 1},
	}
	for _, s := range steps {
		q = MoveLine(q, s.id, s.dir)
		assertIDs(t, "all lines", allLineIDs(q), want)
		assertValid(t, q)
	}
	if q.CountLines() != len(want) {
		t.Errorf("CountLines() = %d, want %d", q.CountLines(), len(want))
	}
}

func TestMoveLineTo(t *testing.T) {
	tests := []struct {
		name    string
		lineID  string
		groupID string
		index   int
		groups  map[string][]string
		primary map[string]string
	}{
		{"same group forward shifts for removal", "a", "g1", 2, map[string][]string{"g1": {"b", "a", "c"}}, nil},
		{"same group to end", "a", "g1", 3, map[string][]string{"g1": {"b", "c", "a"}}, nil},
		{"same group backward", "c", "g1", 0, map[string][]string{"g1": {"c", "a", "b"}}, nil},
		{"same group past end clamps", "a", "g1", 99, map[string][]string{"g1": {"b", "c", "a"}}, nil},
		{"other group past end clamps", "a", "g2", 99, map[string][]string{"g1": {"b", "c"}, "g2": {"d", "a"}}, nil},
		{"negative index clamps to start", "a", "g2", -5, map[string][]string{"g2": {"a", "d"}}, nil},
		{
			"supporting keeps its primary at the start of another group", "b", "g2", 0,
			map[string][]string{"g2": {"b", "d"}}, map[string]string{"b": "a"},
		},
		{
			"supporting keeps its primary under another primary", "b", "g3", 2,
			map[string][]string{"g3": {"e", "n", "b"}}, map[string]string{"b": "a"},
		},
		{
			"note re-attaches to destination primary", "n", "g2", 1,
			map[string][]string{"g2": {"d", "n"}, "g3": {"e"}}, map[string]string{"n": "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := fixture()
			got := MoveLineTo(q, tt.lineID, tt.groupID, tt.index)
			for g, want := range tt.groups {
				assertIDs(t, g+" lines", lineIDs(t, got, g), want)
			}
			for id, want := range tt.primary {
				if ref := mustLine(t, got, id).PrimaryID; ref != want {
					t.Errorf("%s.PrimaryID = %q, want %q", id, ref, want)
				}
			}
			assertIDs(t, "all lines", allLineIDs(got), allLineIDs(q))
			assertValid(t, got)
		})
	}
}

func TestMoveLineTo_NoOps(t *testing.T) {
	q := fixture()
	assertSame(t, MoveLineTo(q, "missing", "g1", 0), q)
	assertSame(t, MoveLineTo(q, "a", "missing", 0), q)
}

func TestAppendLines(t *testing.T) {
	seqIDs(t)
	q := fixture()
	imported := []LineItem{
		testLine("ignored-1", RoleSupporting, "Curbs", ""),
		testLine("ignored-2", RolePrimary, "Fans", ""),
		testNote("ignored-3", ""),
	}
	got := AppendLines(q, "g2", imported)

	assertIDs(t, "g2 lines", lineIDs(t, got, "g2"), []string{"d", "id-1", "id-2", "id-3"})
	if p := mustLine(t, got, "id-1").PrimaryID; p != "d" {
		t.Errorf("supporting line PrimaryID = %q, want d", p)
	}
	if p := mustLine(t, got, "id-2").PrimaryID; p != "" {
		t.Errorf("primary line PrimaryID = %q, want none", p)
	}
	if p := mustLine(t, got, "id-3").PrimaryID; p != "id-2" {
		t.Errorf("note PrimaryID = %q, want id-2", p)
	}
	assertValid(t, got)
	assertSame(t, q, fixture())
}

func TestAppendLines_NoOps(t *testing.T) {
	q := fixture()
	assertSame(t, AppendLines(q, "missing", []LineItem{testLine("x", RolePrimary, "Fans", "")}), q)
	assertSame(t, AppendLines(q, "g1", nil), q)
}
