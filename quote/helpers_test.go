package quote

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// seqIDs makes NewID return id-1, id-2, ... for the rest of the test.
func seqIDs(t *testing.T) {
	t.Helper()
	prev := NewID
	n := 0
	NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	t.Cleanup(func() { NewID = prev })
}

func testLine(id string, role Role, equip, primaryID string) LineItem {
	return LineItem{
		ID:        id,
		Role:      role,
		PrimaryID: primaryID,
		Qty:       1,
		List:      100,
		Multi:     1,
		MU:        1.35,
		Equipment: equip,
		Status:    DefaultStatus,
		Category:  DefaultCategory,
	}
}

func testNote(id, primaryID string) LineItem {
	l := testLine(id, RoleSupporting, NoteEquipment, primaryID)
	l.IsNote = true
	l.NoteText = "field verify"
	return l
}

// fixture builds:
//
//	p1: g1 [a Fans, b supporting(a), c Dampers], g2 [d VAVs]
//	p2: g3 [e GRDs, n note(e)]
//	p3: (no groups)
func fixture() Quote {
	return Quote{
		Header: Header{ProjectName: "Skyway", QuoteNumber: "1182950"},
		Packages: []Package{
			{ID: "p1", Name: "Building 1", Type: "Building", PriceGroups: []PriceGroup{
				{ID: "g1", Name: "Fans and Dampers", LineItems: []LineItem{
					testLine("a", RolePrimary, "Fans", ""),
					testLine("b", RoleSupporting, "Curbs", "a"),
					testLine("c", RolePrimary, "Dampers", ""),
				}, AddDeducts: []AddDeduct{}},
				{ID: "g2", Name: "VAVs", LineItems: []LineItem{
					testLine("d", RolePrimary, "VAVs", ""),
				}, AddDeducts: []AddDeduct{}},
			}},
			{ID: "p2", Name: "Building 2", Type: "Building", PriceGroups: []PriceGroup{
				{ID: "g3", Name: "GRDs", LineItems: []LineItem{
					testLine("e", RolePrimary, "GRDs", ""),
					testNote("n", "e"),
				}, AddDeducts: []AddDeduct{}},
			}},
			{ID: "p3", Name: "Phase 2", Type: "Phase", PriceGroups: []PriceGroup{}},
		},
	}
}

var quoteOpts = cmp.Options{cmpopts.EquateEmpty()}

func assertSame(t *testing.T, got, want Quote) {
	t.Helper()
	if diff := cmp.Diff(want, got, quoteOpts); diff != "" {
		t.Errorf("quote mismatch (-want +got):\n%s", diff)
	}
}

func mustGroup(t *testing.T, q Quote, groupID string) PriceGroup {
	t.Helper()
	loc, ok := findGroup(q, groupID)
	if !ok {
		t.Fatalf("group %q not found", groupID)
	}
	return *q.group(loc)
}

func mustLine(t *testing.T, q Quote, lineID string) LineItem {
	t.Helper()
	loc, ok := findLine(q, lineID)
	if !ok {
		t.Fatalf("line %q not found", lineID)
	}
	return q.group(loc.groupLoc).LineItems[loc.line]
}

func lineIDs(t *testing.T, q Quote, groupID string) []string {
	t.Helper()
	var ids []string
	for _, l := range mustGroup(t, q, groupID).LineItems {
		ids = append(ids, l.ID)
	}
	return ids
}

func groupIDs(t *testing.T, q Quote, pkgID string) []string {
	t.Helper()
	pi, ok := findPackage(q, pkgID)
	if !ok {
		t.Fatalf("package %q not found", pkgID)
	}
	var ids []string
	for _, pg := range q.Packages[pi].PriceGroups {
		ids = append(ids, pg.ID)
	}
	return ids
}

// allLineIDs returns every price-group line id, sorted.
func allLineIDs(q Quote) []string {
	var ids []string
	for _, l := range q.Lines() {
		ids = append(ids, l.ID)
	}
	slices.Sort(ids)
	return ids
}

func assertIDs(t *testing.T, what string, got, want []string) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", what, diff)
	}
}

func assertValid(t *testing.T, q Quote) {
	t.Helper()
	if err := Check(q); err != nil {
		t.Errorf("Check() = %v", err)
	}
}
