// Package quote holds the bid document tree (packages, price groups, line
// items, add/deduct alternates) and the structural operations over it.
//
// A Quote is treated as an immutable value: every operation returns a new
// tree and leaves its input untouched. Operations whose target cannot be
// found return the input unchanged.
package quote

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"
)

// Role classifies a line item inside a price group.
type Role string

const (
	RolePrimary    Role = "primary"
	RoleSupporting Role = "supporting"
)

// Category values offered for line items.
var Categories = []string{"Vent", "Heat", "Hydro", "TC", "Misc"}

// PackageTypes values offered for packages. They carry no computed effect.
var PackageTypes = []string{"Building", "Phase", "Alternate", "Custom"}

// AlternateType is the sign of an add/deduct alternate on the printed quote.
type AlternateType string

const (
	AlternateAdd    AlternateType = "ADD"
	AlternateDeduct AlternateType = "DEDUCT"
)

// Default field values for newly created entities.
const (
	DefaultGroupName   = "New Price Group"
	DefaultPackageName = "New Package"
	UnassignedPackage  = "Unassigned"
	NoteEquipment      = "NOTES"

	DefaultQty      = 1
	DefaultMulti    = 1.0
	DefaultMarkup   = 1.35
	DefaultStatus   = "."
	DefaultCategory = "Vent"
)

// LineItem is a priced row, or a free-text note when IsNote is set.
//
// Supporting lines and notes reference the primary line they ride under
// through PrimaryID. Primary lines never carry a reference; a supporting line
// with an empty PrimaryID is detached.
type LineItem struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	PrimaryID string `json:"primaryId,omitempty"`
	IsNote    bool   `json:"isNote"`
	NoteText  string `json:"noteText"`

	Qty      int     `json:"qty"`
	List     float64 `json:"list"`
	DollarUp float64 `json:"dollarUp"`
	Multi    float64 `json:"multi"`
	Pay      float64 `json:"pay"`
	Freight  float64 `json:"freight"`
	MU       float64 `json:"mu"`

	Manufacturer string `json:"manufacturer"`
	Equipment    string `json:"equipment"`
	Model        string `json:"model"`
	Tag          string `json:"tag"`
	Description  string `json:"description"`
	Notes        string `json:"notes"`
	Status       string `json:"status"`
	Category     string `json:"category"`
}

// IsPrimary reports whether the line is a priced primary equipment line.
func (l LineItem) IsPrimary() bool {
	return l.Role == RolePrimary && !l.IsNote
}

// GroupKey returns the id that ties a line to its primary: the line's own id
// for primaries and detached lines, the referenced primary id otherwise.
func (l LineItem) GroupKey() string {
	if l.IsPrimary() || l.PrimaryID == "" {
		return l.ID
	}
	return l.PrimaryID
}

// AddDeduct is an optional priced alternate attached to a price group.
type AddDeduct struct {
	ID          string        `json:"id"`
	Type        AlternateType `json:"type"`
	Description string        `json:"description"`
	LineItems   []LineItem    `json:"lineItems"`
}

// PriceGroup is an ordered set of line items priced together.
type PriceGroup struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	NameLocked bool        `json:"nameLocked,omitempty"`
	LineItems  []LineItem  `json:"lineItems"`
	AddDeducts []AddDeduct `json:"addDeducts"`
}

// Package is an ordered set of price groups, usually a building or phase.
type Package struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        string       `json:"type"`
	PriceGroups []PriceGroup `json:"priceGroups"`
}

// Header is the free-text project metadata printed on every quote page.
type Header struct {
	ProjectName     string `json:"projectName"`
	Location        string `json:"location"`
	BidDate         string `json:"bidDate"`
	QuoteNumber     string `json:"quoteNumber"`
	QuoteName       string `json:"quoteName"`
	Addendums       string `json:"addendums"`
	Date            string `json:"date"`
	SalesEngineer   string `json:"salesEngineer"`
	ProjectEngineer string `json:"projectEngineer"`
	Engineer        string `json:"engineer"`
	Market          string `json:"market"`
	Phase           string `json:"phase"`
	To              string `json:"to"`
}

// Quote is the root of the bid document.
type Quote struct {
	Header
	Packages []Package `json:"packages"`
}

// Clone returns a deep copy of the quote.
func (q Quote) Clone() Quote {
	var out Quote
	if err := deepcopy.Copy(&out, &q); err != nil {
		// Quote only holds strings, numbers and slices of plain structs.
		panic(fmt.Sprintf("quote: clone: %v", err))
	}
	return out
}

// NewLine returns a line with default field values and a fresh id.
func NewLine(role Role) LineItem {
	return LineItem{
		ID:       NewID(),
		Role:     role,
		Qty:      DefaultQty,
		Multi:    DefaultMulti,
		MU:       DefaultMarkup,
		Status:   DefaultStatus,
		Category: DefaultCategory,
	}
}

// NewNote returns an empty note line with a fresh id.
func NewNote() LineItem {
	l := NewLine(RoleSupporting)
	l.IsNote = true
	l.Equipment = NoteEquipment
	return l
}

// NewGroup returns an empty price group with the default name.
func NewGroup() PriceGroup {
	return PriceGroup{ID: NewID(), Name: DefaultGroupName, LineItems: []LineItem{}, AddDeducts: []AddDeduct{}}
}

// NewPackage returns an empty package.
func NewPackage() Package {
	return Package{ID: NewID(), Name: DefaultPackageName, Type: "Building", PriceGroups: []PriceGroup{}}
}

// NewAddDeduct returns an alternate holding a single blank supporting line.
func NewAddDeduct(t AlternateType) AddDeduct {
	return AddDeduct{ID: NewID(), Type: t, LineItems: []LineItem{NewLine(RoleSupporting)}}
}

// Lines returns every price-group line item in document order. Add/deduct
// lines are not included.
func (q Quote) Lines() []LineItem {
	var out []LineItem
	for _, p := range q.Packages {
		out = append(out, p.Lines()...)
	}
	return out
}

// Lines returns the package's price-group line items in order.
func (p Package) Lines() []LineItem {
	var out []LineItem
	for _, pg := range p.PriceGroups {
		out = append(out, pg.LineItems...)
	}
	return out
}

// CountLines returns the number of price-group line items in the quote.
func (q Quote) CountLines() int {
	n := 0
	for _, p := range q.Packages {
		for _, pg := range p.PriceGroups {
			n += len(pg.LineItems)
		}
	}
	return n
}
