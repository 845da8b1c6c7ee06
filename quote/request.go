package quote

import (
	"reflect"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Op names a tree operation carried by a Request.
type Op string

const (
	OpUpdateHeader        Op = "updateHeader"
	OpAddPackage          Op = "addPackage"
	OpUpdatePackage       Op = "updatePackage"
	OpMovePackage         Op = "movePackage"
	OpDeletePackages      Op = "deletePackages"
	OpAddGroup            Op = "addGroup"
	OpRenameGroup         Op = "renameGroup"
	OpMoveGroup           Op = "moveGroup"
	OpMoveGroupTo         Op = "moveGroupTo"
	OpDeleteGroup         Op = "deleteGroup"
	OpInsertLine          Op = "insertLine"
	OpUpdateLine          Op = "updateLine"
	OpDeleteLine          Op = "deleteLine"
	OpMoveLine            Op = "moveLine"
	OpMoveLineTo          Op = "moveLineTo"
	OpApplyMarkup         Op = "applyMarkup"
	OpApplyMarkupAll      Op = "applyMarkupAll"
	OpAddAddDeduct        Op = "addAddDeduct"
	OpToggleAddDeductType Op = "toggleAddDeductType"
	OpDescribeAddDeduct   Op = "describeAddDeduct"
	OpDeleteAddDeduct     Op = "deleteAddDeduct"
	OpAddAddDeductLine    Op = "addAddDeductLine"
	OpUpdateAddDeductLine Op = "updateAddDeductLine"
	OpDeleteAddDeductLine Op = "deleteAddDeductLine"
	OpDeleteSelection     Op = "deleteSelection"
	OpDuplicate           Op = "duplicate"
	OpImportLines         Op = "importLines"
)

var allOps = []any{
	OpUpdateHeader, OpAddPackage, OpUpdatePackage, OpMovePackage, OpDeletePackages,
	OpAddGroup, OpRenameGroup, OpMoveGroup, OpMoveGroupTo, OpDeleteGroup,
	OpInsertLine, OpUpdateLine, OpDeleteLine, OpMoveLine, OpMoveLineTo,
	OpApplyMarkup, OpApplyMarkupAll,
	OpAddAddDeduct, OpToggleAddDeductType, OpDescribeAddDeduct, OpDeleteAddDeduct,
	OpAddAddDeductLine, OpUpdateAddDeductLine, OpDeleteAddDeductLine,
	OpDeleteSelection, OpDuplicate, OpImportLines,
}

// Request is one tree operation with its parameters, as received from the
// HTTP API or the command line. Only the fields the operation reads need to
// be set.
type Request struct {
	Op Op `json:"op"`

	PackageID   string   `json:"packageId,omitempty"`
	PackageIDs  []string `json:"packageIds,omitempty"`
	GroupID     string   `json:"groupId,omitempty"`
	LineID      string   `json:"lineId,omitempty"`
	AddDeductID string   `json:"addDeductId,omitempty"`
	AnchorID    string   `json:"anchorId,omitempty"`

	Kind     LineKind      `json:"kind,omitempty"`
	Dir      int           `json:"dir,omitempty"`
	Index    int           `json:"index,omitempty"`
	Position Position      `json:"position,omitempty"`
	Markup   float64       `json:"markup,omitempty"`
	AltType  AlternateType `json:"altType,omitempty"`

	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`

	Header    *Header    `json:"header,omitempty"`
	Line      *LineItem  `json:"line,omitempty"`
	Lines     []LineItem `json:"lines,omitempty"`
	Selection *Selection `json:"selection,omitempty"`
}

// Destructive reports whether the request removes entities. Callers snapshot
// the tree before applying such requests so the delete can be undone.
func (r Request) Destructive() bool {
	switch r.Op {
	case OpDeletePackages, OpDeleteGroup, OpDeleteLine, OpDeleteAddDeduct,
		OpDeleteAddDeductLine, OpDeleteSelection:
		return true
	}
	return false
}

// Validate checks that the request names a known operation and carries the
// parameters that operation needs. Apply itself never fails; Validate lets
// callers reject malformed input instead of silently ignoring it.
func (r Request) Validate() error {
	is := func(ops ...Op) bool {
		for _, op := range ops {
			if r.Op == op {
				return true
			}
		}
		return false
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Op, validation.Required, validation.In(allOps...)),
		validation.Field(&r.PackageID, validation.When(
			is(OpUpdatePackage, OpMovePackage, OpAddGroup, OpMoveGroupTo) || (is(OpApplyMarkup) && r.GroupID == ""),
			validation.Required)),
		validation.Field(&r.PackageIDs, validation.When(is(OpDeletePackages), validation.Required)),
		validation.Field(&r.GroupID, validation.When(
			is(OpRenameGroup, OpMoveGroup, OpMoveGroupTo, OpDeleteGroup, OpInsertLine, OpMoveLineTo, OpAddAddDeduct, OpImportLines),
			validation.Required)),
		validation.Field(&r.LineID, validation.When(
			is(OpDeleteLine, OpMoveLine, OpMoveLineTo, OpDeleteAddDeductLine),
			validation.Required)),
		validation.Field(&r.AddDeductID, validation.When(
			is(OpToggleAddDeductType, OpDescribeAddDeduct, OpDeleteAddDeduct, OpAddAddDeductLine),
			validation.Required)),
		validation.Field(&r.Kind, validation.When(is(OpInsertLine),
			validation.Required, validation.In(KindPrimary, KindSupporting, KindNote))),
		validation.Field(&r.Dir, validation.When(is(OpMovePackage, OpMoveGroup, OpMoveLine),
			validation.Required, validation.In(-1, 1))),
		validation.Field(&r.Index, validation.Min(0)),
		validation.Field(&r.Position, validation.When(is(OpMoveGroupTo),
			validation.In(PositionBefore, PositionAfter, PositionEnd))),
		validation.Field(&r.Markup, validation.When(is(OpApplyMarkup, OpApplyMarkupAll),
			validation.Required, validation.Min(0.0).Exclusive())),
		validation.Field(&r.AltType, validation.When(is(OpAddAddDeduct),
			validation.Required, validation.In(AlternateAdd, AlternateDeduct))),
		validation.Field(&r.Type, validation.When(is(OpUpdatePackage) && r.Type != "",
			validation.In(stringsToAny(PackageTypes)...))),
		validation.Field(&r.Header, validation.When(is(OpUpdateHeader), validation.Required)),
		validation.Field(&r.Line, validation.When(is(OpUpdateLine, OpUpdateAddDeductLine), validation.Required)),
		validation.Field(&r.Selection, validation.When(is(OpDeleteSelection, OpDuplicate), validation.Required)),
		validation.Field(&r.Lines, validation.When(is(OpImportLines), validation.Required)),
	)
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// Apply runs the operation described by r against q and reports whether the
// tree changed. Unknown operations and unresolvable targets leave q unchanged.
func Apply(q Quote, r Request) (Quote, bool) {
	next := apply(q, r)
	return next, !reflect.DeepEqual(q, next)
}

func apply(q Quote, r Request) Quote {
	switch r.Op {
	case OpUpdateHeader:
		if r.Header != nil {
			return UpdateHeader(q, *r.Header)
		}
	case OpAddPackage:
		return AddPackage(q)
	case OpUpdatePackage:
		return UpdatePackage(q, r.PackageID, r.Name, r.Type)
	case OpMovePackage:
		return MovePackage(q, r.PackageID, r.Dir)
	case OpDeletePackages:
		return DeletePackages(q, r.PackageIDs...)
	case OpAddGroup:
		return AddGroup(q, r.PackageID)
	case OpRenameGroup:
		return RenameGroup(q, r.GroupID, r.Name)
	case OpMoveGroup:
		return MoveGroup(q, r.GroupID, r.Dir)
	case OpMoveGroupTo:
		return MoveGroupTo(q, r.GroupID, r.PackageID, r.AnchorID, r.Position)
	case OpDeleteGroup:
		return DeleteGroup(q, r.GroupID)
	case OpInsertLine:
		return InsertLine(q, r.GroupID, r.Kind)
	case OpUpdateLine:
		if r.Line != nil {
			return UpdateLine(q, *r.Line)
		}
	case OpDeleteLine:
		return DeleteLine(q, r.LineID)
	case OpMoveLine:
		return MoveLine(q, r.LineID, r.Dir)
	case OpMoveLineTo:
		return MoveLineTo(q, r.LineID, r.GroupID, r.Index)
	case OpApplyMarkup:
		if r.GroupID != "" {
			return ApplyMarkup(q, r.GroupID, r.Markup)
		}
		return ApplyMarkup(q, r.PackageID, r.Markup)
	case OpApplyMarkupAll:
		return ApplyMarkupAll(q, r.Markup)
	case OpAddAddDeduct:
		return AddAddDeduct(q, r.GroupID, r.AltType)
	case OpToggleAddDeductType:
		return ToggleAddDeductType(q, r.AddDeductID)
	case OpDescribeAddDeduct:
		return DescribeAddDeduct(q, r.AddDeductID, r.Description)
	case OpDeleteAddDeduct:
		return DeleteAddDeduct(q, r.AddDeductID)
	case OpAddAddDeductLine:
		return AddAddDeductLine(q, r.AddDeductID)
	case OpUpdateAddDeductLine:
		if r.Line != nil {
			return UpdateAddDeductLine(q, *r.Line)
		}
	case OpDeleteAddDeductLine:
		return DeleteAddDeductLine(q, r.LineID)
	case OpDeleteSelection:
		if r.Selection != nil {
			return DeleteSelection(q, *r.Selection)
		}
	case OpDuplicate:
		if r.Selection != nil {
			return Duplicate(q, *r.Selection)
		}
	case OpImportLines:
		return AppendLines(q, r.GroupID, r.Lines)
	}
	return q
}
