package services

// TemplateField describes one column in the line import template.
type TemplateField struct {
	Key          string // internal name, matches the line item JSON field
	Label        string // human-readable header shown in Excel
	Description  string // shown on the Instructions sheet
	FormatRule   string // e.g. "Number", "primary, supporting or note"
	ExampleValue string // shown on the Instructions sheet
	Required     bool
}

// LineImportFields returns the ordered columns of a line import file.
func LineImportFields() []TemplateField {
	return []TemplateField{
		{Key: "role", Label: "Role", Description: "primary, supporting or note; blank means primary", FormatRule: "primary, supporting or note", ExampleValue: "primary"},
		{Key: "qty", Label: "Qty", Description: "Unit count printed on the quote", FormatRule: "Whole number", ExampleValue: "2"},
		{Key: "manufacturer", Label: "Manufacturer", Description: "Equipment manufacturer", ExampleValue: "Greenheck"},
		{Key: "equipment", Label: "Equipment", Description: "Equipment type", ExampleValue: "Fans", Required: true},
		{Key: "model", Label: "Model", Description: "Manufacturer model number", ExampleValue: "SQ-120-VG"},
		{Key: "tag", Label: "Tag", Description: "Schedule tag", ExampleValue: "EF-1"},
		{Key: "description", Label: "Description", Description: "Bullets separated by new lines or |; note text for notes", ExampleValue: "Direct drive | ECM motor"},
		{Key: "list", Label: "List", Description: "Manufacturer list price", FormatRule: "Number", ExampleValue: "1,250.00"},
		{Key: "dollarUp", Label: "$ Up %", Description: "Percentage added to list", FormatRule: "Number", ExampleValue: "0"},
		{Key: "multi", Label: "Multi", Description: "Multiplier applied to list", FormatRule: "Number", ExampleValue: "0.42"},
		{Key: "pay", Label: "Pay %", Description: "Manufacturer commission percentage", FormatRule: "Number", ExampleValue: "5"},
		{Key: "freight", Label: "Freight", Description: "Freight added to net", FormatRule: "Number", ExampleValue: "150"},
		{Key: "mu", Label: "MU", Description: "Markup multiplier; blank keeps the default", FormatRule: "Number greater than 0", ExampleValue: "1.35"},
		{Key: "category", Label: "Category", Description: "Category shown on the pricing sheet", ExampleValue: "Vent"},
		{Key: "notes", Label: "Notes", Description: "Internal notes, not printed", ExampleValue: "Verify lead time"},
	}
}

// LineRoles are the accepted values of the Role column.
var LineRoles = []string{"primary", "supporting", "note"}
