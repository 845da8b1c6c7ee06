package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"quotebuilder/quote"
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult is returned after parsing and validating an uploaded line file.
type ImportResult struct {
	TotalRows    int               `json:"total_rows"`
	ValidRows    int               `json:"valid_rows"`
	ErrorRows    int               `json:"error_rows"`
	Errors       []ValidationError `json:"errors"`
	Unrecognized []string          `json:"unrecognized,omitempty"`
	Lines        []quote.LineItem  `json:"-"`
	FileName     string            `json:"-"`
}

// parseCSV reads a CSV file and returns headers + data rows.
func parseCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return allRows[0], allRows[1:], nil
}

// parseExcel reads an xlsx file and returns headers + data rows from the first sheet.
func parseExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}
	return rows[0], rows[1:], nil
}

// mapHeadersToFields maps uploaded column headers to TemplateField keys.
// Returns ordered list of field keys (one per column) and any unrecognized columns.
func mapHeadersToFields(headers []string, fields []TemplateField) ([]string, []string) {
	labelToKey := make(map[string]string, len(fields))
	for _, f := range fields {
		labelToKey[strings.ToLower(strings.TrimSpace(f.Label))] = f.Key
	}

	mapped := make([]string, len(headers))
	var unrecognized []string
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		// Strip trailing " *" that our template adds for required fields
		norm = strings.TrimSpace(strings.TrimSuffix(norm, " *"))

		if key, ok := labelToKey[norm]; ok {
			mapped[i] = key
		} else {
			unrecognized = append(unrecognized, h)
		}
	}
	return mapped, unrecognized
}

// ParseLineFile parses and validates an uploaded .csv or .xlsx line file.
// Rows with errors are reported and left out of Lines.
func ParseLineFile(file io.Reader, fileName string) (*ImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	fields := LineImportFields()
	columnKeys, unrecognized := mapHeadersToFields(headers, fields)
	keyToLabel := make(map[string]string, len(fields))
	for _, f := range fields {
		keyToLabel[f.Key] = f.Label
	}

	result := &ImportResult{FileName: fileName, Unrecognized: unrecognized}
	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row

		rowData := make(map[string]string)
		blank := true
		for colIdx, key := range columnKeys {
			if key == "" || colIdx >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[colIdx])
			rowData[key] = v
			if v != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		result.TotalRows++

		line, rowErrors := lineFromRow(rowNum, rowData, keyToLabel)
		if len(rowErrors) > 0 {
			result.Errors = append(result.Errors, rowErrors...)
			result.ErrorRows++
			continue
		}
		result.Lines = append(result.Lines, line)
	}
	result.ValidRows = result.TotalRows - result.ErrorRows
	return result, nil
}

// lineFromRow builds a line item from one mapped row, starting from the
// defaults of a new line.
func lineFromRow(rowNum int, data map[string]string, labels map[string]string) (quote.LineItem, []ValidationError) {
	var errs []ValidationError
	fail := func(key, msg string) {
		errs = append(errs, ValidationError{Row: rowNum, Field: labels[key], Message: msg})
	}

	var l quote.LineItem
	switch strings.ToLower(data["role"]) {
	case "", "primary":
		l = quote.NewLine(quote.RolePrimary)
	case "supporting":
		l = quote.NewLine(quote.RoleSupporting)
	case "note":
		l = quote.NewNote()
	default:
		fail("role", fmt.Sprintf("Role must be one of %s", strings.Join(LineRoles, ", ")))
		return l, errs
	}

	if l.IsNote {
		l.NoteText = data["description"]
		if l.NoteText == "" {
			fail("description", "Description is required for notes")
		}
		return l, errs
	}

	if data["equipment"] == "" {
		fail("equipment", "Equipment is required")
	}
	l.Manufacturer = data["manufacturer"]
	l.Equipment = data["equipment"]
	l.Model = data["model"]
	l.Tag = data["tag"]
	l.Description = data["description"]
	l.Notes = data["notes"]
	if v := data["category"]; v != "" {
		if c, ok := canonicalCategory(v); ok {
			l.Category = c
		} else {
			fail("category", fmt.Sprintf("Category must be one of %s", strings.Join(quote.Categories, ", ")))
		}
	}

	if v := data["qty"]; v != "" {
		n, ok := parseNumber(v)
		switch {
		case !ok || n < 0 || n != math.Trunc(n):
			fail("qty", "Qty must be a whole number")
		case n > maxQty:
			fail("qty", fmt.Sprintf("Qty must be at most %d", maxQty))
		default:
			l.Qty = int(n)
		}
	}

	amounts := []struct {
		key string
		dst *float64
	}{
		{"list", &l.List},
		{"dollarUp", &l.DollarUp},
		{"multi", &l.Multi},
		{"pay", &l.Pay},
		{"freight", &l.Freight},
		{"mu", &l.MU},
	}
	for _, a := range amounts {
		v := data[a.key]
		if v == "" {
			continue
		}
		n, ok := parseNumber(v)
		if !ok {
			fail(a.key, fmt.Sprintf("%s must be a number", labels[a.key]))
			continue
		}
		*a.dst = n
	}
	if data["mu"] != "" && l.MU <= 0 {
		fail("mu", "MU must be greater than 0")
	}

	return l, errs
}

// maxQty bounds imported quantities before they are converted to int.
const maxQty = math.MaxInt32

// canonicalCategory matches v against quote.Categories ignoring case.
func canonicalCategory(v string) (string, bool) {
	for _, c := range quote.Categories {
		if strings.EqualFold(c, v) {
			return c, true
		}
	}
	return "", false
}

// parseNumber reads a currency or percentage cell. Symbols and thousands
// separators are ignored; anything else that does not parse is rejected.
func parseNumber(s string) (float64, bool) {
	cleaned := strings.NewReplacer("$", "", ",", "", "%", "", " ", "").Replace(s)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// GenerateErrorReport creates a downloadable .xlsx file from validation errors.
func GenerateErrorReport(errors []ValidationError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := strconv.Itoa(i + 2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, sanitizeExcelCell(e.Field))
		f.SetCellValue(sheet, "C"+row, sanitizeExcelCell(e.Message))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
