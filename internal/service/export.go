package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/execview/internal/domain"
	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
)

// Section names an exportable part of a snapshot.
type Section string

const (
	SectionFinancial     Section = "financial"
	SectionSales         Section = "sales"
	SectionOperations    Section = "operations"
	SectionCustomer      Section = "customer"
	SectionEmployee      Section = "employee"
	SectionNotifications Section = "notifications"
	SectionSummary       Section = "summary"
)

// Sections lists every exportable section.
var Sections = []Section{
	SectionFinancial,
	SectionSales,
	SectionOperations,
	SectionCustomer,
	SectionEmployee,
	SectionNotifications,
	SectionSummary,
}

func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == strings.ToLower(strings.TrimSpace(s)) {
			return sec, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownSection)
}

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
}

// sectionRows encodes the records of one section as a JSON array. A summary
// is a single row.
func sectionRows(snap *domain.Snapshot, section Section) ([]byte, error) {
	var v any
	switch section {
	case SectionFinancial:
		v = snap.Financial
	case SectionSales:
		v = snap.Sales
	case SectionOperations:
		v = snap.Operations
	case SectionCustomer:
		v = snap.Customer
	case SectionEmployee:
		v = snap.Employee
	case SectionNotifications:
		v = snap.Notifications
	case SectionSummary:
		v = []domain.Summary{domain.BuildSummary(snap)}
	default:
		return nil, fmt.Errorf("%q: %w", section, ErrUnknownSection)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", section, err)
	}
	return data, nil
}

// cell is one flattened field of a record.
type cell struct {
	key   string
	value gjson.Result
}

// flatten walks a JSON object in document order. Nested objects become
// dotted keys; arrays stay as raw JSON in a single cell.
func flatten(prefix string, obj gjson.Result, out []cell) []cell {
	obj.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		if prefix != "" {
			key = prefix + "." + key
		}
		if v.IsObject() {
			out = flatten(key, v, out)
		} else {
			out = append(out, cell{key: key, value: v})
		}
		return true
	})
	return out
}

// table turns a JSON array of objects into a header and rows. The header
// comes from the first record.
func table(rows []byte) ([]string, [][]gjson.Result) {
	records := gjson.ParseBytes(rows).Array()
	if len(records) == 0 {
		return nil, nil
	}
	first := flatten("", records[0], nil)
	header := make([]string, len(first))
	for i, c := range first {
		header[i] = c.key
	}

	out := make([][]gjson.Result, len(records))
	for i, rec := range records {
		byKey := make(map[string]gjson.Result, len(header))
		for _, c := range flatten("", rec, nil) {
			byKey[c.key] = c.value
		}
		row := make([]gjson.Result, len(header))
		for j, k := range header {
			row[j] = byKey[k]
		}
		out[i] = row
	}
	return header, out
}

// Export encodes a JSON array of records in the given format. sheet names
// the xlsx worksheet.
func Export(rows []byte, sheet string, format ExportFormat) ([]byte, error) {
	header, data := table(rows)
	switch format {
	case FormatCSV:
		return encodeCSV(header, data), nil
	case FormatXLSX:
		return encodeXLSX(sheet, header, data)
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

// encodeCSV writes the header unquoted and quotes every string or embedded
// JSON value; numbers and booleans are written bare.
func encodeCSV(header []string, data [][]gjson.Result) []byte {
	if len(header) == 0 {
		return []byte{}
	}
	var buf bytes.Buffer
	buf.WriteString(strings.Join(header, ","))
	for _, row := range data {
		buf.WriteByte('\n')
		for i, v := range row {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(csvValue(v))
		}
	}
	return buf.Bytes()
}

func csvValue(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw
	case gjson.String:
		return quote(v.String())
	default:
		return quote(v.Raw)
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func encodeXLSX(sheet string, header []string, data [][]gjson.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	for j, h := range header {
		if err := setCell(f, sheet, j+1, 1, h); err != nil {
			return nil, err
		}
	}
	for i, row := range data {
		for j, v := range row {
			if err := setCell(f, sheet, j+1, i+2, xlsxValue(v)); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell %d,%d: %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, name, v); err != nil {
		return fmt.Errorf("setting %s: %w", name, err)
	}
	return nil
}

func xlsxValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.Number:
		if n, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return n
		}
		return v.Float()
	case gjson.True, gjson.False:
		return v.Bool()
	case gjson.String:
		return v.String()
	default:
		return v.Raw
	}
}
