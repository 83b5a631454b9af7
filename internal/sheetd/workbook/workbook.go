// Package workbook persists the collections of the sheet endpoint in an
// .xlsx file, one sheet per collection with a header row, the same way
// the hosted spreadsheet lays them out. Columns holding structured
// values (the embedded customer) are declared in the schema and stored
// as JSON strings in their cell; nothing is inferred from cell contents.
package workbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Schema describes one collection sheet.
type Schema struct {
	Sheet      string
	Headers    []string
	Numeric    []string // parsed as float64 on read
	Bool       []string // parsed as bool on read
	Structured []string // JSON documents stored as a string cell
}

func (s Schema) has(set []string, header string) bool {
	for _, h := range set {
		if h == header {
			return true
		}
	}

	return false
}

// Schemas lists every collection in workbook order.
var Schemas = []Schema{
	{
		Sheet:   "Transactions",
		Headers: []string{"id", "date", "description", "category", "amount", "type", "paymentMethod"},
		Numeric: []string{"amount"},
	},
	{
		Sheet:   "Products",
		Headers: []string{"id", "code", "name", "cost", "quantity", "unit", "minStockThreshold"},
		Numeric: []string{"cost", "quantity", "minStockThreshold"},
	},
	{
		Sheet: "Tasks",
		Headers: []string{
			"id", "type", "title", "description", "startDate", "endDate",
			"location", "assignee", "status", "estimatedCost", "deposit", "customer",
		},
		Numeric:    []string{"estimatedCost", "deposit"},
		Structured: []string{"customer"},
	},
	{
		Sheet: "Warranties",
		Headers: []string{
			"id", "purchaseDate", "productName", "modelCode", "serialNumber",
			"quantity", "vendor", "price", "duration", "startDate", "expiryDate",
			"conditions", "hasDocuments",
		},
		Numeric: []string{"quantity", "price"},
		Bool:    []string{"hasDocuments"},
	},
	{
		Sheet: "CompanyProfile",
		Headers: []string{
			"name", "address", "phone", "email", "taxId", "website",
			"logo", "qrCode", "bankName", "accountName", "accountNumber",
		},
	},
}

// SchemaFor returns the schema for a sheet name.
func SchemaFor(sheet string) (Schema, bool) {
	for _, s := range Schemas {
		if s.Sheet == sheet {
			return s, true
		}
	}

	return Schema{}, false
}

var ErrRowNotFound = errors.New("workbook: row not found")

type Store struct {
	mu   sync.Mutex
	path string
	file *excelize.File
}

// Open loads the workbook at path, creating it with header rows when it
// does not exist yet.
func Open(path string) (*Store, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("opening workbook: %w", err)
		}

		f = excelize.NewFile()
	}

	s := &Store{path: path, file: f}

	for _, schema := range Schemas {
		if err := s.ensureSheet(schema); err != nil {
			return nil, err
		}
	}

	// Drop the default sheet excelize creates in a fresh workbook.
	if idx, _ := f.GetSheetIndex("Sheet1"); idx >= 0 {
		_ = f.DeleteSheet("Sheet1")
	}

	if err := s.save(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.file.Close()
}

func (s *Store) ensureSheet(schema Schema) error {
	if idx, _ := s.file.GetSheetIndex(schema.Sheet); idx >= 0 {
		return nil
	}

	if _, err := s.file.NewSheet(schema.Sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", schema.Sheet, err)
	}

	header := make([]any, len(schema.Headers))
	for i, h := range schema.Headers {
		header[i] = h
	}

	if err := s.file.SetSheetRow(schema.Sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header for %s: %w", schema.Sheet, err)
	}

	return nil
}

func (s *Store) save() error {
	if err := s.file.SaveAs(s.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}

	return nil
}

// ReadAll returns every data row of the sheet as field maps, with
// numeric, bool and structured columns decoded per the schema.
func (s *Store) ReadAll(sheet string) ([]map[string]any, error) {
	schema, ok := SchemaFor(sheet)
	if !ok {
		return nil, fmt.Errorf("unknown sheet %s", sheet)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sheet, err)
	}

	records := []map[string]any{}

	if len(rows) < 2 {
		return records, nil
	}

	for _, row := range rows[1:] {
		record := map[string]any{}

		empty := true

		for i, header := range schema.Headers {
			cell := ""
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}

			if cell != "" {
				empty = false
			}

			record[header] = decodeCell(schema, header, cell)
		}

		if !empty {
			records = append(records, record)
		}
	}

	return records, nil
}

func decodeCell(schema Schema, header, cell string) any {
	switch {
	case schema.has(schema.Structured, header):
		if cell == "" {
			return nil
		}

		var doc any
		if err := json.Unmarshal([]byte(cell), &doc); err != nil {
			// Keep malformed cells as text rather than lose them.
			return cell
		}

		return doc
	case schema.has(schema.Numeric, header):
		v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
		if err != nil {
			return float64(0)
		}

		return v
	case schema.has(schema.Bool, header):
		return cell == "TRUE" || cell == "true" || cell == "1"
	default:
		return cell
	}
}

func encodeCell(schema Schema, header string, value any) any {
	if value == nil {
		return ""
	}

	if schema.has(schema.Structured, header) {
		if s, ok := value.(string); ok {
			return s
		}

		data, err := json.Marshal(value)
		if err != nil {
			return ""
		}

		return string(data)
	}

	return value
}

// Append adds one record as a new row.
func (s *Store) Append(sheet string, record map[string]any) error {
	schema, ok := SchemaFor(sheet)
	if !ok {
		return fmt.Errorf("unknown sheet %s", sheet)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sheet, err)
	}

	row := make([]any, len(schema.Headers))
	for i, header := range schema.Headers {
		row[i] = encodeCell(schema, header, record[header])
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return fmt.Errorf("locating append row: %w", err)
	}

	if err := s.file.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("appending to %s: %w", sheet, err)
	}

	return s.save()
}

// Update overwrites the provided fields of the row whose id column
// matches id. Fields absent from the map are left untouched.
func (s *Store) Update(sheet, id string, fields map[string]any) error {
	schema, ok := SchemaFor(sheet)
	if !ok {
		return fmt.Errorf("unknown sheet %s", sheet)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rowNum, err := s.findRow(sheet, schema, id)
	if err != nil {
		return err
	}

	for col, header := range schema.Headers {
		value, present := fields[header]
		if !present || header == "id" {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("locating cell: %w", err)
		}

		if err := s.file.SetCellValue(sheet, cell, encodeCell(schema, header, value)); err != nil {
			return fmt.Errorf("updating %s: %w", sheet, err)
		}
	}

	return s.save()
}

// Delete removes the row whose id column matches id.
func (s *Store) Delete(sheet, id string) error {
	schema, ok := SchemaFor(sheet)
	if !ok {
		return fmt.Errorf("unknown sheet %s", sheet)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rowNum, err := s.findRow(sheet, schema, id)
	if err != nil {
		return err
	}

	if err := s.file.RemoveRow(sheet, rowNum); err != nil {
		return fmt.Errorf("deleting from %s: %w", sheet, err)
	}

	return s.save()
}

// Replace drops all data rows and installs the single given record;
// used for the singleton company profile.
func (s *Store) Replace(sheet string, record map[string]any) error {
	schema, ok := SchemaFor(sheet)
	if !ok {
		return fmt.Errorf("unknown sheet %s", sheet)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.file.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sheet, err)
	}

	for i := len(rows); i >= 2; i-- {
		if err := s.file.RemoveRow(sheet, i); err != nil {
			return fmt.Errorf("clearing %s: %w", sheet, err)
		}
	}

	row := make([]any, len(schema.Headers))
	for i, header := range schema.Headers {
		row[i] = encodeCell(schema, header, record[header])
	}

	if err := s.file.SetSheetRow(sheet, "A2", &row); err != nil {
		return fmt.Errorf("writing %s: %w", sheet, err)
	}

	return s.save()
}

// findRow returns the 1-based row number matching id. Caller holds the
// lock.
func (s *Store) findRow(sheet string, schema Schema, id string) (int, error) {
	idCol := -1

	for i, h := range schema.Headers {
		if h == "id" {
			idCol = i
			break
		}
	}

	if idCol < 0 {
		return 0, fmt.Errorf("sheet %s has no id column", sheet)
	}

	rows, err := s.file.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", sheet, err)
	}

	if len(rows) < 2 {
		return 0, ErrRowNotFound
	}

	for i, row := range rows[1:] {
		if idCol < len(row) && strings.TrimSpace(row[idCol]) == id {
			return i + 2, nil
		}
	}

	return 0, ErrRowNotFound
}
