// Package spreadsheet reads and writes lead workbooks in xlsx format.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/leadflow/leadflow-backend/internal/domain"
)

const (
	// SheetName is the worksheet written on export.
	SheetName = "Leads"
	// FileName is the suggested download name.
	FileName = "leads.xlsx"
	// ContentType is the xlsx MIME type.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	createdLayout = "2006-01-02 15:04"
)

var exportHeader = []any{"Name", "Email", "Phone", "Source", "Status", "Tags", "Created"}

// Codec converts between workbooks and leads. The zero value is ready to use.
type Codec struct{}

// Decode reads the first worksheet of r. The first row is a header; columns
// are located by name (Name, Email, Phone, Source), case-insensitively and
// in any order. Blank rows are skipped.
func (Codec) Decode(r io.Reader) ([]domain.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable spreadsheet: %v", domain.ErrExternal, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: spreadsheet has no sheets", domain.ErrExternal)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", domain.ErrExternal, sheets[0], err)
	}
	if len(rows) == 0 {
		return []domain.ImportRow{}, nil
	}

	cols := headerIndex(rows[0])
	if _, ok := cols["name"]; !ok {
		return nil, domain.NewValidationError("file", "missing Name column")
	}
	if _, ok := cols["email"]; !ok {
		return nil, domain.NewValidationError("file", "missing Email column")
	}

	out := make([]domain.ImportRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec := domain.ImportRow{
			Line:   i + 2,
			Name:   cell(row, cols, "name"),
			Email:  cell(row, cols, "email"),
			Phone:  cell(row, cols, "phone"),
			Source: cell(row, cols, "source"),
		}
		if rec.Name == "" && rec.Email == "" && rec.Phone == "" && rec.Source == "" {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// Encode writes leads to w as a single-sheet workbook.
func (Codec) Encode(w io.Writer, leads []domain.Lead) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}
	if err := sw.SetRow("A1", exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, l := range leads {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		row := []any{
			l.Name,
			l.Email,
			l.Phone,
			l.Source,
			l.Status.String(),
			strings.Join(l.Tags, ", "),
			l.CreatedAt.UTC().Format(createdLayout),
		}
		if err := sw.SetRow(axis, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[key]; key != "" && !dup {
			idx[key] = i
		}
	}
	return idx
}

func cell(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
