package logsummary

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by WriteXLSX.
const SheetName = "summary"

// WriteCSV writes the header and one row per record to path, replacing any
// existing file.
func WriteCSV(path string, records []Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary CSV: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := writer.Write(r.Row()); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", r.File, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing summary CSV: %w", err)
	}
	return file.Close()
}

// WriteXLSX writes the same table as WriteCSV to a workbook. Counters that
// fit in uint64 are stored as numbers, larger ones as their digits, and
// absent ones as empty cells.
func WriteXLSX(path string, records []Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing XLSX header: %w", err)
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Trace, r.Policy,
			cellValue(r.Hits), cellValue(r.Misses), cellValue(r.TotalAccesses),
			nil,
			cellValue(r.Instructions), cellValue(r.Cycles),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing XLSX row for %s: %w", r.File, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving summary XLSX: %w", err)
	}
	return nil
}

func cellValue(o Optional) interface{} {
	if !o.Valid {
		return nil
	}
	if v, ok := o.Uint64(); ok {
		return v
	}
	return o.Text
}
