package services

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/Chaukil/scanchi/models"
	"github.com/xuri/excelize/v2"
)

// ErrNothingToExport is returned when a session has no records.
var ErrNothingToExport = errors.New("no records to export")

const exportSheet = "Danh Sách"

// ExportService serializes session records into a downloadable spreadsheet.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// Filename returns the download name for an export generated now.
func (e *ExportService) Filename(now time.Time) string {
	return fmt.Sprintf("Ket_Qua_Quet_%s.xlsx", now.Format("2006-01-02"))
}

// BuildWorkbook renders the records as an XLSX workbook with a running index
// column. The row order follows the session's first-appearance order.
func (e *ExportService) BuildWorkbook(records []models.SessionRecord) (*bytes.Buffer, error) {
	if len(records) == 0 {
		return nil, ErrNothingToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := []any{"STT", "Item", "Số Lượng"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{i + 1, rec.Item, rec.Quantity}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf, nil
}
