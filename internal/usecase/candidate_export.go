package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"hr-platform/internal/domain"
	"hr-platform/pkg/apperror"
	"hr-platform/pkg/logger"

	"github.com/xuri/excelize/v2"
)

const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

// exportHeaders holds the spreadsheet header for each exportable column.
var exportHeaders = map[string]string{
	"id":            "ID",
	"full_name":     "FULL NAME",
	"date_of_birth": "DATE OF BIRTH",
	"email":         "EMAIL",
	"phone":         "PHONE",
	"skills":        "SKILLS",
}

// Export runs the query from page 1 with the export row cap and renders the
// selected columns.
func (u *candidateUsecase) Export(ctx context.Context, req domain.CandidateExportRequest) ([]byte, string, error) {
	columns, err := exportColumns(req.Columns)
	if err != nil {
		return nil, "", err
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = ExportFormatXLSX
	}
	if format != ExportFormatXLSX && format != ExportFormatCSV {
		return nil, "", apperror.BadRequest(fmt.Sprintf("Unsupported export format: %s", req.Format))
	}

	f := req.Query.Normalize()
	f.Page = 1
	f.PageSize = domain.MaxExportRows

	candidates, total, err := u.candidateRepo.Query(ctx, f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch candidates for export: %w", err)
	}

	var data []byte
	switch format {
	case ExportFormatCSV:
		data, err = exportCSV(candidates, columns)
	default:
		data, err = exportExcel(candidates, columns)
	}
	if err != nil {
		return nil, "", err
	}

	logger.Log.Info("candidates exported", "format", format, "rows", len(candidates), "total", total)
	filename := fmt.Sprintf("candidates_%s.%s", time.Now().Format("20060102_150405"), format)
	return data, filename, nil
}

// exportColumns validates the requested columns and drops duplicates. No
// columns selects all of them.
func exportColumns(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return domain.ExportableColumns, nil
	}

	seen := make(map[string]bool, len(requested))
	columns := make([]string, 0, len(requested))
	for _, col := range requested {
		col = strings.ToLower(strings.TrimSpace(col))
		if col == "" || seen[col] {
			continue
		}
		if _, ok := exportHeaders[col]; !ok {
			return nil, apperror.BadRequest(fmt.Sprintf("Invalid export column: %s", col))
		}
		seen[col] = true
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return domain.ExportableColumns, nil
	}
	return columns, nil
}

func exportExcel(candidates []domain.Candidate, columns []string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Candidates"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, exportHeaders[col]); err != nil {
			return nil, fmt.Errorf("failed to write header %s: %w", col, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	endCell, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheetName, "A1", endCell, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for rowIdx, candidate := range candidates {
		for colIdx, col := range columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, candidateFieldValue(candidate, col)); err != nil {
				return nil, fmt.Errorf("failed to write candidate %d %s: %w", candidate.ID, col, err)
			}
		}
	}

	for i := range columns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, colName, colName, 24); err != nil {
			return nil, fmt.Errorf("failed to size column %s: %w", colName, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func exportCSV(candidates []domain.Candidate, columns []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	record := make([]string, len(columns))
	for _, candidate := range candidates {
		for i, col := range columns {
			record[i] = fmt.Sprint(candidateFieldValue(candidate, col))
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func candidateFieldValue(c domain.Candidate, field string) interface{} {
	switch field {
	case "id":
		return c.ID
	case "full_name":
		return c.FullName
	case "date_of_birth":
		return c.DateOfBirth
	case "email":
		return c.Email
	case "phone":
		return c.Phone
	case "skills":
		names := make([]string, len(c.Skills))
		for i, s := range c.Skills {
			names[i] = s.Name
		}
		return strings.Join(names, ", ")
	default:
		return ""
	}
}

// ContentType returns the MIME type served for an export format.
func ContentType(format string) string {
	if strings.EqualFold(strings.TrimSpace(format), ExportFormatCSV) {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

