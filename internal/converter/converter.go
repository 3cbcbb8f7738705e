package converter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/gridedit/internal/grid"
	"github.com/nconklindev/gridedit/internal/types"

	"github.com/xuri/excelize/v2"
)

const RowDetectionLimit = 10

// Source is the loaded table an export reads from.
type Source interface {
	Export() (string, error)
	Grid() (grid.Grid, bool)
}

// FormatOf maps a file extension to a supported format.
func FormatOf(path string) (types.Format, error) {
	ext := types.Format(strings.ToLower(filepath.Ext(path)))
	switch ext {
	case types.FormatCSV, types.FormatXLSX:
		return ext, nil
	default:
		return "", fmt.Errorf("unsupported file type: %q", ext)
	}
}

// OutputPath places the export next to input as <base><suffix><format>.
func OutputPath(input, suffix string, format types.Format) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(input, ext)
	if format == "" {
		format = types.Format(strings.ToLower(ext))
	}
	return base + suffix + string(format)
}

// ReadFile reads a file into comma/newline text ready for loading.
func ReadFile(filePath string) (*types.FileData, error) {
	format, err := FormatOf(filePath)
	if err != nil {
		return nil, err
	}

	switch format {
	case types.FormatXLSX:
		return readXLSXData(filePath)
	default:
		return readCSVData(filePath)
	}
}

func readCSVData(filePath string) (*types.FileData, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(filePath), err)
	}

	slog.Debug("read csv", "path", filePath, "bytes", len(data))
	return &types.FileData{
		Path:   filePath,
		Format: types.FormatCSV,
		Text:   string(data),
	}, nil
}

func readXLSXData(filePath string) (*types.FileData, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(filePath), err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
	}

	if len(rows) == 0 {
		return &types.FileData{Path: filePath, Format: types.FormatXLSX}, nil
	}

	headerRowIdx := findHeaderRow(rows)
	if headerRowIdx == -1 {
		headerRowIdx = 0
	}

	g := make(grid.Grid, 0, len(rows)-headerRowIdx)
	width := len(rows[headerRowIdx])
	for _, r := range rows[headerRowIdx:] {
		row := make(grid.Row, max(width, len(r)))
		copy(row, r)
		g = append(g, row)
	}

	if n := countDelimited(g); n > 0 {
		slog.Warn("xlsx cells contain commas or newlines; structure will shift on load",
			"path", filePath, "cells", n)
	}

	slog.Debug("read xlsx", "path", filePath, "sheet", sheetName, "header_row", headerRowIdx, "rows", len(g))
	return &types.FileData{
		Path:      filePath,
		Format:    types.FormatXLSX,
		Text:      grid.Serialize(g),
		HeaderRow: headerRowIdx,
	}, nil
}

// WriteFile writes g to path in the format implied by its extension.
func WriteFile(path string, g grid.Grid) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	switch format {
	case types.FormatXLSX:
		return writeXLSX(path, g)
	default:
		if err := os.WriteFile(path, []byte(grid.Serialize(g)), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", filepath.Base(path), err)
		}
		return nil
	}
}

func writeXLSX(path string, g grid.Grid) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)

	for i, r := range g {
		values := make([]interface{}, len(r))
		for j, cell := range r {
			values[j] = cell
		}
		start, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, start, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	// Row 1 is rendered as the header.
	if len(g) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		if err := f.SetRowStyle(sheetName, 1, 1, style); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Export writes the loaded table to outputFile.
func Export(src Source, inputFile, outputFile string) (*types.ExportResult, error) {
	format, err := FormatOf(outputFile)
	if err != nil {
		return nil, err
	}

	text, err := src.Export()
	if err != nil {
		return nil, err
	}
	g, ok := src.Grid()
	if !ok {
		return nil, errors.New("export: no grid")
	}

	if format == types.FormatCSV {
		if err := os.WriteFile(outputFile, []byte(text), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", filepath.Base(outputFile), err)
		}
	} else if err := WriteFile(outputFile, g); err != nil {
		return nil, err
	}

	slog.Info("exported", "input", inputFile, "output", outputFile, "rows", g.Rows(), "cols", g.Cols())
	return &types.ExportResult{
		InputFile:  inputFile,
		OutputFile: outputFile,
		Format:     format,
		Rows:       g.Rows(),
		Columns:    g.Cols(),
	}, nil
}

// findHeaderRow locates the first row that appears to be a header
// by finding the row with the most non-empty text cells
func findHeaderRow(rows [][]string) int {
	maxNonEmpty := 0
	headerIdx := -1

	searchLimit := min(len(rows), RowDetectionLimit*2)

	for i := 0; i < searchLimit; i++ {
		nonEmptyCount := 0
		hasText := false

		for _, cell := range rows[i] {
			trimmed := strings.TrimSpace(cell)
			if trimmed != "" {
				nonEmptyCount++
				if containsLetters(trimmed) {
					hasText = true
				}
			}
		}

		// Header should have multiple columns AND contain text
		if nonEmptyCount >= 2 && hasText && nonEmptyCount > maxNonEmpty {
			maxNonEmpty = nonEmptyCount
			headerIdx = i
		}
	}

	return headerIdx
}

func containsLetters(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

func countDelimited(g grid.Grid) int {
	n := 0
	for _, r := range g {
		for _, cell := range r {
			if strings.ContainsAny(cell, grid.FieldSep+grid.RowSep) {
				n++
			}
		}
	}
	return n
}
