// Package importer provides CSV and Excel import functionality for steel
// cut lists. It supports automatic delimiter detection, legacy encoding
// fallback, flexible column mapping, and case-insensitive header
// recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/barcut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Rows that fail
// validation are excluded from Parts and recorded in Errors; the import
// itself only fails when no rows could be read at all.
type ImportResult struct {
	Parts    []model.PartRequest
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Size     int
	Grade    int
	Length   int
	Quantity int
	Weight   int
}

// headerAliases maps canonical column names to their accepted aliases
// (all lowercase).
var headerAliases = map[string][]string{
	"size":     {"size", "profile", "section", "profile size"},
	"grade":    {"grade", "steel grade", "quality"},
	"length":   {"length(mm)", "length (mm)", "length", "len", "length_mm"},
	"quantity": {"quantity", "qty", "count", "demand", "pcs", "pieces", "amount"},
	"weight":   {"weight(kg/m)", "weight (kg/m)", "weight", "kg/m", "unit weight", "weight_kg_m"},
}

// DetectCSVDelimiter reads the file content and determines the most
// likely CSV delimiter. It tries semicolon, comma, tab, and pipe. The
// delimiter that produces the most consistent multi-column layout wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{';', ',', '\t', '|'}
	bestDelimiter := ';'
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// performs case-insensitive matching against known aliases for each
// column role. Returns the mapping and true when a header was detected.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Size:     -1,
		Grade:    -1,
		Length:   -1,
		Quantity: -1,
		Weight:   -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "size":
					if mapping.Size == -1 {
						mapping.Size = i
					}
				case "grade":
					if mapping.Grade == -1 {
						mapping.Grade = i
					}
				case "length":
					if mapping.Length == -1 {
						mapping.Length = i
					}
				case "quantity":
					if mapping.Quantity == -1 {
						mapping.Quantity = i
					}
				case "weight":
					if mapping.Weight == -1 {
						mapping.Weight = i
					}
				}
			}
		}
	}

	return mapping, isHeader
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a PartRequest from a row using the given column
// mapping. A row whose size and grade are both empty is skipped without
// an error, matching how blank filler rows appear in real cut lists.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.PartRequest, bool, string) {
	size := getCell(row, mapping.Size)
	grade := getCell(row, mapping.Grade)
	if size == "" && grade == "" {
		return model.PartRequest{}, false, ""
	}

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return model.PartRequest{}, false, fmt.Sprintf("%s: Missing length value", rowLabel)
	}
	length, err := strconv.Atoi(lengthStr)
	if err != nil {
		return model.PartRequest{}, false, fmt.Sprintf("%s: Invalid length %q", rowLabel, lengthStr)
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.PartRequest{}, false, fmt.Sprintf("%s: Missing quantity value", rowLabel)
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.PartRequest{}, false, fmt.Sprintf("%s: Invalid quantity %q", rowLabel, qtyStr)
	}

	if length <= 0 || qty <= 0 {
		return model.PartRequest{}, false, fmt.Sprintf("%s: Length and quantity must be positive", rowLabel)
	}

	var weight float64
	if weightStr := getCell(row, mapping.Weight); weightStr != "" {
		weight, err = strconv.ParseFloat(weightStr, 64)
		if err != nil {
			return model.PartRequest{}, false, fmt.Sprintf("%s: Invalid weight %q", rowLabel, weightStr)
		}
	}

	return model.NewPartRequest(size, grade, length, qty, weight), true, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports part requests from a CSV file. It normalizes the
// encoding, detects the delimiter, and maps columns by header names.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	return ImportCSVFromBytes(data)
}

// ImportCSVFromBytes imports part requests from raw CSV bytes, for
// callers that already hold the content in memory (uploads).
func ImportCSVFromBytes(data []byte) ImportResult {
	result := ImportResult{}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	decoded, encoding := DecodeText(data)
	if encoding != "utf-8" && encoding != "utf-8-sig" {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Decoded file as %s", encoding))
	}

	delimiter := DetectCSVDelimiter(decoded)
	if delimiter != ';' {
		delimName := map[rune]string{',': "comma", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports part requests from a CSV reader with a
// specific delimiter. This is useful for testing or when the delimiter
// is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports part requests from an Excel (.xlsx) file. Reads
// the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportFile dispatches to the CSV or Excel importer based on the file
// extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It maps columns from the header row and parses each following row.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	if !hasHeader {
		result.Errors = append(result.Errors, "No header row found (expected Size, Grade, Length(mm), Quantity columns)")
		return result
	}

	missing := []string{}
	if mapping.Size == -1 && mapping.Grade == -1 {
		missing = append(missing, "Size or Grade")
	}
	if mapping.Length == -1 {
		missing = append(missing, "Length(mm)")
	}
	if mapping.Quantity == -1 {
		missing = append(missing, "Quantity")
	}
	if len(missing) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
		return result
	}

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		part, ok, errMsg := parseRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if !ok {
			continue
		}
		result.Parts = append(result.Parts, part)
	}

	return result
}
