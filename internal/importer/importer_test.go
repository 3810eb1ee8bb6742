package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"semicolon", "Size;Grade;Length(mm);Quantity\nIPE200;S355;3000;4\n", ';'},
		{"comma", "Size,Grade,Length(mm),Quantity\nIPE200,S355,3000,4\n", ','},
		{"tab", "Size\tGrade\tLength(mm)\tQuantity\nIPE200\tS355\t3000\t4\n", '\t'},
		{"pipe", "Size|Grade|Length(mm)|Quantity\nIPE200|S355|3000|4\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("DetectCSVDelimiter() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectColumns(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Profile", "Steel Grade", "Length (mm)", "Qty", "kg/m"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Size != 0 {
		t.Errorf("Size = %d, want 0", mapping.Size)
	}
	if mapping.Grade != 1 {
		t.Errorf("Grade = %d, want 1", mapping.Grade)
	}
	if mapping.Length != 2 {
		t.Errorf("Length = %d, want 2", mapping.Length)
	}
	if mapping.Quantity != 3 {
		t.Errorf("Quantity = %d, want 3", mapping.Quantity)
	}
	if mapping.Weight != 4 {
		t.Errorf("Weight = %d, want 4", mapping.Weight)
	}
}

func TestDetectColumnsNoHeader(t *testing.T) {
	_, isHeader := DetectColumns([]string{"IPE200", "S355", "3000", "4"})
	if isHeader {
		t.Error("data row should not be detected as header")
	}
}

func TestImportCSVFromBytes(t *testing.T) {
	data := "Size;Grade;Length(mm);Quantity;Weight(kg/m)\n" +
		"IPE200;S355;3000;4;22.4\n" +
		"HEB160;S235;2500;2;42.6\n"

	result := ImportCSVFromBytes([]byte(data))
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(result.Parts))
	}

	p := result.Parts[0]
	if p.Size != "IPE200" || p.Grade != "S355" {
		t.Errorf("part 0 profile = %s/%s", p.Size, p.Grade)
	}
	if p.LengthMM != 3000 || p.Quantity != 4 {
		t.Errorf("part 0 = %dmm x%d", p.LengthMM, p.Quantity)
	}
	if p.WeightPerMeterKG != 22.4 {
		t.Errorf("part 0 weight = %v, want 22.4", p.WeightPerMeterKG)
	}
	if p.ID == "" {
		t.Error("imported part should get an ID")
	}
}

func TestImportCSVFromBytesCommaDelimited(t *testing.T) {
	data := "Size,Grade,Length,Qty\nIPE200,S355,3000,4\n"

	result := ImportCSVFromBytes([]byte(data))
	if len(result.Parts) != 1 {
		t.Fatalf("got %d parts, want 1: errors=%v", len(result.Parts), result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "comma") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected comma delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromBytesBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Size;Length(mm);Quantity\nIPE200;3000;1\n")...)

	result := ImportCSVFromBytes(data)
	if len(result.Parts) != 1 {
		t.Fatalf("got %d parts, want 1: errors=%v", len(result.Parts), result.Errors)
	}
	if result.Parts[0].Size != "IPE200" {
		t.Errorf("BOM not stripped from header, size = %q", result.Parts[0].Size)
	}
}

func TestImportCSVFromBytesWindows1252(t *testing.T) {
	// 0xD8 is a capital O with stroke in Windows-1252 but invalid UTF-8.
	data := []byte("Size;Length(mm);Quantity\nRD\xd820;3000;1\n")

	result := ImportCSVFromBytes(data)
	if len(result.Parts) != 1 {
		t.Fatalf("got %d parts, want 1: errors=%v", len(result.Parts), result.Errors)
	}
	if result.Parts[0].Size != "RDØ20" {
		t.Errorf("size = %q, want RDØ20", result.Parts[0].Size)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "windows-1252") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected encoding warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader(t *testing.T) {
	data := "Size|Length(mm)|Quantity\nIPE200|3000|2\n"

	result := ImportCSVFromReader(strings.NewReader(data), '|')
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Parts) != 1 || result.Parts[0].Quantity != 2 {
		t.Errorf("parts = %+v", result.Parts)
	}
}

func TestImportRowErrors(t *testing.T) {
	data := "Size;Length(mm);Quantity\n" +
		"IPE200;abc;4\n" +
		"IPE200;3000;xyz\n" +
		"IPE200;-100;4\n" +
		"IPE200;3000;4\n"

	result := ImportCSVFromBytes([]byte(data))
	if len(result.Parts) != 1 {
		t.Errorf("got %d parts, want 1", len(result.Parts))
	}
	if len(result.Errors) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(result.Errors), result.Errors)
	}
	if !strings.Contains(result.Errors[0], "Line 2") {
		t.Errorf("error should name the line: %q", result.Errors[0])
	}
}

func TestImportBlankProfileRowSkipped(t *testing.T) {
	data := "Size;Grade;Length(mm);Quantity\n" +
		";;3000;4\n" +
		"IPE200;S355;3000;4\n"

	result := ImportCSVFromBytes([]byte(data))
	if len(result.Errors) != 0 {
		t.Errorf("blank profile row should be skipped silently, got %v", result.Errors)
	}
	if len(result.Parts) != 1 {
		t.Errorf("got %d parts, want 1", len(result.Parts))
	}
}

func TestImportEmptyRowsSkipped(t *testing.T) {
	data := "Size;Length(mm);Quantity\n\n;;\nIPE200;3000;4\n"

	result := ImportCSVFromBytes([]byte(data))
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Parts) != 1 {
		t.Errorf("got %d parts, want 1", len(result.Parts))
	}
}

func TestImportMissingHeader(t *testing.T) {
	data := "IPE200;3000;4\nHEB160;2500;2\n"

	result := ImportCSVFromBytes([]byte(data))
	if len(result.Parts) != 0 {
		t.Errorf("got %d parts, want 0", len(result.Parts))
	}
	if len(result.Errors) == 0 {
		t.Fatal("expected header error")
	}
}

func TestImportMissingRequiredColumn(t *testing.T) {
	data := "Size;Grade\nIPE200;S355\n"

	result := ImportCSVFromBytes([]byte(data))
	if len(result.Errors) == 0 {
		t.Fatal("expected missing column error")
	}
	if !strings.Contains(result.Errors[0], "Length(mm)") || !strings.Contains(result.Errors[0], "Quantity") {
		t.Errorf("error should list missing columns: %q", result.Errors[0])
	}
}

func TestImportEmptyFile(t *testing.T) {
	result := ImportCSVFromBytes([]byte("  \n "))
	if len(result.Errors) == 0 {
		t.Fatal("expected error for empty file")
	}
}

func TestImportCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.csv")
	data := "Size;Grade;Length(mm);Quantity\nIPE200;S355;3000;4\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Parts) != 1 {
		t.Fatalf("got %d parts, want 1: errors=%v", len(result.Parts), result.Errors)
	}
}

func TestImportCSVMissingFile(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing file")
	}
}

func TestImportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Size", "Grade", "Length(mm)", "Quantity", "Weight(kg/m)"},
		{"IPE200", "S355", 3000, 4, 22.4},
		{"HEB160", "S235", 2500, 2, 42.6},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	result := ImportExcel(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(result.Parts))
	}
	if result.Parts[1].Size != "HEB160" || result.Parts[1].LengthMM != 2500 {
		t.Errorf("part 1 = %+v", result.Parts[1])
	}
}

func TestImportFileDispatch(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "parts.csv")
	data := "Size;Length(mm);Quantity\nIPE200;3000;1\n"
	if err := os.WriteFile(csvPath, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportFile(csvPath)
	if len(result.Parts) != 1 {
		t.Fatalf("got %d parts, want 1: errors=%v", len(result.Parts), result.Errors)
	}
}
