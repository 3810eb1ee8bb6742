package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/barcut/internal/engine"
	"github.com/piwi3910/barcut/internal/model"
	"github.com/xuri/excelize/v2"
)

// buildTestResults creates a realistic optimization result for testing.
func buildTestResults() ([]engine.GroupResult, model.CutSettings) {
	settings := model.CutSettings{StockLengthMM: 6000, KerfMM: 2}
	parts := []model.PartRequest{
		{Size: "IPE200", Grade: "S355", LengthMM: 2400, Quantity: 5, WeightPerMeterKG: 22.4},
		{Size: "HEB160", Grade: "S235", LengthMM: 1800, Quantity: 3, WeightPerMeterKG: 42.6},
	}
	return engine.PackGroups(model.GroupByProfile(parts), settings), settings
}

func TestExportExcel_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.xlsx")

	results, settings := buildTestResults()
	if err := ExportExcel(path, results, settings); err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("workbook was not created: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("cannot read sheet: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("sheet is empty")
	}
	if rows[0][0] != "--- Final Aggregate Report ---" {
		t.Errorf("first row = %q", rows[0][0])
	}

	foundProfile := false
	foundPatterns := false
	for _, row := range rows {
		if len(row) > 0 && row[0] == "IPE200_S355" {
			foundProfile = true
		}
		if len(row) > 0 && row[0] == "--- Pattern Details Table ---" {
			foundPatterns = true
		}
	}
	if !foundProfile {
		t.Error("aggregate block missing IPE200_S355 row")
	}
	if !foundPatterns {
		t.Error("pattern details block missing")
	}
}

func TestExportExcel_EmptyResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := ExportExcel(path, nil, model.DefaultSettings()); err == nil {
		t.Fatal("expected error for empty results, got nil")
	}
}

func TestWriteWorkbook_Streams(t *testing.T) {
	results, settings := buildTestResults()

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, results, settings); err != nil {
		t.Fatalf("WriteWorkbook returned error: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("no bytes written")
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("streamed bytes are not a valid workbook: %v", err)
	}
	f.Close()
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.pdf")

	results, settings := buildTestResults()
	if err := ExportPDF(path, results, settings); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	// A valid PDF with a summary page plus two profile pages should be a
	// reasonable size
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportPDF(path, nil, model.DefaultSettings()); err == nil {
		t.Fatal("expected error for empty results, got nil")
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	results, settings := buildTestResults()
	if err := ExportLabels(path, results, settings); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_EmptyResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportLabels(path, nil, model.DefaultSettings()); err == nil {
		t.Fatal("expected error for empty results, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	results, settings := buildTestResults()

	labels := CollectLabelInfos(results, settings)
	if len(labels) == 0 {
		t.Fatal("no labels collected")
	}

	totalBins := 0
	for _, res := range results {
		totalBins += len(res.Bins)
	}
	if len(labels) != totalBins {
		t.Errorf("got %d labels, want one per bar (%d)", len(labels), totalBins)
	}

	first := labels[0]
	if first.Profile != "IPE200_S355" {
		t.Errorf("first label profile = %q", first.Profile)
	}
	if first.StockLengthMM != 6000 {
		t.Errorf("first label stock length = %d", first.StockLengthMM)
	}
	if !strings.Contains(first.CutDetails, "IPE200_S355") {
		t.Errorf("cut details = %q", first.CutDetails)
	}

	// QR payload must round-trip as JSON
	data, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("label does not marshal: %v", err)
	}
	var back LabelInfo
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("label does not unmarshal: %v", err)
	}
	if back != first {
		t.Errorf("round trip mismatch: %+v != %+v", back, first)
	}
}
