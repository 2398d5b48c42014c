package export_test

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/cashviz/internal/export"
	"github.com/KaramelBytes/cashviz/internal/summary"
)

func testTable() *summary.Table {
	return &summary.Table{
		Cells: []summary.Cell{
			{Group: summary.GroupSmall, Gender: summary.GenderFemale, Delta: -0.1, N: 3, DeltaDisplay: "-0.1000", PercentileGain: "-4.0 pp"},
			{Group: summary.GroupSmall, Gender: summary.GenderMale, Delta: math.NaN(), N: 0, DeltaDisplay: "n/a", PercentileGain: "n/a"},
			{Group: summary.GroupMonthly, Gender: summary.GenderFemale, Delta: 0.3, N: 4, DeltaDisplay: "0.3000", PercentileGain: "+11.8 pp"},
			{Group: summary.GroupMonthly, Gender: summary.GenderMale, Delta: 0.2, N: 2, DeltaDisplay: "0.2000", PercentileGain: "+7.9 pp"},
		},
		GroupOrder: []string{summary.GroupSmall, summary.GroupMonthly},
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	if err := export.WriteWorkbook(testTable(), 0.1133, 940, path); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	// Rows follow display order: Small first, Female before Male.
	checks := map[string]string{
		"A2": summary.GroupSmall,
		"B2": summary.GenderFemale,
		"E2": "-4.0 pp",
		"C3": "n/a",
		"A4": summary.GroupMonthly,
		"E5": "+7.9 pp",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue("Group Summary", cell)
		if err != nil {
			t.Fatalf("read %s: %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s = %q, want %q", cell, got, want)
		}
	}

	rows, err := f.GetCellValue("Dataset", "B1")
	if err != nil {
		t.Fatalf("read dataset sheet: %v", err)
	}
	if rows != "940" {
		t.Errorf("dataset rows = %q, want 940", rows)
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	data := []byte("surveyid\tfemaleres\nid1\t1\n")
	dsPath := filepath.Join(dir, "extract.tab")
	if err := os.WriteFile(dsPath, data, 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	m, err := export.NewManifest(dsPath, 1, 0.1133, []string{"cover.png", "viz.html"})
	if err != nil {
		t.Fatalf("new manifest: %v", err)
	}
	if m.RunID == "" {
		t.Error("run id should not be empty")
	}
	if want := fmt.Sprintf("%x", sha256.Sum256(data)); m.DatasetSHA256 != want {
		t.Errorf("sha256 = %s, want %s", m.DatasetSHA256, want)
	}

	outPath := filepath.Join(dir, "cover.png.run.json")
	if err := m.Write(outPath); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var got export.Manifest
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.AvgDelta == nil || *got.AvgDelta != 0.1133 {
		t.Errorf("avg delta = %v, want 0.1133", got.AvgDelta)
	}
	if len(got.Outputs) != 2 {
		t.Errorf("outputs = %v, want 2 entries", got.Outputs)
	}
}

func TestManifestMissingAverage(t *testing.T) {
	dsPath := filepath.Join(t.TempDir(), "extract.tab")
	if err := os.WriteFile(dsPath, []byte("x\n"), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	m, err := export.NewManifest(dsPath, 0, math.NaN(), nil)
	if err != nil {
		t.Fatalf("new manifest: %v", err)
	}
	if m.AvgDelta != nil {
		t.Fatal("NaN average must serialize as null, not poison the JSON")
	}
	if err := m.Write(filepath.Join(t.TempDir(), "m.json")); err != nil {
		t.Fatalf("write: %v", err)
	}
}
