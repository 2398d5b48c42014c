package dataset_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/cashviz/internal/dataset"
)

func writeTab(t *testing.T, lines []string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "uct_extract.tab")
	if err := os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

func header() string {
	return strings.Join(dataset.AnalysisColumns(), "\t")
}

// row builds one respondent line. Fixed columns: village=1, spillover=0,
// control_village=0, psy_index_z_miss0=0.
func row(id, female, male, treat, pure, lump, monthly, large, small, z0, z1 string) string {
	return strings.Join([]string{
		id, female, male, "1", treat, "0", pure, "0",
		lump, monthly, large, small, z0, "0", z1,
	}, "\t")
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := dataset.Load(filepath.Join(t.TempDir(), "nope.tab")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadMissingColumn(t *testing.T) {
	// Drop the follow-up index column entirely.
	cols := dataset.AnalysisColumns()
	trimmed := strings.Join(cols[:len(cols)-1], "\t")
	p := writeTab(t, []string{
		trimmed,
		strings.Join([]string{"id1", "1", "0", "1", "0", "0", "0", "0", "0", "0", "0", "0", "0.1", "0"}, "\t"),
	})
	_, err := dataset.Load(p)
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	if !strings.Contains(err.Error(), dataset.ColIndexFollowUp) {
		t.Fatalf("error should name the missing column, got: %v", err)
	}
}

func TestDeriveDeltaAndGlobalMean(t *testing.T) {
	p := writeTab(t, []string{
		header(),
		row("id1", "1", "0", "0", "0", "0", "0", "0", "0", "0.1", "0.3"), // delta 0.2
		row("id2", "1", "0", "0", "0", "0", "0", "0", "0", "", "0.3"),    // missing baseline
		row("id3", "0", "1", "0", "0", "0", "0", "0", "0", "0.2", ""),    // missing follow-up
		row("id4", "0", "1", "0", "0", "0", "0", "0", "0", "0.00", "0.05"),
	})
	fr, err := dataset.Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fr.Rows() != 4 {
		t.Fatalf("expected 4 rows, got %d", fr.Rows())
	}

	avg := fr.Derive()
	// (0.2 + 0.05) / 2 = 0.125, rounded to 4 decimals.
	if math.Abs(avg-0.125) > 1e-12 {
		t.Fatalf("global mean delta = %v, want 0.125", avg)
	}

	delta := fr.Delta()
	if math.Abs(delta[0]-0.2) > 1e-9 {
		t.Errorf("delta[0] = %v, want 0.2", delta[0])
	}
	if !math.IsNaN(delta[1]) || !math.IsNaN(delta[2]) {
		t.Errorf("missing operands must propagate: got %v, %v", delta[1], delta[2])
	}
	if math.Abs(delta[3]-0.05) > 1e-9 {
		t.Errorf("delta[3] = %v, want 0.05", delta[3])
	}
}

func TestFlagColumnsNullable(t *testing.T) {
	lines := []string{
		header(),
		row("id1", "", "1", "1", "0", "0", "1", "0", "0", "0.0", "0.1"),
	}
	fr, err := dataset.Load(writeTab(t, lines))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	female := fr.Floats(dataset.ColFemale)
	if !math.IsNaN(female[0]) {
		t.Fatalf("empty flag cell should be missing, got %v", female[0])
	}
	monthly := fr.Floats(dataset.ColTreatMonthly)
	if monthly[0] != 1 {
		t.Fatalf("monthly flag = %v, want 1", monthly[0])
	}
}
