package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/cashviz/internal/dataset"
)

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) {
	t.Helper()
	// Reset sticky flags that may persist Changed state across invocations
	if f := renderCmd.Flags(); f != nil {
		for _, name := range []string{"png", "html", "xlsx"} {
			if fl := f.Lookup(name); fl != nil {
				_ = fl.Value.Set("")
				fl.Changed = false
			}
		}
		if fl := f.Lookup("manifest"); fl != nil {
			_ = fl.Value.Set("false")
			fl.Changed = false
		}
	}
	renPNG, renHTML, renXLSX, renManifest = "", "", "", false
	flagDataset = ""
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
}

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	lines := []string{strings.Join(dataset.AnalysisColumns(), "\t")}
	row := func(id, female, male, treat, lump, monthly, large, small, z0, z1 string) string {
		return strings.Join([]string{
			id, female, male, "1", treat, "0", "0", "0",
			lump, monthly, large, small, z0, "0", z1,
		}, "\t")
	}
	lines = append(lines,
		row("f1", "1", "0", "0", "0", "0", "0", "0", "0", "0.05"),
		row("f2", "1", "0", "1", "0", "0", "0", "1", "0.1", "0"),
		row("f3", "1", "0", "1", "1", "0", "0", "0", "0", "0.05"),
		row("f4", "1", "0", "1", "0", "1", "0", "0", "0", "0.3"),
		row("f5", "1", "0", "1", "0", "0", "1", "0", "0.1", "0.2"),
		row("m1", "0", "1", "1", "0", "1", "0", "0", "0", "0.1"),
		row("m2", "0", "1", "1", "0", "1", "0", "0", "0.2", "0.5"),
	)
	p := filepath.Join(dir, "uct_extract.tab")
	if err := os.WriteFile(p, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

func TestCLI_RenderWritesAllArtifacts(t *testing.T) {
	ds := writeFixture(t)
	out := t.TempDir()
	png := filepath.Join(out, "cover.png")
	html := filepath.Join(out, "viz.html")
	xlsx := filepath.Join(out, "summary.xlsx")

	runCmd(t, "render",
		"--dataset", ds,
		"--png", png,
		"--html", html,
		"--xlsx", xlsx,
		"--manifest",
	)

	for _, p := range []string{png, html, xlsx, png + ".run.json"} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("expected artifact %s: %v", p, err)
		}
		if info.Size() == 0 {
			t.Fatalf("artifact %s is empty", p)
		}
	}
}

func TestCLI_RenderMissingDataset(t *testing.T) {
	renPNG, renHTML, renXLSX, renManifest = "", "", "", false
	flagDataset = filepath.Join(t.TempDir(), "absent.tab")
	defer func() { flagDataset = "" }()
	rootCmd.SetArgs([]string{"render", "--dataset", flagDataset})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected render to fail on a missing dataset")
	}
}

func TestCLI_Summary(t *testing.T) {
	ds := writeFixture(t)
	runCmd(t, "summary", "--dataset", ds)
}

func TestCLI_Inspect(t *testing.T) {
	ds := writeFixture(t)
	runCmd(t, "inspect", "--dataset", ds)
}
