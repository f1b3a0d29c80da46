// Package integration contains end-to-end tests for cargo2junit.
package integration

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AndreyAkinshin/cargo2junit/internal/cli"
	"github.com/AndreyAkinshin/cargo2junit/internal/config"
	"github.com/AndreyAkinshin/cargo2junit/pkg/cargo2junit"
)

var (
	fixturesDirOnce sync.Once
	fixturesDirPath string
)

// fixturesDir returns the path to the test fixtures directory.
func fixturesDir() string {
	fixturesDirOnce.Do(func() {
		_, filename, _, _ := runtime.Caller(0)
		fixturesDirPath = filepath.Join(filepath.Dir(filename), "..", "fixtures")
	})
	return fixturesDirPath
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func convertCases(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(fixturesDir(), "convert"))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		t.Fatal("no conversion fixtures found")
	}
	return names
}

func TestConvertFixtures(t *testing.T) {
	t.Parallel()

	for _, name := range convertCases(t) {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := filepath.Join(fixturesDir(), "convert", name)

			got, err := cargo2junit.Convert(readFile(t, filepath.Join(dir, "input.txt")))
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}
			if diff := cmp.Diff(readFile(t, filepath.Join(dir, "expected.xml")), got); diff != "" {
				t.Errorf("report mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestCLIFixtures runs the command-line entry point against every fixture
// and compares the written report with the library result.
func TestCLIFixtures(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(config.EnvVar, "")

	for _, name := range convertCases(t) {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(fixturesDir(), "convert", name)
			outPath := filepath.Join(t.TempDir(), "junit.xml")

			if code := cli.Run([]string{"-q", "-o", outPath, filepath.Join(dir, "input.txt")}); code != cargo2junit.ExitSuccess {
				t.Fatalf("Run() = %d, want %d", code, cargo2junit.ExitSuccess)
			}
			if diff := cmp.Diff(readFile(t, filepath.Join(dir, "expected.xml")), readFile(t, outPath)); diff != "" {
				t.Errorf("report mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
