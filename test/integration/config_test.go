package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AndreyAkinshin/cargo2junit/internal/cli"
	"github.com/AndreyAkinshin/cargo2junit/internal/config"
	"github.com/AndreyAkinshin/cargo2junit/pkg/cargo2junit"
)

// TestConfigFixture loads .cargo2junit.yaml from the working directory,
// the way a project would check it in.
func TestConfigFixture(t *testing.T) {
	chdir(t, filepath.Join(fixturesDir(), "config"))
	t.Setenv(config.EnvVar, "")

	cfg, path, warnings, err := config.LoadDefault("")
	if err != nil {
		t.Fatalf("LoadDefault() error = %v", err)
	}
	if path != config.DefaultFileName {
		t.Errorf("path = %q, want %q", path, config.DefaultFileName)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if cfg.Input != "input.txt" || cfg.Output != config.Stdio || !cfg.Summary || !cfg.FailOnTestFailure {
		t.Errorf("config = %+v", cfg)
	}

	// The fixture has failing tests and asks for a non-zero exit.
	outPath := filepath.Join(t.TempDir(), "junit.xml")
	if code := cli.Run([]string{"-q", "-o", outPath}); code != cargo2junit.ExitFailure {
		t.Errorf("Run() = %d, want %d", code, cargo2junit.ExitFailure)
	}
	report := readFile(t, outPath)
	if !strings.Contains(report, `<testsuite failures="2" skip="0" tests="2">`) {
		t.Errorf("report does not contain the failing module:\n%s", report)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	outPath := filepath.Join(dir, "env.xml")
	cfgPath := filepath.Join(dir, "ci.yaml")
	in := filepath.Join(fixturesDir(), "convert", "doctests", "input.txt")
	content := "input: " + in + "\noutput: " + outPath + "\nquiet: true\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.EnvVar, cfgPath)

	if code := cli.Run([]string{"convert"}); code != cargo2junit.ExitSuccess {
		t.Fatalf("Run() = %d, want %d", code, cargo2junit.ExitSuccess)
	}
	want := readFile(t, filepath.Join(fixturesDir(), "convert", "doctests", "expected.xml"))
	if got := readFile(t, outPath); got != want {
		t.Errorf("report =\n%s\nwant\n%s", got, want)
	}
}

func TestInvalidConfigExitCode(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv(config.EnvVar, "")

	if err := os.WriteFile(config.DefaultFileName, []byte("quiet: true\nverbose: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if code := cli.Run([]string{"-o", "junit.xml", filepath.Join(fixturesDir(), "convert", "doctests", "input.txt")}); code != cargo2junit.ExitConfigError {
		t.Errorf("Run() = %d, want %d", code, cargo2junit.ExitConfigError)
	}
}
