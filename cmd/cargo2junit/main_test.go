// Package main tests for the cargo2junit CLI entry point.
package main

import (
	"os/exec"
	"strings"
	"testing"
)

// TestMain_BuildVerification verifies the binary builds successfully.
func TestMain_BuildVerification(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "build", "-o", "/dev/null", ".")
	if err := cmd.Run(); err != nil {
		t.Fatalf("failed to build main package: %v", err)
	}
}

// TestMain_HelpFlag verifies the --help flag works correctly.
func TestMain_HelpFlag(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "run", ".", "--help")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("--help failed: %v\noutput: %s", err, out)
	}
	if len(out) == 0 {
		t.Error("--help produced empty output")
	}
}

// TestMain_Stdin verifies a conversion through the real binary.
func TestMain_Stdin(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("go", "run", ".")
	cmd.Stdin = strings.NewReader("running 0 tests\n\ntest result: ok. 0 passed; 0 failed; 0 ignored; 0 measured; 0 filtered out\n")
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("conversion failed: %v", err)
	}
	want := `<testsuites><testsuite failures="0" skip="0" tests="0"/></testsuites>`
	if !strings.Contains(string(out), want) {
		t.Errorf("output = %q, want containing %q", out, want)
	}
}
