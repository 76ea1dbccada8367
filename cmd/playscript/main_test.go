package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const endlessRecursion = `{"type": "Program", "body": [
  {"type": "FunctionDeclaration", "id": {"type": "Identifier", "name": "spin"}, "params": [],
    "body": {"type": "Block", "body": [
      {"type": "ExpressionStatement", "expression": {"type": "FunctionCall", "callee": {"type": "Identifier", "name": "spin"}, "arguments": []}}
    ]}},
  {"type": "ExpressionStatement", "expression": {"type": "FunctionCall", "callee": {"type": "Identifier", "name": "spin"}, "arguments": []}}
]}`

const strayBreak = `{"type": "Program", "body": [{"type": "BreakStatement"}]}`

func TestVersion(t *testing.T) {
	code, stdout, _ := captureCLI(t, []string{"version"})
	if code != 0 || stdout != cliToolVersion+"\n" {
		t.Fatalf("version: code=%d stdout=%q", code, stdout)
	}
}

func TestUsageWithoutArguments(t *testing.T) {
	code, _, stderr := captureCLI(t, nil)
	if code != 1 || !strings.Contains(stderr, "Usage:") {
		t.Fatalf("expected usage on stderr, code=%d stderr=%q", code, stderr)
	}
}

func TestRunPrintsProgramOutput(t *testing.T) {
	program := fixturePath(t, "while_count")
	chdirTemp(t)

	for _, args := range [][]string{{"run", program}, {program}} {
		code, stdout, stderr := captureCLI(t, args)
		if code != 0 {
			t.Fatalf("%v: exit code %d, stderr=%q", args, code, stderr)
		}
		if stdout != "0\n1\n2\n" {
			t.Fatalf("%v: stdout = %q", args, stdout)
		}
	}
}

func TestRunReportsRuntimeError(t *testing.T) {
	program := fixturePath(t, "division_by_zero")
	chdirTemp(t)

	code, stdout, stderr := captureCLI(t, []string{"run", program})
	if code != 1 {
		t.Fatalf("expected failure, got %d", code)
	}
	if stdout != "before\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "integer division by zero") {
		t.Fatalf("stderr missing runtime error: %q", stderr)
	}
}

func TestRunHonorsConfiguredCallDepth(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, "playscript.yml"), "run:\n  max_call_depth: 5\n")
	writeFile(t, filepath.Join(dir, "spin.json"), endlessRecursion)

	code, _, stderr := captureCLI(t, []string{"run", "spin.json"})
	if code != 1 || !strings.Contains(stderr, "maximum call depth 5 exceeded") {
		t.Fatalf("expected call depth error, code=%d stderr=%q", code, stderr)
	}
}

func TestInvalidConfigurationStopsCLI(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, "playscript.yml"), "run:\n  max_call_depth: -1\n")

	code, _, stderr := captureCLI(t, []string{"run", "missing.json"})
	if code != 1 || !strings.Contains(stderr, "run.max_call_depth must not be negative") {
		t.Fatalf("expected configuration error, code=%d stderr=%q", code, stderr)
	}
}

func TestCheckReportsAnalysisErrors(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, "bad.json"), strayBreak)

	code, _, stderr := captureCLI(t, []string{"check", "bad.json"})
	if code != 1 {
		t.Fatalf("expected failure, got %d", code)
	}
	if !strings.Contains(stderr, "error: break outside of a loop") || !strings.Contains(stderr, "1 error(s)") {
		t.Fatalf("unexpected stderr %q", stderr)
	}

	// run refuses the same program before executing anything.
	if code, _, _ := captureCLI(t, []string{"run", "bad.json"}); code != 1 {
		t.Fatalf("run should refuse a program with analysis errors")
	}
}

func TestCheckAcceptsValidProgram(t *testing.T) {
	program := fixturePath(t, "virtual_dispatch")
	chdirTemp(t)

	code, stdout, stderr := captureCLI(t, []string{"check", program})
	if code != 0 || !strings.HasSuffix(stdout, ": ok\n") {
		t.Fatalf("check: code=%d stdout=%q stderr=%q", code, stdout, stderr)
	}
}

func TestFixturesFromArgument(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", "..", "pkg", "interpreter", "testdata", "fixtures"))
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	chdirTemp(t)

	code, stdout, stderr := captureCLI(t, []string{"fixtures", root})
	if code != 0 {
		t.Fatalf("fixtures failed: code=%d stderr=%q", code, stderr)
	}
	if !strings.Contains(stdout, "ok   while_count") || !strings.Contains(stdout, " 0 failed") {
		t.Fatalf("unexpected summary %q", stdout)
	}
}

func TestFixturesFromConfiguredRoots(t *testing.T) {
	dir := chdirTemp(t)
	writeFile(t, filepath.Join(dir, "playscript.yml"), "fixtures:\n  roots: [suite]\n")
	writeFile(t, filepath.Join(dir, "suite", "bad", "manifest.yml"), "expect:\n  stdout: [nope]\n")
	writeFile(t, filepath.Join(dir, "suite", "bad", "program.json"), `{"type": "Program", "body": []}`)
	writeFile(t, filepath.Join(dir, "suite", "skipped", "manifest.yml"), "skip: true\n")

	code, stdout, stderr := captureCLI(t, []string{"fixtures"})
	if code != 1 {
		t.Fatalf("expected failing fixture run, got %d", code)
	}
	if !strings.Contains(stderr, "FAIL bad") || !strings.Contains(stdout, "SKIP skipped") {
		t.Fatalf("unexpected output stdout=%q stderr=%q", stdout, stderr)
	}
	if !strings.Contains(stdout, "0 passed, 1 failed, 1 skipped") {
		t.Fatalf("unexpected summary %q", stdout)
	}
}

func TestFixturesWithoutRoots(t *testing.T) {
	chdirTemp(t)
	code, _, stderr := captureCLI(t, []string{"fixtures"})
	if code != 1 || !strings.Contains(stderr, "requires a fixture directory") {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
}

func fixturePath(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("..", "..", "pkg", "interpreter", "testdata", "fixtures", name, "program.json"))
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	return path
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	t.Cleanup(func() {
		if chdirErr := os.Chdir(oldWD); chdirErr != nil {
			t.Fatalf("restore working directory: %v", chdirErr)
		}
	})
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	return dir
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func captureCLI(t *testing.T, args []string) (int, string, string) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("stderr pipe: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code := run(args)

	if err := wOut.Close(); err != nil {
		t.Fatalf("stdout close: %v", err)
	}
	if err := wErr.Close(); err != nil {
		t.Fatalf("stderr close: %v", err)
	}

	os.Stdout = stdout
	os.Stderr = stderr

	outBytes, err := io.ReadAll(rOut)
	if err != nil {
		t.Fatalf("stdout read: %v", err)
	}
	errBytes, err := io.ReadAll(rErr)
	if err != nil {
		t.Fatalf("stderr read: %v", err)
	}
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
