package interpreter

import (
	"bytes"
	"fmt"
	"strings"

	"playscript/interpreter-go/pkg/driver"
	"playscript/interpreter-go/pkg/semantic"
)

// FixtureResult is the outcome of replaying one fixture directory.
type FixtureResult struct {
	Dir         string
	Manifest    *driver.FixtureManifest
	Stdout      []string
	Diagnostics []semantic.Diagnostic
	Err         error
	Skipped     bool
	// Failures lists every mismatch against the manifest expectations.
	Failures []string
}

func (r *FixtureResult) Passed() bool {
	return len(r.Failures) == 0
}

// RunFixture loads the fixture in dir, analyzes and executes its program and
// compares the observable results with the manifest. An error is returned
// only when the fixture itself cannot be loaded.
func RunFixture(dir string, opts ...Option) (*FixtureResult, error) {
	manifest, err := driver.LoadFixtureManifest(dir)
	if err != nil {
		return nil, err
	}
	result := &FixtureResult{Dir: dir, Manifest: manifest}
	if manifest.Skip {
		result.Skipped = true
		return result, nil
	}
	program, err := driver.LoadProgram(manifest.EntryPath())
	if err != nil {
		return nil, err
	}
	tree, err := semantic.Analyze(program)
	if err != nil {
		return nil, err
	}

	var stdout bytes.Buffer
	if !tree.HasErrors() {
		if manifest.MaxDepth > 0 {
			opts = append(opts, WithMaxCallDepth(manifest.MaxDepth))
		}
		interp := NewWithOutput(tree, &stdout, opts...)
		result.Err = interp.Execute(program)
	}
	result.Stdout = splitLines(stdout.String())
	result.Diagnostics = tree.Diagnostics()
	result.Failures = checkFixture(manifest, result)
	return result, nil
}

func checkFixture(manifest *driver.FixtureManifest, result *FixtureResult) []string {
	var failures []string
	expect := manifest.Expect

	var messages []string
	for _, diag := range result.Diagnostics {
		messages = append(messages, diag.Message)
	}
	for _, want := range expect.Diagnostics {
		if !containsSubstring(messages, want) {
			failures = append(failures, fmt.Sprintf("expected diagnostic containing %q, got %v", want, messages))
		}
	}
	if len(expect.Diagnostics) == 0 {
		for _, diag := range result.Diagnostics {
			if diag.Severity == semantic.SeverityError {
				failures = append(failures, "unexpected analysis error: "+diag.Message)
			}
		}
	}

	switch {
	case len(expect.Errors) > 0:
		if result.Err == nil {
			failures = append(failures, fmt.Sprintf("expected error containing %v, program completed", expect.Errors))
			break
		}
		for _, want := range expect.Errors {
			if !strings.Contains(result.Err.Error(), want) {
				failures = append(failures, fmt.Sprintf("expected error containing %q, got %v", want, result.Err))
			}
		}
	case result.Err != nil:
		failures = append(failures, fmt.Sprintf("execution error: %v", result.Err))
	}

	if expect.Stdout != nil && !equalLines(expect.Stdout, result.Stdout) {
		failures = append(failures, fmt.Sprintf("stdout mismatch: expected %q, got %q", expect.Stdout, result.Stdout))
	}
	return failures
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func equalLines(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

func containsSubstring(values []string, want string) bool {
	for _, v := range values {
		if strings.Contains(v, want) {
			return true
		}
	}
	return false
}
