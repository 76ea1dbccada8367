package driver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if _, err := worktree.Add(filepath.ToSlash(rel)); err != nil {
			return err
		}
		return nil
	}); err != nil {
		t.Fatalf("stage files: %v", err)
	}
	hash, err := worktree.Commit("init", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "PlayScript Fixtures",
			Email: "fixtures@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func fixtureRepo(t *testing.T) (string, string) {
	t.Helper()
	repo := filepath.Join(t.TempDir(), "suite")
	writeFile(t, filepath.Join(repo, "suites", "hello", FixtureManifestName), "expect:\n  stdout: [hi]\n")
	writeFile(t, filepath.Join(repo, "suites", "hello", DefaultFixtureEntry), helloProgram)
	return repo, initGitRepo(t, repo)
}

const helloProgram = `{"type": "Program", "body": [
  {"type": "ExpressionStatement", "expression": {
    "type": "FunctionCall", "callee": {"type": "Identifier", "name": "println"},
    "arguments": [{"type": "StringLiteral", "value": "hi"}]}}
]}`

func TestFetchFixtureSuiteByRev(t *testing.T) {
	repo, rev := fixtureRepo(t)
	cache := t.TempDir()
	src := FixtureSource{Name: "core", Git: repo, Rev: rev, Path: "suites"}

	suite, err := FetchFixtureSuite(cache, src)
	if err != nil {
		t.Fatalf("FetchFixtureSuite: %v", err)
	}
	if suite.Commit != rev {
		t.Fatalf("commit = %s, want %s", suite.Commit, rev)
	}
	if suite.Dir != filepath.Join(cache, "core", rev) {
		t.Fatalf("unexpected checkout dir %s", suite.Dir)
	}
	if suite.Root != filepath.Join(suite.Dir, "suites") {
		t.Fatalf("unexpected root %s", suite.Root)
	}
	dirs, err := FindFixtures(suite.Root)
	if err != nil {
		t.Fatalf("FindFixtures: %v", err)
	}
	if len(dirs) != 1 || filepath.Base(dirs[0]) != "hello" {
		t.Fatalf("unexpected fixtures %v", dirs)
	}

	// A second fetch reuses the checkout without cloning again.
	if err := os.RemoveAll(repo); err != nil {
		t.Fatalf("remove repo: %v", err)
	}
	again, err := FetchFixtureSuite(cache, src)
	if err != nil {
		t.Fatalf("second FetchFixtureSuite: %v", err)
	}
	if again.Dir != suite.Dir {
		t.Fatalf("second fetch used %s, want %s", again.Dir, suite.Dir)
	}
}

func TestFetchFixtureSuiteByBranch(t *testing.T) {
	repo, rev := fixtureRepo(t)
	suite, err := FetchFixtureSuite(t.TempDir(), FixtureSource{Name: "core", Git: repo, Branch: "master"})
	if err != nil {
		t.Fatalf("FetchFixtureSuite: %v", err)
	}
	if suite.Commit != rev {
		t.Fatalf("commit = %s, want %s", suite.Commit, rev)
	}
	if _, err := os.Stat(filepath.Join(suite.Root, "suites", "hello", DefaultFixtureEntry)); err != nil {
		t.Fatalf("checked out program missing: %v", err)
	}
}

func TestFetchFixtureSuiteByTag(t *testing.T) {
	repo, rev := fixtureRepo(t)
	opened, err := git.PlainOpen(repo)
	if err != nil {
		t.Fatalf("PlainOpen: %v", err)
	}
	if _, err := opened.CreateTag("v1.0.0", plumbing.NewHash(rev), nil); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	suite, err := FetchFixtureSuite(t.TempDir(), FixtureSource{Name: "tagged", Git: repo, Tag: "v1.0.0", Path: "suites/hello"})
	if err != nil {
		t.Fatalf("FetchFixtureSuite: %v", err)
	}
	if suite.Commit != rev {
		t.Fatalf("commit = %s, want %s", suite.Commit, rev)
	}
	manifest, err := LoadFixtureManifest(suite.Root)
	if err != nil {
		t.Fatalf("LoadFixtureManifest: %v", err)
	}
	if _, err := LoadProgram(manifest.EntryPath()); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
}

func TestFetchFixtureSuiteUnknownBranch(t *testing.T) {
	repo, _ := fixtureRepo(t)
	_, err := FetchFixtureSuite(t.TempDir(), FixtureSource{Name: "core", Git: repo, Branch: "missing"})
	if err == nil || !strings.Contains(err.Error(), "resolve revision missing") {
		t.Fatalf("expected revision error, got %v", err)
	}
}

func TestFetchFixtureSuiteRequiresPin(t *testing.T) {
	_, err := FetchFixtureSuite(t.TempDir(), FixtureSource{Name: "core", Git: "repo"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "one of rev, tag or branch is required") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestSanitizePathSegment(t *testing.T) {
	cases := map[string]string{
		"":               "head",
		"  ":             "head",
		"v1.2.3":         "v1.2.3",
		"feature/x y":    "feature_x_y",
		"release-2_beta": "release-2_beta",
	}
	for in, want := range cases {
		if got := sanitizePathSegment(in); got != want {
			t.Fatalf("sanitizePathSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
