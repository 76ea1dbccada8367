package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("playscript.driver")

// FetchedSuite is a fixture corpus checked out into the cache.
type FetchedSuite struct {
	Name   string
	Commit string
	// Dir is the checkout directory; Root is Dir joined with the source path.
	Dir  string
	Root string
}

// FetchFixtureSuite clones src into cacheDir and checks out its pinned
// revision. A checkout already present for the same commit is reused.
func FetchFixtureSuite(cacheDir string, src FixtureSource) (*FetchedSuite, error) {
	if issues := src.validate(); len(issues) > 0 {
		return nil, &ValidationError{Subject: "fixture source " + src.Name, Issues: issues}
	}
	baseDir := filepath.Join(cacheDir, sanitizePathSegment(src.Name))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}

	revision, descriptor := gitRevisionFromSource(src)
	if src.Rev != "" {
		existing := filepath.Join(baseDir, sanitizePathSegment(src.Rev))
		if _, err := os.Stat(existing); err == nil {
			log.Debugf("fixture suite %s already at %s", src.Name, src.Rev)
			return newFetchedSuite(src, src.Rev, existing), nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return nil, err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return nil, err
	}

	log.Infof("cloning fixture suite %s from %s", src.Name, src.Git)
	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: src.Git})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("git clone %s: %w", src.Git, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("resolve revision %s: %w", descriptor, err)
	}

	targetDir := filepath.Join(baseDir, sanitizePathSegment(hash.String()))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return newFetchedSuite(src, hash.String(), targetDir), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("git checkout %s: %w", descriptor, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return nil, err
	}
	log.Infof("fixture suite %s checked out at %s", src.Name, hash.String())
	return newFetchedSuite(src, hash.String(), targetDir), nil
}

func newFetchedSuite(src FixtureSource, commit, dir string) *FetchedSuite {
	root := dir
	if src.Path != "" {
		root = filepath.Join(dir, filepath.FromSlash(src.Path))
	}
	return &FetchedSuite{Name: src.Name, Commit: commit, Dir: dir, Root: root}
}

func gitRevisionFromSource(src FixtureSource) (plumbing.Revision, string) {
	switch {
	case src.Rev != "":
		return plumbing.Revision(src.Rev), src.Rev
	case src.Tag != "":
		return plumbing.Revision("refs/tags/" + src.Tag), src.Tag
	default:
		return plumbing.Revision("refs/heads/" + src.Branch), src.Branch
	}
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
