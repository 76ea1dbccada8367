package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FixtureManifestName is the manifest file every fixture directory carries.
const FixtureManifestName = "manifest.yml"

// DefaultFixtureEntry is the program file used when a manifest names none.
const DefaultFixtureEntry = "program.json"

// FixtureManifest describes one fixture: the program to run and what the
// run must produce.
type FixtureManifest struct {
	Path        string
	Description string
	Entry       string
	MaxDepth    int
	Skip        bool
	Expect      FixtureExpectation
}

// FixtureExpectation holds the observable results of a fixture run. Stdout
// is compared line by line. Errors and Diagnostics are substrings that
// must appear, in any order, in the execution error and in the logged
// diagnostics respectively.
type FixtureExpectation struct {
	Stdout      []string
	Errors      []string
	Diagnostics []string
}

// EntryPath returns the absolute path of the fixture program.
func (m *FixtureManifest) EntryPath() string {
	return filepath.Join(filepath.Dir(m.Path), m.Entry)
}

type fixtureManifestFile struct {
	Description  string     `yaml:"description"`
	Entry        string     `yaml:"entry"`
	MaxCallDepth int        `yaml:"max_call_depth"`
	Skip         bool       `yaml:"skip"`
	Expect       expectYAML `yaml:"expect"`
}

type expectYAML struct {
	Stdout      stringList `yaml:"stdout"`
	Errors      stringList `yaml:"errors"`
	Diagnostics stringList `yaml:"diagnostics"`
}

// LoadFixtureManifest parses the manifest.yml of the fixture directory dir.
func LoadFixtureManifest(dir string) (*FixtureManifest, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	path := filepath.Join(absDir, FixtureManifestName)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw fixtureManifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", path)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}

	manifest := raw.toManifest(path)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (mf fixtureManifestFile) toManifest(path string) *FixtureManifest {
	entry := strings.TrimSpace(mf.Entry)
	if entry == "" {
		entry = DefaultFixtureEntry
	}
	return &FixtureManifest{
		Path:        path,
		Description: strings.TrimSpace(mf.Description),
		Entry:       entry,
		MaxDepth:    mf.MaxCallDepth,
		Skip:        mf.Skip,
		Expect: FixtureExpectation{
			// Stdout lines are compared verbatim, blank lines included.
			Stdout:      append([]string(nil), mf.Expect.Stdout...),
			Errors:      mf.Expect.Errors.Clone(),
			Diagnostics: mf.Expect.Diagnostics.Clone(),
		},
	}
}

func (m *FixtureManifest) validate() error {
	errs := ValidationError{Subject: "manifest " + m.Path}
	if filepath.IsAbs(m.Entry) || strings.HasPrefix(filepath.Clean(m.Entry), "..") {
		errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q must stay inside the fixture directory", m.Entry))
	}
	if m.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, "max_call_depth must not be negative")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// FindFixtures returns every directory under root holding a manifest.yml,
// in lexical order.
func FindFixtures(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if !d.IsDir() && d.Name() == FixtureManifestName {
			dirs = append(dirs, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fixtures: walk %s: %w", root, err)
	}
	return dirs, nil
}

type stringList []string

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// UnmarshalYAML accepts a single scalar or a sequence of scalars.
func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = stringList{value.Value}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}
