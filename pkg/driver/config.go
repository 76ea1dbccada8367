package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ConfigFileNames lists the file names FindConfig looks for, in order.
var ConfigFileNames = []string{"playscript.yml", "playscript.yaml", "playscript.toml"}

var ErrConfigNotFound = errors.New("playscript configuration not found")

// Config is the parsed contents of playscript.yml or playscript.toml.
type Config struct {
	Path     string         `yaml:"-" toml:"-"`
	Log      LogConfig      `yaml:"log" toml:"log"`
	Run      RunConfig      `yaml:"run" toml:"run"`
	Fixtures FixturesConfig `yaml:"fixtures" toml:"fixtures"`
}

type LogConfig struct {
	// Verbosity follows commonlog: 0 is errors only, higher is noisier.
	Verbosity int    `yaml:"verbosity" toml:"verbosity"`
	File      string `yaml:"file" toml:"file"`
}

type RunConfig struct {
	MaxCallDepth int `yaml:"max_call_depth" toml:"max_call_depth"`
}

type FixturesConfig struct {
	Roots    []string        `yaml:"roots" toml:"roots"`
	CacheDir string          `yaml:"cache_dir" toml:"cache_dir"`
	Sources  []FixtureSource `yaml:"sources" toml:"sources"`
}

// FixtureSource names a git repository holding a fixture corpus. Exactly one
// of Rev, Tag or Branch pins the checkout; Path selects a subdirectory.
type FixtureSource struct {
	Name   string `yaml:"name" toml:"name"`
	Git    string `yaml:"git" toml:"git"`
	Rev    string `yaml:"rev" toml:"rev"`
	Tag    string `yaml:"tag" toml:"tag"`
	Branch string `yaml:"branch" toml:"branch"`
	Path   string `yaml:"path" toml:"path"`
}

// ValidationError aggregates configuration and manifest validation failures.
type ValidationError struct {
	Subject string
	Issues  []string
}

func (e *ValidationError) Error() string {
	subject := e.Subject
	if subject == "" {
		subject = "configuration"
	}
	if len(e.Issues) == 0 {
		return subject + ": invalid"
	}
	var b strings.Builder
	b.WriteString(subject)
	b.WriteString(" validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// DefaultConfig is used when no configuration file exists.
func DefaultConfig() *Config {
	return &Config{
		Log:      LogConfig{Verbosity: 0},
		Fixtures: FixturesConfig{CacheDir: filepath.Join(".playscript", "fixtures")},
	}
}

// LoadConfig parses a configuration file; the format follows the extension.
// Unknown keys are rejected in both formats.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".yml", ".yaml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			return nil, fmt.Errorf("config: parse %s: unknown keys %s", absPath, strings.Join(keys, ", "))
		}
	default:
		return nil, fmt.Errorf("config: unsupported format %q", filepath.Ext(absPath))
	}

	cfg.Path = absPath
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig walks up from start looking for a configuration file.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no configuration found from %s upwards: %w", origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// ResolvePath interprets p relative to the directory holding the config.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Path == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.Path), p)
}

func (c *Config) normalize() {
	c.Log.File = strings.TrimSpace(c.Log.File)
	c.Fixtures.CacheDir = strings.TrimSpace(c.Fixtures.CacheDir)
	roots := c.Fixtures.Roots[:0]
	for _, root := range c.Fixtures.Roots {
		if root = strings.TrimSpace(root); root != "" {
			roots = append(roots, root)
		}
	}
	c.Fixtures.Roots = roots
	for i := range c.Fixtures.Sources {
		src := &c.Fixtures.Sources[i]
		src.Name = strings.TrimSpace(src.Name)
		src.Git = strings.TrimSpace(src.Git)
		src.Rev = strings.TrimSpace(src.Rev)
		src.Tag = strings.TrimSpace(src.Tag)
		src.Branch = strings.TrimSpace(src.Branch)
		src.Path = strings.TrimSpace(src.Path)
	}
}

func (c *Config) validate() error {
	errs := ValidationError{Subject: "config"}
	if c.Log.Verbosity < 0 {
		errs.Issues = append(errs.Issues, "log.verbosity must not be negative")
	}
	if c.Run.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, "run.max_call_depth must not be negative")
	}
	names := make(map[string]struct{}, len(c.Fixtures.Sources))
	for i, src := range c.Fixtures.Sources {
		label := fmt.Sprintf("fixtures.sources[%d]", i)
		if src.Name == "" {
			errs.Issues = append(errs.Issues, label+": name must be provided")
		} else if _, dup := names[src.Name]; dup {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: duplicate source name %q", label, src.Name))
		} else {
			names[src.Name] = struct{}{}
		}
		for _, issue := range src.validate() {
			errs.Issues = append(errs.Issues, label+": "+issue)
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (s FixtureSource) validate() []string {
	var issues []string
	if s.Git == "" {
		issues = append(issues, "git must be provided")
	}
	pins := 0
	for _, pin := range []string{s.Rev, s.Tag, s.Branch} {
		if pin != "" {
			pins++
		}
	}
	switch {
	case pins == 0:
		issues = append(issues, "one of rev, tag or branch is required")
	case pins > 1:
		issues = append(issues, "rev, tag and branch are mutually exclusive")
	}
	if filepath.IsAbs(s.Path) || strings.HasPrefix(filepath.Clean(s.Path), "..") {
		issues = append(issues, fmt.Sprintf("path %q must stay inside the repository", s.Path))
	}
	return issues
}
