package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"playscript/interpreter-go/pkg/ast"
	"playscript/interpreter-go/pkg/driver"
	"playscript/interpreter-go/pkg/interpreter"
	"playscript/interpreter-go/pkg/semantic"
)

const cliToolVersion = "playscript 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	}

	cfg, err := loadConfigFrom(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}
	configureLogging(cfg)

	switch args[0] {
	case "run":
		return runProgram(cfg, args[1:])
	case "check":
		return checkProgram(args[1:])
	case "fixtures":
		return runFixtures(cfg, args[1:])
	default:
		return runProgram(cfg, args)
	}
}

func loadConfigFrom(start string) (*driver.Config, error) {
	path, err := driver.FindConfig(start)
	if err != nil {
		if errors.Is(err, driver.ErrConfigNotFound) {
			return driver.DefaultConfig(), nil
		}
		return nil, err
	}
	return driver.LoadConfig(path)
}

func configureLogging(cfg *driver.Config) {
	if cfg.Log.File == "" {
		commonlog.Configure(cfg.Log.Verbosity, nil)
		return
	}
	file := cfg.ResolvePath(cfg.Log.File)
	commonlog.Configure(cfg.Log.Verbosity, &file)
}

func runProgram(cfg *driver.Config, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "playscript run requires exactly one program file")
		return 1
	}
	program, tree, ok := loadAndAnalyze(args[0])
	if !ok {
		return 1
	}

	var opts []interpreter.Option
	if cfg.Run.MaxCallDepth > 0 {
		opts = append(opts, interpreter.WithMaxCallDepth(cfg.Run.MaxCallDepth))
	}
	interp := interpreter.NewWithOutput(tree, os.Stdout, opts...)
	before := len(tree.Diagnostics())
	execErr := interp.Execute(program)
	driver.WriteDiagnostics(os.Stderr, tree.Diagnostics()[before:])
	if execErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", execErr)
		return 1
	}
	return 0
}

func checkProgram(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "playscript check requires exactly one program file")
		return 1
	}
	if _, _, ok := loadAndAnalyze(args[0]); !ok {
		return 1
	}
	fmt.Fprintf(os.Stdout, "%s: ok\n", args[0])
	return 0
}

// loadAndAnalyze prints analysis diagnostics and refuses programs that have
// errors.
func loadAndAnalyze(path string) (*ast.Program, *semantic.AnnotatedTree, bool) {
	program, err := driver.LoadProgram(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return nil, nil, false
	}
	tree, err := semantic.Analyze(program)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		return nil, nil, false
	}
	if errs := driver.WriteDiagnostics(os.Stderr, tree.Diagnostics()); errs > 0 {
		fmt.Fprintf(os.Stderr, "%s: %d error(s)\n", path, errs)
		return nil, nil, false
	}
	return program, tree, true
}

func runFixtures(cfg *driver.Config, args []string) int {
	roots := args
	if len(roots) == 0 {
		for _, root := range cfg.Fixtures.Roots {
			roots = append(roots, cfg.ResolvePath(root))
		}
		if len(cfg.Fixtures.Sources) > 0 {
			cacheDir := cfg.ResolvePath(cfg.Fixtures.CacheDir)
			for _, src := range cfg.Fixtures.Sources {
				suite, err := driver.FetchFixtureSuite(cacheDir, src)
				if err != nil {
					fmt.Fprintf(os.Stderr, "failed to fetch fixture source %s: %v\n", src.Name, err)
					return 1
				}
				roots = append(roots, suite.Root)
			}
		}
	}
	if len(roots) == 0 {
		fmt.Fprintln(os.Stderr, "playscript fixtures requires a fixture directory or fixtures.roots in the configuration")
		return 1
	}

	var opts []interpreter.Option
	if cfg.Run.MaxCallDepth > 0 {
		opts = append(opts, interpreter.WithMaxCallDepth(cfg.Run.MaxCallDepth))
	}

	passed, failed, skipped := 0, 0, 0
	for _, root := range roots {
		dirs, err := driver.FindFixtures(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to scan %s: %v\n", root, err)
			return 1
		}
		for _, dir := range dirs {
			name := fixtureName(root, dir)
			result, err := interpreter.RunFixture(dir, opts...)
			switch {
			case err != nil:
				failed++
				fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", name, err)
			case result.Skipped:
				skipped++
				fmt.Fprintf(os.Stdout, "SKIP %s\n", name)
			case result.Passed():
				passed++
				fmt.Fprintf(os.Stdout, "ok   %s\n", name)
			default:
				failed++
				fmt.Fprintf(os.Stderr, "FAIL %s\n", name)
				for _, failure := range result.Failures {
					fmt.Fprintf(os.Stderr, "  %s\n", failure)
				}
			}
		}
	}
	fmt.Fprintf(os.Stdout, "%d passed, %d failed, %d skipped\n", passed, failed, skipped)
	if failed > 0 {
		return 1
	}
	return 0
}

func fixtureName(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return filepath.Base(dir)
	}
	return filepath.ToSlash(rel)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  playscript run <program.json>")
	fmt.Fprintln(os.Stderr, "  playscript <program.json>")
	fmt.Fprintln(os.Stderr, "  playscript check <program.json>")
	fmt.Fprintln(os.Stderr, "  playscript fixtures [dir ...]")
	fmt.Fprintln(os.Stderr, "  playscript version")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Configuration is read from the nearest "+strings.Join(driver.ConfigFileNames, ", ")+".")
}
