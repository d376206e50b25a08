package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chuckjaz/dyego-vibe/internal/driver"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dyego <command> [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  check [file...]   Parse and type-check Dyego source files\n")
		fmt.Fprintf(os.Stderr, "  ast <file>        Print the canonical rendering of a parsed file\n")
		fmt.Fprintf(os.Stderr, "  watch [file...]   Re-run check whenever a source file changes\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "check":
		os.Exit(runCheck(args))
	case "ast":
		os.Exit(runAst(args))
	case "watch":
		os.Exit(runWatch(args))
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

// resolveSources expands the argument list through the project manifest:
// with no arguments, the sources listed in dyego.yml in the current
// directory are checked.
func resolveSources(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	m, err := driver.LoadManifest(".")
	if err != nil {
		return nil, err
	}
	if m == nil || len(m.Sources) == 0 {
		return nil, fmt.Errorf("no input files and no %s manifest", driver.ManifestName)
	}
	return m.SourcePaths(), nil
}

func runCheck(args []string) int {
	paths, err := resolveSources(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	code := 0
	for _, path := range paths {
		res, err := driver.CheckFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if c := res.Report(os.Stderr); c != 0 {
			code = c
		}
	}
	return code
}

func runAst(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: dyego ast <file>\n")
		return 1
	}

	text, diags, err := driver.RenderFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if len(diags) > 0 {
		res := &driver.Result{Path: args[0], Syntax: diags}
		return res.Report(os.Stderr)
	}
	fmt.Print(text)
	return 0
}

func runWatch(args []string) int {
	paths, err := resolveSources(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	check := func(path string) {
		res, err := driver.CheckFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if res.Report(os.Stderr) == 0 {
			fmt.Fprintf(os.Stderr, "%s: ok\n", path)
		}
	}
	for _, path := range paths {
		check(path)
	}

	w, err := driver.NewWatcher(dirsOf(paths)...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer w.Close()

	watched := make(map[string]bool, len(paths))
	for _, p := range paths {
		watched[filepath.Clean(p)] = true
	}

	for {
		select {
		case changed, ok := <-w.Changes():
			if !ok {
				return 0
			}
			if watched[filepath.Clean(changed)] {
				check(changed)
			}
		case err := <-w.Errors():
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// dirsOf returns the unique parent directories of paths. Watching the
// directory instead of the file survives editors that replace files on
// save.
func dirsOf(paths []string) []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, p := range paths {
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
