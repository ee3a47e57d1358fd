// Command dependency-info-tool is the standalone helper binary (D7) referenced by the
// Dependency-Info Bridge's (C7) synthesized commands. It converts one or more
// tool-native dependency descriptors, each given as "<format>:<path>", into a single
// Makefile-style depfile the external executor can read.
package main

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/thought-machine/go-flags"

	"github.com/husshazein/xcbuild/src/cli/logging"
	"github.com/husshazein/xcbuild/src/depinfo"
	"github.com/husshazein/xcbuild/src/invocation"
)

var log = logging.Log

var opts struct {
	Name   string `long:"name" description:"The Makefile rule name (the invocation's first output)." required:"true"`
	Output string `long:"output" description:"Path to write the combined depfile to." required:"true"`
	Args   struct {
		Descriptors []string `positional-arg-name:"format:path"`
	} `positional-args:"yes" required:"1"`
}

func main() {
	logging.Init(logging.WARNING)

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	if err := run(); err != nil {
		log.Critical("%s", err)
		os.Exit(1)
	}
}

func run() error {
	var allDeps []string
	seen := map[string]bool{}

	for _, descriptor := range opts.Args.Descriptors {
		format, path, err := splitDescriptor(descriptor)
		if err != nil {
			return err
		}

		deps, err := readDependencies(format, path)
		if err != nil {
			return fmt.Errorf("reading %s dependency info %s: %w", format, path, err)
		}
		for _, d := range deps {
			if !seen[d] {
				seen[d] = true
				allDeps = append(allDeps, d)
			}
		}
	}

	sort.Strings(allDeps)
	return writeDepfile(opts.Output, opts.Name, allDeps)
}

func splitDescriptor(descriptor string) (invocation.DependencyFormat, string, error) {
	parts := strings.SplitN(descriptor, ":", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("malformed dependency descriptor %q", descriptor)
	}
	format := invocation.DependencyFormat(parts[0])
	switch format {
	case invocation.FormatMakefile, invocation.FormatDependencyInfo, invocation.FormatPlainList:
		return format, parts[1], nil
	default:
		return "", "", fmt.Errorf("unrecognized dependency-info format %q", format)
	}
}

// readDependencies extracts the dependency paths out of a tool-native descriptor.
func readDependencies(format invocation.DependencyFormat, path string) ([]string, error) {
	switch format {
	case invocation.FormatPlainList:
		return readPlainList(path)
	case invocation.FormatMakefile:
		return readMakefile(path)
	case invocation.FormatDependencyInfo:
		return readBinaryDependencyInfo(path)
	default:
		return nil, fmt.Errorf("unrecognized dependency-info format %q", format)
	}
}

// readPlainList reads one path per line, ignoring blank lines (§4.7).
func readPlainList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var deps []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			deps = append(deps, line)
		}
	}
	return deps, scanner.Err()
}

// readMakefile extracts the prerequisite paths from a compiler-emitted Makefile-style
// depfile ("target: dep1 dep2 \\\n  dep3 ...").
func readMakefile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text := strings.ReplaceAll(string(data), "\\\n", " ")
	colon := strings.Index(text, ":")
	if colon < 0 {
		return nil, fmt.Errorf("no rule found in makefile depfile")
	}
	fields := strings.Fields(text[colon+1:])

	var deps []string
	for _, f := range fields {
		deps = append(deps, strings.ReplaceAll(f, "\\ ", " "))
	}
	return deps, nil
}

// Tags used by the binary dependency-info format: a version record, followed by
// tagged, NUL-terminated path records.
const (
	depInfoTagVersion = 0x00
	depInfoTagInput   = 0x10
	depInfoTagOutput  = 0x40
)

// readBinaryDependencyInfo parses the compact binary dependency-info blob some Apple
// build tools emit: a version-string record, then a sequence of tag-prefixed,
// NUL-terminated path records. Only input records (0x10) contribute dependencies.
func readBinaryDependencyInfo(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []string
	i := 0
	for i < len(data) {
		tag := data[i]
		i++
		end := i
		for end < len(data) && data[end] != 0 {
			end++
		}
		record := string(data[i:end])
		i = end + 1

		if tag == depInfoTagInput {
			deps = append(deps, record)
		}
	}
	return deps, nil
}

// writeDepfile writes a single Makefile-style rule "name: dep1 dep2 ...\n" to path.
func writeDepfile(path string, name string, deps []string) error {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(":")
	for _, d := range deps {
		b.WriteString(" ")
		b.WriteString(strings.ReplaceAll(d, " ", "\\ "))
	}
	b.WriteString("\n")

	return os.WriteFile(path, []byte(b.String()), 0644)
}
