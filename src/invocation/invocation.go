// Package invocation implements C4: the immutable-after-build description of one tool
// run (§3 "Invocation").
package invocation

import (
	"path/filepath"
	"strings"

	"github.com/husshazein/xcbuild/src/fs"
)

// BuiltinPrefix marks an executable name as a builtin tool (§4.4 step 1).
const BuiltinPrefix = "builtin-"

// Executable is the tagged variant of the three ways an invocation's tool can be
// identified (§3, §4.4): an absolute path to a real binary, or a builtin tool name. The
// "relative name resolved against search paths" case is resolved at construction time
// (Determine) into one of these two concrete forms, matching the closed interface the
// teacher uses for its own tagged-variant types (DESIGN.md).
type Executable interface {
	// Path is the path to invoke: the real binary path for an Absolute executable, or
	// the driver-local standalone binary path for a Builtin one.
	Path() string
	// DisplayName is the user-facing name for logging: the raw path for Absolute, the
	// short builtin name (without the prefix) for Builtin.
	DisplayName() string
	isExecutable()
}

type absoluteExecutable struct {
	path string
}

func (e absoluteExecutable) Path() string        { return e.path }
func (e absoluteExecutable) DisplayName() string { return e.path }
func (absoluteExecutable) isExecutable()         {}

type builtinExecutable struct {
	path string
	name string
}

func (e builtinExecutable) Path() string        { return e.path }
func (e builtinExecutable) DisplayName() string { return e.name }
func (builtinExecutable) isExecutable()         {}

// Absolute constructs an Executable with a known absolute path (§4.4 step 2).
func Absolute(path string) Executable {
	return absoluteExecutable{path: path}
}

// Builtin constructs an Executable for a known builtin tool, resolving it to the
// standalone binary located next to the currently running driver (§4.4 step 1).
func Builtin(name string) (Executable, error) {
	shortName := strings.TrimPrefix(name, BuiltinPrefix)
	path, err := fs.LocalExecutable(BuiltinPrefix + shortName)
	if err != nil {
		return nil, err
	}
	return builtinExecutable{path: path, name: shortName}, nil
}

// Determine resolves a raw executable string (§4.4):
//  1. If it starts with "builtin-", produce a Builtin executable.
//  2. Otherwise, if absolute, produce an Absolute executable.
//  3. Otherwise, search executablePaths in order; produce an Absolute for the first
//     match, or an Absolute wrapping the raw string if none match (deferring failure to
//     the executor).
func Determine(executable string, executablePaths []string) (Executable, error) {
	if strings.HasPrefix(executable, BuiltinPrefix) {
		return Builtin(executable)
	}
	if filepath.IsAbs(executable) {
		return Absolute(executable), nil
	}
	if resolved, ok := fs.FindExecutable(executable, executablePaths); ok {
		return Absolute(resolved), nil
	}
	return Absolute(executable), nil
}

// DependencyFormat is the closed enumeration of tool-native dependency-info formats
// (§3, §4.7). It is a bijection between the tag and its canonical string name, matching
// how the dependency-info-tool helper (D7) identifies formats on its command line.
type DependencyFormat string

// The recognized dependency-info formats (§4.7 step 3, "<format-tag>:<path>").
const (
	FormatMakefile       DependencyFormat = "makefile"
	FormatDependencyInfo DependencyFormat = "dependencyInfo"
	FormatPlainList      DependencyFormat = "list"
)

// DependencyInfo pairs a tool-native dependency format with the path the tool wrote it
// to (§3).
type DependencyInfo struct {
	Format DependencyFormat
	Path   string
}

// AuxiliaryFile describes one file an invocation needs materialized before it runs
// (§3, §4.5): either inline byte contents or a source path to copy from, with an
// optional executable flag.
type AuxiliaryFile struct {
	Path string

	// Exactly one of Contents or ContentsPath should be set.
	Contents     []byte
	ContentsPath string

	Executable bool
}

// Invocation is the immutable-after-build description of one tool execution (§3).
// Callers build one with zero-value construction and field assignment (it carries no
// behavior beyond simple accessors, per §4.4), then hand it to the Target Subplan
// Builder (C6).
type Invocation struct {
	Executable  Executable
	Arguments   []string
	Environment map[string]string
	WorkingDir  string

	Inputs      []string
	Outputs     []string
	PhonyInputs []string

	InputDependencies []string
	OrderDependencies []string

	DependencyInfo []DependencyInfo
	AuxiliaryFiles []AuxiliaryFile

	LogMessage              string
	ShowEnvironmentInLog    bool
	CreatesProductStructure bool
}

// IsEmpty reports whether this invocation has no executable, i.e. it contributes no
// build command of its own (§4.6 step 3: "with non-empty executable").
func (i Invocation) IsEmpty() bool {
	return i.Executable == nil || i.Executable.Path() == ""
}
