package core

import (
	"sort"
	"strings"

	"github.com/husshazein/xcbuild/src/fingerprint"
)

// Action is the build action a Configuration was assembled for (§3 "Build parameters").
type Action string

// Recognized actions.
const (
	ActionBuild   Action = "build"
	ActionClean   Action = "clean"
	ActionArchive Action = "archive"
)

// Configuration carries the project/workspace/scheme/configuration/action/overrides a
// caller assembles after scheme and project parsing (§3 "Build parameters", out of
// scope for this core).
type Configuration struct {
	Project            string
	Workspace          string
	Scheme             string
	BuildConfiguration string
	Action             Action

	// Overrides is an ordered list of "key=value" build-setting overrides supplied on
	// the command line. Order is significant: it is preserved verbatim in
	// CanonicalArguments so re-invocation reproduces the same settings evaluation.
	Overrides []string
}

// CanonicalArguments returns the minimal ordered flag list that would reconstruct this
// Configuration on the CLI, used verbatim as the tail of the self-regenerate command
// (§4.8 step 3e).
func (c Configuration) CanonicalArguments() []string {
	var args []string
	if c.Project != "" {
		args = append(args, "-project", c.Project)
	}
	if c.Workspace != "" {
		args = append(args, "-workspace", c.Workspace)
	}
	if c.Scheme != "" {
		args = append(args, "-scheme", c.Scheme)
	}
	if c.BuildConfiguration != "" {
		args = append(args, "-configuration", c.BuildConfiguration)
	}
	if c.Action != "" {
		args = append(args, string(c.Action))
	}
	for _, o := range c.Overrides {
		args = append(args, o)
	}
	return args
}

// CanonicalHash is C3 (MD5) over the canonical-argument list joined with NUL bytes,
// used as the fingerprint value (§3 "Build parameters", §4.8 step 2).
func (c Configuration) CanonicalHash() string {
	return fingerprint.Hash(strings.Join(c.CanonicalArguments(), "\x00"))
}

// SortedEnvironmentKeys returns the keys of env in lexicographic order, used wherever
// an invocation's environment must be rendered deterministically (§9 Open Question:
// "iteration order is not observable... the writer sorts lexicographically").
func SortedEnvironmentKeys(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
