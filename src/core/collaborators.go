// Package core holds the build orchestration core's external collaborator interfaces
// (§6) and the concrete build-parameter type (D3). Parsing of project files, schemes,
// and build-settings evaluation remain out of scope (§1): callers supply a resolved
// TargetGraph and PhaseInvocationBuilder, which this package only consumes.
package core

import "github.com/husshazein/xcbuild/src/invocation"

// FileSystem is the filesystem facade the orchestrator and subplan builder consume
// (§6): path existence, directory creation, read/write bytes, executable-bit
// query/resolution, and the current working directory.
type FileSystem interface {
	PathExists(path string) bool
	FileExists(path string) bool
	EnsureDir(path string) error
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, executable bool) error
	IsExecutable(path string) bool
	FindExecutable(name string, searchPaths []string) (string, bool)
	Getwd() (string, error)
}

// Target is one node of the resolved target graph (§6): a stable string label plus
// lookup through TargetGraph for its dependencies, never a Go pointer held across a
// generation boundary (§9 Design Notes).
type Target struct {
	Name string
}

// TargetGraph provides iteration over target nodes and each node's direct dependencies
// (§6).
type TargetGraph interface {
	// Targets returns every target node, in the graph's own iteration order (§4.8
	// step 3d: "no topological sort required").
	Targets() []Target
	// DependenciesOf returns the direct dependencies of the named target.
	DependenciesOf(name string) []Target
}

// TargetEnvironment is the resolved build-settings environment for one target,
// produced by the out-of-scope settings-evaluation collaborator and consumed by the
// PhaseInvocationBuilder. It is opaque to this core beyond its name and temp
// directory.
type TargetEnvironment struct {
	Target  Target
	TempDir string

	// ConfigurationFiles lists any project/target xcconfig files that contributed to
	// this environment, appended to the generator's input list (§4.8 step 3d).
	ConfigurationFiles []string
}

// PhaseInvocationBuilder translates a resolved target environment into its ordered
// list of invocations (§6); the phase compiler itself is out of scope (§1).
type PhaseInvocationBuilder interface {
	BuildInvocations(env TargetEnvironment) ([]invocation.Invocation, error)
}

// Formatter yields a human-readable status string for an invocation (§6); only its
// first line is used as the build statement's description (§4.6 step 3c).
type Formatter interface {
	Describe(inv invocation.Invocation) string
}

// EnvironmentResolver resolves a target's build environment, the out-of-scope
// settings-evaluation step (§1, §4.8 step 3). Resolution failure is a configuration
// error (§7): the orchestrator skips the target and accumulates the error via D6
// rather than aborting.
type EnvironmentResolver interface {
	Resolve(target Target) (TargetEnvironment, error)
}
