// Package depinfo implements the Dependency-Info Bridge (C7): translating an
// invocation's tool-native dependency descriptors into a command that produces a single
// Makefile-style depfile the executor can consume (§4.7).
package depinfo

import (
	"fmt"

	"github.com/husshazein/xcbuild/src/fingerprint"
	"github.com/husshazein/xcbuild/src/invocation"
	"github.com/husshazein/xcbuild/src/shellquote"
)

// ToolName is the driver-local helper binary that performs the actual format
// conversion (D7).
const ToolName = "dependency-info-tool"

// recognizedFormats is the closed set of format tags the bridge accepts (§4.7 step 5).
var recognizedFormats = map[invocation.DependencyFormat]bool{
	invocation.FormatMakefile:       true,
	invocation.FormatDependencyInfo: true,
	invocation.FormatPlainList:      true,
}

// Bridge is the result of bridging one invocation's dependency-info descriptors: the
// depfile path the executor should be told to read, and the shell command that produces
// it.
type Bridge struct {
	DepfilePath string
	Command     string
}

// Build computes the dependency-info bridge for an invocation (§4.7), given the
// resolved path to the dependency-info-tool binary (D7) and the target's temp
// directory. It returns (nil, nil) when the invocation carries no dependency-info
// descriptors, matching the caller's "or the literal true" fallback (§4.6 step 3e).
func Build(toolPath string, targetTempDir string, outputs []string, deps []invocation.DependencyInfo) (*Bridge, error) {
	if len(deps) == 0 {
		return nil, nil
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("dependency-info requires at least one output to name the rule")
	}

	for _, d := range deps {
		if !recognizedFormats[d.Format] {
			return nil, fmt.Errorf("unrecognized dependency-info format %q", d.Format)
		}
	}

	name := outputs[0]
	depfile := fmt.Sprintf("%s/.ninja-dependency-info-%s.d", targetTempDir, fingerprint.Hash(name))

	args := []string{toolPath, "--name", name, "--output", depfile}
	for _, d := range deps {
		args = append(args, fmt.Sprintf("%s:%s", d.Format, d.Path))
	}

	return &Bridge{
		DepfilePath: depfile,
		Command:     shellquote.QuoteJoin(args...),
	}, nil
}
