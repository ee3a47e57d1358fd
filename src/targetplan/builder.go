// Package targetplan implements the Target Subplan Builder (C6): translating one
// target's resolved invocations into a per-target build plan file, complete with
// begin/finish synchronization nodes, phony-input synthesis, and dependency-info
// wiring (§4.6).
package targetplan

import (
	"fmt"
	"sort"

	"github.com/husshazein/xcbuild/src/auxfiles"
	"github.com/husshazein/xcbuild/src/cli/logging"
	"github.com/husshazein/xcbuild/src/core"
	"github.com/husshazein/xcbuild/src/depinfo"
	"github.com/husshazein/xcbuild/src/fingerprint"
	"github.com/husshazein/xcbuild/src/invocation"
	"github.com/husshazein/xcbuild/src/ninja"
	"github.com/husshazein/xcbuild/src/shellquote"
)

var log = logging.Log

// RuleName is the name of the single rule every invocation build statement uses; its
// command is declared once in the top-level plan (§4.8 step 3b).
const RuleName = "invoke"

// BeginNode returns the phony node name marking the start of target's build (§3 "Build
// Graph Nodes").
func BeginNode(target string) string {
	return "begin-target-" + target
}

// FinishNode returns the phony node name marking the completion of target's build
// (§3 "Build Graph Nodes").
func FinishNode(target string) string {
	return "finish-target-" + target
}

// PhonyOutputName derives the synthetic output name for an invocation with no declared
// outputs (§3 "Paths", §4.6 step 3d).
func PhonyOutputName(exec string, args []string) string {
	joined := exec
	for _, a := range args {
		joined += " " + a
	}
	return ".ninja-phony-output-" + fingerprint.Hash(joined)
}

// Result is what Build reports back to the caller (C8) once a target's subplan has
// been written.
type Result struct {
	// Path is where the subplan was written, e.g. "<TARGET_TEMP_DIR>/build.ninja".
	Path string
	// Outputs is the sorted union of every concrete/phony output produced by a
	// non-empty invocation. This builder emits the subplan's own finish-target node
	// from it (§4.6 step 5), and the orchestrator (C8) uses it for the finish-target
	// node it emits in the top-level plan.
	Outputs []string
}

// Build writes one target's subplan (§4.6):
//  1. materializes auxiliary files;
//  2. emits a build statement per non-empty invocation;
//  3. synthesizes phony rules for declared phony inputs that aren't already outputs;
//  4. emits the target's finish node;
//  5. writes the subplan to "<tempDir>/build.ninja".
//
// dependencyInfoToolPath is the resolved path to the dependency-info-tool helper
// binary (D7), used to bridge any invocation carrying dependency-info descriptors
// (C7).
func Build(fsys core.FileSystem, formatter core.Formatter, target string, tempDir string, invocations []invocation.Invocation, dependencyInfoToolPath string) (Result, error) {
	var aux []invocation.AuxiliaryFile
	for _, inv := range invocations {
		aux = append(aux, inv.AuxiliaryFiles...)
	}
	if err := auxfiles.Materialize(aux); err != nil {
		return Result{}, fmt.Errorf("target %s: %w", target, err)
	}

	w := ninja.New()
	w.Comment("xcbuild ninja")
	w.Comment("Target: " + target)
	w.Newline()

	begin := BeginNode(target)
	outputSet := map[string]bool{}
	var orderedOutputs []string

	for _, inv := range invocations {
		if inv.IsEmpty() {
			continue
		}

		outputs := inv.Outputs
		if len(outputs) == 0 {
			outputs = []string{PhonyOutputName(inv.Executable.Path(), inv.Arguments)}
		}
		for _, o := range outputs {
			if outputSet[o] {
				return Result{}, fmt.Errorf("target %s: duplicate output %s across invocations", target, o)
			}
			outputSet[o] = true
			orderedOutputs = append(orderedOutputs, o)
		}

		exec := shellquote.Quote(inv.Executable.Path())
		for _, a := range inv.Arguments {
			exec += " " + shellquote.Quote(a)
		}

		env := ""
		for i, k := range core.SortedEnvironmentKeys(inv.Environment) {
			if i > 0 {
				env += " "
			}
			env += k + "=" + shellquote.Quote(inv.Environment[k])
		}

		description := firstLine(formatter.Describe(inv))

		depexec := "true"
		var depfile string
		if len(inv.DependencyInfo) > 0 {
			bridge, err := depinfo.Build(dependencyInfoToolPath, tempDir, outputs, inv.DependencyInfo)
			if err != nil {
				return Result{}, fmt.Errorf("target %s: %w", target, err)
			}
			if bridge != nil {
				depexec = bridge.Command
				depfile = bridge.DepfilePath
			}
		}

		bindings := []ninja.Binding{
			{Name: "description", Value: ninja.String(description)},
			{Name: "dir", Value: ninja.String(shellquote.Quote(inv.WorkingDir))},
			{Name: "exec", Value: ninja.String(exec)},
		}
		if env != "" {
			bindings = append(bindings, ninja.Binding{Name: "env", Value: ninja.String(env)})
		}
		bindings = append(bindings, ninja.Binding{Name: "depexec", Value: ninja.String(depexec)})
		if depfile != "" {
			bindings = append(bindings, ninja.Binding{Name: "depfile", Value: ninja.String(depfile)})
		}

		orderDeps := append(append([]string(nil), inv.OrderDependencies...), begin)

		w.Build(ninja.Strings(outputs), RuleName, ninja.Strings(inv.Inputs), bindings, ninja.Strings(inv.InputDependencies), ninja.Strings(orderDeps))
	}

	for _, inv := range invocations {
		for _, phonyInput := range inv.PhonyInputs {
			if outputSet[phonyInput] {
				continue
			}
			outputSet[phonyInput] = true
			w.Build(ninja.Strings([]string{phonyInput}), "phony", nil, nil, nil, nil)
		}
	}

	sort.Strings(orderedOutputs)
	w.Build(ninja.Strings([]string{FinishNode(target)}), "phony", nil, nil, nil, ninja.Strings(orderedOutputs))

	path := tempDir + "/build.ninja"
	if err := fsys.WriteFile(path, w.Bytes(), false); err != nil {
		return Result{}, fmt.Errorf("target %s: writing subplan: %w", target, err)
	}
	log.Debug("wrote subplan for %s: %s (%d invocations)", target, path, len(invocations))

	return Result{Path: path, Outputs: orderedOutputs}, nil
}

func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
