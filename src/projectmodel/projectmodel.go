// Package projectmodel is the thin adapter between an already-resolved project model
// (as produced by the out-of-scope project/scheme/workspace parser and build-settings
// evaluator, §1) and the orchestration core's collaborator interfaces (§6). It reads a
// JSON document describing targets, their dependencies, and their pre-computed
// invocations; it does not parse .xcodeproj/.xcworkspace files itself.
package projectmodel

import (
	"encoding/json"
	"fmt"

	"github.com/husshazein/xcbuild/src/core"
	"github.com/husshazein/xcbuild/src/invocation"
)

// TargetModel is one target's resolved environment and invocations, as emitted by the
// out-of-scope phase compiler.
type TargetModel struct {
	Name               string            `json:"name"`
	Dependencies       []string          `json:"dependencies"`
	TempDir            string            `json:"tempDir"`
	ConfigurationFiles []string          `json:"configurationFiles"`
	Invocations        []InvocationModel `json:"invocations"`
}

// InvocationModel is the JSON encoding of one invocation.Invocation.
type InvocationModel struct {
	Executable  string            `json:"executable"`
	Arguments   []string          `json:"arguments"`
	Environment map[string]string `json:"environment"`
	WorkingDir  string            `json:"workingDir"`

	Inputs      []string `json:"inputs"`
	Outputs     []string `json:"outputs"`
	PhonyInputs []string `json:"phonyInputs"`

	InputDependencies []string `json:"inputDependencies"`
	OrderDependencies []string `json:"orderDependencies"`

	DependencyInfo []DependencyInfoModel `json:"dependencyInfo"`
	AuxiliaryFiles []AuxiliaryFileModel  `json:"auxiliaryFiles"`

	LogMessage string `json:"logMessage"`
}

// DependencyInfoModel is the JSON encoding of one invocation.DependencyInfo.
type DependencyInfoModel struct {
	Format string `json:"format"`
	Path   string `json:"path"`
}

// AuxiliaryFileModel is the JSON encoding of one invocation.AuxiliaryFile.
type AuxiliaryFileModel struct {
	Path         string `json:"path"`
	Contents     string `json:"contents"`
	ContentsPath string `json:"contentsPath"`
	Executable   bool   `json:"executable"`
}

// Document is the top-level resolved-project-model JSON document.
type Document struct {
	ExecutableSearchPaths []string      `json:"executableSearchPaths"`
	Targets               []TargetModel `json:"targets"`
}

// Parse decodes a resolved project model from JSON bytes.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parsing project model: %w", err)
	}
	return doc, nil
}

// graph, resolver, and builder are the concrete collaborator implementations backed by
// a parsed Document. They're unexported because callers only need the Collaborators
// constructor below.
type graph struct {
	doc Document
}

func (g *graph) Targets() []core.Target {
	targets := make([]core.Target, len(g.doc.Targets))
	for i, t := range g.doc.Targets {
		targets[i] = core.Target{Name: t.Name}
	}
	return targets
}

func (g *graph) DependenciesOf(name string) []core.Target {
	for _, t := range g.doc.Targets {
		if t.Name == name {
			deps := make([]core.Target, len(t.Dependencies))
			for i, d := range t.Dependencies {
				deps[i] = core.Target{Name: d}
			}
			return deps
		}
	}
	return nil
}

type resolver struct {
	byName map[string]TargetModel
}

func (r *resolver) Resolve(target core.Target) (core.TargetEnvironment, error) {
	model, ok := r.byName[target.Name]
	if !ok {
		return core.TargetEnvironment{}, fmt.Errorf("unknown target %q", target.Name)
	}
	if model.TempDir == "" {
		return core.TargetEnvironment{}, fmt.Errorf("target %q has no tempDir", target.Name)
	}
	return core.TargetEnvironment{
		Target:             target,
		TempDir:            model.TempDir,
		ConfigurationFiles: model.ConfigurationFiles,
	}, nil
}

type builder struct {
	byName map[string]TargetModel
}

func (b *builder) BuildInvocations(env core.TargetEnvironment) ([]invocation.Invocation, error) {
	model := b.byName[env.Target.Name]
	invocations := make([]invocation.Invocation, 0, len(model.Invocations))
	for _, im := range model.Invocations {
		inv, err := toInvocation(im)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", env.Target.Name, err)
		}
		invocations = append(invocations, inv)
	}
	return invocations, nil
}

func toInvocation(im InvocationModel) (invocation.Invocation, error) {
	exe, err := invocation.Determine(im.Executable, nil)
	if err != nil {
		return invocation.Invocation{}, err
	}

	deps := make([]invocation.DependencyInfo, len(im.DependencyInfo))
	for i, d := range im.DependencyInfo {
		deps[i] = invocation.DependencyInfo{Format: invocation.DependencyFormat(d.Format), Path: d.Path}
	}

	aux := make([]invocation.AuxiliaryFile, len(im.AuxiliaryFiles))
	for i, a := range im.AuxiliaryFiles {
		af := invocation.AuxiliaryFile{Path: a.Path, Executable: a.Executable}
		if a.ContentsPath != "" {
			af.ContentsPath = a.ContentsPath
		} else {
			af.Contents = []byte(a.Contents)
		}
		aux[i] = af
	}

	return invocation.Invocation{
		Executable:        exe,
		Arguments:         im.Arguments,
		Environment:       im.Environment,
		WorkingDir:        im.WorkingDir,
		Inputs:            im.Inputs,
		Outputs:           im.Outputs,
		PhonyInputs:       im.PhonyInputs,
		InputDependencies: im.InputDependencies,
		OrderDependencies: im.OrderDependencies,
		DependencyInfo:    deps,
		AuxiliaryFiles:    aux,
		LogMessage:        im.LogMessage,
	}, nil
}

// Collaborators are the concrete TargetGraph, EnvironmentResolver, and
// PhaseInvocationBuilder backed by a parsed Document, ready to hand to the
// orchestrator.
type Collaborators struct {
	Graph    core.TargetGraph
	Resolver core.EnvironmentResolver
	Builder  core.PhaseInvocationBuilder
}

// Build constructs the collaborator set from a parsed Document.
func Build(doc Document) Collaborators {
	byName := make(map[string]TargetModel, len(doc.Targets))
	for _, t := range doc.Targets {
		byName[t.Name] = t
	}
	return Collaborators{
		Graph:    &graph{doc: doc},
		Resolver: &resolver{byName: byName},
		Builder:  &builder{byName: byName},
	}
}
