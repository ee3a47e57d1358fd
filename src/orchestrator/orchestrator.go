// Package orchestrator implements the Build Orchestrator (C8): composing per-target
// subplans into one top-level plan, adding the self-regenerate rule, and deciding when
// regeneration is required via a configuration-fingerprint cache (§4.8).
package orchestrator

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/husshazein/xcbuild/src/cli/logging"
	"github.com/husshazein/xcbuild/src/core"
	"github.com/husshazein/xcbuild/src/ninja"
	"github.com/husshazein/xcbuild/src/shellquote"
	"github.com/husshazein/xcbuild/src/targetplan"
)

var log = logging.Log

// invokeRuleCommand is the master rule every per-target invocation build statement
// shares (§4.8 step 3b).
const invokeRuleCommand = "cd $dir && env -i $env $exec && $depexec"

// regenerateRuleCommand re-invokes the driver in-place when its inputs change
// (§4.8 step 3e).
const regenerateRuleCommand = "cd $dir && $exec"

// ConfigurationFingerprintFile is the name of the fingerprint file persisted next to
// the top-level plan (§3 "Paths").
const ConfigurationFingerprintFile = ".ninja-configuration"

// TopLevelPlanFile is the name of the top-level plan file (§3 "Paths").
const TopLevelPlanFile = "build.ninja"

// Options bundles everything one generation run needs: the resolved build parameters,
// the intermediates directory, the target graph and its collaborators, and the flags
// controlling regeneration and execution.
type Options struct {
	Configuration core.Configuration

	// ObjRoot is the intermediates directory ("OBJROOT") the top-level plan and
	// fingerprint file are written beneath.
	ObjRoot string

	Graph    core.TargetGraph
	Resolver core.EnvironmentResolver
	Builder  core.PhaseInvocationBuilder

	Formatter core.Formatter
	FS        core.FileSystem

	// DependencyInfoToolPath is the resolved path to the dependency-info-tool helper
	// binary (D7).
	DependencyInfoToolPath string

	// DriverPath is the path to the currently running driver binary, used to compose
	// the self-regenerate command (§4.8 step 3e).
	DriverPath string

	// GeneratorInputs seeds the accumulated generator-inputs list with the
	// workspace/project file list reported by the (out-of-scope) loader
	// (§4.8 step 3c).
	GeneratorInputs []string

	ExecutableSearchPaths []string

	// ExecutorName is embedded into the self-regenerate command. Defaults to "ninja".
	// It does not affect which binary is launched: LaunchExecutor (D8) always looks
	// for ninja first, then its fallback.
	ExecutorName string

	// Generate forces regeneration even if the fingerprint matches (§4.8 step 2).
	Generate bool
	// DryRun is passed through to the executor as "-n".
	DryRun bool
}

// Run executes one full generation (and, unless Generate is set, execution) cycle
// (§4.8).
func Run(opts Options) error {
	if opts.ExecutorName == "" {
		opts.ExecutorName = preferredExecutor
	}

	planPath := opts.ObjRoot + "/" + TopLevelPlanFile
	fingerprintPath := opts.ObjRoot + "/" + ConfigurationFingerprintFile

	if shouldGenerate(opts, planPath, fingerprintPath) {
		if err := generate(opts, planPath, fingerprintPath); err != nil {
			return err
		}
	}

	if opts.Generate {
		return nil
	}
	return LaunchExecutor(opts.ExecutableSearchPaths, planPath, opts.ObjRoot, opts.DryRun)
}

// shouldGenerate decides whether regeneration is required (§4.8 step 2).
func shouldGenerate(opts Options, planPath, fingerprintPath string) bool {
	if opts.Generate {
		return true
	}
	if !opts.FS.PathExists(planPath) {
		return true
	}
	data, err := opts.FS.ReadFile(fingerprintPath)
	if err != nil {
		return true
	}
	return string(data) != opts.Configuration.CanonicalHash()
}

func generate(opts Options, planPath, fingerprintPath string) error {
	w := ninja.New()
	w.Comment("xcbuild ninja")
	w.Newline()
	w.Binding("builddir", ninja.String(opts.ObjRoot))
	w.Newline()
	w.Rule("invoke", []ninja.Binding{
		{Name: "command", Value: ninja.Expression(invokeRuleCommand)},
	})
	w.Newline()

	generatorInputs := append([]string(nil), opts.GeneratorInputs...)
	configErrors := &ConfigurationErrors{}
	targetsGenerated := 0
	bytesWritten := 0

	for _, target := range opts.Graph.Targets() {
		env, err := opts.Resolver.Resolve(target)
		if err != nil {
			log.Warning("skipping target %s: %s", target.Name, err)
			configErrors.Add(target.Name, err)
			continue
		}

		var dependencyFinishNodes []string
		for _, dep := range opts.Graph.DependenciesOf(target.Name) {
			dependencyFinishNodes = append(dependencyFinishNodes, targetplan.FinishNode(dep.Name))
		}
		w.Build(ninja.Strings([]string{targetplan.BeginNode(target.Name)}), "phony", ninja.Strings(dependencyFinishNodes), nil, nil, nil)

		invocations, err := opts.Builder.BuildInvocations(env)
		if err != nil {
			return fmt.Errorf("building invocations for target %s: %w", target.Name, err)
		}

		result, err := targetplan.Build(opts.FS, opts.Formatter, target.Name, env.TempDir, invocations, opts.DependencyInfoToolPath)
		if err != nil {
			return err
		}
		w.Subninja(ninja.String(result.Path))
		w.Build(ninja.Strings([]string{targetplan.FinishNode(target.Name)}), "phony", nil, nil, nil, ninja.Strings(result.Outputs))

		generatorInputs = append(generatorInputs, env.ConfigurationFiles...)
		targetsGenerated++
	}

	if targetsGenerated == 0 && configErrors.Len() > 0 {
		return fmt.Errorf("no targets generated successfully: %w", configErrors.ErrorOrNil())
	}

	generatorInputs = append(generatorInputs, fingerprintPath)
	w.Newline()
	w.Rule("regenerate", []ninja.Binding{
		{Name: "command", Value: ninja.Expression(regenerateRuleCommand)},
		{Name: "description", Value: ninja.String("Regenerating build files...")},
		{Name: "generator", Value: ninja.String("1")},
		{Name: "pool", Value: ninja.String("console")},
	})
	cwd, err := opts.FS.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}
	regenerateExec := shellquote.QuoteJoin(append([]string{opts.DriverPath, "-generate", "-executor", opts.ExecutorName}, opts.Configuration.CanonicalArguments()...)...)
	w.Build(ninja.Strings([]string{TopLevelPlanFile}), "regenerate", ninja.Strings(generatorInputs), []ninja.Binding{
		{Name: "dir", Value: ninja.String(shellquote.Quote(cwd))},
		{Name: "exec", Value: ninja.String(regenerateExec)},
	}, nil, nil)

	planBytes := w.Bytes()
	if err := opts.FS.WriteFile(planPath, planBytes, false); err != nil {
		return fmt.Errorf("writing top-level plan: %w", err)
	}
	if err := opts.FS.WriteFile(fingerprintPath, []byte(opts.Configuration.CanonicalHash()), false); err != nil {
		return fmt.Errorf("writing configuration fingerprint: %w", err)
	}

	bytesWritten = len(planBytes)
	log.Notice("generated %d targets (%s) into %s", targetsGenerated, humanize.Bytes(uint64(bytesWritten)), planPath)
	if configErrors.Len() > 0 {
		log.Warning("skipped %d targets due to configuration errors: %s", configErrors.Len(), configErrors.ErrorOrNil())
	}
	return nil
}
