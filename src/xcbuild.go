// Command xcbuild is the driver entrypoint (D1): it parses the minimal flag set this
// core actually consumes, wires logging, invokes the Build Orchestrator (C8), and sets
// the process exit code.
package main

import (
	"os"

	"github.com/thought-machine/go-flags"

	"github.com/husshazein/xcbuild/src/cli/logging"
	"github.com/husshazein/xcbuild/src/core"
	"github.com/husshazein/xcbuild/src/fs"
	"github.com/husshazein/xcbuild/src/orchestrator"
	"github.com/husshazein/xcbuild/src/projectmodel"
)

var log = logging.Log

var opts struct {
	Project            string   `long:"project" description:"Path to the .xcodeproj to build."`
	Workspace          string   `long:"workspace" description:"Path to the .xcworkspace to build."`
	Scheme             string   `long:"scheme" description:"Scheme to build."`
	BuildConfiguration string   `long:"configuration" description:"Build configuration (e.g. Debug, Release)."`
	ObjRoot            string   `long:"objroot" description:"Intermediates directory." default:"build"`
	Generate           bool     `long:"generate" description:"Only regenerate the build plan; do not invoke the executor."`
	Executor           string   `long:"executor" description:"Name of the executor to target." default:"ninja"`
	DryRun             bool     `short:"n" description:"Pass -n through to the executor (dry run)."`
	Verbosity          int      `short:"v" description:"Verbosity level, 0 (warnings) to 3 (debug)." default:"1"`
	Overrides          []string `short:"x" long:"override" description:"A build-setting override in KEY=VALUE form."`
	Model              string   `long:"model" description:"Path to the resolved project model JSON (§1: output of the out-of-scope project/scheme parser)." required:"true"`
}

func main() {
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	logging.Init(verbosityLevel(opts.Verbosity))

	action := core.ActionBuild
	configuration := core.Configuration{
		Project:            opts.Project,
		Workspace:          opts.Workspace,
		Scheme:             opts.Scheme,
		BuildConfiguration: opts.BuildConfiguration,
		Action:             action,
		Overrides:          opts.Overrides,
	}

	driverPath, err := fs.CurrentExecutable()
	if err != nil {
		log.Critical("could not resolve current executable: %s", err)
		os.Exit(1)
	}

	infoTool, err := fs.LocalExecutable("dependency-info-tool")
	if err != nil {
		log.Critical("could not resolve dependency-info-tool: %s", err)
		os.Exit(1)
	}

	modelBytes, err := os.ReadFile(opts.Model)
	if err != nil {
		log.Critical("could not read project model %s: %s", opts.Model, err)
		os.Exit(1)
	}
	doc, err := projectmodel.Parse(modelBytes)
	if err != nil {
		log.Critical("%s", err)
		os.Exit(1)
	}
	collaborators := projectmodel.Build(doc)

	searchPaths := doc.ExecutableSearchPaths
	if len(searchPaths) == 0 {
		searchPaths = executablePaths()
	}

	runOpts := orchestrator.Options{
		Configuration:          configuration,
		ObjRoot:                opts.ObjRoot,
		Graph:                  collaborators.Graph,
		Resolver:               collaborators.Resolver,
		Builder:                collaborators.Builder,
		Formatter:              core.NewPlainFormatter(),
		FS:                     core.NewRealFileSystem(),
		DependencyInfoToolPath: infoTool,
		DriverPath:             driverPath,
		ExecutableSearchPaths:  searchPaths,
		ExecutorName:           opts.Executor,
		Generate:               opts.Generate,
		DryRun:                 opts.DryRun,
	}

	if err := orchestrator.Run(runOpts); err != nil {
		log.Critical("%s", err)
		os.Exit(1)
	}
}

// verbosityLevel translates the numeric "-v" level into a logging.Level (§5, D2).
func verbosityLevel(v int) logging.Level {
	switch {
	case v <= 0:
		return logging.WARNING
	case v == 1:
		return logging.NOTICE
	case v == 2:
		return logging.INFO
	default:
		return logging.DEBUG
	}
}

func executablePaths() []string {
	path := os.Getenv("PATH")
	if path == "" {
		return nil
	}
	var paths []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == os.PathListSeparator {
			paths = append(paths, path[start:i])
			start = i + 1
		}
	}
	paths = append(paths, path[start:])
	return paths
}
