package orchestrator

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/husshazein/xcbuild/src/fs"
)

// preferredExecutor is the external executor binary name this core targets.
const preferredExecutor = "ninja"

// fallbackExecutor is a compatible executor invoked through its own multi-tool prefix
// when the preferred binary isn't found on the executable search paths (D8).
const fallbackExecutor = "llbuild"

// fallbackSubtoolPrefix is prepended to the executor arguments when the fallback binary
// is used, since it dispatches to its Ninja-compatible mode as a subcommand.
var fallbackSubtoolPrefix = []string{"ninja", "build"}

// LaunchExecutor resolves and execs the external executor (D8): the preferred name
// first, then the compatible fallback with its subtool prefix. It passes "-f <plan>"
// and, when dryRun is set, "-n"; the caller's environment is inherited and the working
// directory is objRoot.
func LaunchExecutor(searchPaths []string, planPath string, objRoot string, dryRun bool) error {
	executable, foundPreferred := fs.FindExecutable(preferredExecutor, searchPaths)
	usingFallback := false
	if !foundPreferred {
		var ok bool
		executable, ok = fs.FindExecutable(fallbackExecutor, searchPaths)
		if !ok {
			return fmt.Errorf("could not find %s or %s on the executable search paths", preferredExecutor, fallbackExecutor)
		}
		usingFallback = true
	}

	args := []string{"-f", planPath}
	if usingFallback {
		args = append(append([]string(nil), fallbackSubtoolPrefix...), args...)
	}
	if dryRun {
		args = append(args, "-n")
	}

	cmd := exec.Command(executable, args...)
	cmd.Dir = objRoot
	cmd.Env = os.Environ()
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("executor launch failed: %w", err)
	}
	return nil
}
