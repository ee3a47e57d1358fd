// Package auxfiles implements the Auxiliary File Materializer (C5): writing an
// invocation's auxiliary files (response files, generated headers, plists) to disk
// before the plan references them, so the executor never has to special-case "files the
// build plan itself produced" (§4.5).
package auxfiles

import (
	"bytes"
	"fmt"
	"os"

	"github.com/husshazein/xcbuild/src/fs"
	"github.com/husshazein/xcbuild/src/invocation"
)

// Materialize writes every auxiliary file of aux to disk (§4.5):
//   - the containing directory is created if needed;
//   - inline Contents are written directly, a ContentsPath is copied, atomically in
//     either case;
//   - the executable bit is set afterward if the file demands it.
//
// Exactly one of Contents/ContentsPath must be set per file; Materialize returns an
// error naming the offending path otherwise.
func Materialize(aux []invocation.AuxiliaryFile) error {
	for _, file := range aux {
		if err := materializeOne(file); err != nil {
			return fmt.Errorf("materializing auxiliary file %s: %w", file.Path, err)
		}
	}
	return nil
}

func materializeOne(file invocation.AuxiliaryFile) error {
	hasContents := file.Contents != nil
	hasSource := file.ContentsPath != ""
	if hasContents == hasSource {
		return fmt.Errorf("exactly one of Contents or ContentsPath must be set")
	}

	mode := os.FileMode(0644)
	if file.Executable {
		mode = fs.ExecutablePermissions
	}

	if hasContents {
		if err := fs.WriteFile(bytes.NewReader(file.Contents), file.Path, mode); err != nil {
			return err
		}
	} else {
		if err := fs.CopyFile(file.ContentsPath, file.Path, mode); err != nil {
			return err
		}
	}

	if file.Executable {
		return fs.MarkExecutable(file.Path)
	}
	return nil
}
