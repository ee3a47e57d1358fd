// Package fs provides the filesystem facade consumed by the orchestration core (§6):
// path existence, directory creation, atomic writes, executable-bit queries, and the
// current working directory. It deliberately does not track file hashes or mtimes;
// staleness is the external executor's job (§1 Non-goals).
package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/husshazein/xcbuild/src/cli/logging"
)

var log = logging.Log

// DirPermissions are the default permission bits applied to directories.
const DirPermissions = os.ModeDir | 0775

// ExecutablePermissions are applied to auxiliary files marked executable (§4.5).
const ExecutablePermissions = 0755

// EnsureDir ensures that the directory of the given file has been created.
func EnsureDir(filename string) error {
	dir := filepath.Dir(filename)
	err := os.MkdirAll(dir, DirPermissions)
	if err != nil && FileExists(dir) {
		// Happens if a former output path is now needed as a directory.
		log.Warning("Attempting to remove file %s; a subdirectory is required", dir)
		if err2 := os.Remove(dir); err2 == nil {
			err = os.MkdirAll(dir, DirPermissions)
		} else {
			log.Error("%s", err2)
		}
	}
	return err
}

// PathExists returns true if the given path exists, as a file or a directory.
func PathExists(filename string) bool {
	_, err := os.Lstat(filename)
	return err == nil
}

// FileExists returns true if the given path exists and is a file.
func FileExists(filename string) bool {
	info, err := os.Lstat(filename)
	return err == nil && !info.IsDir()
}

// IsExecutable returns true if the given path exists and has any executable bit set.
func IsExecutable(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && info.Mode()&0111 != 0
}

// CopyFile copies a file from 'from' to 'to', performing a write-to-temp-then-rename so
// a reader never observes a partially written destination.
func CopyFile(from string, to string, mode os.FileMode) error {
	fromFile, err := os.Open(from)
	if err != nil {
		return err
	}
	defer fromFile.Close()
	return WriteFile(fromFile, to, mode)
}

// WriteFile writes data from a reader to the file named 'to' atomically: it writes to a
// sibling temp file in the same directory, then renames over the destination.
func WriteFile(from io.Reader, to string, mode os.FileMode) error {
	dir, file := filepath.Split(to)
	if dir != "" {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return err
		}
	}
	tempPath := filepath.Join(dir, file+"."+uuid.New().String()+".tmp")
	tempFile, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(tempFile, from); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	if mode == 0 {
		mode = 0644
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		return err
	}
	return os.Rename(tempPath, to)
}

// MarkExecutable sets the executable bits on a file if they are not already set.
func MarkExecutable(filename string) error {
	if IsExecutable(filename) {
		return nil
	}
	return os.Chmod(filename, ExecutablePermissions)
}
