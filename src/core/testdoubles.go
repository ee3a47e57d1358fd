package core

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/google/shlex"

	"github.com/husshazein/xcbuild/src/fs"
	"github.com/husshazein/xcbuild/src/invocation"
)

// shardCount mirrors the teacher's sharded-map sizing for a map expected to stay small
// in tests: enough shards to avoid contention under parallel test runs, cheap to zero
// out between cases.
const shardCount = 16

// memFileSystem is an in-memory FileSystem double (D5), sharded over its path space
// the way the teacher's cmap package shards a concurrent map, keyed by xxhash of the
// path rather than FNV. Real builds use realFileSystem (below); this double keeps plan
// and fingerprint bytes in memory so orchestrator and subplan-builder tests never touch
// the real disk for them. Auxiliary files are still written to disk by the auxfiles
// package through fs.WriteFile.
type memFileSystem struct {
	shards [shardCount]struct {
		mu      sync.Mutex
		entries map[string][]byte
		exec    map[string]bool
	}
}

// NewMemFileSystem constructs an empty in-memory FileSystem double.
func NewMemFileSystem() FileSystem {
	m := &memFileSystem{}
	for i := range m.shards {
		m.shards[i].entries = map[string][]byte{}
		m.shards[i].exec = map[string]bool{}
	}
	return m
}

func (m *memFileSystem) shardFor(path string) *struct {
	mu      sync.Mutex
	entries map[string][]byte
	exec    map[string]bool
} {
	h := xxhash.Sum64String(path)
	return &m.shards[h%shardCount]
}

func (m *memFileSystem) PathExists(path string) bool {
	s := m.shardFor(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[path]
	return ok
}

func (m *memFileSystem) FileExists(path string) bool {
	return m.PathExists(path)
}

func (m *memFileSystem) EnsureDir(path string) error {
	return nil
}

func (m *memFileSystem) ReadFile(path string) ([]byte, error) {
	s := m.shardFor(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return data, nil
}

func (m *memFileSystem) WriteFile(path string, data []byte, executable bool) error {
	s := m.shardFor(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[path] = append([]byte(nil), data...)
	s.exec[path] = executable
	return nil
}

func (m *memFileSystem) IsExecutable(path string) bool {
	s := m.shardFor(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exec[path]
}

func (m *memFileSystem) FindExecutable(name string, searchPaths []string) (string, bool) {
	for _, dir := range searchPaths {
		candidate := dir + "/" + name
		if m.PathExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (m *memFileSystem) Getwd() (string, error) {
	return "/workspace", nil
}

// realFileSystem adapts the fs package facade to the FileSystem interface for
// production use.
type realFileSystem struct{}

// NewRealFileSystem returns the production FileSystem backed by the local disk.
func NewRealFileSystem() FileSystem {
	return realFileSystem{}
}

func (realFileSystem) PathExists(path string) bool { return fs.PathExists(path) }
func (realFileSystem) FileExists(path string) bool { return fs.FileExists(path) }
func (realFileSystem) EnsureDir(path string) error { return os.MkdirAll(path, fs.DirPermissions) }

func (realFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (realFileSystem) WriteFile(path string, data []byte, executable bool) error {
	mode := os.FileMode(0644)
	if executable {
		mode = fs.ExecutablePermissions
	}
	return fs.WriteFile(bytes.NewReader(data), path, mode)
}

func (realFileSystem) IsExecutable(path string) bool { return fs.IsExecutable(path) }

func (realFileSystem) FindExecutable(name string, searchPaths []string) (string, bool) {
	return fs.FindExecutable(name, searchPaths)
}

func (realFileSystem) Getwd() (string, error) { return os.Getwd() }

// ScriptedInvocationBuilder is an in-memory PhaseInvocationBuilder double (D5): each
// target's invocations are written as human-readable shell-like command strings and
// parsed into argument lists with shlex, so test fixtures read as commands rather than
// Go string slices.
type ScriptedInvocationBuilder struct {
	Commands map[string][]string
}

// BuildInvocations implements PhaseInvocationBuilder.
func (b *ScriptedInvocationBuilder) BuildInvocations(env TargetEnvironment) ([]invocation.Invocation, error) {
	commands := b.Commands[env.Target.Name]
	invocations := make([]invocation.Invocation, 0, len(commands))
	for _, cmd := range commands {
		fields, err := shlex.Split(cmd)
		if err != nil {
			return nil, fmt.Errorf("parsing scripted command %q: %w", cmd, err)
		}
		if len(fields) == 0 {
			continue
		}
		invocations = append(invocations, invocation.Invocation{
			Executable: invocation.Absolute(fields[0]),
			Arguments:  fields[1:],
			WorkingDir: env.TempDir,
		})
	}
	return invocations, nil
}

// plainFormatter is a Formatter double that describes an invocation by its display
// name and arguments, used by tests and as the default when no richer formatter is
// supplied.
type plainFormatter struct{}

// NewPlainFormatter returns the default Formatter.
func NewPlainFormatter() Formatter { return plainFormatter{} }

func (plainFormatter) Describe(inv invocation.Invocation) string {
	if inv.LogMessage != "" {
		return inv.LogMessage
	}
	if inv.Executable == nil {
		return "(empty invocation)"
	}
	name := inv.Executable.DisplayName()
	for _, arg := range inv.Arguments {
		name += " " + arg
	}
	return name
}
