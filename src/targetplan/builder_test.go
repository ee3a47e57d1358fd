package targetplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/husshazein/xcbuild/src/core"
	"github.com/husshazein/xcbuild/src/fingerprint"
	"github.com/husshazein/xcbuild/src/invocation"
)

func TestBuildEmptyTargetEmitsOnlyFinishNode(t *testing.T) {
	fsys := core.NewMemFileSystem()
	result, err := Build(fsys, core.NewPlainFormatter(), "T1", "/tmp/T1", nil, "/tools/dependency-info-tool")
	require.NoError(t, err)

	data, err := fsys.ReadFile(result.Path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Target: T1")
	assert.Contains(t, text, "build finish-target-T1 : phony")
	assert.NotContains(t, text, "begin-target-T1 :")
}

func TestBuildInvocationWithNoOutputsGetsPhonyOutput(t *testing.T) {
	fsys := core.NewMemFileSystem()
	invs := []invocation.Invocation{
		{Executable: invocation.Absolute("/bin/echo"), Arguments: []string{"hi"}, WorkingDir: "/tmp"},
	}
	result, err := Build(fsys, core.NewPlainFormatter(), "T1", "/tmp/T1", invs, "")
	require.NoError(t, err)

	want := PhonyOutputName("/bin/echo", []string{"hi"})
	assert.Equal(t, want, ".ninja-phony-output-"+fingerprint.Hash("/bin/echo hi"))
	assert.Contains(t, result.Outputs, want)

	data, _ := fsys.ReadFile(result.Path)
	assert.Contains(t, string(data), want)
}

func TestBuildSuppressesPhonyInputThatIsARealOutput(t *testing.T) {
	fsys := core.NewMemFileSystem()
	invs := []invocation.Invocation{
		{Executable: invocation.Absolute("/bin/cc"), Outputs: []string{"/tmp/a.o"}, WorkingDir: "/tmp"},
		{Executable: invocation.Absolute("/bin/ld"), PhonyInputs: []string{"/tmp/a.o"}, Outputs: []string{"/tmp/out"}, WorkingDir: "/tmp"},
	}
	result, err := Build(fsys, core.NewPlainFormatter(), "T1", "/tmp/T1", invs, "")
	require.NoError(t, err)

	data, _ := fsys.ReadFile(result.Path)
	text := string(data)
	assert.NotContains(t, text, "build /tmp/a.o : phony")
}

func TestBuildEmitsPhonyForUnmatchedPhonyInput(t *testing.T) {
	fsys := core.NewMemFileSystem()
	invs := []invocation.Invocation{
		{Executable: invocation.Absolute("/bin/sh"), PhonyInputs: []string{"/tmp/script-input"}, Outputs: []string{"/tmp/out"}, WorkingDir: "/tmp"},
	}
	result, err := Build(fsys, core.NewPlainFormatter(), "T1", "/tmp/T1", invs, "")
	require.NoError(t, err)

	data, _ := fsys.ReadFile(result.Path)
	assert.Contains(t, string(data), "build /tmp/script-input : phony\n")
}

func TestBuildRejectsDuplicateOutputs(t *testing.T) {
	fsys := core.NewMemFileSystem()
	invs := []invocation.Invocation{
		{Executable: invocation.Absolute("/bin/cc"), Outputs: []string{"/tmp/a.o"}, WorkingDir: "/tmp"},
		{Executable: invocation.Absolute("/bin/cc2"), Outputs: []string{"/tmp/a.o"}, WorkingDir: "/tmp"},
	}
	_, err := Build(fsys, core.NewPlainFormatter(), "T1", "/tmp/T1", invs, "")
	assert.Error(t, err)
}

func TestBuildOrdersEveryInvocationAfterTargetBegin(t *testing.T) {
	fsys := core.NewMemFileSystem()
	invs := []invocation.Invocation{
		{Executable: invocation.Absolute("/bin/cc"), Outputs: []string{"/tmp/a.o"}, WorkingDir: "/tmp"},
	}
	result, err := Build(fsys, core.NewPlainFormatter(), "T1", "/tmp/T1", invs, "")
	require.NoError(t, err)

	data, _ := fsys.ReadFile(result.Path)
	assert.Contains(t, string(data), "|| begin-target-T1")
}

func TestBuildWiresDependencyInfoCommand(t *testing.T) {
	fsys := core.NewMemFileSystem()
	invs := []invocation.Invocation{
		{
			Executable: invocation.Absolute("/bin/cc"),
			Outputs:    []string{"/tmp/foo.o"},
			WorkingDir: "/tmp",
			DependencyInfo: []invocation.DependencyInfo{
				{Format: invocation.FormatMakefile, Path: "/tmp/foo.dep"},
			},
		},
	}
	result, err := Build(fsys, core.NewPlainFormatter(), "T1", "/tmp/T1", invs, "/tools/dependency-info-tool")
	require.NoError(t, err)

	data, _ := fsys.ReadFile(result.Path)
	text := string(data)
	assert.Contains(t, text, "dependency-info-tool --name /tmp/foo.o")
	assert.Contains(t, text, "depfile = /tmp/T1/.ninja-dependency-info-"+fingerprint.Hash("/tmp/foo.o")+".d")
}
