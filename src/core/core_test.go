package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/husshazein/xcbuild/src/invocation"
)

func TestCanonicalArgumentsOrdersFlagsThenOverrides(t *testing.T) {
	c := Configuration{
		Project:            "App.xcodeproj",
		Scheme:             "App",
		BuildConfiguration: "Debug",
		Action:             ActionBuild,
		Overrides:          []string{"CODE_SIGNING_ALLOWED=NO"},
	}
	assert.Equal(t, []string{
		"-project", "App.xcodeproj",
		"-scheme", "App",
		"-configuration", "Debug",
		"build",
		"CODE_SIGNING_ALLOWED=NO",
	}, c.CanonicalArguments())
}

func TestCanonicalHashIsStableForIdenticalParameters(t *testing.T) {
	a := Configuration{Project: "App.xcodeproj", Scheme: "App", Action: ActionBuild}
	b := Configuration{Project: "App.xcodeproj", Scheme: "App", Action: ActionBuild}
	assert.Equal(t, a.CanonicalHash(), b.CanonicalHash())
}

func TestCanonicalHashChangesWithOverrides(t *testing.T) {
	a := Configuration{Project: "App.xcodeproj", Action: ActionBuild}
	b := Configuration{Project: "App.xcodeproj", Action: ActionBuild, Overrides: []string{"X=1"}}
	assert.NotEqual(t, a.CanonicalHash(), b.CanonicalHash())
}

func TestSortedEnvironmentKeysAreLexicographic(t *testing.T) {
	keys := SortedEnvironmentKeys(map[string]string{"PATH": "x", "ARCH": "y", "BUILT_PRODUCTS_DIR": "z"})
	assert.Equal(t, []string{"ARCH", "BUILT_PRODUCTS_DIR", "PATH"}, keys)
}

func TestStaticGraphReturnsDependenciesInOrder(t *testing.T) {
	g := NewStaticGraph([]string{"T1", "T2"}, map[string][]string{
		"T2": {"T1"},
	})
	assert.Equal(t, []Target{{Name: "T1"}, {Name: "T2"}}, g.Targets())
	assert.Equal(t, []Target{{Name: "T1"}}, g.DependenciesOf("T2"))
	assert.Empty(t, g.DependenciesOf("T1"))
}

func TestMemFileSystemRoundTrip(t *testing.T) {
	fs := NewMemFileSystem()
	require.NoError(t, fs.WriteFile("/tmp/out.txt", []byte("hi"), true))
	assert.True(t, fs.PathExists("/tmp/out.txt"))
	assert.True(t, fs.IsExecutable("/tmp/out.txt"))
	data, err := fs.ReadFile("/tmp/out.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
}

func TestMemFileSystemFindExecutableSearchesPaths(t *testing.T) {
	fs := NewMemFileSystem()
	require.NoError(t, fs.WriteFile("/tools/clang", []byte{}, true))
	path, ok := fs.FindExecutable("clang", []string{"/missing", "/tools"})
	assert.True(t, ok)
	assert.Equal(t, "/tools/clang", path)
}

func TestScriptedInvocationBuilderParsesCommandStrings(t *testing.T) {
	b := &ScriptedInvocationBuilder{Commands: map[string][]string{
		"T1": {`/bin/echo "hi there"`},
	}}
	invs, err := b.BuildInvocations(TargetEnvironment{Target: Target{Name: "T1"}, TempDir: "/tmp/T1"})
	require.NoError(t, err)
	require.Len(t, invs, 1)
	assert.Equal(t, "/bin/echo", invs[0].Executable.Path())
	assert.Equal(t, []string{"hi there"}, invs[0].Arguments)
	assert.Equal(t, "/tmp/T1", invs[0].WorkingDir)
}

func TestPlainFormatterPrefersLogMessage(t *testing.T) {
	f := NewPlainFormatter()
	msg := f.Describe(invocation.Invocation{LogMessage: "Compiling foo.c"})
	assert.Equal(t, "Compiling foo.c", msg)
}

func TestPlainFormatterFallsBackToExecutableAndArgs(t *testing.T) {
	f := NewPlainFormatter()
	msg := f.Describe(invocation.Invocation{
		Executable: invocation.Absolute("/usr/bin/clang"),
		Arguments:  []string{"-c", "foo.c"},
	})
	assert.Equal(t, "/usr/bin/clang -c foo.c", msg)
}
