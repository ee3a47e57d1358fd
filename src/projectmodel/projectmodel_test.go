package projectmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/husshazein/xcbuild/src/core"
)

const sampleDocument = `{
  "executableSearchPaths": ["/usr/bin"],
  "targets": [
    {
      "name": "T1",
      "dependencies": [],
      "tempDir": "/tmp/T1",
      "configurationFiles": ["/repo/T1.xcconfig"],
      "invocations": [
        {
          "executable": "/usr/bin/clang",
          "arguments": ["-c", "foo.c"],
          "workingDir": "/repo",
          "outputs": ["/tmp/T1/foo.o"],
          "dependencyInfo": [{"format": "makefile", "path": "/tmp/T1/foo.d"}]
        }
      ]
    },
    {
      "name": "T2",
      "dependencies": ["T1"],
      "tempDir": "/tmp/T2",
      "invocations": []
    }
  ]
}`

func TestParseDecodesTargetsAndInvocations(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)
	require.Len(t, doc.Targets, 2)
	assert.Equal(t, []string{"/usr/bin"}, doc.ExecutableSearchPaths)
	assert.Equal(t, "T1", doc.Targets[0].Name)
	assert.Equal(t, []string{"T1"}, doc.Targets[1].Dependencies)
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	_, err := Parse([]byte("not json"))
	assert.Error(t, err)
}

func TestBuildGraphReflectsDependencies(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)
	collab := Build(doc)

	assert.Equal(t, []core.Target{{Name: "T1"}, {Name: "T2"}}, collab.Graph.Targets())
	assert.Equal(t, []core.Target{{Name: "T1"}}, collab.Graph.DependenciesOf("T2"))
}

func TestBuildResolverProducesTargetEnvironment(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)
	collab := Build(doc)

	env, err := collab.Resolver.Resolve(core.Target{Name: "T1"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/T1", env.TempDir)
	assert.Equal(t, []string{"/repo/T1.xcconfig"}, env.ConfigurationFiles)
}

func TestBuildResolverFailsForUnknownTarget(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)
	collab := Build(doc)

	_, err = collab.Resolver.Resolve(core.Target{Name: "Ghost"})
	assert.Error(t, err)
}

func TestBuildInvocationBuilderDecodesInvocation(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)
	collab := Build(doc)

	env, err := collab.Resolver.Resolve(core.Target{Name: "T1"})
	require.NoError(t, err)

	invs, err := collab.Builder.BuildInvocations(env)
	require.NoError(t, err)
	require.Len(t, invs, 1)
	assert.Equal(t, "/usr/bin/clang", invs[0].Executable.Path())
	assert.Equal(t, []string{"-c", "foo.c"}, invs[0].Arguments)
	require.Len(t, invs[0].DependencyInfo, 1)
	assert.Equal(t, "makefile", string(invs[0].DependencyInfo[0].Format))
}
