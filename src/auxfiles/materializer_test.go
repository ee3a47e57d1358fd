package auxfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/husshazein/xcbuild/src/invocation"
)

func TestMaterializeWritesInlineContents(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "response.txt")

	err := Materialize([]invocation.AuxiliaryFile{
		{Path: target, Contents: []byte("-c\n-o out.o\n")},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "-c\n-o out.o\n", string(data))
}

func TestMaterializeCopiesFromSourcePath(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "source.txt")
	require.NoError(t, os.WriteFile(source, []byte("hello"), 0644))

	target := filepath.Join(dir, "copy.txt")
	err := Materialize([]invocation.AuxiliaryFile{
		{Path: target, ContentsPath: source},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestMaterializeSetsExecutableBit(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "script.sh")

	err := Materialize([]invocation.AuxiliaryFile{
		{Path: target, Contents: []byte("#!/bin/sh\n"), Executable: true},
	})
	require.NoError(t, err)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0111)
}

func TestMaterializeRejectsAmbiguousSource(t *testing.T) {
	dir := t.TempDir()
	err := Materialize([]invocation.AuxiliaryFile{
		{Path: filepath.Join(dir, "bad.txt")},
	})
	assert.Error(t, err)
}

func TestMaterializeRejectsBothSourcesSet(t *testing.T) {
	dir := t.TempDir()
	err := Materialize([]invocation.AuxiliaryFile{
		{Path: filepath.Join(dir, "bad.txt"), Contents: []byte("x"), ContentsPath: "/tmp/y"},
	})
	assert.Error(t, err)
}
