package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDescriptorAcceptsKnownFormats(t *testing.T) {
	format, path, err := splitDescriptor("makefile:/tmp/foo.d")
	require.NoError(t, err)
	assert.Equal(t, "makefile", string(format))
	assert.Equal(t, "/tmp/foo.d", path)
}

func TestSplitDescriptorRejectsUnknownFormat(t *testing.T) {
	_, _, err := splitDescriptor("mystery:/tmp/foo")
	assert.Error(t, err)
}

func TestSplitDescriptorRejectsMalformed(t *testing.T) {
	_, _, err := splitDescriptor("no-colon-here")
	assert.Error(t, err)
}

func TestReadPlainListSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deps.list")
	require.NoError(t, os.WriteFile(path, []byte("/a.h\n\n/b.h\n"), 0644))

	deps, err := readPlainList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a.h", "/b.h"}, deps)
}

func TestReadMakefileExtractsPrerequisitesAcrossContinuations(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deps.d")
	require.NoError(t, os.WriteFile(path, []byte("foo.o: a.h b.h \\\n  c.h\n"), 0644))

	deps, err := readMakefile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.h", "b.h", "c.h"}, deps)
}

func TestReadBinaryDependencyInfoExtractsInputTaggedRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deps.bin")

	var data []byte
	data = append(data, depInfoTagVersion)
	data = append(data, []byte("clang version 1\x00")...)
	data = append(data, depInfoTagInput)
	data = append(data, []byte("/usr/include/foo.h\x00")...)
	data = append(data, depInfoTagOutput)
	data = append(data, []byte("/tmp/foo.o\x00")...)
	require.NoError(t, os.WriteFile(path, data, 0644))

	deps, err := readBinaryDependencyInfo(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/include/foo.h"}, deps)
}

func TestWriteDepfileEscapesSpaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.d")

	require.NoError(t, writeDepfile(path, "out.o", []string{"/a.h", "/b b.h"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "out.o: /a.h /b\\ b.h\n", string(data))
}
