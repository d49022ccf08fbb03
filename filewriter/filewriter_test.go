// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

package filewriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriter(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.txt")

	fw, err := New(p)
	require.NoError(t, err)
	fw.Printf("count %d\n", 3)
	fw.Write([]byte{0x89, 0x50})
	require.NoError(t, fw.Close())

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, append([]byte("count 3\n"), 0x89, 0x50), b)

	// The temp file is gone after Close.
	ents, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, ents, 1)
}

func TestFileWriter_NoPartialFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.txt")

	fw, err := New(p)
	require.NoError(t, err)
	fw.Printf("partial")
	fw.werr = os.ErrClosed // simulate an earlier write failure
	assert.Error(t, fw.Close())

	// The target file must not exist.
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))
}
