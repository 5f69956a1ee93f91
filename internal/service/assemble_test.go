package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleFilesZipsInOrder(t *testing.T) {
	contents := [][]byte{[]byte("one"), []byte("two"), []byte("three")}
	names := []string{"a.png", "b.png", "c.png"}

	files := assembleFiles(contents, names)
	assert.Len(t, files, 3)
	for i, f := range files {
		assert.Equal(t, names[i], f.Name)
		assert.Equal(t, contents[i], f.Data)
	}
}

func TestAssembleFilesLengthMismatchYieldsEmpty(t *testing.T) {
	contents := [][]byte{[]byte("one"), []byte("two")}
	names := []string{"a.png", "b.png", "c.png"}

	files := assembleFiles(contents, names)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestAssembleFilesEmptyInputs(t *testing.T) {
	assert.Empty(t, assembleFiles(nil, nil))
	assert.Empty(t, assembleFiles([][]byte{[]byte("x")}, nil))
	assert.Empty(t, assembleFiles(nil, []string{"x"}))
}
