package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggingFileNameIsFilenameSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoicehub.log")

	f, err := GetLoggingFile(path)
	assert.NoError(t, err)
	defer f.Close()

	name := filepath.Base(f.Name())
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, ":")
	assert.Equal(t, ".log", filepath.Ext(name))
}
