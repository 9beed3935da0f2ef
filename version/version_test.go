package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRevision(t *testing.T) {
	assert.NotEmpty(t, Revision())
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf)

	out := buf.String()
	assert.Contains(t, out, "logex "+Version)
	assert.Contains(t, out, "revision: ")
	assert.Contains(t, out, "go:       ")
	assert.Contains(t, out, "platform: ")
}
