package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "v0.1.0-dev", Version())

	GitCommit = "4f2a9c1"
	defer func() { GitCommit = "" }()
	assert.Equal(t, "v0.1.0-dev+4f2a9c1", Version())
}
