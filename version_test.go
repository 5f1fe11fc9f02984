package kantor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kantor-opt/kantor/solver"
)

func TestVersion(t *testing.T) {
	assert.True(t, Version.Validate() == nil)
}

func TestSolvers(t *testing.T) {
	ids := Solvers()
	assert.NotEmpty(t, ids)
	for _, id := range ids {
		assert.NotEqual(t, solver.UNKNOWN, id)
		assert.NotEmpty(t, id.String())
	}
}
