package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadFallsBackWhenVersionUnset(t *testing.T) {
	info := Read("")
	assert.Contains(t, info.String(), "dev")
}

func TestStringIncludesGivenVersion(t *testing.T) {
	info := Read("v1.2.3")
	assert.Contains(t, info.String(), "v1.2.3")
}
