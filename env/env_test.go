package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOr(t *testing.T) {
	t.Setenv("PETITIONS_ENV_TEST", "value")

	assert.Equal(t, "value", Get("PETITIONS_ENV_TEST"))
	assert.Equal(t, "value", GetOr("PETITIONS_ENV_TEST", "fallback"))
	assert.Equal(t, "fallback", GetOr("PETITIONS_ENV_TEST_MISSING", "fallback"))
}
