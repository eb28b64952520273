package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := Password2Hash("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, ValidatePasswordAndHash("hunter22", hash))
	assert.False(t, ValidatePasswordAndHash("hunter23", hash))
	assert.False(t, ValidatePasswordAndHash("hunter22", "not-a-hash"))
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := Password2Hash("same-password")
	require.NoError(t, err)
	second, err := Password2Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
