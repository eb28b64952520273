package model

import (
	"testing"

	"optiwave/backend/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndFill(t *testing.T) {
	setupTestDB(t)
	created := createTestUser(t, "alice@example.com", "Alice")

	// Warm the model cache: cached copies are json round-tripped and carry
	// no password hash, so verification must not depend on them.
	for i := 0; i < 2; i++ {
		fetched, err := UserDB.Where("email = ?", "alice@example.com").Fetch(0, 1)
		require.NoError(t, err)
		require.Len(t, fetched, 1)
	}

	user := &User{Email: "alice@example.com", Password: "testpass"}
	require.NoError(t, user.ValidateAndFill())
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, "Alice", user.DisplayName)

	wrong := &User{Email: "alice@example.com", Password: "wrongpass"}
	assert.Error(t, wrong.ValidateAndFill())

	unknown := &User{Email: "nobody@example.com", Password: "testpass"}
	assert.Error(t, unknown.ValidateAndFill())
}

func TestValidateAndFillRootSeed(t *testing.T) {
	setupTestDB(t)

	root := &User{Email: "root@localhost", Password: "123456"}
	require.NoError(t, root.ValidateAndFill())
	assert.Equal(t, common.RoleRootUser, root.Role)
}

func TestValidateAndFillDisabledAccount(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "gone@example.com", "Gone")

	user.Status = common.UserStatusDisabled
	require.NoError(t, UserDB.Save(user))

	login := &User{Email: "gone@example.com", Password: "testpass"}
	assert.Error(t, login.ValidateAndFill())
}

func TestIsEmailAlreadyTaken(t *testing.T) {
	setupTestDB(t)
	createTestUser(t, "taken@example.com", "Taken")

	assert.True(t, IsEmailAlreadyTaken("taken@example.com"))
	assert.False(t, IsEmailAlreadyTaken("free@example.com"))
}
