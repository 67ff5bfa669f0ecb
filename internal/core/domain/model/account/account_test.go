package account_test

import (
	"testing"
	"time"

	"parcels/internal/core/domain/model/account"
	"parcels/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnclaimedCustomer(t *testing.T) {
	at := time.Now()

	t.Run("creates unclaimed customer", func(t *testing.T) {
		a, err := account.NewUnclaimedCustomer(kernel.NewUUID(), "Jane", "Doe", "555-0100", " Jane@Example.com ", at)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "jane@example.com", a.Email())
		assert.Equal(t, kernel.RoleCustomer, a.Role())
		assert.False(t, a.Claimed())
		assert.False(t, a.HasPlaceholderEmail())
	})

	t.Run("missing email becomes placeholder", func(t *testing.T) {
		a, err := account.NewUnclaimedCustomer(kernel.NewUUID(), "Cher", "", "555-0100", "", at)

		require.NoError(t, err)
		assert.Equal(t, account.PlaceholderEmail, a.Email())
		assert.True(t, a.HasPlaceholderEmail())
	})

	t.Run("requires first name", func(t *testing.T) {
		_, err := account.NewUnclaimedCustomer(kernel.NewUUID(), " ", "Doe", "", "", at)
		assert.Error(t, err)
	})
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@b.c", account.NormalizeEmail(" A@B.c"))
	assert.Empty(t, account.NormalizeEmail(""))
	assert.Empty(t, account.NormalizeEmail("NoEmail@Example.com"))
}

func TestRestoreAccount(t *testing.T) {
	a, err := account.RestoreAccount(kernel.NewUUID(), "s@example.com", "Sam", "Staff", "", kernel.RoleStaff, true, time.Now())
	require.NoError(t, err)
	assert.True(t, a.Claimed())

	_, err = account.RestoreAccount(kernel.NewUUID(), "x", "", "", "", kernel.Role("ROOT"), false, time.Now())
	assert.Error(t, err)
}
