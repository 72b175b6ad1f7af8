package mockauth

import (
	"errors"
	"testing"

	"github.com/aussiebroadwan/propauth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestDirectoryCreate(t *testing.T) {
	t.Parallel()
	d := NewDirectory()

	a, err := d.Create(Account{Email: "Ada@Example.com", Role: authsdk.RoleClient})
	require.NoError(t, err)
	require.Equal(t, int64(1), a.ID)

	b, err := d.Create(Account{Email: "bob@example.com"})
	require.NoError(t, err)
	require.Equal(t, int64(2), b.ID)

	_, err = d.Create(Account{Email: " ada@example.com "})
	require.ErrorIs(t, err, ErrEmailTaken)
	require.Equal(t, 2, d.Len())

	got, err := d.ByEmail("ADA@example.com")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
	require.Equal(t, []string{"ROLE_CLIENT"}, got.Authorities())

	_, err = d.ByID(99)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestDirectoryUpdate(t *testing.T) {
	t.Parallel()
	d := NewDirectory()
	a, err := d.Create(Account{Email: "a@b.com", FirstName: "A"})
	require.NoError(t, err)

	t.Run("applies changes but keeps identity", func(t *testing.T) {
		got, err := d.Update(a.ID, func(acct *Account) error {
			acct.FirstName = "Ada"
			acct.Email = "other@b.com"
			acct.ID = 42
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, "Ada", got.FirstName)
		require.Equal(t, "a@b.com", got.Email)
		require.Equal(t, a.ID, got.ID)
	})

	t.Run("failed update saves nothing", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := d.Update(a.ID, func(acct *Account) error {
			acct.FirstName = "changed"
			return boom
		})
		require.ErrorIs(t, err, boom)

		got, err := d.ByID(a.ID)
		require.NoError(t, err)
		require.Equal(t, "Ada", got.FirstName)
	})

	t.Run("returned copies are detached", func(t *testing.T) {
		got, err := d.ByID(a.ID)
		require.NoError(t, err)
		got.FirstName = "mutated"

		again, err := d.ByID(a.ID)
		require.NoError(t, err)
		require.Equal(t, "Ada", again.FirstName)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := d.Update(7, func(*Account) error { return nil })
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDirectoryByResetFingerprint(t *testing.T) {
	t.Parallel()
	d := NewDirectory()
	a, err := d.Create(Account{Email: "a@b.com", ResetFingerprint: "fp"})
	require.NoError(t, err)

	got, err := d.ByResetFingerprint("fp")
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)

	_, err = d.ByResetFingerprint("")
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = d.ByResetFingerprint("nope")
	require.ErrorIs(t, err, ErrUserNotFound)
}
