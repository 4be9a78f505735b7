package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/webmail/internal/model"
	"github.com/nhle/webmail/internal/store"
	"github.com/nhle/webmail/tests/testutil"
)

func TestSettingsRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	// Absent key reads as empty, not an error.
	value, err := s.GetSetting(ctx, store.SettingTheme)
	require.NoError(t, err)
	assert.Equal(t, "", value)

	require.NoError(t, s.SetSetting(ctx, store.SettingTheme, "dark"))

	value, err = s.GetSetting(ctx, store.SettingTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", value)

	// Overwrite wins.
	require.NoError(t, s.SetSetting(ctx, store.SettingTheme, "light"))
	value, err = s.GetSetting(ctx, store.SettingTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", value)
}

func TestAccountLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	// Logged out: no account.
	account, err := s.GetAccount(ctx)
	require.NoError(t, err)
	assert.Nil(t, account)

	err = s.SaveAccount(ctx, model.Account{
		Address:     "pat@example.com",
		DisplayName: "Pat Example",
	})
	require.NoError(t, err)

	account, err = s.GetAccount(ctx)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "pat@example.com", account.Address)
	assert.NotEmpty(t, account.ID)

	// Saving again replaces rather than accumulates.
	err = s.SaveAccount(ctx, model.Account{
		Address:     "sam@example.com",
		DisplayName: "Sam Example",
	})
	require.NoError(t, err)

	account, err = s.GetAccount(ctx)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "sam@example.com", account.Address)

	require.NoError(t, s.DeleteAccount(ctx))
	account, err = s.GetAccount(ctx)
	require.NoError(t, err)
	assert.Nil(t, account)
}
