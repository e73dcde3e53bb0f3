package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/internal/store"
)

func newTestRegistry(t *testing.T) AccountRegistry {
	t.Helper()
	prefs, err := store.NewPrefs(t.TempDir(), "accounts")
	require.NoError(t, err)
	return NewAccountRegistry(prefs, logger.Nop())
}

func TestDeriveAccountID_Deterministic(t *testing.T) {
	a := DeriveAccountID("aisha", "https://hmis.example.org")
	b := DeriveAccountID("aisha", "https://hmis.example.org")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestDeriveAccountID_NormalizesServerURL(t *testing.T) {
	// same logical identity regardless of case and trailing slash
	base := DeriveAccountID("aisha", "https://hmis.example.org")
	assert.Equal(t, base, DeriveAccountID("AISHA", "https://hmis.example.org/"))
	assert.Equal(t, base, DeriveAccountID(" aisha ", "HTTPS://HMIS.EXAMPLE.ORG"))
}

func TestDeriveAccountID_DistinctPerIdentity(t *testing.T) {
	a := DeriveAccountID("aisha", "https://hmis.example.org")
	assert.NotEqual(t, a, DeriveAccountID("beatrice", "https://hmis.example.org"))
	assert.NotEqual(t, a, DeriveAccountID("aisha", "https://other.example.org"))
}

func TestLocalStoreNameForID(t *testing.T) {
	id := DeriveAccountID("aisha", "https://hmis.example.org")
	name := LocalStoreNameForID(id)

	assert.True(t, strings.HasPrefix(name, "account_"))
	assert.True(t, strings.HasSuffix(name, ".db"))
	assert.Equal(t, "account_"+id[:12]+".db", name)
}

func TestAccountRegistry_UpsertAndLookup(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	account, err := registry.UpsertAccount(ctx, "aisha", "https://hmis.example.org/", "Aisha N.")
	require.NoError(t, err)
	assert.Equal(t, "aisha", account.Username)
	assert.Equal(t, "https://hmis.example.org", account.ServerURL)
	assert.Equal(t, "Aisha N.", account.DisplayName)
	assert.NotEmpty(t, account.LocalStoreName)

	found, err := registry.Account(account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
	assert.Equal(t, account.LocalStoreName, found.LocalStoreName)
}

func TestAccountRegistry_UpsertKeepsDisplayNameWhenOmitted(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	first, err := registry.UpsertAccount(ctx, "aisha", "https://hmis.example.org", "Aisha N.")
	require.NoError(t, err)

	// offline re-registration has no display name from the server
	second, err := registry.UpsertAccount(ctx, "aisha", "https://hmis.example.org", "")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Aisha N.", second.DisplayName)
}

func TestAccountRegistry_RepeatLoginReusesStore(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	first, err := registry.UpsertAccount(ctx, "aisha", "https://hmis.example.org", "Aisha N.")
	require.NoError(t, err)
	second, err := registry.UpsertAccount(ctx, "aisha", "https://hmis.example.org", "Aisha N.")
	require.NoError(t, err)

	assert.Equal(t, first.LocalStoreName, second.LocalStoreName)

	accounts, err := registry.Accounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 1, "re-login must not create a second registration")
}

func TestAccountRegistry_ActiveAccountLifecycle(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	_, err := registry.ActiveAccount()
	assert.ErrorIs(t, err, ErrNoActiveAccount)

	account, err := registry.UpsertAccount(ctx, "aisha", "https://hmis.example.org", "Aisha N.")
	require.NoError(t, err)
	require.NoError(t, registry.SetActiveAccount(account.ID))

	active, err := registry.ActiveAccount()
	require.NoError(t, err)
	assert.Equal(t, account.ID, active.ID)

	require.NoError(t, registry.ClearActiveAccount())
	_, err = registry.ActiveAccount()
	assert.ErrorIs(t, err, ErrNoActiveAccount)

	// registration survives deactivation
	_, err = registry.Account(account.ID)
	assert.NoError(t, err)
}

func TestAccountRegistry_SetActiveAccount_UnknownID(t *testing.T) {
	registry := newTestRegistry(t)

	err := registry.SetActiveAccount("deadbeef")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountRegistry_RemoveAll(t *testing.T) {
	registry := newTestRegistry(t)
	ctx := context.Background()

	account, err := registry.UpsertAccount(ctx, "aisha", "https://hmis.example.org", "")
	require.NoError(t, err)
	require.NoError(t, registry.SetActiveAccount(account.ID))

	require.NoError(t, registry.RemoveAll())

	accounts, err := registry.Accounts()
	require.NoError(t, err)
	assert.Empty(t, accounts)

	_, err = registry.ActiveAccount()
	assert.ErrorIs(t, err, ErrNoActiveAccount)
}
