package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HISP-Uganda/fieldsync/internal/logger"
	"github.com/HISP-Uganda/fieldsync/models"
)

// fakeStore — простой стаб Store, следит за закрытием.
type fakeStore struct {
	name     string
	closed   bool
	closeErr error
	cleared  bool
}

func (f *fakeStore) Name() string                 { return f.name }
func (f *fakeStore) Metadata() MetadataRepository { return nil }
func (f *fakeStore) Records() RecordRepository    { return nil }
func (f *fakeStore) ClearAllTables(context.Context) error {
	f.cleared = true
	return nil
}
func (f *fakeStore) Close() error {
	f.closed = true
	return f.closeErr
}

func accountNamed(storeName string) models.Account {
	return models.Account{ID: "id-" + storeName, LocalStoreName: storeName}
}

func newTestManager(opener Opener) *Manager {
	return NewManagerWithOpener(opener, logger.Nop())
}

func TestManager_GetStoreForAccount_Idempotent(t *testing.T) {
	opens := 0
	mgr := newTestManager(func(_ context.Context, name string) (Store, error) {
		opens++
		return &fakeStore{name: name}, nil
	})

	ctx := context.Background()
	first, err := mgr.GetStoreForAccount(ctx, accountNamed("account_aaa.db"))
	require.NoError(t, err)

	second, err := mgr.GetStoreForAccount(ctx, accountNamed("account_aaa.db"))
	require.NoError(t, err)

	assert.Same(t, first, second, "same account must reuse the open store")
	assert.Equal(t, 1, opens)
}

func TestManager_GetStoreForAccount_SwapClosesPrevious(t *testing.T) {
	stores := map[string]*fakeStore{}
	mgr := newTestManager(func(_ context.Context, name string) (Store, error) {
		st := &fakeStore{name: name}
		stores[name] = st
		return st, nil
	})

	ctx := context.Background()
	_, err := mgr.GetStoreForAccount(ctx, accountNamed("account_aaa.db"))
	require.NoError(t, err)

	swapped, err := mgr.GetStoreForAccount(ctx, accountNamed("account_bbb.db"))
	require.NoError(t, err)

	assert.True(t, stores["account_aaa.db"].closed, "previous store must be closed on swap")
	assert.False(t, stores["account_bbb.db"].closed)
	assert.Same(t, swapped, mgr.GetCurrentStoreOrNil())
}

func TestManager_GetStoreForAccount_SwapToleratesCloseFailure(t *testing.T) {
	opened := 0
	mgr := newTestManager(func(_ context.Context, name string) (Store, error) {
		opened++
		return &fakeStore{name: name, closeErr: errors.New("busy")}, nil
	})

	ctx := context.Background()
	_, err := mgr.GetStoreForAccount(ctx, accountNamed("account_aaa.db"))
	require.NoError(t, err)

	// Ошибка закрытия логируется, но не блокирует переключение
	st, err := mgr.GetStoreForAccount(ctx, accountNamed("account_bbb.db"))
	require.NoError(t, err)
	assert.Equal(t, "account_bbb.db", st.Name())
	assert.Equal(t, 2, opened)
}

func TestManager_GetStoreForAccount_OpenError(t *testing.T) {
	wantErr := errors.New("disk full")
	mgr := newTestManager(func(_ context.Context, _ string) (Store, error) {
		return nil, wantErr
	})

	_, err := mgr.GetStoreForAccount(context.Background(), accountNamed("account_aaa.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
	assert.Nil(t, mgr.GetCurrentStoreOrNil())
}

func TestManager_CloseCurrentStore(t *testing.T) {
	var opened *fakeStore
	mgr := newTestManager(func(_ context.Context, name string) (Store, error) {
		opened = &fakeStore{name: name}
		return opened, nil
	})

	// no-op when nothing is open
	require.NoError(t, mgr.CloseCurrentStore())

	_, err := mgr.GetStoreForAccount(context.Background(), accountNamed("account_aaa.db"))
	require.NoError(t, err)

	require.NoError(t, mgr.CloseCurrentStore())
	assert.True(t, opened.closed)
	assert.Nil(t, mgr.GetCurrentStoreOrNil())
}

func TestManager_ClearCurrent(t *testing.T) {
	var opened *fakeStore
	mgr := newTestManager(func(_ context.Context, name string) (Store, error) {
		opened = &fakeStore{name: name}
		return opened, nil
	})

	err := mgr.ClearCurrent(context.Background())
	assert.ErrorIs(t, err, ErrNoOpenStore)

	_, err = mgr.GetStoreForAccount(context.Background(), accountNamed("account_aaa.db"))
	require.NoError(t, err)

	require.NoError(t, mgr.ClearCurrent(context.Background()))
	assert.True(t, opened.cleared)
}
