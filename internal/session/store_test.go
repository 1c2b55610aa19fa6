package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysu-ecnc-dev/course-manager/webfront/internal/domain"
)

func TestNewStoreRestoresState(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, keyToken, "tok_abc", time.Hour))
	require.NoError(t, storage.Set(ctx, keyUserInfo, `{"id":1,"name":"张老师","role":"teacher"}`, time.Hour))

	store, err := NewStore(ctx, storage, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, "tok_abc", store.Token())
	require.NotNil(t, store.UserInfo())
	assert.Equal(t, int64(1), store.UserInfo().ID)
	assert.Equal(t, domain.RoleTeacher, store.UserInfo().Role)
}

func TestNewStoreEmptyStorage(t *testing.T) {
	store, err := NewStore(context.Background(), NewMemoryStorage(), time.Hour)
	require.NoError(t, err)

	assert.Empty(t, store.Token())
	assert.Nil(t, store.UserInfo())
}

func TestNewStoreCorruptUserInfo(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, keyToken, "tok_abc", time.Hour))
	require.NoError(t, storage.Set(ctx, keyUserInfo, "not json", time.Hour))

	store, err := NewStore(ctx, storage, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, "tok_abc", store.Token())
	assert.Nil(t, store.UserInfo())
}

func TestStoreWriteThrough(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	store, err := NewStore(ctx, storage, time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.SetToken(ctx, "tok_new"))
	require.NoError(t, store.SetUserInfo(ctx, &domain.UserInfo{ID: 2, Name: "李同学", Role: domain.RoleStudent}))

	restored, err := NewStore(ctx, storage, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, "tok_new", restored.Token())
	require.NotNil(t, restored.UserInfo())
	assert.Equal(t, "李同学", restored.UserInfo().Name)
}

func TestStoreLogout(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	store, err := NewStore(ctx, storage, time.Hour)
	require.NoError(t, err)

	require.NoError(t, store.SetToken(ctx, "tok_abc"))
	require.NoError(t, store.SetUserInfo(ctx, &domain.UserInfo{ID: 1, Role: domain.RoleTeacher}))
	require.NoError(t, store.Logout(ctx))

	assert.Empty(t, store.Token())
	assert.Nil(t, store.UserInfo())

	_, err = storage.Get(ctx, keyToken)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = storage.Get(ctx, keyUserInfo)
	assert.ErrorIs(t, err, ErrNotFound)
}
