package repository

import (
	"testing"
	"time"

	"github.com/ZF-u/watchlist/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndCheckPassword(t *testing.T) {
	repos := newTestDB(t)

	user := &model.User{Name: "Test", Username: "test", CreatedAt: time.Now()}
	require.NoError(t, repos.User.SetPassword(user, "123"))

	// 哈希是自包含的加盐值，绝不等于明文
	assert.NotEqual(t, "123", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)

	assert.True(t, repos.User.CheckPassword(user, "123"))
	assert.False(t, repos.User.CheckPassword(user, "456"))
	assert.False(t, repos.User.CheckPassword(user, ""))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	repos := newTestDB(t)

	// 非法哈希按不匹配处理，不允许 panic
	user := &model.User{PasswordHash: "not-a-bcrypt-hash"}
	assert.False(t, repos.User.CheckPassword(user, "123"))

	empty := &model.User{}
	assert.False(t, repos.User.CheckPassword(empty, "123"))
}

func TestFindOwnerEmpty(t *testing.T) {
	repos := newTestDB(t)

	owner, err := repos.User.FindOwner()
	require.NoError(t, err)
	assert.Nil(t, owner)
}

func TestFindOwnerPicksLowestID(t *testing.T) {
	repos := newTestDB(t)

	first := &model.User{Name: "First", Username: "first", CreatedAt: time.Now()}
	second := &model.User{Name: "Second", Username: "second", CreatedAt: time.Now()}
	require.NoError(t, repos.DB.Create(first).Error)
	require.NoError(t, repos.DB.Create(second).Error)

	owner, err := repos.User.FindOwner()
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, first.ID, owner.ID)
	assert.Equal(t, "first", owner.Username)
}

func TestUpdateNameInvalidatesOwnerCache(t *testing.T) {
	repos := newTestDB(t)

	user := &model.User{Name: "Test", Username: "test", CreatedAt: time.Now()}
	require.NoError(t, repos.DB.Create(user).Error)

	// 第一次查询会写入缓存
	owner, err := repos.User.FindOwner()
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, "Test", owner.Name)

	require.NoError(t, repos.User.UpdateName(user.ID, "Renamed"))

	// 改名后缓存必须失效，再次查询拿到新名字
	owner, err = repos.User.FindOwner()
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, "Renamed", owner.Name)
}

func TestUpsertAdminCreatesThenUpdates(t *testing.T) {
	repos := newTestDB(t)

	// 首次调用创建账户，显示名为 Admin
	created, err := repos.User.UpsertAdmin("boss", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Admin", created.Name)
	assert.Equal(t, "boss", created.Username)
	assert.True(t, repos.User.CheckPassword(created, "secret"))

	count, err := repos.User.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// 再次调用只更新登录名和密码，不新建行
	updated, err := repos.User.UpsertAdmin("boss2", "secret2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "boss2", updated.Username)
	assert.True(t, repos.User.CheckPassword(updated, "secret2"))
	assert.False(t, repos.User.CheckPassword(updated, "secret"))

	count, err = repos.User.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestFindByIDMissing(t *testing.T) {
	repos := newTestDB(t)

	user, err := repos.User.FindByID(42)
	require.NoError(t, err)
	assert.Nil(t, user)
}
