package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	m := NewMemory()

	admin, err := m.RegisterAdmin("a@b.c", "A", "secret12345")
	require.NoError(t, err)
	assert.NotEmpty(t, admin.PasswordHash)
	assert.NotEqual(t, "secret12345", string(admin.PasswordHash), "пароль не хранится открытым текстом")

	_, err = m.RegisterAdmin("a@b.c", "A", "other")
	assert.Error(t, err, "повторная регистрация того же email")

	got, token, err := m.Authenticate("a@b.c", "secret12345")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
	require.NotEmpty(t, token)

	id, ok := m.ValidateToken(token)
	require.True(t, ok)
	assert.Equal(t, admin.ID, id)

	m.RevokeToken(token)
	_, ok = m.ValidateToken(token)
	assert.False(t, ok)

	_, _, err = m.Authenticate("a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCollectionCRUD(t *testing.T) {
	m := NewMemory()
	m.AddCollection("users", StyleData)

	created, err := m.Create("users", map[string]any{"name": "Anna"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := m.Get("users", "1")
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Fields["name"])

	// PATCH не трогает чужие поля
	_, err = m.Create("users", map[string]any{"name": "Boris", "role": "viewer"})
	require.NoError(t, err)
	patched, err := m.Update("users", "2", map[string]any{"role": "admin"}, false)
	require.NoError(t, err)
	assert.Equal(t, "Boris", patched.Fields["name"])
	assert.Equal(t, "admin", patched.Fields["role"])

	// PUT затирает целиком
	replaced, err := m.Update("users", "2", map[string]any{"name": "Boris II"}, true)
	require.NoError(t, err)
	_, hasRole := replaced.Fields["role"]
	assert.False(t, hasRole)

	require.NoError(t, m.Delete("users", "1"))
	_, err = m.Get("users", "1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, m.Delete("users", "99"), ErrNotFound)
	_, err = m.List("ghosts")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotifications(t *testing.T) {
	m := NewMemory()
	now := time.Now().UTC()

	m.AddNotification("Старое", "m", now.Add(-time.Hour))
	fresh := m.AddNotification("Новое", "m", now)

	list, unread := m.Notifications()
	require.Len(t, list, 2)
	assert.Equal(t, fresh.ID, list[0].ID, "новые сверху")
	assert.Equal(t, 2, unread)

	unread, err := m.MarkNotificationRead(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	_, err = m.MarkNotificationRead("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, Seed(m, "admin@example.com", "admin12345"))

	style, ok := m.Style("users")
	require.True(t, ok)
	assert.Equal(t, StyleData, style)
	style, _ = m.Style("orders")
	assert.Equal(t, StyleBare, style)

	users, err := m.List("users")
	require.NoError(t, err)
	assert.NotEmpty(t, users)

	_, _, err = m.Authenticate("admin@example.com", "admin12345")
	assert.NoError(t, err)
}
