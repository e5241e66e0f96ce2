package resource

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	authMW "adminhub/internal/app/server/api/http/middleware/auth"
	"adminhub/internal/app/server/store"
)

type fakeAudit struct {
	entries []string
}

func (f *fakeAudit) Record(_ context.Context, _ int, action, resource, itemID string) error {
	f.entries = append(f.entries, action+" "+resource+"/"+itemID)
	return nil
}

func newTestHandler(t *testing.T) (*Handler, *store.Memory, *fakeAudit) {
	t.Helper()

	m := store.NewMemory()
	m.AddCollection("users", store.StyleData)
	m.AddCollection("courses", store.StyleKeyed)
	m.AddCollection("orders", store.StyleBare)

	audit := &fakeAudit{}
	return NewHandler(m, audit, slog.Default(), huma.Middlewares{}), m, audit
}

func authedCtx() context.Context {
	return context.WithValue(context.Background(), authMW.AdminIDKey, 1)
}

func TestListEnvelopeStyles(t *testing.T) {
	h, m, _ := newTestHandler(t)
	_, err := m.Create("users", map[string]any{"name": "Anna"})
	require.NoError(t, err)
	_, err = m.Create("courses", map[string]any{"title": "Go"})
	require.NoError(t, err)
	_, err = m.Create("orders", map[string]any{"number": "ORD-1"})
	require.NoError(t, err)

	// Стиль data
	out, err := h.list(authedCtx(), &listInput{Resource: "users"})
	require.NoError(t, err)
	body, ok := out.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["data"], 1)

	// Стиль keyed: список лежит под именем ресурса
	out, err = h.list(authedCtx(), &listInput{Resource: "courses"})
	require.NoError(t, err)
	body = out.Body.(map[string]any)
	assert.Contains(t, body, "courses")
	assert.NotContains(t, body, "data")

	// Голый массив
	out, err = h.list(authedCtx(), &listInput{Resource: "orders"})
	require.NoError(t, err)
	rows, ok := out.Body.([]map[string]any)
	require.True(t, ok)
	assert.Len(t, rows, 1)
}

func TestListUnknownResource(t *testing.T) {
	h, _, _ := newTestHandler(t)
	_, err := h.list(authedCtx(), &listInput{Resource: "ghosts"})
	require.Error(t, err)
}

func TestListUnauthorized(t *testing.T) {
	h, _, _ := newTestHandler(t)
	_, err := h.list(context.Background(), &listInput{Resource: "users"})
	require.Error(t, err)
}

func TestCreateAddsServerFields(t *testing.T) {
	h, _, audit := newTestHandler(t)

	out, err := h.create(authedCtx(), &createInput{
		Resource: "users",
		Body:     map[string]any{"name": "Boris"},
	})
	require.NoError(t, err)

	body := out.Body.(map[string]any)
	item := body["data"].(map[string]any)
	assert.Equal(t, 1, item["id"])
	assert.NotEmpty(t, item["created_at"])
	assert.Equal(t, []string{"create users/1"}, audit.entries)
}

func TestPatchKeepsOtherFields(t *testing.T) {
	h, m, _ := newTestHandler(t)
	_, err := m.Create("users", map[string]any{"name": "Anna", "role": "viewer"})
	require.NoError(t, err)

	out, err := h.patch(authedCtx(), &updateInput{
		Resource: "users",
		ID:       "1",
		Body:     map[string]any{"role": "admin"},
	})
	require.NoError(t, err)

	item := out.Body.(map[string]any)["data"].(map[string]any)
	assert.Equal(t, "Anna", item["name"])
	assert.Equal(t, "admin", item["role"])
}

func TestDelete(t *testing.T) {
	h, m, audit := newTestHandler(t)
	_, err := m.Create("users", map[string]any{"name": "Anna"})
	require.NoError(t, err)

	out, err := h.delete(authedCtx(), &itemInput{Resource: "users", ID: "1"})
	require.NoError(t, err)
	assert.Equal(t, true, out.Body.(map[string]any)["success"])
	assert.Contains(t, audit.entries, "delete users/1")

	_, err = h.delete(authedCtx(), &itemInput{Resource: "users", ID: "1"})
	require.Error(t, err, "повторное удаление того же ID")
}

func TestKeyedItemUsesSingular(t *testing.T) {
	h, _, _ := newTestHandler(t)

	out, err := h.create(authedCtx(), &createInput{
		Resource: "courses",
		Body:     map[string]any{"title": "Go"},
	})
	require.NoError(t, err)

	body := out.Body.(map[string]any)
	assert.Contains(t, body, "course")
}
