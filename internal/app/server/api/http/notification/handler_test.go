package notification

import (
	"context"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	authMW "adminhub/internal/app/server/api/http/middleware/auth"
	"adminhub/internal/app/server/store"
)

func authedCtx() context.Context {
	return context.WithValue(context.Background(), authMW.AdminIDKey, 1)
}

func TestListAndRead(t *testing.T) {
	m := store.NewMemory()
	now := time.Now().UTC()
	m.AddNotification("Старое", "m", now.Add(-time.Hour))
	fresh := m.AddNotification("Новое", "m", now)

	h := NewHandler(m, slog.Default(), huma.Middlewares{})

	out, err := h.list(authedCtx(), &listInput{})
	require.NoError(t, err)
	require.Len(t, out.Body.Notifications, 2)
	assert.Equal(t, fresh.ID, out.Body.Notifications[0].ID, "новые сверху")
	assert.Equal(t, 2, out.Body.Unread)

	readOut, err := h.read(authedCtx(), &readInput{ID: fresh.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, readOut.Body.Unread)

	_, err = h.read(authedCtx(), &readInput{ID: "ghost"})
	require.Error(t, err)
}

func TestListUnauthorized(t *testing.T) {
	h := NewHandler(store.NewMemory(), slog.Default(), huma.Middlewares{})
	_, err := h.list(context.Background(), &listInput{})
	require.Error(t, err)
}
