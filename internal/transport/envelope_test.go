package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvelopeShapes(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		resource string
		wantIDs  []string
	}{
		{
			name:     "data key",
			body:     `{"success": true, "data": [{"id": "1", "name": "Alice"}, {"id": "2", "name": "Bob"}]}`,
			resource: "users",
			wantIDs:  []string{"1", "2"},
		},
		{
			name:     "resource-named key",
			body:     `{"success": true, "users": [{"id": "7", "name": "Carol"}]}`,
			resource: "users",
			wantIDs:  []string{"7"},
		},
		{
			name:     "bare array",
			body:     `[{"id": "3"}, {"id": "4"}]`,
			resource: "users",
			wantIDs:  []string{"3", "4"},
		},
		{
			name:     "unknown list key still found",
			body:     `{"success": true, "enrollments": [{"id": "9"}]}`,
			resource: "orders",
			wantIDs:  []string{"9"},
		},
		{
			name:     "missing list defaults to empty",
			body:     `{"success": true}`,
			resource: "users",
			wantIDs:  []string{},
		},
		{
			name:     "malformed list defaults to empty",
			body:     `{"success": true, "data": "oops"}`,
			resource: "users",
			wantIDs:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := ParseEnvelope(200, []byte(tt.body))
			require.NoError(t, err)

			records := env.List(tt.resource)
			ids := make([]string, 0, len(records))
			for _, rec := range records {
				ids = append(ids, rec.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestParseEnvelopeErrors(t *testing.T) {
	t.Run("http error with message", func(t *testing.T) {
		_, err := ParseEnvelope(404, []byte(`{"success": false, "message": "not found"}`))
		require.Error(t, err)

		te, ok := IsTransportError(err)
		require.True(t, ok)
		assert.Equal(t, 404, te.Status)
		assert.Equal(t, "not found", te.Message)
	})

	t.Run("falsy success on 200", func(t *testing.T) {
		_, err := ParseEnvelope(200, []byte(`{"success": false, "error": "denied"}`))
		require.Error(t, err)

		te, ok := IsTransportError(err)
		require.True(t, ok)
		assert.Equal(t, "denied", te.Message)
	})

	t.Run("non-json body", func(t *testing.T) {
		_, err := ParseEnvelope(200, []byte(`<html>gateway</html>`))
		require.Error(t, err)

		_, ok := IsTransportError(err)
		assert.True(t, ok)
	})

	t.Run("empty body is fine", func(t *testing.T) {
		env, err := ParseEnvelope(204, nil)
		require.NoError(t, err)
		assert.True(t, env.Success)
	})
}

func TestRecordNormalization(t *testing.T) {
	body := `{"data": [{"_id": "m1", "createdAt": "2026-01-02T15:04:05Z", "status": "pending", "views": 12}]}`
	env, err := ParseEnvelope(200, []byte(body))
	require.NoError(t, err)

	records := env.List("")
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "m1", rec.ID)
	assert.Equal(t, 2026, rec.CreatedAt.Year())
	assert.Equal(t, "pending", rec.StringField("status"))
	assert.Equal(t, float64(12), rec.Field("views"))
	// Служебные ключи не должны дублироваться в полях
	assert.Nil(t, rec.Field("_id"))
	assert.Nil(t, rec.Field("createdAt"))
}

func TestEnvelopeOne(t *testing.T) {
	body := `{"success": true, "user": {"id": "42", "name": "Dave"}}`
	env, err := ParseEnvelope(201, []byte(body))
	require.NoError(t, err)

	rec, ok := env.One("user")
	require.True(t, ok)
	assert.Equal(t, "42", rec.ID)
	assert.Equal(t, "Dave", rec.StringField("name"))
}

func TestEnvelopeCounters(t *testing.T) {
	body := `{"success": true, "token": "abc", "unread_count": 5, "pagination": {"current": 2, "pages": 3, "total": 25}}`
	env, err := ParseEnvelope(200, []byte(body))
	require.NoError(t, err)

	token, ok := env.String("token")
	require.True(t, ok)
	assert.Equal(t, "abc", token)

	unread, ok := env.Int("unread_count")
	require.True(t, ok)
	assert.Equal(t, 5, unread)

	require.NotNil(t, env.Pagination)
	assert.Equal(t, 3, env.Pagination.Pages)
}
