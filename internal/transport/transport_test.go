package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequestBearerHeader(t *testing.T) {
	var gotAuth, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer srv.Close()

	tr := New(srv.URL, testLogger())
	tr.SetToken("secret-token")

	_, err := tr.Request(context.Background(), http.MethodGet, "/api/users", nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "AdminHub-Console/1.0", gotAgent)
}

func TestRequestNoTokenNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	tr := New(srv.URL, testLogger())
	_, err := tr.Request(context.Background(), http.MethodGet, "/api/users", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestRequestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "boom"}`))
	}))
	defer srv.Close()

	tr := New(srv.URL, testLogger())
	_, err := tr.Request(context.Background(), http.MethodGet, "/api/users", nil)
	require.Error(t, err)

	te, ok := IsTransportError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, te.Status)
	assert.Equal(t, "boom", te.Message)
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["password"] != "correct horse" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success": false, "message": "invalid credentials"}`))
			return
		}
		w.Write([]byte(`{"success": true, "token": "tok-1", "user": {"id": "a1", "name": "Root"}}`))
	}))
	defer srv.Close()

	tr := New(srv.URL, testLogger())

	t.Run("bad password", func(t *testing.T) {
		_, _, err := tr.Login(context.Background(), "root@example.com", "wrong")
		require.Error(t, err)
		te, ok := IsTransportError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, te.Status)
	})

	t.Run("ok", func(t *testing.T) {
		token, profile, err := tr.Login(context.Background(), "root@example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token)
		assert.Equal(t, "a1", profile.ID)
		assert.Equal(t, "Root", profile.StringField("name"))
	})
}

func TestUploadMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "CV", r.FormValue("title"))

		file, header, err := r.FormFile("resume")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "resume.txt", header.Filename)

		w.Write([]byte(`{"success": true, "data": {"id": "u1"}}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := dir + "/resume.txt"
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0600))

	tr := New(srv.URL, testLogger())
	env, err := tr.Upload(context.Background(), http.MethodPost, "/api/candidates",
		map[string]string{"title": "CV"},
		[]FileUpload{{Field: "resume", Path: path}},
	)
	require.NoError(t, err)

	rec, ok := env.One("data")
	require.True(t, ok)
	assert.Equal(t, "u1", rec.ID)
}
