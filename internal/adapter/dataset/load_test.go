package dataset

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ktg84478/erovista/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLoader() *Loader {
	return NewLoader(5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(wideCSV), 0o600))

	ds, err := testLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, ds.Source)
	assert.Equal(t, 6, ds.Table.Len())
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := testLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data.csv", r.URL.Path)
		assert.Equal(t, "text/csv", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, longCSV)
	}))
	defer srv.Close()

	ds, err := testLoader().Load(context.Background(), srv.URL+"/data.csv")
	require.NoError(t, err)
	assert.Equal(t, LayoutLong, ds.Layout)
	assert.Equal(t, 3, ds.Table.Len())
}

func TestLoader_RemoteStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "no such object")
	}))
	defer srv.Close()

	_, err := testLoader().Load(context.Background(), srv.URL+"/data.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "no such object")
}

func TestLoader_RemoteSchemaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "mount_type\nTop\n")
	}))
	defer srv.Close()

	_, err := testLoader().Load(context.Background(), srv.URL)
	var se *domain.SchemaError
	require.ErrorAs(t, err, &se)
}

func TestLoader_RemoteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	l := NewLoader(50*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := l.Load(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch request")
}
