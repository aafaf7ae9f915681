package catalogfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molivares/tiendasim/internal/domain"
)

const docDePrueba = `{
	"products": [
		{"id": "p-1", "title": "Smartwatch", "price": 89.9, "category": "electronica", "stock": 5},
		{"id": "p-2", "title": "Lámpara", "price": 24.5, "category": "hogar", "stock": 9}
	],
	"categories": [
		{"id": "electronica", "name": "Electrónica"},
		{"id": "hogar", "name": "Hogar"}
	]
}`

func TestLoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(docDePrueba))
	}))
	defer srv.Close()

	cat, err := New(srv.URL).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, cat.Products, 2)
	assert.Equal(t, "Smartwatch", cat.Products[0].Title)
	assert.Equal(t, "Hogar", cat.CategoryName("hogar"))
}

func TestLoadFromHTTPBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Load(context.Background())
	var le *domain.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "status", le.Op)
}

func TestLoadFromHTTPMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"products": [`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Load(context.Background())
	var le *domain.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "schema", le.Op)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(docDePrueba), 0o644))

	cat, err := New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, cat.Products, 2)
	assert.Len(t, cat.Categories, 2)
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "no-existe.json")).Load(context.Background())
	var le *domain.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "fetch", le.Op)
	assert.True(t, errors.Is(le.Err, os.ErrNotExist))
}
