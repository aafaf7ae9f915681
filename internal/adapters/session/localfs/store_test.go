package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molivares/tiendasim/internal/domain"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	ctx := context.Background()

	payload := []byte(`{"coupon":"VALIDA10"}`)
	require.NoError(t, st.Save(ctx, domain.SlotPrefs, payload))

	got, err := st.Load(ctx, domain.SlotPrefs)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestLoadMissingSlot(t *testing.T) {
	st := New(t.TempDir())

	got, err := st.Load(context.Background(), domain.SlotCart)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveOverwrites(t *testing.T) {
	st := New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, domain.SlotCart, []byte(`[1]`)))
	require.NoError(t, st.Save(ctx, domain.SlotCart, []byte(`[1,2]`)))

	got, err := st.Load(ctx, domain.SlotCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)
}

func TestNewCreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "anidado", "estado")
	st := New(dir)

	require.NoError(t, st.Save(context.Background(), domain.SlotPrefs, []byte(`{}`)))
	_, err := os.Stat(filepath.Join(dir, domain.SlotPrefs+".json"))
	require.NoError(t, err)
}
