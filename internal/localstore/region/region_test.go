package region

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guidemarket/internal/config"
)

func exercise(t *testing.T, r Region) {
	t.Helper()
	ctx := context.Background()

	_, err := r.Get(ctx, "doc")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.Put(ctx, "doc", []byte(`{"v":1}`)))
	got, err := r.Get(ctx, "doc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(got))

	require.NoError(t, r.Put(ctx, "doc", []byte(`{"v":2}`)))
	got, err = r.Get(ctx, "doc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(got))

	require.NoError(t, r.Delete(ctx, "doc"))
	_, err = r.Get(ctx, "doc")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting an absent key is not an error
	assert.NoError(t, r.Delete(ctx, "doc"))
}

func TestMemory(t *testing.T) {
	r := NewMemory()
	defer r.Close()
	exercise(t, r)
}

func TestMemory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemory()
	buf := []byte("abc")
	require.NoError(t, r.Put(ctx, "k", buf))
	buf[0] = 'x'

	got, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLite(t *testing.T) {
	r, err := OpenSQLite(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer r.Close()
	exercise(t, r)
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	r, err := Open(ctx, config.LocalConfig{Backend: config.BackendMemory}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, r)

	r, err = Open(ctx, config.LocalConfig{Backend: config.BackendSQLite, DSN: ":memory:"}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, r)
	require.NoError(t, r.Close())

	_, err = Open(ctx, config.LocalConfig{Backend: "etcd"}, zerolog.Nop())
	assert.Error(t, err)
}
