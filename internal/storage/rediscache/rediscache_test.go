package rediscache

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacafacil/vacafacil-sync/internal/config"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

type registro struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
	}

	st, err := New(context.Background(), cfg, slog.New(discardHandler{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st, mr
}

func TestWriteAndRead(t *testing.T) {
	st, _ := setupTestStore(t)

	expected := []registro{{ID: 1, Nome: "Estrela"}}
	st.Write("vacafacil:vacas:records", expected)

	var actual []registro
	found := st.Read("vacafacil:vacas:records", &actual)

	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestRead_MissingKey(t *testing.T) {
	st, _ := setupTestStore(t)

	var out registro
	assert.False(t, st.Read("missing", &out))
}

func TestRead_CorruptPayload(t *testing.T) {
	st, mr := setupTestStore(t)

	require.NoError(t, mr.Set("broken", "not-json{"))

	var out registro
	assert.False(t, st.Read("broken", &out))
	// A entrada corrompida foi descartada.
	assert.False(t, mr.Exists("broken"))
}

func TestWriteTTL_Expires(t *testing.T) {
	st, mr := setupTestStore(t)

	st.WriteTTL("k", registro{ID: 1}, time.Minute)
	mr.FastForward(2 * time.Minute)

	var out registro
	assert.False(t, st.Read("k", &out))
}

func TestRemove(t *testing.T) {
	st, _ := setupTestStore(t)

	st.Write("k", registro{ID: 1})
	st.Remove("k")

	var out registro
	assert.False(t, st.Read("k", &out))
}
