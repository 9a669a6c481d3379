package notify_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacafacil/vacafacil-sync/internal/models"
	"github.com/vacafacil/vacafacil-sync/internal/notify"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

type fakeSnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeSnapshots() *fakeSnapshots {
	return &fakeSnapshots{data: map[string][]byte{}}
}

func (f *fakeSnapshots) Read(key string, dest any) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (f *fakeSnapshots) Write(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = raw
}

func makeCenter(snaps *fakeSnapshots) *notify.Center {
	return notify.NewCenter(snaps, slog.New(discardHandler{}))
}

func TestPush_AppendsUnread(t *testing.T) {
	c := makeCenter(newFakeSnapshots())

	n := c.Push(models.NotificacaoLembrete, "Vacinação", "dose de aftosa amanhã")

	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Lida)
	assert.Equal(t, 1, c.Unread())
	require.Len(t, c.Items(), 1)
}

func TestPush_CapEvictsOldestFirst(t *testing.T) {
	snaps := newFakeSnapshots()
	c := makeCenter(snaps)

	var primeira models.Notificacao
	for i := range 51 {
		n := c.Push(models.NotificacaoSucesso, fmt.Sprintf("n%d", i), "msg")
		if i == 0 {
			primeira = n
		}
	}

	items := c.Items()
	require.Len(t, items, 50)
	assert.Equal(t, "n1", items[0].Titulo)
	assert.Equal(t, "n50", items[49].Titulo)

	// O espelho persistido também perdeu a mais antiga.
	var mirrored []models.Notificacao
	require.True(t, snaps.Read("vacafacil:notifications", &mirrored))
	require.Len(t, mirrored, 50)
	for _, m := range mirrored {
		assert.NotEqual(t, primeira.ID, m.ID)
	}
}

func TestMarkRead(t *testing.T) {
	c := makeCenter(newFakeSnapshots())
	n := c.Push(models.NotificacaoErro, "Erro ao salvar", "sem conexão com o servidor")

	assert.True(t, c.MarkRead(n.ID))
	assert.Equal(t, 0, c.Unread())
	assert.False(t, c.MarkRead("id-inexistente"))
}

func TestMarkAllRead(t *testing.T) {
	c := makeCenter(newFakeSnapshots())
	c.Push(models.NotificacaoSucesso, "a", "")
	c.Push(models.NotificacaoSucesso, "b", "")

	c.MarkAllRead()

	assert.Equal(t, 0, c.Unread())
}

func TestNewCenter_ReloadsPersistedHistory(t *testing.T) {
	snaps := newFakeSnapshots()
	c := makeCenter(snaps)
	c.Push(models.NotificacaoLembrete, "Parto previsto", "vaca 12 nesta semana")

	reloaded := makeCenter(snaps)

	require.Len(t, reloaded.Items(), 1)
	assert.Equal(t, "Parto previsto", reloaded.Items()[0].Titulo)
}
