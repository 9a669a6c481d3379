package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacafacil/vacafacil-sync/internal/models"
	"github.com/vacafacil/vacafacil-sync/internal/remote"
	"github.com/vacafacil/vacafacil-sync/internal/store"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

type mockRemote[T any] struct {
	ListFunc   func(ctx context.Context) ([]T, error)
	CreateFunc func(ctx context.Context, rec T) (T, error)
	UpdateFunc func(ctx context.Context, id any, rec T) (T, error)
	DeleteFunc func(ctx context.Context, id any) error
}

func (m *mockRemote[T]) List(ctx context.Context) ([]T, error) { return m.ListFunc(ctx) }
func (m *mockRemote[T]) Create(ctx context.Context, rec T) (T, error) {
	return m.CreateFunc(ctx, rec)
}
func (m *mockRemote[T]) Update(ctx context.Context, id any, rec T) (T, error) {
	return m.UpdateFunc(ctx, id, rec)
}
func (m *mockRemote[T]) Delete(ctx context.Context, id any) error { return m.DeleteFunc(ctx, id) }

// fakeSnapshots espelho local em memória, serializando de verdade para
// garantir que o snapshot sobrevive a um round-trip JSON.
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

type fakeSession bool

func (f fakeSession) Authenticated() bool { return bool(f) }

type fakeToaster struct {
	mu       sync.Mutex
	sucessos []string
	erros    []string
}

func (f *fakeToaster) Success(titulo, mensagem string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sucessos = append(f.sucessos, titulo+": "+mensagem)
}

func (f *fakeToaster) Error(titulo, mensagem string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.erros = append(f.erros, titulo+": "+mensagem)
}

func (f *fakeToaster) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sucessos), len(f.erros)
}

func makeHerd(rc store.RemoteCollection[models.Vaca], snaps *fakeSnapshots, authed bool, toast *fakeToaster) *store.HerdStore {
	return store.NewHerd(rc, snaps, fakeSession(authed), toast, makeLogger())
}

func TestLoad_SuccessReplacesAndMirrors(t *testing.T) {
	snaps := newFakeSnapshots()
	toast := &fakeToaster{}
	rc := &mockRemote[models.Vaca]{
		ListFunc: func(ctx context.Context) ([]models.Vaca, error) {
			return []models.Vaca{{ID: 1, Numero: "001", Nome: "Estrela"}}, nil
		},
	}
	herd := makeHerd(rc, snaps, true, toast)

	herd.Load(context.Background())

	require.Len(t, herd.Items(), 1)
	assert.Equal(t, store.ProvenanceFresh, herd.Provenance())

	var mirrored []models.Vaca
	require.True(t, snaps.Read("vacafacil:vacas:records", &mirrored))
	assert.Equal(t, herd.Items(), mirrored)

	// Carga de fundo não emite toast, nem em sucesso.
	s, e := toast.counts()
	assert.Zero(t, s)
	assert.Zero(t, e)
}

func TestLoad_Idempotent(t *testing.T) {
	snaps := newFakeSnapshots()
	rc := &mockRemote[models.Vaca]{
		ListFunc: func(ctx context.Context) ([]models.Vaca, error) {
			return []models.Vaca{{ID: 1, Nome: "Estrela"}, {ID: 2, Nome: "Mimosa"}}, nil
		},
	}
	herd := makeHerd(rc, snaps, true, &fakeToaster{})

	herd.Load(context.Background())
	primeira := herd.Items()
	herd.Load(context.Background())

	assert.Equal(t, primeira, herd.Items())
}

func TestLoad_FallbackServesSeededSnapshot(t *testing.T) {
	snaps := newFakeSnapshots()
	snaps.Write("vacafacil:vacas:records", []models.Vaca{{ID: 1, Nome: "Estrela"}})

	rc := &mockRemote[models.Vaca]{
		ListFunc: func(ctx context.Context) ([]models.Vaca, error) {
			return nil, remote.ErrUnavailable
		},
	}
	toast := &fakeToaster{}
	herd := makeHerd(rc, snaps, true, toast)

	herd.Load(context.Background())

	items := herd.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, "Estrela", items[0].Nome)
	assert.Equal(t, store.ProvenanceStale, herd.Provenance())

	// Falha silenciosa: nenhum toast.
	_, e := toast.counts()
	assert.Zero(t, e)
}

func TestLoad_FallbackWithoutSnapshotYieldsEmpty(t *testing.T) {
	rc := &mockRemote[models.Vaca]{
		ListFunc: func(ctx context.Context) ([]models.Vaca, error) {
			return nil, remote.ErrUnavailable
		},
	}
	herd := makeHerd(rc, newFakeSnapshots(), true, &fakeToaster{})

	herd.Load(context.Background())

	assert.Empty(t, herd.Items())
	assert.Equal(t, store.ProvenanceStale, herd.Provenance())
}

func TestLoad_AnonymousSkipsRemote(t *testing.T) {
	snaps := newFakeSnapshots()
	snaps.Write("vacafacil:vacas:records", []models.Vaca{{ID: 3, Nome: "Pintada"}})

	rc := &mockRemote[models.Vaca]{
		ListFunc: func(ctx context.Context) ([]models.Vaca, error) {
			t.Fatal("remote must not be called for anonymous sessions")
			return nil, nil
		},
	}
	herd := makeHerd(rc, snaps, false, &fakeToaster{})

	herd.Load(context.Background())

	require.Len(t, herd.Items(), 1)
	assert.Equal(t, "Pintada", herd.Items()[0].Nome)
}

func TestLoad_StaleResultDiscardedAfterMutation(t *testing.T) {
	snaps := newFakeSnapshots()
	listStarted := make(chan struct{})
	releaseList := make(chan struct{})
	rc := &mockRemote[models.Vaca]{
		ListFunc: func(ctx context.Context) ([]models.Vaca, error) {
			close(listStarted)
			<-releaseList
			return []models.Vaca{{ID: 1, Nome: "Antiga"}}, nil
		},
		CreateFunc: func(ctx context.Context, rec models.Vaca) (models.Vaca, error) {
			rec.ID = 42
			return rec, nil
		},
	}
	herd := makeHerd(rc, snaps, true, &fakeToaster{})

	done := make(chan struct{})
	go func() {
		herd.Load(context.Background())
		close(done)
	}()

	<-listStarted
	_, err := herd.Create(context.Background(), models.Vaca{Numero: "001", Nome: "Mimosa"})
	require.NoError(t, err)

	close(releaseList)
	<-done

	// O resultado do load resolveu depois da mutação e foi descartado.
	items := herd.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(42), items[0].ID)
	assert.Equal(t, "Mimosa", items[0].Nome)
}

func TestCreate_AdoptsServerRecordAndMirrors(t *testing.T) {
	snaps := newFakeSnapshots()
	toast := &fakeToaster{}
	rc := &mockRemote[models.Vaca]{
		CreateFunc: func(ctx context.Context, rec models.Vaca) (models.Vaca, error) {
			require.Equal(t, "001", rec.Numero)
			require.Equal(t, "Mimosa", rec.Nome)
			rec.ID = 42
			return rec, nil
		},
	}
	herd := makeHerd(rc, snaps, true, toast)

	created, err := herd.Create(context.Background(), models.Vaca{Numero: "001", Nome: "Mimosa"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)

	items := herd.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(42), items[0].ID)

	var mirrored []models.Vaca
	require.True(t, snaps.Read("vacafacil:vacas:records", &mirrored))
	require.Len(t, mirrored, 1)
	assert.Equal(t, int64(42), mirrored[0].ID)

	s, e := toast.counts()
	assert.Equal(t, 1, s)
	assert.Zero(t, e)
}

func TestCreate_ValidationFailureSkipsRemote(t *testing.T) {
	toast := &fakeToaster{}
	rc := &mockRemote[models.Vaca]{
		CreateFunc: func(ctx context.Context, rec models.Vaca) (models.Vaca, error) {
			t.Fatal("remote must not be called for invalid records")
			return rec, nil
		},
	}
	herd := makeHerd(rc, newFakeSnapshots(), true, toast)

	// Sem numero nem nome.
	_, err := herd.Create(context.Background(), models.Vaca{})

	require.Error(t, err)
	assert.Empty(t, herd.Items())
	_, e := toast.counts()
	assert.Equal(t, 1, e)
}

func TestCreate_RemoteFailureRethrows(t *testing.T) {
	toast := &fakeToaster{}
	apiErr := &remote.APIError{Status: 422, Message: "número de brinco já cadastrado"}
	rc := &mockRemote[models.Vaca]{
		CreateFunc: func(ctx context.Context, rec models.Vaca) (models.Vaca, error) {
			return models.Vaca{}, apiErr
		},
	}
	herd := makeHerd(rc, newFakeSnapshots(), true, toast)

	_, err := herd.Create(context.Background(), models.Vaca{Numero: "001", Nome: "Mimosa"})

	require.Error(t, err)
	var got *remote.APIError
	assert.True(t, errors.As(err, &got))
	assert.Empty(t, herd.Items())

	toast.mu.Lock()
	defer toast.mu.Unlock()
	require.Len(t, toast.erros, 1)
	assert.Contains(t, toast.erros[0], "número de brinco já cadastrado")
}

func TestUpdate_MatchesNumericIDGivenAsString(t *testing.T) {
	snaps := newFakeSnapshots()
	rc := &mockRemote[models.Vaca]{
		ListFunc: func(ctx context.Context) ([]models.Vaca, error) {
			return []models.Vaca{{ID: 42, Numero: "001", Nome: "Mimosa"}}, nil
		},
		UpdateFunc: func(ctx context.Context, id any, rec models.Vaca) (models.Vaca, error) {
			rec.ID = 42
			return rec, nil
		},
	}
	herd := makeHerd(rc, snaps, true, &fakeToaster{})
	herd.Load(context.Background())

	// Id numérico no registro, chave de busca como string.
	err := herd.Update(context.Background(), "42", models.Vaca{Numero: "001", Nome: "Mimosa II"})

	require.NoError(t, err)
	items := herd.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Mimosa II", items[0].Nome)
}

func TestRemove_Success(t *testing.T) {
	snaps := newFakeSnapshots()
	rc := &mockRemote[models.Vaca]{
		ListFunc: func(ctx context.Context) ([]models.Vaca, error) {
			return []models.Vaca{{ID: 1, Nome: "Estrela"}, {ID: 2, Nome: "Mimosa"}}, nil
		},
		DeleteFunc: func(ctx context.Context, id any) error { return nil },
	}
	herd := makeHerd(rc, snaps, true, &fakeToaster{})
	herd.Load(context.Background())

	require.NoError(t, herd.Remove(context.Background(), 1))

	_, found := herd.Find(1)
	assert.False(t, found)

	var mirrored []models.Vaca
	require.True(t, snaps.Read("vacafacil:vacas:records", &mirrored))
	require.Len(t, mirrored, 1)
	assert.Equal(t, int64(2), mirrored[0].ID)
}

func TestRemove_FailureKeepsRecordVisible(t *testing.T) {
	snaps := newFakeSnapshots()
	toast := &fakeToaster{}
	rc := &mockRemote[models.Vaca]{
		ListFunc: func(ctx context.Context) ([]models.Vaca, error) {
			return []models.Vaca{{ID: 1, Nome: "Estrela"}}, nil
		},
		DeleteFunc: func(ctx context.Context, id any) error {
			return remote.ErrUnavailable
		},
	}
	herd := makeHerd(rc, snaps, true, toast)
	herd.Load(context.Background())

	err := herd.Remove(context.Background(), 1)

	require.Error(t, err)
	_, found := herd.Find(1)
	assert.True(t, found)

	var mirrored []models.Vaca
	require.True(t, snaps.Read("vacafacil:vacas:records", &mirrored))
	assert.Len(t, mirrored, 1)

	_, e := toast.counts()
	assert.Equal(t, 1, e)
}

func TestFind_TolerantIDMatch(t *testing.T) {
	rc := &mockRemote[models.Vaca]{
		ListFunc: func(ctx context.Context) ([]models.Vaca, error) {
			return []models.Vaca{{ID: 7, Nome: "Pintada"}}, nil
		},
	}
	herd := makeHerd(rc, newFakeSnapshots(), true, &fakeToaster{})
	herd.Load(context.Background())

	byInt, ok := herd.Find(7)
	require.True(t, ok)
	byString, ok2 := herd.Find("7")
	require.True(t, ok2)
	assert.Equal(t, byInt, byString)
}
