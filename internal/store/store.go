// Package store implementa o padrão de coleção sincronizada: a API
// remota é a fonte da verdade de toda mutação, o espelho local serve
// de fallback de leitura quando a API está inacessível. O espelho
// nunca vira fila de escrita; mutações que falham não são reenviadas.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator"

	"github.com/vacafacil/vacafacil-sync/internal/lib/sl"
	"github.com/vacafacil/vacafacil-sync/internal/models"
	"github.com/vacafacil/vacafacil-sync/internal/remote"
	"github.com/vacafacil/vacafacil-sync/internal/storage"
)

// Provenance indica a origem da coleção em memória.
type Provenance int

const (
	// ProvenanceUnknown antes do primeiro Load.
	ProvenanceUnknown Provenance = iota
	// ProvenanceFresh coleção veio da API na última carga.
	ProvenanceFresh
	// ProvenanceStale coleção veio do espelho local (dado possivelmente
	// desatualizado, servido por indisponibilidade da API ou sessão
	// anônima).
	ProvenanceStale
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceFresh:
		return "fresh"
	case ProvenanceStale:
		return "stale_from_cache"
	default:
		return "unknown"
	}
}

// RemoteCollection operações CRUD da coleção na API.
type RemoteCollection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id any, rec T) (T, error)
	Delete(ctx context.Context, id any) error
}

// Snapshots é o espelho local de leitura/escrita da coleção.
type Snapshots interface {
	Read(key string, dest any) bool
	Write(key string, value any)
}

// SessionReader informa se há sessão autenticada; sessão anônima faz
// o Load pular direto para o espelho local.
type SessionReader interface {
	Authenticated() bool
}

// Toaster recebe o desfecho das operações iniciadas pelo usuário.
type Toaster interface {
	Success(titulo, mensagem string)
	Error(titulo, mensagem string)
}

// Store coleção de um domínio, sincronizada com a API e espelhada
// localmente.
type Store[T models.Record] struct {
	dominio string
	key     string
	remote  RemoteCollection[T]
	local   Snapshots
	session SessionReader
	toast   Toaster
	log     *slog.Logger

	validate *validator.Validate

	mu    sync.Mutex
	items []T
	prov  Provenance
	// version cresce a cada mutação; um Load que resolve depois de uma
	// mutação mais nova é descartado em vez de sobrescrever o estado.
	version uint64
}

// New cria o store de um domínio. A chave do espelho local é derivada
// do nome do domínio e precisa ser estável entre execuções.
func New[T models.Record](dominio string, rc RemoteCollection[T], local Snapshots, session SessionReader, toast Toaster, log *slog.Logger) *Store[T] {
	return &Store[T]{
		dominio:  dominio,
		key:      storage.RecordsKey(dominio),
		remote:   rc,
		local:    local,
		session:  session,
		toast:    toast,
		log:      log,
		validate: validator.New(),
		items:    []T{},
	}
}

// Load carrega a coleção da API e espelha localmente. Em qualquer
// falha (ou sessão anônima) adota o último snapshot local; nunca
// retorna erro e nunca emite toast: carga de fundo falha em silêncio.
func (s *Store[T]) Load(ctx context.Context) {
	const op = "store.Load"
	log := s.log.With(slog.String("op", op), slog.String("dominio", s.dominio))

	s.mu.Lock()
	before := s.version
	s.mu.Unlock()

	if !s.session.Authenticated() {
		log.Info("anonymous session, serving local snapshot")
		s.adoptLocal(before)
		return
	}

	items, err := s.remote.List(ctx)
	if err != nil {
		if errors.Is(err, remote.ErrUnavailable) {
			log.Warn("api unreachable, serving local snapshot", sl.Err(err))
		} else {
			log.Error("list rejected by api, serving local snapshot", sl.Err(err))
		}
		s.adoptLocal(before)
		return
	}
	if items == nil {
		items = []T{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != before {
		log.Info("discarding stale load result", slog.Uint64("version", s.version))
		return
	}
	s.items = items
	s.prov = ProvenanceFresh
	s.local.Write(s.key, s.items)
}

func (s *Store[T]) adoptLocal(before uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != before {
		return
	}
	var snap []T
	if s.local.Read(s.key, &snap) {
		s.items = snap
	} else {
		s.items = []T{}
	}
	s.prov = ProvenanceStale
}

// Create valida o registro, envia à API e adota a versão confirmada
// (o id do servidor vale, não o do rascunho). Em falha o erro é
// devolvido ao chamador para que a UI mantenha o formulário aberto.
func (s *Store[T]) Create(ctx context.Context, rec T) (T, error) {
	const op = "store.Create"
	log := s.log.With(slog.String("op", op), slog.String("dominio", s.dominio))
	var zero T

	if err := s.validate.Struct(rec); err != nil {
		log.Warn("record failed validation", sl.Err(err))
		s.toast.Error("Dados incompletos", "preencha os campos obrigatórios")
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.remote.Create(ctx, rec)
	if err != nil {
		log.Error("failed to create record", sl.Err(err))
		s.toast.Error("Erro ao salvar", remote.UserMessage(err))
		return zero, err
	}

	s.mu.Lock()
	s.version++
	s.items = append(s.items, created)
	s.local.Write(s.key, s.items)
	s.mu.Unlock()

	s.toast.Success("Registro salvo", "registro adicionado com sucesso")
	return created, nil
}

// Update envia a atualização à API e, confirmada, substitui o
// registro correspondente. A comparação de id tolera divergência de
// tipo entre número e string.
func (s *Store[T]) Update(ctx context.Context, id any, rec T) error {
	const op = "store.Update"
	log := s.log.With(slog.String("op", op), slog.String("dominio", s.dominio))

	updated, err := s.remote.Update(ctx, id, rec)
	if err != nil {
		log.Error("failed to update record", sl.Err(err))
		s.toast.Error("Erro ao atualizar", remote.UserMessage(err))
		return err
	}

	s.mu.Lock()
	s.version++
	for i := range s.items {
		if models.SameID(s.items[i].RecordID(), id) {
			s.items[i] = updated
			break
		}
	}
	s.local.Write(s.key, s.items)
	s.mu.Unlock()

	s.toast.Success("Registro atualizado", "alterações salvas")
	return nil
}

// Remove exclui na API antes de sumir da coleção: a exclusão não é
// otimista, uma falha deixa o registro visível.
func (s *Store[T]) Remove(ctx context.Context, id any) error {
	const op = "store.Remove"
	log := s.log.With(slog.String("op", op), slog.String("dominio", s.dominio))

	if err := s.remote.Delete(ctx, id); err != nil {
		log.Error("failed to delete record", sl.Err(err))
		s.toast.Error("Erro ao excluir", remote.UserMessage(err))
		return err
	}

	s.mu.Lock()
	s.version++
	kept := s.items[:0]
	for _, it := range s.items {
		if !models.SameID(it.RecordID(), id) {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.local.Write(s.key, s.items)
	s.mu.Unlock()

	s.toast.Success("Registro excluído", "registro removido com sucesso")
	return nil
}

// Items retorna uma cópia da coleção em memória. Não faz I/O.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Find busca um registro pelo id, tolerando divergência de tipo.
func (s *Store[T]) Find(id any) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if models.SameID(it.RecordID(), id) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Where retorna os registros que satisfazem o predicado. Não faz I/O.
func (s *Store[T]) Where(pred func(T) bool) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []T
	for _, it := range s.items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// Len retorna o tamanho da coleção, o uso corrente para checagem de
// cota antes de um Create.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Provenance informa se a coleção corrente veio da API ou do espelho.
func (s *Store[T]) Provenance() Provenance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prov
}

// Dominio retorna o nome do domínio da coleção.
func (s *Store[T]) Dominio() string {
	return s.dominio
}
