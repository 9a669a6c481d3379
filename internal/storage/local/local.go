// Package local implementa o espelho persistente de snapshots sobre
// sqlite: cada chave guarda um blob JSON, como um localStorage com
// namespace. Falha de parse na leitura equivale a chave ausente e a
// entrada corrompida é removida, nunca propagada ao chamador.
package local

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite" // driver sqlite em go puro

	"github.com/vacafacil/vacafacil-sync/internal/lib/sl"
)

// Store guarda pares chave/valor JSON em uma única tabela sqlite.
// Escritas são tratadas como não-faláveis: erros físicos são apenas
// logados, espelhando o contrato do armazenamento do navegador.
type Store struct {
	db    *sql.DB
	mu    sync.Mutex
	hooks []func(key string)
	log   *slog.Logger
	now   func() time.Time
}

// New abre (ou cria) o arquivo de snapshots.
func New(path string, log *slog.Logger) (*Store, error) {
	const op = "local.New"

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		expires_at INTEGER
	)`); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{db: db, log: log, now: time.Now}, nil
}

// Read lê e desserializa o valor da chave em dest. Retorna false para
// chave ausente, expirada ou com JSON corrompido; entradas expiradas e
// corrompidas são removidas no ato.
func (s *Store) Read(key string, dest any) bool {
	const op = "local.Read"

	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	var expiresAt sql.NullInt64
	err := s.db.QueryRow(`SELECT payload, expires_at FROM snapshots WHERE key = ?`, key).
		Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		s.log.Warn("failed to read snapshot", slog.String("op", op), slog.String("key", key), sl.Err(err))
		return false
	}
	if expiresAt.Valid && s.now().UnixNano() >= expiresAt.Int64 {
		s.deleteLocked(key)
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		s.log.Warn("corrupt snapshot discarded", slog.String("op", op), slog.String("key", key), sl.Err(err))
		s.deleteLocked(key)
		return false
	}
	return true
}

// Write serializa e persiste o valor sob a chave, sem expiração.
func (s *Store) Write(key string, value any) {
	s.write(key, value, 0)
}

// WriteTTL persiste o valor com prazo de expiração.
func (s *Store) WriteTTL(key string, value any, ttl time.Duration) {
	s.write(key, value, ttl)
}

func (s *Store) write(key string, value any, ttl time.Duration) {
	const op = "local.Write"

	payload, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("failed to serialize snapshot", slog.String("op", op), slog.String("key", key), sl.Err(err))
		return
	}

	var expiresAt any
	if ttl > 0 {
		expiresAt = s.now().Add(ttl).UnixNano()
	}

	s.mu.Lock()
	_, err = s.db.Exec(`INSERT INTO snapshots (key, payload, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at`,
		key, payload, expiresAt)
	s.mu.Unlock()
	if err != nil {
		s.log.Warn("failed to persist snapshot", slog.String("op", op), slog.String("key", key), sl.Err(err))
		return
	}
	s.notify(key)
}

// Remove apaga a chave.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	s.deleteLocked(key)
	s.mu.Unlock()
	s.notify(key)
}

func (s *Store) deleteLocked(key string) {
	const op = "local.delete"
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		s.log.Warn("failed to delete snapshot", slog.String("op", op), slog.String("key", key), sl.Err(err))
	}
}

// Watch registra um hook chamado a cada escrita ou remoção, o análogo
// do evento "storage" entre abas do navegador. Os hooks rodam em
// goroutine própria para que um hook possa reler ou limpar chaves sem
// reentrar no lock do Store.
func (s *Store) Watch(fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

func (s *Store) notify(key string) {
	s.mu.Lock()
	hooks := make([]func(string), len(s.hooks))
	copy(hooks, s.hooks)
	s.mu.Unlock()

	for _, fn := range hooks {
		go fn(key)
	}
}

// Close fecha o arquivo de snapshots.
func (s *Store) Close() error {
	return s.db.Close()
}
