// Package notify mantém o histórico de notificações do usuário e faz
// a ponte de toasts: os stores reportam o desfecho das operações aqui
// e a UI consome o histórico. O histórico guarda as 50 entradas mais
// recentes; a mais antiga sai primeiro.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vacafacil/vacafacil-sync/internal/models"
	"github.com/vacafacil/vacafacil-sync/internal/storage"
)

const maxNotificacoes = 50

// Snapshots espelho local do histórico.
type Snapshots interface {
	Read(key string, dest any) bool
	Write(key string, value any)
}

// Center centraliza as notificações do app.
type Center struct {
	local Snapshots
	log   *slog.Logger

	mu    sync.Mutex
	items []models.Notificacao

	now   func() time.Time
	newID func() string
}

// NewCenter cria o centro de notificações, recarregando o histórico
// persistido de execuções anteriores.
func NewCenter(local Snapshots, log *slog.Logger) *Center {
	c := &Center{local: local, log: log, now: time.Now, newID: uuid.NewString}
	c.local.Read(storage.KeyNotifications, &c.items)
	return c
}

// Push registra uma notificação não lida e espelha o histórico. Acima
// do limite, a entrada mais antiga é descartada.
func (c *Center) Push(tipo, titulo, mensagem string) models.Notificacao {
	n := models.Notificacao{
		ID:        c.newID(),
		Tipo:      tipo,
		Titulo:    titulo,
		Mensagem:  mensagem,
		Timestamp: c.now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
	if len(c.items) > maxNotificacoes {
		c.items = c.items[len(c.items)-maxNotificacoes:]
	}
	c.local.Write(storage.KeyNotifications, c.items)
	c.log.Debug("notification pushed", slog.String("tipo", tipo), slog.String("titulo", titulo))
	return n
}

// Success implementa a ponte de toasts para desfechos de sucesso.
func (c *Center) Success(titulo, mensagem string) {
	c.Push(models.NotificacaoSucesso, titulo, mensagem)
}

// Error implementa a ponte de toasts para desfechos de erro.
func (c *Center) Error(titulo, mensagem string) {
	c.Push(models.NotificacaoErro, titulo, mensagem)
}

// MarkRead marca uma notificação como lida. Retorna false para id
// desconhecido.
func (c *Center) MarkRead(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Lida = true
			c.local.Write(storage.KeyNotifications, c.items)
			return true
		}
	}
	return false
}

// MarkAllRead marca todo o histórico como lido.
func (c *Center) MarkAllRead() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		c.items[i].Lida = true
	}
	c.local.Write(storage.KeyNotifications, c.items)
}

// Unread retorna a quantidade de notificações não lidas.
func (c *Center) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, it := range c.items {
		if !it.Lida {
			n++
		}
	}
	return n
}

// Items retorna uma cópia do histórico, da mais antiga para a mais
// recente.
func (c *Center) Items() []models.Notificacao {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Notificacao, len(c.items))
	copy(out, c.items)
	return out
}
